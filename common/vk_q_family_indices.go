package common

import (
	"errors"

	vk "github.com/goki/vulkan"
)

// QueueFamilyIndices caches the queue family choices made for a selected physical device. Graphics
// and present capable indices may well point at the same family, which changes how the swap chain
// shares its images (see chooseSharingMode).
type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice, surf vk.Surface) (*QueueFamilyIndices, error) {
	qFamilies := ReadQueueFamilies(pd)
	indices := scanQueueFamilies(qFamilies, func(i uint32) bool {
		var presentSupport vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surf, &presentSupport)
		return presentSupport > 0
	})
	if indices.GraphicsFamily == nil {
		return nil, errors.New("unable to find graphics capable queue family")
	}
	if indices.PresentFamily == nil {
		return nil, errors.New("unable to find present capable queue family for given surface")
	}
	return indices, nil
}

// scanQueueFamilies walks the family list in enumeration order and records the first graphics
// capable and first present capable index it finds. Keeping the walk deterministic over the
// driver provided order means the same device always yields the same indices.
func scanQueueFamilies(qFamilies []vk.QueueFamilyProperties, supportsPresent func(idx uint32) bool) *QueueFamilyIndices {
	indices := &QueueFamilyIndices{
		GraphicsFamily: nil,
		PresentFamily:  nil,
	}
	for i := range qFamilies {
		if indices.GraphicsFamily == nil && isBitSet(qFamilies[i], vk.QueueGraphicsBit) {
			indices.GraphicsFamily = new(uint32)
			*indices.GraphicsFamily = uint32(i)
		}
		if indices.PresentFamily == nil && supportsPresent(uint32(i)) {
			indices.PresentFamily = new(uint32)
			*indices.PresentFamily = uint32(i)
		}
		if indices.isAllQueuesFound() {
			break
		}
	}
	return indices
}

func isBitSet(qFamily vk.QueueFamilyProperties, bit vk.QueueFlagBits) bool {
	return vk.QueueFlagBits(qFamily.QueueFlags)&bit > 0
}

func (q *QueueFamilyIndices) isAllQueuesFound() bool {
	return q.GraphicsFamily != nil && q.PresentFamily != nil
}

// toQueueCreateInfos deduplicates the chosen family indices, as requesting the same family twice
// during logical device creation is invalid.
func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	var uniqIndices []uint32
	if !inList(*q.GraphicsFamily, uniqIndices) {
		uniqIndices = append(uniqIndices, *q.GraphicsFamily)
	}
	if !inList(*q.PresentFamily, uniqIndices) {
		uniqIndices = append(uniqIndices, *q.PresentFamily)
	}
	infos := make([]vk.DeviceQueueCreateInfo, len(uniqIndices))
	for i := range uniqIndices {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			PNext:            nil,
			Flags:            0,
			QueueFamilyIndex: uniqIndices[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}

func inList(e uint32, l []uint32) bool {
	for i := range l {
		if l[i] == e {
			return true
		}
	}
	return false
}
