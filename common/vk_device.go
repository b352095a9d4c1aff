package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

var VALIDATION_LAYERS = []string{
	"VK_LAYER_KHRONOS_validation",
}

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

// Device represents the interfacing objects between the window surface, the hardware running Vulkan
// and the rest of the rendering code. Its main purpose is to encapsulate the corresponding objects
// to make the initialization and teardown of a given application neater.
type Device struct {
	PhysicalDevice vk.PhysicalDevice
	PdProps        vk.PhysicalDeviceProperties
	QFamilies      QueueFamilyIndices

	// SupportDetails is the swap chain capability snapshot taken while the device qualified. The
	// swap chain re-reads it on recreation since the surface capabilities change with the window.
	SupportDetails SwapChainDetails

	Device    vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

// NewDevice selects the first suitable physical device reachable through the given window's
// instance and creates the logical device with its graphics and present queues on it.
func NewDevice(w *Window) (*Device, error) {
	dc := &Device{}
	if err := dc.selectPhysicalDevice(w.Inst, w.Surf); err != nil {
		return nil, err
	}
	if err := dc.createLogicalDevice(w); err != nil {
		return nil, err
	}
	return dc, nil
}

// Destroy drops the logical device. The physical device handle is enumerated, not owned, so there
// is nothing else to release here.
func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.Device, nil)
}

// WaitIdle blocks until all queues of the device drained. Required before any teardown so no
// in-flight work outlives the resources it uses.
func (dc *Device) WaitIdle() {
	vk.DeviceWaitIdle(dc.Device)
}

// selectPhysicalDevice walks the enumeration order and takes the first device that passes all
// suitability checks, there is no scoring or ranking between multiple qualified GPUs.
func (dc *Device) selectPhysicalDevice(in vk.Instance, su vk.Surface) error {
	availableDevices, err := ReadPhysicalDevices(in)
	if err != nil {
		return err
	}
	for i := range availableDevices {
		if isDeviceSuitable(availableDevices[i], su) {
			dc.PhysicalDevice = availableDevices[i]
			break
		}
	}
	if dc.PhysicalDevice == nil {
		return ErrNoSuitableDevices
	}
	log.Printf("Found suitable device")

	// Also cache related member variables for dc.PhysicalDevice as they are needed later
	qf, err := findQueueFamilies(dc.PhysicalDevice, su)
	if err != nil {
		return fmt.Errorf("read queue families from selected device: %w", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PhysicalDevice)
	dc.SupportDetails = ReadSwapChainSupportDetails(dc.PhysicalDevice, su)
	return nil
}

// isDeviceSuitable qualifies a candidate on exactly three conditions: both queue family indices
// exist (possibly identical), the swap chain device extension is supported, and the surface offers
// at least one format and one present mode.
func isDeviceSuitable(pd vk.PhysicalDevice, su vk.Surface) bool {
	pdProps := ReadPhysicalDeviceProperties(pd)
	pdQueueFams := ReadQueueFamilies(pd)
	log.Printf("Physical device\n%s", toStringPhysicalDeviceTable(pdProps, pdQueueFams))

	indices, err := findQueueFamilies(pd, su)
	if err != nil {
		log.Printf("Failed to get required queue families: %s", err)
		return false
	}

	extensionsSupported := checkDeviceExtensionSupport(pd, DEVICE_EXTENSIONS)

	scDetails := SwapChainDetails{}
	if extensionsSupported {
		scDetails = ReadSwapChainSupportDetails(pd, su)
	}

	return isSupportAdequate(indices, extensionsSupported, scDetails)
}

func (dc *Device) createLogicalDevice(w *Window) error {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceFeatures := vk.PhysicalDeviceFeatures{} // Nothing special needed to draw a triangle
	deviceCreatInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
	}
	if w.validation {
		deviceCreatInfo.EnabledLayerCount = uint32(len(VALIDATION_LAYERS))
		deviceCreatInfo.PpEnabledLayerNames = TerminatedStrs(VALIDATION_LAYERS)
	}

	var err error
	dc.Device, err = VkCreateDevice(dc.PhysicalDevice, deviceCreatInfo, nil)
	if err != nil {
		return fmt.Errorf("create logical device: %w", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.Device, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		return fmt.Errorf("get 'graphics' device queue: %w", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.Device, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		return fmt.Errorf("get 'present' device queue: %w", err)
	}
	log.Println("Successfully created logical device and queues")
	return nil
}
