package common

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit), QueueCount: 1}
}

func transferFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueTransferBit), QueueCount: 1}
}

// TestScanQueueFamilies confirms the scan records the first graphics capable and first present
// capable family in enumeration order.
func TestScanQueueFamilies(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		transferFamily(),
		graphicsFamily(),
		graphicsFamily(),
	}
	presentOnLast := func(idx uint32) bool { return idx == 2 }

	indices := scanQueueFamilies(families, presentOnLast)
	if indices.GraphicsFamily == nil || *indices.GraphicsFamily != 1 {
		t.Errorf("Expected first graphics family at index 1, got: %v", indices.GraphicsFamily)
	}
	if indices.PresentFamily == nil || *indices.PresentFamily != 2 {
		t.Errorf("Expected present family at index 2, got: %v", indices.PresentFamily)
	}
	if !indices.isAllQueuesFound() {
		t.Errorf("Expected all queues found")
	}
}

// TestScanQueueFamiliesSharedFamily confirms both indices may point at the same family.
func TestScanQueueFamiliesSharedFamily(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily()}
	indices := scanQueueFamilies(families, func(idx uint32) bool { return true })
	if indices.GraphicsFamily == nil || indices.PresentFamily == nil {
		t.Fatalf("Expected both families found, got: %+v", indices)
	}
	if *indices.GraphicsFamily != 0 || *indices.PresentFamily != 0 {
		t.Errorf("Expected both indices at 0, got: %d / %d", *indices.GraphicsFamily, *indices.PresentFamily)
	}
}

// TestScanQueueFamiliesMissing confirms absent capabilities stay nil instead of defaulting to 0.
func TestScanQueueFamiliesMissing(t *testing.T) {
	families := []vk.QueueFamilyProperties{transferFamily(), transferFamily()}

	indices := scanQueueFamilies(families, func(idx uint32) bool { return false })
	if indices.GraphicsFamily != nil {
		t.Errorf("Expected no graphics family, got: %d", *indices.GraphicsFamily)
	}
	if indices.PresentFamily != nil {
		t.Errorf("Expected no present family, got: %d", *indices.PresentFamily)
	}
	if indices.isAllQueuesFound() {
		t.Errorf("Expected isAllQueuesFound to be false")
	}
}

// TestScanQueueFamiliesDeterministic confirms repeated scans over the same list yield the same
// indices, the selection may not depend on anything but enumeration order.
func TestScanQueueFamiliesDeterministic(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		graphicsFamily(),
		graphicsFamily(),
		transferFamily(),
	}
	present := func(idx uint32) bool { return idx >= 1 }

	first := scanQueueFamilies(families, present)
	for i := 0; i < 10; i++ {
		again := scanQueueFamilies(families, present)
		if *again.GraphicsFamily != *first.GraphicsFamily || *again.PresentFamily != *first.PresentFamily {
			t.Fatalf(
				"Scan %d diverged: %d/%d vs %d/%d",
				i, *again.GraphicsFamily, *again.PresentFamily, *first.GraphicsFamily, *first.PresentFamily,
			)
		}
	}
}

// TestToQueueCreateInfos confirms a shared family produces a single create info while distinct
// families produce one each.
func TestToQueueCreateInfos(t *testing.T) {
	shared := uint32(0)
	q := QueueFamilyIndices{GraphicsFamily: &shared, PresentFamily: &shared}
	infos := q.toQueueCreateInfos()
	if len(infos) != 1 {
		t.Errorf("Expected 1 create info for shared family, got: %d", len(infos))
	}

	g, p := uint32(0), uint32(1)
	q = QueueFamilyIndices{GraphicsFamily: &g, PresentFamily: &p}
	infos = q.toQueueCreateInfos()
	if len(infos) != 2 {
		t.Fatalf("Expected 2 create infos for distinct families, got: %d", len(infos))
	}
	for i := range infos {
		if infos[i].QueueCount != 1 {
			t.Errorf("Expected queue count 1, got: %d", infos[i].QueueCount)
		}
		if len(infos[i].PQueuePriorities) != 1 || infos[i].PQueuePriorities[0] != 1.0 {
			t.Errorf("Expected single priority of 1.0, got: %v", infos[i].PQueuePriorities)
		}
	}
}
