package common

import (
	"testing"

	vk "github.com/goki/vulkan"
)

// TestIsSupportAdequate walks the suitability predicate through each failing condition and the
// single passing combination: both queue families found, the device extensions supported, and the
// surface reporting at least one format and one present mode.
func TestIsSupportAdequate(t *testing.T) {
	idx := uint32(0)
	full := &QueueFamilyIndices{GraphicsFamily: &idx, PresentFamily: &idx}
	okDetails := SwapChainDetails{
		formats:      []vk.SurfaceFormat{{Format: vk.FormatB8g8r8a8Srgb}},
		presentModes: []vk.PresentMode{vk.PresentModeFifo},
	}

	if !isSupportAdequate(full, true, okDetails) {
		t.Errorf("Expected fully capable device to be adequate")
	}
	if isSupportAdequate(nil, true, okDetails) {
		t.Errorf("Expected nil indices to be inadequate")
	}
	if isSupportAdequate(&QueueFamilyIndices{GraphicsFamily: &idx}, true, okDetails) {
		t.Errorf("Expected missing present family to be inadequate")
	}
	if isSupportAdequate(&QueueFamilyIndices{PresentFamily: &idx}, true, okDetails) {
		t.Errorf("Expected missing graphics family to be inadequate")
	}
	if isSupportAdequate(full, false, okDetails) {
		t.Errorf("Expected missing device extensions to be inadequate")
	}
	if isSupportAdequate(full, true, SwapChainDetails{presentModes: okDetails.presentModes}) {
		t.Errorf("Expected empty format list to be inadequate")
	}
	if isSupportAdequate(full, true, SwapChainDetails{formats: okDetails.formats}) {
		t.Errorf("Expected empty present mode list to be inadequate")
	}
}
