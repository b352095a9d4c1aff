package common

import (
	"testing"

	vk "github.com/goki/vulkan"
)

// TestSelectSwapSurfaceFormat confirms the preferred format wins regardless of its position in the
// driver provided list and that the first entry is used when the preferred one is absent.
func TestSelectSwapSurfaceFormat(t *testing.T) {
	preferred := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	other := vk.SurfaceFormat{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	s := SwapChainDetails{formats: []vk.SurfaceFormat{other, other, preferred}}
	got := s.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear)
	if got != preferred {
		t.Errorf("Expected preferred format to be selected from position 2, got: %v", got)
	}

	s = SwapChainDetails{formats: []vk.SurfaceFormat{other, {Format: vk.FormatB8g8r8a8Unorm}}}
	got = s.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear)
	if got != other {
		t.Errorf("Expected fallback to first listed format, got: %v", got)
	}

	// Matching format but wrong color space must not qualify
	wrongSpace := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceDisplayP3Nonlinear}
	s = SwapChainDetails{formats: []vk.SurfaceFormat{wrongSpace}}
	got = s.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear)
	if got != wrongSpace {
		t.Errorf("Expected fallback to first listed format on color space mismatch, got: %v", got)
	}
}

// TestSelectSwapPresentMode confirms MAILBOX is taken when present anywhere in the list and that
// FIFO is the fallback, as it is the only mode guaranteed to exist.
func TestSelectSwapPresentMode(t *testing.T) {
	s := SwapChainDetails{presentModes: []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifo, vk.PresentModeMailbox}}
	if got := s.selectSwapPresentMode(vk.PresentModeMailbox); got != vk.PresentModeMailbox {
		t.Errorf("Expected MAILBOX to be selected, got: %v", got)
	}

	s = SwapChainDetails{presentModes: []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifoRelaxed}}
	if got := s.selectSwapPresentMode(vk.PresentModeMailbox); got != vk.PresentModeFifo {
		t.Errorf("Expected FIFO fallback, got: %v", got)
	}
}

// TestSelectSwapExtent confirms the drawable size is clamped component-wise into the surface's
// min/max image extent.
func TestSelectSwapExtent(t *testing.T) {
	s := SwapChainDetails{capabilities: vk.SurfaceCapabilities{
		MinImageExtent: vk.Extent2D{Width: 100, Height: 200},
		MaxImageExtent: vk.Extent2D{Width: 1000, Height: 2000},
	}}

	got := s.selectSwapExtent(500, 500)
	if got.Width != 500 || got.Height != 500 {
		t.Errorf("Expected in-range size to pass through, got: %v", got)
	}

	got = s.selectSwapExtent(50, 50)
	if got.Width != 100 || got.Height != 200 {
		t.Errorf("Expected size below minimum to clamp up, got: %v", got)
	}

	got = s.selectSwapExtent(5000, 5000)
	if got.Width != 1000 || got.Height != 2000 {
		t.Errorf("Expected size above maximum to clamp down, got: %v", got)
	}

	got = s.selectSwapExtent(50, 5000)
	if got.Width != 100 || got.Height != 2000 {
		t.Errorf("Expected components to clamp independently, got: %v", got)
	}
}

// TestClampImageCount confirms the min+1 request, the cap at the maximum, and that a maximum of 0
// means unlimited.
func TestClampImageCount(t *testing.T) {
	if got := clampImageCount(2, 8); got != 3 {
		t.Errorf("Expected min+1 = 3, got: %d", got)
	}
	if got := clampImageCount(3, 3); got != 3 {
		t.Errorf("Expected cap at maximum 3, got: %d", got)
	}
	if got := clampImageCount(2, 0); got != 3 {
		t.Errorf("Expected maximum 0 to leave the count uncapped, got: %d", got)
	}
}

// TestChooseSharingMode confirms a shared family yields EXCLUSIVE without indices and differing
// families yield CONCURRENT across both.
func TestChooseSharingMode(t *testing.T) {
	mode, indices := chooseSharingMode(0, 0)
	if mode != vk.SharingModeExclusive {
		t.Errorf("Expected EXCLUSIVE for equal families, got: %v", mode)
	}
	if len(indices) != 0 {
		t.Errorf("Expected no index list for EXCLUSIVE, got: %v", indices)
	}

	mode, indices = chooseSharingMode(0, 1)
	if mode != vk.SharingModeConcurrent {
		t.Errorf("Expected CONCURRENT for differing families, got: %v", mode)
	}
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 1 {
		t.Errorf("Expected index list [0 1] for CONCURRENT, got: %v", indices)
	}
}
