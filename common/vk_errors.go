package common

import "errors"

// Sentinel errors for the conditions a caller may want to react to specifically. Driver status
// codes are wrapped where they occur via vk.Error, these cover the failures that happen before
// or outside any single Vulkan call.
var (
	ErrWindowCreate                 = errors.New("failed to create SDL window")
	ErrSurfaceCreate                = errors.New("failed to create window surface")
	ErrRequiredExtensionUnavailable = errors.New("required extension is not available")
	ErrValidationLayerUnavailable   = errors.New("requested validation layer is not available")
	ErrNoDevices                    = errors.New("no Vulkan capable physical devices found")
	ErrNoSuitableDevices            = errors.New("no suitable physical device found")
)
