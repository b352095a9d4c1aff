package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

// Provides validation functions to ensure support and availability of requirements of layers/extensions and so on.

func checkInstanceExtensionSupport(requiredInstanceExt []string) error {
	supportedExt, err := ReadInstanceExtensionProperties()
	if err != nil {
		return err
	}
	log.Printf("Required instance extensions: %v", requiredInstanceExt)
	log.Printf("Available extensions (%d):\n%v", len(supportedExt), tableStringExtensionProps(supportedExt))
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}

	if !AllOfAinB(requiredInstanceExt, supportedExtNames) {
		return fmt.Errorf("%w: %s", ErrRequiredExtensionUnavailable, FirstNotInB(requiredInstanceExt, supportedExtNames))
	}
	log.Println("Success - All required instance extensions are supported")
	return nil
}

func checkValidationLayerSupport(requiredLayers []string) error {
	supportedLayers, err := ReadInstanceLayerProperties()
	if err != nil {
		return err
	}
	log.Printf("Desired validation layers: %v", requiredLayers)
	log.Printf("Supported layers (%d):\n%v", len(supportedLayers), tableStringLayerProps(supportedLayers))

	supLayerNames := make([]string, len(supportedLayers))
	for i, l := range supportedLayers {
		supLayerNames[i] = vk.ToString(l.LayerName[:])
	}

	if !AllOfAinB(requiredLayers, supLayerNames) {
		return fmt.Errorf("%w: %s", ErrValidationLayerUnavailable, FirstNotInB(requiredLayers, supLayerNames))
	}
	log.Println("Success - All desired validation layers are supported")
	return nil
}

func checkDeviceExtensionSupport(pd vk.PhysicalDevice, requiredDeviceExt []string) bool {
	supportedExt, err := ReadDeviceExtensionProperties(pd)
	if err != nil {
		log.Printf("Failed to read device extensions: %s", err)
		return false
	}
	log.Printf("Required device extensions: %v", requiredDeviceExt)
	log.Printf("Available device extensions (%d) [...]\n", len(supportedExt))
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}
	return AllOfAinB(requiredDeviceExt, supportedExtNames)
}

// isSupportAdequate is the suitability predicate over everything queried for a candidate device:
// both queue family indices found, the swap chain extension present and the surface reporting at
// least one format and one present mode. The first device satisfying it wins, there is no scoring.
func isSupportAdequate(indices *QueueFamilyIndices, extensionsSupported bool, scDetails SwapChainDetails) bool {
	if indices == nil || !indices.isAllQueuesFound() {
		return false
	}
	if !extensionsSupported {
		return false
	}
	return len(scDetails.formats) > 0 && len(scDetails.presentModes) > 0
}
