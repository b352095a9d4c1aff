package common

import (
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// The debug listener is purely observational: the driver invokes the callback with diagnostic
// messages and we print anything at warning severity or above. Returning false tells the layer
// to never abort the call that triggered the message, so behavior is identical with and without
// validation enabled.

func createDebugListener(instance vk.Instance) (vk.DebugReportCallback, error) {
	dbgCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		PNext:       nil,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: dbgCallbackFunc,
		PUserData:   nil,
	}
	return VkCreateDebugReportCallback(instance, &dbgCreateInfo, nil)
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint64, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("[Layer %s][ERROR %d] %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("[Layer %s][WARN %d] %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Printf("[Layer %s][PERF %d] %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
