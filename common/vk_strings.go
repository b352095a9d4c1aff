package common

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Human readable renderings of driver enumeration results. Only used for the log output that
// accompanies instance creation and device selection.

// ExtensionProperties
func tableStringExtensionProps(ext []vk.ExtensionProperties) string {
	strBuilder := strings.Builder{}
	for i := range ext {
		strBuilder.WriteString(fmt.Sprintf(" %s\n", toStringExtensionPropsTable(ext[i])))
	}
	return strBuilder.String()
}

func toStringExtensionPropsTable(e vk.ExtensionProperties) string {
	return fmt.Sprintf("%-59s%10s", vk.ToString(e.ExtensionName[:]), vk.Version(e.SpecVersion).String())
}

// LayerProperties
func tableStringLayerProps(lay []vk.LayerProperties) string {
	strBuilder := strings.Builder{}
	for i := range lay {
		strBuilder.WriteString(fmt.Sprintf(" %s\n", toStringLayerPropsTable(lay[i])))
	}
	return strBuilder.String()
}

func toStringLayerPropsTable(l vk.LayerProperties) string {
	return fmt.Sprintf(
		"%-40sspec: %8s   impl: %8s%50s",
		vk.ToString(l.LayerName[:]),
		vk.Version(l.SpecVersion).String(),
		vk.Version(l.ImplementationVersion).String(),
		vk.ToString(l.Description[:]),
	)
}

// Physical device
func toStringPhysicalDeviceTable(
	pdProps vk.PhysicalDeviceProperties,
	qFamilies []vk.QueueFamilyProperties,
) string {
	strBuilder := strings.Builder{}
	for i := range qFamilies {
		if i == len(qFamilies)-1 {
			strBuilder.WriteString(fmt.Sprintf("|_Qfamily[%d] %s\n", i, toStringQueueFamilyPropsTable(qFamilies[i])))
		} else {
			strBuilder.WriteString(fmt.Sprintf("| Qfamily[%d] %s\n", i, toStringQueueFamilyPropsTable(qFamilies[i])))
		}
	}
	return fmt.Sprintf(
		"%s:\n|_%s\n%s",
		vk.ToString(pdProps.DeviceName[:]),
		toStringPhysicalDevicePropsTable(pdProps),
		strBuilder.String(),
	)
}

func asVendorName(v vk.VendorId) string {
	// There seem to only be a handful of vendors and Ids as stated in:
	// https://www.reddit.com/r/vulkan/comments/4ta9nj/is_there_a_comprehensive_list_of_the_names_and/
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	default:
		return "unknown"
	}
}

func asDriverVersion(vendor vk.VendorId, raw uint32) string {
	// Only nvidia packs its driver version in a non spec layout.
	if vendor == 0x10DE { // NVIDIA
		return nvidiaVer(raw)
	}
	return vk.Version(raw).String()
}

func nvidiaVer(i uint32) string {
	return fmt.Sprintf(
		"%d.%d.%d.%d",
		(i>>22)&0x3ff,
		(i>>14)&0x0ff,
		(i>>6)&0x0ff,
		i&0x003f,
	)
}

func toStringPhysicalDevicePropsTable(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("api: %s, driver: %s, vendorId: %d (%s), deviceId: %d, deviceType: %d (%s)",
		vk.Version(pdProps.ApiVersion).String(),
		asDriverVersion(vk.VendorId(pdProps.VendorID), pdProps.DriverVersion),
		vk.VendorId(pdProps.VendorID),
		asVendorName(vk.VendorId(pdProps.VendorID)),
		pdProps.DeviceID,
		pdProps.DeviceType,
		toStringDeviceType(pdProps.DeviceType),
	)
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case 0:
		return "other"
	case 1:
		return "integrated Gpu"
	case 2:
		return "discrete Gpu"
	case 3:
		return "virtual Gpu"
	case 4:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringQueueFamilyPropsTable(q vk.QueueFamilyProperties) string {
	return fmt.Sprintf(
		"Count: %2d, Valid ts bits: %d, Flags: %v",
		q.QueueCount,
		q.TimestampValidBits,
		toStringQueueFlags(q.QueueFlags),
	)
}

// QueueFlags
func toStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "VK_QUEUE_GRAPHICS_BIT")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "VK_QUEUE_COMPUTE_BIT")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "VK_QUEUE_TRANSFER_BIT")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "VK_QUEUE_SPARSE_BINDING_BIT")
	}
	if flags&vk.QueueProtectedBit > 0 {
		properties = append(properties, "VK_QUEUE_PROTECTED_BIT")
	}
	return properties
}
