package common

import (
	"unsafe"
)

// Provides general helper functions for comparisons and conversions

// AllOfAinB comparison function to ensure a given list is fully contained in another. This is
// mainly used to check for extension and layer support during the initialization process.
func AllOfAinB(a []string, b []string) bool {
	for _, _a := range a {
		isIn := false
		for _, _b := range b {
			if _a == _b {
				isIn = true
				break
			}
		}
		if !isIn {
			return false
		}
	}
	return true
}

// FirstNotInB returns the first element of a that is missing from b, to name the offender
// when a support check fails.
func FirstNotInB(a []string, b []string) string {
	for _, _a := range a {
		isIn := false
		for _, _b := range b {
			if _a == _b {
				isIn = true
				break
			}
		}
		if !isIn {
			return _a
		}
	}
	return ""
}

// TerminatedStr ensures the given string is \x00 terminated as vulkan expects this in certain structs
func TerminatedStr(s string) string {
	if s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

func TerminatedStrs(strs []string) []string {
	for i := range strs {
		strs[i] = TerminatedStr(strs[i])
	}
	return strs
}

// ClampUint32 clamps v into [lo, hi]. Used component-wise for the swap extent policy.
func ClampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AsUint32Arr casts a []byte to []uint32 using nasty conversion logic taken from:
// https://github.com/vulkan-go/asche/blob/master/util.go and is only used to construct shader modules.
// It should be equivalent to C++ 'reinterpret_cast<const uint32_t*>(code.data());'
// See: https://vulkan-tutorial.com/Drawing_a_triangle/Graphics_pipeline_basics/Shader_modules
func AsUint32Arr(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}
