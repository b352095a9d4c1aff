package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0
const ENGINE_NAME = "No Engine"
const ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH = 1, 0, 0

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// Vulkan spec go bindings = v1.0.7, as per: https://github.com/goki/vulkan = 1.3.239
const VK_SPEC_MAJOR, VK_SPEC_MINOR, VK_SPEC_PATCH int = 1, 3, 239

// DEBUG_REPORT_EXTENSION carries the driver diagnostics of the validation layers to our listener.
const DEBUG_REPORT_EXTENSION = "VK_EXT_debug_report"

// Window encapsulates all window handling components and vulkan access objects needed to actually draw on
// screen. It uses SDL for window management and user input, simplifying the process of getting a vk.Surface
// to draw on and interact with. It is the root of the ownership chain: everything else is created from its
// instance and surface, so it must be destroyed last.
type Window struct {
	sdlVersion string
	vkVersion  string

	Win       *sdl.Window
	Resized   bool
	Minimized bool
	Close     bool

	Inst vk.Instance
	Surf vk.Surface

	validation bool
	dbg        vk.DebugReportCallback
}

// NewWindow constructs a new Window by initializing SDL, the Vulkan API, the vk.Instance (with the
// optional debug listener) and the vk.Surface, in that order. Passing an empty layer list disables
// validation entirely.
func NewWindow(title string, w int32, h int32, validationLayers []string) (*Window, error) {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
		vkVersion:  fmt.Sprintf("v%d.%d.%d", VK_SPEC_MAJOR, VK_SPEC_MINOR, VK_SPEC_PATCH),
		Resized:    false,
		Minimized:  false,
		Close:      false,
		validation: len(validationLayers) > 0,
		dbg:        vk.NullDebugReportCallback,
	}
	if err := window.initSDLWindow(title, w, h); err != nil {
		return nil, err
	}
	if err := window.initVulkan(); err != nil {
		return nil, err
	}
	if err := window.createVulkanInstance(title, validationLayers); err != nil {
		return nil, err
	}
	if err := window.createDebugListener(); err != nil {
		return nil, err
	}
	if err := window.createSdlVkSurface(); err != nil {
		return nil, err
	}
	log.Printf("Generated SDL/Vulkan window - SDL: %s Vulkan Spec: %s", window.sdlVersion, window.vkVersion)
	return window, nil
}

// Destroy tears down all instances created by NewWindow in reverse creation order: the debug
// listener, the surface and the instance must all go before the instance handle becomes invalid,
// the SDL window goes last.
func (w *Window) Destroy() {
	if w.dbg != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(w.Inst, w.dbg, nil)
	}
	vk.DestroySurface(w.Inst, w.Surf, nil)
	vk.DestroyInstance(w.Inst, nil)
	if err := w.Win.Destroy(); err != nil {
		log.Printf("Failed to destroy SDL window: %v", err)
	}
}

// DrawableSize reports the current framebuffer size in pixels, which feeds the swap extent policy.
func (w *Window) DrawableSize() (uint32, uint32) {
	width, height := w.Win.VulkanGetDrawableSize()
	return uint32(width), uint32(height)
}

func (w *Window) initSDLWindow(title string, width int32, height int32) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("initialize SDL: %w", err)
	}
	log.Println("Initialized SDL")
	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_VULKAN,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	log.Printf("Created SDL window for use with Vulkan. Title: \"%s\", Width: %d, Height: %d", title, width, height)
	w.Win = win
	return nil
}

func (w *Window) initVulkan() error {
	// Find and load Vulkan addresses to be able to call driver level functions via provided mechanism
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("initialize Vulkan API: %w", err)
	}
	return nil
}

func (w *Window) createVulkanInstance(title string, validationLayers []string) error {
	requiredExtensions := w.Win.VulkanGetInstanceExtensions()
	if w.validation {
		requiredExtensions = append(requiredExtensions, DEBUG_REPORT_EXTENSION)
	}
	if err := checkInstanceExtensionSupport(requiredExtensions); err != nil {
		return err
	}

	if w.validation {
		log.Printf("Validation enabled, checking layer support")
		if err := checkValidationLayerSupport(validationLayers); err != nil {
			return err
		}
	}
	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PNext:              nil,
		PApplicationName:   TerminatedStr(title),
		ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		PEngineName:        TerminatedStr(ENGINE_NAME),
		EngineVersion:      vk.MakeVersion(ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH),
		ApiVersion:         vk.MakeVersion(1, 0, 0),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		PApplicationInfo:        applicationInfo,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: TerminatedStrs(requiredExtensions),
	}
	if w.validation {
		createInfo.EnabledLayerCount = uint32(len(validationLayers))
		createInfo.PpEnabledLayerNames = TerminatedStrs(validationLayers)
	}
	ins, err := VkCreateInstance(createInfo, nil)
	if err != nil {
		return fmt.Errorf("create vk instance: %w", err)
	}
	w.Inst = ins
	log.Println("Successfully created vk instance")
	return nil
}

func (w *Window) createDebugListener() error {
	if !w.validation {
		return nil
	}
	dbg, err := createDebugListener(w.Inst)
	if err != nil {
		return fmt.Errorf("create debug listener: %w", err)
	}
	w.dbg = dbg
	log.Println("Registered validation debug listener")
	return nil
}

func (w *Window) createSdlVkSurface() error {
	surf, err := SdlCreateVkSurface(w.Win, w.Inst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceCreate, err)
	}
	w.Surf = surf
	return nil
}
