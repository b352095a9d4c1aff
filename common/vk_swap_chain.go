package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

// SwapChain owns the rotating set of presentable images together with the views and framebuffers
// derived from them. The three are destroyed together and recreated together whenever the surface
// changes, so they live in one type.
type SwapChain struct {
	supDetails SwapChainDetails
	Handle     vk.Swapchain

	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D

	Images   []vk.Image
	ImgViews []vk.ImageView

	FrameBuffers []vk.Framebuffer
}

func NewSwapChain(dc *Device, win *Window) (*SwapChain, error) {
	sc := &SwapChain{}
	sc.chooseConfiguration(dc, win)
	if err := sc.createSwapChainHandle(dc, win); err != nil {
		return nil, err
	}
	sc.readImages(dc)
	if err := sc.createImageViews(dc); err != nil {
		return nil, err
	}
	return sc, nil
}

// CreateFrameBuffers binds one framebuffer per image view to the given render pass. Split from
// NewSwapChain because the render pass itself is created from the swap chain format, after it.
func (sc *SwapChain) CreateFrameBuffers(dc *Device, renderPass vk.RenderPass) error {
	sc.FrameBuffers = make([]vk.Framebuffer, len(sc.ImgViews))
	for i := range sc.ImgViews {
		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			PNext:           nil,
			Flags:           0,
			RenderPass:      renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{sc.ImgViews[i]},
			Width:           sc.Extent.Width,
			Height:          sc.Extent.Height,
			Layers:          1,
		}
		fb, err := VkCreateFrameBuffer(dc.Device, &framebufferInfo, nil)
		if err != nil {
			return fmt.Errorf("create frame buffer [%d]: %w", i, err)
		}
		sc.FrameBuffers[i] = fb
	}
	log.Printf("Successfully created %d frame buffers", len(sc.FrameBuffers))
	return nil
}

func (sc *SwapChain) chooseConfiguration(dc *Device, win *Window) {
	sc.supDetails = ReadSwapChainSupportDetails(dc.PhysicalDevice, win.Surf)
	sc.Format = sc.supDetails.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear)
	sc.PresentMode = sc.supDetails.selectSwapPresentMode(vk.PresentModeMailbox)
	drawW, drawH := win.DrawableSize()
	sc.Extent = sc.supDetails.selectSwapExtent(drawW, drawH)
}

func (sc *SwapChain) createSwapChainHandle(dc *Device, win *Window) error {
	imgCount := clampImageCount(sc.supDetails.capabilities.MinImageCount, sc.supDetails.capabilities.MaxImageCount)

	// Depending on whether our queue families are the same for graphics and presentation, we need to choose
	// different swap chain configurations: https://vulkan-tutorial.com/Drawing_a_triangle/Presentation/Swap_chain
	sharingMode, qFamIndices := chooseSharingMode(*dc.QFamilies.GraphicsFamily, *dc.QFamilies.PresentFamily)

	createInfo := &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Surface:               win.Surf,
		MinImageCount:         imgCount,
		ImageFormat:           sc.Format.Format,
		ImageColorSpace:       sc.Format.ColorSpace,
		ImageExtent:           sc.Extent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(qFamIndices)),
		PQueueFamilyIndices:   qFamIndices,
		PreTransform:          sc.supDetails.capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           sc.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          vk.NullSwapchain,
	}

	var err error
	sc.Handle, err = VkCreateSwapChain(dc.Device, createInfo, nil)
	if err != nil {
		return fmt.Errorf("create swap chain: %w", err)
	}
	log.Println("Successfully created swap chain")
	return nil
}

func (sc *SwapChain) readImages(dc *Device) {
	sc.Images = ReadSwapChainImages(dc.Device, sc.Handle)
	log.Printf("Read %d swap chain image handles", len(sc.Images))
}

func (sc *SwapChain) createImageViews(dc *Device) error {
	sc.ImgViews = make([]vk.ImageView, len(sc.Images))
	for i := range sc.Images {
		createInfo := &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			PNext:    nil,
			Flags:    0,
			Image:    sc.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   sc.Format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}
		var err error
		sc.ImgViews[i], err = VkCreateImageView(dc.Device, createInfo, nil)
		if err != nil {
			return fmt.Errorf("create image view [%d]: %w", i, err)
		}
	}
	log.Printf("Successfully created %d image views", len(sc.ImgViews))
	return nil
}

// Destroy releases the framebuffers and image views before the swap chain handle they were derived
// from. Images are owned by the swap chain and vanish with it, they are never destroyed one by one.
func (sc *SwapChain) Destroy(dc *Device) {
	for i := range sc.FrameBuffers {
		vk.DestroyFramebuffer(dc.Device, sc.FrameBuffers[i], nil)
	}
	for i := range sc.ImgViews {
		vk.DestroyImageView(dc.Device, sc.ImgViews[i], nil)
	}
	vk.DestroySwapchain(dc.Device, sc.Handle, nil)
}

// SwapChainDetails is the capability snapshot the selection policy runs on. All binding Deref
// mechanics happen while reading the snapshot, the select functions below are plain lookups.
type SwapChainDetails struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

// selectSwapSurfaceFormat prefers the desired format/color-space pair anywhere in the list and
// falls back to the first entry the driver offered.
func (s *SwapChainDetails) selectSwapSurfaceFormat(desiredFormat vk.Format, desiredColorSpace vk.ColorSpace) vk.SurfaceFormat {
	for _, af := range s.formats {
		if af.Format == desiredFormat && af.ColorSpace == desiredColorSpace {
			return af
		}
	}
	fallbackFormat := s.formats[0]
	log.Printf("Did not find preferred SurfaceFormat, selecting first one available. (%v)", fallbackFormat)
	return fallbackFormat
}

// selectSwapPresentMode prefers the desired mode anywhere in the list and falls back to FIFO,
// the only mode every driver has to offer.
func (s *SwapChainDetails) selectSwapPresentMode(desiredMode vk.PresentMode) vk.PresentMode {
	for _, pm := range s.presentModes {
		if pm == desiredMode {
			return pm
		}
	}
	fallbackMode := vk.PresentModeFifo
	log.Printf("Did not find preferred PresentMode, selecting FIFO. (%v)", fallbackMode)
	return fallbackMode
}

// selectSwapExtent clamps the window's drawable size component-wise into the min/max image extent
// the surface reports. Some window managers report differing units here, which is why the drawable
// size in pixels is the input rather than the window size.
func (s *SwapChainDetails) selectSwapExtent(drawableWidth, drawableHeight uint32) vk.Extent2D {
	return vk.Extent2D{
		Width:  ClampUint32(drawableWidth, s.capabilities.MinImageExtent.Width, s.capabilities.MaxImageExtent.Width),
		Height: ClampUint32(drawableHeight, s.capabilities.MinImageExtent.Height, s.capabilities.MaxImageExtent.Height),
	}
}

// clampImageCount asks for one image more than the driver minimum so the renderer never has to
// wait on the driver's bookkeeping, capped at the maximum when the surface reports one (0 = no cap).
func clampImageCount(minImageCount, maxImageCount uint32) uint32 {
	imgCount := minImageCount + 1
	if maxImageCount > 0 && imgCount > maxImageCount {
		imgCount = maxImageCount
	}
	return imgCount
}

// chooseSharingMode returns CONCURRENT across both families when graphics and present indices
// differ, EXCLUSIVE (with no index list) when they are the same family.
func chooseSharingMode(graphicsFamily, presentFamily uint32) (vk.SharingMode, []uint32) {
	if graphicsFamily != presentFamily {
		return vk.SharingModeConcurrent, []uint32{graphicsFamily, presentFamily}
	}
	return vk.SharingModeExclusive, nil
}
