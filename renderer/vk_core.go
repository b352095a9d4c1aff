package renderer

import "C"
import (
	"fmt"
	"log"
	"math"
	"time"

	com "github.com/nashiradeer/learn-vulkan/common"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const PROGRAM_NAME = "Vulkan triangle"
const WINDOW_WIDTH, WINDOW_HEIGHT int32 = 800, 600
const MAX_FRAMES_IN_FLIGHT = 2

type Core struct {
	// OS/Window level
	Win    *com.Window
	device *com.Device

	// Target level
	swapChain *com.SwapChain

	// Drawing infrastructure level
	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	pipelines      []vk.Pipeline
	commandPool    vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int32
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence
}

// Externally facing functions

// NewRenderCore builds the full chain from SDL window to per-frame sync objects. Creation order
// matters throughout, every step depends on handles produced by the ones before it.
func NewRenderCore() (*Core, error) {
	c := &Core{}
	if err := c.initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Core) initialize() error {
	var err error
	c.Win, err = com.NewWindow(PROGRAM_NAME, WINDOW_WIDTH, WINDOW_HEIGHT, com.VALIDATION_LAYERS)
	if err != nil {
		return err
	}
	c.device, err = com.NewDevice(c.Win)
	if err != nil {
		return err
	}
	c.swapChain, err = com.NewSwapChain(c.device, c.Win)
	if err != nil {
		return err
	}

	if err = c.createRenderPass(); err != nil {
		return err
	}
	if err = c.createGraphicsPipeline(); err != nil {
		return err
	}
	if err = c.swapChain.CreateFrameBuffers(c.device, c.renderPass); err != nil {
		return err
	}
	if err = c.createCommandPool(); err != nil {
		return err
	}
	if err = c.createCommandBuffers(); err != nil {
		return err
	}
	return c.createSyncObjects()
}

type iterationHandler func(sdl.Event, *Core)

// Loop runs the event loop for user interaction and contains the primary draw call that renders
// each frame. It provides the basic functionality a well-behaved app should have: not rendering
// while minimized, close on the window 'close button', close on ESC key. Resize events only set
// a flag here, the swap chain is swapped out by drawFrame once the current image made it through.
func (c *Core) Loop(ih iterationHandler) error {
	t0 := time.Now()
	frames := 0
	var event sdl.Event
	c.Win.Close = false
	for !c.Win.Close {
		for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				c.Win.Close = true
			case *sdl.WindowEvent:
				if ev.Event == sdl.WINDOWEVENT_RESIZED {
					c.Win.Resized = true
				} else if ev.Event == sdl.WINDOWEVENT_MINIMIZED {
					c.Win.Minimized = true
				} else if ev.Event == sdl.WINDOWEVENT_RESTORED {
					c.Win.Minimized = false
				}
			case *sdl.KeyboardEvent:
				if ev.Keysym.Sym == sdl.K_ESCAPE {
					c.Win.Close = true
				}
			}
			ih(event, c)
		}
		if !c.Win.Minimized {
			if err := c.drawFrame(); err != nil {
				return err
			}
			frames++
		} else {
			// Sleep until new events change c.Win.Minimized
			sdl.WaitEvent()
		}
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, rough avg fps: %v fps", dt, float64(frames)/dt.Seconds())
	return nil
}

// Destroy tears the whole chain down in reverse creation order. The device must drain first so
// no queued work still references the objects being released.
func (c *Core) Destroy() {
	c.device.WaitIdle()

	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		vk.DestroySemaphore(c.device.Device, c.imageAvailableSems[i], nil)
		vk.DestroySemaphore(c.device.Device, c.renderFinishedSems[i], nil)
		vk.DestroyFence(c.device.Device, c.inFlightFens[i], nil)
	}
	vk.DestroyCommandPool(c.device.Device, c.commandPool, nil)

	for i := range c.pipelines {
		vk.DestroyPipeline(c.device.Device, c.pipelines[i], nil)
	}
	vk.DestroyPipelineLayout(c.device.Device, c.pipelineLayout, nil)
	vk.DestroyRenderPass(c.device.Device, c.renderPass, nil)

	c.swapChain.Destroy(c.device)
	c.device.Destroy()
	c.Win.Destroy()
}

func (c *Core) createCommandPool() error {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		PNext:            nil,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: *c.device.QFamilies.GraphicsFamily,
	}
	commandPool, err := com.VkCreateCommandPool(c.device.Device, &poolInfo, nil)
	if err != nil {
		return fmt.Errorf("create command pool: %w", err)
	}
	log.Printf("Successfully created command pool")
	c.commandPool = commandPool
	return nil
}

func (c *Core) createCommandBuffers() error {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		PNext:              nil,
		CommandPool:        c.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(MAX_FRAMES_IN_FLIGHT),
	}
	buffers, err := com.VKSAllocateCommandBuffers(c.device.Device, &allocInfo)
	if err != nil {
		return fmt.Errorf("allocate command buffers: %w", err)
	}
	log.Printf("Successfully allocated %d command buffers", len(buffers))
	c.commandBuffers = buffers
	return nil
}

// createSyncObjects builds one semaphore pair and one fence per frame slot. The fences start
// signaled so the very first drawFrame does not dead-wait on work that was never submitted.
func (c *Core) createSyncObjects() error {
	ias := make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	rfs := make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	iff := make([]vk.Fence, MAX_FRAMES_IN_FLIGHT)
	semCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: nil,
		Flags: 0,
	}
	fenCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		PNext: nil,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		var err error
		if ias[i], err = com.VkCreateSemaphore(c.device.Device, &semCreateInfo, nil); err != nil {
			return fmt.Errorf("create image-available semaphore [%d]: %w", i, err)
		}
		if rfs[i], err = com.VkCreateSemaphore(c.device.Device, &semCreateInfo, nil); err != nil {
			return fmt.Errorf("create render-finished semaphore [%d]: %w", i, err)
		}
		if iff[i], err = com.VkCreateFence(c.device.Device, &fenCreateInfo, nil); err != nil {
			return fmt.Errorf("create in-flight fence [%d]: %w", i, err)
		}
	}
	log.Printf("Successfully created sync objects for %d frames in flight", MAX_FRAMES_IN_FLIGHT)
	c.imageAvailableSems = ias
	c.renderFinishedSems = rfs
	c.inFlightFens = iff
	return nil
}

// Drawing and derivative functionality

func (c *Core) recordDrawCommands(buffer vk.CommandBuffer, imageIdx uint32) error {
	// Begin recording
	beginInfo := vk.CommandBufferBeginInfo{
		SType:            vk.StructureTypeCommandBufferBeginInfo,
		PNext:            nil,
		Flags:            0,
		PInheritanceInfo: nil,
	}
	if err := vk.Error(vk.BeginCommandBuffer(buffer, &beginInfo)); err != nil {
		return fmt.Errorf("begin recording command buffer: %w", err)
	}

	// Start render pass
	renderArea := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: c.swapChain.Extent,
	}
	clearValues := []vk.ClearValue{
		vk.NewClearValue([]float32{0.01, 0.01, 0.01, 1}),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		PNext:           nil,
		RenderPass:      c.renderPass,
		Framebuffer:     c.swapChain.FrameBuffers[imageIdx],
		RenderArea:      renderArea,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)

	vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, c.pipelines[0])

	// Viewport and scissor are dynamic pipeline state, so they are set per recording. This keeps
	// the pipeline itself valid across window resizes.
	viewport := []vk.Viewport{
		{
			X:        0,
			Y:        0,
			Width:    float32(c.swapChain.Extent.Width),
			Height:   float32(c.swapChain.Extent.Height),
			MinDepth: 0,
			MaxDepth: 1.0,
		},
	}
	vk.CmdSetViewport(buffer, 0, 1, viewport)

	scissor := []vk.Rect2D{
		{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: c.swapChain.Extent,
		},
	}
	vk.CmdSetScissor(buffer, 0, 1, scissor)

	// The three vertices live in the vertex shader itself, no buffers are bound
	vk.CmdDraw(buffer, 3, 1, 0, 0)

	vk.CmdEndRenderPass(buffer)
	if err := vk.Error(vk.EndCommandBuffer(buffer)); err != nil {
		return fmt.Errorf("record command buffer: %w", err)
	}
	return nil
}

func (c *Core) drawFrame() error {
	// Wait for frame to be ready - signalled by the inFlightFens
	vk.WaitForFences(c.device.Device, 1, []vk.Fence{c.inFlightFens[c.currentFrameIdx]}, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(c.device.Device, c.swapChain.Handle, math.MaxUint64, c.imageAvailableSems[c.currentFrameIdx], nil, &imgIdx)
	// React on surface changes and other possible causes for failure (e.g.: Window resizing)
	if result == vk.ErrorOutOfDate {
		return c.recreateSwapChain()
	} else if result != vk.Success && result != vk.Suboptimal {
		return fmt.Errorf("acquire image: %w", vk.Error(result))
	}

	// Reset the fence only if we are actually going to execute work that will put the fence into the signalled state
	vk.ResetFences(c.device.Device, 1, []vk.Fence{c.inFlightFens[c.currentFrameIdx]})

	vk.ResetCommandBuffer(c.commandBuffers[c.currentFrameIdx], 0)
	if err := c.recordDrawCommands(c.commandBuffers[c.currentFrameIdx], imgIdx); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.imageAvailableSems[c.currentFrameIdx]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{c.commandBuffers[c.currentFrameIdx]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
	}
	if err := vk.Error(vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, c.inFlightFens[c.currentFrameIdx])); err != nil {
		return fmt.Errorf("submit command buffer: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{imgIdx},
		PResults:           nil,
	}
	result = vk.QueuePresent(c.device.PresentQ, &presentInfo)
	// React on surface changes and other possible causes for failure (e.g.: Window resizing)
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || c.Win.Resized {
		c.Win.Resized = false
		if err := c.recreateSwapChain(); err != nil {
			return err
		}
	} else if result != vk.Success {
		return fmt.Errorf("present image: %w", vk.Error(result))
	}

	c.currentFrameIdx = nextFrameIdx(c.currentFrameIdx)
	return nil
}

// nextFrameIdx advances the frame slot cursor, wrapping back to 0 after the last slot.
func nextFrameIdx(idx int32) int32 {
	return (idx + 1) % MAX_FRAMES_IN_FLIGHT
}

// recreateSwapChain rebuilds the swap chain and everything derived from its images against the
// current surface. The render pass and pipeline survive, the surface format does not change with
// the window size.
func (c *Core) recreateSwapChain() error {
	c.device.WaitIdle()
	c.swapChain.Destroy(c.device)

	var err error
	c.swapChain, err = com.NewSwapChain(c.device, c.Win)
	if err != nil {
		return err
	}
	return c.swapChain.CreateFrameBuffers(c.device, c.renderPass)
}
