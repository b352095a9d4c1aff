package main

import "C"
import (
	"log"
	"os"
	"runtime"

	"github.com/nashiradeer/learn-vulkan/renderer"

	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL and the Vulkan loader expect their calls to stay on the thread they were initialized on
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting triangle renderer")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func onIteration(event sdl.Event, c *renderer.Core) {
	// Window handling and ESC-to-quit are covered by the loop itself, nothing extra to do yet
}

func main() {
	core, err := renderer.NewRenderCore()
	if err != nil {
		log.Fatalf("Failed to initialize render core: %v", err)
	}
	if err := core.Loop(onIteration); err != nil {
		log.Fatalf("Render loop aborted: %v", err)
	}
	core.Destroy()
}
