package root

import (
	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/gesture"
	"carousel-frame/pkg/input"
	"carousel-frame/pkg/performance"
	"carousel-frame/pkg/timeline"
	"carousel-frame/screens/gallery"
	"carousel-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

// RootScreen owns the window and wires input to the carousel
type RootScreen struct {
	// SDL2 rendering
	window   *sdl.Window
	renderer *sdl.Renderer

	fonts   *ui.Fonts
	gallery *gallery.Screen

	// Deferred callbacks of the carousel, run from Update
	queue      *timeline.Queue
	controller *carousel.Controller

	// Input tracking
	keyState []uint8
	// Mouse button state bitmask from sdl.GetMouseState
	mouseButtons uint32
	mouseX       int32
	mouseY       int32

	// Key press state tracking to avoid duplicate calls
	keyTracker input.KeyPressTracker
	// Mouse press state tracking to turn presses into clicks and swipes
	mouseTracker input.MousePressTracker
	swipe        gesture.Tracker

	monitor *performance.FrameMonitor
	pacer   *performance.FramePacer
}
