package root

import (
	"fmt"
	"log"
	"time"

	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/input"
	"carousel-frame/pkg/performance"
	"carousel-frame/pkg/settings"
	"carousel-frame/pkg/timeline"
	"carousel-frame/screens/gallery"
	"carousel-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	monitorWindow = 120
	reportEvery   = 600 // frames between performance log lines
)

// NewRootScreen creates the gallery for images and builds the carousel.
// frameBudget is the time one frame of the game loop may take.
func NewRootScreen(window *sdl.Window, renderer *sdl.Renderer, cfg settings.Settings, images []string, frameBudget time.Duration) (*RootScreen, error) {
	opts, err := cfg.ControllerOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid navigation settings: %w", err)
	}

	rs := &RootScreen{
		window:       window,
		renderer:     renderer,
		queue:        timeline.NewQueue(time.Now()),
		keyTracker:   input.NewKeyPressTracker(),
		mouseTracker: input.NewMousePressTracker(),
		monitor:      performance.NewFrameMonitor(monitorWindow, frameBudget),
		pacer:        performance.NewFramePacer(),
	}

	// Initialize UI components
	fonts, err := ui.LoadFonts()
	if err != nil {
		log.Printf("Warning: Failed to initialize fonts: %v", err)
	}
	rs.fonts = fonts

	w, h := window.GetSize()
	rs.gallery = gallery.NewScreen(renderer, fonts, rs.queue, w, h)

	controller, err := carousel.New(images, rs.gallery, opts...)
	if err != nil {
		rs.Close()
		return nil, err
	}
	rs.controller = controller
	rs.controller.Build()

	if performance.LogMemorySnapshot("gallery loaded") >= performance.MemoryPressureHigh {
		log.Printf("Warning: %d images loaded under memory pressure, consider a smaller collection", len(images))
	}

	return rs, nil
}

// Update runs due carousel callbacks and handles input
func (rs *RootScreen) Update() error {
	rs.queue.Tick(time.Now())

	// Get current keyboard state
	rs.keyState = sdl.GetKeyboardState()
	// Get current mouse position and buttons
	rs.mouseX, rs.mouseY, rs.mouseButtons = sdl.GetMouseState()

	if rs.controller.OverlayOpen() {
		rs.handleOverlayKeys()
	} else {
		rs.handleViewerKeys()
	}
	rs.handleMouse()
	return nil
}

// HandleEvent reacts to window events delivered by the game loop
func (rs *RootScreen) HandleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			rs.gallery.Resize(e.Data1, e.Data2)
			rs.controller.ApplyStackLayout()
		}
	}
}

// Draw renders the complete frame using SDL2
func (rs *RootScreen) Draw() error {
	rs.gallery.Draw()

	// Present the complete frame
	rs.renderer.Present()
	return nil
}

// ShouldDraw reports whether this frame is drawn. Draws are thinned out
// while they run slower than the frame budget allows.
func (rs *RootScreen) ShouldDraw() bool {
	return rs.pacer.ShouldDraw(rs.monitor.Report())
}

// RecordFrame feeds frame timings of a drawn frame to the monitor and logs a report periodically
func (rs *RootScreen) RecordFrame(update, draw time.Duration) {
	rs.monitor.RecordFrame(update, draw)
	if rs.monitor.Frames()%reportEvery == 0 {
		report := rs.monitor.Report()
		log.Printf("Frames: %s", report)
		if !report.IsHealthy {
			performance.LogMemorySnapshot("slow frames")
		}
	}
}

// Close cleans up resources
func (rs *RootScreen) Close() {
	if rs.gallery != nil {
		rs.gallery.Close()
	}
	if rs.fonts != nil {
		rs.fonts.Close()
	}
}
