package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/veandco/go-sdl2/sdl"

	"carousel-frame/pkg/imageFs"
	"carousel-frame/pkg/settings"
	"carousel-frame/screens/root"
)

const (
	targetFPS       = 60
	fallbackWidth   = 1920
	fallbackHeight  = 1080
	cacheDir        = "assets/cache"
	downloadTimeout = 5 * time.Minute
)

// videoDriver is an SDL video driver with the hints it needs
type videoDriver struct {
	name        string
	accelerated bool
	hints       map[string]string
}

var (
	darwinDrivers = []videoDriver{
		{name: "cocoa", accelerated: true},
		{name: "software"},
	}
	linuxDrivers = []videoDriver{
		// vsync keeps kmsdrm from issuing async flips the Pi's VC4 rejects
		{name: "kmsdrm", accelerated: true, hints: map[string]string{
			"SDL_KMSDRM_REQUIRE_DRM_MASTER": "1",
			"SDL_RENDER_VSYNC":              "1",
		}},
		{name: "fbcon", hints: map[string]string{"SDL_FBDEV": "/dev/fb0"}},
		{name: "wayland", hints: map[string]string{"SDL_VIDEO_WAYLAND_WMCLASS": "carousel-frame"}},
		{name: "x11"},
		{name: "software"},
	}
)

func main() {
	// SDL must stay on the main thread
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	windowTitle := os.Getenv("CAROUSEL_TITLE")
	if windowTitle == "" {
		windowTitle = "Carousel Frame"
	}

	// Load settings and resolve the images before opening the window
	settingsPath := settings.Path()
	cfg := settings.Load(settingsPath)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings in %s: %v", settingsPath, err)
	}

	images, err := loadImages(cfg)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}
	log.Printf("Images resolved | count=%d policy=%s closeOnSelect=%t", len(images), cfg.NavigationPolicy, cfg.CloseOnSelect)

	driver, err := initializeSDL2()
	if err != nil {
		log.Fatalf("Failed to initialize SDL2: %v", err)
	}
	defer sdl.Quit()

	screenWidth, screenHeight := displaySize()
	log.Printf("Starting %s | Resolution: %dx%d | Driver: %s", windowTitle, screenWidth, screenHeight, driver.name)

	window, err := sdl.CreateWindow(windowTitle, 0, 0, screenWidth, screenHeight, sdl.WINDOW_SHOWN|sdl.WINDOW_FULLSCREEN)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := createRenderer(window, driver)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	screen, err := root.NewRootScreen(window, renderer, cfg, images, time.Second/targetFPS)
	if err != nil {
		log.Fatalf("Failed to create carousel: %v", err)
	}
	defer screen.Close()

	runGameLoop(screen)

	log.Println("Carousel Frame shutting down...")
}

// loadImages resolves the configured image source to local files, creating
// an S3 downloader only when a source lives in S3
func loadImages(cfg settings.Settings) ([]string, error) {
	var dl *imageFs.Downloader
	if imageFs.NeedsS3(cfg) {
		client, err := imageFs.NewS3Client()
		if err != nil {
			return nil, err
		}
		dl = &imageFs.Downloader{
			Client:      client,
			Dir:         cacheDir,
			Concurrency: cfg.DownloadConcurrency,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	return imageFs.Resolve(ctx, cfg, dl)
}

// driverOrder lists the video drivers to try on goos. A driver named in env
// comes first and is not tried twice.
func driverOrder(goos, env string) []videoDriver {
	drivers := linuxDrivers
	if goos == "darwin" {
		drivers = darwinDrivers
	}
	if env == "" {
		return drivers
	}

	order := []videoDriver{{name: env, accelerated: true}}
	for _, d := range drivers {
		if d.name == env {
			order[0] = d
			continue
		}
		order = append(order, d)
	}
	return order
}

// initializeSDL2 tries the platform's video drivers in order
func initializeSDL2() (videoDriver, error) {
	drivers := driverOrder(runtime.GOOS, os.Getenv("SDL_VIDEODRIVER"))

	// Touch screens drive the carousel through synthesized mouse events
	sdl.SetHint("SDL_TOUCH_MOUSE_EVENTS", "1")
	sdl.SetHint(sdl.HINT_VIDEO_MINIMIZE_ON_FOCUS_LOSS, "0")

	var errs []error
	for _, d := range drivers {
		sdl.SetHint(sdl.HINT_VIDEODRIVER, d.name)
		for k, v := range d.hints {
			sdl.SetHint(k, v)
		}

		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			log.Printf("SDL2 initialization failed with %s driver: %v", d.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			sdl.Quit()
			continue
		}
		log.Printf("SDL2 initialized with %s driver", d.name)
		return d, nil
	}
	return videoDriver{}, fmt.Errorf("all SDL2 video drivers failed: %w", errors.Join(errs...))
}

// displaySize returns the size of the first display, or a fallback
func displaySize() (int32, int32) {
	mode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		log.Printf("Warning: Failed to get display mode, using fallback: %v", err)
		return fallbackWidth, fallbackHeight
	}
	return mode.W, mode.H
}

// createRenderer prefers an accelerated renderer on GPU drivers and falls
// back to software rendering
func createRenderer(window *sdl.Window, driver videoDriver) (*sdl.Renderer, error) {
	if driver.accelerated {
		renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
		if err == nil {
			renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
			return renderer, nil
		}
		log.Printf("Hardware acceleration failed for %s, trying software: %v", driver.name, err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	if err != nil {
		return nil, err
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return renderer, nil
}

// runGameLoop polls events, updates and draws at targetFPS until quit
func runGameLoop(screen *root.RootScreen) {
	frameTime := time.Second / targetFPS

	for {
		frameStart := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return
			}
			screen.HandleEvent(event)
		}

		if err := screen.Update(); err != nil {
			log.Printf("Screen update error: %v", err)
			return
		}

		// Draws are thinned out while they run over budget
		if screen.ShouldDraw() {
			drawStart := time.Now()
			if err := screen.Draw(); err != nil {
				log.Printf("Screen draw error: %v", err)
				return
			}
			screen.RecordFrame(drawStart.Sub(frameStart), time.Since(drawStart))
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
