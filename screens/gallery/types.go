package gallery

import (
	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/motion"
	"carousel-frame/pkg/timeline"
	"carousel-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

// Screen draws the carousel with SDL2. It implements carousel.Renderer and
// delegates scheduling to a timeline queue ticked by the game loop.
type Screen struct {
	renderer *sdl.Renderer
	fonts    *ui.Fonts
	queue    *timeline.Queue

	width, height int32

	// Decoded images keyed by reference; nil marks a reference that failed to load
	textures map[string]*sdl.Texture

	cards []*cardView
	dots  []bool

	viewer     viewerLayer
	clones     map[int]*viewerLayer
	cloneOrder []int
	nextClone  int

	overlay overlayView
}

// cardView is the drawn state of one card
type cardView struct {
	ref    string
	state  motion.Tween[carousel.CardState]
	marker carousel.Marker
	placed bool // false until the first state arrives
}

// viewerLayer is one image layer of the viewer
type viewerLayer struct {
	ref   string
	state motion.Tween[carousel.ViewerState]
}

// overlayView is the full-screen gallery presentation
type overlayView struct {
	visible     bool // drawn at all; cleared on release
	alpha       motion.Tween[float64]
	backdropRef string
	backdrop    motion.Tween[carousel.Rect]
}
