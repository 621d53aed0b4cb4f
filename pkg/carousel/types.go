package carousel

import (
	"errors"
	"time"
)

// Transition timings. The renderer animates card and viewer properties over
// these same durations, so changing one side means changing the other.
const (
	RetreatDuration     = 500 * time.Millisecond // previous card sliding back into the stack
	AdvanceDuration     = 700 * time.Millisecond // target card coming forward
	ViewerSettleDelay   = 150 * time.Millisecond // gap between exit and enter of the viewer image
	ViewerFadeDuration  = 800 * time.Millisecond // viewer enter transition
	OverlayExitDuration = 500 * time.Millisecond // overlay fade-out before release
	BackdropDuration    = 700 * time.Millisecond // thumbnail-to-fullscreen backdrop morph
	SelectCloseDelay    = 700 * time.Millisecond // overlay close after a card is picked
)

// Stacking orders
const (
	FocusZ     = 2000
	StackBaseZ = 1000
)

// ErrNoImages is returned when a controller is built without images
var ErrNoImages = errors.New("carousel: image list is empty")

// CardState is the visual state of one card. Offsets and depth are in layout
// units, rotations in degrees.
type CardState struct {
	OffsetX float64
	OffsetY float64
	Depth   float64
	RotateY float64
	RotateX float64
	Scale   float64
	Opacity float64
	Z       int
	InFocus bool
}

// Marker flags a card as part of an in-flight navigation
type Marker int

const (
	MarkerIdle Marker = iota
	MarkerRetreating
	MarkerAdvancing
)

// String returns a human-readable marker name
func (m Marker) String() string {
	switch m {
	case MarkerIdle:
		return "Idle"
	case MarkerRetreating:
		return "Retreating"
	case MarkerAdvancing:
		return "Advancing"
	default:
		return "Unknown"
	}
}

// ViewerState describes one layer of the viewer image
type ViewerState struct {
	Opacity    float64
	Scale      float64
	OffsetY    float64
	Transition time.Duration // zero applies the state instantly
}

// Rect is an on-screen bounding box
type Rect struct {
	X, Y, W, H float64
}

// Key is a navigation key recognised while the overlay is open
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyEnter
	KeyEscape
)

// Scheduler defers work on the host's event loop
type Scheduler interface {
	After(d time.Duration, fn func())
	NextFrame(fn func())
}

// Renderer is everything the controller needs from the host. Implementations
// own all drawing; the controller only describes target states.
type Renderer interface {
	Scheduler

	CreateCard(index int, ref string)
	CreateDot(index int)
	SetCardState(index int, state CardState)
	SetCardMarker(index int, marker Marker)
	SetDot(index int, on bool)

	// SetViewer updates the live viewer layer. An empty ref keeps the current image.
	SetViewer(ref string, state ViewerState)
	// CloneViewer copies the live layer into a new exiting layer and returns its id
	CloneViewer() int
	SetViewerClone(id int, state ViewerState)
	RemoveViewerClone(id int)

	ShowOverlay()
	HideOverlay()
	ReleaseOverlay()
	// CardBounds reports where a card is currently drawn
	CardBounds(index int) Rect
	ViewportSize() (w, h float64)
	// MorphBackdrop shows ref behind the overlay, growing from 'from' to 'to'
	MorphBackdrop(ref string, from, to Rect, d time.Duration)
}
