package root

import (
	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/gesture"
	"carousel-frame/pkg/input"
	"carousel-frame/screens/gallery"

	"github.com/veandco/go-sdl2/sdl"
)

var overlayKeys = map[sdl.Scancode]carousel.Key{
	sdl.SCANCODE_LEFT:   carousel.KeyLeft,
	sdl.SCANCODE_RIGHT:  carousel.KeyRight,
	sdl.SCANCODE_RETURN: carousel.KeyEnter,
	sdl.SCANCODE_ESCAPE: carousel.KeyEscape,
}

var overlayScancodes = []sdl.Scancode{
	sdl.SCANCODE_LEFT,
	sdl.SCANCODE_RIGHT,
	sdl.SCANCODE_RETURN,
	sdl.SCANCODE_ESCAPE,
}

// handleViewerKeys opens the gallery when down or space is pressed
func (rs *RootScreen) handleViewerKeys() {
	if _, ok := rs.keyTracker.FirstPressed(rs.keyState, sdl.SCANCODE_DOWN, sdl.SCANCODE_SPACE); ok {
		rs.controller.OpenOverlay()
	}
}

// handleOverlayKeys forwards navigation keys to the carousel
func (rs *RootScreen) handleOverlayKeys() {
	if sc, ok := rs.keyTracker.FirstPressed(rs.keyState, overlayScancodes...); ok {
		rs.controller.HandleKey(overlayKeys[sc])
	}
}

// handleMouse turns a press and release of the left button into a click or,
// when the pointer moved far enough while the gallery is open, a swipe.
// Touch input arrives here as synthesized mouse events.
func (rs *RootScreen) handleMouse() {
	x, y := float64(rs.mouseX), float64(rs.mouseY)

	switch rs.mouseTracker.Poll(rs.mouseButtons, sdl.ButtonLMask()) {
	case input.EdgeDown:
		rs.swipe.Begin(x, y)
	case input.EdgeUp:
		dx, dy, ok := rs.swipe.End(x, y)
		if !ok {
			return
		}
		if rs.controller.OverlayOpen() && gesture.Classify(dx, dy, rs.controller.SwipeThreshold()) != gesture.None {
			rs.controller.HandleSwipe(dx, dy)
			return
		}
		rs.click(rs.mouseX, rs.mouseY)
	}
}

// click activates whatever is under the pointer
func (rs *RootScreen) click(x, y int32) {
	if !rs.controller.OverlayOpen() {
		if gallery.InRect(rs.gallery.OpenButtonRect(), x, y) {
			rs.controller.OpenOverlay()
		}
		return
	}

	if gallery.InRect(rs.gallery.CloseButtonRect(), x, y) {
		rs.controller.CloseOverlay()
		return
	}
	if dot := rs.gallery.DotAt(x, y); dot >= 0 {
		rs.controller.SnapTo(dot)
		return
	}
	if card := rs.gallery.CardAt(x, y); card >= 0 {
		rs.controller.SelectCard(card)
	}
}
