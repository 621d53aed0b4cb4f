package gallery

import (
	"log"
	"time"

	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/motion"
	"carousel-frame/pkg/timeline"
	"carousel-frame/ui"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

// Timings of transitions the controller does not drive itself
const (
	overlayEnterDuration = 300 * time.Millisecond
	layoutDuration       = 600 * time.Millisecond
)

var _ carousel.Renderer = (*Screen)(nil)

// NewScreen creates the gallery renderer for a viewport of width x height
func NewScreen(renderer *sdl.Renderer, fonts *ui.Fonts, queue *timeline.Queue, width, height int32) *Screen {
	if err := img.Init(img.INIT_JPG | img.INIT_PNG | img.INIT_WEBP); err != nil {
		log.Printf("Warning: SDL_image init incomplete: %v", err)
	}
	return newScreen(renderer, fonts, queue, width, height)
}

func newScreen(renderer *sdl.Renderer, fonts *ui.Fonts, queue *timeline.Queue, width, height int32) *Screen {
	s := &Screen{
		renderer: renderer,
		fonts:    fonts,
		queue:    queue,
		width:    width,
		height:   height,
		textures: make(map[string]*sdl.Texture),
		clones:   make(map[int]*viewerLayer),
		viewer: viewerLayer{
			state: motion.NewTween(carousel.ViewerState{Opacity: 1, Scale: 1}, motion.LerpViewer),
		},
		overlay: overlayView{
			alpha:    motion.NewTween(0.0, motion.Lerp),
			backdrop: motion.NewTween(carousel.Rect{}, motion.LerpRect),
		},
	}
	s.overlay.alpha.SetCurve(motion.EaseOut)
	return s
}

func (s *Screen) now() time.Time {
	return s.queue.Now()
}

// After schedules fn on the game loop after d
func (s *Screen) After(d time.Duration, fn func()) {
	s.queue.After(d, fn)
}

// NextFrame schedules fn for the next game loop tick
func (s *Screen) NextFrame(fn func()) {
	s.queue.NextFrame(fn)
}

// CreateCard adds a card for ref and decodes its image
func (s *Screen) CreateCard(index int, ref string) {
	for len(s.cards) <= index {
		s.cards = append(s.cards, nil)
	}
	s.cards[index] = &cardView{
		ref:   ref,
		state: motion.NewTween(carousel.StackState(index), motion.LerpCard),
	}
	s.texture(ref)
}

// CreateDot adds an indicator dot
func (s *Screen) CreateDot(index int) {
	for len(s.dots) <= index {
		s.dots = append(s.dots, false)
	}
}

// SetCardState moves a card towards state. The first state a card receives
// is applied instantly; later ones animate over the duration matching the
// card's marker.
func (s *Screen) SetCardState(index int, state carousel.CardState) {
	card := s.card(index)
	if card == nil {
		return
	}
	if !card.placed {
		card.placed = true
		card.state.Jump(state)
		return
	}
	if card.state.Target() == state {
		return
	}
	card.state.Set(s.now(), state, transitionFor(card.marker))
}

func transitionFor(m carousel.Marker) time.Duration {
	switch m {
	case carousel.MarkerRetreating:
		return carousel.RetreatDuration
	case carousel.MarkerAdvancing:
		return carousel.AdvanceDuration
	default:
		return layoutDuration
	}
}

// SetCardMarker flags a card as retreating, advancing or idle
func (s *Screen) SetCardMarker(index int, marker carousel.Marker) {
	if card := s.card(index); card != nil {
		card.marker = marker
	}
}

// SetDot switches an indicator dot on or off
func (s *Screen) SetDot(index int, on bool) {
	if index >= 0 && index < len(s.dots) {
		s.dots[index] = on
	}
}

// SetViewer updates the live viewer layer
func (s *Screen) SetViewer(ref string, state carousel.ViewerState) {
	if ref != "" {
		s.viewer.ref = ref
		s.texture(ref)
	}
	s.viewer.state.Set(s.now(), state, state.Transition)
}

// CloneViewer freezes the live layer into an exiting copy drawn above it
func (s *Screen) CloneViewer() int {
	s.nextClone++
	id := s.nextClone

	current := s.viewer.state.Value(s.now())
	s.clones[id] = &viewerLayer{
		ref:   s.viewer.ref,
		state: motion.NewTween(current, motion.LerpViewer),
	}
	s.cloneOrder = append(s.cloneOrder, id)
	return id
}

// SetViewerClone animates an exiting copy
func (s *Screen) SetViewerClone(id int, state carousel.ViewerState) {
	if clone, ok := s.clones[id]; ok {
		clone.state.Set(s.now(), state, state.Transition)
	}
}

// RemoveViewerClone drops an exiting copy
func (s *Screen) RemoveViewerClone(id int) {
	if _, ok := s.clones[id]; !ok {
		return
	}
	delete(s.clones, id)
	for i, cid := range s.cloneOrder {
		if cid == id {
			s.cloneOrder = append(s.cloneOrder[:i], s.cloneOrder[i+1:]...)
			break
		}
	}
}

// ShowOverlay fades the gallery overlay in
func (s *Screen) ShowOverlay() {
	s.overlay.visible = true
	s.overlay.alpha.Set(s.now(), 1, overlayEnterDuration)
}

// HideOverlay fades the overlay out; it keeps being drawn until released
func (s *Screen) HideOverlay() {
	s.overlay.alpha.Set(s.now(), 0, carousel.OverlayExitDuration)
}

// ReleaseOverlay stops drawing the overlay and gives input back to the viewer
func (s *Screen) ReleaseOverlay() {
	s.overlay.visible = false
	s.overlay.alpha.Jump(0)
}

// CardBounds reports where card index is drawn right now
func (s *Screen) CardBounds(index int) carousel.Rect {
	card := s.card(index)
	if card == nil {
		return carousel.Rect{}
	}
	return s.stage().Project(card.state.Value(s.now()))
}

// ViewportSize returns the screen size in pixels
func (s *Screen) ViewportSize() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// MorphBackdrop grows the backdrop image from a card's box to the target box
func (s *Screen) MorphBackdrop(ref string, from, to carousel.Rect, d time.Duration) {
	s.overlay.backdropRef = ref
	s.texture(ref)
	s.overlay.backdrop.Jump(from)
	s.overlay.backdrop.Set(s.now(), to, d)
}

// OverlayVisible reports whether the overlay is drawn, including its exit fade
func (s *Screen) OverlayVisible() bool {
	return s.overlay.visible
}

// Resize updates the viewport after a window size change
func (s *Screen) Resize(width, height int32) {
	s.width = width
	s.height = height
}

// Close destroys every texture
func (s *Screen) Close() {
	for ref, tex := range s.textures {
		if tex != nil {
			tex.Destroy()
		}
		delete(s.textures, ref)
	}
	img.Quit()
}

func (s *Screen) card(index int) *cardView {
	if index < 0 || index >= len(s.cards) {
		return nil
	}
	return s.cards[index]
}

func (s *Screen) stage() motion.Stage {
	return motion.NewStage(float64(s.width), float64(s.height))
}

func (s *Screen) viewport() carousel.Rect {
	return carousel.Rect{W: float64(s.width), H: float64(s.height)}
}

// texture returns the decoded image for ref, loading it on first use
func (s *Screen) texture(ref string) *sdl.Texture {
	if tex, ok := s.textures[ref]; ok {
		return tex
	}

	tex, err := img.LoadTexture(s.renderer, ref)
	if err != nil {
		log.Printf("Failed to load image %s: %v", ref, err)
		s.textures[ref] = nil
		return nil
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	s.textures[ref] = tex
	return tex
}
