package gallery

import (
	"fmt"
	"math"
	"sort"

	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/motion"
	"carousel-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

var (
	colorText      = sdl.Color{R: 255, G: 255, B: 255, A: 255}
	colorDotOn     = sdl.Color{R: 255, G: 255, B: 255, A: 255}
	colorDotOff    = sdl.Color{R: 255, G: 255, B: 255, A: 90}
	colorButton    = sdl.Color{R: 20, G: 20, B: 20, A: 180}
	colorHighlight = sdl.Color{R: 255, G: 255, B: 255, A: 200}

	placeholderTop    = [3]uint8{50, 55, 70}
	placeholderBottom = [3]uint8{20, 22, 30}
)

const (
	dotRadius  = 6
	dotSpacing = 24
	dotMargin  = 48
	buttonW    = 200
	buttonH    = 56
	closeSize  = 48
	edgeMargin = 32
)

// Draw renders the viewer and, when shown, the gallery overlay on top
func (s *Screen) Draw() {
	now := s.now()

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()

	s.drawLayer(&s.viewer, 255)
	for _, id := range s.cloneOrder {
		s.drawLayer(s.clones[id], 255)
	}

	if !s.overlay.visible {
		s.drawButton(s.OpenButtonRect(), "Open gallery", 255)
		return
	}

	alpha := clampAlpha(s.overlay.alpha.Value(now))
	s.drawBackdrop(alpha)

	s.renderer.SetDrawColor(0, 0, 0, uint8(float64(alpha)*0.55))
	s.renderer.FillRect(&sdl.Rect{W: s.width, H: s.height})

	s.drawCards(alpha)
	s.drawDots(alpha)
	s.drawCounter(alpha)
	s.drawButton(s.CloseButtonRect(), "X", alpha)
}

// drawLayer draws one viewer layer contained in the viewport
func (s *Screen) drawLayer(layer *viewerLayer, alpha uint8) {
	if layer == nil || layer.ref == "" {
		return
	}
	st := layer.state.Value(s.now())
	a := uint8(float64(alpha) * clamp01(st.Opacity))
	if a == 0 {
		return
	}

	tex := s.texture(layer.ref)
	if tex == nil {
		s.drawPlaceholder(motion.ScaleAbout(s.viewport(), st.Scale, st.OffsetY), a)
		return
	}

	_, _, w, h, err := tex.Query()
	if err != nil {
		return
	}
	box := motion.Contain(float64(w), float64(h), s.viewport())
	dst := toSDL(motion.ScaleAbout(box, st.Scale, st.OffsetY))
	tex.SetAlphaMod(a)
	s.renderer.Copy(tex, nil, &dst)
}

func (s *Screen) drawBackdrop(alpha uint8) {
	if s.overlay.backdropRef == "" {
		return
	}
	box := s.overlay.backdrop.Value(s.now())
	tex := s.texture(s.overlay.backdropRef)
	if tex == nil {
		s.drawPlaceholder(box, alpha)
		return
	}
	s.drawCover(tex, box, uint8(float64(alpha)*0.6))
}

// drawCards paints cards back to front by stacking order
func (s *Screen) drawCards(alpha uint8) {
	now := s.now()
	stage := s.stage()

	type drawn struct {
		card  *cardView
		state carousel.CardState
	}
	order := make([]drawn, 0, len(s.cards))
	for _, card := range s.cards {
		if card == nil {
			continue
		}
		order = append(order, drawn{card: card, state: card.state.Value(now)})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].state.Z < order[j].state.Z
	})

	for _, d := range order {
		box := stage.Project(d.state)
		a := uint8(float64(alpha) * clamp01(d.state.Opacity))
		if tex := s.texture(d.card.ref); tex != nil {
			s.drawCover(tex, box, a)
		} else {
			s.drawPlaceholder(box, a)
		}
		if d.card.marker == carousel.MarkerAdvancing {
			s.drawOutline(box, colorHighlight, a)
		}
	}
}

func (s *Screen) drawDots(alpha uint8) {
	for i, on := range s.dots {
		cx, cy := s.dotCenter(i)
		c := colorDotOff
		if on {
			c = colorDotOn
		}
		c.A = uint8(float64(c.A) * float64(alpha) / 255)
		ui.FillCircle(s.renderer, cx, cy, dotRadius, c)
	}
}

func (s *Screen) drawCounter(alpha uint8) {
	if s.fonts == nil || len(s.cards) == 0 {
		return
	}
	active := 0
	for i, on := range s.dots {
		if on {
			active = i
			break
		}
	}
	c := colorText
	c.A = alpha
	label := fmt.Sprintf("%d / %d", active+1, len(s.cards))
	ui.RenderText(s.renderer, label, edgeMargin, edgeMargin, c, s.fonts.Large)
}

func (s *Screen) drawButton(r sdl.Rect, label string, alpha uint8) {
	bg := colorButton
	bg.A = uint8(float64(bg.A) * float64(alpha) / 255)
	s.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	s.renderer.FillRect(&r)

	if s.fonts == nil {
		return
	}
	c := colorText
	c.A = alpha
	ui.RenderTextCentered(s.renderer, label, r.X+r.W/2, r.Y+r.H/2, c, s.fonts.Medium)
}

// drawCover fills box with the centre of tex, cropping the excess
func (s *Screen) drawCover(tex *sdl.Texture, box carousel.Rect, alpha uint8) {
	if alpha == 0 || box.W < 1 || box.H < 1 {
		return
	}
	_, _, w, h, err := tex.Query()
	if err != nil {
		return
	}
	src := toSDL(motion.CoverCrop(float64(w), float64(h), box.W, box.H))
	dst := toSDL(box)
	tex.SetAlphaMod(alpha)
	s.renderer.Copy(tex, &src, &dst)
}

// drawPlaceholder stands in for an image that failed to decode
func (s *Screen) drawPlaceholder(box carousel.Rect, alpha uint8) {
	if alpha == 0 {
		return
	}
	ui.DrawGradientRect(s.renderer, toSDL(box), placeholderTop, placeholderBottom, alpha)
}

func (s *Screen) drawOutline(box carousel.Rect, c sdl.Color, alpha uint8) {
	r := toSDL(box)
	s.renderer.SetDrawColor(c.R, c.G, c.B, uint8(float64(c.A)*float64(alpha)/255))
	for i := int32(0); i < 3; i++ {
		s.renderer.DrawRect(&sdl.Rect{X: r.X - i, Y: r.Y - i, W: r.W + 2*i, H: r.H + 2*i})
	}
}

func toSDL(r carousel.Rect) sdl.Rect {
	return sdl.Rect{
		X: int32(math.Round(r.X)),
		Y: int32(math.Round(r.Y)),
		W: int32(math.Round(r.W)),
		H: int32(math.Round(r.H)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampAlpha(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
