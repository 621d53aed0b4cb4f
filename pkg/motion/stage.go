package motion

import (
	"math"

	"carousel-frame/pkg/carousel"
)

// DefaultPerspective is the viewer distance, in layout units, used to
// foreshorten cards pushed back in depth
const DefaultPerspective = 1000.0

// Stage places cards on screen. Card states are relative to the stage centre.
type Stage struct {
	CenterX, CenterY float64
	CardW, CardH     float64
	Perspective      float64
}

// NewStage sizes cards to half the viewport height at a 16:10 ratio
func NewStage(viewportW, viewportH float64) Stage {
	h := viewportH * 0.5
	w := h * 1.6
	if w > viewportW*0.8 {
		w = viewportW * 0.8
		h = w / 1.6
	}
	return Stage{
		CenterX:     viewportW / 2,
		CenterY:     viewportH / 2,
		CardW:       w,
		CardH:       h,
		Perspective: DefaultPerspective,
	}
}

// Project returns the on-screen box of a card in state st. Depth shrinks the
// card towards the vanishing point; rotations foreshorten width and height.
func (s Stage) Project(st carousel.CardState) carousel.Rect {
	p := s.Perspective
	if p <= 0 {
		p = DefaultPerspective
	}
	factor := p / (p - st.Depth)
	if factor <= 0 || math.IsInf(factor, 0) {
		factor = 0
	}

	w := s.CardW * st.Scale * math.Abs(math.Cos(radians(st.RotateY))) * factor
	h := s.CardH * st.Scale * math.Abs(math.Cos(radians(st.RotateX))) * factor
	cx := s.CenterX + st.OffsetX*factor
	cy := s.CenterY + st.OffsetY*factor

	return carousel.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// LerpCard interpolates card states. Stacking order and focus switch to the
// target immediately so the moving card is drawn in its new layer.
func LerpCard(a, b carousel.CardState, t float64) carousel.CardState {
	return carousel.CardState{
		OffsetX: Lerp(a.OffsetX, b.OffsetX, t),
		OffsetY: Lerp(a.OffsetY, b.OffsetY, t),
		Depth:   Lerp(a.Depth, b.Depth, t),
		RotateY: Lerp(a.RotateY, b.RotateY, t),
		RotateX: Lerp(a.RotateX, b.RotateX, t),
		Scale:   Lerp(a.Scale, b.Scale, t),
		Opacity: Lerp(a.Opacity, b.Opacity, t),
		Z:       b.Z,
		InFocus: b.InFocus,
	}
}

// LerpViewer interpolates viewer layer states
func LerpViewer(a, b carousel.ViewerState, t float64) carousel.ViewerState {
	return carousel.ViewerState{
		Opacity:    Lerp(a.Opacity, b.Opacity, t),
		Scale:      Lerp(a.Scale, b.Scale, t),
		OffsetY:    Lerp(a.OffsetY, b.OffsetY, t),
		Transition: b.Transition,
	}
}

// LerpRect interpolates boxes
func LerpRect(a, b carousel.Rect, t float64) carousel.Rect {
	return carousel.Rect{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		W: Lerp(a.W, b.W, t),
		H: Lerp(a.H, b.H, t),
	}
}

// Contain fits a srcW x srcH image inside box, centred, keeping its aspect ratio
func Contain(srcW, srcH float64, box carousel.Rect) carousel.Rect {
	if srcW <= 0 || srcH <= 0 {
		return box
	}
	scale := math.Min(box.W/srcW, box.H/srcH)
	w, h := srcW*scale, srcH*scale
	return carousel.Rect{X: box.X + (box.W-w)/2, Y: box.Y + (box.H-h)/2, W: w, H: h}
}

// CoverCrop returns the centred part of a srcW x srcH image that fills a
// dstW x dstH box without distortion
func CoverCrop(srcW, srcH, dstW, dstH float64) carousel.Rect {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return carousel.Rect{W: srcW, H: srcH}
	}
	if srcW/srcH > dstW/dstH {
		w := srcH * dstW / dstH
		return carousel.Rect{X: (srcW - w) / 2, W: w, H: srcH}
	}
	h := srcW * dstH / dstW
	return carousel.Rect{Y: (srcH - h) / 2, W: srcW, H: h}
}

// ScaleAbout scales r around its centre and shifts it vertically
func ScaleAbout(r carousel.Rect, scale, offsetY float64) carousel.Rect {
	w, h := r.W*scale, r.H*scale
	return carousel.Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2 + offsetY,
		W: w,
		H: h,
	}
}

// Contains reports whether (x, y) lies inside r
func Contains(r carousel.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
