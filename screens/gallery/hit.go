package gallery

import (
	"sort"

	"carousel-frame/pkg/motion"

	"github.com/veandco/go-sdl2/sdl"
)

// OpenButtonRect is the button that opens the gallery over the viewer
func (s *Screen) OpenButtonRect() sdl.Rect {
	return sdl.Rect{
		X: (s.width - buttonW) / 2,
		Y: s.height - buttonH - dotMargin,
		W: buttonW,
		H: buttonH,
	}
}

// CloseButtonRect is the button in the top-right corner of the overlay
func (s *Screen) CloseButtonRect() sdl.Rect {
	return sdl.Rect{X: s.width - closeSize - edgeMargin, Y: edgeMargin, W: closeSize, H: closeSize}
}

// InRect reports whether (x, y) is inside r
func InRect(r sdl.Rect, x, y int32) bool {
	p := sdl.Point{X: x, Y: y}
	return p.InRect(&r)
}

// CardAt returns the topmost card under (x, y), or -1
func (s *Screen) CardAt(x, y int32) int {
	now := s.now()
	stage := s.stage()

	hits := make([]int, 0, 2)
	for i, card := range s.cards {
		if card == nil {
			continue
		}
		if motion.Contains(stage.Project(card.state.Value(now)), float64(x), float64(y)) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return -1
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return s.cards[hits[i]].state.Value(now).Z > s.cards[hits[j]].state.Value(now).Z
	})
	return hits[0]
}

// DotAt returns the indicator dot under (x, y), or -1
func (s *Screen) DotAt(x, y int32) int {
	const slop = dotSpacing / 2
	for i := range s.dots {
		cx, cy := s.dotCenter(i)
		if x >= cx-slop && x < cx+slop && y >= cy-slop && y < cy+slop {
			return i
		}
	}
	return -1
}

func (s *Screen) dotCenter(i int) (int32, int32) {
	total := int32(len(s.dots)) * dotSpacing
	x := (s.width-total)/2 + int32(i)*dotSpacing + dotSpacing/2
	return x, s.height - dotMargin
}
