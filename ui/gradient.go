package ui

import "github.com/veandco/go-sdl2/sdl"

// DrawGradientRect fills a rectangle with a vertical gradient at the given opacity
func DrawGradientRect(renderer *sdl.Renderer, rect sdl.Rect, startColor, endColor [3]uint8, alpha uint8) {
	if rect.H <= 0 || rect.W <= 0 {
		return
	}
	for i := int32(0); i < rect.H; i++ {
		t := 0.0
		if rect.H > 1 {
			t = float64(i) / float64(rect.H-1)
		}

		r := uint8(float64(startColor[0])*(1-t) + float64(endColor[0])*t)
		g := uint8(float64(startColor[1])*(1-t) + float64(endColor[1])*t)
		b := uint8(float64(startColor[2])*(1-t) + float64(endColor[2])*t)

		renderer.SetDrawColor(r, g, b, alpha)
		renderer.DrawLine(rect.X, rect.Y+i, rect.X+rect.W-1, rect.Y+i)
	}
}

// FillCircle draws a filled circle; used for the indicator dots
func FillCircle(renderer *sdl.Renderer, cx, cy, radius int32, color sdl.Color) {
	renderer.SetDrawColor(color.R, color.G, color.B, color.A)
	for dy := -radius; dy <= radius; dy++ {
		dx := int32(0)
		for (dx+1)*(dx+1)+dy*dy <= radius*radius {
			dx++
		}
		renderer.DrawLine(cx-dx, cy+dy, cx+dx, cy+dy)
	}
}
