package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// RenderText draws text with its top-left corner at (x, y)
func RenderText(renderer *sdl.Renderer, text string, x, y int32, color sdl.Color, font *ttf.Font) error {
	return renderText(renderer, text, color, font, func(w, h int32) sdl.Rect {
		return sdl.Rect{X: x, Y: y, W: w, H: h}
	})
}

// RenderTextCentered draws text centred on (cx, cy)
func RenderTextCentered(renderer *sdl.Renderer, text string, cx, cy int32, color sdl.Color, font *ttf.Font) error {
	return renderText(renderer, text, color, font, func(w, h int32) sdl.Rect {
		return sdl.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
	})
}

func renderText(renderer *sdl.Renderer, text string, color sdl.Color, font *ttf.Font, place func(w, h int32) sdl.Rect) error {
	if font == nil {
		return fmt.Errorf("font not available")
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return err
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	if color.A < 255 {
		texture.SetAlphaMod(color.A)
	}

	dst := place(surface.W, surface.H)
	return renderer.Copy(texture, nil, &dst)
}
