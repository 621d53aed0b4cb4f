package ui

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/ttf"
)

// Fonts holds the TrueType fonts used by the gallery at three sizes
type Fonts struct {
	Large  *ttf.Font // 32px for the image counter
	Medium *ttf.Font // 24px for buttons
	Small  *ttf.Font // 18px for captions
}

var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
}

// LoadFonts loads the first available system font at each size. Missing
// fonts are not an error; text drawing is skipped for nil fonts.
func LoadFonts() (*Fonts, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize TTF: %w", err)
	}

	fonts := &Fonts{
		Large:  openFirst(32),
		Medium: openFirst(24),
		Small:  openFirst(18),
	}
	if fonts.Large == nil {
		log.Printf("LoadFonts: no system font found, text will not be drawn")
	}
	return fonts, nil
}

func openFirst(size int) *ttf.Font {
	for _, path := range fontPaths {
		if font, err := ttf.OpenFont(path, size); err == nil {
			return font
		}
	}
	return nil
}

// Close cleans up font resources
func (f *Fonts) Close() {
	for _, font := range []*ttf.Font{f.Large, f.Medium, f.Small} {
		if font != nil {
			font.Close()
		}
	}
	ttf.Quit()
}
