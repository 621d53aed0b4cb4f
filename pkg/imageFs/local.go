package imageFs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoImages is returned when a source yields no displayable images
var ErrNoImages = errors.New("no images found")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether name has an extension SDL_image can decode
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// AvailableLocalImages lists the images in dir in file name order
func AvailableLocalImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Error reading %s directory: %v", dir, err)
		return nil, err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImages)
	}

	log.Printf("AvailableLocalImages completed | dir=%s | found=%d image(s)", dir, len(images))
	return images, nil
}
