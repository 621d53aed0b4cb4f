package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"carousel-frame/pkg/carousel"
	"carousel-frame/pkg/gesture"
	"carousel-frame/pkg/sharedTypes"
)

// Settings is the startup configuration of the frame. The image list it
// resolves to is fixed for the lifetime of the process.
type Settings struct {
	// Images lists local paths or s3://bucket/key references, in display order
	Images []string `json:"images,omitempty"`
	// ImageDir is scanned for images when Images and Collection are empty
	ImageDir string `json:"imageDir"`
	// Collection is downloaded from S3 when Images is empty
	Collection *sharedTypes.Collection `json:"collection,omitempty"`

	NavigationPolicy    string  `json:"navigationPolicy"`
	CloseOnSelect       bool    `json:"closeOnSelect"`
	SwipeThreshold      float64 `json:"swipeThreshold"`
	DownloadConcurrency int     `json:"downloadConcurrency"`
}

var defaultSettings = Settings{
	ImageDir:            "assets/images",
	NavigationPolicy:    carousel.PolicyQueue.String(),
	SwipeThreshold:      gesture.DefaultThreshold,
	DownloadConcurrency: 4,
}

// DefaultPath is used when CAROUSEL_SETTINGS is not set
const DefaultPath = "settings.json"

// Defaults returns a copy of the default settings
func Defaults() Settings {
	return defaultSettings
}

// Path returns the settings file location
func Path() string {
	if p := os.Getenv("CAROUSEL_SETTINGS"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the settings file at path. When the file is missing or cannot
// be parsed, defaults are returned instead so the frame still starts.
func Load(path string) Settings {
	f, err := os.Open(path)
	if err != nil {
		return Defaults()
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Defaults()
	}

	// Backfill zero values so older files keep working as fields are added
	if s.ImageDir == "" {
		s.ImageDir = defaultSettings.ImageDir
	}
	if s.NavigationPolicy == "" {
		s.NavigationPolicy = defaultSettings.NavigationPolicy
	}
	if s.SwipeThreshold == 0 {
		s.SwipeThreshold = defaultSettings.SwipeThreshold
	}
	if s.DownloadConcurrency == 0 {
		s.DownloadConcurrency = defaultSettings.DownloadConcurrency
	}

	return s
}

// Save writes s to path as indented JSON
func Save(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Validate reports settings that cannot be used
func (s Settings) Validate() error {
	if _, err := carousel.ParsePolicy(s.NavigationPolicy); err != nil {
		return err
	}
	if s.SwipeThreshold < 0 {
		return fmt.Errorf("swipeThreshold must not be negative, got %v", s.SwipeThreshold)
	}
	if s.DownloadConcurrency < 1 {
		return fmt.Errorf("downloadConcurrency must be at least 1, got %d", s.DownloadConcurrency)
	}
	if c := s.Collection; c != nil && c.Bucket == "" {
		return fmt.Errorf("collection %q has no bucket", c.Title)
	}
	return nil
}

// ControllerOptions converts the navigation settings into controller options
func (s Settings) ControllerOptions() ([]carousel.Option, error) {
	policy, err := carousel.ParsePolicy(s.NavigationPolicy)
	if err != nil {
		return nil, err
	}
	return []carousel.Option{
		carousel.WithPolicy(policy),
		carousel.WithCloseOnSelect(s.CloseOnSelect),
		carousel.WithSwipeThreshold(s.SwipeThreshold),
	}, nil
}
