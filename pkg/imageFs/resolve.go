package imageFs

import (
	"context"
	"fmt"
	"log"

	"carousel-frame/pkg/settings"
)

// NeedsS3 reports whether resolving s requires an S3 client
func NeedsS3(s settings.Settings) bool {
	if len(s.Images) == 0 {
		return s.Collection != nil
	}
	for _, ref := range s.Images {
		if _, _, ok := ParseS3Ref(ref); ok {
			return true
		}
	}
	return false
}

// Resolve turns the configured image source into an ordered list of local
// paths. Explicit images win over a collection, which wins over the local
// directory. dl may be nil when NeedsS3 is false.
func Resolve(ctx context.Context, s settings.Settings, dl *Downloader) ([]string, error) {
	switch {
	case len(s.Images) > 0:
		return resolveExplicit(ctx, s.Images, dl)
	case s.Collection != nil:
		if dl == nil {
			return nil, ErrMissingCredentials
		}
		return dl.DownloadCollection(ctx, *s.Collection)
	default:
		return AvailableLocalImages(s.ImageDir)
	}
}

// resolveExplicit keeps local paths as they are and downloads s3 references
// in place. A reference that fails to download is dropped.
func resolveExplicit(ctx context.Context, refs []string, dl *Downloader) ([]string, error) {
	var (
		remote []string
		slots  []int
	)
	for i, ref := range refs {
		if _, _, ok := ParseS3Ref(ref); ok {
			remote = append(remote, ref)
			slots = append(slots, i)
		}
	}

	resolved := append([]string(nil), refs...)
	if len(remote) > 0 {
		if dl == nil {
			return nil, ErrMissingCredentials
		}
		paths, err := dl.fetchAll(ctx, remote)
		if err != nil {
			return nil, err
		}
		for j, slot := range slots {
			if paths[j] == "" {
				log.Printf("Resolve: skipping %s (download failed)", remote[j])
			}
			resolved[slot] = paths[j]
		}
	}

	out := make([]string, 0, len(resolved))
	for _, ref := range resolved {
		if ref != "" {
			out = append(out, ref)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("image list: %w", ErrNoImages)
	}
	return out, nil
}
