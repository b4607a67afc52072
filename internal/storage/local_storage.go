package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
)

// LocalFileFetcher reads images from the local filesystem. Sources use
// file:// URLs or bare paths.
type LocalFileFetcher struct{}

func NewLocalFileFetcher() ImageFetcher {
	return &LocalFileFetcher{}
}

func (l *LocalFileFetcher) FetchImage(ctx context.Context, source string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := source
	if parsed, err := url.Parse(source); err == nil && parsed.Scheme == "file" {
		path = parsed.Path
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return img, nil
}
