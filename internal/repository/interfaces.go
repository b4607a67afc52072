package repository

import (
	"context"
	"image"
)

// ImageRepository defines the interface for image data access
type ImageRepository interface {
	// FetchImage resolves and decodes an image from a source reference
	// (http/https URL, azure://container/blob, or file path).
	FetchImage(ctx context.Context, source string) (image.Image, error)

	// ValidateSource checks that the source reference is acceptable
	// before any fetch is attempted.
	ValidateSource(source string) error
}
