package repository

import (
	"context"
	"fmt"
	"image"
	"net/url"

	"go-photometry/internal/storage"
)

// sourceRepository dispatches image fetches by source scheme.
type sourceRepository struct {
	http  storage.ImageFetcher
	azure storage.ImageFetcher // nil when blob storage is not configured
	local storage.ImageFetcher
}

// NewSourceRepository creates a repository over the configured
// fetchers. azure may be nil.
func NewSourceRepository(httpFetcher, azureFetcher, localFetcher storage.ImageFetcher) ImageRepository {
	return &sourceRepository{
		http:  httpFetcher,
		azure: azureFetcher,
		local: localFetcher,
	}
}

// FetchImage resolves a source reference through the fetcher that owns
// its scheme
func (r *sourceRepository) FetchImage(ctx context.Context, source string) (image.Image, error) {
	fetcher, err := r.fetcherFor(source)
	if err != nil {
		return nil, err
	}
	return fetcher.FetchImage(ctx, source)
}

// ValidateSource checks the reference without fetching it
func (r *sourceRepository) ValidateSource(source string) error {
	_, err := r.fetcherFor(source)
	return err
}

func (r *sourceRepository) fetcherFor(source string) (storage.ImageFetcher, error) {
	if source == "" {
		return nil, ErrInvalidSource
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	switch parsed.Scheme {
	case "http", "https":
		if parsed.Host == "" {
			return nil, fmt.Errorf("%w: missing host", ErrInvalidSource)
		}
		return r.http, nil
	case "azure":
		if r.azure == nil {
			return nil, ErrAzureNotConfigured
		}
		return r.azure, nil
	case "file", "":
		return r.local, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
}
