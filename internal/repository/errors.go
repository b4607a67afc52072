package repository

import "errors"

var (
	// ErrInvalidSource indicates an unusable image source reference
	ErrInvalidSource = errors.New("invalid image source")

	// ErrUnsupportedScheme indicates a source scheme with no fetcher
	ErrUnsupportedScheme = errors.New("unsupported source scheme")

	// ErrAzureNotConfigured indicates an azure:// source on a server
	// without blob credentials
	ErrAzureNotConfigured = errors.New("azure storage not configured")
)
