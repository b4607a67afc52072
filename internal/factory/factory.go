package factory

import (
	"fmt"

	"go-photometry/internal/analyzer"
	"go-photometry/internal/config"
	"go-photometry/internal/storage"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
	// LocalStorage for the local filesystem
	LocalStorage StorageType = "local"
)

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageFetcher, error)
}

type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a storage factory over the loaded config
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates a fetcher for the given backend
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(), nil
	case AzureStorage:
		if !f.cfg.AzureEnabled() {
			return nil, fmt.Errorf("azure storage requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
		return storage.NewAzureBlobFetcher(f.cfg.AzureAccountName, f.cfg.AzureAccountKey)
	case LocalStorage:
		return storage.NewLocalFileFetcher(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// AnalyzerProfile selects a preconfigured options profile
type AnalyzerProfile string

const (
	// DefaultProfile uses the standard photometric thresholds
	DefaultProfile AnalyzerProfile = "default"
	// FastProfile downscales before analysis
	FastProfile AnalyzerProfile = "fast"
	// StrictProfile tightens clipping and exposure tolerances
	StrictProfile AnalyzerProfile = "strict"
)

// OptionsFor maps a profile name to its analysis options
func OptionsFor(profile AnalyzerProfile) (analyzer.AnalysisOptions, error) {
	switch profile {
	case DefaultProfile, "":
		return analyzer.DefaultOptions(), nil
	case FastProfile:
		return analyzer.FastOptions(), nil
	case StrictProfile:
		return analyzer.StrictOptions(), nil
	default:
		return analyzer.AnalysisOptions{}, fmt.Errorf("unsupported analyzer profile: %s", profile)
	}
}
