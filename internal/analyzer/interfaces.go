package analyzer

import (
	"context"

	"go-photometry/pkg/models"
)

// ImageAnalyzer defines the main interface for photometric analysis
type ImageAnalyzer interface {
	// Analyze runs the full photometric pass with default options.
	Analyze(ctx context.Context, img RasterImage) (*models.ImageAnalysisResult, error)

	// AnalyzeWithOptions runs the pass with explicit thresholds.
	AnalyzeWithOptions(ctx context.Context, img RasterImage, opts AnalysisOptions) (*models.ImageAnalysisResult, error)
}
