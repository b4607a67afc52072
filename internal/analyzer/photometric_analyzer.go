package analyzer

import (
	"context"

	apperrors "go-photometry/internal/errors"
	"go-photometry/pkg/models"
)

// photometricAnalyzer implements ImageAnalyzer. It is stateless: every
// accumulator lives on the stack of one Analyze call, so instances are
// safe for concurrent use and nothing leaks between analyses.
type photometricAnalyzer struct{}

// NewImageAnalyzer creates the photometric analysis engine
func NewImageAnalyzer() ImageAnalyzer {
	return &photometricAnalyzer{}
}

// Analyze runs the full photometric pass with default options
func (pa *photometricAnalyzer) Analyze(ctx context.Context, img RasterImage) (*models.ImageAnalysisResult, error) {
	return pa.AnalyzeWithOptions(ctx, img, DefaultOptions())
}

// AnalyzeWithOptions drives one sequential row-major sweep over the
// pixel buffer, feeding every accumulator from the same per-pixel
// read, then finalizes histograms, colorimetry, contrast and exposure
// into an immutable result.
//
// Cancellation is checked once per row. A cancelled pass returns a
// cancelled error and discards the partially filled accumulators;
// callers never observe a partial result. The sweep order is fixed,
// so the same pixel bytes always produce a bit-identical result.
func (pa *photometricAnalyzer) AnalyzeWithOptions(ctx context.Context, img RasterImage, opts AnalysisOptions) (*models.ImageAnalysisResult, error) {
	if img == nil {
		return nil, apperrors.NewInvalidImageError("nil image", nil)
	}
	width, height := img.Width(), img.Height()
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewInvalidImageError("image has no pixels", nil)
	}

	var red, green, blue, lum channelAccumulator
	contrast := newContrastAccumulator()
	var expo exposureAccumulator
	var sumR, sumG, sumB float64

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewCancelledError("analysis cancelled", err)
		}
		for x := 0; x < width; x++ {
			r, g, b := img.RGBAt(x, y)

			red.add(r)
			green.add(g)
			blue.add(b)
			sumR += float64(r)
			sumG += float64(g)
			sumB += float64(b)

			yv := Luminance(r, g, b)
			lum.add(luminanceBin(yv))
			contrast.add(yv)
			expo.add(yv, &opts)
		}
	}

	result := &models.ImageAnalysisResult{
		Width:  width,
		Height: height,
	}

	result.Red = red.finalize(opts)
	result.Green = green.finalize(opts)
	result.Blue = blue.finalize(opts)
	result.Luminance = lum.finalize(opts)

	totalPixels := float64(width) * float64(height)
	result.WhiteBalance = estimateColorTemperature(
		sumR/totalPixels,
		sumG/totalPixels,
		sumB/totalPixels,
	)

	result.Contrast = contrast.metrics()
	result.Exposure = buildExposure(
		contrast.mean(),
		expo,
		&lum,
		result.Luminance.Statistics,
		result.Contrast,
		opts,
	)

	return result, nil
}
