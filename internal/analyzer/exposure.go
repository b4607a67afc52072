package analyzer

import (
	"math"
	"strings"

	"go-photometry/pkg/models"
)

// exposureAccumulator counts the shadow and highlight populations
// during the pixel pass.
type exposureAccumulator struct {
	shadowSamples    uint64
	highlightSamples uint64
	total            uint64
}

func (e *exposureAccumulator) add(y float64, opts *AnalysisOptions) {
	if y < opts.ShadowDetailCutoff {
		e.shadowSamples++
	}
	if y > opts.HighlightDetailCutoff {
		e.highlightSamples++
	}
	e.total++
}

// buildExposure assembles the exposure diagnosis from the mean
// luminance, the detail counters, the raw luminance histogram (for
// the median) and the derived luminance statistics (for the clipping
// flags).
func buildExposure(meanLum float64, acc exposureAccumulator, lum *channelAccumulator, lumStats models.HistogramStatistics, contrast models.ContrastMetrics, opts AnalysisOptions) models.ExposureAnalysis {
	ex := models.ExposureAnalysis{
		// 18%-gray reference with the reflected-light calibration
		// constant; fixed per invocation.
		SuggestedEV: math.Log2(0.18 * opts.CalibrationK),
	}

	if meanLum > 0 {
		ex.AverageEV = math.Log2(meanLum * opts.CalibrationK)
	}

	ex.IsUnderexposed = meanLum < opts.UnderexposedMean || lumStats.ShadowClipping
	ex.IsOverexposed = meanLum > opts.OverexposedMean || lumStats.HighlightClipping

	if acc.total > 0 {
		ex.ShadowDetail = float64(acc.shadowSamples) / float64(acc.total)
		ex.HighlightDetail = float64(acc.highlightSamples) / float64(acc.total)
	}

	ex.HistogramBalance = lum.median() / (models.HistogramBins - 1)
	ex.Recommendation = buildRecommendation(ex, lumStats, contrast, opts)
	return ex
}

// buildRecommendation joins the applicable corrective notes with "; ".
// Empty when the exposure needs no correction.
func buildRecommendation(ex models.ExposureAnalysis, lumStats models.HistogramStatistics, contrast models.ContrastMetrics, opts AnalysisOptions) string {
	var parts []string
	if ex.IsUnderexposed {
		parts = append(parts, "increase exposure by +1 to +2 stops")
	}
	if ex.IsOverexposed {
		parts = append(parts, "decrease exposure by 1 to 2 stops")
	}
	if lumStats.ShadowClipping {
		parts = append(parts, "lift shadows to recover crushed detail")
	}
	if lumStats.HighlightClipping {
		parts = append(parts, "reduce highlights to recover blown detail")
	}
	if contrast.DynamicRangeStops > opts.HDRStopsThreshold {
		parts = append(parts, "scene exceeds sensor range; consider HDR bracketing or a graduated filter")
	}
	return strings.Join(parts, "; ")
}
