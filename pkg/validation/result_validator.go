package validation

import (
	"fmt"

	"go-photometry/pkg/models"
)

// Thresholds defines the tolerances the validator applies
type Thresholds struct {
	// A single channel owning more than this share of the total signal
	// counts as a strong color cast.
	MaxChannelRatio float64

	// RMS contrast below this is considered flat.
	MinRMSContrast float64

	// Tint magnitude above this is flagged.
	MaxTintMagnitude float64
}

// DefaultThresholds returns the default validation tolerances
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxChannelRatio:  0.5,
		MinRMSContrast:   0.05,
		MaxTintMagnitude: 0.3,
	}
}

// ResultValidator turns an ImageAnalysisResult into a list of
// structured findings for the API layer. It never mutates the result.
type ResultValidator struct {
	thresholds Thresholds
}

// NewResultValidator creates a validator with default tolerances
func NewResultValidator() *ResultValidator {
	return &ResultValidator{thresholds: DefaultThresholds()}
}

// NewResultValidatorWithThresholds creates a validator with custom tolerances
func NewResultValidatorWithThresholds(t Thresholds) *ResultValidator {
	return &ResultValidator{thresholds: t}
}

// Validate inspects a result and reports every finding that applies
func (rv *ResultValidator) Validate(res *models.ImageAnalysisResult) []models.Issue {
	if res == nil {
		return nil
	}
	var issues []models.Issue

	if res.Exposure.IsUnderexposed {
		issues = append(issues, models.Issue{
			Code:     "underexposed",
			Message:  "image is underexposed",
			Severity: models.SeverityError,
			Value:    res.Exposure.AverageEV,
		})
	}
	if res.Exposure.IsOverexposed {
		issues = append(issues, models.Issue{
			Code:     "overexposed",
			Message:  "image is overexposed",
			Severity: models.SeverityError,
			Value:    res.Exposure.AverageEV,
		})
	}
	if res.Luminance.Statistics.ShadowClipping {
		issues = append(issues, models.Issue{
			Code:     "shadow_clipping",
			Message:  "shadow detail is clipped to black",
			Severity: models.SeverityWarning,
			Value:    res.Exposure.ShadowDetail,
		})
	}
	if res.Luminance.Statistics.HighlightClipping {
		issues = append(issues, models.Issue{
			Code:     "highlight_clipping",
			Message:  "highlight detail is clipped to white",
			Severity: models.SeverityWarning,
			Value:    res.Exposure.HighlightDetail,
		})
	}

	wb := res.WhiteBalance
	for _, ch := range []struct {
		name  string
		ratio float64
	}{
		{"red", wb.RedRatio},
		{"green", wb.GreenRatio},
		{"blue", wb.BlueRatio},
	} {
		if ch.ratio > rv.thresholds.MaxChannelRatio {
			issues = append(issues, models.Issue{
				Code:     "color_cast",
				Message:  fmt.Sprintf("strong %s cast (%.0f%% of signal)", ch.name, ch.ratio*100),
				Severity: models.SeverityWarning,
				Value:    ch.ratio,
			})
		}
	}
	if tint := wb.Tint; tint > rv.thresholds.MaxTintMagnitude || tint < -rv.thresholds.MaxTintMagnitude {
		issues = append(issues, models.Issue{
			Code:     "tint_shift",
			Message:  "white balance tint is off neutral",
			Severity: models.SeverityWarning,
			Value:    tint,
		})
	}

	if res.Contrast.RMSContrast < rv.thresholds.MinRMSContrast {
		issues = append(issues, models.Issue{
			Code:     "flat_contrast",
			Message:  "image has very low contrast",
			Severity: models.SeverityInfo,
			Value:    res.Contrast.RMSContrast,
		})
	}

	return issues
}
