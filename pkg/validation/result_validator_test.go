package validation

import (
	"testing"

	"go-photometry/pkg/models"
)

func codesOf(issues []models.Issue) map[string]models.Issue {
	m := make(map[string]models.Issue, len(issues))
	for _, issue := range issues {
		m[issue.Code] = issue
	}
	return m
}

func cleanResult() *models.ImageAnalysisResult {
	res := &models.ImageAnalysisResult{Width: 100, Height: 100}
	res.WhiteBalance.RedRatio = 0.34
	res.WhiteBalance.GreenRatio = 0.33
	res.WhiteBalance.BlueRatio = 0.33
	res.Contrast.RMSContrast = 0.2
	return res
}

func TestValidate_CleanResult(t *testing.T) {
	v := NewResultValidator()
	issues := v.Validate(cleanResult())
	if len(issues) != 0 {
		t.Errorf("Expected no issues for clean result, got %v", issues)
	}
}

func TestValidate_NilResult(t *testing.T) {
	v := NewResultValidator()
	if issues := v.Validate(nil); issues != nil {
		t.Errorf("Expected nil issues for nil result, got %v", issues)
	}
}

func TestValidate_ExposureIssues(t *testing.T) {
	res := cleanResult()
	res.Exposure.IsUnderexposed = true
	res.Luminance.Statistics.ShadowClipping = true

	issues := codesOf(NewResultValidator().Validate(res))

	under, ok := issues["underexposed"]
	if !ok {
		t.Fatal("Expected underexposed issue")
	}
	if under.Severity != models.SeverityError {
		t.Errorf("Expected error severity for underexposure, got %s", under.Severity)
	}

	clip, ok := issues["shadow_clipping"]
	if !ok {
		t.Fatal("Expected shadow_clipping issue")
	}
	if clip.Severity != models.SeverityWarning {
		t.Errorf("Expected warning severity for clipping, got %s", clip.Severity)
	}
}

func TestValidate_ColorCast(t *testing.T) {
	res := cleanResult()
	res.WhiteBalance.RedRatio = 0.7
	res.WhiteBalance.GreenRatio = 0.2
	res.WhiteBalance.BlueRatio = 0.1

	issues := codesOf(NewResultValidator().Validate(res))
	cast, ok := issues["color_cast"]
	if !ok {
		t.Fatal("Expected color_cast issue for dominant red channel")
	}
	if cast.Value != 0.7 {
		t.Errorf("Expected issue to carry the offending ratio, got %f", cast.Value)
	}
}

func TestValidate_TintShift(t *testing.T) {
	res := cleanResult()
	res.WhiteBalance.Tint = -0.5

	issues := codesOf(NewResultValidator().Validate(res))
	if _, ok := issues["tint_shift"]; !ok {
		t.Fatal("Expected tint_shift issue for strong magenta tint")
	}
}

func TestValidate_FlatContrast(t *testing.T) {
	res := cleanResult()
	res.Contrast.RMSContrast = 0.01

	issues := codesOf(NewResultValidator().Validate(res))
	flat, ok := issues["flat_contrast"]
	if !ok {
		t.Fatal("Expected flat_contrast issue")
	}
	if flat.Severity != models.SeverityInfo {
		t.Errorf("Expected info severity for flat contrast, got %s", flat.Severity)
	}
}

func TestValidate_CustomThresholds(t *testing.T) {
	v := NewResultValidatorWithThresholds(Thresholds{
		MaxChannelRatio:  0.9,
		MinRMSContrast:   0.001,
		MaxTintMagnitude: 0.9,
	})

	res := cleanResult()
	res.WhiteBalance.RedRatio = 0.7
	res.WhiteBalance.Tint = 0.5
	res.Contrast.RMSContrast = 0.01

	if issues := v.Validate(res); len(issues) != 0 {
		t.Errorf("Expected loose thresholds to pass, got %v", issues)
	}
}
