package analyzer

// AnalysisOptions provides configurable thresholds for photometric analysis
type AnalysisOptions struct {
	// Clipping detection
	ClippingThreshold float64 // fraction of all pixels in the extreme bins
	ClipBandWidth     int     // bins counted at each extreme

	// Exposure thresholds (mean luminance)
	UnderexposedMean float64
	OverexposedMean  float64

	// Detail population cutoffs (luminance)
	ShadowDetailCutoff    float64
	HighlightDetailCutoff float64

	// Recommendation tuning
	HDRStopsThreshold float64

	// Reflected-light meter calibration constant
	CalibrationK float64

	// Minimum peak-scaled bin mass that counts as occupied when
	// measuring histogram dynamic range
	PresenceFloor float64

	// Performance options
	FastMode             bool
	MaxAnalysisDimension int // fast-mode downscale bound, longest edge
}

// DefaultOptions returns the standard photometric thresholds
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		ClippingThreshold:     0.02,
		ClipBandWidth:         6,
		UnderexposedMean:      0.1,
		OverexposedMean:       0.8,
		ShadowDetailCutoff:    0.1,
		HighlightDetailCutoff: 0.9,
		HDRStopsThreshold:     10.0,
		CalibrationK:          12.5,
		PresenceFloor:         0.001,
		FastMode:              false,
		MaxAnalysisDimension:  1024,
	}
}

// FastOptions returns options for quick analysis: the service layer
// downscales the image before the pass
func FastOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.FastMode = true
	opts.MaxAnalysisDimension = 512
	return opts
}

// StrictOptions returns options with tighter clipping and exposure
// tolerances, for grading workflows that flag marginal frames
func StrictOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.ClippingThreshold = 0.01
	opts.UnderexposedMean = 0.15
	opts.OverexposedMean = 0.75
	return opts
}

// WithCalibration overrides the meter calibration constant
func (opts AnalysisOptions) WithCalibration(k float64) AnalysisOptions {
	opts.CalibrationK = k
	return opts
}

// WithClippingThreshold overrides the clipping population threshold
func (opts AnalysisOptions) WithClippingThreshold(fraction float64) AnalysisOptions {
	opts.ClippingThreshold = fraction
	return opts
}

// WithFastMode enables the downscaled analysis path
func (opts AnalysisOptions) WithFastMode() AnalysisOptions {
	opts.FastMode = true
	if opts.MaxAnalysisDimension > 512 {
		opts.MaxAnalysisDimension = 512
	}
	return opts
}
