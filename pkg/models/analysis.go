package models

// HistogramBins is the number of intensity buckets per channel histogram.
const HistogramBins = 256

// ChannelHistogram holds the normalized intensity distribution of one
// channel. Bin index equals the 8-bit sample value. After normalization
// the peak bin is 1.0 whenever at least one pixel was sampled; a
// zero-sample channel leaves every bin at 0.
type ChannelHistogram struct {
	Bins [HistogramBins]float64 `json:"bins"`
}

// HistogramStatistics are derived from a normalized ChannelHistogram.
// Mean, median, standard deviation, mode and dynamic range are all in
// bin-index units (0-255).
type HistogramStatistics struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standard_deviation"`
	Mode              float64 `json:"mode"`
	Skewness          float64 `json:"skewness"`
	ShadowClipping    bool    `json:"shadow_clipping"`
	HighlightClipping bool    `json:"highlight_clipping"`
	DynamicRange      float64 `json:"dynamic_range"`
}

// HistogramReport pairs one channel's histogram with its statistics.
type HistogramReport struct {
	Histogram  ChannelHistogram    `json:"histogram"`
	Statistics HistogramStatistics `json:"statistics"`
}

// ColorTemperatureEstimate is the white-balance estimate for an image.
// Kelvin is always within [2000, 25000] and tint within [-1, 1]; the
// three channel ratios sum to 1 (up to rounding) for any non-black
// input.
type ColorTemperatureEstimate struct {
	Kelvin     float64 `json:"kelvin"`
	Tint       float64 `json:"tint"`
	RedRatio   float64 `json:"red_ratio"`
	GreenRatio float64 `json:"green_ratio"`
	BlueRatio  float64 `json:"blue_ratio"`
}

// ContrastMetrics summarizes the luminance spread of an image.
type ContrastMetrics struct {
	RMSContrast       float64 `json:"rms_contrast"`
	MichelsonContrast float64 `json:"michelson_contrast"`
	WeberContrast     float64 `json:"weber_contrast"`
	DynamicRangeStops float64 `json:"dynamic_range_stops"`
	GlobalContrast    float64 `json:"global_contrast"`
}

// ExposureAnalysis is the exposure diagnosis with corrective advice.
// HistogramBalance is the median luminance in [0,1]; ShadowDetail and
// HighlightDetail are fractions of the pixel population.
type ExposureAnalysis struct {
	AverageEV        float64 `json:"average_ev"`
	SuggestedEV      float64 `json:"suggested_ev"`
	IsUnderexposed   bool    `json:"is_underexposed"`
	IsOverexposed    bool    `json:"is_overexposed"`
	ShadowDetail     float64 `json:"shadow_detail"`
	HighlightDetail  float64 `json:"highlight_detail"`
	HistogramBalance float64 `json:"histogram_balance"`
	Recommendation   string  `json:"recommendation,omitempty"`
}

// ImageAnalysisResult is the complete photometric analysis of one
// image. It is assembled once per analysis call and never mutated
// afterwards; nothing in it is shared across calls.
type ImageAnalysisResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Red       HistogramReport `json:"red"`
	Green     HistogramReport `json:"green"`
	Blue      HistogramReport `json:"blue"`
	Luminance HistogramReport `json:"luminance"`

	WhiteBalance ColorTemperatureEstimate `json:"white_balance"`
	Contrast     ContrastMetrics          `json:"contrast"`
	Exposure     ExposureAnalysis         `json:"exposure"`
}
