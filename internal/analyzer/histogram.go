package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"go-photometry/pkg/models"
)

// binIndex is the shared 0..255 axis used for weighted statistics.
var binIndex = func() [models.HistogramBins]float64 {
	var idx [models.HistogramBins]float64
	for i := range idx {
		idx[i] = float64(i)
	}
	return idx
}()

// channelAccumulator collects raw bin counts for a single channel
// during the pixel pass. It is owned by exactly one analysis call.
type channelAccumulator struct {
	counts [models.HistogramBins]uint64
	total  uint64
}

func (a *channelAccumulator) add(bin uint8) {
	a.counts[bin]++
	a.total++
}

// luminanceBin maps a luminance value to its histogram bin, clamping
// anything outside [0,1] into the edge bins.
func luminanceBin(y float64) uint8 {
	if y <= 0 {
		return 0
	}
	if y >= 1 {
		return models.HistogramBins - 1
	}
	return uint8(math.Round(y * (models.HistogramBins - 1)))
}

// median returns the median sample value implied by the raw counts,
// expressed on the bin axis: the smallest bin whose cumulative count
// reaches half the total. Zero when nothing was counted.
func (a *channelAccumulator) median() float64 {
	if a.total == 0 {
		return 0
	}
	half := float64(a.total) / 2
	var cum uint64
	for i, c := range a.counts {
		cum += c
		if float64(cum) >= half {
			return float64(i)
		}
	}
	return models.HistogramBins - 1
}

// finalize normalizes the accumulated counts and derives statistics.
//
// Two normalizations happen in sequence: division by the total pixel
// count (probability domain, bins sum to 1) and then division by the
// peak bin so the histogram maxes out at 1.0. Clipping detection runs
// on the probability domain, where the threshold means "fraction of
// all pixels in the extreme bins"; everything else is computed on the
// peak-scaled histogram.
func (a *channelAccumulator) finalize(opts AnalysisOptions) models.HistogramReport {
	var rep models.HistogramReport
	if a.total == 0 {
		return rep
	}

	var prob [models.HistogramBins]float64
	peak := 0.0
	for i, c := range a.counts {
		prob[i] = float64(c) / float64(a.total)
		if prob[i] > peak {
			peak = prob[i]
		}
	}

	band := opts.ClipBandWidth
	var shadowMass, highlightMass float64
	for i := 0; i < band; i++ {
		shadowMass += prob[i]
		highlightMass += prob[models.HistogramBins-1-i]
	}
	rep.Statistics.ShadowClipping = shadowMass > opts.ClippingThreshold
	rep.Statistics.HighlightClipping = highlightMass > opts.ClippingThreshold

	if peak > 0 {
		for i := range prob {
			rep.Histogram.Bins[i] = prob[i] / peak
		}
	}

	computeStatistics(&rep.Histogram, &rep.Statistics, opts)
	return rep
}

// computeStatistics fills the positional statistics from the
// peak-scaled histogram. Mean, median and deviation treat the bins as
// weights on the 0..255 axis, so they are invariant to the scaling;
// the dynamic-range presence floor is defined on the scaled bins.
func computeStatistics(h *models.ChannelHistogram, s *models.HistogramStatistics, opts AnalysisOptions) {
	mass := 0.0
	for _, v := range h.Bins {
		mass += v
	}
	if mass == 0 {
		return
	}

	s.Mean = stat.Mean(binIndex[:], h.Bins[:])
	s.StandardDeviation = stat.PopStdDev(binIndex[:], h.Bins[:])
	s.Skewness = stat.Skew(binIndex[:], h.Bins[:])
	if math.IsNaN(s.Skewness) {
		s.Skewness = 0
	}

	half := mass / 2
	cum := 0.0
	for i, v := range h.Bins {
		cum += v
		if cum >= half {
			s.Median = float64(i)
			break
		}
	}

	modeVal := h.Bins[0]
	for i, v := range h.Bins {
		if v > modeVal {
			modeVal = v
			s.Mode = float64(i)
		}
	}

	first, last := -1, -1
	for i, v := range h.Bins {
		if v > opts.PresenceFloor {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first >= 0 && last >= first {
		s.DynamicRange = float64(last - first)
	}
}
