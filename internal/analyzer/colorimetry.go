package analyzer

import (
	"math"

	"go-photometry/pkg/models"
)

// Colorimetry fallback for degenerate (black) input.
const (
	defaultKelvin = 5500.0
	minKelvin     = 2000.0
	maxKelvin     = 25000.0
)

// sRGB (D65) linear RGB to CIE XYZ. The coefficients are the
// conventional 7-digit published values; they are written out rather
// than pulled from a color library so the estimate reproduces the
// McCamy reference figures exactly.
const (
	xyzXr, xyzXg, xyzXb = 0.4124564, 0.3575761, 0.1804375
	xyzYr, xyzYg, xyzYb = 0.2126729, 0.7151522, 0.0721750
	xyzZr, xyzZg, xyzZb = 0.0193339, 0.1191920, 0.9503041
)

// estimateColorTemperature derives a correlated color temperature and
// green-magenta tint from the per-channel averages (each in [0,255]).
// The averages are linearized, transformed to XYZ chromaticity, and
// run through McCamy's cubic approximation. A black input (X+Y+Z == 0)
// falls back to 5500K with neutral tint.
func estimateColorTemperature(avgRed, avgGreen, avgBlue float64) models.ColorTemperatureEstimate {
	est := models.ColorTemperatureEstimate{Kelvin: defaultKelvin}

	channelSum := avgRed + avgGreen + avgBlue
	if channelSum > 0 {
		est.RedRatio = avgRed / channelSum
		est.GreenRatio = avgGreen / channelSum
		est.BlueRatio = avgBlue / channelSum
	}

	lr := linearize(avgRed)
	lg := linearize(avgGreen)
	lb := linearize(avgBlue)

	x := xyzXr*lr + xyzXg*lg + xyzXb*lb
	y := xyzYr*lr + xyzYg*lg + xyzYb*lb
	z := xyzZr*lr + xyzZg*lg + xyzZb*lb

	sum := x + y + z
	if sum == 0 {
		return est
	}

	// McCamy's approximation on the chromaticity plane.
	cx := x / sum
	cy := y / sum
	n := (cx - 0.3320) / (0.1858 - cy)
	cct := 449*n*n*n + 3525*n*n + 6823.3*n + 5520.33
	if math.IsNaN(cct) {
		cct = defaultKelvin
	}
	est.Kelvin = clamp(cct, minKelvin, maxKelvin)

	est.Tint = estimateTint(avgRed, avgGreen, avgBlue)
	return est
}

// estimateTint measures how far green sits above or below the
// red/blue average, clamped to [-1, 1]. Positive means a green cast,
// negative a magenta cast.
func estimateTint(avgRed, avgGreen, avgBlue float64) float64 {
	magenta := (avgRed + avgBlue) / 2
	if magenta == 0 {
		if avgGreen > 0 {
			return 1
		}
		return 0
	}
	return clamp((avgGreen/magenta-1)*2, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
