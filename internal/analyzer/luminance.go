package analyzer

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Rec. 709 luminance weights for linear RGB.
const (
	lumRedWeight   = 0.2126
	lumGreenWeight = 0.7152
	lumBlueWeight  = 0.0722
)

// srgbToLinear maps an 8-bit sRGB value to its linear-light value in
// [0,1]. Seeded once from go-colorful's LinearRgb, which implements
// the exact sRGB transfer function (c/12.92 below 0.04045, gamma 2.4
// above); the table avoids a Pow call per channel per pixel.
var srgbToLinear = func() [256]float64 {
	var lut [256]float64
	for i := range lut {
		v := float64(i) / 255.0
		lin, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
		lut[i] = lin
	}
	return lut
}()

// Luminance converts one sRGB pixel to relative luminance in [0,1]:
// channels are linearized, then combined with Rec. 709 weights.
// Pure and stateless; called once per pixel.
func Luminance(r, g, b uint8) float64 {
	return lumRedWeight*srgbToLinear[r] +
		lumGreenWeight*srgbToLinear[g] +
		lumBlueWeight*srgbToLinear[b]
}

// linearize applies the sRGB transfer function to a channel average
// given in [0,255]. Used for the colorimetry path, where the input is
// a float average rather than a byte.
func linearize(avg float64) float64 {
	lin, _, _ := colorful.Color{R: avg / 255.0, G: avg / 255.0, B: avg / 255.0}.LinearRgb()
	return lin
}
