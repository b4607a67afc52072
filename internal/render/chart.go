package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// HistogramChart renders a normalized 256-bin histogram as a PNG bar
// chart. It consumes the numeric bins only; nothing in the analysis
// engine depends on this package.
type HistogramChart struct {
	Width  int
	Height int
}

// NewHistogramChart returns a chart with the default canvas size
func NewHistogramChart() *HistogramChart {
	return &HistogramChart{Width: 512, Height: 256}
}

// RenderPNG draws the bins as filled bars in the display color over a
// dark background and returns the encoded PNG. Bin values are expected
// in [0,1]; out-of-range values are clamped.
func (hc *HistogramChart) RenderPNG(bins []float64, display color.Color) ([]byte, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("no histogram bins to render")
	}

	w, h := hc.Width, hc.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", w, h)
	}

	base, ok := colorful.MakeColor(display)
	if !ok {
		// Fully transparent display color; fall back to neutral gray.
		base = colorful.Color{R: 0.7, G: 0.7, B: 0.7}
	}
	// Slightly lighter stroke so bar tops read against the fill.
	stroke := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.35).Clamped()

	const margin = 8.0
	plotH := float64(h) - 2*margin
	barW := (float64(w) - 2*margin) / float64(len(bins))

	dc := gg.NewContext(w, h)
	dc.SetRGB(0.08, 0.08, 0.10)
	dc.Clear()

	dc.SetRGBA(base.R, base.G, base.B, 0.85)
	for i, v := range bins {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		barH := v * plotH
		x := margin + float64(i)*barW
		dc.DrawRectangle(x, float64(h)-margin-barH, barW, barH)
	}
	dc.Fill()

	dc.SetRGB(stroke.R, stroke.G, stroke.B)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, float64(h)-margin, float64(w)-margin, float64(h)-margin)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
