package analyzer

import (
	"math"

	"go-photometry/pkg/models"
)

// contrastAccumulator keeps the running figures needed for the
// contrast metrics without retaining per-pixel samples: count, sum,
// sum of squares, min and max are enough to derive everything at the
// end of the pass.
type contrastAccumulator struct {
	n          uint64
	sum        float64
	sumSquares float64
	min        float64
	max        float64
}

func newContrastAccumulator() contrastAccumulator {
	return contrastAccumulator{min: math.Inf(1), max: math.Inf(-1)}
}

func (c *contrastAccumulator) add(y float64) {
	c.n++
	c.sum += y
	c.sumSquares += y * y
	if y < c.min {
		c.min = y
	}
	if y > c.max {
		c.max = y
	}
}

func (c *contrastAccumulator) mean() float64 {
	if c.n == 0 {
		return 0
	}
	return c.sum / float64(c.n)
}

// metrics derives the contrast figures. Degenerate inputs produce
// defined zeros rather than errors: Michelson needs max > 0, Weber
// needs min > 0, and the stops figure needs max > min > 0.
func (c *contrastAccumulator) metrics() models.ContrastMetrics {
	var m models.ContrastMetrics
	if c.n == 0 {
		return m
	}

	mean := c.mean()
	variance := c.sumSquares/float64(c.n) - mean*mean
	if variance < 0 {
		// Rounding on perfectly flat images can push this a hair
		// below zero.
		variance = 0
	}
	m.RMSContrast = math.Sqrt(variance)

	if c.max > 0 {
		m.MichelsonContrast = (c.max - c.min) / (c.max + c.min)
	}
	if c.min > 0 {
		m.WeberContrast = (mean - c.min) / c.min
	}
	if c.max > c.min && c.min > 0 {
		m.DynamicRangeStops = math.Log10(c.max/c.min) * 3.32
	}
	m.GlobalContrast = c.max - c.min
	return m
}
