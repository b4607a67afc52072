package analyzer

import (
	"math"
	"testing"
)

func TestLuminance_Extremes(t *testing.T) {
	if y := Luminance(0, 0, 0); y != 0 {
		t.Errorf("Expected zero luminance for black, got %f", y)
	}
	if y := Luminance(255, 255, 255); math.Abs(y-1.0) > 1e-9 {
		t.Errorf("Expected unit luminance for white, got %f", y)
	}
}

func TestLuminance_ChannelWeights(t *testing.T) {
	r := Luminance(255, 0, 0)
	g := Luminance(0, 255, 0)
	b := Luminance(0, 0, 255)

	if math.Abs(r-0.2126) > 1e-9 {
		t.Errorf("Expected red weight 0.2126, got %f", r)
	}
	if math.Abs(g-0.7152) > 1e-9 {
		t.Errorf("Expected green weight 0.7152, got %f", g)
	}
	if math.Abs(b-0.0722) > 1e-9 {
		t.Errorf("Expected blue weight 0.0722, got %f", b)
	}
}

func TestLuminance_MidGray(t *testing.T) {
	y := Luminance(128, 128, 128)
	if math.Abs(y-0.2159) > 0.001 {
		t.Errorf("Expected mid-gray luminance near 0.2159, got %f", y)
	}
}

func TestLuminance_Monotonic(t *testing.T) {
	prev := -1.0
	for v := 0; v < 256; v++ {
		y := Luminance(uint8(v), uint8(v), uint8(v))
		if y <= prev {
			t.Fatalf("Luminance not strictly increasing at value %d: %f <= %f", v, y, prev)
		}
		prev = y
	}
}

func TestLinearizeMatchesLUT(t *testing.T) {
	for _, v := range []int{0, 1, 10, 64, 128, 200, 255} {
		lut := srgbToLinear[v]
		lin := linearize(float64(v))
		if math.Abs(lut-lin) > 1e-12 {
			t.Errorf("linearize(%d) = %f, LUT has %f", v, lin, lut)
		}
	}
}
