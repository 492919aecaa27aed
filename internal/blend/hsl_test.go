package blend

import (
	"testing"

	"github.com/gogpu/tilecomp/texture"
)

func TestLumRec709(t *testing.T) {
	if got := Lum(1, 1, 1); !floatEqual(got, 1) {
		t.Errorf("Lum(white) = %v, want 1", got)
	}
	if got := Lum(0, 1, 0); !floatEqual(got, 0.7152) {
		t.Errorf("Lum(green) = %v, want 0.7152", got)
	}
}

func TestSetSatGrayIsZero(t *testing.T) {
	r, g, b := SetSat(0.4, 0.4, 0.4, 0.5)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("SetSat(gray) = %v %v %v, want zeros", r, g, b)
	}
}

func TestSetSatKeepsOrder(t *testing.T) {
	r, g, b := SetSat(0.2, 0.6, 1.0, 0.5)
	if !floatEqual(r, 0) || !floatEqual(g, 0.25) || !floatEqual(b, 0.5) {
		t.Errorf("SetSat = %v %v %v, want 0 0.25 0.5", r, g, b)
	}
}

func TestClipColorInRange(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
	}{
		{"negative", -0.2, 0.5, 0.9},
		{"over one", 1.4, 0.5, 0.1},
		{"both", -0.5, 0.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lum(tt.r, tt.g, tt.b)
			r, g, b := ClipColor(tt.r, tt.g, tt.b)
			for _, c := range []float32{r, g, b} {
				if c < -1e-5 || c > 1+1e-5 {
					t.Errorf("channel %v out of range", c)
				}
			}
			if l >= 0 && l <= 1 && !floatEqual(Lum(r, g, b), l) {
				t.Errorf("luma changed from %v to %v", l, Lum(r, g, b))
			}
		})
	}
}

func TestNonSeparableGrayBackdrop(t *testing.T) {
	// A gray backdrop has zero saturation; hue and saturation modes must not
	// divide by it.
	gray := texture.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	red := texture.Color{R: 1, A: 1}

	for _, m := range []Mode{Hue, Saturation, Color, Luminosity} {
		got := Blend(m, red, gray)
		for _, c := range []float32{got.R, got.G, got.B} {
			if c != c || c < -1e-5 || c > 1+1e-5 {
				t.Errorf("%v: channel %v invalid in %+v", m, c, got)
			}
		}
		if !floatEqual(got.A, 1) {
			t.Errorf("%v: alpha %v, want 1", m, got.A)
		}
	}

	// Hue onto gray keeps the gray.
	if got := Blend(Hue, red, gray); !colorEqual(got, gray) {
		t.Errorf("Hue onto gray = %+v, want %+v", got, gray)
	}
}

func TestLuminosityTakesSourceLuma(t *testing.T) {
	src := texture.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}
	dst := texture.Color{R: 0.2, G: 0.3, B: 0.4, A: 1}
	got := Blend(Luminosity, src, dst)
	if !floatEqual(Lum(got.R, got.G, got.B), 0.9) {
		t.Errorf("luma = %v, want 0.9", Lum(got.R, got.G, got.B))
	}
}
