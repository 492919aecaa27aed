package texture

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func floatEqual(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestRGBASampleTexelCenters(t *testing.T) {
	tex := NewRGBA(2, 1)
	tex.Set(0, 0, Color{R: 1, A: 1})
	tex.Set(1, 0, Color{B: 1, A: 1})

	tests := []struct {
		name string
		u    float32
		want Color
	}{
		{"first center", 0.5, Color{R: 1, A: 1}},
		{"second center", 1.5, Color{B: 1, A: 1}},
		{"midpoint", 1.0, Color{R: 0.5, B: 0.5, A: 1}},
		{"clamped left", -3, Color{R: 1, A: 1}},
		{"clamped right", 9, Color{B: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tex.Sample(tt.u, 0.5)
			if !floatEqual(got.R, tt.want.R, 1e-6) || !floatEqual(got.B, tt.want.B, 1e-6) ||
				!floatEqual(got.A, tt.want.A, 1e-6) {
				t.Errorf("Sample(%v) = %+v, want %+v", tt.u, got, tt.want)
			}
		})
	}
}

func TestAlphaSampleBilinear(t *testing.T) {
	tex := NewAlpha(2, 2)
	tex.Set(0, 0, 0)
	tex.Set(1, 0, 1)
	tex.Set(0, 1, 1)
	tex.Set(1, 1, 1)

	if got := tex.SampleAlpha(1, 1); !floatEqual(got, 0.75, 1e-6) {
		t.Errorf("SampleAlpha(1, 1) = %v, want 0.75", got)
	}
	if got := tex.SampleAlpha(0.5, 0.5); got != 0 {
		t.Errorf("SampleAlpha(0.5, 0.5) = %v, want 0", got)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.SetNRGBA(10, 10, color.NRGBA{R: 255, A: 128})
	img.SetNRGBA(11, 10, color.NRGBA{G: 255, A: 255})

	tex := FromImage(img)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width, tex.Height)
	}

	c := tex.At(0, 0)
	if !floatEqual(c.A, 128.0/255, 1e-6) || !floatEqual(c.R, 128.0/255, 1.0/255) {
		t.Errorf("premultiplied texel = %+v", c)
	}
	if got := tex.At(1, 0); got.G != 1 || got.A != 1 {
		t.Errorf("opaque texel = %+v", got)
	}
}

func TestAlphaFromImage(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 3, 1))
	img.SetAlpha(1, 0, color.Alpha{A: 255})

	tex := AlphaFromImage(img)
	if got := tex.At(1, 0); got != 1 {
		t.Errorf("At(1, 0) = %v, want 1", got)
	}
	if got := tex.At(0, 0); got != 0 {
		t.Errorf("At(0, 0) = %v, want 0", got)
	}
}

func TestColorPremultiply(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	p := c.Premultiply()
	if p.R != 0.5 || p.G != 0.25 || p.A != 0.5 {
		t.Errorf("Premultiply = %+v", p)
	}
	back := p.Unpremultiply()
	if !floatEqual(back.R, 1, 1e-6) || !floatEqual(back.G, 0.5, 1e-6) {
		t.Errorf("Unpremultiply = %+v", back)
	}
	if got := (Color{R: 1}).Unpremultiply(); got != Transparent {
		t.Errorf("zero alpha Unpremultiply = %+v", got)
	}
}

func TestColorNRGBA(t *testing.T) {
	c := Color{R: 0.5, A: 0.5}
	got := c.NRGBA()
	want := color.NRGBA{R: 255, A: 128}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
}
