package texture

import (
	"image"

	"golang.org/x/image/draw"
)

// Sampler samples premultiplied colors.
type Sampler interface {
	Sample(u, v float32) Color
}

// AlphaSampler samples a single coverage channel.
type AlphaSampler interface {
	SampleAlpha(u, v float32) float32
}

// RGBA is a premultiplied float32 RGBA texture.
type RGBA struct {
	Width, Height int
	Pix           []Color
}

// NewRGBA creates a transparent texture.
func NewRGBA(width, height int) *RGBA {
	return &RGBA{Width: width, Height: height, Pix: make([]Color, width*height)}
}

// FromImage converts img into a premultiplied texture.
func FromImage(img image.Image) *RGBA {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	t := NewRGBA(b.Dx(), b.Dy())
	for y := range t.Height {
		row := rgba.Pix[y*rgba.Stride:]
		for x := range t.Width {
			p := row[x*4 : x*4+4]
			t.Pix[y*t.Width+x] = Color{
				R: float32(p[0]) / 255,
				G: float32(p[1]) / 255,
				B: float32(p[2]) / 255,
				A: float32(p[3]) / 255,
			}
		}
	}
	return t
}

// At returns the texel at (x, y) with coordinates clamped to the texture.
func (t *RGBA) At(x, y int) Color {
	if t.Width == 0 || t.Height == 0 {
		return Transparent
	}
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pix[y*t.Width+x]
}

// Set stores a premultiplied texel. Out of range coordinates are ignored.
func (t *RGBA) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pix[y*t.Width+x] = c
}

// Sample implements Sampler.
func (t *RGBA) Sample(u, v float32) Color {
	x0, y0, fx, fy := footprint(u, v)
	top := t.At(x0, y0).Lerp(t.At(x0+1, y0), fx)
	bottom := t.At(x0, y0+1).Lerp(t.At(x0+1, y0+1), fx)
	return top.Lerp(bottom, fy)
}

// Alpha is a single-channel float32 texture.
type Alpha struct {
	Width, Height int
	Pix           []float32
}

// NewAlpha creates a zero coverage texture.
func NewAlpha(width, height int) *Alpha {
	return &Alpha{Width: width, Height: height, Pix: make([]float32, width*height)}
}

// AlphaFromImage converts the alpha channel of img into a texture.
func AlphaFromImage(img image.Image) *Alpha {
	b := img.Bounds()
	a, ok := img.(*image.Alpha)
	if !ok || a.Rect.Min != (image.Point{}) {
		a = image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(a, a.Bounds(), img, b.Min, draw.Src)
	}

	t := NewAlpha(b.Dx(), b.Dy())
	for y := range t.Height {
		row := a.Pix[y*a.Stride:]
		for x := range t.Width {
			t.Pix[y*t.Width+x] = float32(row[x]) / 255
		}
	}
	return t
}

// At returns the coverage at (x, y) with coordinates clamped.
func (t *Alpha) At(x, y int) float32 {
	if t.Width == 0 || t.Height == 0 {
		return 0
	}
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pix[y*t.Width+x]
}

// Set stores a coverage value. Out of range coordinates are ignored.
func (t *Alpha) Set(x, y int, a float32) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pix[y*t.Width+x] = a
}

// SampleAlpha implements AlphaSampler.
func (t *Alpha) SampleAlpha(u, v float32) float32 {
	x0, y0, fx, fy := footprint(u, v)
	top := lerp(t.At(x0, y0), t.At(x0+1, y0), fx)
	bottom := lerp(t.At(x0, y0+1), t.At(x0+1, y0+1), fx)
	return lerp(top, bottom, fy)
}

// footprint returns the top-left texel of the bilinear footprint at (u, v)
// and the interpolation weights.
func footprint(u, v float32) (x0, y0 int, fx, fy float32) {
	x := u - 0.5
	y := v - 0.5
	fx0 := floor(x)
	fy0 := floor(y)
	return int(fx0), int(fy0), x - fx0, y - fy0
}

func floor(v float32) float32 {
	i := float32(int(v))
	if i > v {
		i--
	}
	return i
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
