package texture

import "image/color"

// Color is a float32 RGBA color. Whether the channels are premultiplied is
// stated by the API that produces or consumes it; textures and surfaces hold
// premultiplied values.
type Color struct {
	R, G, B, A float32
}

// Transparent is the zero color.
var Transparent = Color{}

// FromRGBA8 converts a straight-alpha 8-bit color to a straight float color.
func FromRGBA8(c color.NRGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Premultiply converts a straight color to premultiplied form.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply converts a premultiplied color to straight form. A zero
// alpha yields transparent black.
func (c Color) Unpremultiply() Color {
	if c.A <= 0 {
		return Transparent
	}
	inv := 1 / c.A
	return Color{R: c.R * inv, G: c.G * inv, B: c.B * inv, A: c.A}
}

// Scale multiplies every channel by k.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A * k}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Lerp interpolates from c to o by t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts a premultiplied color to a straight 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	s := c.Unpremultiply()
	return color.NRGBA{R: toByte(s.R), G: toByte(s.G), B: toByte(s.B), A: toByte(s.A)}
}

// RGBA converts a premultiplied color to a premultiplied 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: toByte(c.A)}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
