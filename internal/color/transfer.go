// Package color provides the transfer functions used to build gamma
// correction tables.
//
// Compositing happens on encoded (gamma space) values. The text filter uses
// these curves to compute, per background level, the coverage that makes a
// gamma-space blend match a linear-light blend.
package color

import "math"

// SRGBToLinear decodes an sRGB component in [0,1] to linear light.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return float32(math.Pow(float64((s+0.055)/1.055), 2.4))
}

// LinearToSRGB encodes a linear component in [0,1] to sRGB.
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*float32(math.Pow(float64(l), 1.0/2.4)) - 0.055
}

// Curve is an encoding transfer function. The zero value is the sRGB curve;
// a positive Gamma selects a pure power curve.
type Curve struct {
	Gamma float32
}

// Decode converts an encoded value to linear light.
func (c Curve) Decode(v float32) float32 {
	v = clamp01(v)
	if c.Gamma <= 0 {
		return SRGBToLinear(v)
	}
	return float32(math.Pow(float64(v), float64(c.Gamma)))
}

// Encode converts a linear value to the encoded space.
func (c Curve) Encode(v float32) float32 {
	v = clamp01(v)
	if c.Gamma <= 0 {
		return LinearToSRGB(v)
	}
	return float32(math.Pow(float64(v), 1/float64(c.Gamma)))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
