// Package blend implements the sixteen blend modes of the tile compositor on
// premultiplied float32 colors.
//
// Every mode except Normal uses the W3C compositing formula
//
//	result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cb, Cs)
//
// where Cb and Cs are the unpremultiplied backdrop and source colors and B is
// the per-mode blend function. Normal is plain source-over.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/tilecomp/texture"

// Mode selects a blend function. The numbering is the 4-bit value stored in
// a draw's control word.
type Mode uint8

const (
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

var modeNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference",
	"exclusion", "hue", "saturation", "color", "luminosity",
}

// String returns the CSS name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode returns the mode with the given CSS name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return Normal, false
}

// Blend composites premultiplied src onto premultiplied dst.
// Unknown modes behave like Normal.
func Blend(mode Mode, src, dst texture.Color) texture.Color {
	if src.A <= 0 {
		return dst
	}
	switch mode {
	case Multiply:
		return separable(src, dst, multiply)
	case Screen:
		return separable(src, dst, screen)
	case Overlay:
		return separable(src, dst, overlay)
	case Darken:
		return separable(src, dst, darken)
	case Lighten:
		return separable(src, dst, lighten)
	case ColorDodge:
		return separable(src, dst, colorDodge)
	case ColorBurn:
		return separable(src, dst, colorBurn)
	case HardLight:
		return separable(src, dst, hardLight)
	case SoftLight:
		return separable(src, dst, softLight)
	case Difference:
		return separable(src, dst, difference)
	case Exclusion:
		return separable(src, dst, exclusion)
	case Hue:
		return nonSeparable(src, dst, hslHue)
	case Saturation:
		return nonSeparable(src, dst, hslSaturation)
	case Color:
		return nonSeparable(src, dst, hslColor)
	case Luminosity:
		return nonSeparable(src, dst, hslLuminosity)
	default:
		return SourceOver(src, dst)
	}
}

// SourceOver is the Porter-Duff source-over operator. An opaque source
// replaces the destination exactly.
func SourceOver(src, dst texture.Color) texture.Color {
	if src.A >= 1 {
		return src
	}
	inv := 1 - src.A
	return texture.Color{
		R: src.R + dst.R*inv,
		G: src.G + dst.G*inv,
		B: src.B + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}

// composite applies the W3C formula given the blended straight color b.
func composite(src, dst texture.Color, br, bg, bb float32) texture.Color {
	invSa := 1 - src.A
	invDa := 1 - dst.A
	saDa := src.A * dst.A
	return texture.Color{
		R: invSa*dst.R + invDa*src.R + saDa*br,
		G: invSa*dst.G + invDa*src.G + saDa*bg,
		B: invSa*dst.B + invDa*src.B + saDa*bb,
		A: src.A + dst.A*invSa,
	}
}

func separable(src, dst texture.Color, fn func(cb, cs float32) float32) texture.Color {
	if dst.A <= 0 {
		return src
	}
	s := src.Unpremultiply()
	d := dst.Unpremultiply()
	return composite(src, dst, fn(d.R, s.R), fn(d.G, s.G), fn(d.B, s.B))
}

func nonSeparable(src, dst texture.Color, fn func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32)) texture.Color {
	if dst.A <= 0 {
		return src
	}
	s := src.Unpremultiply()
	d := dst.Unpremultiply()
	r, g, b := fn(s.R, s.G, s.B, d.R, d.G, d.B)
	return composite(src, dst, r, g, b)
}
