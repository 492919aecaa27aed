package filter

import (
	"github.com/gogpu/tilecomp/internal/color"
)

// GammaLevels is the resolution of both GammaLUT axes.
const GammaLevels = 256

// GammaLUT maps (background level, coverage) to the coverage that, blended
// in encoded space, reproduces a linear-light blend of the glyph color over
// the background. Rows assume black text on light backgrounds and white text
// on dark ones.
type GammaLUT struct {
	table []float32
}

// NewGammaLUT builds the table for a power curve with the given exponent.
// A non-positive gamma selects the sRGB curve.
func NewGammaLUT(gamma float32) *GammaLUT {
	curve := color.Curve{Gamma: gamma}
	lut := &GammaLUT{table: make([]float32, GammaLevels*GammaLevels)}

	for row := range GammaLevels {
		bg := float32(row) / (GammaLevels - 1)
		var fg float32
		if bg < 0.5 {
			fg = 1
		}
		linBg := curve.Decode(bg)
		linFg := curve.Decode(fg)

		for col := range GammaLevels {
			a := float32(col) / (GammaLevels - 1)
			enc := curve.Encode(linBg + (linFg-linBg)*a)
			corrected := (enc - bg) / (fg - bg)
			lut.table[row*GammaLevels+col] = min(max(corrected, 0), 1)
		}
	}
	return lut
}

// Correct returns the corrected coverage for coverage a over background
// level bg, both in [0,1].
func (l *GammaLUT) Correct(bg, a float32) float32 {
	fr := min(max(bg, 0), 1) * (GammaLevels - 1)
	fc := min(max(a, 0), 1) * (GammaLevels - 1)
	r0, c0 := int(fr), int(fc)
	r1 := min(r0+1, GammaLevels-1)
	c1 := min(c0+1, GammaLevels-1)
	tr, tc := fr-float32(r0), fc-float32(c0)

	at := func(r, c int) float32 { return l.table[r*GammaLevels+c] }
	top := at(r0, c0) + (at(r0, c1)-at(r0, c0))*tc
	bottom := at(r1, c0) + (at(r1, c1)-at(r1, c0))*tc
	return top + (bottom-top)*tr
}
