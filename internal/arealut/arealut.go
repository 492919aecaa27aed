// Package arealut holds the precomputed area lookup table used by the
// coverage resolver.
//
// The table maps a line's horizontal position relative to a pixel center and
// the horizontal spread of the line across the pixel row window to the
// fraction of the pixel lying on the positive (right) side of the line.
// Entries are pre-integrated so the resolver never evaluates the closed form
// per pixel.
//
// Indexing follows the resolver: u is the line's offset from the pixel
// center plus 8, s is |slope * window|. Both axes cover [0, 16] at 1/16
// precision.
package arealut

import (
	"math"
	"sync"
)

const (
	// Range is the extent of both table axes.
	Range = 16

	// Precision is the number of samples per unit on each axis.
	Precision = 16

	// Size is the number of samples along each axis.
	Size = Range*Precision + 1

	// flatSpread is the spread below which a line is treated as vertical.
	flatSpread = 1e-6
)

var (
	tableOnce sync.Once
	table     []float32
)

// Table returns the table in row-major order: Size rows indexed by s, each
// holding Size samples indexed by u. The slice is shared and must not be
// modified.
func Table() []float32 {
	tableOnce.Do(build)
	return table
}

func build() {
	table = make([]float32, Size*Size)
	for j := range Size {
		s := float64(j) / Precision
		row := table[j*Size : (j+1)*Size]
		for i := range Size {
			row[i] = float32(Exact(float64(i)/Precision, s))
		}
	}
}

// Lookup returns the coverage fraction for intercept u and spread s with
// bilinear interpolation between table samples. Arguments are clamped to the
// table domain.
func Lookup(u, s float32) float32 {
	t := Table()

	fu := clamp(u, 0, Range) * Precision
	fs := clamp(s, 0, Range) * Precision

	i0 := int(fu)
	j0 := int(fs)
	i1 := min(i0+1, Size-1)
	j1 := min(j0+1, Size-1)
	tu := fu - float32(i0)
	ts := fs - float32(j0)

	r0 := t[j0*Size:]
	r1 := t[j1*Size:]
	a := r0[i0] + (r0[i1]-r0[i0])*tu
	b := r1[i0] + (r1[i1]-r1[i0])*tu
	return a + (b-a)*ts
}

// Exact evaluates the coverage fraction in closed form.
//
// A line at offset x from the pixel center that is vertical covers
// clamp(0.5-x, 0, 1) of the pixel. A sloped line sweeps uniformly across
// [x-s/2, x+s/2] over the window, so its coverage is the mean of the vertical
// case over that interval.
func Exact(u, s float64) float64 {
	x := u - Range/2
	if s < flatSpread {
		return math.Min(math.Max(0.5-x, 0), 1)
	}
	return (antiderivative(x+s/2) - antiderivative(x-s/2)) / s
}

// antiderivative integrates clamp(0.5-z, 0, 1), normalized so the value is
// 0.5 for z >= 0.5.
func antiderivative(z float64) float64 {
	switch {
	case z <= -0.5:
		return z + 0.5
	case z >= 0.5:
		return 0.5
	default:
		return 0.5*z - z*z/2 + 0.375
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
