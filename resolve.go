// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilecomp

import (
	"math"

	"github.com/gogpu/tilecomp/internal/arealut"
)

// ResolveTile accumulates the signed area of every fill of tile into out.
// Values are raw coverage: they may exceed 1 or be negative until the
// backdrop and winding rule are applied.
func (p *RenderPass) ResolveTile(tile TileIndex, out *[TilePixels]float32) error {
	clear(out[:])
	return p.Walk(tile, func(s Segment) {
		x0, y0, x1, y1 := s.floats()
		accumulate(out[:], TileSize, TileSize, TileSize, x0, y0, x1, y1)
	})
}

// accumulate adds the signed area right of the line (x0,y0)-(x1,y1) to a
// width by height coverage buffer with the given row stride. For each pixel
// row the line is cut to the row, evaluated at the window midpoint and
// spread over the columns it passes through with the area table. Columns
// entirely right of the line receive the full signed window height.
func accumulate(acc []float32, stride, width, height int, x0, y0, x1, y1 float32) {
	if y0 == y1 {
		return
	}
	sign := float32(1)
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		sign = -1
	}
	dxdy := (x1 - x0) / (y1 - y0)

	rowStart := max(int(math.Floor(float64(y0))), 0)
	rowEnd := min(int(math.Ceil(float64(y1))), height)
	for row := rowStart; row < rowEnd; row++ {
		top := max(y0, float32(row))
		bot := min(y1, float32(row+1))
		if bot <= top {
			continue
		}
		h := bot - top
		w := h * sign
		xm := x0 + ((top+bot)*0.5-y0)*dxdy
		s := float32(math.Abs(float64(dxdy * h)))

		lo := int(math.Floor(float64(xm - s*0.5)))
		hi := int(math.Floor(float64(xm + s*0.5)))

		line := acc[row*stride : row*stride+width]
		for c := max(lo, 0); c <= hi && c < width; c++ {
			line[c] += area(xm-(float32(c)+0.5), s) * w
		}
		for c := max(hi+1, 0); c < width; c++ {
			line[c] += w
		}
	}
}

// area returns the pixel fraction right of a line at offset x from the
// pixel center with spread s.
func area(x, s float32) float32 {
	const half = arealut.Range / 2
	if s > arealut.Range || x < -half || x > half {
		return float32(arealut.Exact(float64(x+half), float64(s)))
	}
	return arealut.Lookup(x+half, s)
}
