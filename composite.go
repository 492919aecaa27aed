// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilecomp

import (
	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/internal/blend"
	"github.com/gogpu/tilecomp/texture"
)

// tileState tracks one output tile through compositing. A tile is written
// back at most once, and only if a draw touched it.
type tileState uint8

const (
	tileEmpty tileState = iota
	tileAccumulating
	tileResolved
)

// compositor applies draws to output tiles. The coverage table is indexed
// by mask tile and must be resolved before compositing starts.
type compositor struct {
	batch    *Batch
	pass     *RenderPass
	coverage [][TilePixels]float32
	env      filter.Env
	dst      *Surface

	// states is indexed by ty*tilesX+tx.
	states []tileState
	tilesX int
}

// tile composites the draws (indices into batch.Draws, in submission order)
// of output tile (tx, ty). It reports whether the tile was written.
func (c *compositor) tile(tx, ty int, draws []int32) bool {
	var acc [TilePixels]texture.Color
	state := &c.states[ty*c.tilesX+tx]

	for _, di := range draws {
		d := &c.batch.Draws[di]
		if c.empty(d) {
			continue
		}
		if *state == tileEmpty {
			c.dst.loadTile(tx, ty, &acc)
			*state = tileAccumulating
		}
		c.apply(tx, ty, d, &acc)
	}

	if *state != tileAccumulating {
		return false
	}
	c.dst.storeTile(tx, ty, &acc)
	*state = tileResolved
	return true
}

// empty reports whether the draw's mask covers nothing: no fills and no
// winding carried into the tile.
func (c *compositor) empty(d *Draw) bool {
	if d.Control.Mask() == MaskNone {
		return false
	}
	return c.pass.Head(d.MaskTile) == NoFill && c.backdrop(d.MaskTile, d.MaskBackdrop) == 0
}

func (c *compositor) backdrop(tile TileIndex, seed int32) int32 {
	return seed + c.pass.Backdrop(tile)
}

func (c *compositor) apply(tx, ty int, d *Draw, acc *[TilePixels]texture.Color) {
	meta := &c.batch.Metadata[d.Color]
	ctl := d.Control
	rule := ctl.Mask()
	mode := blend.Mode(ctl.Blend())
	base := texture.FromRGBA8(meta.BaseColor)

	var mask, clip *[TilePixels]float32
	var maskBackdrop, clipBackdrop int32
	if rule != MaskNone {
		mask = &c.coverage[d.MaskTile]
		maskBackdrop = c.backdrop(d.MaskTile, d.MaskBackdrop)
	}
	if d.ClipRule != MaskNone {
		clip = &c.coverage[d.ClipTile]
		clipBackdrop = c.backdrop(d.ClipTile, d.ClipBackdrop)
	}

	ox, oy := float32(tx*TileSize), float32(ty*TileSize)
	for py := range TileSize {
		for px := range TileSize {
			k := py*TileSize + px

			alpha := float32(1)
			if mask != nil {
				alpha = MaskAlpha(mask[k], maskBackdrop, rule)
			}
			if clip != nil {
				alpha = CombineMasks(alpha, MaskAlpha(clip[k], clipBackdrop, d.ClipRule))
			}
			if alpha <= 0 {
				continue
			}

			var col texture.Color
			if ctl.IsBorder() {
				if !onBorder(px, py, ctl.BorderSides()) {
					continue
				}
				col = base
			} else {
				col = c.paint(meta, ctl.Combine(), base, ox+float32(px)+0.5, oy+float32(py)+0.5)
			}

			col.A *= alpha
			acc[k] = blend.Blend(mode, col.Premultiply(), acc[k])
		}
	}
}

// paint returns the straight color of a draw at pixel center (x, y).
func (c *compositor) paint(meta *Metadata, op Combine, base texture.Color, x, y float32) texture.Color {
	if op == CombineNone {
		return base
	}
	p := meta.material(x, y)
	uv := [2]float32{p[0] + meta.TextureOffset[0], p[1] + meta.TextureOffset[1]}
	src := meta.Filter.Apply(&c.env, p, uv)

	switch op {
	case CombineSrcIn:
		return texture.Color{R: src.R, G: src.G, B: src.B, A: src.A * base.A}
	case CombineDestIn:
		return texture.Color{R: base.R, G: base.G, B: base.B, A: src.A * base.A}
	default:
		return base
	}
}

func onBorder(px, py int, sides BorderSide) bool {
	return (sides&BorderLeft != 0 && px == 0) ||
		(sides&BorderTop != 0 && py == 0) ||
		(sides&BorderRight != 0 && px == TileSize-1) ||
		(sides&BorderBottom != 0 && py == TileSize-1)
}
