// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilecomp

import (
	"fmt"
	"math"
	"sync/atomic"
)

// FillIndex addresses a fill in the pass arena.
type FillIndex uint32

// NoFill terminates a fill list.
const NoFill FillIndex = math.MaxUint32

// Fill is one segment in a tile's fill list.
type Fill struct {
	Segment Segment
	Next    FillIndex
}

// RenderPass holds the per-frame binning state: the fill arena, one list
// head per mask tile, and the winding carried into each tile from its left
// neighbor.
//
// Push may be called from many goroutines. Walk, Backdrop and the buffer
// accessors must only run after every Push of the pass has returned.
type RenderPass struct {
	fills []Fill
	count atomic.Uint32

	heads  []atomic.Uint32
	deltas []atomic.Int32

	backdrops []int32
	right     []TileIndex
	layouts   []MaskLayout
}

// NewRenderPass allocates a pass for maskTiles tiles and an arena of
// capacity fills.
func NewRenderPass(maskTiles, capacity int) *RenderPass {
	p := &RenderPass{}
	p.Reset(maskTiles, capacity, nil)
	return p
}

// Reset empties the pass and resizes it for a new frame. Storage is reused
// when it is large enough. layouts define the left-to-right tile rows used
// for backdrop propagation.
func (p *RenderPass) Reset(maskTiles, capacity int, layouts []MaskLayout) {
	if cap(p.fills) < capacity {
		p.fills = make([]Fill, capacity)
	}
	p.fills = p.fills[:capacity]
	p.count.Store(0)

	if cap(p.heads) < maskTiles {
		p.heads = make([]atomic.Uint32, maskTiles)
		p.deltas = make([]atomic.Int32, maskTiles)
		p.backdrops = make([]int32, maskTiles)
		p.right = make([]TileIndex, maskTiles)
	}
	p.heads = p.heads[:maskTiles]
	p.deltas = p.deltas[:maskTiles]
	p.backdrops = p.backdrops[:maskTiles]
	p.right = p.right[:maskTiles]

	for i := range p.heads {
		p.heads[i].Store(uint32(NoFill))
		p.deltas[i].Store(0)
		p.backdrops[i] = 0
		p.right[i] = NoTile
	}

	p.layouts = append(p.layouts[:0], layouts...)
	for _, l := range p.layouts {
		for y := range l.Height {
			for x := range l.Width - 1 {
				if t := l.Tile(x, y); int(t) < maskTiles {
					p.right[t] = t + 1
				}
			}
		}
	}
}

// Tiles returns the number of mask tiles in the pass.
func (p *RenderPass) Tiles() int { return len(p.heads) }

// Capacity returns the arena size.
func (p *RenderPass) Capacity() int { return len(p.fills) }

// Len returns the number of fills pushed so far.
func (p *RenderPass) Len() int {
	return min(int(p.count.Load()), len(p.fills))
}

// Push prepends seg to the fill list of tile. It is safe for concurrent
// use; the order of fills within a list is unspecified.
func (p *RenderPass) Push(tile TileIndex, seg Segment) (FillIndex, error) {
	if int(tile) >= len(p.heads) || tile == NoTile {
		return NoFill, fmt.Errorf("%w: tile %d of %d", ErrTileOutOfRange, tile, len(p.heads))
	}
	n := p.count.Add(1) - 1
	if int(n) >= len(p.fills) {
		return NoFill, fmt.Errorf("%w: capacity %d", ErrArenaFull, len(p.fills))
	}

	f := &p.fills[n]
	f.Segment = seg
	head := &p.heads[tile]
	for {
		old := head.Load()
		f.Next = FillIndex(old)
		if head.CompareAndSwap(old, n) {
			return FillIndex(n), nil
		}
	}
}

// Head returns the first fill of tile, or NoFill.
func (p *RenderPass) Head(tile TileIndex) FillIndex {
	if int(tile) >= len(p.heads) {
		return NoFill
	}
	return FillIndex(p.heads[tile].Load())
}

// Walk calls fn for every segment in the fill list of tile. A list longer
// than the arena, or a link outside it, fails with ErrFillCycle.
func (p *RenderPass) Walk(tile TileIndex, fn func(Segment)) error {
	if int(tile) >= len(p.heads) || tile == NoTile {
		return fmt.Errorf("%w: tile %d of %d", ErrTileOutOfRange, tile, len(p.heads))
	}
	n := p.Len()
	idx := FillIndex(p.heads[tile].Load())
	for steps := 0; idx != NoFill; steps++ {
		if int(idx) >= n || steps >= n {
			return fmt.Errorf("%w: tile %d at fill %d", ErrFillCycle, tile, idx)
		}
		f := &p.fills[idx]
		fn(f.Segment)
		idx = f.Next
	}
	return nil
}

// Fills returns the used part of the arena.
func (p *RenderPass) Fills() []Fill {
	return p.fills[:p.Len()]
}

// Heads returns a copy of the head table.
func (p *RenderPass) Heads() []FillIndex {
	out := make([]FillIndex, len(p.heads))
	for i := range p.heads {
		out[i] = FillIndex(p.heads[i].Load())
	}
	return out
}

// Backdrop returns the winding carried into tile. It is valid after
// PropagateBackdrops.
func (p *RenderPass) Backdrop(tile TileIndex) int32 {
	if int(tile) >= len(p.backdrops) {
		return 0
	}
	return p.backdrops[tile]
}

// Backdrops returns the backdrop table, indexed by tile.
func (p *RenderPass) Backdrops() []int32 {
	return p.backdrops
}
