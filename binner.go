// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tilecomp

import "fmt"

// edge is the tile edge length in Coord fixed units.
const edge = TileSize * SubpixelScale

var (
	tileEnd   = Coord{Int: TileSize}
	tileStart = Coord{}
)

// Bin pushes every segment into the fill list of its tile and records the
// winding each tile hands to its right neighbor. Bin may be called
// concurrently on disjoint slices of one frame's segments.
//
// For tiles inside a MaskLayout, two extra facts are derived per segment:
//
//   - a segment with one end on the tile's top edge and the other below it
//     changes the winding along that edge, so it adds its direction to the
//     tile's delta. Vertical segments on the right edge are skipped; they
//     only affect tiles beyond the layout.
//   - a segment leaving through the right edge at height y changes the
//     winding of the right neighbor's rows below y. A vertical fill along
//     the neighbor's left edge carries that change.
func (p *RenderPass) Bin(segments []TiledSegment) error {
	for i := range segments {
		if err := p.bin(segments[i].Tile, segments[i].Segment); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

func (p *RenderPass) bin(tile TileIndex, seg Segment) error {
	if int(tile) >= len(p.heads) || tile == NoTile {
		return fmt.Errorf("%w: tile %d of %d", ErrTileOutOfRange, tile, len(p.heads))
	}
	if seg.From.Y != seg.To.Y {
		if _, err := p.Push(tile, seg); err != nil {
			return err
		}
	}
	if len(p.layouts) == 0 {
		return nil
	}

	p.topEdge(tile, seg)

	right := p.right[tile]
	if right == NoTile {
		return nil
	}
	fill, ok := leftEdgeFill(seg)
	if !ok {
		return nil
	}
	_, err := p.Push(right, fill)
	return err
}

func (p *RenderPass) topEdge(tile TileIndex, seg Segment) {
	y0, y1 := seg.From.Y.Fixed(), seg.To.Y.Fixed()
	var sign int32
	switch {
	case y0 == 0 && y1 > 0:
		sign = 1
	case y1 == 0 && y0 > 0:
		sign = -1
	default:
		return
	}
	if seg.From.X == seg.To.X && seg.From.X.Fixed() == edge {
		return
	}
	p.deltas[tile].Add(sign)
}

// leftEdgeFill returns the fill a segment crossing the right tile edge
// induces in the neighbor. Crossings at the corners induce nothing.
func leftEdgeFill(seg Segment) (Segment, bool) {
	x0, x1 := seg.From.X.Fixed(), seg.To.X.Fixed()
	switch {
	case x1 == edge && x0 < edge:
		y := seg.To.Y
		if !interior(y) {
			return Segment{}, false
		}
		return Segment{From: Point{X: tileStart, Y: tileEnd}, To: Point{X: tileStart, Y: y}}, true
	case x0 == edge && x1 < edge:
		y := seg.From.Y
		if !interior(y) {
			return Segment{}, false
		}
		return Segment{From: Point{X: tileStart, Y: y}, To: Point{X: tileStart, Y: tileEnd}}, true
	}
	return Segment{}, false
}

func interior(c Coord) bool {
	f := c.Fixed()
	return f > 0 && f < edge
}

// PropagateBackdrops turns the per-tile deltas into backdrops with an
// exclusive prefix sum along every layout row. Tiles outside any layout
// keep a zero backdrop.
func (p *RenderPass) PropagateBackdrops() {
	for _, l := range p.layouts {
		for y := range l.Height {
			var sum int32
			for x := range l.Width {
				t := l.Tile(x, y)
				if int(t) >= len(p.backdrops) {
					break
				}
				p.backdrops[t] = sum
				sum += p.deltas[t].Load()
			}
		}
	}
}
