package scene

import (
	"math"
	"slices"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/internal/path"
)

const (
	tilePx    = tilecomp.TileSize
	tileFixed = tilecomp.TileSize * tilecomp.SubpixelScale
)

// grid is the tile rectangle [x0, x1) x [y0, y1) covered by a mask layout.
type grid struct {
	x0, y0, x1, y1 int
}

func (g grid) width() int  { return g.x1 - g.x0 }
func (g grid) height() int { return g.y1 - g.y0 }
func (g grid) empty() bool { return g.x1 <= g.x0 || g.y1 <= g.y0 }

func (g grid) intersect(o grid) grid {
	return grid{max(g.x0, o.x0), max(g.y0, o.y0), min(g.x1, o.x1), min(g.y1, o.y1)}
}

func (g grid) contains(tx, ty int) bool {
	return tx >= g.x0 && tx < g.x1 && ty >= g.y0 && ty < g.y1
}

// gridFor returns the tiles covering the contours' bounding box, clipped to
// the surface tiles.
func gridFor(contours [][]path.Point, surface grid) grid {
	lo, hi, ok := path.Bounds(contours)
	if !ok {
		return grid{}
	}
	g := grid{
		x0: int(math.Floor(lo.X / tilePx)),
		y0: int(math.Floor(lo.Y / tilePx)),
		x1: int(math.Ceil(hi.X / tilePx)),
		y1: int(math.Ceil(hi.Y / tilePx)),
	}
	g.x1 = max(g.x1, g.x0+1)
	g.y1 = max(g.y1, g.y0+1)
	return g.intersect(surface)
}

// tiler cuts contours into tile-local segments for one mask layout.
type tiler struct {
	g    grid
	base tilecomp.TileIndex
	out  []tilecomp.TiledSegment
}

func (t *tiler) contours(contours [][]path.Point) {
	for _, c := range contours {
		for i := range c {
			t.edge(c[i], c[(i+1)%len(c)])
		}
	}
}

// edge clips one edge to the layout. Parts above or below the layout, or
// right of it, cannot change the winding of a pixel inside it and are
// dropped. Parts left of it are projected onto its left edge.
func (t *tiler) edge(a, b path.Point) {
	top, bot := float64(t.g.y0*tilePx), float64(t.g.y1*tilePx)
	left, right := float64(t.g.x0*tilePx), float64(t.g.x1*tilePx)

	if (a.Y <= top && b.Y <= top) || (a.Y >= bot && b.Y >= bot) {
		return
	}
	a, b = clipY(a, b, top), clipY(b, a, top)
	a, b = clipYMax(a, b, bot), clipYMax(b, a, bot)

	parts := splitX(a, b, left, right)
	for i := 0; i+1 < len(parts); i++ {
		p, q := parts[i], parts[i+1]
		switch mid := (p.X + q.X) / 2; {
		case mid >= right:
			continue
		case mid <= left:
			p.X, q.X = left, left
		}
		t.cut(p, q)
	}
}

// clipY moves a onto y = top if it lies above, along the line to b.
func clipY(a, b path.Point, top float64) path.Point {
	if a.Y >= top {
		return a
	}
	s := (top - a.Y) / (b.Y - a.Y)
	return path.Point{X: a.X + (b.X-a.X)*s, Y: top}
}

func clipYMax(a, b path.Point, bot float64) path.Point {
	if a.Y <= bot {
		return a
	}
	s := (bot - a.Y) / (b.Y - a.Y)
	return path.Point{X: a.X + (b.X-a.X)*s, Y: bot}
}

// splitX returns a, the crossings of x = left and x = right, and b.
func splitX(a, b path.Point, left, right float64) []path.Point {
	pts := []path.Point{a}
	var cuts []crossing
	for _, x := range []float64{left, right} {
		if (a.X < x && b.X > x) || (a.X > x && b.X < x) {
			cuts = append(cuts, crossing{t: (x - a.X) / (b.X - a.X), x: x, setX: true})
		}
	}
	slices.SortFunc(cuts, func(p, q crossing) int { return cmpFloat(p.t, q.t) })
	for _, c := range cuts {
		pts = append(pts, c.at(a, b))
	}
	return append(pts, b)
}

type crossing struct {
	t          float64
	x, y       float64
	setX, setY bool
}

func (c crossing) at(a, b path.Point) path.Point {
	p := path.Point{X: a.X + (b.X-a.X)*c.t, Y: a.Y + (b.Y-a.Y)*c.t}
	if c.setX {
		p.X = c.x
	}
	if c.setY {
		p.Y = c.y
	}
	return p
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// cut splits a line inside the layout at every tile boundary it crosses and
// emits the pieces. Boundary coordinates are set exactly so neighboring
// pieces share their end points.
func (t *tiler) cut(a, b path.Point) {
	var cuts []crossing
	if a.X != b.X {
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		for k := math.Floor(lo/tilePx) + 1; k*tilePx < hi; k++ {
			x := k * tilePx
			cuts = append(cuts, crossing{t: (x - a.X) / (b.X - a.X), x: x, setX: true})
		}
	}
	if a.Y != b.Y {
		lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
		for k := math.Floor(lo/tilePx) + 1; k*tilePx < hi; k++ {
			y := k * tilePx
			cuts = append(cuts, crossing{t: (y - a.Y) / (b.Y - a.Y), y: y, setY: true})
		}
	}
	slices.SortFunc(cuts, func(p, q crossing) int { return cmpFloat(p.t, q.t) })

	// Crossings at the same parameter pass through a tile corner.
	merged := cuts[:0]
	for _, c := range cuts {
		if n := len(merged); n > 0 && math.Abs(merged[n-1].t-c.t) < 1e-12 {
			last := &merged[n-1]
			if c.setX {
				last.x, last.setX = c.x, true
			}
			if c.setY {
				last.y, last.setY = c.y, true
			}
			continue
		}
		merged = append(merged, c)
	}

	prev := quantize(a)
	for _, c := range merged {
		p := quantize(c.at(a, b))
		t.emit(prev, p)
		prev = p
	}
	t.emit(prev, quantize(b))
}

// fixedPoint is a surface point in 1/256 pixel units.
type fixedPoint struct {
	x, y int
}

func quantize(p path.Point) fixedPoint {
	return fixedPoint{
		x: int(math.Round(p.X * tilecomp.SubpixelScale)),
		y: int(math.Round(p.Y * tilecomp.SubpixelScale)),
	}
}

// emit tags a piece with the tile containing its midpoint. Pieces on a
// vertical boundary go to the tile on the right, pieces on a horizontal
// boundary to the tile below.
func (t *tiler) emit(a, b fixedPoint) {
	if a == b {
		return
	}
	col := floorDiv(a.x+b.x, 2*tileFixed)
	row := floorDiv(a.y+b.y, 2*tileFixed)
	col = min(max(col, t.g.x0), t.g.x1-1)
	row = min(max(row, t.g.y0), t.g.y1-1)

	ox, oy := col*tileFixed, row*tileFixed
	seg := tilecomp.Segment{
		From: tilecomp.Point{X: tilecomp.FixedCoord(a.x - ox), Y: tilecomp.FixedCoord(a.y - oy)},
		To:   tilecomp.Point{X: tilecomp.FixedCoord(b.x - ox), Y: tilecomp.FixedCoord(b.y - oy)},
	}
	tile := t.base + tilecomp.TileIndex((row-t.g.y0)*t.g.width()+(col-t.g.x0))
	t.out = append(t.out, tilecomp.TiledSegment{Segment: seg, Tile: tile})
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
