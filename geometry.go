package tilecomp

import "math"

// TileSize is the edge length of a tile in pixels.
const TileSize = 16

// TilePixels is the number of pixels in a tile.
const TilePixels = TileSize * TileSize

// SubpixelScale is the number of fractional steps per pixel in a Coord.
const SubpixelScale = 256

// TileIndex identifies a mask tile in a pass.
type TileIndex uint32

// NoTile marks an absent tile reference.
const NoTile TileIndex = math.MaxUint32

// Coord is a tile-local coordinate in [0, TileSize] stored as an integer
// pixel part and a 1/256 fractional part.
type Coord struct {
	Int  uint8
	Frac uint8
}

// CoordOf quantizes v to the nearest 1/256 and clamps it to [0, TileSize].
func CoordOf(v float32) Coord {
	return FixedCoord(int(math.Round(float64(v) * SubpixelScale)))
}

// FixedCoord converts a value in 1/256 units, clamped to [0, TileSize].
func FixedCoord(v int) Coord {
	v = min(max(v, 0), TileSize*SubpixelScale)
	return Coord{Int: uint8(v >> 8), Frac: uint8(v & 0xff)}
}

// Fixed returns the coordinate in 1/256 units.
func (c Coord) Fixed() int {
	return int(c.Int)<<8 | int(c.Frac)
}

// Float returns the coordinate in pixels.
func (c Coord) Float() float32 {
	return float32(c.Fixed()) / SubpixelScale
}

// Point is a tile-local point.
type Point struct {
	X, Y Coord
}

// Pt quantizes a tile-local point.
func Pt(x, y float32) Point {
	return Point{X: CoordOf(x), Y: CoordOf(y)}
}

// Segment is a directed line in tile-local coordinates. Direction carries
// the winding sign: downward segments add coverage to their right.
type Segment struct {
	From, To Point
}

// Seg builds a segment from float tile-local coordinates.
func Seg(x0, y0, x1, y1 float32) Segment {
	return Segment{From: Pt(x0, y0), To: Pt(x1, y1)}
}

// Reverse returns the segment with swapped endpoints.
func (s Segment) Reverse() Segment {
	return Segment{From: s.To, To: s.From}
}

// floats returns the endpoints in pixels.
func (s Segment) floats() (x0, y0, x1, y1 float32) {
	return s.From.X.Float(), s.From.Y.Float(), s.To.X.Float(), s.To.Y.Float()
}

// TiledSegment is a segment tagged with the mask tile that owns it.
type TiledSegment struct {
	Segment
	Tile TileIndex
}
