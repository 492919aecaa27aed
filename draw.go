package tilecomp

import (
	"fmt"
	"image/color"

	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/texture"
)

// Draw is one unit of paint for one output tile. Draws that share a tile
// composite in the order they appear in Batch.Draws.
type Draw struct {
	// TileOrigin is the output tile as (column, row).
	TileOrigin [2]int32

	// MaskTile is the coverage tile for the mask, or NoTile. MaskBackdrop is
	// added to the winding propagated by the pass.
	MaskTile     TileIndex
	MaskBackdrop int32

	// ClipTile intersects a second mask with the draw's mask. The clip is
	// ignored when ClipRule is MaskNone.
	ClipTile     TileIndex
	ClipBackdrop int32
	ClipRule     FillRule

	// Color indexes Batch.Metadata.
	Color uint32

	Control ControlWord
}

// Identity is the identity 2x2 transform.
var Identity = [4]float32{1, 0, 0, 1}

// Metadata describes a paint. Transform is column-major:
//
//	u = T[0]*x + T[2]*y + Offset[0]
//	v = T[1]*x + T[3]*y + Offset[1]
//
// mapping a pixel center to material space, where gradients are evaluated.
// Texture sampling happens at the material point plus TextureOffset.
type Metadata struct {
	Transform     [4]float32
	Offset        [2]float32
	BaseColor     color.NRGBA
	TextureOffset [2]float32
	Filter        filter.Filter
}

func (m *Metadata) material(x, y float32) [2]float32 {
	t := m.Transform
	return [2]float32{
		t[0]*x + t[2]*y + m.Offset[0],
		t[1]*x + t[3]*y + m.Offset[1],
	}
}

// MaskLayout declares a rectangle of mask tiles laid out row-major from
// Base. Winding crossing a tile's left edge is propagated only between tiles
// of the same layout row.
type MaskLayout struct {
	Base          TileIndex
	Width, Height int
}

// Tile returns the mask tile at layout column x and row y.
func (l MaskLayout) Tile(x, y int) TileIndex {
	return l.Base + TileIndex(y*l.Width+x)
}

// Len returns the number of tiles in the layout.
func (l MaskLayout) Len() int { return l.Width * l.Height }

// Batch is the input of one render pass.
type Batch struct {
	// Segments carry the mask geometry, each tagged with its mask tile.
	Segments []TiledSegment

	// MaskTiles is the number of mask tiles addressed by the batch.
	MaskTiles int

	// Masks optionally group mask tiles into rectangles for backdrop
	// propagation.
	Masks []MaskLayout

	Draws    []Draw
	Metadata []Metadata

	// Texture and Atlas are sampled by the color filters.
	Texture texture.Sampler
	Atlas   texture.AlphaSampler
}

// validate checks the batch tables against a surface of tilesX by tilesY
// tiles. Segment tile indices are checked during binning.
func (b *Batch) validate(tilesX, tilesY int) error {
	if b.MaskTiles < 0 {
		return fmt.Errorf("%w: negative mask tile count %d", ErrInvalidBatch, b.MaskTiles)
	}
	for i, l := range b.Masks {
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("%w: mask layout %d is empty", ErrInvalidBatch, i)
		}
		if int(l.Base)+l.Len() > b.MaskTiles {
			return fmt.Errorf("%w: mask layout %d ends at %d, pass has %d tiles",
				ErrInvalidBatch, i, int(l.Base)+l.Len(), b.MaskTiles)
		}
	}
	for i := range b.Draws {
		d := &b.Draws[i]
		if int(d.Color) >= len(b.Metadata) {
			return fmt.Errorf("%w: draw %d references metadata %d of %d",
				ErrInvalidBatch, i, d.Color, len(b.Metadata))
		}
		if kind := d.Control.Filter(); !d.Control.IsBorder() && d.Control.Combine() != CombineNone &&
			b.Metadata[d.Color].Filter.Kind != kind {
			return fmt.Errorf("%w: draw %d selects filter %v, metadata %d holds %v",
				ErrInvalidBatch, i, kind, d.Color, b.Metadata[d.Color].Filter.Kind)
		}
		x, y := d.TileOrigin[0], d.TileOrigin[1]
		if x < 0 || y < 0 || int(x) >= tilesX || int(y) >= tilesY {
			return fmt.Errorf("%w: draw %d targets tile (%d, %d) of a %dx%d grid",
				ErrTileOutOfRange, i, x, y, tilesX, tilesY)
		}
		if d.Control.Mask() != MaskNone && !validTile(d.MaskTile, b.MaskTiles) {
			return fmt.Errorf("%w: draw %d mask tile %d of %d", ErrTileOutOfRange, i, d.MaskTile, b.MaskTiles)
		}
		if d.ClipRule != MaskNone && !validTile(d.ClipTile, b.MaskTiles) {
			return fmt.Errorf("%w: draw %d clip tile %d of %d", ErrTileOutOfRange, i, d.ClipTile, b.MaskTiles)
		}
	}
	return nil
}

func validTile(t TileIndex, n int) bool {
	return t != NoTile && int(t) < n
}
