package tilecomp

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gogpu/tilecomp/texture"
)

// Surface is the destination of a render: premultiplied float RGBA pixels
// addressed in tiles of TileSize.
type Surface struct {
	width, height int
	pix           []texture.Color
}

// NewSurface creates a transparent surface.
func NewSurface(width, height int) *Surface {
	width, height = max(width, 0), max(height, 0)
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]texture.Color, width*height),
	}
}

// SurfaceFromImage creates a surface holding img.
func SurfaceFromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	rgba := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	for y := range s.height {
		for x := range s.width {
			s.pix[y*s.width+x] = texture.FromRGBA8(rgba.NRGBAAt(x, y)).Premultiply()
		}
	}
	return s
}

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// TilesX returns the number of tile columns, counting a partial last one.
func (s *Surface) TilesX() int { return (s.width + TileSize - 1) / TileSize }

// TilesY returns the number of tile rows.
func (s *Surface) TilesY() int { return (s.height + TileSize - 1) / TileSize }

// Tile returns the pixel bounds of tile (tx, ty), clipped to the surface.
func (s *Surface) Tile(tx, ty int) image.Rectangle {
	r := image.Rect(tx*TileSize, ty*TileSize, (tx+1)*TileSize, (ty+1)*TileSize)
	return r.Intersect(image.Rect(0, 0, s.width, s.height))
}

// At returns the premultiplied color at (x, y), or transparent outside the
// surface.
func (s *Surface) At(x, y int) texture.Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return texture.Transparent
	}
	return s.pix[y*s.width+x]
}

// Set stores a premultiplied color.
func (s *Surface) Set(x, y int, c texture.Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.pix[y*s.width+x] = c
}

// Clear fills the surface with a premultiplied color.
func (s *Surface) Clear(c texture.Color) {
	for i := range s.pix {
		s.pix[i] = c
	}
}

// Image converts the surface to 8-bit RGBA.
func (s *Surface) Image() *image.RGBA {
	straight := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for y := range s.height {
		for x := range s.width {
			straight.SetNRGBA(x, y, s.pix[y*s.width+x].NRGBA())
		}
	}
	out := image.NewRGBA(straight.Bounds())
	draw.Draw(out, out.Bounds(), straight, image.Point{}, draw.Src)
	return out
}

// EncodePNG writes the surface to w as a PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("tilecomp: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("tilecomp: create file: %w", err)
	}
	if err := s.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// loadTile copies tile (tx, ty) into acc. Pixels outside the surface are
// transparent.
func (s *Surface) loadTile(tx, ty int, acc *[TilePixels]texture.Color) {
	x0, y0 := tx*TileSize, ty*TileSize
	for py := range TileSize {
		for px := range TileSize {
			acc[py*TileSize+px] = s.At(x0+px, y0+py)
		}
	}
}

// storeTile writes acc back to tile (tx, ty), dropping pixels outside the
// surface.
func (s *Surface) storeTile(tx, ty int, acc *[TilePixels]texture.Color) {
	x0, y0 := tx*TileSize, ty*TileSize
	for py := range TileSize {
		for px := range TileSize {
			s.Set(x0+px, y0+py, acc[py*TileSize+px])
		}
	}
}
