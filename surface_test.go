package tilecomp

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/tilecomp/texture"
)

func TestSurfaceTiles(t *testing.T) {
	s := NewSurface(20, 33)
	if s.TilesX() != 2 || s.TilesY() != 3 {
		t.Fatalf("tiles = %dx%d, want 2x3", s.TilesX(), s.TilesY())
	}
	tests := []struct {
		tx, ty int
		want   image.Rectangle
	}{
		{0, 0, image.Rect(0, 0, 16, 16)},
		{1, 0, image.Rect(16, 0, 20, 16)},
		{1, 2, image.Rect(16, 32, 20, 33)},
		{4, 4, image.Rectangle{}},
	}
	for _, tt := range tests {
		if got := s.Tile(tt.tx, tt.ty); !got.Eq(tt.want) {
			t.Errorf("Tile(%d, %d) = %v, want %v", tt.tx, tt.ty, got, tt.want)
		}
	}
}

func TestSurfaceAtSet(t *testing.T) {
	s := NewSurface(4, 4)
	c := texture.Color{R: 0.5, A: 0.5}
	s.Set(1, 2, c)
	s.Set(-1, 0, c)
	s.Set(4, 0, c)
	if s.At(1, 2) != c {
		t.Errorf("At(1, 2) = %+v", s.At(1, 2))
	}
	if s.At(9, 9) != texture.Transparent {
		t.Errorf("At outside = %+v", s.At(9, 9))
	}
}

func TestSurfaceImage(t *testing.T) {
	s := NewSurface(2, 1)
	s.Set(0, 0, texture.Color{R: 0.5, A: 0.5})
	s.Set(1, 0, texture.Color{G: 1, A: 1})

	img := s.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 128, A: 128}) {
		t.Errorf("half red = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("green = %v", got)
	}
}

func TestSurfaceFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	src.SetNRGBA(10, 10, color.NRGBA{B: 255, A: 255})
	src.SetNRGBA(11, 10, color.NRGBA{R: 255, A: 0})

	s := SurfaceFromImage(src)
	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if got := s.At(0, 0); got != (texture.Color{B: 1, A: 1}) {
		t.Errorf("At(0, 0) = %+v", got)
	}
	if got := s.At(1, 0); got.A != 0 || got.R != 0 {
		t.Errorf("transparent pixel = %+v", got)
	}
}

func TestRenderPartialTile(t *testing.T) {
	dst := NewSurface(20, 20)
	b := &Batch{
		Draws:    []Draw{{TileOrigin: [2]int32{1, 1}, Control: fillControl(MaskNone)}},
		Metadata: []Metadata{solid(red)},
	}
	render(t, b, dst)
	if got := dst.At(19, 19); got != (texture.Color{R: 1, A: 1}) {
		t.Errorf("partial tile pixel = %+v", got)
	}
	if got := dst.At(15, 15); got != texture.Transparent {
		t.Errorf("neighbor tile pixel = %+v", got)
	}
}

func TestSurfaceSavePNG(t *testing.T) {
	s := NewSurface(4, 3)
	s.Set(2, 1, texture.Color{G: 1, A: 1})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	r, g, b, a := img.At(2, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("pixel = %d %d %d %d, want opaque green", r, g, b, a)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("untouched pixel alpha = %d, want 0", a)
	}
}
