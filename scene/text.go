package scene

import (
	"image/color"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/glyph"
	"github.com/gogpu/tilecomp/texture"
)

// Text draws an atlas entry with its pen origin at (x, y). The entry is
// filtered by t and covers the rectangle the placement spans; the batch
// atlas must be the texture the placement came from.
func (b *Builder) Text(x, y float32, p glyph.Placement, t filter.Text) *Builder {
	x0, y0 := x+p.Left, y+p.Top
	rect := NewPath().Rectangle(x0, y0, p.PixelWidth(), float32(p.Height))
	return b.Fill(rect, tilecomp.NonZero, Paint{
		Color:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Filter:  filter.TextAA(t),
		Combine: tilecomp.CombineSrcIn,
		// Material u runs in atlas texels, Oversample per pixel.
		Transform:     [4]float32{glyph.Oversample, 0, 0, 1},
		Offset:        [2]float32{-glyph.Oversample * x0, -y0},
		TextureOffset: [2]float32{float32(p.X), float32(p.Y)},
	})
}

// TextRun shapes s with face, adds it to atlas and draws it at (x, y) in fg
// over bg. The atlas texture must be the builder's atlas.
func (b *Builder) TextRun(atlas *glyph.Atlas, face *glyph.Face, s string, size, x, y float32, fg, bg color.NRGBA) *Builder {
	run, err := face.Shape(s, size)
	if err != nil {
		b.fail(err)
		return b
	}
	p, err := atlas.Add(run)
	if err != nil {
		b.fail(err)
		return b
	}
	t := filter.Text{
		Kernel:       filter.DefringeKernel,
		Fg:           texture.FromRGBA8(fg),
		Bg:           texture.FromRGBA8(bg),
		GammaCorrect: true,
		Step:         1,
	}
	return b.Text(x, y, p, t)
}
