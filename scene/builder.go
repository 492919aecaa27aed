package scene

import (
	"errors"
	"image/color"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/texture"
)

// Builder errors.
var (
	ErrNestedClip = errors.New("scene: nested clips are not supported")
	ErrUnbalanced = errors.New("scene: PopClip without PushClip")
	ErrClipOpen   = errors.New("scene: clip still pushed at Build")
)

// clipState is the active clip mask.
type clipState struct {
	layout tilecomp.MaskLayout
	g      grid
	rule   tilecomp.FillRule
}

// Builder accumulates fills into a batch for one surface.
// Builder methods record the first error; Build returns it.
type Builder struct {
	surface grid
	batch   tilecomp.Batch
	clip    *clipState
	err     error
}

// NewBuilder creates a builder for a width by height surface.
func NewBuilder(width, height int) *Builder {
	return &Builder{
		surface: grid{
			x1: (width + tilePx - 1) / tilePx,
			y1: (height + tilePx - 1) / tilePx,
		},
	}
}

// SetTexture sets the texture sampled by textured and blurred paints.
func (b *Builder) SetTexture(t texture.Sampler) *Builder {
	b.batch.Texture = t
	return b
}

// SetAtlas sets the glyph atlas sampled by text paints.
func (b *Builder) SetAtlas(a texture.AlphaSampler) *Builder {
	b.batch.Atlas = a
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// mask tiles p and allocates a layout for it. It returns false when the
// path is empty or outside the surface.
func (b *Builder) mask(p *Path) (tilecomp.MaskLayout, grid, bool) {
	contours := p.contours()
	g := gridFor(contours, b.surface)
	if g.empty() {
		return tilecomp.MaskLayout{}, g, false
	}
	layout := tilecomp.MaskLayout{
		Base:   tilecomp.TileIndex(b.batch.MaskTiles),
		Width:  g.width(),
		Height: g.height(),
	}
	t := tiler{g: g, base: layout.Base}
	t.contours(contours)

	b.batch.MaskTiles += layout.Len()
	b.batch.Masks = append(b.batch.Masks, layout)
	b.batch.Segments = append(b.batch.Segments, t.out...)
	return layout, g, true
}

// Fill paints p under rule. A fill outside the active clip is dropped.
func (b *Builder) Fill(p *Path, rule tilecomp.FillRule, paint Paint) *Builder {
	if rule == tilecomp.MaskNone {
		rule = tilecomp.NonZero
	}
	layout, g, ok := b.mask(p)
	if !ok {
		return b
	}
	b.addDraws(g, paint, paint.control(rule), func(tx, ty int) (tilecomp.TileIndex, int32) {
		return layout.Tile(tx-g.x0, ty-g.y0), 0
	})
	return b
}

// Paint covers the whole surface, within the active clip.
func (b *Builder) Paint(paint Paint) *Builder {
	b.addDraws(b.surface, paint, paint.control(tilecomp.MaskNone), func(int, int) (tilecomp.TileIndex, int32) {
		return tilecomp.NoTile, 0
	})
	return b
}

// Border outlines the selected edges of every surface tile. It is a debug
// overlay for inspecting tiling.
func (b *Builder) Border(sides tilecomp.BorderSide, c color.NRGBA) *Builder {
	meta := uint32(len(b.batch.Metadata))
	b.batch.Metadata = append(b.batch.Metadata, Solid(c).metadata())
	ctl := tilecomp.BorderControl(tilecomp.MaskNone, sides)
	for ty := b.surface.y0; ty < b.surface.y1; ty++ {
		for tx := b.surface.x0; tx < b.surface.x1; tx++ {
			b.batch.Draws = append(b.batch.Draws, tilecomp.Draw{
				TileOrigin: [2]int32{int32(tx), int32(ty)},
				MaskTile:   tilecomp.NoTile,
				ClipTile:   tilecomp.NoTile,
				Color:      meta,
				Control:    ctl,
			})
		}
	}
	return b
}

func (b *Builder) addDraws(g grid, paint Paint, ctl tilecomp.ControlWord, maskAt func(tx, ty int) (tilecomp.TileIndex, int32)) {
	if b.clip != nil {
		g = g.intersect(b.clip.g)
	}
	if g.empty() {
		return
	}
	meta := uint32(len(b.batch.Metadata))
	b.batch.Metadata = append(b.batch.Metadata, paint.metadata())

	for ty := g.y0; ty < g.y1; ty++ {
		for tx := g.x0; tx < g.x1; tx++ {
			mask, backdrop := maskAt(tx, ty)
			d := tilecomp.Draw{
				TileOrigin:   [2]int32{int32(tx), int32(ty)},
				MaskTile:     mask,
				MaskBackdrop: backdrop,
				ClipTile:     tilecomp.NoTile,
				Color:        meta,
				Control:      ctl,
			}
			if c := b.clip; c != nil {
				d.ClipTile = c.layout.Tile(tx-c.g.x0, ty-c.g.y0)
				d.ClipRule = c.rule
			}
			b.batch.Draws = append(b.batch.Draws, d)
		}
	}
}

// PushClip restricts later fills to p under rule until PopClip. Clips do
// not nest.
func (b *Builder) PushClip(p *Path, rule tilecomp.FillRule) *Builder {
	if b.clip != nil {
		b.fail(ErrNestedClip)
		return b
	}
	if rule == tilecomp.MaskNone {
		rule = tilecomp.NonZero
	}
	layout, g, ok := b.mask(p)
	if !ok {
		// Nothing is visible until PopClip.
		b.clip = &clipState{rule: rule}
		return b
	}
	b.clip = &clipState{layout: layout, g: g, rule: rule}
	return b
}

// PopClip ends the active clip.
func (b *Builder) PopClip() *Builder {
	if b.clip == nil {
		b.fail(ErrUnbalanced)
		return b
	}
	b.clip = nil
	return b
}

// Build returns the accumulated batch. The builder must not be used
// afterwards.
func (b *Builder) Build() (*tilecomp.Batch, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.clip != nil {
		return nil, ErrClipOpen
	}
	tilecomp.Logger().Debug("scene: built batch",
		"segments", len(b.batch.Segments),
		"mask_tiles", b.batch.MaskTiles,
		"draws", len(b.batch.Draws))
	batch := b.batch
	return &batch, nil
}

// Len returns the number of draws recorded so far.
func (b *Builder) Len() int { return len(b.batch.Draws) }
