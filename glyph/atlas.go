package glyph

import (
	"fmt"
	"image"
	"math"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"

	"github.com/gogpu/tilecomp/texture"
)

// Oversample is the horizontal resolution factor of atlas entries.
const Oversample = 3

// pad is the empty border around each entry, in texels. Horizontally it
// covers the text filter's widest tap.
const (
	padX = 4
	padY = 1
)

// Placement locates a rasterized run in the atlas.
type Placement struct {
	// X and Y are the texel origin of the entry.
	X, Y int
	// Width is in texels (Oversample per pixel), Height in pixels.
	Width, Height int
	// Left and Top offset the entry's top-left corner from the run's pen
	// origin on the baseline, in pixels.
	Left, Top float32
}

// PixelWidth returns the entry width in pixels.
func (p Placement) PixelWidth() float32 { return float32(p.Width) / Oversample }

// Atlas packs rasterized runs into rows of an alpha texture. It is safe for
// concurrent use.
type Atlas struct {
	mu      sync.Mutex
	tex     *texture.Alpha
	x, y    int
	shelf   int
	entries int
}

// NewAtlas creates an empty atlas of width by height texels.
func NewAtlas(width, height int) *Atlas {
	return &Atlas{tex: texture.NewAlpha(width, height)}
}

// Texture returns the atlas texture.
func (a *Atlas) Texture() *texture.Alpha { return a.tex }

// Len returns the number of entries added.
func (a *Atlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries
}

// Add rasterizes run and stores it in the atlas.
func (a *Atlas) Add(run *Run) (Placement, error) {
	if run == nil || len(run.Glyphs) == 0 {
		return Placement{}, ErrEmptyRun
	}
	lo, hi, err := run.bounds()
	if err != nil {
		return Placement{}, err
	}
	left := float32(math.Floor(float64(lo[0])))
	top := float32(math.Floor(float64(lo[1])))
	w := (int(math.Ceil(float64(hi[0]))) - int(left)) * Oversample
	h := int(math.Ceil(float64(hi[1]))) - int(top)
	if w <= 0 || h <= 0 {
		return Placement{}, ErrEmptyRun
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	x, y, err := a.reserve(w+2*padX, h+2*padY)
	if err != nil {
		return Placement{}, err
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if err := run.rasterize(mask, left, top); err != nil {
		return Placement{}, err
	}
	for row := range h {
		for col := range w {
			a.tex.Set(x+padX+col, y+padY+row, float32(mask.Pix[row*mask.Stride+col])/255)
		}
	}
	a.entries++
	return Placement{X: x + padX, Y: y + padY, Width: w, Height: h, Left: left, Top: top}, nil
}

// reserve finds room for a w by h box using shelf packing.
func (a *Atlas) reserve(w, h int) (int, int, error) {
	if w > a.tex.Width {
		return 0, 0, fmt.Errorf("%w: entry %dx%d wider than atlas", ErrAtlasFull, w, h)
	}
	if a.x+w > a.tex.Width {
		a.x = 0
		a.y += a.shelf
		a.shelf = 0
	}
	if a.y+h > a.tex.Height {
		return 0, 0, fmt.Errorf("%w: no room for %dx%d", ErrAtlasFull, w, h)
	}
	x, y := a.x, a.y
	a.x += w
	a.shelf = max(a.shelf, h)
	return x, y, nil
}

// bounds returns the pixel extent of the run's ink relative to its pen
// origin, widened to the font's line extents vertically.
func (r *Run) bounds() (lo, hi [2]float32, err error) {
	var buf sfnt.Buffer
	ppem := toFixed(r.Size)
	lo = [2]float32{0, -r.Ascent}
	hi = [2]float32{r.Advance, r.Descent}
	for _, g := range r.Glyphs {
		b, _, err := r.Face.outlines.GlyphBounds(&buf, sfnt.GlyphIndex(g.ID), ppem, xfont.HintingNone)
		if err != nil {
			return lo, hi, fmt.Errorf("glyph %d: %w", g.ID, err)
		}
		lo[0] = min(lo[0], g.X+fromFixed(b.Min.X))
		lo[1] = min(lo[1], g.Y+fromFixed(b.Min.Y))
		hi[0] = max(hi[0], g.X+fromFixed(b.Max.X))
		hi[1] = max(hi[1], g.Y+fromFixed(b.Max.Y))
	}
	return lo, hi, nil
}

// rasterize draws the run's outlines into dst, whose origin sits at
// (left, top) in run pixels. dst is Oversample times wider than the run.
func (r *Run) rasterize(dst *image.Alpha, left, top float32) error {
	var buf sfnt.Buffer
	ppem := toFixed(r.Size)
	bounds := dst.Bounds()
	ras := vector.NewRasterizer(bounds.Dx(), bounds.Dy())

	for _, g := range r.Glyphs {
		segs, err := r.Face.outlines.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
		if err != nil {
			return fmt.Errorf("glyph %d: %w", g.ID, err)
		}
		ox, oy := g.X-left, g.Y-top
		pt := func(i int, s sfnt.Segment) (float32, float32) {
			return (ox + fromFixed(s.Args[i].X)) * Oversample, oy + fromFixed(s.Args[i].Y)
		}
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					ras.ClosePath()
				}
				ras.MoveTo(pt(0, s))
				open = true
			case sfnt.SegmentOpLineTo:
				ras.LineTo(pt(0, s))
			case sfnt.SegmentOpQuadTo:
				x0, y0 := pt(0, s)
				x1, y1 := pt(1, s)
				ras.QuadTo(x0, y0, x1, y1)
			case sfnt.SegmentOpCubeTo:
				x0, y0 := pt(0, s)
				x1, y1 := pt(1, s)
				x2, y2 := pt(2, s)
				ras.CubeTo(x0, y0, x1, y1, x2, y2)
			}
		}
		if open {
			ras.ClosePath()
		}
	}
	ras.Draw(dst, bounds, image.Opaque, image.Point{})
	return nil
}
