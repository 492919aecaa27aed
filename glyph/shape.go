package glyph

import (
	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Glyph is a positioned glyph. X is the pen position along the baseline and
// Y the offset from it, both in pixels with y down.
type Glyph struct {
	ID   uint16
	X, Y float32
}

// Run is a shaped line of text.
type Run struct {
	Face      *Face
	Size      float32
	Direction di.Direction
	Glyphs    []Glyph

	// Advance is the total pen advance. Ascent and Descent are the font's
	// extents above and below the baseline, both positive.
	Advance         float32
	Ascent, Descent float32
}

// Direction returns the base direction of text: right-to-left when its first
// bidi run is right-to-left.
func Direction(text string) di.Direction {
	if text == "" {
		return di.DirectionLTR
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return di.DirectionLTR
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return di.DirectionLTR
	}
	first := order.Run(0)
	if first.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// Shape shapes text at size pixels per em. Runs are cached per face; the
// returned run is shared and must not be modified.
func (f *Face) Shape(text string, size float32) (*Run, error) {
	runes := []rune(text)
	if len(runes) == 0 || size <= 0 {
		return nil, ErrEmptyRun
	}
	key := runKey{text: text, size: size}
	if run, ok := f.runs.Get(key); ok {
		return run, nil
	}

	dir := Direction(text)
	var hb shaping.HarfbuzzShaper
	out := hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtfont.NewFace(f.shaping),
		Size:      toFixed(size),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	})

	run := &Run{Face: f, Size: size, Direction: dir, Glyphs: make([]Glyph, 0, len(out.Glyphs))}
	var pen float32
	for _, g := range out.Glyphs {
		run.Glyphs = append(run.Glyphs, Glyph{
			ID: uint16(g.GlyphID),
			X:  pen + fromFixed(g.XOffset),
			Y:  -fromFixed(g.YOffset),
		})
		pen += fromFixed(g.Advance)
	}
	run.Advance = pen

	var buf sfnt.Buffer
	m, err := f.outlines.Metrics(&buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	run.Ascent = fromFixed(m.Ascent)
	run.Descent = fromFixed(m.Descent)
	f.runs.Set(key, run)
	return run, nil
}

// script returns the script of the first letter of runes.
func script(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
