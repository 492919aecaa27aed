package scene

import (
	"image/color"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/filter"
)

// Paint describes how a fill is colored.
type Paint struct {
	// Color is the base color. With a filter and CombineSrcIn its alpha
	// scales the filtered color; with CombineDestIn its channels are kept
	// and the filtered alpha scales it.
	Color color.NRGBA

	Filter  filter.Filter
	Combine tilecomp.Combine
	Blend   tilecomp.BlendMode

	// Transform and Offset map pixel centers to material space. A zero
	// Transform means identity.
	Transform     [4]float32
	Offset        [2]float32
	TextureOffset [2]float32
}

// Solid returns a flat color paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Gradient returns an opaque-based paint evaluating g in pixel space.
func Gradient(g filter.RadialGradient) Paint {
	return Paint{
		Color:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Filter:  filter.Radial(g),
		Combine: tilecomp.CombineSrcIn,
	}
}

// Textured returns a paint sampling the batch texture, offset so that
// texel (0, 0) lands on pixel (x, y).
func Textured(x, y float32) Paint {
	return Paint{
		Color:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Filter:        filter.None(),
		Combine:       tilecomp.CombineSrcIn,
		TextureOffset: [2]float32{-x, -y},
	}
}

// Blurred returns a paint sampling the batch texture through b.
func Blurred(b filter.Blur, x, y float32) Paint {
	p := Textured(x, y)
	p.Filter = filter.Blurred(b)
	return p
}

// WithBlend returns p with blend mode m.
func (p Paint) WithBlend(m tilecomp.BlendMode) Paint {
	p.Blend = m
	return p
}

func (p Paint) metadata() tilecomp.Metadata {
	t := p.Transform
	if t == ([4]float32{}) {
		t = tilecomp.Identity
	}
	return tilecomp.Metadata{
		Transform:     t,
		Offset:        p.Offset,
		BaseColor:     p.Color,
		TextureOffset: p.TextureOffset,
		Filter:        p.Filter,
	}
}

func (p Paint) control(rule tilecomp.FillRule) tilecomp.ControlWord {
	op := p.Combine
	if op == tilecomp.CombineNone {
		return tilecomp.NewControl(rule, filter.KindNone, op, p.Blend)
	}
	return tilecomp.NewControl(rule, p.Filter.Kind, op, p.Blend)
}
