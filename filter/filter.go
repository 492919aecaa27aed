package filter

import (
	"github.com/gogpu/tilecomp/texture"
)

// Kind is the filter selector stored in bits [4:6] of a control word.
type Kind uint8

const (
	KindNone Kind = iota
	KindRadialGradient
	KindText
	KindBlur
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRadialGradient:
		return "radial-gradient"
	case KindText:
		return "text"
	case KindBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Filter is a tagged filter value. Only the payload selected by Kind is
// read.
type Filter struct {
	Kind   Kind
	Radial RadialGradient
	Text   Text
	Blur   Blur
}

// None returns the pass-through filter.
func None() Filter { return Filter{} }

// Radial wraps a radial gradient.
func Radial(g RadialGradient) Filter { return Filter{Kind: KindRadialGradient, Radial: g} }

// TextAA wraps a text filter.
func TextAA(t Text) Filter { return Filter{Kind: KindText, Text: t} }

// Blurred wraps a blur filter.
func Blurred(b Blur) Filter { return Filter{Kind: KindBlur, Blur: b} }

// Env carries the per-batch resources filters sample from. Nil members
// sample as transparent.
type Env struct {
	Texture texture.Sampler
	Atlas   texture.AlphaSampler
	Gamma   *GammaLUT
}

func (e *Env) sample(u, v float32) texture.Color {
	if e == nil || e.Texture == nil {
		return texture.Transparent
	}
	return e.Texture.Sample(u, v)
}

func (e *Env) sampleAlpha(u, v float32) float32 {
	if e == nil || e.Atlas == nil {
		return 0
	}
	return e.Atlas.SampleAlpha(u, v)
}

// Apply evaluates the filter. p is the material-space point used by
// gradients and uv the texture coordinate used by sampling filters.
func (f *Filter) Apply(env *Env, p, uv [2]float32) texture.Color {
	switch f.Kind {
	case KindRadialGradient:
		return f.Radial.Eval(p)
	case KindBlur:
		return f.Blur.Apply(env, uv).Unpremultiply()
	case KindText:
		return f.Text.Apply(env, uv)
	default:
		return env.sample(uv[0], uv[1]).Unpremultiply()
	}
}
