package filter

import (
	"github.com/gogpu/tilecomp/texture"
)

// DefringeKernel is an LCD filter for atlases rasterized at three times the
// horizontal resolution. Weights apply to taps at distance 3, 2, 1 and 0 from
// the channel center and sum to one over the seven taps.
var DefringeKernel = [4]float32{0.033165660, 0.102074051, 0.221434336, 0.286651906}

// Text turns glyph atlas coverage into a color over a known background.
//
// With defringing enabled (Kernel[3] != 0) nine horizontal taps are read
// around the sample point and each of the red, green and blue channels is
// convolved with a symmetric 7-tap kernel centered one tap left, on, and one
// tap right of the point. That gives subpixel positioned coverage per
// channel. The coverage is then optionally gamma corrected against Bg, and
// the result is Bg mixed toward Fg by the coverage.
type Text struct {
	Kernel       [4]float32
	Fg, Bg       texture.Color
	GammaCorrect bool
	// Step is the texel distance between taps; zero means one texel.
	Step float32
}

// Apply returns the opaque straight text color at uv.
func (t *Text) Apply(env *Env, uv [2]float32) texture.Color {
	alpha := t.Coverage(env, uv)
	if t.GammaCorrect && env != nil && env.Gamma != nil {
		alpha[0] = env.Gamma.Correct(t.Bg.R, alpha[0])
		alpha[1] = env.Gamma.Correct(t.Bg.G, alpha[1])
		alpha[2] = env.Gamma.Correct(t.Bg.B, alpha[2])
	}
	return texture.Color{
		R: t.Bg.R + (t.Fg.R-t.Bg.R)*alpha[0],
		G: t.Bg.G + (t.Fg.G-t.Bg.G)*alpha[1],
		B: t.Bg.B + (t.Fg.B-t.Bg.B)*alpha[2],
		A: 1,
	}
}

// Coverage returns the per-channel coverage at uv before gamma correction.
func (t *Text) Coverage(env *Env, uv [2]float32) [3]float32 {
	k := t.Kernel
	if k[3] == 0 {
		a := env.sampleAlpha(uv[0], uv[1])
		return [3]float32{a, a, a}
	}

	step := t.Step
	if step == 0 {
		step = 1
	}
	tap := func(i int) float32 {
		return env.sampleAlpha(uv[0]+float32(i)*step, uv[1])
	}

	var left, right [4]float32
	if k[0] > 0 {
		left[0] = tap(-4)
		right[3] = tap(4)
	}
	left[1], left[2], left[3] = tap(-3), tap(-2), tap(-1)
	center := tap(0)
	right[0], right[1], right[2] = tap(1), tap(2), tap(3)

	return [3]float32{
		convolve7(left, [3]float32{center, right[0], right[1]}, k),
		convolve7([4]float32{left[1], left[2], left[3], center}, [3]float32{right[0], right[1], right[2]}, k),
		convolve7([4]float32{left[2], left[3], center, right[0]}, [3]float32{right[1], right[2], right[3]}, k),
	}
}

// convolve7 applies the symmetric kernel to seven taps: four rising to the
// center and three falling after it.
func convolve7(a0 [4]float32, a1 [3]float32, k [4]float32) float32 {
	return a0[0]*k[0] + a0[1]*k[1] + a0[2]*k[2] + a0[3]*k[3] +
		a1[0]*k[2] + a1[1]*k[1] + a1[2]*k[0]
}
