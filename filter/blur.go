package filter

import (
	"math"

	"github.com/gogpu/tilecomp/texture"
)

// Blur is one pass of a separable Gaussian blur.
//
// Coefficients follow the incremental Gaussian scheme: Coeffs[0] is the
// weight of the center tap and each further tap multiplies it by Coeffs[1],
// which in turn is multiplied by Coeffs[2]. Two neighboring taps are fetched
// with a single bilinear sample placed at their weighted midpoint, and the
// accumulated color is divided by the running weight sum.
type Blur struct {
	// Direction is the texel step between taps, (1,0) for a horizontal pass
	// and (0,1) for a vertical one.
	Direction [2]float32
	// Support is the number of taps on each side of the center. Taps are
	// fetched in pairs, so an odd Support is rounded up to the next even
	// count.
	Support int
	Coeffs  [3]float32
}

// Horizontal and Vertical are the two pass directions.
var (
	Horizontal = [2]float32{1, 0}
	Vertical   = [2]float32{0, 1}
)

// NewGaussianBlur returns a blur pass for standard deviation sigma.
// A non-positive sigma yields a pass-through blur with zero support.
func NewGaussianBlur(sigma float32, direction [2]float32) Blur {
	if sigma <= 0 {
		return Blur{Direction: direction, Coeffs: [3]float32{1, 1, 1}}
	}
	s := float64(sigma)
	g0 := 1 / (math.Sqrt(2*math.Pi) * s)
	g1 := math.Exp(-0.5 / (s * s))
	return Blur{
		Direction: direction,
		Support:   int(math.Ceil(1.5*s)) * 2,
		Coeffs:    [3]float32{float32(g0), float32(g1), float32(g1 * g1)},
	}
}

// taps returns Support rounded up to an even count.
func (b *Blur) taps() int {
	return b.Support + b.Support&1
}

// Apply returns the premultiplied blurred color at uv.
func (b *Blur) Apply(env *Env, uv [2]float32) texture.Color {
	if b.Support <= 0 || b.Coeffs[0] <= 0 {
		return env.sample(uv[0], uv[1])
	}

	g := b.Coeffs
	sum := g[0]
	color := env.sample(uv[0], uv[1]).Scale(g[0])

	g[0] *= g[1]
	g[1] *= g[2]

	for i, n := 1, b.taps(); i <= n; i += 2 {
		partial := g[0]
		g[0] *= g[1]
		g[1] *= g[2]
		partial += g[0]

		offset := float32(i) + g[0]/partial
		du, dv := b.Direction[0]*offset, b.Direction[1]*offset

		pair := env.sample(uv[0]-du, uv[1]-dv).Add(env.sample(uv[0]+du, uv[1]+dv))
		color = color.Add(pair.Scale(partial))
		sum += 2 * partial

		g[0] *= g[1]
		g[1] *= g[2]
	}

	return color.Scale(1 / sum)
}

// Weights expands the blur into explicit per-tap weights for offsets -n..n,
// normalized to sum to one, where n is Support rounded up to an even count.
func (b *Blur) Weights() []float32 {
	if b.Support <= 0 {
		return []float32{1}
	}
	n := b.taps()
	w := make([]float32, 2*n+1)
	g := b.Coeffs
	var total float32
	for i := 0; i <= n; i++ {
		w[n+i] = g[0]
		w[n-i] = g[0]
		if i == 0 {
			total += g[0]
		} else {
			total += 2 * g[0]
		}
		g[0] *= g[1]
		g[1] *= g[2]
	}
	for i := range w {
		w[i] /= total
	}
	return w
}
