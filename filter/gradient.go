package filter

import (
	"math"
	"sort"

	"github.com/gogpu/tilecomp/texture"
)

// degenerateEpsilon bounds the discriminant below which a radial gradient
// is considered degenerate.
const degenerateEpsilon = 1e-5

// RampSize is the number of baked entries in a Ramp.
const RampSize = 256

// Extend defines how a gradient parameter outside [0,1] is mapped.
type Extend uint8

const (
	// ExtendPad clamps to the end colors.
	ExtendPad Extend = iota
	// ExtendRepeat repeats the ramp.
	ExtendRepeat
	// ExtendReflect mirrors the ramp.
	ExtendReflect
)

// Stop is a straight color at a ramp offset in [0,1].
type Stop struct {
	Offset float32
	Color  texture.Color
}

// Ramp is a baked 1D gradient of straight colors.
type Ramp struct {
	entries []texture.Color
}

// NewRamp bakes the stops into RampSize entries. Stops are sorted by offset;
// positions before the first or after the last stop take the end colors.
// With no stops the ramp is transparent.
func NewRamp(stops ...Stop) Ramp {
	r := Ramp{entries: make([]texture.Color, RampSize)}
	if len(stops) == 0 {
		return r
	}

	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	for i := range r.entries {
		t := float32(i) / (RampSize - 1)
		r.entries[i] = interpolateStops(sorted, t)
	}
	return r
}

func interpolateStops(stops []Stop, t float32) texture.Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// At samples the ramp at t in [0,1] with linear interpolation.
func (r Ramp) At(t float32) texture.Color {
	if len(r.entries) == 0 {
		return texture.Transparent
	}
	t = min(max(t, 0), 1)
	f := t * (RampSize - 1)
	i := int(f)
	if i >= RampSize-1 {
		return r.entries[RampSize-1]
	}
	return r.entries[i].Lerp(r.entries[i+1], f-float32(i))
}

// RadialGradient is a two-point conical gradient: the color at a point is
// the ramp value at the largest t in [0, 1] for which the point lies on the
// circle interpolated between (From, R0) and (To, R1).
type RadialGradient struct {
	From, To [2]float32
	R0, R1   float32
	Ramp     Ramp
	Extend   Extend
}

// Eval returns the straight gradient color at material point p.
// A degenerate discriminant or a point covered by no circle of non-negative
// radius yields transparent black.
func (g *RadialGradient) Eval(p [2]float32) texture.Color {
	t, ok := g.Solve(p)
	if !ok {
		return texture.Transparent
	}
	return g.Ramp.At(extend(t, g.Extend))
}

// Solve returns the gradient parameter at p. The larger root in [0, 1] is
// preferred, then the smaller one; when neither lies in [0, 1] the larger
// root with a non-negative radius is returned for Extend to map.
func (g *RadialGradient) Solve(p [2]float32) (float32, bool) {
	dcx, dcy := g.To[0]-g.From[0], g.To[1]-g.From[1]
	dpx, dpy := p[0]-g.From[0], p[1]-g.From[1]
	dr := g.R1 - g.R0

	// |p - C(t)| = r(t) gives a*t^2 - 2*b*t + c = 0.
	a := dcx*dcx + dcy*dcy - dr*dr
	b := dpx*dcx + dpy*dcy + g.R0*dr
	c := dpx*dpx + dpy*dpy - g.R0*g.R0

	if abs(a) < degenerateEpsilon {
		// Circles of equal radius offset along the axis: one root.
		if abs(b) < degenerateEpsilon {
			return 0, false
		}
		t := c / (2 * b)
		return t, g.R0+t*dr >= 0
	}

	disc := b*b - a*c
	if abs(disc) < degenerateEpsilon || disc < 0 {
		return 0, false
	}

	sq := float32(math.Sqrt(float64(disc)))
	t0 := (b + sq) / a
	t1 := (b - sq) / a
	if t0 < t1 {
		t0, t1 = t1, t0
	}
	valid := func(t float32) bool { return g.R0+t*dr >= 0 }
	inRange := func(t float32) bool { return t >= 0 && t <= 1 && valid(t) }

	// Roots inside the gradient span win over extended ones.
	switch {
	case inRange(t0):
		return t0, true
	case inRange(t1):
		return t1, true
	case valid(t0):
		return t0, true
	case valid(t1):
		return t1, true
	}
	return 0, false
}

func extend(t float32, mode Extend) float32 {
	switch mode {
	case ExtendRepeat:
		return t - float32(math.Floor(float64(t)))
	case ExtendReflect:
		t = abs(t)
		period := float32(math.Floor(float64(t)))
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
		return t
	default:
		return min(max(t, 0), 1)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
