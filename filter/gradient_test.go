package filter

import (
	"testing"

	"github.com/gogpu/tilecomp/texture"
)

var (
	red  = texture.Color{R: 1, A: 1}
	blue = texture.Color{B: 1, A: 1}
)

func TestRampEndpoints(t *testing.T) {
	r := NewRamp(Stop{Offset: 1, Color: blue}, Stop{Offset: 0, Color: red})

	if got := r.At(0); got != red {
		t.Errorf("At(0) = %+v, want red", got)
	}
	if got := r.At(1); got != blue {
		t.Errorf("At(1) = %+v, want blue", got)
	}
	mid := r.At(0.5)
	if !floatEqual(mid.R, 0.5, 0.01) || !floatEqual(mid.B, 0.5, 0.01) {
		t.Errorf("At(0.5) = %+v, want halfway", mid)
	}
	if got := r.At(-2); got != red {
		t.Errorf("At(-2) = %+v, want clamped red", got)
	}
}

func TestEmptyRamp(t *testing.T) {
	var r Ramp
	if got := r.At(0.3); got != texture.Transparent {
		t.Errorf("zero Ramp.At = %+v", got)
	}
	if got := NewRamp().At(0.3); got != texture.Transparent {
		t.Errorf("NewRamp().At = %+v", got)
	}
}

func TestRadialConcentric(t *testing.T) {
	g := RadialGradient{
		From: [2]float32{10, 10},
		To:   [2]float32{10, 10},
		R0:   0,
		R1:   8,
		Ramp: NewRamp(Stop{0, red}, Stop{1, blue}),
	}

	tests := []struct {
		name  string
		p     [2]float32
		wantT float32
	}{
		{"quarter", [2]float32{12, 10}, 0.25},
		{"half diagonal", [2]float32{10 + 2.828427, 10 + 2.828427}, 0.5},
		{"edge", [2]float32{10, 18}, 1},
		{"outside", [2]float32{30, 10}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Solve(tt.p)
			if !ok || !floatEqual(got, tt.wantT, 1e-4) {
				t.Errorf("Solve(%v) = %v, %v, want %v", tt.p, got, ok, tt.wantT)
			}
		})
	}

	// Pad extends the end color outward.
	if got := g.Eval([2]float32{30, 10}); got != blue {
		t.Errorf("Eval outside = %+v, want blue", got)
	}
}

func TestRadialTwoPoint(t *testing.T) {
	// Focal circle at the origin growing toward (10, 0).
	g := RadialGradient{
		From: [2]float32{0, 0},
		To:   [2]float32{10, 0},
		R0:   1,
		R1:   5,
		Ramp: NewRamp(Stop{0, red}, Stop{1, blue}),
	}
	// (15, 0) lies on the end circle (t=1) and on the circle at t=8/3; the
	// root inside [0, 1] wins.
	got, ok := g.Solve([2]float32{15, 0})
	if !ok || !floatEqual(got, 1, 1e-4) {
		t.Errorf("Solve(15, 0) = %v, %v, want 1", got, ok)
	}
	// (0, 1) lies on the start circle.
	got, ok = g.Solve([2]float32{0, 1})
	if !ok || !floatEqual(got, 8.0/84, 1e-4) {
		t.Errorf("Solve(0, 1) = %v, %v, want 8/84", got, ok)
	}
}

func TestRadialPrefersRootInSpan(t *testing.T) {
	black := texture.Color{A: 1}
	white := texture.Color{R: 1, G: 1, B: 1, A: 1}
	g := RadialGradient{
		From: [2]float32{0, 0},
		To:   [2]float32{2, 0},
		R0:   1,
		R1:   2,
		Ramp: NewRamp(Stop{0, black}, Stop{1, white}),
	}
	// Roots are 4 and 2/3; only 2/3 lies inside the span.
	got, ok := g.Solve([2]float32{3, 0})
	if !ok || !floatEqual(got, 2.0/3, 1e-4) {
		t.Fatalf("Solve(3, 0) = %v, %v, want 2/3", got, ok)
	}
	c := g.Eval([2]float32{3, 0})
	if c.R <= 0.1 || c.R >= 0.9 || c.A != 1 {
		t.Errorf("Eval(3, 0) = %+v, want an opaque gray", c)
	}

	// Both roots above the span: the larger one is kept for Extend.
	got, ok = g.Solve([2]float32{6, 0})
	if !ok || got <= 1 {
		t.Errorf("Solve(6, 0) = %v, %v, want a root above 1", got, ok)
	}
	if c := g.Eval([2]float32{6, 0}); c != white {
		t.Errorf("Eval(6, 0) = %+v, want the padded end color", c)
	}
}

func TestRadialDegenerate(t *testing.T) {
	g := RadialGradient{
		From: [2]float32{5, 5},
		To:   [2]float32{5, 5},
		R0:   0,
		R1:   10,
		Ramp: NewRamp(Stop{0, red}, Stop{1, blue}),
	}
	// At the common center the discriminant vanishes.
	if got := g.Eval([2]float32{5, 5}); got != texture.Transparent {
		t.Errorf("Eval at center = %+v, want transparent", got)
	}

	// Identical circles have no solution anywhere.
	same := RadialGradient{From: [2]float32{0, 0}, To: [2]float32{0, 0}, R0: 3, R1: 3, Ramp: g.Ramp}
	if got := same.Eval([2]float32{1, 1}); got != texture.Transparent {
		t.Errorf("identical circles = %+v, want transparent", got)
	}
}

func TestExtendModes(t *testing.T) {
	tests := []struct {
		name string
		t    float32
		mode Extend
		want float32
	}{
		{"pad high", 1.7, ExtendPad, 1},
		{"pad low", -0.2, ExtendPad, 0},
		{"repeat", 1.25, ExtendRepeat, 0.25},
		{"repeat negative", -0.25, ExtendRepeat, 0.75},
		{"reflect odd", 1.25, ExtendReflect, 0.75},
		{"reflect even", 2.25, ExtendReflect, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extend(tt.t, tt.mode); !floatEqual(got, tt.want, 1e-6) {
				t.Errorf("extend(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
