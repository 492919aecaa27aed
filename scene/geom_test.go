package scene

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	gpath "seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/tilecomp"
)

func unitSquare() gpath.Path {
	cmds := []gpath.Command{gpath.CmdMoveTo, gpath.CmdLineTo, gpath.CmdLineTo, gpath.CmdLineTo, gpath.CmdClose}
	pts := [][]vec.Vec2{{{X: 0, Y: 0}}, {{X: 1, Y: 0}}, {{X: 1, Y: 1}}, {{X: 0, Y: 1}}, nil}
	return func(yield func(gpath.Command, []vec.Vec2) bool) {
		for i, cmd := range cmds {
			if !yield(cmd, pts[i]) {
				return
			}
		}
	}
}

func TestFromGeomTransform(t *testing.T) {
	// Scale to 24x8 and move to (4, 4), matching TestFillRectAcrossTiles.
	p := FromGeom(unitSquare(), matrix.Matrix{24, 0, 0, 8, 4, 4})
	b := NewBuilder(48, 16)
	b.Fill(p, tilecomp.NonZero, Solid(red))
	dst := renderScene(t, b, 48, 16)

	if got := alphaSum(dst); math.Abs(got-24*8) > 1e-3 {
		t.Errorf("alpha sum = %v, want %v", got, 24*8)
	}
	if got := dst.At(27, 11).A; got != 1 {
		t.Errorf("alpha at (27,11) = %v, want 1", got)
	}
	if got := dst.At(28, 8).A; got != 0 {
		t.Errorf("alpha at (28,8) = %v, want 0", got)
	}
}

func TestFromGeomIdentity(t *testing.T) {
	p := FromGeom(unitSquare(), matrix.Matrix{})
	if len(p.elems) != 5 {
		t.Fatalf("elements = %d, want 5", len(p.elems))
	}
	if got := p.elems[2].Pts[0]; got.X != 1 || got.Y != 1 {
		t.Errorf("third point = %+v, want (1,1)", got)
	}
	if !FromGeom(nil, matrix.Identity).IsEmpty() {
		t.Error("nil path produced a non-empty path")
	}
}
