package scene

import (
	"seehuhn.de/go/geom/matrix"
	gpath "seehuhn.de/go/geom/path"

	"github.com/gogpu/tilecomp/internal/path"
)

// FromGeom converts a geom path to surface space, mapping each point
// through m. A zero matrix is treated as the identity.
func FromGeom(g gpath.Path, m matrix.Matrix) *Path {
	if m.IsZero() {
		m = matrix.Identity
	}
	p := NewPath()
	if g == nil {
		return p
	}
	for cmd, pts := range g.Transform(m) {
		var e path.Element
		switch cmd {
		case gpath.CmdMoveTo:
			e.Verb = path.MoveTo
		case gpath.CmdLineTo:
			e.Verb = path.LineTo
		case gpath.CmdQuadTo:
			e.Verb = path.QuadTo
		case gpath.CmdCubeTo:
			e.Verb = path.CubeTo
		case gpath.CmdClose:
			e.Verb = path.Close
		default:
			continue
		}
		for i, v := range pts {
			e.Pts[i] = path.Point{X: v.X, Y: v.Y}
		}
		p.elems = append(p.elems, e)
	}
	return p
}
