package scene

import (
	"github.com/gogpu/tilecomp/internal/path"
)

// kappa approximates a quarter circle with a cubic Bezier curve:
// 4 * (sqrt(2) - 1) / 3.
const kappa = 0.5522847498

// Path is a vector outline in surface pixel coordinates.
// Methods return the path for chaining.
type Path struct {
	elems []path.Element
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

func pt(x, y float32) path.Point {
	return path.Point{X: float64(x), Y: float64(y)}
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float32) *Path {
	p.elems = append(p.elems, path.Element{Verb: path.MoveTo, Pts: [3]path.Point{pt(x, y)}})
	return p
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.elems = append(p.elems, path.Element{Verb: path.LineTo, Pts: [3]path.Point{pt(x, y)}})
	return p
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.elems = append(p.elems, path.Element{Verb: path.QuadTo, Pts: [3]path.Point{pt(cx, cy), pt(x, y)}})
	return p
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.elems = append(p.elems, path.Element{
		Verb: path.CubeTo,
		Pts:  [3]path.Point{pt(c1x, c1y), pt(c2x, c2y), pt(x, y)},
	})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.elems = append(p.elems, path.Element{Verb: path.Close})
	return p
}

// Rectangle adds a clockwise rectangle.
func (p *Path) Rectangle(x, y, w, h float32) *Path {
	return p.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// RoundedRectangle adds a rectangle with circular corners of radius r,
// clamped to half the smaller side.
func (p *Path) RoundedRectangle(x, y, w, h, r float32) *Path {
	r = min(r, min(w, h)/2)
	if r <= 0 {
		return p.Rectangle(x, y, w, h)
	}
	kr := kappa * r
	return p.MoveTo(x+r, y).
		LineTo(x+w-r, y).
		CubicTo(x+w-r+kr, y, x+w, y+r-kr, x+w, y+r).
		LineTo(x+w, y+h-r).
		CubicTo(x+w, y+h-r+kr, x+w-r+kr, y+h, x+w-r, y+h).
		LineTo(x+r, y+h).
		CubicTo(x+r-kr, y+h, x, y+h-r+kr, x, y+h-r).
		LineTo(x, y+r).
		CubicTo(x, y+r-kr, x+r-kr, y, x+r, y).
		Close()
}

// Circle adds a circle.
func (p *Path) Circle(cx, cy, r float32) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse as four cubic arcs.
func (p *Path) Ellipse(cx, cy, rx, ry float32) *Path {
	kx, ky := kappa*rx, kappa*ry
	return p.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry).
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy).
		Close()
}

// Polygon adds a closed polygon through xy pairs. A trailing odd value is
// ignored.
func (p *Path) Polygon(xy ...float32) *Path {
	if len(xy) < 2 {
		return p
	}
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	return p.Close()
}

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elems) == 0
}

func (p *Path) contours() [][]path.Point {
	if p.IsEmpty() {
		return nil
	}
	return path.Contours(p.elems, path.Tolerance)
}
