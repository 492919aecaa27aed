// Package path flattens vector outlines into closed polygons.
package path

import "math"

// Point is a point in pixel space.
type Point struct {
	X, Y float64
}

func (p Point) lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func (p Point) sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) length() float64 { return math.Hypot(p.X, p.Y) }

// Verb is a path command.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Element is one command. Pts holds the control points followed by the end
// point: one point for MoveTo and LineTo, two for QuadTo, three for CubeTo.
type Element struct {
	Verb Verb
	Pts  [3]Point
}

// Tolerance is the default maximum distance between a curve and its
// flattened polyline, in pixels.
const Tolerance = 0.1

// maxDepth bounds curve subdivision.
const maxDepth = 16

// Contours flattens elements into closed polygons. Each contour is implicitly
// closed back to its first point; contours never connect to each other.
// Consecutive duplicate points are dropped and contours with fewer than
// three points are discarded.
func Contours(elements []Element, tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	var (
		out     [][]Point
		current []Point
		pen     Point
	)
	flush := func() {
		if len(current) > 1 && current[len(current)-1] == current[0] {
			current = current[:len(current)-1]
		}
		if len(current) >= 3 {
			out = append(out, current)
		}
		current = nil
	}
	add := func(p Point) {
		if n := len(current); n > 0 && current[n-1] == p {
			return
		}
		current = append(current, p)
	}

	for _, e := range elements {
		switch e.Verb {
		case MoveTo:
			flush()
			pen = e.Pts[0]
			add(pen)
		case LineTo:
			if len(current) == 0 {
				add(pen)
			}
			pen = e.Pts[0]
			add(pen)
		case QuadTo:
			if len(current) == 0 {
				add(pen)
			}
			quad(pen, e.Pts[0], e.Pts[1], tolerance, 0, add)
			pen = e.Pts[1]
		case CubeTo:
			if len(current) == 0 {
				add(pen)
			}
			cubic(pen, e.Pts[0], e.Pts[1], e.Pts[2], tolerance, 0, add)
			pen = e.Pts[2]
		case Close:
			if len(current) > 0 {
				pen = current[0]
			}
			flush()
		}
	}
	flush()
	return out
}

// quad subdivides a quadratic curve until its control point lies within tol
// of the chord, emitting the end points of the pieces.
func quad(p0, p1, p2 Point, tol float64, depth int, emit func(Point)) {
	if depth >= maxDepth || distanceToSegment(p1, p0, p2) < tol {
		emit(p2)
		return
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	m := q0.lerp(q1, 0.5)
	quad(p0, q0, m, tol, depth+1, emit)
	quad(m, q1, p2, tol, depth+1, emit)
}

// cubic is quad for cubic curves, split with de Casteljau.
func cubic(p0, p1, p2, p3 Point, tol float64, depth int, emit func(Point)) {
	d := max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxDepth || d < tol {
		emit(p3)
		return
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	m := r0.lerp(r1, 0.5)
	cubic(p0, q0, r0, m, tol, depth+1, emit)
	cubic(m, r1, q2, p3, tol, depth+1, emit)
}

func distanceToSegment(p, a, b Point) float64 {
	ab := b.sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < 1e-20 {
		return p.sub(a).length()
	}
	ap := p.sub(a)
	t := min(max((ap.X*ab.X+ap.Y*ab.Y)/l2, 0), 1)
	return p.sub(a.lerp(b, t)).length()
}

// Bounds returns the bounding box of the contours.
func Bounds(contours [][]Point) (lo, hi Point, ok bool) {
	lo = Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, c := range contours {
		for _, p := range c {
			lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
			hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
			ok = true
		}
	}
	return lo, hi, ok
}
