package outline

import "fmt"

// Point is a lattice point on the corners of grid cells.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Less orders points lexicographically, X first.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Edge is an axis-aligned unit segment between two lattice points.
// Edges built with NewEdge are normalized so that A is not greater than B,
// which makes them usable as set keys.
type Edge struct {
	A, B Point
}

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b Point) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Horizontal reports whether the edge lies along a row boundary.
func (e Edge) Horizontal() bool {
	return e.A.Y == e.B.Y
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}
