package spritefont

import "github.com/gogpu/spritefont/outline"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Path is a glyph outline made only of straight segments.
type Path struct {
	elements []PathElement
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// PathFromOutline converts resolved lattice loops into a path, one
// MoveTo/LineTo.../Close contour per loop. The closing repeat of each loop
// becomes the Close element. Loops with fewer than three vertices are
// skipped.
func PathFromOutline(paths []outline.Path) *Path {
	p := NewPath()
	for _, loop := range paths {
		vs := loop.Vertices()
		if len(vs) < 3 {
			continue
		}
		p.MoveTo(float64(vs[0].X), float64(vs[0].Y))
		for _, v := range vs[1:] {
			p.LineTo(float64(v.X), float64(v.Y))
		}
		p.Close()
	}
	return p
}

// MoveTo starts a new contour.
func (p *Path) MoveTo(x, y float64) {
	p.elements = append(p.elements, MoveTo{Point: Pt(x, y)})
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	p.elements = append(p.elements, LineTo{Point: Pt(x, y)})
}

// Close closes the current contour.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Transform returns a new path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	elements := make([]PathElement, len(p.elements))
	copy(elements, p.elements)
	return &Path{elements: elements}
}

// Contours splits the path into point lists, one per contour. A point equal
// to the contour's first point at the end is dropped, since contours are
// implicitly closed.
func (p *Path) Contours() [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if n := len(cur); n > 1 && cur[n-1] == cur[0] {
			cur = cur[:n-1]
		}
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = append(cur, e.Point)
		case LineTo:
			cur = append(cur, e.Point)
		case Close:
			flush()
		}
	}
	flush()
	return out
}
