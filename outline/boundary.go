package outline

// Boundary returns the unit edges separating region r from background or
// from the outside of g.
//
// Each cell contributes its top, bottom, left and right edge, in that order,
// when the neighbour across the edge is background or out of bounds. Edges
// are normalized and deduplicated; the result keeps first-emission order.
// Hole perimeters are emitted exactly like the outer perimeter.
func Boundary(g *Grid, r Region) []Edge {
	w := g.Width()
	if w == 0 {
		return nil
	}

	seen := make(map[Edge]struct{}, 4*len(r.Cells))
	edges := make([]Edge, 0, 4*len(r.Cells))
	emit := func(a, b Point) {
		e := NewEdge(a, b)
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}

	for _, i := range r.Cells {
		x, y := i%w, i/w
		if !g.Foreground(x, y-1) {
			emit(Pt(x, y), Pt(x+1, y))
		}
		if !g.Foreground(x, y+1) {
			emit(Pt(x, y+1), Pt(x+1, y+1))
		}
		if !g.Foreground(x-1, y) {
			emit(Pt(x, y), Pt(x, y+1))
		}
		if !g.Foreground(x+1, y) {
			emit(Pt(x+1, y), Pt(x+1, y+1))
		}
	}
	return edges
}
