package outline

// Path is a closed loop of lattice points. A valid path has more than two
// points and repeats its first point at the end.
type Path []Point

// Closed reports whether the path ends where it starts.
func (p Path) Closed() bool {
	return len(p) > 2 && p[0] == p[len(p)-1]
}

// Vertices returns the distinct corners of the loop, without the closing
// repeat of the first point.
func (p Path) Vertices() []Point {
	if p.Closed() {
		return p[:len(p)-1]
	}
	return p
}

// Simple reports whether no vertex is visited twice.
func (p Path) Simple() bool {
	seen := make(map[Point]struct{}, len(p))
	for _, v := range p.Vertices() {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// SignedArea returns the shoelace area of the loop. With y pointing down,
// a loop that turns clockwise on screen has positive area.
func (p Path) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum int
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return float64(sum) * 0.5
}

// Contains reports whether pt lies inside the loop by the even-odd rule.
// A horizontal ray is cast towards +x and every edge straddling pt.Y whose
// crossing lies right of pt flips the result.
func (p Path) Contains(pt Point) bool {
	inside := false
	n := len(p)
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			continue
		}
		dy := b.Y - a.Y
		if dy == 0 {
			continue
		}
		x := (b.X-a.X)*(pt.Y-a.Y)/dy + a.X
		if pt.X < x {
			inside = !inside
		}
	}
	return inside
}

// Reverse returns a new path with the point order reversed.
func (p Path) Reverse() Path {
	r := make(Path, len(p))
	for i, pt := range p {
		r[len(p)-1-i] = pt
	}
	return r
}

// rotate returns the closed loop restarted at vertex k.
func (p Path) rotate(k int) Path {
	vs := p.Vertices()
	if k <= 0 || k >= len(vs) {
		return p
	}
	r := make(Path, 0, len(vs)+1)
	r = append(r, vs[k:]...)
	r = append(r, vs[:k]...)
	return append(r, vs[k])
}

// Bounds returns the smallest lattice rectangle holding every point.
func (p Path) Bounds() (lo, hi Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	lo, hi = p[0], p[0]
	for _, pt := range p[1:] {
		lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
		hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
	}
	return lo, hi
}
