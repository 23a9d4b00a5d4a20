package outline

// NestingDepth returns how many other non-empty paths contain the first
// vertex of paths[i].
func NestingDepth(paths []Path, i int) int {
	if len(paths[i]) == 0 {
		return 0
	}
	pt := paths[i][0]
	depth := 0
	for j, other := range paths {
		if j == i || len(other) == 0 {
			continue
		}
		if other.Contains(pt) {
			depth++
		}
	}
	return depth
}

// ResolveWinding orients every path by its nesting depth. Paths at even depth
// (outer contours) get negative signed area; paths at odd depth (holes) get
// positive signed area. Only point order changes. The input slice is left
// untouched and the call is idempotent.
func ResolveWinding(paths []Path) []Path {
	out := make([]Path, len(paths))
	for i, p := range paths {
		area := p.SignedArea()
		if NestingDepth(paths, i)%2 == 1 {
			if area <= 0 {
				p = p.Reverse()
			}
		} else if area >= 0 {
			p = p.Reverse()
		}
		out[i] = p
	}
	return out
}

// anchor restarts each path at a vertex that no other path shares, when it
// has one. NestingDepth samples only the first vertex, and a vertex sitting on
// another loop, such as a pinch point where a hole meets the outer boundary,
// would make the ray test ambiguous.
func anchor(paths []Path) []Path {
	shared := make(map[Point]int)
	for _, p := range paths {
		for _, v := range p.Vertices() {
			shared[v]++
		}
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = p
		if len(p) == 0 || shared[p[0]] == 1 {
			continue
		}
		for k, v := range p.Vertices() {
			if shared[v] == 1 {
				out[i] = p.rotate(k)
				break
			}
		}
	}
	return out
}
