package outline

// Region is a maximal 4-connected set of foreground cells.
type Region struct {
	// ID is the region's index in first-encounter order of a row-major scan.
	ID int

	// Cells holds row-major cell indices (y*width + x) in ascending order.
	Cells []int
}

// disjointSet is a union-find forest over cell indices.
// find is iterative so tall trees cannot exhaust the stack.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	s := &disjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
	}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

// find returns the root of i and compresses the path behind it.
func (s *disjointSet) find(i int) int {
	root := i
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[i] != root {
		next := s.parent[i]
		s.parent[i] = root
		i = next
	}
	return root
}

// union merges the sets holding i and j. It reports whether they were
// distinct.
func (s *disjointSet) union(i, j int) bool {
	ri, rj := s.find(i), s.find(j)
	if ri == rj {
		return false
	}
	switch {
	case s.rank[ri] < s.rank[rj]:
		s.parent[ri] = rj
	case s.rank[ri] > s.rank[rj]:
		s.parent[rj] = ri
	default:
		s.parent[rj] = ri
		s.rank[ri]++
	}
	return true
}

// Group partitions the foreground cells of g into 4-connected regions.
//
// Every foreground cell is joined with its right and bottom foreground
// neighbours; union-find symmetry makes that single sweep enough for full
// 4-connectivity. Diagonal neighbours are never joined. Region IDs follow the
// order in which each region's first cell appears in a row-major scan, so the
// result does not depend on map iteration order.
func Group(g *Grid) []Region {
	w, h := g.Width(), g.Height()
	if w == 0 || h == 0 {
		return nil
	}

	set := newDisjointSet(w * h)
	for y := range h {
		for x := range w {
			if !g.Foreground(x, y) {
				continue
			}
			i := y*w + x
			if g.Foreground(x+1, y) {
				set.union(i, i+1)
			}
			if g.Foreground(x, y+1) {
				set.union(i, i+w)
			}
		}
	}

	var regions []Region
	ids := make(map[int]int)
	for i := range w * h {
		if !g.Foreground(i%w, i/w) {
			continue
		}
		root := set.find(i)
		id, ok := ids[root]
		if !ok {
			id = len(regions)
			ids[root] = id
			regions = append(regions, Region{ID: id})
		}
		regions[id].Cells = append(regions[id].Cells, i)
	}
	return regions
}
