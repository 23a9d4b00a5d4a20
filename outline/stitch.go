package outline

import "fmt"

// Stats counts the irregular events seen while stitching.
type Stats struct {
	// Splits is the number of sub-loops cut out of a walk that touched
	// itself at a lattice point.
	Splits int

	// Forced is the number of walks that got stuck and were closed by
	// appending their start point.
	Forced int

	// Discarded is the number of walks too short to form a loop.
	Discarded int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Splits += o.Splits
	s.Forced += o.Forced
	s.Discarded += o.Discarded
}

// Tracer turns glyph masks into resolved outlines.
// The zero value force-closes walks that fail to close.
type Tracer struct {
	// Strict makes a walk that cannot be closed an ErrMalformedBoundary
	// error instead of a force-closed path.
	Strict bool
}

// Stitch reassembles unit edges into closed paths with the default Tracer.
func Stitch(edges []Edge) ([]Path, Stats, error) {
	return Tracer{}.Stitch(edges)
}

// Stitch reassembles unit edges into closed paths.
//
// Edges are seeded in the order given. From a seed (start, end) the walk
// repeatedly follows the first unused edge at the current point until it
// comes back to start. When the walk reaches a point it already visited, the
// loop between both visits is cut out as its own path and the walk carries on
// from the shortened list, so no emitted path touches itself.
//
// A walk that gets stuck away from its start is force-closed when it has
// more than two points, or rejected with ErrMalformedBoundary when t.Strict
// is set. Shorter walks are dropped.
func (t Tracer) Stitch(edges []Edge) ([]Path, Stats, error) {
	var stats Stats

	adjacent := make(map[Point][]Point, len(edges))
	for _, e := range edges {
		adjacent[e.A] = append(adjacent[e.A], e.B)
		adjacent[e.B] = append(adjacent[e.B], e.A)
	}
	used := make(map[Edge]bool, len(edges))

	next := func(from Point) (Point, bool) {
		for _, to := range adjacent[from] {
			e := NewEdge(from, to)
			if !used[e] {
				used[e] = true
				return to, true
			}
		}
		return Point{}, false
	}

	var paths []Path
	for _, seed := range edges {
		seed = NewEdge(seed.A, seed.B)
		if used[seed] {
			continue
		}
		used[seed] = true

		start, cur := seed.A, seed.B
		walk := Path{start}
		visited := map[Point]int{start: 0}
		closed := false
		for {
			if cur == start {
				closed = true
				break
			}
			if i, ok := visited[cur]; ok {
				loop := make(Path, 0, len(walk)-i+1)
				loop = append(loop, walk[i:]...)
				loop = append(loop, cur)
				paths = append(paths, loop.Reverse())
				stats.Splits++
				for _, pt := range walk[i+1:] {
					delete(visited, pt)
				}
				walk = walk[:i+1]
			} else {
				visited[cur] = len(walk)
				walk = append(walk, cur)
			}

			to, ok := next(cur)
			if !ok {
				break
			}
			cur = to
		}

		switch {
		case closed:
			paths = append(paths, append(walk, start))
		case len(walk) > 2:
			if t.Strict {
				return nil, stats, fmt.Errorf("%w: walk from %v stuck at %v", ErrMalformedBoundary, start, cur)
			}
			stats.Forced++
			paths = append(paths, append(walk, start))
		default:
			stats.Discarded++
		}
	}
	return paths, stats, nil
}
