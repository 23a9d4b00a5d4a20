package outline

import "fmt"

// Outline is the traced vector form of one glyph cell.
type Outline struct {
	// Paths holds the resolved loops of every region, region by region.
	Paths []Path

	// Regions is the number of 4-connected foreground regions found.
	Regions int

	// Stats sums the stitching events over all regions.
	Stats Stats
}

// Empty reports whether the outline has no paths.
func (o Outline) Empty() bool { return len(o.Paths) == 0 }

// PointCount returns the number of contour points a font writer emits for
// the outline, closing repeats excluded.
func (o Outline) PointCount() int {
	n := 0
	for _, p := range o.Paths {
		n += len(p.Vertices())
	}
	return n
}

// ContourCount returns the number of closed contours.
func (o Outline) ContourCount() int { return len(o.Paths) }

// Trace runs the whole pipeline on g with the default Tracer. The default
// Tracer never fails.
func Trace(g *Grid) Outline {
	o, _ := Tracer{}.Trace(g)
	return o
}

// Trace groups g into regions, stitches each region's boundary into loops
// and orients all loops of the cell together. An empty grid yields an empty
// Outline.
func (t Tracer) Trace(g *Grid) (Outline, error) {
	var out Outline
	regions := Group(g)
	out.Regions = len(regions)

	var paths []Path
	for _, r := range regions {
		p, stats, err := t.Stitch(Boundary(g, r))
		out.Stats.Add(stats)
		if err != nil {
			return Outline{}, fmt.Errorf("outline: region %d: %w", r.ID, err)
		}
		paths = append(paths, p...)
	}
	if len(paths) == 0 {
		return out, nil
	}
	out.Paths = ResolveWinding(anchor(paths))
	return out, nil
}
