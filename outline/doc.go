// Package outline traces the alpha mask of a single glyph cell into closed,
// correctly wound polygonal contours.
//
// # Pipeline
//
// Tracing is a fixed sequence of pure stages. Each stage takes the previous
// stage's output and returns a new value:
//
//	grid    := outline.SampleGrid(w, h, alphaAt)  // foreground weights
//	regions := outline.Group(grid)                // 4-connected components
//	edges   := outline.Boundary(grid, regions[0]) // unique unit edges
//	paths, _, _ := outline.Stitch(edges)          // closed lattice loops
//	paths = outline.ResolveWinding(paths)         // outer < 0, holes > 0
//
// [Trace] runs the whole pipeline for a grid and is what most callers want.
//
// # Coordinate System
//
// Paths live on the lattice of pixel corners: a grid of width×height cells
// has lattice points (x, y) with 0 ≤ x ≤ width and 0 ≤ y ≤ height. Y grows
// downward, in grid row order. Under the shoelace formula with this
// orientation, outer contours have negative signed area and holes have
// positive signed area.
package outline
