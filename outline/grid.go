package outline

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Grid is an immutable width×height field of foreground weights for one
// glyph cell, stored row-major. A cell is foreground iff its weight is
// strictly positive. Reads outside the grid return 0 (background).
type Grid struct {
	width   int
	height  int
	weights []float64
}

// NewGrid creates a grid from row-major weights. The slice is copied.
func NewGrid(width, height int, weights []float64) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridSize, width, height)
	}
	if len(weights) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d weights, got %d",
			ErrGridSize, width, height, width*height, len(weights))
	}
	g := &Grid{
		width:   width,
		height:  height,
		weights: make([]float64, len(weights)),
	}
	copy(g.weights, weights)
	return g, nil
}

// SampleGrid builds a grid by calling sample once per cell in row-major
// order. Non-positive dimensions yield an empty grid.
func SampleGrid(width, height int, sample func(x, y int) float64) *Grid {
	if width <= 0 || height <= 0 {
		return &Grid{}
	}
	g := &Grid{
		width:   width,
		height:  height,
		weights: make([]float64, width*height),
	}
	for y := range height {
		for x := range width {
			g.weights[y*width+x] = sample(x, y)
		}
	}
	return g
}

// ParseGrid reads a textual mask, one row per line. '#' marks a foreground
// cell with weight 1; any other character is background. Blank lines around
// the mask and surrounding spaces on each row are ignored. All rows must have
// the same length.
func ParseGrid(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		rows = append(rows, strings.TrimSpace(line))
	}
	if len(rows) == 1 && rows[0] == "" {
		return &Grid{}, nil
	}
	width := len(rows[0])
	weights := make([]float64, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGridSize, i, len(row), width)
		}
		for _, c := range []byte(row) {
			if c == '#' {
				weights = append(weights, 1)
			} else {
				weights = append(weights, 0)
			}
		}
	}
	return &Grid{width: width, height: len(rows), weights: weights}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.weights) }

// At returns the weight at (x, y), or 0 outside the grid.
func (g *Grid) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0
	}
	return g.weights[y*g.width+x]
}

// Foreground reports whether (x, y) is inside the grid and has positive weight.
func (g *Grid) Foreground(x, y int) bool {
	return g.At(x, y) > 0
}

// IsEmpty reports whether the grid has no foreground cell.
func (g *Grid) IsEmpty() bool {
	for _, w := range g.weights {
		if w > 0 {
			return false
		}
	}
	return true
}

// ColumnRange returns the leftmost and rightmost columns holding a
// foreground cell. ok is false for an empty grid.
func (g *Grid) ColumnRange() (minX, maxX int, ok bool) {
	minX, maxX = g.width, -1
	for y := range g.height {
		for x := range g.width {
			if !g.Foreground(x, y) {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
		}
	}
	return minX, maxX, maxX >= 0
}

// Key returns a compact string identifying the grid's size and foreground
// cells. Grids with equal keys trace to the same outline, whatever their
// weights.
func (g *Grid) Key() string {
	b := make([]byte, 8, 8+(len(g.weights)+7)/8)
	binary.LittleEndian.PutUint32(b, uint32(g.width))
	binary.LittleEndian.PutUint32(b[4:], uint32(g.height))
	bits := make([]byte, (len(g.weights)+7)/8)
	for i, w := range g.weights {
		if w > 0 {
			bits[i/8] |= 1 << (i % 8)
		}
	}
	return string(append(b, bits...))
}

// String renders the grid in the format accepted by ParseGrid.
func (g *Grid) String() string {
	var b strings.Builder
	for y := range g.height {
		for x := range g.width {
			if g.Foreground(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
