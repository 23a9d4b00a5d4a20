package spritefont

import (
	"fmt"
	"math"

	"github.com/gogpu/spritefont/internal/ttf"
	"github.com/gogpu/spritefont/outline"
	"github.com/gogpu/spritefont/sheet"
)

// Glyph is one traced, non-empty sheet cell.
type Glyph struct {
	Codepoint rune

	// Name is the PostScript glyph name: uniXXXX in the BMP, uXXXXX above.
	Name string

	Layer    string
	Row, Col int

	// Grid is the sampled cell mask and Outline its traced lattice form.
	Grid    *outline.Grid
	Outline outline.Outline

	// Path is Outline in font units.
	Path *Path

	// Advance and LSB are the horizontal metrics in font units.
	Advance int
	LSB     int
}

// GlyphName returns the PostScript name used for r.
func GlyphName(r rune) string {
	if r > 0xFFFF {
		return fmt.Sprintf("u%05X", r)
	}
	return fmt.Sprintf("uni%04X", r)
}

// newGlyph places a traced cell in font units. Untrimmed glyphs keep the
// whole cell width as advance. Trimmed glyphs are shifted so their leftmost
// column starts at x = 0 and advance over the used columns plus TrimPad.
func (o Options) newGlyph(c sheet.Cell, layer string, g *outline.Grid, out outline.Outline) Glyph {
	minX, maxX, _ := g.ColumnRange()
	s := o.Scale

	shift, advance, lsb := 0, o.GlyphWidth*s, minX*s
	if o.Trim {
		shift, advance, lsb = minX, (maxX-minX+1+o.TrimPad)*s, 0
	}
	m := LatticeToFont(o.GlyphHeight, o.Baseline, s, shift)

	return Glyph{
		Codepoint: c.Codepoint,
		Name:      GlyphName(c.Codepoint),
		Layer:     layer,
		Row:       c.Row,
		Col:       c.Col,
		Grid:      g,
		Outline:   out,
		Path:      PathFromOutline(out.Paths).Transform(m),
		Advance:   advance,
		LSB:       lsb,
	}
}

// ttf converts the glyph into the font writer's integer form.
func (g Glyph) ttf() (ttf.Glyph, error) {
	if g.Advance < 0 || g.Advance > math.MaxUint16 {
		return ttf.Glyph{}, fmt.Errorf("spritefont: %s: advance %d out of range", g.Name, g.Advance)
	}
	out := ttf.Glyph{Name: g.Name, Advance: uint16(g.Advance)}
	if g.Path == nil {
		return out, nil
	}
	for _, pts := range g.Path.Contours() {
		c := make(ttf.Contour, 0, len(pts))
		for _, p := range pts {
			p = p.Round()
			if p.X < math.MinInt16 || p.X > math.MaxInt16 || p.Y < math.MinInt16 || p.Y > math.MaxInt16 {
				return ttf.Glyph{}, fmt.Errorf("spritefont: %s: point (%g,%g) out of range", g.Name, p.X, p.Y)
			}
			c = append(c, ttf.Point{X: int16(p.X), Y: int16(p.Y)})
		}
		out.Contours = append(out.Contours, c)
	}
	return out, nil
}

// dedupe keeps the first glyph of every codepoint.
func dedupe(glyphs []Glyph) (kept, dropped []Glyph) {
	seen := make(map[rune]bool, len(glyphs))
	for _, g := range glyphs {
		if seen[g.Codepoint] {
			dropped = append(dropped, g)
			continue
		}
		seen[g.Codepoint] = true
		kept = append(kept, g)
	}
	return kept, dropped
}
