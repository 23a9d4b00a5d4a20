package sheet

import (
	"image"

	"github.com/gogpu/spritefont/outline"
)

// Cell addresses one glyph-sized tile of a glyph layer.
type Cell struct {
	// Layer indexes Sheet.Layers.
	Layer int

	Row, Col int

	// Codepoint is the layer's base codepoint plus Row·cols + Col.
	Codepoint rune

	// Bounds is the tile's rectangle in sheet coordinates.
	Bounds image.Rectangle
}

// Cells lists every tile of every layer whose name carries a codepoint, in
// layer, row, column order. Other layers are reported in skipped.
func (s *Sheet) Cells(cellWidth, cellHeight int) (cells []Cell, skipped []string, err error) {
	if err := s.Validate(cellWidth, cellHeight); err != nil {
		return nil, nil, err
	}
	cols, rows := s.Width/cellWidth, s.Height/cellHeight
	for li, l := range s.Layers {
		base, ok := ParseCodepoint(l.Name)
		if !ok {
			skipped = append(skipped, l.Name)
			continue
		}
		for row := range rows {
			for col := range cols {
				x0, y0 := col*cellWidth, row*cellHeight
				cells = append(cells, Cell{
					Layer:     li,
					Row:       row,
					Col:       col,
					Codepoint: base + rune(row*cols+col),
					Bounds:    image.Rect(x0, y0, x0+cellWidth, y0+cellHeight),
				})
			}
		}
	}
	return cells, skipped, nil
}

// Grid samples the alpha channel of a cell as weights in [0, 1]. Pixels
// outside the layer image read as transparent.
func (s *Sheet) Grid(c Cell) *outline.Grid {
	img := s.Layers[c.Layer].Image
	alpha := alphaFunc(img)
	x0, y0 := c.Bounds.Min.X, c.Bounds.Min.Y
	return outline.SampleGrid(c.Bounds.Dx(), c.Bounds.Dy(), func(x, y int) float64 {
		return float64(alpha(x0+x, y0+y)) / 255
	})
}

// alphaFunc returns an 8-bit alpha reader for img in sheet coordinates,
// where (0, 0) is the image's top-left corner.
func alphaFunc(img image.Image) func(x, y int) uint8 {
	b := img.Bounds()
	if m, ok := img.(*image.NRGBA); ok {
		return func(x, y int) uint8 {
			p := image.Pt(b.Min.X+x, b.Min.Y+y)
			if !p.In(b) {
				return 0
			}
			return m.Pix[m.PixOffset(p.X, p.Y)+3]
		}
	}
	return func(x, y int) uint8 {
		p := image.Pt(b.Min.X+x, b.Min.Y+y)
		if !p.In(b) {
			return 0
		}
		_, _, _, a := img.At(p.X, p.Y).RGBA()
		return uint8(a >> 8)
	}
}
