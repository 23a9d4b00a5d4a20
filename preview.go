package spritefont

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/spritefont/outline"
)

const (
	previewColumns = 8
	previewGap     = 2
)

var (
	previewPaper  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	previewSource = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	previewTraced = color.NRGBA{R: 0x1F, G: 0x4E, B: 0xB4, A: 0xFF}
)

// RenderPreview draws a contact sheet of glyphs, previewColumns per row.
// Each tile shows the sampled cell mask on the left and the traced outline,
// filled with the non-zero rule, on the right, both enlarged zoom times.
// Matching halves mean the outline reproduces the pixels.
func RenderPreview(glyphs []Glyph, zoom int) *image.NRGBA {
	if len(glyphs) == 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	zoom = max(zoom, 1)
	cw, ch := 0, 0
	for _, g := range glyphs {
		cw, ch = max(cw, g.Grid.Width()), max(ch, g.Grid.Height())
	}
	tileW, tileH := 2*cw*zoom+previewGap, ch*zoom
	cols := min(len(glyphs), previewColumns)
	rows := (len(glyphs) + previewColumns - 1) / previewColumns

	dst := image.NewNRGBA(image.Rect(0, 0,
		cols*(tileW+previewGap)+previewGap,
		rows*(tileH+previewGap)+previewGap))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(previewPaper), image.Point{}, draw.Src)

	for i, g := range glyphs {
		x := previewGap + (i%previewColumns)*(tileW+previewGap)
		y := previewGap + (i/previewColumns)*(tileH+previewGap)
		w, h := g.Grid.Width()*zoom, g.Grid.Height()*zoom

		src := gridMask(g.Grid)
		left := image.Rect(x, y, x+w, y+h)
		scaled := image.NewAlpha(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		draw.DrawMask(dst, left, image.NewUniform(previewSource), image.Point{}, scaled, image.Point{}, draw.Over)

		right := left.Add(image.Pt(cw*zoom+previewGap, 0))
		traced := outline.Rasterize(g.Outline.Paths, g.Grid.Width(), g.Grid.Height(), zoom)
		draw.DrawMask(dst, right, image.NewUniform(previewTraced), image.Point{}, traced, image.Point{}, draw.Over)
	}
	return dst
}

// WritePreview encodes RenderPreview(glyphs, zoom) as PNG.
func WritePreview(w io.Writer, glyphs []Glyph, zoom int) error {
	return png.Encode(w, RenderPreview(glyphs, zoom))
}

// gridMask renders the foreground cells of g as an opaque alpha mask.
func gridMask(g *outline.Grid) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, g.Width(), g.Height()))
	for y := range g.Height() {
		for x := range g.Width() {
			if g.Foreground(x, y) {
				m.SetAlpha(x, y, color.Alpha{A: 0xFF})
			}
		}
	}
	return m
}
