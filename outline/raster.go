package outline

import (
	"image"

	"golang.org/x/image/vector"
)

// Rasterize fills paths into a new alpha mask of (width·scale)×(height·scale)
// pixels, one lattice unit per scale pixels. Overlapping contours accumulate
// their winding, so resolved holes come out transparent.
func Rasterize(paths []Path, width, height, scale int) *image.Alpha {
	scale = max(scale, 1)
	w, h := max(width*scale, 0), max(height*scale, 0)
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 || len(paths) == 0 {
		return dst
	}

	z := vector.NewRasterizer(w, h)
	s := float32(scale)
	for _, p := range paths {
		vs := p.Vertices()
		if len(vs) < 3 {
			continue
		}
		z.MoveTo(float32(vs[0].X)*s, float32(vs[0].Y)*s)
		for _, v := range vs[1:] {
			z.LineTo(float32(v.X)*s, float32(v.Y)*s)
		}
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
