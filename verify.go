package spritefont

import (
	"bytes"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Verify parses a font produced from glyphs with two independent readers
// and checks that every codepoint maps to its glyph with the expected
// advance and contour structure. The first glyph of a repeated codepoint is
// the one expected.
func Verify(data []byte, glyphs []Glyph) error {
	kept, _ := dedupe(glyphs)
	if err := verifySfnt(data, kept); err != nil {
		return err
	}
	return verifyGoText(data, kept)
}

func verifySfnt(data []byte, glyphs []Glyph) error {
	fail := func(format string, args ...any) error {
		return &VerifyError{Parser: "sfnt", Reason: fmt.Sprintf(format, args...)}
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fail("%v", err)
	}
	if n, want := f.NumGlyphs(), firstGlyph+len(glyphs); n != want {
		return fail("%d glyphs, want %d", n, want)
	}
	upem := fixed.I(int(f.UnitsPerEm()))

	var buf sfnt.Buffer
	for i, g := range glyphs {
		want := sfnt.GlyphIndex(firstGlyph + i)
		idx, err := f.GlyphIndex(&buf, g.Codepoint)
		if err != nil {
			return fail("%s: %v", g.Name, err)
		}
		if idx != want {
			return fail("%s maps to glyph %d, want %d", g.Name, idx, want)
		}
		adv, err := f.GlyphAdvance(&buf, idx, upem, xfont.HintingNone)
		if err != nil {
			return fail("%s: %v", g.Name, err)
		}
		if adv != fixed.I(g.Advance) {
			return fail("%s advance %d, want %d", g.Name, adv.Round(), g.Advance)
		}

		segs, err := f.LoadGlyph(&buf, idx, upem, nil)
		if err != nil {
			return fail("%s: %v", g.Name, err)
		}
		moves, lines := 0, 0
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				moves++
			case sfnt.SegmentOpLineTo:
				lines++
			default:
				return fail("%s has a curve segment", g.Name)
			}
		}
		contours, points := g.Outline.ContourCount(), g.Outline.PointCount()
		if moves != contours || lines != points {
			return fail("%s has %d contours and %d lines, want %d and %d",
				g.Name, moves, lines, contours, points)
		}
	}
	return nil
}

func verifyGoText(data []byte, glyphs []Glyph) error {
	fail := func(format string, args ...any) error {
		return &VerifyError{Parser: "go-text", Reason: fmt.Sprintf(format, args...)}
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fail("%v", err)
	}
	if face.Upem() == 0 {
		return fail("zero units per em")
	}
	for i, g := range glyphs {
		gid, ok := face.NominalGlyph(g.Codepoint)
		if !ok {
			return fail("%s is not mapped", g.Name)
		}
		if want := gotext.GID(firstGlyph + i); gid != want {
			return fail("%s maps to glyph %d, want %d", g.Name, gid, want)
		}
		if adv := face.HorizontalAdvance(gid); adv != float32(g.Advance) {
			return fail("%s advance %g, want %d", g.Name, adv, g.Advance)
		}
	}
	return nil
}
