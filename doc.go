// Package spritefont turns pixel-art sprite sheets into TrueType fonts.
//
// # Overview
//
// A sprite sheet is an Aseprite file or a plain raster image cut into
// fixed-size cells, one glyph per cell. Every layer whose name starts with a
// codepoint such as "U+0041" maps its cells, row by row, to consecutive
// codepoints. Each cell's alpha mask is traced into straight-edged contours
// by package outline and written as a glyf outline by internal/ttf.
//
// # Quick Start
//
//	opts := spritefont.DefaultOptions()
//	opts.Family = "Tiny"
//	conv, err := spritefont.NewConverter(opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, report, err := conv.ConvertFile(ctx, "tiny.aseprite")
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("tiny.ttf", data, 0o644)
//	log.Printf("%d glyphs", report.Glyphs)
//
// # Coordinate System
//
// Cells are traced on their pixel lattice:
//   - Origin (0,0) at the top-left corner of the cell
//   - X increases right, Y increases down
//   - One unit per pixel
//
// Glyph outlines are emitted in font units with Y pointing up, one pixel
// spanning Options.Scale units, and Options.Baseline pixels of the cell
// hanging below the baseline.
//
// # Concurrency
//
// Cells are traced on a work-stealing pool. Results are always assembled in
// layer, row, column order, so glyph ids do not depend on scheduling.
package spritefont

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
