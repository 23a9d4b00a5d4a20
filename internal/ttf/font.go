// Package ttf writes TrueType fonts whose glyphs are made of straight,
// on-curve outlines.
//
// A Font lists glyphs in glyph-id order together with a codepoint mapping and
// naming metadata. Encode derives all aggregate metrics (bounding boxes,
// maximum profile, average width) from the glyphs and emits the required
// tables: OS/2, cmap, glyf, head, hhea, hmtx, loca, maxp, name and post.
package ttf

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Sentinel errors for the ttf package.
var (
	// ErrNoGlyphs is returned when a font has no glyph at all; glyph 0 must
	// exist as .notdef.
	ErrNoGlyphs = errors.New("ttf: font has no glyphs")

	// ErrTooManyGlyphs is returned when glyph ids do not fit in 16 bits.
	ErrTooManyGlyphs = errors.New("ttf: more than 65535 glyphs")
)

// MappingError is returned when a cmap entry is unusable.
type MappingError struct {
	Codepoint rune
	Glyph     int
	Reason    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("ttf: map U+%04X to glyph %d: %s", e.Codepoint, e.Glyph, e.Reason)
}

// Point is an on-curve outline point in font units, y up.
type Point struct {
	X, Y int16
}

// Contour is a closed polygon. The last point connects back to the first and
// is not repeated.
type Contour []Point

// Glyph is one outline with its advance width. The left side bearing is
// taken from the outline's leftmost point.
type Glyph struct {
	Name     string
	Contours []Contour
	Advance  uint16
}

// Mapping assigns a glyph id to a codepoint.
type Mapping struct {
	Codepoint rune
	Glyph     uint16
}

// Names holds the strings of the name table.
type Names struct {
	Copyright            string // 0
	Family               string // 1
	Subfamily            string // 2
	UniqueID             string // 3
	FullName             string // 4
	Version              string // 5
	PostScriptName       string // 6
	TypographicFamily    string // 16
	TypographicSubfamily string // 17
}

// Font is everything Encode needs. Glyphs[0] is .notdef.
type Font struct {
	UnitsPerEm uint16
	Ascender   int16
	Descender  int16
	LineGap    int16

	// Revision is the head fontRevision in 16.16 fixed point.
	Revision int32

	WeightClass uint16
	Bold        bool
	Italic      bool
	FixedPitch  bool

	UnderlinePosition  int16
	UnderlineThickness int16

	// ScriptXSize, ScriptYSize and ScriptYOffset describe both the
	// subscript and superscript boxes.
	ScriptXSize, ScriptYSize, ScriptYOffset int16
	StrikeoutSize, StrikeoutPosition        int16

	Created  time.Time
	Modified time.Time

	Names   Names
	Glyphs  []Glyph
	Mapping []Mapping
}

// WriteTo encodes f and writes it to w.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	data, err := f.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Encode serializes the font into TrueType bytes.
func (f *Font) Encode() ([]byte, error) {
	if len(f.Glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	if len(f.Glyphs) > 0xFFFF {
		return nil, ErrTooManyGlyphs
	}
	for _, m := range f.Mapping {
		switch {
		case int(m.Glyph) >= len(f.Glyphs):
			return nil, &MappingError{Codepoint: m.Codepoint, Glyph: int(m.Glyph), Reason: "no such glyph"}
		case m.Codepoint < 0 || m.Codepoint > 0x10FFFF:
			return nil, &MappingError{Codepoint: m.Codepoint, Glyph: int(m.Glyph), Reason: "not a Unicode codepoint"}
		}
	}

	m := f.measure()
	glyf, loca, err := f.glyfLoca()
	if err != nil {
		return nil, err
	}
	name, err := f.Names.table()
	if err != nil {
		return nil, err
	}

	tables := []table{
		{tag: "OS/2", data: f.os2(m)},
		{tag: "cmap", data: buildCmap(f.Mapping)},
		{tag: "glyf", data: glyf},
		{tag: "head", data: f.head(m)},
		{tag: "hhea", data: f.hhea(m)},
		{tag: "hmtx", data: f.hmtx(m)},
		{tag: "loca", data: loca},
		{tag: "maxp", data: f.maxp(m)},
		{tag: "name", data: name},
		{tag: "post", data: f.post()},
	}
	return assemble(tables), nil
}

// longDateTime converts t to seconds since 1904-01-01 UTC.
func longDateTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix() + 2082844800
}
