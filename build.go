package spritefont

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/spritefont/internal/ttf"
)

// Glyph ids of the glyphs every font starts with.
const (
	notdefGlyph = iota
	nullGlyph
	spaceGlyph
	firstGlyph
)

// weightNames lists the subfamily spellings of each OS/2 weight class.
var weightNames = map[int][]string{
	100: {"thin"},
	200: {"extra-light", "extralight", "ultra-light", "ultralight"},
	300: {"light"},
	400: {"regular"},
	500: {"medium"},
	600: {"semibold", "semi-bold", "demi-bold", "demibold"},
	700: {"bold"},
	800: {"extrabold", "extra-bold", "ultrabold", "ultra-bold"},
	900: {"black", "heavy"},
}

// style derives the weight class and the italic flag from a subfamily name
// such as "Bold Italic". Unknown weights are regular.
func style(subfamily string) (weight int, italic bool) {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(subfamily)) {
		if w == "italic" || w == "oblique" {
			italic = true
			continue
		}
		words = append(words, w)
	}
	name := strings.Join(words, " ")
	for w, names := range weightNames {
		if slices.Contains(names, name) {
			return w, italic
		}
	}
	return 400, italic
}

// revision reads the first number of a version string ("Version 1.25") as
// 16.16 fixed point. Strings without a number give 1.0.
func revision(version string) int32 {
	start := strings.IndexAny(version, "0123456789")
	if start < 0 {
		return 1 << 16
	}
	end, dot := start, false
	for ; end < len(version); end++ {
		c := version[end]
		if c == '.' && !dot {
			dot = true
			continue
		}
		if c < '0' || c > '9' {
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(version[start:end], "."), 64)
	if err != nil || v >= 32768 {
		return 1 << 16
	}
	return int32(math.Round(v * 65536))
}

// names fills the name table. A non-regular subfamily is appended to the
// family in the legacy family and full names.
func (o Options) names(family string) ttf.Names {
	sub := o.Subfamily
	if sub == "" {
		sub = "Regular"
	}
	full := family
	if !strings.EqualFold(sub, "regular") {
		full = family + " " + sub
	}
	return ttf.Names{
		Copyright:            o.Copyright,
		Family:               full,
		Subfamily:            sub,
		UniqueID:             "ase2ttf: " + full,
		FullName:             full,
		Version:              o.FontVersion,
		PostScriptName:       strings.ReplaceAll(full, " ", "-"),
		TypographicFamily:    family,
		TypographicSubfamily: sub,
	}
}

// Build assembles glyphs into a font named family, or Options.Family when
// set. Glyph ids follow the slice order after .notdef, .null and space; a
// codepoint that appears twice keeps its first glyph.
func (c *Converter) Build(glyphs []Glyph, family string) (*ttf.Font, error) {
	kept, dropped := dedupe(glyphs)
	logDuplicates(dropped)
	return c.font(kept, family)
}

func (c *Converter) font(glyphs []Glyph, family string) (*ttf.Font, error) {
	o := c.opts
	if o.Family != "" {
		family = o.Family
	}
	s := o.Scale
	weight, italic := style(o.Subfamily)
	if o.FontWeight != 0 {
		weight = o.FontWeight
	}
	now := c.cfg.now()

	f := &ttf.Font{
		UnitsPerEm:         uint16(o.UnitsPerEm()),
		Ascender:           int16((o.GlyphHeight - o.Baseline) * s),
		Descender:          int16(-o.Baseline * s),
		LineGap:            int16(o.LineGap * s),
		Revision:           revision(o.FontVersion),
		WeightClass:        uint16(weight),
		Bold:               weight == 700,
		Italic:             italic,
		FixedPitch:         !o.Trim,
		UnderlinePosition:  int16(o.UnderlinePosition * s),
		UnderlineThickness: int16(o.UnderlineThickness * s),
		ScriptXSize:        int16(o.GlyphWidth * s / 2),
		ScriptYSize:        int16(o.GlyphHeight * s / 2),
		ScriptYOffset:      int16(o.GlyphHeight * s / 2),
		StrikeoutSize:      int16(s),
		StrikeoutPosition:  int16(o.GlyphHeight * s / 2),
		Created:            now,
		Modified:           now,
		Names:              o.names(family),
	}

	blank := uint16(o.GlyphWidth * s)
	f.Glyphs = append(f.Glyphs,
		ttf.Glyph{Name: ".notdef", Advance: blank},
		ttf.Glyph{Name: ".null", Advance: blank},
		ttf.Glyph{Name: "space", Advance: blank},
	)

	taken := make(map[rune]bool, len(glyphs))
	for _, g := range glyphs {
		taken[g.Codepoint] = true
	}
	if !taken[0x0000] {
		f.Mapping = append(f.Mapping, ttf.Mapping{Codepoint: 0x0000, Glyph: nullGlyph})
	}
	if !taken[0x0020] {
		f.Mapping = append(f.Mapping, ttf.Mapping{Codepoint: 0x0020, Glyph: spaceGlyph})
	}

	for i, g := range glyphs {
		tg, err := g.ttf()
		if err != nil {
			return nil, err
		}
		id := firstGlyph + i
		if id > math.MaxUint16 {
			return nil, ttf.ErrTooManyGlyphs
		}
		f.Glyphs = append(f.Glyphs, tg)
		f.Mapping = append(f.Mapping, ttf.Mapping{Codepoint: g.Codepoint, Glyph: uint16(id)})
	}
	return f, nil
}
