package ttf

import (
	"math/bits"
	"slices"
)

// cmapRun maps codepoints start..end to consecutive glyphs from glyph.
type cmapRun struct {
	start, end rune
	glyph      uint16
}

// runs sorts mappings by codepoint and merges neighbours whose codepoints
// and glyph ids both step by one. A repeated codepoint keeps its first
// mapping.
func runs(mapping []Mapping) []cmapRun {
	sorted := slices.Clone(mapping)
	slices.SortStableFunc(sorted, func(a, b Mapping) int { return int(a.Codepoint - b.Codepoint) })

	var out []cmapRun
	for i, m := range sorted {
		if i > 0 && m.Codepoint == sorted[i-1].Codepoint {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if m.Codepoint == last.end+1 && int(m.Glyph) == int(last.glyph)+int(m.Codepoint-last.start) {
				last.end = m.Codepoint
				continue
			}
		}
		out = append(out, cmapRun{start: m.Codepoint, end: m.Codepoint, glyph: m.Glyph})
	}
	return out
}

// buildCmap writes a format 4 subtable for the Basic Multilingual Plane and,
// when any codepoint lies beyond it, a format 12 subtable for the full
// repertoire.
func buildCmap(mapping []Mapping) []byte {
	all := runs(mapping)
	var bmp []cmapRun
	full := false
	for _, r := range all {
		if r.start > 0xFFFF {
			full = true
			continue
		}
		if r.end > 0xFFFF {
			full = true
			r.end = 0xFFFF
		}
		if r.start == 0xFFFF {
			continue // reserved for the terminating segment
		}
		if r.end == 0xFFFF {
			r.end = 0xFFFE
		}
		bmp = append(bmp, r)
	}

	format4 := buildFormat4(bmp)
	var format12 []byte
	type record struct {
		platform, encoding uint16
		full               bool
	}
	records := []record{{0, 3, false}, {3, 1, false}}
	if full {
		format12 = buildFormat12(all)
		records = []record{{0, 3, false}, {0, 4, true}, {3, 1, false}, {3, 10, true}}
	}

	b := be.AppendUint16(nil, 0)
	b = be.AppendUint16(b, uint16(len(records)))
	offset4 := 4 + 8*len(records)
	offset12 := offset4 + len(format4)
	for _, r := range records {
		b = be.AppendUint16(b, r.platform)
		b = be.AppendUint16(b, r.encoding)
		if r.full {
			b = be.AppendUint32(b, uint32(offset12))
		} else {
			b = be.AppendUint32(b, uint32(offset4))
		}
	}
	b = append(b, format4...)
	return append(b, format12...)
}

func buildFormat4(segs []cmapRun) []byte {
	segs = append(segs, cmapRun{start: 0xFFFF, end: 0xFFFF, glyph: 0})
	n := len(segs)
	pow := 1 << (bits.Len(uint(n)) - 1)
	searchRange := 2 * pow

	length := 16 + 8*n
	b := make([]byte, 0, length)
	b = be.AppendUint16(b, 4)
	b = be.AppendUint16(b, uint16(length))
	b = be.AppendUint16(b, 0) // language
	b = be.AppendUint16(b, uint16(2*n))
	b = be.AppendUint16(b, uint16(searchRange))
	b = be.AppendUint16(b, uint16(bits.Len(uint(n))-1))
	b = be.AppendUint16(b, uint16(2*n-searchRange))
	for _, s := range segs {
		b = be.AppendUint16(b, uint16(s.end))
	}
	b = be.AppendUint16(b, 0) // reservedPad
	for _, s := range segs {
		b = be.AppendUint16(b, uint16(s.start))
	}
	for i, s := range segs {
		delta := uint16(s.glyph) - uint16(s.start)
		if i == n-1 {
			delta = 1 // 0xFFFF + 1 wraps to glyph 0
		}
		b = be.AppendUint16(b, delta)
	}
	for range segs {
		b = be.AppendUint16(b, 0) // idRangeOffset
	}
	return b
}

func buildFormat12(groups []cmapRun) []byte {
	length := 16 + 12*len(groups)
	b := make([]byte, 0, length)
	b = be.AppendUint16(b, 12)
	b = be.AppendUint16(b, 0)
	b = be.AppendUint32(b, uint32(length))
	b = be.AppendUint32(b, 0) // language
	b = be.AppendUint32(b, uint32(len(groups)))
	for _, g := range groups {
		b = be.AppendUint32(b, uint32(g.start))
		b = be.AppendUint32(b, uint32(g.end))
		b = be.AppendUint32(b, uint32(g.glyph))
	}
	return b
}
