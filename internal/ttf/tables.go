package ttf

import (
	"encoding/binary"
	"math/bits"
	"slices"
	"strconv"
	"strings"
)

var be = binary.BigEndian

type table struct {
	tag  string
	data []byte
}

// bbox is a glyph bounding box in font units.
type bbox struct {
	xMin, yMin, xMax, yMax int16
}

func (g *Glyph) bounds() (b bbox, ok bool) {
	for _, c := range g.Contours {
		for _, p := range c {
			if !ok {
				b = bbox{p.X, p.Y, p.X, p.Y}
				ok = true
				continue
			}
			b.xMin, b.yMin = min(b.xMin, p.X), min(b.yMin, p.Y)
			b.xMax, b.yMax = max(b.xMax, p.X), max(b.yMax, p.Y)
		}
	}
	return b, ok
}

func (g *Glyph) points() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// metrics are the aggregates several tables share.
type metrics struct {
	bbox     bbox
	lsb      []int16
	advMax   uint16
	avgWidth int16
	minLSB   int16
	minRSB   int16
	maxExt   int16

	maxPoints   uint16
	maxContours uint16

	firstChar, lastChar uint16
	supplementary       bool
	basicLatin          bool
}

func (f *Font) measure() metrics {
	m := metrics{lsb: make([]int16, len(f.Glyphs))}
	var sum, counted int
	first := true
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		m.advMax = max(m.advMax, g.Advance)
		if g.Advance > 0 {
			sum += int(g.Advance)
			counted++
		}
		m.maxPoints = max(m.maxPoints, uint16(min(g.points(), 0xFFFF)))
		m.maxContours = max(m.maxContours, uint16(min(len(g.Contours), 0xFFFF)))

		b, ok := g.bounds()
		if !ok {
			continue
		}
		m.lsb[i] = b.xMin
		rsb := int16(int(g.Advance) - int(b.xMax))
		ext := b.xMax
		if first {
			m.bbox = b
			m.minLSB, m.minRSB, m.maxExt = b.xMin, rsb, ext
			first = false
			continue
		}
		m.bbox.xMin, m.bbox.yMin = min(m.bbox.xMin, b.xMin), min(m.bbox.yMin, b.yMin)
		m.bbox.xMax, m.bbox.yMax = max(m.bbox.xMax, b.xMax), max(m.bbox.yMax, b.yMax)
		m.minLSB = min(m.minLSB, b.xMin)
		m.minRSB = min(m.minRSB, rsb)
		m.maxExt = max(m.maxExt, ext)
	}
	if counted > 0 {
		m.avgWidth = int16((sum + counted/2) / counted)
	}

	if len(f.Mapping) > 0 {
		lo, hi := f.Mapping[0].Codepoint, f.Mapping[0].Codepoint
		for _, mp := range f.Mapping {
			lo, hi = min(lo, mp.Codepoint), max(hi, mp.Codepoint)
			if mp.Codepoint > 0xFFFF {
				m.supplementary = true
			}
			if mp.Codepoint >= 0x21 && mp.Codepoint <= 0x7E {
				m.basicLatin = true
			}
		}
		m.firstChar = uint16(min(lo, 0xFFFF))
		m.lastChar = uint16(min(hi, 0xFFFF))
	}
	return m
}

const (
	headFlags = 1<<0 | 1<<1 | 1<<3 // baseline at y=0, lsb at x=0, integer ppem

	macStyleBold   = 1 << 0
	macStyleItalic = 1 << 1

	fsSelectionItalic  = 1 << 0
	fsSelectionBold    = 1 << 5
	fsSelectionRegular = 1 << 6
)

func (f *Font) head(m metrics) []byte {
	var macStyle uint16
	if f.Bold {
		macStyle |= macStyleBold
	}
	if f.Italic {
		macStyle |= macStyleItalic
	}
	revision := f.Revision
	if revision == 0 {
		revision = 0x00010000
	}

	b := make([]byte, 0, 54)
	b = be.AppendUint32(b, 0x00010000)
	b = be.AppendUint32(b, uint32(revision))
	b = be.AppendUint32(b, 0) // checkSumAdjustment, patched by assemble
	b = be.AppendUint32(b, 0x5F0F3CF5)
	b = be.AppendUint16(b, headFlags)
	b = be.AppendUint16(b, f.UnitsPerEm)
	b = be.AppendUint64(b, uint64(longDateTime(f.Created)))
	b = be.AppendUint64(b, uint64(longDateTime(f.Modified)))
	b = appendBBox(b, m.bbox)
	b = be.AppendUint16(b, macStyle)
	b = be.AppendUint16(b, 8) // lowestRecPPEM
	b = be.AppendUint16(b, 2) // fontDirectionHint
	b = be.AppendUint16(b, 1) // indexToLocFormat: long
	b = be.AppendUint16(b, 0) // glyphDataFormat
	return b
}

func appendBBox(b []byte, box bbox) []byte {
	b = be.AppendUint16(b, uint16(box.xMin))
	b = be.AppendUint16(b, uint16(box.yMin))
	b = be.AppendUint16(b, uint16(box.xMax))
	return be.AppendUint16(b, uint16(box.yMax))
}

func (f *Font) hhea(m metrics) []byte {
	b := make([]byte, 0, 36)
	b = be.AppendUint32(b, 0x00010000)
	b = be.AppendUint16(b, uint16(f.Ascender))
	b = be.AppendUint16(b, uint16(f.Descender))
	b = be.AppendUint16(b, uint16(f.LineGap))
	b = be.AppendUint16(b, m.advMax)
	b = be.AppendUint16(b, uint16(m.minLSB))
	b = be.AppendUint16(b, uint16(m.minRSB))
	b = be.AppendUint16(b, uint16(m.maxExt))
	b = be.AppendUint16(b, 1) // caretSlopeRise
	b = be.AppendUint16(b, 0) // caretSlopeRun
	b = be.AppendUint16(b, 0) // caretOffset
	b = append(b, make([]byte, 8)...)
	b = be.AppendUint16(b, 0) // metricDataFormat
	return be.AppendUint16(b, uint16(len(f.Glyphs)))
}

func (f *Font) hmtx(m metrics) []byte {
	b := make([]byte, 0, 4*len(f.Glyphs))
	for i, g := range f.Glyphs {
		b = be.AppendUint16(b, g.Advance)
		b = be.AppendUint16(b, uint16(m.lsb[i]))
	}
	return b
}

func (f *Font) maxp(m metrics) []byte {
	b := make([]byte, 0, 32)
	b = be.AppendUint32(b, 0x00010000)
	b = be.AppendUint16(b, uint16(len(f.Glyphs)))
	b = be.AppendUint16(b, m.maxPoints)
	b = be.AppendUint16(b, m.maxContours)
	b = be.AppendUint16(b, 0) // maxCompositePoints
	b = be.AppendUint16(b, 0) // maxCompositeContours
	b = be.AppendUint16(b, 2) // maxZones
	b = be.AppendUint16(b, 0) // maxTwilightPoints
	b = be.AppendUint16(b, 1) // maxStorage
	b = be.AppendUint16(b, 1) // maxFunctionDefs
	b = be.AppendUint16(b, 0) // maxInstructionDefs
	b = be.AppendUint16(b, 64)
	b = be.AppendUint16(b, 0) // maxSizeOfInstructions
	b = be.AppendUint16(b, 0) // maxComponentElements
	return be.AppendUint16(b, 0)
}

func (f *Font) os2(m metrics) []byte {
	var selection uint16
	switch {
	case f.Bold || f.Italic:
		if f.Bold {
			selection |= fsSelectionBold
		}
		if f.Italic {
			selection |= fsSelectionItalic
		}
	default:
		selection = fsSelectionRegular
	}
	var unicodeRange [4]uint32
	var codePages uint32
	if m.basicLatin {
		unicodeRange[0] |= 1 << 0
		codePages |= 1 << 0
	}
	if m.supplementary {
		unicodeRange[1] |= 1 << (57 - 32)
	}

	b := make([]byte, 0, 96)
	b = be.AppendUint16(b, 4)
	b = be.AppendUint16(b, uint16(m.avgWidth))
	b = be.AppendUint16(b, f.WeightClass)
	b = be.AppendUint16(b, 5) // usWidthClass: medium
	b = be.AppendUint16(b, 0) // fsType: installable
	for range 2 {
		b = be.AppendUint16(b, uint16(f.ScriptXSize))
		b = be.AppendUint16(b, uint16(f.ScriptYSize))
		b = be.AppendUint16(b, 0)
		b = be.AppendUint16(b, uint16(f.ScriptYOffset))
	}
	b = be.AppendUint16(b, uint16(f.StrikeoutSize))
	b = be.AppendUint16(b, uint16(f.StrikeoutPosition))
	b = be.AppendUint16(b, 0)          // sFamilyClass
	b = append(b, make([]byte, 10)...) // panose
	for _, r := range unicodeRange {
		b = be.AppendUint32(b, r)
	}
	b = append(b, "NONE"...)
	b = be.AppendUint16(b, selection)
	b = be.AppendUint16(b, m.firstChar)
	b = be.AppendUint16(b, m.lastChar)
	b = be.AppendUint16(b, uint16(f.Ascender))
	b = be.AppendUint16(b, uint16(f.Descender))
	b = be.AppendUint16(b, uint16(f.LineGap))
	b = be.AppendUint16(b, uint16(max(f.Ascender, m.bbox.yMax)))
	b = be.AppendUint16(b, uint16(max(-f.Descender, -m.bbox.yMin)))
	b = be.AppendUint32(b, codePages)
	b = be.AppendUint32(b, 0)
	b = be.AppendUint16(b, 0)    // sxHeight
	b = be.AppendUint16(b, 0)    // sCapHeight
	b = be.AppendUint16(b, 0)    // usDefaultChar
	b = be.AppendUint16(b, 0x20) // usBreakChar
	return be.AppendUint16(b, 1) // usMaxContext
}

// standardNames are the Macintosh glyph names the post table can refer to by
// index instead of spelling out.
var standardNames = map[string]uint16{
	".notdef":          0,
	".null":            1,
	"nonmarkingreturn": 2,
	"space":            3,
}

const numStandardNames = 258

func (f *Font) post() []byte {
	b := make([]byte, 0, 34+2*len(f.Glyphs))
	b = be.AppendUint32(b, 0x00020000)
	b = be.AppendUint32(b, 0) // italicAngle
	b = be.AppendUint16(b, uint16(f.UnderlinePosition))
	b = be.AppendUint16(b, uint16(f.UnderlineThickness))
	var fixed uint32
	if f.FixedPitch {
		fixed = 1
	}
	b = be.AppendUint32(b, fixed)
	b = append(b, make([]byte, 16)...) // memory usage hints
	b = be.AppendUint16(b, uint16(len(f.Glyphs)))

	var custom []string
	for i, g := range f.Glyphs {
		name := g.Name
		if name == "" && i == 0 {
			name = ".notdef"
		}
		if idx, ok := standardNames[name]; ok {
			b = be.AppendUint16(b, idx)
			continue
		}
		if name == "" {
			name = "glyph" + strconv.Itoa(i)
		}
		b = be.AppendUint16(b, uint16(numStandardNames+len(custom)))
		custom = append(custom, name)
	}
	for _, name := range custom {
		if len(name) > 255 {
			name = name[:255]
		}
		b = append(b, byte(len(name)))
		b = append(b, name...)
	}
	return b
}

// assemble lays out the table directory and tables, then patches the head
// checkSumAdjustment.
func assemble(tables []table) []byte {
	slices.SortFunc(tables, func(a, b table) int { return strings.Compare(a.tag, b.tag) })

	n := len(tables)
	pow := 1 << (bits.Len(uint(n)) - 1)
	searchRange := pow * 16

	out := make([]byte, 0, 12+16*n)
	out = be.AppendUint32(out, 0x00010000)
	out = be.AppendUint16(out, uint16(n))
	out = be.AppendUint16(out, uint16(searchRange))
	out = be.AppendUint16(out, uint16(bits.Len(uint(n))-1))
	out = be.AppendUint16(out, uint16(n*16-searchRange))

	offset := 12 + 16*n
	headOffset := -1
	for _, t := range tables {
		out = append(out, t.tag...)
		out = be.AppendUint32(out, checksum(t.data))
		out = be.AppendUint32(out, uint32(offset))
		out = be.AppendUint32(out, uint32(len(t.data)))
		if t.tag == "head" {
			headOffset = offset
		}
		offset += pad4(len(t.data))
	}
	for _, t := range tables {
		out = append(out, t.data...)
		out = append(out, make([]byte, pad4(len(t.data))-len(t.data))...)
	}
	if headOffset >= 0 {
		be.PutUint32(out[headOffset+8:], 0xB1B0AFBA-checksum(out))
	}
	return out
}

func pad4(n int) int { return (n + 3) &^ 3 }

// checksum sums data as big-endian uint32 words, zero padded.
func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += be.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var tail [4]byte
		copy(tail[:], data)
		sum += be.Uint32(tail[:])
	}
	return sum
}
