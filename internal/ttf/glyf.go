package ttf

import "fmt"

// Simple glyph point flags.
const (
	flagOnCurve = 1 << 0
	flagXShort  = 1 << 1
	flagYShort  = 1 << 2
	flagRepeat  = 1 << 3
	flagXSame   = 1 << 4 // or positive, with flagXShort
	flagYSame   = 1 << 5 // or positive, with flagYShort
)

// glyfLoca encodes every glyph and the long-format offsets to them. Glyphs
// without points take no space in glyf.
func (f *Font) glyfLoca() (glyf, loca []byte, err error) {
	loca = be.AppendUint32(loca, 0)
	for i := range f.Glyphs {
		data, err := f.Glyphs[i].encode()
		if err != nil {
			return nil, nil, fmt.Errorf("ttf: glyph %d: %w", i, err)
		}
		glyf = append(glyf, data...)
		glyf = append(glyf, make([]byte, pad4(len(data))-len(data))...)
		loca = be.AppendUint32(loca, uint32(len(glyf)))
	}
	return glyf, loca, nil
}

func (g *Glyph) encode() ([]byte, error) {
	box, ok := g.bounds()
	if !ok {
		return nil, nil
	}
	if n := g.points(); n > 0xFFFF {
		return nil, fmt.Errorf("%d points do not fit a simple glyph", n)
	}

	var contours []Contour
	for _, c := range g.Contours {
		if len(c) > 0 {
			contours = append(contours, c)
		}
	}

	b := be.AppendUint16(nil, uint16(len(contours)))
	b = appendBBox(b, box)
	end := -1
	for _, c := range contours {
		end += len(c)
		b = be.AppendUint16(b, uint16(end))
	}
	b = be.AppendUint16(b, 0) // instructionLength

	var flags, xs, ys []byte
	var prev Point
	for _, c := range contours {
		for _, p := range c {
			flag := byte(flagOnCurve)
			var fx, fy byte
			fx, xs = appendDelta(xs, int(p.X)-int(prev.X), flagXShort, flagXSame)
			fy, ys = appendDelta(ys, int(p.Y)-int(prev.Y), flagYShort, flagYSame)
			flags = append(flags, flag|fx|fy)
			prev = p
		}
	}

	b = appendFlags(b, flags)
	b = append(b, xs...)
	return append(b, ys...), nil
}

// appendDelta encodes one coordinate delta in its shortest form and returns
// the flag bits that describe it.
func appendDelta(b []byte, d int, short, same byte) (byte, []byte) {
	switch {
	case d == 0:
		return same, b
	case d > 0 && d <= 0xFF:
		return short | same, append(b, byte(d))
	case d < 0 && d >= -0xFF:
		return short, append(b, byte(-d))
	default:
		return 0, be.AppendUint16(b, uint16(int16(d)))
	}
}

// appendFlags writes flags, folding runs of equal flags with flagRepeat.
func appendFlags(b, flags []byte) []byte {
	for i := 0; i < len(flags); {
		j := i + 1
		for j < len(flags) && flags[j] == flags[i] && j-i <= 0xFF {
			j++
		}
		if n := j - i - 1; n > 0 {
			b = append(b, flags[i]|flagRepeat, byte(n))
		} else {
			b = append(b, flags[i])
		}
		i = j
	}
	return b
}
