package ttf

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Name table platforms, each with its English language id.
var namePlatforms = []struct {
	platform, encoding, language uint16
	encoder                      func() *encoding.Encoder
}{
	{1, 0, 0, func() *encoding.Encoder {
		return encoding.ReplaceUnsupported(charmap.Macintosh.NewEncoder())
	}},
	{3, 1, 0x0409, func() *encoding.Encoder {
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	}},
}

type nameEntry struct {
	id    uint16
	value string
}

func (n Names) entries() []nameEntry {
	all := []nameEntry{
		{0, n.Copyright},
		{1, n.Family},
		{2, n.Subfamily},
		{3, n.UniqueID},
		{4, n.FullName},
		{5, n.Version},
		{6, n.PostScriptName},
		{16, n.TypographicFamily},
		{17, n.TypographicSubfamily},
	}
	out := all[:0]
	for _, e := range all {
		if e.value != "" {
			out = append(out, e)
		}
	}
	return out
}

// table encodes the names once per platform. Records come out sorted by
// platform, encoding, language and name id.
func (n Names) table() ([]byte, error) {
	entries := n.entries()
	count := len(entries) * len(namePlatforms)

	var records, storage []byte
	for _, p := range namePlatforms {
		enc := p.encoder()
		for _, e := range entries {
			s, err := enc.String(e.value)
			if err != nil {
				return nil, fmt.Errorf("ttf: name %d: %w", e.id, err)
			}
			if len(storage)+len(s) > 0xFFFF {
				return nil, fmt.Errorf("ttf: name %d: string storage over 64 KiB", e.id)
			}
			records = be.AppendUint16(records, p.platform)
			records = be.AppendUint16(records, p.encoding)
			records = be.AppendUint16(records, p.language)
			records = be.AppendUint16(records, e.id)
			records = be.AppendUint16(records, uint16(len(s)))
			records = be.AppendUint16(records, uint16(len(storage)))
			storage = append(storage, s...)
		}
	}

	b := be.AppendUint16(nil, 0)
	b = be.AppendUint16(b, uint16(count))
	b = be.AppendUint16(b, uint16(6+12*count))
	b = append(b, records...)
	return append(b, storage...), nil
}
