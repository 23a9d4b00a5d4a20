// Package sheet loads sprite sheets and slices their layers into glyph cells.
//
// A sheet is either an Aseprite document, whose layers are read from the
// first frame, or a flat raster image (PNG, GIF, JPEG, BMP, TIFF, WebP),
// which becomes a single layer. Layers named "U+XXXX" hold glyphs; the hex
// number is the codepoint of the top-left cell.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Raster formats accepted for single-layer sheets.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/spritefont/internal/ase"
)

// ErrUnsupportedFormat is returned when the input is neither an Aseprite
// document nor a decodable raster image.
var ErrUnsupportedFormat = errors.New("sheet: unsupported image format")

// Layer is one named image of a sheet.
type Layer struct {
	Name  string
	Image image.Image
}

// Sheet is a stack of equally sized layers.
type Sheet struct {
	Width  int
	Height int
	Layers []Layer
}

// Load reads a sheet from path. A raster image becomes one layer named
// after the file stem.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Decode(f, stem)
}

// Decode reads a sheet from r. Aseprite documents are detected by their
// magic number; anything else goes through image.Decode and becomes a single
// layer called name.
func Decode(r io.Reader, name string) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: read: %w", err)
	}
	if isAseprite(data) {
		doc, err := ase.DecodeBytes(data)
		if err != nil {
			return nil, fmt.Errorf("sheet: %w", err)
		}
		return fromAseprite(doc), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: decode: %w", err)
	}
	return FromImage(name, img), nil
}

func isAseprite(data []byte) bool {
	return len(data) >= 6 && data[4] == 0xE0 && data[5] == 0xA5
}

func fromAseprite(doc *ase.File) *Sheet {
	s := &Sheet{Width: doc.Width, Height: doc.Height}
	for _, l := range doc.Layers {
		if l.Image == nil {
			continue
		}
		s.Layers = append(s.Layers, Layer{Name: l.Name, Image: l.Image})
	}
	return s
}

// FromImage wraps a single image as a one-layer sheet.
func FromImage(name string, img image.Image) *Sheet {
	b := img.Bounds()
	return &Sheet{
		Width:  b.Dx(),
		Height: b.Dy(),
		Layers: []Layer{{Name: name, Image: img}},
	}
}

// ParseCodepoint reads the starting codepoint from a layer name of the form
// "U+XXXX" or "u+XXXX". Hex digits are taken up to the first non-hex
// character, so "U+0041 capitals" is 0x41. ok is false when the name has no
// such prefix or the number is not a valid codepoint.
func ParseCodepoint(name string) (r rune, ok bool) {
	if !strings.HasPrefix(name, "U+") && !strings.HasPrefix(name, "u+") {
		return 0, false
	}
	hex := name[2:]
	if i := strings.IndexFunc(hex, func(c rune) bool { return !isHexDigit(c) }); i >= 0 {
		hex = hex[:i]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, false
	}
	return rune(v), true
}

func isHexDigit(c rune) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// DimensionError is returned when the sheet is not an exact grid of cells.
type DimensionError struct {
	SheetWidth, SheetHeight int
	CellWidth, CellHeight   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("sheet: %dx%d sheet is not a multiple of the %dx%d glyph size",
		e.SheetWidth, e.SheetHeight, e.CellWidth, e.CellHeight)
}

// Validate checks that cells of cellWidth×cellHeight tile the sheet exactly.
func (s *Sheet) Validate(cellWidth, cellHeight int) error {
	if cellWidth <= 0 || cellHeight <= 0 ||
		s.Width%cellWidth != 0 || s.Height%cellHeight != 0 {
		return &DimensionError{
			SheetWidth:  s.Width,
			SheetHeight: s.Height,
			CellWidth:   cellWidth,
			CellHeight:  cellHeight,
		}
	}
	return nil
}
