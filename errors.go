package spritefont

import (
	"errors"
	"fmt"

	"github.com/gogpu/spritefont/sheet"
)

// Sentinel errors for the spritefont package.
var (
	// ErrNoGlyphs is returned when no cell of the sheet holds a foreground
	// pixel.
	ErrNoGlyphs = errors.New("spritefont: no glyphs produced")

	// ErrInvalidOption is returned by Options.Validate.
	ErrInvalidOption = errors.New("spritefont: invalid option")

	// ErrUnsupportedFormat is returned for inputs that are neither an
	// Aseprite file nor a registered image format.
	ErrUnsupportedFormat = sheet.ErrUnsupportedFormat
)

// DimensionError is returned when the sheet is not a whole number of
// glyph cells.
type DimensionError = sheet.DimensionError

// CellError reports a cell whose outline could not be traced. It only
// occurs in strict mode.
type CellError struct {
	Layer     string
	Row, Col  int
	Codepoint rune
	Err       error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("spritefont: layer %q cell (%d,%d) U+%04X: %v",
		e.Layer, e.Row, e.Col, e.Codepoint, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// VerifyError reports a mismatch found when reading a generated font back.
type VerifyError struct {
	Parser string
	Reason string
}

func (e *VerifyError) Error() string {
	return "spritefont: verify (" + e.Parser + "): " + e.Reason
}
