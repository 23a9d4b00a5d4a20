package spritefont

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/spritefont/sheet"
)

// Options holds the font metadata and the geometry of the sheet. Lengths
// are in pixels unless noted; Scale converts pixels to font units. The toml
// tags name the config file keys and the long tags the command line flags.
type Options struct {
	Copyright   string `toml:"copyright" long:"copyright" description:"copyright notice"`
	Family      string `toml:"family" long:"family" description:"family name (default: input file name)"`
	Subfamily   string `toml:"subfamily" long:"subfamily" description:"subfamily name, also sets weight and italic"`
	FontVersion string `toml:"font-version" long:"font-version" description:"version string"`

	// FontWeight is the OS/2 weight class. Zero derives it from Subfamily.
	FontWeight int `toml:"font-weight" long:"font-weight" description:"OS/2 weight class (default: from subfamily)"`

	GlyphWidth  int `toml:"glyph-width" long:"glyph-width" description:"cell width in pixels"`
	GlyphHeight int `toml:"glyph-height" long:"glyph-height" description:"cell height in pixels"`

	// Baseline is the number of cell rows below the baseline.
	Baseline int `toml:"baseline" long:"baseline" description:"pixel rows below the baseline"`
	LineGap  int `toml:"line-gap" long:"line-gap" description:"extra line spacing in pixels"`

	// Trim cuts empty columns on both sides of every glyph and keeps
	// TrimPad columns of spacing on the right.
	Trim    bool `toml:"trim" long:"trim" description:"proportional widths from the drawn columns"`
	TrimPad int  `toml:"trim-pad" long:"trim-pad" description:"pixel columns added right of trimmed glyphs"`

	UnderlinePosition  int `toml:"underline-position" long:"underline-position" description:"underline position in pixels"`
	UnderlineThickness int `toml:"underline-thickness" long:"underline-thickness" description:"underline thickness in pixels"`

	// Scale is the number of font units per pixel.
	Scale int `toml:"scale" long:"scale" description:"font units per pixel"`

	// Base overrides the starting codepoint ("U+0041") of a single-layer
	// sheet, whose layer name otherwise comes from the file name.
	Base string `toml:"base" long:"base" value-name:"U+XXXX" description:"first codepoint of a single-layer sheet"`

	// Workers is the number of tracing goroutines. Zero uses GOMAXPROCS.
	Workers int `toml:"workers" long:"workers" description:"tracing goroutines (default: all CPUs)"`

	// Strict turns outlines that had to be force-closed into errors.
	Strict bool `toml:"strict" long:"strict" description:"fail on outlines that do not close"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Subfamily:          "Regular",
		FontVersion:        "Version 1.0",
		GlyphWidth:         16,
		GlyphHeight:        16,
		Baseline:           2,
		TrimPad:            1,
		UnderlineThickness: 1,
		Scale:              10,
	}
}

// LoadOptions reads a TOML file on top of DefaultOptions. Unknown keys are
// an error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("spritefont: config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("spritefont: config %s: %w", path, err)
	}
	return opts, nil
}

// UnitsPerEm returns the em size in font units: the larger glyph side times
// Scale.
func (o Options) UnitsPerEm() int {
	return max(o.GlyphWidth, o.GlyphHeight) * o.Scale
}

// Validate reports the first option that cannot produce a valid font.
func (o Options) Validate() error {
	bad := func(field, format string, args ...any) error {
		return fmt.Errorf("%w: %s %s", ErrInvalidOption, field, fmt.Sprintf(format, args...))
	}
	switch {
	case o.GlyphWidth <= 0:
		return bad("glyph-width", "must be positive, got %d", o.GlyphWidth)
	case o.GlyphHeight <= 0:
		return bad("glyph-height", "must be positive, got %d", o.GlyphHeight)
	case o.Scale <= 0:
		return bad("scale", "must be positive, got %d", o.Scale)
	case o.UnitsPerEm() < 16 || o.UnitsPerEm() > 16384:
		return bad("scale", "gives %d units per em, want 16..16384", o.UnitsPerEm())
	case o.Baseline < 0 || o.Baseline > o.GlyphHeight:
		return bad("baseline", "must be within 0..%d, got %d", o.GlyphHeight, o.Baseline)
	case o.LineGap < 0:
		return bad("line-gap", "must not be negative, got %d", o.LineGap)
	case o.TrimPad < 0:
		return bad("trim-pad", "must not be negative, got %d", o.TrimPad)
	case o.FontWeight < 0 || o.FontWeight > 1000:
		return bad("font-weight", "must be within 0..1000, got %d", o.FontWeight)
	case o.Workers < 0:
		return bad("workers", "must not be negative, got %d", o.Workers)
	}
	if o.Base != "" {
		if _, ok := sheet.ParseCodepoint(o.Base); !ok {
			return bad("base", "%q is not a U+XXXX codepoint", o.Base)
		}
	}
	return nil
}

// ConverterOption configures a Converter during creation.
//
// Example:
//
//	conv, err := spritefont.NewConverter(opts,
//		spritefont.WithWorkers(4),
//		spritefont.WithStrict(true),
//	)
type ConverterOption func(*converterOptions)

// converterOptions holds the runtime settings that are not part of the
// font description.
type converterOptions struct {
	workers int
	strict  bool
	now     func() time.Time
}

// WithWorkers sets the number of tracing goroutines, overriding
// Options.Workers. Zero or less uses GOMAXPROCS.
func WithWorkers(n int) ConverterOption {
	return func(o *converterOptions) {
		o.workers = n
	}
}

// WithStrict overrides Options.Strict.
func WithStrict(strict bool) ConverterOption {
	return func(o *converterOptions) {
		o.strict = strict
	}
}

// WithClock sets the time source for the font's created and modified
// timestamps. Tests use it for reproducible output.
func WithClock(now func() time.Time) ConverterOption {
	return func(o *converterOptions) {
		if now != nil {
			o.now = now
		}
	}
}
