package spritefont

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/spritefont/internal/cache"
	"github.com/gogpu/spritefont/internal/parallel"
	"github.com/gogpu/spritefont/outline"
	"github.com/gogpu/spritefont/sheet"
)

// Report summarizes a conversion.
type Report struct {
	// Skipped lists the layers whose name carries no codepoint.
	Skipped []string

	// Cells is the number of cells traced; Empty of them had no foreground.
	Cells int
	Empty int

	// Reused counts cells whose mask had already been traced by this
	// Converter.
	Reused int

	// Glyphs is the number of traced glyphs, Duplicates of which repeated
	// an earlier codepoint and were left out of the font.
	Glyphs     int
	Duplicates int

	// Stats sums the stitching events over all cells.
	Stats outline.Stats

	// MaxPoints and MaxContours are the largest per-glyph counts.
	MaxPoints   int
	MaxContours int
}

// outlineCacheSize bounds the number of distinct cell masks a Converter
// remembers.
const outlineCacheSize = 4096

// Converter traces sprite sheets and builds fonts from them. A Converter is
// safe for concurrent use.
type Converter struct {
	opts   Options
	cfg    converterOptions
	tracer outline.Tracer
	traced *cache.Cache[string, outline.Outline]
}

// NewConverter validates opts and creates a Converter.
func NewConverter(opts Options, options ...ConverterOption) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg := converterOptions{
		workers: opts.Workers,
		strict:  opts.Strict,
		now:     time.Now,
	}
	for _, o := range options {
		o(&cfg)
	}
	return &Converter{
		opts:   opts,
		cfg:    cfg,
		tracer: outline.Tracer{Strict: cfg.strict},
		traced: cache.New[string, outline.Outline](outlineCacheSize),
	}, nil
}

// Options returns the options the converter was created with.
func (c *Converter) Options() Options { return c.opts }

type tracedCell struct {
	grid   *outline.Grid
	out    outline.Outline
	reused bool
}

// Trace slices s into cells and traces every cell. Glyphs come back in
// layer, row, column order; empty cells produce none. It fails with a
// *sheet.DimensionError when the sheet is not a whole number of cells, a
// *CellError in strict mode, or ErrNoGlyphs when nothing was drawn.
func (c *Converter) Trace(ctx context.Context, s *sheet.Sheet) ([]Glyph, Report, error) {
	var report Report
	log := Logger()

	cells, skipped, err := s.Cells(c.opts.GlyphWidth, c.opts.GlyphHeight)
	if err != nil {
		return nil, report, err
	}
	report.Skipped = skipped
	report.Cells = len(cells)
	for _, name := range skipped {
		log.Debug("spritefont: skipping layer", "layer", name)
	}

	pool := parallel.NewWorkerPool(c.cfg.workers)
	defer pool.Close()

	traced, err := parallel.Map(ctx, pool, cells, func(_ context.Context, _ int, cell sheet.Cell) (tracedCell, error) {
		g := s.Grid(cell)
		key := g.Key()
		if out, ok := c.traced.Get(key); ok {
			return tracedCell{grid: g, out: out, reused: true}, nil
		}
		out, err := c.tracer.Trace(g)
		if err != nil {
			return tracedCell{}, &CellError{
				Layer:     s.Layers[cell.Layer].Name,
				Row:       cell.Row,
				Col:       cell.Col,
				Codepoint: cell.Codepoint,
				Err:       err,
			}
		}
		c.traced.Put(key, out)
		return tracedCell{grid: g, out: out}, nil
	})
	if err != nil {
		return nil, report, err
	}

	var glyphs []Glyph
	for i, t := range traced {
		cell := cells[i]
		layer := s.Layers[cell.Layer].Name
		report.Stats.Add(t.out.Stats)
		if t.reused {
			report.Reused++
		}
		if t.out.Stats.Forced > 0 {
			log.Warn("spritefont: outline force-closed",
				"layer", layer, "codepoint", fmt.Sprintf("U+%04X", cell.Codepoint),
				"walks", t.out.Stats.Forced)
		}
		if t.out.Empty() {
			report.Empty++
			continue
		}

		g := c.opts.newGlyph(cell, layer, t.grid, t.out)
		report.MaxPoints = max(report.MaxPoints, t.out.PointCount())
		report.MaxContours = max(report.MaxContours, t.out.ContourCount())
		log.Debug("spritefont: glyph",
			"name", g.Name, "layer", layer, "row", cell.Row, "col", cell.Col,
			"contours", t.out.ContourCount(), "points", t.out.PointCount(),
			"advance", g.Advance)
		glyphs = append(glyphs, g)
	}
	report.Glyphs = len(glyphs)

	log.Info("spritefont: sheet traced",
		"cells", report.Cells,
		"glyphs", report.Glyphs,
		"empty", report.Empty,
		"reused", report.Reused,
		"skippedLayers", len(report.Skipped),
		"splits", report.Stats.Splits,
		"forced", report.Stats.Forced,
		"maxPoints", report.MaxPoints,
		"maxContours", report.MaxContours)
	if len(glyphs) == 0 {
		return nil, report, ErrNoGlyphs
	}
	return glyphs, report, nil
}

// Encode builds the font for glyphs with Build and serializes it.
func (c *Converter) Encode(glyphs []Glyph, family string) ([]byte, error) {
	f, err := c.Build(glyphs, family)
	if err != nil {
		return nil, err
	}
	data, err := f.Encode()
	if err != nil {
		return nil, fmt.Errorf("spritefont: encode: %w", err)
	}
	Logger().Info("spritefont: font built",
		"family", f.Names.Family,
		"glyphs", len(f.Glyphs),
		"bytes", len(data))
	return data, nil
}

// Convert traces s and encodes the font. family names the font unless
// Options.Family is set.
func (c *Converter) Convert(ctx context.Context, s *sheet.Sheet, family string) ([]byte, Report, error) {
	glyphs, report, err := c.Trace(ctx, s)
	if err != nil {
		return nil, report, err
	}
	_, dropped := dedupe(glyphs)
	report.Duplicates = len(dropped)

	data, err := c.Encode(glyphs, family)
	if err != nil {
		return nil, report, err
	}
	return data, report, nil
}

// LoadSheet reads the sheet at path. Options.Base renames the layer of a
// single-layer sheet.
func (c *Converter) LoadSheet(path string) (*sheet.Sheet, error) {
	s, err := sheet.Load(path)
	if err != nil {
		return nil, err
	}
	if c.opts.Base != "" && len(s.Layers) == 1 {
		s.Layers[0].Name = c.opts.Base
	}
	return s, nil
}

// ConvertFile loads the sheet at path with LoadSheet and converts it. The
// file name without extension is the default family name.
func (c *Converter) ConvertFile(ctx context.Context, path string) ([]byte, Report, error) {
	s, err := c.LoadSheet(path)
	if err != nil {
		return nil, Report{}, err
	}
	return c.Convert(ctx, s, Stem(path))
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logDuplicates(dropped []Glyph) {
	for _, g := range dropped {
		Logger().Warn("spritefont: duplicate codepoint, keeping the first glyph",
			"codepoint", fmt.Sprintf("U+%04X", g.Codepoint), "layer", g.Layer,
			"row", g.Row, "col", g.Col)
	}
}
