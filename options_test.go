package spritefont

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 16, o.GlyphWidth)
	assert.Equal(t, 16, o.GlyphHeight)
	assert.Equal(t, 2, o.Baseline)
	assert.Equal(t, 10, o.Scale)
	assert.Equal(t, 1, o.TrimPad)
	assert.Equal(t, 1, o.UnderlineThickness)
	assert.Equal(t, "Version 1.0", o.FontVersion)
	assert.Equal(t, "Regular", o.Subfamily)
	assert.False(t, o.Trim)
	assert.Equal(t, 160, o.UnitsPerEm())
	require.NoError(t, o.Validate())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		field  string
	}{
		{"zero width", func(o *Options) { o.GlyphWidth = 0 }, "glyph-width"},
		{"negative height", func(o *Options) { o.GlyphHeight = -1 }, "glyph-height"},
		{"zero scale", func(o *Options) { o.Scale = 0 }, "scale"},
		{"em too small", func(o *Options) { o.GlyphWidth, o.GlyphHeight, o.Scale = 3, 3, 1 }, "scale"},
		{"em too large", func(o *Options) { o.Scale = 2000 }, "scale"},
		{"baseline below cell", func(o *Options) { o.Baseline = 17 }, "baseline"},
		{"negative baseline", func(o *Options) { o.Baseline = -1 }, "baseline"},
		{"negative line gap", func(o *Options) { o.LineGap = -2 }, "line-gap"},
		{"negative pad", func(o *Options) { o.TrimPad = -1 }, "trim-pad"},
		{"heavy weight", func(o *Options) { o.FontWeight = 1200 }, "font-weight"},
		{"negative workers", func(o *Options) { o.Workers = -3 }, "workers"},
		{"bad base", func(o *Options) { o.Base = "0041" }, "base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			err := o.Validate()
			require.ErrorIs(t, err, ErrInvalidOption)
			assert.Contains(t, err.Error(), tt.field)

			_, err = NewConverter(o)
			require.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("overrides defaults", func(t *testing.T) {
		o, err := LoadOptions(write("font.toml", `
family = "Pico"
subfamily = "Bold"
glyph-width = 8
glyph-height = 12
trim = true
base = "U+0041"
workers = 2
`))
		require.NoError(t, err)
		assert.Equal(t, "Pico", o.Family)
		assert.Equal(t, "Bold", o.Subfamily)
		assert.Equal(t, 8, o.GlyphWidth)
		assert.Equal(t, 12, o.GlyphHeight)
		assert.True(t, o.Trim)
		assert.Equal(t, "U+0041", o.Base)
		assert.Equal(t, 2, o.Workers)
		assert.Equal(t, 10, o.Scale, "unset keys keep their default")
		assert.Equal(t, 2, o.Baseline)
		require.NoError(t, o.Validate())
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadOptions(write("typo.toml", "glyph-widht = 8\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "typo.toml")
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := LoadOptions(write("type.toml", "scale = \"big\"\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOptions(filepath.Join(dir, "none.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConverterOptions(t *testing.T) {
	o := DefaultOptions()
	o.Workers = 3
	o.Strict = true

	c, err := NewConverter(o)
	require.NoError(t, err)
	assert.Equal(t, 3, c.cfg.workers)
	assert.True(t, c.cfg.strict)
	assert.True(t, c.tracer.Strict)
	assert.NotNil(t, c.cfg.now)

	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	c, err = NewConverter(o, WithWorkers(1), WithStrict(false), WithClock(func() time.Time { return when }))
	require.NoError(t, err)
	assert.Equal(t, 1, c.cfg.workers)
	assert.False(t, c.tracer.Strict)
	assert.Equal(t, when, c.cfg.now())
	assert.Equal(t, o, c.Options())

	c, err = NewConverter(o, WithClock(nil))
	require.NoError(t, err)
	assert.NotNil(t, c.cfg.now, "a nil clock keeps the default")
}
