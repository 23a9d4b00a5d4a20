package spritefont

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	for _, trim := range []bool{false, true} {
		opts := testOptions()
		opts.Trim = trim
		c := newTestConverter(t, opts)

		glyphs, _, err := c.Trace(context.Background(), ringSheet(t))
		require.NoError(t, err)
		data, _, err := c.Convert(context.Background(), ringSheet(t), "x")
		require.NoError(t, err)
		require.NoError(t, Verify(data, glyphs), "trim=%v", trim)
	}
}

func TestVerifyMismatch(t *testing.T) {
	c := newTestConverter(t, testOptions())
	glyphs, _, err := c.Trace(context.Background(), ringSheet(t))
	require.NoError(t, err)
	data, _, err := c.Convert(context.Background(), ringSheet(t), "x")
	require.NoError(t, err)

	t.Run("advance", func(t *testing.T) {
		bad := append([]Glyph(nil), glyphs...)
		bad[0].Advance++
		var verr *VerifyError
		require.ErrorAs(t, Verify(data, bad), &verr)
		assert.Equal(t, "sfnt", verr.Parser)
		assert.Contains(t, verr.Reason, "advance")
	})

	t.Run("codepoint", func(t *testing.T) {
		bad := append([]Glyph(nil), glyphs...)
		bad[0].Codepoint = 'Z'
		var verr *VerifyError
		require.ErrorAs(t, Verify(data, bad), &verr)
		assert.Contains(t, verr.Reason, "maps to glyph 0")
	})

	t.Run("glyph count", func(t *testing.T) {
		var verr *VerifyError
		require.ErrorAs(t, Verify(data, nil), &verr)
		assert.Equal(t, "4 glyphs, want 3", verr.Reason)
	})

	t.Run("repeated codepoint", func(t *testing.T) {
		repeated := append(append([]Glyph(nil), glyphs...), glyphs[0])
		require.NoError(t, Verify(data, repeated))
	})

	t.Run("garbage", func(t *testing.T) {
		var verr *VerifyError
		require.ErrorAs(t, Verify([]byte("not a font"), glyphs), &verr)
		assert.Contains(t, verr.Error(), "spritefont: verify (sfnt)")
	})
}
