package ase

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builder assembles a single-frame Aseprite file.
type builder struct {
	width, height, depth int
	transparent          uint8
	chunks               [][]byte
}

func le(vs ...any) []byte {
	var b bytes.Buffer
	for _, v := range vs {
		if s, ok := v.(string); ok {
			_ = binary.Write(&b, binary.LittleEndian, uint16(len(s)))
			b.WriteString(s)
			continue
		}
		_ = binary.Write(&b, binary.LittleEndian, v)
	}
	return b.Bytes()
}

func (b *builder) chunk(kind uint16, body []byte) {
	b.chunks = append(b.chunks, append(le(uint32(len(body)+chunkHeaderSize), kind), body...))
}

func (b *builder) layer(name string, flags LayerFlags, kind LayerType, child int) {
	b.chunk(chunkLayer, le(uint16(flags), uint16(kind), uint16(child),
		uint16(0), uint16(0), uint16(0), uint8(0xff), [3]byte{}, name))
}

func (b *builder) rawCel(layer, x, y, w, h int, pixels []byte) {
	b.chunk(chunkCel, append(le(uint16(layer), int16(x), int16(y), uint8(0xff),
		uint16(celRaw), int16(0), [5]byte{}, uint16(w), uint16(h)), pixels...))
}

func (b *builder) zlibCel(layer, x, y, w, h int, pixels []byte) {
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	_, _ = zw.Write(pixels)
	_ = zw.Close()
	b.chunk(chunkCel, append(le(uint16(layer), int16(x), int16(y), uint8(0xff),
		uint16(celCompressed), int16(0), [5]byte{}, uint16(w), uint16(h)), z.Bytes()...))
}

func (b *builder) palette(colors ...color.NRGBA) {
	body := le(uint32(len(colors)), uint32(0), uint32(len(colors)-1), [8]byte{})
	for _, c := range colors {
		body = append(body, le(uint16(0), c.R, c.G, c.B, c.A)...)
	}
	b.chunk(chunkPalette, body)
}

func (b *builder) bytes() []byte {
	var frame []byte
	for _, c := range b.chunks {
		frame = append(frame, c...)
	}
	frameHdr := le(uint32(frameHeaderSize+len(frame)), uint16(frameMagic),
		uint16(len(b.chunks)), uint16(100), [2]byte{}, uint32(len(b.chunks)))

	depth := b.depth
	if depth == 0 {
		depth = 32
	}
	hdr := le(uint32(0), uint16(fileMagic), uint16(1), uint16(b.width), uint16(b.height),
		uint16(depth), uint32(1), uint16(100), uint32(0), uint32(0),
		b.transparent, [3]byte{}, uint16(0), uint8(1), uint8(1),
		int16(0), int16(0), uint16(16), uint16(16), [84]byte{})

	out := append(hdr, frameHdr...)
	out = append(out, frame...)
	binary.LittleEndian.PutUint32(out, uint32(len(out)))
	return out
}

func TestDecodeRGBA(t *testing.T) {
	b := &builder{width: 4, height: 2}
	b.layer("U+0041", LayerVisible, LayerImage, 0)
	b.layer("notes", LayerVisible, LayerImage, 0)
	b.rawCel(0, 1, 0, 2, 1, []byte{
		255, 0, 0, 255,
		0, 255, 0, 128,
	})
	b.zlibCel(1, 3, 1, 1, 1, []byte{0, 0, 255, 255})

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, 32, f.ColorDepth)
	require.Len(t, f.Layers, 2)

	l := f.Layers[0]
	assert.Equal(t, "U+0041", l.Name)
	assert.True(t, l.Visible())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, l.Image.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 128}, l.Image.NRGBAAt(2, 0))
	assert.Zero(t, l.Image.NRGBAAt(0, 0).A)
	assert.Zero(t, l.Image.NRGBAAt(3, 1).A, "other layer's cel")

	assert.Equal(t, color.NRGBA{B: 255, A: 255}, f.Layers[1].Image.NRGBAAt(3, 1))
}

func TestDecodeClipsCel(t *testing.T) {
	b := &builder{width: 2, height: 2}
	b.layer("U+0030", LayerVisible, LayerImage, 0)
	px := bytes.Repeat([]byte{9, 9, 9, 255}, 9)
	b.rawCel(0, -1, -1, 3, 3, px)

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	img := f.Layers[0].Image
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	for y := range 2 {
		for x := range 2 {
			assert.Equal(t, uint8(255), img.NRGBAAt(x, y).A)
		}
	}
}

func TestDecodeGrayscale(t *testing.T) {
	b := &builder{width: 2, height: 1, depth: 16}
	b.layer("U+0020", LayerVisible, LayerImage, 0)
	b.rawCel(0, 0, 0, 2, 1, []byte{200, 255, 10, 0})

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	img := f.Layers[0].Image
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, img.NRGBAAt(0, 0))
	assert.Zero(t, img.NRGBAAt(1, 0).A)
}

func TestDecodeIndexed(t *testing.T) {
	b := &builder{width: 3, height: 1, depth: 8, transparent: 0}
	b.layer("bg", LayerVisible|LayerBackground, LayerImage, 0)
	b.layer("U+0061", LayerVisible, LayerImage, 0)
	b.palette(color.NRGBA{A: 255}, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	b.rawCel(0, 0, 0, 3, 1, []byte{0, 0, 0})
	b.rawCel(1, 0, 0, 3, 1, []byte{0, 1, 0})

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	require.Len(t, f.Palette, 2)

	bg := f.Layers[0].Image
	assert.Equal(t, uint8(255), bg.NRGBAAt(0, 0).A, "background layers keep the transparent index")

	glyph := f.Layers[1].Image
	assert.Zero(t, glyph.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), glyph.NRGBAAt(1, 0).A)
	assert.Zero(t, glyph.NRGBAAt(2, 0).A)
}

func TestDecodeGroupLayer(t *testing.T) {
	b := &builder{width: 1, height: 1}
	b.layer("glyphs", LayerVisible, LayerGroup, 0)
	b.layer("U+0041", LayerVisible, LayerImage, 1)
	b.rawCel(1, 0, 0, 1, 1, []byte{1, 2, 3, 255})

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	require.Len(t, f.Layers, 2)
	assert.Nil(t, f.Layers[0].Image)
	assert.Equal(t, 1, f.Layers[1].ChildLevel)
	assert.Equal(t, uint8(255), f.Layers[1].Image.NRGBAAt(0, 0).A)
}

func TestComposite(t *testing.T) {
	b := &builder{width: 2, height: 1}
	b.layer("shown", LayerVisible, LayerImage, 0)
	b.layer("hidden", 0, LayerImage, 0)
	b.rawCel(0, 0, 0, 1, 1, []byte{255, 0, 0, 255})
	b.rawCel(1, 1, 0, 1, 1, []byte{0, 255, 0, 255})

	f, err := DecodeBytes(b.bytes())
	require.NoError(t, err)
	img := f.Composite()
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Zero(t, img.NRGBAAt(1, 0).A)
}

func TestImageDecodeRegistered(t *testing.T) {
	b := &builder{width: 3, height: 2}
	b.layer("U+0041", LayerVisible, LayerImage, 0)
	b.rawCel(0, 0, 0, 1, 1, []byte{1, 2, 3, 255})

	img, format, err := image.Decode(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	assert.Equal(t, "aseprite", format)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	cfg, _, err := image.DecodeConfig(bytes.NewReader(b.bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}

func TestDecodeErrors(t *testing.T) {
	valid := (&builder{width: 1, height: 1}).bytes()

	_, err := DecodeBytes(valid[:40])
	require.ErrorIs(t, err, ErrTruncated)

	bad := append([]byte(nil), valid...)
	bad[4] = 0
	_, err = DecodeBytes(bad)
	require.ErrorIs(t, err, ErrInvalidMagic)

	bad = append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(bad[12:], 24)
	_, err = DecodeBytes(bad)
	var depthErr *UnsupportedDepthError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, 24, depthErr.Depth)

	bad = append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(bad[headerSize+4:], 0x1234)
	_, err = DecodeBytes(bad)
	require.ErrorIs(t, err, ErrInvalidMagic)

	_, err = DecodeBytes(valid[:headerSize+8])
	require.ErrorIs(t, err, ErrTruncated)
}
