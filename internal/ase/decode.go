package ase

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// decoder walks a little-endian byte slice. Reads past the end set err and
// return zero values, so a structure is checked once after it is read.
type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.off+n > len(d.buf) {
		d.err = ErrTruncated
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) skip(n int) { d.take(n) }

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) i16() int16 { return int16(d.u16()) }

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) str() string {
	n := int(d.u16())
	return string(d.take(n))
}

func (d *decoder) header() (*File, error) {
	d.skip(4) // file size
	magic := d.u16()
	frames := int(d.u16())
	width := int(d.u16())
	height := int(d.u16())
	depth := int(d.u16())
	d.skip(4 + 2 + 4 + 4) // flags, speed, reserved
	transparent := d.u8()
	d.skip(3)
	d.skip(2 + 1 + 1 + 2 + 2 + 2 + 2) // colors, pixel ratio, grid
	d.skip(84)
	if d.err != nil {
		return nil, fmt.Errorf("%w: header", d.err)
	}

	if magic != fileMagic {
		return nil, fmt.Errorf("%w: %#04x", ErrInvalidMagic, magic)
	}
	switch depth {
	case 8, 16, 32:
	default:
		return nil, &UnsupportedDepthError{Depth: depth}
	}
	if frames == 0 {
		return nil, ErrNoFrames
	}
	return &File{
		Width:            width,
		Height:           height,
		ColorDepth:       depth,
		Frames:           frames,
		TransparentIndex: transparent,
	}, nil
}

// cel is an image cel waiting for the palette, which may come after it.
type cel struct {
	layer  int
	x, y   int
	w, h   int
	pixels []byte
}

// frame reads the first frame's chunks into f.
func (d *decoder) frame(f *File) error {
	start := d.off
	size := int(d.u32())
	magic := d.u16()
	oldChunks := int(d.u16())
	d.skip(2 + 2) // duration, reserved
	newChunks := int(d.u32())
	if d.err != nil {
		return fmt.Errorf("%w: frame header", d.err)
	}
	if magic != frameMagic {
		return fmt.Errorf("%w: frame %#04x", ErrInvalidMagic, magic)
	}
	if size < frameHeaderSize || start+size > len(d.buf) {
		return fmt.Errorf("%w: frame of %d bytes", ErrTruncated, size)
	}
	chunks := newChunks
	if chunks == 0 {
		chunks = oldChunks
	}

	var cels []cel
	var oldPalette color.Palette
	end := start + size
	for i := 0; i < chunks && d.off < end; i++ {
		chunkStart := d.off
		chunkSize := int(d.u32())
		kind := d.u16()
		if d.err != nil {
			return fmt.Errorf("%w: chunk %d", d.err, i)
		}
		if chunkSize < chunkHeaderSize || chunkStart+chunkSize > end {
			return fmt.Errorf("%w: chunk %d of %d bytes", ErrTruncated, i, chunkSize)
		}
		body := &decoder{buf: d.buf[d.off : chunkStart+chunkSize]}
		d.off = chunkStart + chunkSize

		var err error
		switch kind {
		case chunkLayer:
			err = body.layer(f)
		case chunkCel:
			var c *cel
			c, err = body.cel(f.ColorDepth)
			if c != nil {
				cels = append(cels, *c)
			}
		case chunkPalette:
			err = body.palette(f)
		case chunkOldPalette:
			oldPalette, err = body.oldPalette()
		}
		if err != nil {
			return fmt.Errorf("chunk %#04x: %w", kind, err)
		}
	}
	if f.Palette == nil {
		f.Palette = oldPalette
	}

	for _, l := range f.Layers {
		if l.Type == LayerImage {
			l.Image = image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
		}
	}
	for _, c := range cels {
		if c.layer < 0 || c.layer >= len(f.Layers) || f.Layers[c.layer].Image == nil {
			continue
		}
		f.paint(f.Layers[c.layer], c)
	}
	return nil
}

func (d *decoder) layer(f *File) error {
	flags := LayerFlags(d.u16())
	kind := LayerType(d.u16())
	child := int(d.u16())
	d.skip(2 + 2 + 2) // default size, blend mode
	opacity := d.u8()
	d.skip(3)
	name := d.str()
	if d.err != nil {
		return d.err
	}
	f.Layers = append(f.Layers, &Layer{
		Name:       name,
		Type:       kind,
		Flags:      flags,
		ChildLevel: child,
		Opacity:    opacity,
	})
	return nil
}

// cel returns nil for linked and tilemap cels, which frame 0 never needs.
func (d *decoder) cel(depth int) (*cel, error) {
	layer := int(d.u16())
	x, y := int(d.i16()), int(d.i16())
	d.skip(1) // opacity
	kind := d.u16()
	d.skip(2 + 5) // z-index, reserved
	if d.err != nil {
		return nil, d.err
	}

	switch kind {
	case celRaw, celCompressed:
	case celLinked, celTilemap:
		return nil, nil
	default:
		return nil, fmt.Errorf("ase: unknown cel type %d", kind)
	}

	w, h := int(d.u16()), int(d.u16())
	if d.err != nil {
		return nil, d.err
	}
	want := w * h * depth / 8
	var pixels []byte
	if kind == celRaw {
		pixels = d.take(want)
		if d.err != nil {
			return nil, fmt.Errorf("%w: %dx%d cel", d.err, w, h)
		}
	} else {
		zr, err := zlib.NewReader(bytes.NewReader(d.buf[d.off:]))
		if err != nil {
			return nil, fmt.Errorf("ase: cel data: %w", err)
		}
		pixels = make([]byte, want)
		_, err = io.ReadFull(zr, pixels)
		_ = zr.Close()
		if err != nil {
			return nil, fmt.Errorf("ase: cel data: %w", err)
		}
	}
	return &cel{layer: layer, x: x, y: y, w: w, h: h, pixels: pixels}, nil
}

func (d *decoder) palette(f *File) error {
	size := int(d.u32())
	first := int(d.u32())
	last := int(d.u32())
	d.skip(8)
	if d.err != nil {
		return d.err
	}
	if last < first || last >= size || size > 1<<16 {
		return fmt.Errorf("ase: palette range %d..%d of %d", first, last, size)
	}
	if len(f.Palette) < size {
		grown := make(color.Palette, size)
		copy(grown, f.Palette)
		for i := len(f.Palette); i < size; i++ {
			grown[i] = color.NRGBA{}
		}
		f.Palette = grown
	}
	for i := first; i <= last; i++ {
		flags := d.u16()
		c := color.NRGBA{R: d.u8(), G: d.u8(), B: d.u8(), A: d.u8()}
		if flags&1 != 0 {
			d.str()
		}
		f.Palette[i] = c
	}
	return d.err
}

func (d *decoder) oldPalette() (color.Palette, error) {
	var p color.Palette
	packets := int(d.u16())
	for range packets {
		skip := int(d.u8())
		n := int(d.u8())
		if n == 0 {
			n = 256
		}
		for range skip {
			p = append(p, color.NRGBA{})
		}
		for range n {
			p = append(p, color.NRGBA{R: d.u8(), G: d.u8(), B: d.u8(), A: 0xff})
		}
	}
	return p, d.err
}

// paint copies a cel into its layer canvas, clipped to the canvas.
func (f *File) paint(l *Layer, c cel) {
	dst := l.Image
	bpp := f.ColorDepth / 8
	transparent := f.ColorDepth == 8 && l.Flags&LayerBackground == 0
	for cy := range c.h {
		y := c.y + cy
		if y < 0 || y >= f.Height {
			continue
		}
		for cx := range c.w {
			x := c.x + cx
			if x < 0 || x >= f.Width {
				continue
			}
			px := c.pixels[(cy*c.w+cx)*bpp:]
			var col color.NRGBA
			switch f.ColorDepth {
			case 32:
				col = color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
			case 16:
				col = color.NRGBA{R: px[0], G: px[0], B: px[0], A: px[1]}
			case 8:
				idx := px[0]
				if transparent && idx == f.TransparentIndex {
					continue
				}
				if int(idx) < len(f.Palette) {
					col = color.NRGBAModel.Convert(f.Palette[idx]).(color.NRGBA)
				}
			}
			dst.SetNRGBA(x, y, col)
		}
	}
}
