// Package ase decodes the first frame of Aseprite (.ase, .aseprite) files
// into one RGBA canvas per layer.
//
// Only what a sprite sheet needs is read: the header, layer chunks, image
// cels and the palette. Tags, slices, user data, tilesets and later frames
// are skipped.
package ase

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// Sentinel errors for the ase package.
var (
	// ErrInvalidMagic is returned when the file or a frame header has the
	// wrong magic number.
	ErrInvalidMagic = errors.New("ase: invalid magic number")

	// ErrTruncated is returned when the data ends inside a structure.
	ErrTruncated = errors.New("ase: truncated data")

	// ErrNoFrames is returned for a file that declares zero frames.
	ErrNoFrames = errors.New("ase: file has no frames")
)

// UnsupportedDepthError is returned for a color depth other than 8, 16 or 32
// bits per pixel.
type UnsupportedDepthError struct {
	Depth int
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("ase: unsupported color depth %d", e.Depth)
}

const (
	fileMagic  = 0xA5E0
	frameMagic = 0xF1FA

	headerSize      = 128
	frameHeaderSize = 16
	chunkHeaderSize = 6
)

// Chunk types.
const (
	chunkOldPalette = 0x0004
	chunkLayer      = 0x2004
	chunkCel        = 0x2005
	chunkPalette    = 0x2019
)

// Cel types.
const (
	celRaw        = 0
	celLinked     = 1
	celCompressed = 2
	celTilemap    = 3
)

// LayerType tells image layers from groups and tilemaps.
type LayerType uint16

// Layer types.
const (
	LayerImage   LayerType = 0
	LayerGroup   LayerType = 1
	LayerTilemap LayerType = 2
)

// LayerFlags is the bit set stored with each layer.
type LayerFlags uint16

// Layer flags.
const (
	LayerVisible    LayerFlags = 1 << 0
	LayerEditable   LayerFlags = 1 << 1
	LayerLocked     LayerFlags = 1 << 2
	LayerBackground LayerFlags = 1 << 3
)

// Layer is one layer of the first frame.
type Layer struct {
	Name       string
	Type       LayerType
	Flags      LayerFlags
	ChildLevel int
	Opacity    uint8

	// Image is the layer's canvas-sized pixels. It is nil for group and
	// tilemap layers.
	Image *image.NRGBA
}

// Visible reports whether the layer's visibility flag is set.
func (l *Layer) Visible() bool { return l.Flags&LayerVisible != 0 }

// File is a decoded Aseprite document.
type File struct {
	Width      int
	Height     int
	ColorDepth int
	Frames     int

	// TransparentIndex is the palette entry treated as transparent in
	// indexed sprites, except on background layers.
	TransparentIndex uint8

	Palette color.Palette
	Layers  []*Layer
}

// Decode reads an Aseprite document from r.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ase: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses an Aseprite document held in memory.
func DecodeBytes(data []byte) (*File, error) {
	d := &decoder{buf: data}
	f, err := d.header()
	if err != nil {
		return nil, err
	}
	if err := d.frame(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Composite flattens the visible image layers bottom to top.
func (f *File) Composite() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	hidden := -1
	for _, l := range f.Layers {
		if hidden >= 0 && l.ChildLevel > hidden {
			continue
		}
		hidden = -1
		if !l.Visible() {
			hidden = l.ChildLevel
			continue
		}
		if l.Image == nil {
			continue
		}
		var mask image.Image
		if l.Opacity < 0xff {
			mask = image.NewUniform(color.Alpha{A: l.Opacity})
		}
		draw.DrawMask(dst, dst.Bounds(), l.Image, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return dst
}

func decodeImage(r io.Reader) (image.Image, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return f.Composite(), nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, fmt.Errorf("%w: header", ErrTruncated)
	}
	d := &decoder{buf: hdr[:]}
	f, err := d.header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: f.Width, Height: f.Height}, nil
}

func init() {
	image.RegisterFormat("aseprite", "????\xe0\xa5", decodeImage, decodeConfig)
}
