// Package pixbuf provides packed 32-bit pixel buffers for the warp engine.
//
// Every pixel is a single uint32 laid out as 0xAARRGGBB, which is BGRA byte
// order on little-endian machines. Buffers carry a pitch (pixels per row) that
// may exceed the visible width, so camera frames with padded rows can be
// wrapped without copying.
package pixbuf

import "errors"

// Common errors for buffer binding.
var (
	// ErrInvalidDimensions is returned when width or height is out of range.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidPitch is returned when pitch is less than width.
	ErrInvalidPitch = errors.New("pixbuf: pitch smaller than width")

	// ErrDataTooSmall is returned when the pixel slice cannot hold the image.
	ErrDataTooSmall = errors.New("pixbuf: data buffer too small")
)

// MaxDimension is the largest width or height a buffer may have.
// Coordinates are stored in 18.14 fixed point, so dim<<14 must fit an int32.
const MaxDimension = 1 << 16

// Buffer is a rectangular view over packed pixels.
//
// A Buffer does not own its memory: wrapping caller memory and the engine's
// scratch storage both produce the same value type.
type Buffer struct {
	Pix    []uint32
	Width  int
	Height int
	Pitch  int
}

// RequiredLen returns the minimum slice length for the given geometry.
// The last row only needs width pixels, not a full pitch.
func RequiredLen(width, height, pitch int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return pitch*(height-1) + width
}

// Wrap validates caller memory and returns a Buffer over it without copying.
// The caller keeps ownership and must keep pix alive while the Buffer is used.
func Wrap(pix []uint32, width, height, pitch int) (Buffer, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return Buffer{}, ErrInvalidDimensions
	}
	if pitch < width {
		return Buffer{}, ErrInvalidPitch
	}
	if len(pix) < RequiredLen(width, height, pitch) {
		return Buffer{}, ErrDataTooSmall
	}
	return Buffer{Pix: pix, Width: width, Height: height, Pitch: pitch}, nil
}

// New allocates a tightly packed buffer (pitch == width).
func New(width, height int) (Buffer, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return Buffer{}, ErrInvalidDimensions
	}
	return Buffer{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
		Pitch:  width,
	}, nil
}

// IsEmpty reports whether the buffer is unbound.
func (b Buffer) IsEmpty() bool {
	return b.Pix == nil || b.Width == 0 || b.Height == 0
}

// Pixels returns Width*Height, the visible pixel count.
func (b Buffer) Pixels() int {
	return b.Width * b.Height
}

// Row returns the visible pixels of row y.
// Returns nil if y is out of bounds.
func (b Buffer) Row(y int) []uint32 {
	if y < 0 || y >= b.Height {
		return nil
	}
	start := y * b.Pitch
	return b.Pix[start : start+b.Width : start+b.Width]
}

// At returns the pixel at (x, y), or 0 when out of bounds.
func (b Buffer) At(x, y int) uint32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Pitch+x]
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (b Buffer) Set(x, y int, c uint32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pix[y*b.Pitch+x] = c
}

// Fill sets every visible pixel to c. Padding between rows is left alone.
func (b Buffer) Fill(c uint32) {
	for y := range b.Height {
		row := b.Row(y)
		for x := range row {
			row[x] = c
		}
	}
}

// Equal reports whether two buffers have the same size and visible pixels.
// Pitch and padding are ignored.
func (b Buffer) Equal(o Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for y := range b.Height {
		r1, r2 := b.Row(y), o.Row(y)
		for x := range r1 {
			if r1[x] != r2[x] {
				return false
			}
		}
	}
	return true
}

// Pack builds a 0xAARRGGBB pixel from 8-bit channels.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a 0xAARRGGBB pixel into 8-bit channels.
func Unpack(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}
