package warp

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Fixed-point layout of field coordinates (18.14).
const (
	// FracBits is the number of fractional bits in a coordinate.
	FracBits = 14

	// One is 1.0 in fixed point.
	One = 1 << FracBits

	// FracMask extracts the fractional part of a coordinate.
	FracMask = One - 1
)

// pixelMulScale converts a unit displacement into fixed-point source units,
// per source pixel of width+height.
const pixelMulScale = 2000

// maxOffset keeps float offsets well inside int64 before conversion.
const maxOffset = 1 << 40

// Dims is a width and height in pixels.
type Dims struct {
	W, H int
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%d", d.W, d.H)
}

// Entry is the displacement record of one target pixel.
type Entry struct {
	// X and Y are 18.14 fixed-point source coordinates,
	// clamped to [0, MaxCoord(dim)].
	X, Y int32

	// Shine is the highlight in [0, MaxShine].
	Shine int32
}

// MaxCoord is the largest fixed-point coordinate on an axis of dim pixels.
// It stays one unit below the last pixel so that a bilinear sample always
// has a right and bottom neighbour.
func MaxCoord(dim int) int32 {
	return int32((dim-1)<<FracBits) - 1
}

// Field is a displacement map, one Entry per target pixel in row-major order.
//
// A Field is valid only for the source size, target size and Params that
// built it. The zero value is an empty field ready for Build.
type Field struct {
	entries []Entry
	src     Dims
	dst     Dims
	params  Params

	// violations counts pixels that missed the normal limit in the last build.
	violations int
}

// Build regenerates the field for params, mapping a dst-sized target onto a
// src-sized source. The entry slice is reused when it is large enough.
//
// Build fails with ErrInvalidParameter before touching the field when params
// are invalid or the source is smaller than 2x2. rnd feeds Dither; a nil rnd
// uses a fixed seed.
//
// The cost is O(dst.W*dst.H) trigonometry; it is not meant to run per frame.
func (f *Field) Build(params Params, src, dst Dims, rnd *rand.Rand) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if src.W < 2 || src.H < 2 {
		return fmt.Errorf("%w: source %v is smaller than 2x2", ErrInvalidParameter, src)
	}
	if dst.W < 1 || dst.H < 1 {
		return fmt.Errorf("%w: target %v is empty", ErrInvalidParameter, dst)
	}
	mul := pixelMul(src.W+src.H, params.Size)
	if !finite(mul) {
		return fmt.Errorf("%w: size %v is too small for source %v", ErrInvalidParameter, params.Size, src)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(1, 2))
	}

	n := dst.W * dst.H
	if cap(f.entries) < n {
		f.entries = make([]Entry, n)
	}
	f.entries = f.entries[:n]

	xInc := int32((src.W << FracBits) / dst.W)
	yInc := int32((src.H << FracBits) / dst.H)
	maxX := MaxCoord(src.W)
	maxY := MaxCoord(src.H)

	fn := Formula(params.Kind)
	violations := 0
	i := 0
	sy := int32(0)
	for y := range dst.H {
		sx := int32(0)
		for x := range dst.W {
			fx, fy := fn(NewPoint(x, y, dst.W, dst.H), params.Power, params.Size, rnd)

			shine, ok := Shine(fx, fy)
			if !ok {
				violations++
			}
			f.entries[i] = Entry{
				X:     offset(sx, fx*mul, maxX),
				Y:     offset(sy, fy*mul, maxY),
				Shine: shine,
			}
			sx += xInc
			i++
		}
		sy += yInc
	}

	f.src = src
	f.dst = dst
	f.params = params
	f.violations = violations
	return nil
}

// offset adds a truncated float displacement to a fixed-point base and
// clamps the result to [0, limit]. A NaN displacement counts as zero.
func offset(base int32, d float32, limit int32) int32 {
	o := float64(d)
	switch {
	case math32.IsNaN(d):
		o = 0
	case o > maxOffset:
		o = maxOffset
	case o < -maxOffset:
		o = -maxOffset
	}
	v := int64(base) + int64(o)
	if v < 0 {
		return 0
	}
	if v > int64(limit) {
		return limit
	}
	return int32(v)
}

// Len returns the number of entries, zero for an empty field.
func (f *Field) Len() int {
	return len(f.entries)
}

// Entries returns all entries in row-major order.
func (f *Field) Entries() []Entry {
	return f.entries
}

// Row returns the entries of target row y.
func (f *Field) Row(y int) []Entry {
	start := y * f.dst.W
	return f.entries[start : start+f.dst.W]
}

// Source returns the source size the field was built for.
func (f *Field) Source() Dims {
	return f.src
}

// Target returns the target size the field was built for.
func (f *Field) Target() Dims {
	return f.dst
}

// Params returns the parameters the field was built from.
func (f *Field) Params() Params {
	return f.params
}

// Violations returns how many pixels of the last build had no valid normal.
// Their highlight is zero; their coordinates are still clamped.
func (f *Field) Violations() int {
	return f.violations
}

// Reset empties the field, keeping its storage for the next Build.
func (f *Field) Reset() {
	f.entries = f.entries[:0]
	f.src = Dims{}
	f.dst = Dims{}
	f.violations = 0
}

// Release empties the field and drops its storage.
func (f *Field) Release() {
	f.Reset()
	f.entries = nil
}
