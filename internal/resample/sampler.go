package resample

import (
	"github.com/gogpu/funhouse/internal/pixbuf"
	"github.com/gogpu/funhouse/internal/warp"
)

// half rounds an 18.14 coordinate to the nearest integer.
const half = warp.One >> 1

// weightShift reduces a 14-bit fraction to a 7-bit weight.
const weightShift = warp.FracBits - WeightBits

// NearestLine copies, for every entry, the source pixel closest to (X, Y).
// Coordinates are clamped by the field, so the rounded position is always
// inside the source.
func NearestLine(dst []uint32, src pixbuf.Buffer, field []warp.Entry) {
	pix := src.Pix
	pitch := src.Pitch
	field = field[:len(dst)]
	for i, e := range field {
		// Rounding maps the clamped last column, MaxCoord(w), back to w-1,
		// keeping a same-size identity warp exact.
		x := int((e.X + half) >> warp.FracBits)
		y := int((e.Y + half) >> warp.FracBits)
		dst[i] = pix[y*pitch+x]
	}
}

// BilinearLine blends the 2x2 source neighbourhood at every entry and adds
// the entry's highlight. The result keeps the alpha of the top-left
// neighbour.
func BilinearLine(dst []uint32, src pixbuf.Buffer, field []warp.Entry) {
	pix := src.Pix
	pitch := src.Pitch
	field = field[:len(dst)]
	for i, e := range field {
		pos := int(e.Y>>warp.FracBits)*pitch + int(e.X>>warp.FracBits)
		wx := uint32(e.X&warp.FracMask) >> weightShift
		wy := uint32(e.Y&warp.FracMask) >> weightShift

		p00 := pix[pos]
		c := Bilerp(p00, pix[pos+1], pix[pos+pitch], pix[pos+pitch+1], wx, wy)
		c = c&colorMask | p00&alphaMask

		if e.Shine > 0 {
			c = AddGray(c, uint32(e.Shine))
		}
		dst[i] = c
	}
}
