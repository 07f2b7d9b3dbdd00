// Package resample copies source pixels into a target through a
// displacement field.
//
// The bilinear path works on two 8-bit channels at once. A pixel
// 0xAARRGGBB is split into the lanes 0x00RR00BB and 0x00AA00GG; each lane
// holds a channel in the low byte of a 16-bit slot, so multiplying by a
// weight of at most 128 cannot carry into the neighbouring channel. This
// halves the multiplies at the cost of truncating to 7-bit weights.
package resample

// Weight layout of the packed blend.
const (
	// WeightBits is the precision of interpolation weights.
	WeightBits = 7

	// WeightOne is the full weight. Valid weights are in [0, WeightOne].
	WeightOne = 1 << WeightBits

	// LaneMask selects the two channels of one packed lane.
	LaneMask = 0x00FF00FF

	alphaMask = 0xFF000000
	colorMask = 0x00FFFFFF
)

// Lerp2 blends two packed lanes: a*(WeightOne-w) + b*w, divided by WeightOne.
//
// a and b must already be masked with LaneMask and w must be in
// [0, WeightOne]. Each channel is the truncated per-channel result.
func Lerp2(a, b, w uint32) uint32 {
	return ((a*(WeightOne-w) + b*w) >> WeightBits) & LaneMask
}

// Bilerp interpolates four pixels with weights wx, wy in [0, WeightOne].
// p00 is the top-left pixel, p10 its right neighbour, p01 the pixel below
// and p11 the diagonal. All four channels, alpha included, are blended.
func Bilerp(p00, p10, p01, p11, wx, wy uint32) uint32 {
	rb := Lerp2(
		Lerp2(p00&LaneMask, p10&LaneMask, wx),
		Lerp2(p01&LaneMask, p11&LaneMask, wx),
		wy)
	ag := Lerp2(
		Lerp2((p00>>8)&LaneMask, (p10>>8)&LaneMask, wx),
		Lerp2((p01>>8)&LaneMask, (p11>>8)&LaneMask, wx),
		wy)
	return rb | ag<<8
}

// AddGray brightens c by the gray level g (0-255) in R, G and B, saturating.
//
// Both operands are halved before adding so no channel can carry into the
// next; channels whose halved sum reaches 0x80 are forced to full. The
// result loses the lowest bit of every channel and saturates at 0xFE.
// Alpha is copied from c unchanged.
func AddGray(c, g uint32) uint32 {
	gray := g | g<<8 | g<<16
	t := (c&0xFEFEFEFE)>>1 + (gray&0xFEFEFEFE)>>1
	m := t & 0x80808080
	t |= m - m>>7
	return ((t&0x7F7F7F7F)<<1)&colorMask | c&alphaMask
}
