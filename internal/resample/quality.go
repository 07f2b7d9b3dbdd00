package resample

import (
	"github.com/gogpu/funhouse/internal/pixbuf"
	"github.com/gogpu/funhouse/internal/warp"
)

// Quality selects the sampler used for each target pixel.
type Quality uint8

const (
	// Nearest copies the closest source pixel. Fast, blocky when magnifying,
	// and it ignores the highlight.
	Nearest Quality = iota

	// Bilinear blends the four surrounding source pixels with 7-bit weights
	// and adds the highlight.
	Bilinear
)

// String returns a string representation of the quality.
func (q Quality) String() string {
	switch q {
	case Nearest:
		return "Nearest"
	case Bilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// LineFunc fills one target row from src using the matching field row.
// dst and field must have the same length.
type LineFunc func(dst []uint32, src pixbuf.Buffer, field []warp.Entry)

// Line returns the row sampler for q. Unknown qualities use Nearest.
func Line(q Quality) LineFunc {
	if q == Bilinear {
		return BilinearLine
	}
	return NearestLine
}
