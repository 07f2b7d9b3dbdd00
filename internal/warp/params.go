package warp

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidParameter is returned for transform parameters that cannot
// produce a well-defined field.
var ErrInvalidParameter = errors.New("warp: invalid parameter")

// normalLimit is the bound on fx²+fy² under which the synthetic normal
// (fx, fy, sqrt(3-fx²-fy²)) exists.
const normalLimit = 3

// maxSourceSpan is the largest source width plus height a field is built for.
// Sizes must keep the pixel multiplier finite at this span.
const maxSourceSpan = 2 << 16

// Params selects a formula and its two knobs.
type Params struct {
	Kind Kind

	// Power scales the displacement (effect intensity).
	Power float32

	// Size is the effect frequency or scale. It must be positive: it also
	// divides the pixel multiplier.
	Size float32
}

// Validate checks Params before a field is built from them.
//
// For kinds whose displacement magnitude is bounded by Power alone, Validate
// also rejects powers that would push fx²+fy² to the normal limit. Spiral has
// no such closed-form bound; see Shine for how its corner pixels are handled.
func (p Params) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: kind %v", ErrInvalidParameter, p.Kind)
	}
	if !finite(p.Power) {
		return fmt.Errorf("%w: power %v is not finite", ErrInvalidParameter, p.Power)
	}
	if !finite(p.Size) || p.Size <= 0 {
		return fmt.Errorf("%w: size %v must be positive", ErrInvalidParameter, p.Size)
	}
	if !finite(pixelMul(maxSourceSpan, p.Size)) {
		return fmt.Errorf("%w: size %v is too small", ErrInvalidParameter, p.Size)
	}
	if b, ok := p.bound(); ok && b >= normalLimit {
		return fmt.Errorf("%w: power %v too strong for %v (fx²+fy² up to %.3g, limit %d)",
			ErrInvalidParameter, p.Power, p.Kind, b, normalLimit)
	}
	return nil
}

// bound returns the supremum of fx²+fy² over the whole image, when it
// depends only on the parameters.
func (p Params) bound() (float32, bool) {
	p2 := p.Power * p.Power
	switch p.Kind {
	case None:
		return 0, true
	case Spike, Ripple, HorizontalWave, VerticalWave:
		return p2, true
	case Dither, Tile, Bubbles, InvBubbles:
		return 2 * p2, true
	default:
		return 0, false
	}
}

// pixelMul scales a unit displacement to fixed-point source units for a
// source whose width plus height is span.
func pixelMul(span int, size float32) float32 {
	return float32(span) * pixelMulScale / size
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
