package funhouse

import (
	"fmt"

	"github.com/gogpu/funhouse/internal/warp"
)

// TransformSpec is a complete transform selection.
type TransformSpec struct {
	Kind Kind `toml:"kind"`

	// Power is the effect intensity.
	Power float32 `toml:"power"`

	// Size is the effect frequency or scale and must be positive.
	Size float32 `toml:"size"`
}

// DefaultTransform returns the selection of a new engine: no displacement.
func DefaultTransform() TransformSpec {
	return TransformSpec{Kind: None, Power: 1, Size: 1}
}

// Validate reports whether the spec can build a field. It fails with
// ErrInvalidParameter for unknown kinds, non-finite values, a non-positive
// size, or a power that is too strong for the kind's highlight model.
func (s TransformSpec) Validate() error {
	if err := s.params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return nil
}

func (s TransformSpec) String() string {
	return fmt.Sprintf("%v(power=%g, size=%g)", s.Kind, s.Power, s.Size)
}

func (s TransformSpec) params() warp.Params {
	return warp.Params{Kind: s.Kind, Power: s.Power, Size: s.Size}
}
