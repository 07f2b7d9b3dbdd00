package funhouse

import (
	"errors"
	"fmt"

	"github.com/gogpu/funhouse/internal/pixbuf"
)

// Common errors returned by the engine.
var (
	// ErrNotReady is returned by Process when no source or no target is bound.
	// The target is left untouched.
	ErrNotReady = errors.New("funhouse: source or target not bound")

	// ErrInvalidParameter is returned for a transform that cannot produce a
	// well-defined field. The previous selection is kept.
	ErrInvalidParameter = errors.New("funhouse: invalid parameter")

	// ErrInvalidDimensions is returned when a buffer's width or height is out
	// of range. Sources must be at least 2x2.
	ErrInvalidDimensions = errors.New("funhouse: invalid dimensions")

	// ErrInvalidBuffer is returned when a pixel slice is too short for its
	// geometry or its pitch is smaller than its width.
	ErrInvalidBuffer = errors.New("funhouse: invalid buffer")
)

// bindError maps a pixbuf validation error onto the package sentinels.
func bindError(what string, err error) error {
	switch {
	case errors.Is(err, pixbuf.ErrInvalidDimensions):
		return fmt.Errorf("%w: %s", ErrInvalidDimensions, what)
	case errors.Is(err, pixbuf.ErrInvalidPitch):
		return fmt.Errorf("%w: %s: pitch smaller than width", ErrInvalidBuffer, what)
	case errors.Is(err, pixbuf.ErrDataTooSmall):
		return fmt.Errorf("%w: %s: pixel slice too short", ErrInvalidBuffer, what)
	}
	return fmt.Errorf("%w: %s", ErrInvalidBuffer, what)
}
