package warp

import (
	"errors"
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
)

// suggestThreshold is the minimum name similarity for a suggestion.
const suggestThreshold = 0.6

// ErrUnknownKind is returned by ParseKind for names that match no Kind.
var ErrUnknownKind = errors.New("warp: unknown transform kind")

// Kind selects one of the displacement formulas.
type Kind uint8

const (
	// None leaves every pixel in place.
	None Kind = iota

	// HorizontalWave shifts columns sideways along a sine of x.
	HorizontalWave

	// VerticalWave shifts rows up and down along a sine of y.
	VerticalWave

	// Bubbles applies an independent sine per axis, giving a lattice of lenses.
	Bubbles

	// InvBubbles is a cosine lattice that fades out towards the corners.
	InvBubbles

	// Spiral twists the image around its center.
	Spiral

	// Ripple pushes pixels radially along concentric sine rings.
	Ripple

	// Spike pulls the center outwards, strongest in the middle.
	Spike

	// Tile repeats a sawtooth offset so the image breaks into tiles.
	Tile

	// Dither jitters each pixel by a random offset.
	Dither

	// kindCount is the number of kinds (for internal use).
	kindCount
)

var kindNames = [kindCount]string{
	None:           "None",
	HorizontalWave: "HorizontalWave",
	VerticalWave:   "VerticalWave",
	Bubbles:        "Bubbles",
	InvBubbles:     "InvBubbles",
	Spiral:         "Spiral",
	Ripple:         "Ripple",
	Spike:          "Spike",
	Tile:           "Tile",
	Dither:         "Dither",
}

// String returns the kind name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind looks a kind up by name, ignoring case ("spiral", "SPIRAL").
// The error for a near miss names the closest kind.
func ParseKind(name string) (Kind, error) {
	fold := cases.Fold()
	want := fold.String(name)
	for k, n := range kindNames {
		if fold.String(n) == want {
			return Kind(k), nil
		}
	}
	if k, ok := closestKind(want); ok {
		return None, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownKind, name, k)
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// closestKind returns the kind whose case-folded name is most similar to
// folded, if any is similar enough.
func closestKind(folded string) (Kind, bool) {
	fold := cases.Fold()
	metric := metrics.NewLevenshtein()
	best, score := None, 0.0
	for k, n := range kindNames {
		if s := strutil.Similarity(folded, fold.String(n), metric); s > score {
			best, score = Kind(k), s
		}
	}
	return best, score >= suggestThreshold
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
