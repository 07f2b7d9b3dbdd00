package funhouse

import "github.com/gogpu/funhouse/internal/warp"

// Kind selects one of the displacement formulas.
//
// Kind implements encoding.TextMarshaler and encoding.TextUnmarshaler, so it
// appears by name in preset files.
type Kind = warp.Kind

// Transform kinds.
const (
	None           = warp.None
	HorizontalWave = warp.HorizontalWave
	VerticalWave   = warp.VerticalWave
	Bubbles        = warp.Bubbles
	InvBubbles     = warp.InvBubbles
	Spiral         = warp.Spiral
	Ripple         = warp.Ripple
	Spike          = warp.Spike
	Tile           = warp.Tile
	Dither         = warp.Dither
)

// ErrUnknownKind is returned by ParseKind for names that match no Kind.
var ErrUnknownKind = warp.ErrUnknownKind

// Kinds returns every transform kind in declaration order.
func Kinds() []Kind {
	return warp.Kinds()
}

// ParseKind looks a kind up by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	return warp.ParseKind(name)
}
