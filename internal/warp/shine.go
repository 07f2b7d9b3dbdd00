package warp

import "github.com/chewxy/math32"

// MaxShine is the largest highlight value a field entry can carry.
const MaxShine = 100

// Light direction for the synthetic highlight, from the upper left.
const (
	lightX = -0.57
	lightY = -0.57
	lightZ = 0.57
)

// Shine derives a highlight in [0, MaxShine] from a displacement.
//
// The displacement is treated as the tilt of a surface normal
// (fx, fy, sqrt(3-fx²-fy²)), lit from the upper left. ok is false when
// fx²+fy² >= 3 and the normal does not exist; the highlight is 0 then.
func Shine(fx, fy float32) (shine int32, ok bool) {
	d2 := fx*fx + fy*fy
	if !(d2 < normalLimit) {
		return 0, false
	}
	fz := math32.Sqrt(normalLimit - d2)

	// |n|² = fx²+fy²+fz² = 3 for every valid displacement.
	inv := 1 / math32.Sqrt(d2+fz*fz)
	dot := (fx*lightX + fy*lightY + fz*lightZ) * inv

	t := max(0, (dot-0.5)*2)
	t = min(1, t*t*t)
	return int32(t * MaxShine), true
}
