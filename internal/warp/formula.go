package warp

import (
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

const twoPi = 2 * math.Pi

// Point is a target pixel position in the forms the formulas need.
type Point struct {
	// U and V are x/width and y/height, in [0, 1).
	U, V float32

	// NX and NY are U and V remapped to [-1, 1).
	NX, NY float32

	// R is the distance of (NX, NY) from the center.
	R float32
}

// NewPoint builds the Point for pixel (x, y) of a width x height target.
func NewPoint(x, y, width, height int) Point {
	u := float32(x) / float32(width)
	v := float32(y) / float32(height)
	nx := (u - 0.5) * 2
	ny := (v - 0.5) * 2
	return Point{U: u, V: v, NX: nx, NY: ny, R: math32.Sqrt(nx*nx + ny*ny)}
}

// Func computes the displacement (fx, fy) of one target pixel.
// Only Dither reads rnd; every other formula is a pure function.
type Func func(pt Point, power, size float32, rnd *rand.Rand) (fx, fy float32)

var formulas = [kindCount]Func{
	None:           noDisplacement,
	HorizontalWave: horizontalWave,
	VerticalWave:   verticalWave,
	Bubbles:        bubbles,
	InvBubbles:     invBubbles,
	Spiral:         spiral,
	Ripple:         ripple,
	Spike:          spike,
	Tile:           tile,
	Dither:         dither,
}

// Formula returns the displacement function for k.
// Unknown kinds map to the zero displacement.
func Formula(k Kind) Func {
	if !k.IsValid() {
		return noDisplacement
	}
	return formulas[k]
}

func noDisplacement(Point, float32, float32, *rand.Rand) (float32, float32) {
	return 0, 0
}

func dither(_ Point, power, _ float32, rnd *rand.Rand) (float32, float32) {
	fx := rnd.Float32()*2 - 1
	fy := rnd.Float32()*2 - 1
	return fx * power, fy * power
}

func tile(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	fx := pt.U * size
	fy := pt.V * size
	fx -= math32.Floor(fx)
	fy -= math32.Floor(fy)
	return (fx - 0.5) * 2 * power, (fy - 0.5) * 2 * power
}

// radial returns the unit vector from the center towards pt, or zero at
// the exact center where the direction is undefined.
func radial(pt Point) (float32, float32) {
	if pt.R == 0 {
		return 0, 0
	}
	return pt.NX / pt.R, pt.NY / pt.R
}

func spike(pt Point, power, _ float32, _ *rand.Rand) (float32, float32) {
	ux, uy := radial(pt)
	amount := max(0, 1-pt.R) * power
	return ux * amount, uy * amount
}

func ripple(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	ux, uy := radial(pt)
	amount := math32.Sin(pt.R*size*twoPi) * power
	return ux * amount, uy * amount
}

func spiral(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	a := math32.Atan2(pt.NY, pt.NX)
	a += (math.Sqrt2 - pt.R) * 20 * power
	fx := -pt.NX/4 + math32.Sin(a)*pt.R
	fy := -pt.NY/4 + math32.Cos(a)*pt.R
	return fx * size, fy * size
}

func bubbles(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	return math32.Sin(pt.U*twoPi*size) * power, math32.Sin(pt.V*twoPi*size) * power
}

func invBubbles(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	fade := max(0, 1-pt.R*pt.R*pt.R)
	fx := math32.Cos(pt.U*twoPi*size) * power * fade
	fy := math32.Cos(pt.V*twoPi*size) * power * fade
	return fx, fy
}

func verticalWave(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	return 0, math32.Sin(pt.V*twoPi*size) * power
}

func horizontalWave(pt Point, power, size float32, _ *rand.Rand) (float32, float32) {
	return math32.Sin(pt.U*twoPi*size) * power, 0
}
