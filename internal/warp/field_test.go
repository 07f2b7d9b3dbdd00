package warp

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
)

func TestMaxCoord(t *testing.T) {
	if got := MaxCoord(4); got != 3*One-1 {
		t.Errorf("MaxCoord(4) = %d, want %d", got, 3*One-1)
	}
	if got := MaxCoord(2); got != One-1 {
		t.Errorf("MaxCoord(2) = %d, want %d", got, One-1)
	}
}

func TestFieldIdentity(t *testing.T) {
	var f Field
	err := f.Build(Params{Kind: None, Power: 1, Size: 1}, Dims{4, 4}, Dims{4, 4}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if f.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", f.Len())
	}

	for y := range 4 {
		for x, e := range f.Row(y) {
			wantX := min(int32(x)<<FracBits, MaxCoord(4))
			wantY := min(int32(y)<<FracBits, MaxCoord(4))
			if e.X != wantX || e.Y != wantY {
				t.Errorf("entry(%d, %d) = (%d, %d), want (%d, %d)", x, y, e.X, e.Y, wantX, wantY)
			}
			if e.Shine != 0 {
				t.Errorf("entry(%d, %d).Shine = %d, want 0", x, y, e.Shine)
			}
		}
	}
}

func TestFieldScalesBaseScan(t *testing.T) {
	var f Field
	// 2x2 source stretched over a 4x4 target: half a source pixel per step.
	if err := f.Build(Params{Kind: None, Power: 1, Size: 1}, Dims{2, 2}, Dims{4, 4}, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []int32{0, One / 2, One - 1, One - 1}
	for x, e := range f.Row(0) {
		if e.X != want[x] {
			t.Errorf("Row(0)[%d].X = %d, want %d", x, e.X, want[x])
		}
	}
}

func TestFieldBounds(t *testing.T) {
	sizes := []struct{ src, dst Dims }{
		{Dims{2, 2}, Dims{4, 4}},
		{Dims{4, 4}, Dims{4, 4}},
		{Dims{64, 48}, Dims{32, 40}},
		{Dims{17, 33}, Dims{50, 21}},
	}
	powers := []float32{-0.5, 0.04, 0.5, 1}
	scales := []float32{0.25, 1, 6, 14}

	for _, k := range Kinds() {
		for _, sz := range sizes {
			for _, p := range powers {
				for _, s := range scales {
					var f Field
					params := Params{Kind: k, Power: p, Size: s}
					if err := f.Build(params, sz.src, sz.dst, rand.New(rand.NewPCG(3, 4))); err != nil {
						t.Fatalf("Build(%+v, %v, %v) error = %v", params, sz.src, sz.dst, err)
					}
					maxX, maxY := MaxCoord(sz.src.W), MaxCoord(sz.src.H)
					for i, e := range f.Entries() {
						if e.X < 0 || e.X > maxX || e.Y < 0 || e.Y > maxY {
							t.Fatalf("%+v %v->%v: entry %d = (%d, %d) outside [0,%d]x[0,%d]",
								params, sz.src, sz.dst, i, e.X, e.Y, maxX, maxY)
						}
						if e.Shine < 0 || e.Shine > MaxShine {
							t.Fatalf("%+v: entry %d shine = %d", params, i, e.Shine)
						}
					}
				}
			}
		}
	}
}

func TestFieldHugeOffsetsClamp(t *testing.T) {
	var f Field
	params := Params{Kind: HorizontalWave, Power: 1, Size: 1e-6}
	if err := f.Build(params, Dims{8, 8}, Dims{16, 16}, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for i, e := range f.Entries() {
		if e.X < 0 || e.X > MaxCoord(8) {
			t.Fatalf("entry %d X = %d overflowed the clamp", i, e.X)
		}
	}
}

func TestFieldTinySizeKeepsBaseScan(t *testing.T) {
	var ref, f Field
	if err := ref.Build(Params{Kind: None, Power: 1, Size: 1}, Dims{8, 8}, Dims{8, 8}, nil); err != nil {
		t.Fatal(err)
	}
	for _, k := range []Kind{None, VerticalWave, HorizontalWave} {
		if err := f.Build(Params{Kind: k, Power: 0.5, Size: 1e-20}, Dims{8, 8}, Dims{8, 8}, nil); err != nil {
			t.Fatalf("%v: Build() error = %v", k, err)
		}
		for i, e := range f.Entries() {
			want := ref.Entries()[i]
			if k != HorizontalWave && e.X != want.X {
				t.Fatalf("%v: entry %d X = %d, want base scan %d", k, i, e.X, want.X)
			}
			if k != VerticalWave && e.Y != want.Y {
				t.Fatalf("%v: entry %d Y = %d, want base scan %d", k, i, e.Y, want.Y)
			}
		}
	}
}

func TestOffsetNaN(t *testing.T) {
	base := int32(5 << FracBits)
	if got := offset(base, math32.NaN(), MaxCoord(8)); got != base {
		t.Errorf("offset(NaN) = %d, want %d", got, base)
	}
	if got := offset(base, math32.Inf(-1), MaxCoord(8)); got != 0 {
		t.Errorf("offset(-Inf) = %d, want 0", got)
	}
}

func TestFieldRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		src    Dims
		dst    Dims
	}{
		{"zero size spiral", Params{Kind: Spiral, Power: 0.5, Size: 0}, Dims{8, 8}, Dims{8, 8}},
		{"zero size ripple", Params{Kind: Ripple, Power: 0.6, Size: 0}, Dims{8, 8}, Dims{8, 8}},
		{"zero size none", Params{Kind: None, Power: 1, Size: 0}, Dims{8, 8}, Dims{8, 8}},
		{"negative size", Params{Kind: Tile, Power: 1, Size: -1}, Dims{8, 8}, Dims{8, 8}},
		{"denormal size", Params{Kind: None, Power: 1, Size: 1e-38}, Dims{8, 8}, Dims{8, 8}},
		{"power over limit", Params{Kind: Bubbles, Power: 1.3, Size: 1}, Dims{8, 8}, Dims{8, 8}},
		{"unknown kind", Params{Kind: Kind(99), Power: 1, Size: 1}, Dims{8, 8}, Dims{8, 8}},
		{"1 pixel wide source", Params{Kind: None, Power: 1, Size: 1}, Dims{1, 8}, Dims{8, 8}},
		{"empty target", Params{Kind: None, Power: 1, Size: 1}, Dims{8, 8}, Dims{0, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			if err := f.Build(Params{Kind: None, Power: 1, Size: 1}, Dims{4, 4}, Dims{3, 3}, nil); err != nil {
				t.Fatalf("initial Build() error = %v", err)
			}
			before := append([]Entry(nil), f.Entries()...)

			err := f.Build(tt.params, tt.src, tt.dst, nil)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Build() error = %v, want ErrInvalidParameter", err)
			}
			if f.Len() != len(before) || f.Target() != (Dims{3, 3}) {
				t.Fatal("failed Build modified the field")
			}
			for i := range before {
				if f.Entries()[i] != before[i] {
					t.Fatalf("failed Build modified entry %d", i)
				}
			}
		})
	}
}

func TestFieldDitherDeterministic(t *testing.T) {
	params := Params{Kind: Dither, Power: 0.04, Size: 1}
	build := func(seed uint64) []Entry {
		var f Field
		if err := f.Build(params, Dims{32, 32}, Dims{16, 16}, rand.New(rand.NewPCG(seed, seed))); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return f.Entries()
	}

	a, b, c := build(1), build(1), build(2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs for the same seed", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical dither fields")
	}
}

func TestFieldReusesStorage(t *testing.T) {
	var f Field
	params := Params{Kind: Ripple, Power: 0.6, Size: 4}
	if err := f.Build(params, Dims{16, 16}, Dims{8, 8}, nil); err != nil {
		t.Fatal(err)
	}
	first := &f.Entries()[0]

	if err := f.Build(params, Dims{16, 16}, Dims{4, 4}, nil); err != nil {
		t.Fatal(err)
	}
	if &f.Entries()[0] != first {
		t.Error("smaller Build reallocated the entry slice")
	}
	if f.Len() != 16 || f.Target() != (Dims{4, 4}) {
		t.Errorf("Len() = %d, Target() = %v, want 16, 4x4", f.Len(), f.Target())
	}

	f.Reset()
	if f.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", f.Len())
	}
	f.Release()
	if f.Entries() != nil {
		t.Error("Entries() after Release should be nil")
	}
}

func TestFieldSpiralCornerViolations(t *testing.T) {
	var f Field
	params := Params{Kind: Spiral, Power: 0.5, Size: 1}
	if err := f.Build(params, Dims{320, 240}, Dims{200, 200}, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if f.Violations() == 0 {
		t.Error("expected corner pixels beyond the normal limit for a 200x200 spiral")
	}

	// Small targets never reach the corner where the spiral exceeds the limit.
	if err := f.Build(params, Dims{320, 240}, Dims{32, 32}, nil); err != nil {
		t.Fatal(err)
	}
	if f.Violations() != 0 {
		t.Errorf("Violations() = %d for a 32x32 spiral, want 0", f.Violations())
	}
}

func TestFieldRecordsInputs(t *testing.T) {
	var f Field
	params := Params{Kind: Tile, Power: 1, Size: 14}
	if err := f.Build(params, Dims{10, 20}, Dims{5, 6}, nil); err != nil {
		t.Fatal(err)
	}
	if f.Source() != (Dims{10, 20}) || f.Target() != (Dims{5, 6}) || f.Params() != params {
		t.Errorf("Source, Target, Params = %v, %v, %+v", f.Source(), f.Target(), f.Params())
	}
}
