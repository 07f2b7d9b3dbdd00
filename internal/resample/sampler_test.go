package resample

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/gogpu/funhouse/internal/pixbuf"
	"github.com/gogpu/funhouse/internal/warp"
)

const padding = 0xDEADBEEF

// testSource builds a w x h gradient with two pixels of row padding.
func testSource(w, h int) pixbuf.Buffer {
	pitch := w + 2
	pix := make([]uint32, pitch*h)
	for i := range pix {
		pix[i] = padding
	}
	buf, _ := pixbuf.Wrap(pix, w, h, pitch)
	for y := range h {
		for x := range w {
			buf.Set(x, y, pixbuf.Pack(uint8(x*60), uint8(y*60), uint8(255-x*30), 0xFF))
		}
	}
	return buf
}

func buildField(t *testing.T, p warp.Params, src pixbuf.Buffer, w, h int) *warp.Field {
	t.Helper()
	var f warp.Field
	err := f.Build(p, warp.Dims{W: src.Width, H: src.Height}, warp.Dims{W: w, H: h}, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("Build(%+v) error = %v", p, err)
	}
	return &f
}

func TestQualityString(t *testing.T) {
	if Nearest.String() != "Nearest" || Bilinear.String() != "Bilinear" || Quality(9).String() != "Unknown" {
		t.Error("unexpected Quality.String() values")
	}
}

func TestLineSelectsSampler(t *testing.T) {
	if reflect.ValueOf(Line(Bilinear)).Pointer() != reflect.ValueOf(BilinearLine).Pointer() {
		t.Error("Line(Bilinear) is not BilinearLine")
	}
	for _, q := range []Quality{Nearest, Quality(7)} {
		if reflect.ValueOf(Line(q)).Pointer() != reflect.ValueOf(NearestLine).Pointer() {
			t.Errorf("Line(%v) is not NearestLine", q)
		}
	}
}

func TestNearestLineIdentity(t *testing.T) {
	src := testSource(5, 4)
	f := buildField(t, warp.Params{Kind: warp.None, Power: 1, Size: 1}, src, 5, 4)

	for y := range 4 {
		dst := make([]uint32, 5)
		NearestLine(dst, src, f.Row(y))
		for x, got := range dst {
			if want := src.At(x, y); got != want {
				t.Errorf("dst(%d, %d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
}

func TestNearestLineRoundsClampedEdge(t *testing.T) {
	src := testSource(5, 4)
	field := []warp.Entry{
		{X: warp.MaxCoord(5), Y: warp.MaxCoord(4)},
		{X: 2*warp.One - 1, Y: 0},
		{X: 2*warp.One - half - 1, Y: 0},
	}
	dst := make([]uint32, len(field))
	NearestLine(dst, src, field)
	want := []uint32{src.At(4, 3), src.At(2, 0), src.At(1, 0)}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %#08x, want %#08x", i, dst[i], want[i])
		}
	}
}

func TestNearestLineNeverReadsPadding(t *testing.T) {
	src := testSource(6, 5)
	for _, k := range warp.Kinds() {
		f := buildField(t, warp.Params{Kind: k, Power: 0.5, Size: 3}, src, 9, 7)
		for y := range 7 {
			dst := make([]uint32, 9)
			NearestLine(dst, src, f.Row(y))
			for x, c := range dst {
				if c == padding {
					t.Fatalf("%v: dst(%d, %d) read row padding", k, x, y)
				}
			}
		}
	}
}

func TestBilinearLineSolidColor(t *testing.T) {
	pix := []uint32{0xFFFF0000, 0xFFFF0000, 0xFFFF0000, 0xFFFF0000}
	src, _ := pixbuf.Wrap(pix, 2, 2, 2)
	f := buildField(t, warp.Params{Kind: warp.None, Power: 1, Size: 1}, src, 4, 4)

	for y := range 4 {
		dst := make([]uint32, 4)
		BilinearLine(dst, src, f.Row(y))
		for x, c := range dst {
			if c != 0xFFFF0000 {
				t.Errorf("dst(%d, %d) = %#08x, want 0xFFFF0000", x, y, c)
			}
		}
	}
}

func TestBilinearLineMatchesReference(t *testing.T) {
	src := testSource(7, 6)
	for _, k := range warp.Kinds() {
		f := buildField(t, warp.Params{Kind: k, Power: 0.5, Size: 2}, src, 11, 9)
		for y := range 9 {
			dst := make([]uint32, 11)
			row := f.Row(y)
			BilinearLine(dst, src, row)
			for x, e := range row {
				ix, iy := int(e.X>>warp.FracBits), int(e.Y>>warp.FracBits)
				wx := uint32(e.X&warp.FracMask) >> 7
				wy := uint32(e.Y&warp.FracMask) >> 7
				p00 := src.At(ix, iy)
				want := bilerpRef(p00, src.At(ix+1, iy), src.At(ix, iy+1), src.At(ix+1, iy+1), wx, wy)
				want = want&0x00FFFFFF | p00&0xFF000000
				if e.Shine > 0 {
					want = addGrayRef(want, uint32(e.Shine))
				}
				if dst[x] != want {
					t.Fatalf("%v: dst(%d, %d) = %#08x, want %#08x", k, x, y, dst[x], want)
				}
			}
		}
	}
}

func TestBilinearLineKeepsAlpha(t *testing.T) {
	pix := []uint32{0x10FFFFFF, 0xF0000000, 0xF0000000, 0xF0000000}
	src, _ := pixbuf.Wrap(pix, 2, 2, 2)
	field := []warp.Entry{{X: warp.One / 2, Y: warp.One / 2, Shine: 40}}
	dst := make([]uint32, 1)
	BilinearLine(dst, src, field)
	if dst[0]>>24 != 0x10 {
		t.Errorf("alpha = %#02x, want 0x10 from the top-left neighbour", dst[0]>>24)
	}
}
