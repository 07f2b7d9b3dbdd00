package pixbuf

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImageChannelOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 128, B: 64, A: 255})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if buf.Width != 2 || buf.Height != 1 {
		t.Fatalf("FromImage() size = %dx%d, want 2x1", buf.Width, buf.Height)
	}
	if got := buf.At(0, 0); got != 0xFFFF0000 {
		t.Errorf("red pixel = %#08x, want 0xFFFF0000", got)
	}
	if got := buf.At(1, 0); got != 0xFF008040 {
		t.Errorf("green/blue pixel = %#08x, want 0xFF008040", got)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(12, 21, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if got := buf.At(2, 1); got != Pack(1, 2, 3, 255) {
		t.Errorf("At(2, 1) = %#08x, want %#08x", got, Pack(1, 2, 3, 255))
	}
}

func TestToImage(t *testing.T) {
	buf, _ := Wrap([]uint32{0xFF102030, 0, 0x80405060}, 1, 2, 2)
	img := ToImage(buf)

	if img.Bounds() != image.Rect(0, 0, 1, 2) {
		t.Fatalf("ToImage() bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}) {
		t.Errorf("RGBAAt(0, 0) = %v", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 0x40, G: 0x50, B: 0x60, A: 0x80}) {
		t.Errorf("RGBAAt(0, 1) = %v", got)
	}
}
