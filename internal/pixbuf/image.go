package pixbuf

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// FromImage packs any image.Image into a new tightly packed Buffer.
// Channel values are taken from the RGBA (alpha-premultiplied) form of img.
func FromImage(img image.Image) (Buffer, error) {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	buf, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return Buffer{}, err
	}

	for y := range buf.Height {
		off := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		src := rgba.Pix[off : off+buf.Width*4]
		dst := buf.Row(y)
		for x := range dst {
			i := x * 4
			dst[x] = Pack(src[i], src[i+1], src[i+2], src[i+3])
		}
	}
	return buf, nil
}

// ToImage copies the visible pixels of b into a new image.RGBA.
func ToImage(b Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		dst := img.Pix[y*img.Stride : y*img.Stride+b.Width*4]
		for x, c := range b.Row(y) {
			i := x * 4
			dst[i], dst[i+1], dst[i+2], dst[i+3] = Unpack(c)
		}
	}
	return img
}
