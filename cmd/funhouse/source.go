package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/funhouse/internal/pixbuf"
)

// sniffLen is how much of a file filetype needs to recognise it.
const sniffLen = 262

// loadSource returns the frame to warp: the decoded -in image, or a
// synthetic test card.
func loadSource(cfg config) (pixbuf.Buffer, error) {
	if cfg.in == "" {
		return testCard(cfg.srcW, cfg.srcH), nil
	}
	f, err := os.Open(cfg.in)
	if err != nil {
		return pixbuf.Buffer{}, err
	}
	defer f.Close()
	return decodeSource(f, cfg.in)
}

func decodeSource(r io.ReadSeeker, name string) (pixbuf.Buffer, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return pixbuf.Buffer{}, fmt.Errorf("%s: %w", name, err)
	}
	head = head[:n]
	if !filetype.IsImage(head) {
		kind, _ := filetype.Match(head)
		return pixbuf.Buffer{}, fmt.Errorf("%s: not an image (detected %s)", name, kind.Extension)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return pixbuf.Buffer{}, err
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return pixbuf.Buffer{}, fmt.Errorf("%s: %w", name, err)
	}
	buf, err := pixbuf.FromImage(img)
	if err != nil {
		return pixbuf.Buffer{}, fmt.Errorf("%s (%s): %w", name, format, err)
	}
	return buf, nil
}

// testCard draws a colour gradient under a grid, so every kind of
// displacement is visible.
func testCard(w, h int) pixbuf.Buffer {
	buf, _ := pixbuf.New(w, h)
	const cell = 16
	for y := range h {
		for x := range w {
			r := uint8(x * 255 / w)
			g := uint8(y * 255 / h)
			b := uint8(255 - (x+y)*255/(w+h))
			if x%cell == 0 || y%cell == 0 {
				r, g, b = 0xFF, 0xFF, 0xFF
			} else if (x/cell+y/cell)%2 == 0 {
				r, g, b = r/2, g/2, b/2
			}
			buf.Set(x, y, pixbuf.Pack(r, g, b, 0xFF))
		}
	}
	return buf
}
