package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/funhouse"
	"github.com/gogpu/funhouse/internal/parallel"
	"github.com/gogpu/funhouse/internal/pixbuf"
)

// Contact sheet layout, in pixels.
const (
	gap         = 8
	labelHeight = 16
)

var (
	background = color.RGBA{0x20, 0x20, 0x24, 0xFF}
	labelColor = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
)

// tile is one rendered cell of the sheet.
type tile struct {
	label string
	img   image.Image
}

// renderTiles warps src through every preset in ids, one engine per worker.
func renderTiles(cfg config, src pixbuf.Buffer, table *funhouse.PresetTable, ids []int) ([]tile, error) {
	hq, err := cfg.highQuality()
	if err != nil {
		return nil, err
	}
	pool := parallel.NewPool(cfg.workers, func(int) *funhouse.Engine {
		return funhouse.New(funhouse.WithHighQuality(hq), funhouse.WithSeed(cfg.seed))
	})
	defer pool.Close()

	title := cases.Title(language.English)
	tiles := make([]tile, len(ids))
	errs := make([]error, len(ids))
	jobs := make([]parallel.Job[*funhouse.Engine], len(ids))
	for i, id := range ids {
		jobs[i] = func(e *funhouse.Engine) {
			out, err := warpOne(e, cfg, src, table.Transform(id))
			if err != nil {
				errs[i] = fmt.Errorf("preset %d: %w", id, err)
				return
			}
			name := fmt.Sprintf("preset %d", id)
			if p, ok := table.Lookup(id); ok {
				name = p.Name
			}
			tiles[i] = tile{label: fmt.Sprintf("%d %s", id, title.String(name)), img: pixbuf.ToImage(out)}
		}
	}
	pool.Run(jobs)
	pool.Close()
	st := pool.Stats()
	funhouse.Logger().Debug("tiles rendered",
		"tiles", st.Jobs, "stolen", st.Stolen, "workers", pool.Workers())
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return tiles, nil
}

func warpOne(e *funhouse.Engine, cfg config, src pixbuf.Buffer, spec funhouse.TransformSpec) (pixbuf.Buffer, error) {
	out, err := pixbuf.New(cfg.cellW, cfg.cellH)
	if err != nil {
		return pixbuf.Buffer{}, err
	}
	if err := e.SetSource(src.Pix, src.Width, src.Height, src.Pitch, cfg.sourceOptions()...); err != nil {
		return pixbuf.Buffer{}, err
	}
	if err := e.SetTarget(out.Pix, out.Width, out.Height, out.Pitch); err != nil {
		return pixbuf.Buffer{}, err
	}
	if err := e.SetTransform(spec); err != nil {
		return pixbuf.Buffer{}, err
	}
	if err := e.Process(); err != nil {
		return pixbuf.Buffer{}, err
	}
	return out, nil
}

// thumbnail scales the unwarped source to the tile size.
func thumbnail(src pixbuf.Buffer, w, h int) tile {
	return tile{label: "Original", img: transform.Resize(pixbuf.ToImage(src), w, h, transform.Linear)}
}

// sheetSize returns the contact sheet size for n tiles of w x h in cols
// columns.
func sheetSize(n, cols, w, h int) image.Point {
	cols = min(cols, n)
	rows := (n + cols - 1) / cols
	return image.Pt(
		gap+cols*(w+gap),
		gap+rows*(h+labelHeight+gap),
	)
}

// composeSheet lays tiles out in a grid with a label under each.
func composeSheet(tiles []tile, cols, w, h int) *image.RGBA {
	size := sheetSize(len(tiles), cols, w, h)
	sheet := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i, t := range tiles {
		x := gap + (i%cols)*(w+gap)
		y := gap + (i/cols)*(h+labelHeight+gap)
		r := image.Rect(x, y, x+w, y+h)
		draw.Draw(sheet, r, t.img, t.img.Bounds().Min, draw.Src)

		d := font.Drawer{
			Dst:  sheet,
			Src:  image.NewUniform(labelColor),
			Face: face,
		}
		label := fitLabel(d, t.label, w)
		d.Dot = fixed.P(x+(w-d.MeasureString(label).Round())/2, y+h+labelHeight-3)
		d.DrawString(label)
	}
	return sheet
}

// fitLabel shortens s until it fits in width pixels.
func fitLabel(d font.Drawer, s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && d.MeasureString(string(runes)).Round() > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
