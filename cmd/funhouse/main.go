// Command funhouse renders a contact sheet of funhouse-mirror presets.
//
// Every preset warps the same frame (a decoded image or a synthetic test
// card) into its own tile. Tiles render concurrently, one engine per worker.
//
//	funhouse -in face.jpg -size 200x150 -out sheet.png
//	funhouse -presets my.toml -ids 5-7 -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/cpu"
	"golang.org/x/term"

	"github.com/gogpu/funhouse"
	"github.com/gogpu/funhouse/internal/pixbuf"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("funhouse: %v", err)
	}

	if cfg.verbose {
		funhouse.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		log.Printf("funhouse %s: avx2=%v neon=%v", funhouse.Version, cpu.X86.HasAVX2, cpu.ARM64.HasASIMD)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("funhouse: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	table, err := loadTable(cfg)
	if err != nil {
		return err
	}
	if cfg.dump {
		return table.Encode(os.Stdout)
	}

	src, err := loadSource(cfg)
	if err != nil {
		return err
	}
	if err := renderOnce(cfg, src, table); err != nil {
		return err
	}
	if !cfg.watch {
		return nil
	}
	return watchPresets(ctx, cfg.presets, func() {
		table, err := loadTable(cfg)
		if err != nil {
			log.Printf("funhouse: %v", err)
			return
		}
		if err := renderOnce(cfg, src, table); err != nil {
			log.Printf("funhouse: %v", err)
		}
	})
}

func loadTable(cfg config) (*funhouse.PresetTable, error) {
	if cfg.presets == "" {
		return funhouse.DefaultPresets(), nil
	}
	return funhouse.LoadPresets(cfg.presets)
}

func renderOnce(cfg config, src pixbuf.Buffer, table *funhouse.PresetTable) error {
	start := time.Now()
	sheet, err := renderSheet(cfg, src, table)
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.out, sheet); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d) in %v", cfg.out, sheet.Bounds().Dx(), sheet.Bounds().Dy(), time.Since(start).Round(time.Millisecond))
	return nil
}

// renderSheet renders the selected presets and lays them out after the
// unwarped source.
func renderSheet(cfg config, src pixbuf.Buffer, table *funhouse.PresetTable) (*image.RGBA, error) {
	ids := cfg.ids
	if len(ids) == 0 {
		ids = table.IDs()
	}
	tiles, err := renderTiles(cfg, src, table, ids)
	if err != nil {
		return nil, err
	}
	tiles = append([]tile{thumbnail(src, cfg.cellW, cfg.cellH)}, tiles...)
	return composeSheet(tiles, cfg.cols, cfg.cellW, cfg.cellH), nil
}

// writeOutput encodes img as PNG to path, or to stdout for "-".
func writeOutput(path string, img image.Image) error {
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PNG data to a terminal")
		}
		return encodePNG(os.Stdout, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
