package main

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/funhouse"
)

// config is the parsed command line.
type config struct {
	in      string
	srcW    int
	srcH    int
	cellW   int
	cellH   int
	presets string
	ids     []int
	quality string
	rotate  bool
	flip    bool
	cols    int
	out     string
	workers int
	seed    uint64
	verbose bool
	watch   bool
	dump    bool
}

var errUsage = errors.New("usage")

// maxTiles bounds how many presets one contact sheet renders.
const maxTiles = 1024

func parseFlags(args []string) (config, error) {
	var (
		cfg   config
		src   string
		cell  string
		ids   string
		flags = flag.NewFlagSet("funhouse", flag.ContinueOnError)
	)
	flags.StringVar(&cfg.in, "in", "", "input image (png, jpeg, gif, bmp, tiff, webp); synthetic test card if empty")
	flags.StringVar(&src, "src", "320x240", "size of the synthetic test card")
	flags.StringVar(&cell, "size", "160x120", "size of each warped tile")
	flags.StringVar(&cfg.presets, "presets", "", "TOML file with preset overrides")
	flags.StringVar(&ids, "ids", "", "preset ids to render, e.g. 1,3,5-7 (default all)")
	flags.StringVar(&cfg.quality, "quality", "auto", "sampling: auto, nearest or bilinear")
	flags.BoolVar(&cfg.rotate, "rotate", false, "rotate the input by 90 degrees first")
	flags.BoolVar(&cfg.flip, "flip", false, "mirror the rotated input vertically")
	flags.IntVar(&cfg.cols, "cols", 4, "tiles per contact sheet row")
	flags.StringVar(&cfg.out, "out", "funhouse.png", "output PNG, - for stdout")
	flags.IntVar(&cfg.workers, "workers", 0, "render workers (default GOMAXPROCS)")
	flags.Uint64Var(&cfg.seed, "seed", 1, "dither seed")
	flags.BoolVar(&cfg.verbose, "v", false, "log engine diagnostics to stderr")
	flags.BoolVar(&cfg.watch, "watch", false, "re-render whenever the presets file changes")
	flags.BoolVar(&cfg.dump, "dump-presets", false, "print the effective preset table as TOML and exit")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}

	var err error
	if cfg.srcW, cfg.srcH, err = parseSize(src); err != nil {
		return config{}, fmt.Errorf("-src: %w", err)
	}
	if cfg.cellW, cfg.cellH, err = parseSize(cell); err != nil {
		return config{}, fmt.Errorf("-size: %w", err)
	}
	if cfg.ids, err = parseIDs(ids); err != nil {
		return config{}, fmt.Errorf("-ids: %w", err)
	}
	if _, err := cfg.highQuality(); err != nil {
		return config{}, err
	}
	if cfg.cols < 1 {
		return config{}, fmt.Errorf("%w: -cols must be positive", errUsage)
	}
	if cfg.watch && cfg.presets == "" {
		return config{}, fmt.Errorf("%w: -watch needs -presets", errUsage)
	}
	if cfg.in, err = homedir.Expand(cfg.in); err != nil {
		return config{}, err
	}
	if cfg.presets, err = homedir.Expand(cfg.presets); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// highQuality resolves -quality for the tile width.
func (c config) highQuality() (bool, error) {
	switch strings.ToLower(c.quality) {
	case "auto":
		return funhouse.HighQualityFor(c.cellW), nil
	case "nearest", "low":
		return false, nil
	case "bilinear", "high":
		return true, nil
	}
	return false, fmt.Errorf("%w: unknown -quality %q", errUsage, c.quality)
}

func (c config) sourceOptions() []funhouse.SourceOption {
	if !c.rotate {
		return nil
	}
	opts := []funhouse.SourceOption{funhouse.WithRotate90()}
	if c.flip {
		opts = append(opts, funhouse.WithFlipY())
	}
	return opts
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: size %q is not WxH", errUsage, s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", errUsage, ws)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", errUsage, hs)
	}
	if w < 2 || h < 2 {
		return 0, 0, fmt.Errorf("%w: size %dx%d is smaller than 2x2", errUsage, w, h)
	}
	return w, h, nil
}

// parseIDs parses a comma separated list of ids and inclusive ranges.
// The result is sorted without duplicates; an empty string yields nil.
func parseIDs(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q", errUsage, part)
		}
		last := first
		if isRange {
			if last, err = strconv.Atoi(hi); err != nil || last < first {
				return nil, fmt.Errorf("%w: range %q", errUsage, part)
			}
		}
		if last-first >= maxTiles-len(ids) {
			return nil, fmt.Errorf("%w: more than %d ids", errUsage, maxTiles)
		}
		for id := first; id <= last; id++ {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}
