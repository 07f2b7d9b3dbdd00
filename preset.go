package funhouse

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// qualityWidthLimit is the widest target that still gets bilinear sampling
// from HighQualityFor.
const qualityWidthLimit = 300

// HighQualityFor reports whether a target of the given width should use
// bilinear sampling. Small previews are cheap enough to filter; full-size
// targets use nearest sampling to keep up with the frame rate.
func HighQualityFor(targetWidth int) bool {
	return targetWidth <= qualityWidthLimit
}

// Preset is a named transform addressed by a numeric effect id.
type Preset struct {
	ID        int
	Name      string
	Transform TransformSpec
}

// PresetTable maps effect ids to transforms. Unknown ids map to None.
// The zero value is an empty table; a PresetTable is not safe for
// concurrent modification.
type PresetTable struct {
	presets map[int]Preset
}

// DefaultPresets returns the built-in effects, ids 0 through 10.
func DefaultPresets() *PresetTable {
	t := &PresetTable{}
	for _, p := range []Preset{
		{0, "none", DefaultTransform()},
		{1, "bubbles", TransformSpec{Bubbles, 0.5, 1}},
		{2, "inverse bubbles", TransformSpec{InvBubbles, 0.5, 1}},
		{3, "vertical wave", TransformSpec{VerticalWave, 0.5, 6}},
		{4, "horizontal wave", TransformSpec{HorizontalWave, 0.5, 6}},
		{5, "spiral", TransformSpec{Spiral, 0.5, 1}},
		{6, "tight spiral", TransformSpec{Spiral, 0.7, 1}},
		{7, "ripple", TransformSpec{Ripple, 0.6, 4}},
		{8, "spike", TransformSpec{Spike, 1, 1}},
		{9, "tiles", TransformSpec{Tile, 1, 14}},
		{10, "dither", TransformSpec{Dither, 0.04, 1}},
	} {
		t.put(p)
	}
	return t
}

func (t *PresetTable) put(p Preset) {
	if t.presets == nil {
		t.presets = make(map[int]Preset)
	}
	t.presets[p.ID] = p
}

// Set adds or replaces a preset. It returns ErrInvalidParameter for an
// invalid transform and leaves the table unchanged.
func (t *PresetTable) Set(p Preset) error {
	if err := p.Transform.Validate(); err != nil {
		return fmt.Errorf("preset %d: %w", p.ID, err)
	}
	t.put(p)
	return nil
}

// Lookup returns the preset registered under id.
func (t *PresetTable) Lookup(id int) (Preset, bool) {
	p, ok := t.presets[id]
	return p, ok
}

// Transform returns the transform of preset id, or DefaultTransform for
// unknown ids.
func (t *PresetTable) Transform(id int) TransformSpec {
	if p, ok := t.presets[id]; ok {
		return p.Transform
	}
	return DefaultTransform()
}

// IDs returns the registered ids in ascending order.
func (t *PresetTable) IDs() []int {
	return slices.Sorted(maps.Keys(t.presets))
}

// Len returns the number of presets.
func (t *PresetTable) Len() int {
	return len(t.presets)
}

// Clone returns an independent copy of the table.
func (t *PresetTable) Clone() *PresetTable {
	return &PresetTable{presets: maps.Clone(t.presets)}
}

// presetFile is the TOML layout of preset overrides:
//
//	[[preset]]
//	id = 5
//	power = 0.3
//
//	[[preset]]
//	id = 11
//	name = "gentle ripple"
//	kind = "ripple"
//	power = 0.2
//	size = 2.0
//
// Omitted fields keep the value of the preset being overridden, or the
// DefaultTransform value for a new id.
type presetFile struct {
	Preset []presetEntry `toml:"preset"`
}

type presetEntry struct {
	ID    *int     `toml:"id"`
	Name  *string  `toml:"name"`
	Kind  *Kind    `toml:"kind"`
	Power *float32 `toml:"power"`
	Size  *float32 `toml:"size"`
}

// DecodePresets reads TOML overrides from r and applies them on top of
// DefaultPresets.
func DecodePresets(r io.Reader) (*PresetTable, error) {
	t := DefaultPresets()
	if err := t.Decode(r); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadPresets is DecodePresets for a file.
func LoadPresets(path string) (*PresetTable, error) {
	var f presetFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("funhouse: presets %s: %w", path, err)
	}
	t := DefaultPresets()
	if err := t.apply(f, md); err != nil {
		return nil, fmt.Errorf("funhouse: presets %s: %w", path, err)
	}
	return t, nil
}

// Decode applies TOML overrides from r. The table is modified only when every
// entry is valid.
func (t *PresetTable) Decode(r io.Reader) error {
	var f presetFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return fmt.Errorf("funhouse: presets: %w", err)
	}
	if err := t.apply(f, md); err != nil {
		return fmt.Errorf("funhouse: presets: %w", err)
	}
	return nil
}

func (t *PresetTable) apply(f presetFile, md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("unknown keys %s", strings.Join(names, ", "))
	}

	next := t.Clone()
	for i, e := range f.Preset {
		if e.ID == nil {
			return fmt.Errorf("preset #%d: missing id", i+1)
		}
		p, ok := next.Lookup(*e.ID)
		if !ok {
			p = Preset{ID: *e.ID, Name: fmt.Sprintf("preset %d", *e.ID), Transform: DefaultTransform()}
		}
		if e.Name != nil {
			p.Name = *e.Name
		}
		if e.Kind != nil {
			p.Transform.Kind = *e.Kind
		}
		if e.Power != nil {
			p.Transform.Power = *e.Power
		}
		if e.Size != nil {
			p.Transform.Size = *e.Size
		}
		if err := next.Set(p); err != nil {
			return err
		}
	}
	t.presets = next.presets
	return nil
}

// Encode writes the whole table as TOML in the layout Decode reads.
func (t *PresetTable) Encode(w io.Writer) error {
	var f struct {
		Preset []presetOut `toml:"preset"`
	}
	for _, id := range t.IDs() {
		p := t.presets[id]
		f.Preset = append(f.Preset, presetOut{
			ID: p.ID, Name: p.Name,
			Kind: p.Transform.Kind, Power: p.Transform.Power, Size: p.Transform.Size,
		})
	}
	return toml.NewEncoder(w).Encode(f)
}

type presetOut struct {
	ID    int     `toml:"id"`
	Name  string  `toml:"name"`
	Kind  Kind    `toml:"kind"`
	Power float32 `toml:"power"`
	Size  float32 `toml:"size"`
}
