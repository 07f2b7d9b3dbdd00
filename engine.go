package funhouse

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/funhouse/internal/cache"
	"github.com/gogpu/funhouse/internal/pixbuf"
	"github.com/gogpu/funhouse/internal/resample"
	"github.com/gogpu/funhouse/internal/warp"
)

// ditherStream is the PCG stream paired with the engine seed.
const ditherStream = 0x66756e686f757365

// fieldKey identifies the inputs of a field build.
type fieldKey struct {
	spec     TransformSpec
	src, dst warp.Dims
}

// fieldState tracks whether the field matches the selection and the bound
// buffer sizes.
type fieldState uint8

const (
	stateDirty fieldState = iota
	stateClean
)

func (s fieldState) String() string {
	if s == stateClean {
		return "Clean"
	}
	return "Dirty"
}

// Engine warps a bound source buffer into a bound target buffer.
//
// Typical per-frame use:
//
//	e := funhouse.New()
//	_ = e.SetTarget(screen, 320, 240, 320)       // once, or on resize
//	_ = e.SetMirrorTransform(funhouse.Spiral, 0.5, 1)
//	for frame := range frames {
//	    _ = e.SetSource(frame.Pix, frame.W, frame.H, frame.Stride)
//	    if err := e.Process(); err != nil { ... }
//	}
//
// Setters only record what changed; the displacement field is regenerated
// lazily by the next Process. An Engine is not safe for concurrent use.
// Use one Engine per goroutine.
type Engine struct {
	source  pixbuf.Buffer
	target  pixbuf.Buffer
	scratch pixbuf.Scratch
	field   *warp.Field

	// fields keeps recently built fields when WithFieldCache is set.
	// Cached fields are never rebuilt in place.
	fields *cache.LRU[fieldKey, *warp.Field]

	// selected is the latest accepted spec; current built the field.
	selected TransformSpec
	current  TransformSpec
	state    fieldState

	quality resample.Quality
	seed    uint64

	// rebuilds counts successful field generations.
	rebuilds int
}

// New creates an engine with no buffers bound.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		field:    new(warp.Field),
		selected: o.transform,
		state:    stateDirty,
		seed:     o.seed,
	}
	if o.fieldCache > 0 {
		e.fields = cache.New[fieldKey, *warp.Field](o.fieldCache)
	}
	e.SetHighQuality(o.highQuality)
	return e
}

// SetSource binds the frame to warp.
//
// Without options the engine reads pix directly on every Process; the caller
// must keep it alive and unchanged while it is bound. With WithRotate90 the
// frame is copied, rotated, into engine-owned memory and pix may be reused
// immediately.
//
// A nil pix unbinds the source. Invalid geometry returns ErrInvalidDimensions
// or ErrInvalidBuffer and keeps the previous binding. Sources must be at
// least 2x2.
//
// The field is invalidated when the pixel count changes. A frame whose width
// and height are swapped but whose pixel count is equal does not invalidate
// it here; Process detects the stale field and rebuilds it.
func (e *Engine) SetSource(pix []uint32, width, height, pitch int, opts ...SourceOption) error {
	if pix == nil {
		e.source = pixbuf.Buffer{}
		return nil
	}
	var so sourceOptions
	for _, opt := range opts {
		opt(&so)
	}
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: source %dx%d is smaller than 2x2", ErrInvalidDimensions, width, height)
	}
	in, err := pixbuf.Wrap(pix, width, height, pitch)
	if err != nil {
		return bindError("bind source", err)
	}

	next := in
	if so.rotate {
		buf, grown, err := e.scratch.Resize(height, width)
		if err != nil {
			return bindError("rotate source", err)
		}
		if grown {
			Logger().Debug("funhouse: scratch grown",
				"width", buf.Width, "height", buf.Height)
		}
		if err := pixbuf.Rotate90(buf, in, so.flipY); err != nil {
			return bindError("rotate source", err)
		}
		next = buf
	}

	if next.Pixels() != e.source.Pixels() {
		e.state = stateDirty
	}
	e.source = next
	return nil
}

// SetTarget binds the buffer that Process writes to. The caller keeps
// ownership. A nil pix unbinds the target.
//
// Binding a target whose width or height differs from the previous one
// discards the field immediately.
func (e *Engine) SetTarget(pix []uint32, width, height, pitch int) error {
	if pix == nil {
		e.target = pixbuf.Buffer{}
		return nil
	}
	buf, err := pixbuf.Wrap(pix, width, height, pitch)
	if err != nil {
		return bindError("bind target", err)
	}
	if buf.Width != e.target.Width || buf.Height != e.target.Height {
		if e.field.Len() > 0 {
			Logger().Debug("funhouse: target resized, field discarded",
				"from", warp.Dims{W: e.target.Width, H: e.target.Height},
				"to", warp.Dims{W: width, H: height})
		}
		e.discardField()
		e.state = stateDirty
	}
	e.target = buf
	return nil
}

// SetHighQuality selects bilinear sampling with highlights (true) or
// nearest-neighbour sampling (false). It does not invalidate the field.
func (e *Engine) SetHighQuality(hq bool) {
	if hq {
		e.quality = resample.Bilinear
	} else {
		e.quality = resample.Nearest
	}
}

// HighQuality reports whether bilinear sampling is selected.
func (e *Engine) HighQuality() bool {
	return e.quality == resample.Bilinear
}

// SetMirrorTransform selects a transform. See SetTransform.
func (e *Engine) SetMirrorTransform(kind Kind, power, size float32) error {
	return e.SetTransform(TransformSpec{Kind: kind, Power: power, Size: size})
}

// SetTransform records spec as the selection without computing anything.
// The field is regenerated by the next Process if spec differs from the
// previous selection. An invalid spec returns ErrInvalidParameter and leaves
// the selection unchanged.
func (e *Engine) SetTransform(spec TransformSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if spec != e.selected {
		e.selected = spec
		e.state = stateDirty
	}
	return nil
}

// Transform returns the selected transform.
func (e *Engine) Transform() TransformSpec {
	return e.selected
}

// Process warps the bound source into the bound target, regenerating the
// field first if needed.
//
// It returns ErrNotReady when a buffer is unbound and a wrapped
// ErrInvalidParameter when the field cannot be built. The target is only
// written when Process succeeds. Calling Process again with nothing changed
// produces the same target.
func (e *Engine) Process() error {
	if e.source.IsEmpty() || e.target.IsEmpty() {
		return ErrNotReady
	}
	if err := e.prepare(); err != nil {
		return err
	}

	line := resample.Line(e.quality)
	for y := range e.target.Height {
		line(e.target.Row(y), e.source, e.field.Row(y))
	}
	return nil
}

// prepare makes sure the field matches the selection and both buffer sizes.
func (e *Engine) prepare() error {
	src := warp.Dims{W: e.source.Width, H: e.source.Height}
	dst := warp.Dims{W: e.target.Width, H: e.target.Height}

	if e.state == stateClean && e.field.Len() > 0 {
		if e.field.Source() == src && e.field.Target() == dst {
			return nil
		}
		Logger().Warn("funhouse: stale field rebuilt",
			"field_source", e.field.Source(), "source", src)
	}
	return e.rebuild(src, dst)
}

func (e *Engine) rebuild(src, dst warp.Dims) error {
	spec := e.selected
	key := fieldKey{spec: spec, src: src, dst: dst}
	if e.fields != nil {
		if f, ok := e.fields.Get(key); ok {
			e.field = f
			e.current = spec
			e.state = stateClean
			Logger().Debug("funhouse: cached field reused",
				"transform", spec, "source", src, "target", dst)
			return nil
		}
		e.field = new(warp.Field)
	}

	rnd := rand.New(rand.NewPCG(e.seed, ditherStream))
	if err := e.field.Build(spec.params(), src, dst, rnd); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	e.current = spec
	e.state = stateClean
	e.rebuilds++
	if e.fields != nil {
		e.fields.Put(key, e.field)
	}

	log := Logger()
	log.Debug("funhouse: field rebuilt",
		"transform", spec, "source", src, "target", dst)
	if n := e.field.Violations(); n > 0 {
		log.Warn("funhouse: pixels outside the highlight model",
			slog.Int("count", n), slog.Any("transform", spec))
	}
	return nil
}

// discardField empties the active field. A cached field is replaced rather
// than reset, so the cache keeps it.
func (e *Engine) discardField() {
	if e.fields != nil {
		e.field = new(warp.Field)
		return
	}
	e.field.Reset()
}

// Reset unbinds both buffers and frees the field, any cached fields and the
// scratch memory.
// The selection and quality are kept.
func (e *Engine) Reset() {
	e.source = pixbuf.Buffer{}
	e.target = pixbuf.Buffer{}
	if e.fields != nil {
		e.fields.Clear()
		e.field = new(warp.Field)
	} else {
		e.field.Release()
	}
	e.scratch.Release()
	e.current = TransformSpec{}
	e.state = stateDirty
}
