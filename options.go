package funhouse

// Option configures an Engine during creation.
//
// Example:
//
//	// Bilinear sampling, fixed dither seed
//	e := funhouse.New()
//
//	// Nearest sampling for a large preview
//	e := funhouse.New(funhouse.WithHighQuality(false))
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	highQuality bool
	seed        uint64
	transform   TransformSpec
	fieldCache  int
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		highQuality: true,
		seed:        1,
		transform:   DefaultTransform(),
	}
}

// WithHighQuality selects bilinear sampling with highlights (true, the
// default) or nearest-neighbour sampling without them (false).
func WithHighQuality(hq bool) Option {
	return func(o *options) {
		o.highQuality = hq
	}
}

// WithSeed seeds the generator behind the Dither transform. Engines with the
// same seed produce identical Dither fields for the same parameters and sizes.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithFieldCache keeps up to n previously built fields, so switching back to
// a recent transform at the same sizes skips field generation. Each cached
// field costs 12 bytes per target pixel. The default, 0, keeps only the
// active field.
func WithFieldCache(n int) Option {
	return func(o *options) {
		o.fieldCache = max(n, 0)
	}
}

// WithTransform sets the initial selection. An invalid spec is ignored and
// the engine starts with DefaultTransform.
func WithTransform(spec TransformSpec) Option {
	return func(o *options) {
		if spec.Validate() == nil {
			o.transform = spec
		}
	}
}

// SourceOption selects preprocessing applied by SetSource.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	rotate bool
	flipY  bool
}

// WithRotate90 rotates the source by 90 degrees into engine-owned scratch
// memory, swapping its width and height. Use it for sensors that deliver
// frames sideways.
func WithRotate90() SourceOption {
	return func(o *sourceOptions) {
		o.rotate = true
	}
}

// WithFlipY mirrors the rotated source vertically.
// It has no effect without WithRotate90.
func WithFlipY() SourceOption {
	return func(o *sourceOptions) {
		o.flipY = true
	}
}
