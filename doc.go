// Package funhouse is a real-time funhouse-mirror engine: it bends a video
// frame through a procedural displacement field.
//
// # Overview
//
// An Engine reads a caller-owned source buffer and writes a caller-owned
// target buffer of any size. Pixels are packed uint32 values laid out as
// 0xAARRGGBB (BGRA bytes on little-endian machines). The engine performs no
// I/O and does not retain ownership of either buffer.
//
// # Quick Start
//
//	import "github.com/gogpu/funhouse"
//
//	e := funhouse.New()
//	if err := e.SetTarget(out, 320, 240, 320); err != nil { ... }
//	if err := e.SetMirrorTransform(funhouse.Ripple, 0.6, 4); err != nil { ... }
//
//	// Per frame:
//	if err := e.SetSource(frame, 640, 480, 640); err != nil { ... }
//	if err := e.Process(); err != nil { ... }
//
// # Transforms
//
// A transform is a Kind plus two knobs: Power (intensity) and Size
// (frequency or scale). The displacement field is regenerated only when the
// transform, the target size or the source pixel count changes, so switching
// effects costs one field build and steady-state frames cost one resample.
// PresetTable maps numeric effect ids to transforms and can be overridden
// from TOML.
//
// # Quality
//
// High quality (the default) blends the four nearest source pixels with
// 7-bit weights and adds a specular highlight computed from the slope of the
// displacement. Low quality copies the nearest source pixel and skips the
// highlight. HighQualityFor suggests a setting for a target width.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Field
// coordinates are 18.14 fixed point and always address a pixel that has a
// right and bottom neighbour.
//
// # Logging
//
// The package is silent by default. Use SetLogger to receive rebuild
// diagnostics through log/slog.
package funhouse

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
