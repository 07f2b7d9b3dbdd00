// Package warp generates displacement fields for the funhouse mirror.
//
// A field maps every target pixel to an 18.14 fixed-point source coordinate
// and a highlight value. Each Kind is a pure formula
// (normalized position, power, size) -> (fx, fy) looked up in a table; Build
// turns the unit displacement into source coordinates and clamps them so a
// bilinear sampler never reads outside the source.
//
// Fields are expensive to build (one trig evaluation per pixel) and cheap to
// apply. Rebuild only when the parameters or the buffer sizes change.
package warp
