package pixbuf

// Scratch is an owned pixel store that is reused across frames.
//
// The backing slice is reallocated only when a request needs more capacity
// than it currently has; shrinking requests reuse the existing allocation.
// Scratch is not safe for concurrent use.
type Scratch struct {
	pix []uint32
}

// Resize returns a tightly packed Buffer of the given size backed by the
// scratch storage. grown reports whether a new allocation was made.
// Pixel contents are unspecified after a resize.
func (s *Scratch) Resize(width, height int) (buf Buffer, grown bool, err error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return Buffer{}, false, ErrInvalidDimensions
	}
	n := width * height
	if cap(s.pix) < n {
		s.pix = make([]uint32, n)
		grown = true
	}
	s.pix = s.pix[:n]
	return Buffer{Pix: s.pix, Width: width, Height: height, Pitch: width}, grown, nil
}

// Cap returns the number of pixels the scratch can hold without growing.
func (s *Scratch) Cap() int {
	return cap(s.pix)
}

// Release drops the backing storage.
func (s *Scratch) Release() {
	s.pix = nil
}
