package pixbuf

// Rotate90 copies src into dst rotated by 90 degrees clockwise.
//
// Source row y becomes destination column dst.Width-1-y. Without flipY the
// source row is written top-to-bottom (source x lands on destination row x);
// with flipY it is written bottom-to-top (destination row dst.Height-1-x),
// which mirrors the result vertically. This matches sensors that deliver
// frames sideways, optionally mirrored.
//
// dst must be src.Height wide and src.Width tall; Rotate90 returns
// ErrInvalidDimensions otherwise and leaves dst untouched.
func Rotate90(dst, src Buffer, flipY bool) error {
	if dst.Width != src.Height || dst.Height != src.Width {
		return ErrInvalidDimensions
	}

	pitch := dst.Pitch
	for y := range src.Height {
		row := src.Row(y)
		col := dst.Width - 1 - y
		if !flipY {
			t := col
			for _, c := range row {
				dst.Pix[t] = c
				t += pitch
			}
			continue
		}
		t := col + pitch*(dst.Height-1)
		for _, c := range row {
			dst.Pix[t] = c
			t -= pitch
		}
	}
	return nil
}
