package physics

import "math"

// Wrap folds v into [0, size). A non-positive size leaves v untouched.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// math.Mod of a tiny negative value can round back up to size.
	if v >= size {
		v = 0
	}
	return v
}

// WrapMargin wraps v so an object of the given margin fully leaves one edge
// before it re-enters through the opposite one. The result stays within
// [-margin, size+margin].
func WrapMargin(v, size, margin float64) float64 {
	span := size + margin
	if span <= 0 {
		return v
	}
	for v < -margin {
		v += span
	}
	for v > size+margin {
		v -= span
	}
	return v
}
