package draw

import "math"

// Transform rotates the model-space points by angle and moves them to
// (x, y), writing into dst (which is grown if needed) and returning it.
func Transform(dst, model []Point, x, y, angle float64) []Point {
	if cap(dst) < len(model) {
		dst = make([]Point, len(model))
	}
	dst = dst[:len(model)]

	sin, cos := math.Sincos(angle)
	for i, p := range model {
		dst[i] = Point{
			X: x + p.X*cos - p.Y*sin,
			Y: y + p.X*sin + p.Y*cos,
		}
	}
	return dst
}

// Ellipse approximates an axis-aligned ellipse with n vertices.
func Ellipse(dst []Point, cx, cy, rx, ry float64, n int) []Point {
	return Arc(dst, cx, cy, rx, ry, 0, 2*math.Pi, n)
}

// Arc returns n points along the elliptical arc from start to end (radians).
// Drawn as a polygon, a partial arc closes with a straight chord.
func Arc(dst []Point, cx, cy, rx, ry, start, end float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	if cap(dst) < n {
		dst = make([]Point, n)
	}
	dst = dst[:n]

	full := math.Abs(end-start) >= 2*math.Pi
	steps := float64(n - 1)
	if full {
		steps = float64(n)
	}
	for i := range dst {
		a := start + (end-start)*float64(i)/steps
		dst[i] = Point{X: cx + math.Cos(a)*rx, Y: cy + math.Sin(a)*ry}
	}
	return dst
}

// Jagged builds an irregular ring: vertex i sits at angle i/n of a full turn
// and at radius*jitter[i] from the centre.
func Jagged(dst []Point, cx, cy, radius float64, jitter []float64) []Point {
	n := len(jitter)
	if cap(dst) < n {
		dst = make([]Point, n)
	}
	dst = dst[:n]

	for i, f := range jitter {
		a := float64(i) / float64(n) * 2 * math.Pi
		r := radius * f
		dst[i] = Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r}
	}
	return dst
}
