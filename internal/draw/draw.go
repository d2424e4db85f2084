// Package draw defines the drawing surface the game renders to, and a
// terminal implementation of it built from half-block characters.
package draw

import (
	"image/color"
	"math"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Align controls how Text is anchored horizontally at its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface accepts primitive draw calls in logical screen coordinates.
// Implementations decide how the primitives reach the screen.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (width, height float64)
	// Polygon draws a closed polygon; filled also paints its interior.
	Polygon(points []Point, c color.RGBA, filled bool)
	// Circle draws a circle outline or disc.
	Circle(x, y, radius float64, c color.RGBA, filled bool)
	// Text draws a single line of text with its baseline row at y.
	Text(x, y float64, s string, c color.RGBA, align Align)
}

// Palette used by the game.
var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Lime   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Gray   = color.RGBA{R: 140, G: 140, B: 140, A: 255}
)

// Fade scales every channel of c by opacity in [0, 1]. color.RGBA is
// alpha-premultiplied, so the result stays a valid colour.
func Fade(c color.RGBA, opacity float64) color.RGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	scale := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) * opacity))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// flatten composites c over the black background, yielding an opaque
// colour. The terminal has no alpha. Premultiplied channels already are the
// result over black; a transparent colour stays transparent.
func flatten(c color.RGBA) color.RGBA {
	if c.A != 0 {
		c.A = 255
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
