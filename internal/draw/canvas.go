package draw

import (
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Half-block characters used to pack two vertical pixels into one cell.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Slightly under a typical 1500 byte MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

type textOverlay struct {
	x, y  float64
	s     string
	c     color.RGBA
	align Align
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// pixels and implements Surface.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x], A == 0 means empty

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets (columns/rows to skip) for centering.
	offsetCol int
	offsetRow int

	texts []textOverlay

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
	circleBuf       []Point
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping (logical height is twice the row count).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]color.RGBA, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and pending text.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalWidth, c.logicalHeight
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the colour at a pixel, with ok false when it is empty or out of range.
func (c *Canvas) At(x, y int) (col color.RGBA, ok bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}, false
	}
	col = c.pixels[y*c.termWidth+x]
	return col, col.A != 0
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col color.RGBA) {
	col = flatten(col)
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed polygon, filling the interior with the scanline
// algorithm when filled is set.
func (c *Canvas) Polygon(points []Point, col color.RGBA, filled bool) {
	if len(points) < 2 || col.A == 0 {
		return
	}
	if filled && len(points) >= 3 {
		c.fillPolygon(points, flatten(col))
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// Circle draws a circle as a polygon whose vertex count follows its size on screen.
func (c *Canvas) Circle(x, y, radius float64, col color.RGBA, filled bool) {
	if radius <= 0 || col.A == 0 {
		return
	}
	px := radius * max(c.scaleX, c.scaleY)
	if px < 1 {
		c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), flatten(col))
		return
	}
	n := min(max(int(px*math.Pi), 8), 64)
	c.circleBuf = Ellipse(c.circleBuf, x, y, radius, radius, n)
	c.Polygon(c.circleBuf, col, filled)
}

// Text records a text overlay, written on top of the pixels by Render.
func (c *Canvas) Text(x, y float64, s string, col color.RGBA, align Align) {
	if s == "" {
		return
	}
	c.texts = append(c.texts, textOverlay{x: x, y: y, s: s, c: col, align: align})
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, col color.RGBA) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render outputs the canvas to the writer using truecolor half-block
// characters, followed by the text overlays.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	var fg, bg color.RGBA
	hasFG, hasBG := false, false
	setFG := func(col color.RGBA) {
		if !hasFG || fg != col {
			writeFG(&c.renderBuf, col)
			fg, hasFG = col, true
		}
	}
	setBG := func(col color.RGBA) {
		if !hasBG || bg != col {
			writeBG(&c.renderBuf, col)
			bg, hasBG = col, true
		}
	}
	clearBG := func() {
		if hasBG {
			c.renderBuf.WriteString("\033[49m")
			hasBG = false
		}
	}

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorAt := -1 // column the terminal cursor sits on, -1 if unknown

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top.A == 0 && bottom.A == 0 {
				continue
			}
			if cursorAt != col {
				moveCursor(&c.renderBuf, col+1+c.offsetCol, row+1+c.offsetRow)
			}

			switch {
			case top.A != 0 && bottom.A != 0 && top == bottom:
				clearBG()
				setFG(top)
				c.renderBuf.WriteRune(BlockFull)
			case top.A != 0 && bottom.A != 0:
				setFG(top)
				setBG(bottom)
				c.renderBuf.WriteRune(BlockUpperHalf)
			case top.A != 0:
				clearBG()
				setFG(top)
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				clearBG()
				setFG(bottom)
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
			cursorAt = col + 1
		}
	}
	c.renderBuf.WriteString(ansiReset)

	for _, t := range c.texts {
		c.renderText(t)
	}
	c.renderBuf.WriteString(ansiReset)

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) renderText(t textOverlay) {
	s := t.s
	n := utf8.RuneCountInString(s)
	if n > c.termWidth {
		s = string([]rune(s)[:c.termWidth])
		n = c.termWidth
	}

	col, row := c.LogicalToTerminal(t.x, t.y)
	switch t.align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n - 1
	}
	col = min(max(col, 1), c.termWidth-n+1)
	row = min(max(row, 1), c.termHeight)

	moveCursor(&c.renderBuf, col+c.offsetCol, row+c.offsetRow)
	writeFG(&c.renderBuf, flatten(t.c))
	c.renderBuf.WriteString("\033[49m")
	c.renderBuf.WriteString(s)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString(ansiReset)
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			moveCursor(&buf, left, top)
			buf.WriteString("┌" + line + "┐")
			moveCursor(&buf, left, bottom)
			buf.WriteString("└" + line + "┘")
		} else {
			moveCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(line)
			moveCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			moveCursor(&buf, left, row)
			buf.WriteString("│")
			moveCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row),
// not counting the centering offset.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
