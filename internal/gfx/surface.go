// Package gfx runs the game in a desktop window with ebiten: a vector
// drawing surface, keyboard and on-screen touch controls, and the screens.
package gfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroids-arcade/internal/draw"
)

const (
	strokeWidth = 1.5
	// Debug font cell size.
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws onto an ebiten image in logical screen coordinates.
// Implements draw.Surface.
type Surface struct {
	dst           *ebiten.Image
	width, height float64

	vertices []ebiten.Vertex
	indices  []uint16
	textBuf  *ebiten.Image // Scratch for coloured text
}

// NewSurface creates a surface for a width x height logical screen.
func NewSurface(width, height float64) *Surface {
	return &Surface{width: width, height: height}
}

// Begin points the surface at the frame's target image.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *Surface) Polygon(points []draw.Point, c color.RGBA, filled bool) {
	if len(points) < 2 || c.A == 0 {
		return
	}
	if !filled || len(points) < 3 {
		for i, p := range points {
			q := points[(i+1)%len(points)]
			vector.StrokeLine(s.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), strokeWidth, c, true)
		}
		return
	}

	var path vector.Path
	for i, p := range points {
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
			continue
		}
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	paintVertices(s.vertices, c)
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:       ebiten.FillRuleNonZero,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
}

func (s *Surface) Circle(x, y, r float64, c color.RGBA, filled bool) {
	if c.A == 0 || r <= 0 {
		return
	}
	if filled {
		vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
		return
	}
	vector.StrokeCircle(s.dst, float32(x), float32(y), float32(r), strokeWidth, c, true)
}

// Text draws s with its baseline near y using the debug font.
func (s *Surface) Text(x, y float64, str string, c color.RGBA, align draw.Align) {
	if str == "" || c.A == 0 {
		return
	}
	left, top := textOrigin(x, y, str, align)
	if c == draw.White {
		ebitenutil.DebugPrintAt(s.dst, str, left, top)
		return
	}

	w := len(str) * glyphWidth
	if s.textBuf == nil || s.textBuf.Bounds().Dx() < w {
		s.textBuf = ebiten.NewImage(max(w, int(s.width)), glyphHeight)
	}
	s.textBuf.Clear()
	ebitenutil.DebugPrintAt(s.textBuf, str, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(left), float64(top))
	op.ColorScale.ScaleWithColor(c)
	s.dst.DrawImage(s.textBuf.SubImage(image.Rect(0, 0, w, glyphHeight)).(*ebiten.Image), op)
}

// textOrigin returns the top-left pixel for text anchored at (x, y).
func textOrigin(x, y float64, s string, align draw.Align) (int, int) {
	w := float64(len(s) * glyphWidth)
	switch align {
	case draw.AlignCenter:
		x -= w / 2
	case draw.AlignRight:
		x -= w
	}
	return int(x), int(y) - glyphHeight*3/4
}

// paintVertices sets every vertex to sample the white pixel tinted by the
// premultiplied colour c.
func paintVertices(vs []ebiten.Vertex, c color.RGBA) {
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}

var _ draw.Surface = (*Surface)(nil)
