package draw

import (
	"bytes"
	"image"
	"image/color"
	imagedraw "image/draw"
	"math"
	"strings"
	"testing"
)

func TestFadeAndFlatten(t *testing.T) {
	half := Fade(Orange, 0.5)
	if half.A != 128 {
		t.Fatalf("Fade alpha = %d, want 128", half.A)
	}
	flat := flatten(half)
	if flat.A != 255 || flat.R != 128 || flat.B != 0 {
		t.Errorf("flatten = %+v", flat)
	}
	if Fade(White, -1).A != 0 || Fade(White, 2).A != 255 {
		t.Error("Fade must clamp opacity to [0, 1]")
	}
}

func TestFadeCompositesOverBlack(t *testing.T) {
	for _, opacity := range []float64{0.02, 0.25, 0.5, 0.9} {
		faded := Fade(Orange, opacity)
		if faded.R > faded.A || faded.G > faded.A || faded.B > faded.A {
			t.Fatalf("Fade(Orange, %v) = %+v is not premultiplied", opacity, faded)
		}

		dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
		imagedraw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, imagedraw.Src)
		imagedraw.Draw(dst, dst.Bounds(), image.NewUniform(faded), image.Point{}, imagedraw.Over)
		got := dst.RGBAAt(0, 0)

		wantR, wantG := 255*opacity, 165*opacity
		if math.Abs(float64(got.R)-wantR) > 1 || math.Abs(float64(got.G)-wantG) > 1 || got.B != 0 {
			t.Errorf("opacity %v over black = %+v, want about R=%.1f G=%.1f", opacity, got, wantR, wantG)
		}
		if flat := flatten(faded); flat.R != got.R || flat.G != got.G || flat.A != 255 {
			t.Errorf("flatten(%+v) = %+v, want %+v", faded, flat, got)
		}
	}
}

func TestFilledPolygonSetsInterior(t *testing.T) {
	c := NewCanvas(10, 5) // 10x10 logical, scale 1
	square := []Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}
	c.Polygon(square, White, true)

	if got, ok := c.At(4, 4); !ok || got != White {
		t.Errorf("interior pixel = %+v, %v", got, ok)
	}
	if _, ok := c.At(8, 8); ok {
		t.Error("pixel outside the polygon should stay empty")
	}

	outline := NewCanvas(10, 5)
	outline.Polygon(square, White, false)
	if _, ok := outline.At(4, 4); ok {
		t.Error("outline polygon should not fill its interior")
	}
	if _, ok := outline.At(2, 4); !ok {
		t.Error("outline polygon should draw its edges")
	}
}

func TestTransparentShapesAreSkipped(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Circle(5, 5, 3, Fade(White, 0), true)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if _, ok := c.At(x, y); ok {
				t.Fatalf("pixel (%d,%d) set by a fully transparent circle", x, y)
			}
		}
	}
}

func TestCircleFill(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Circle(10, 10, 5, Cyan, true)
	if got, ok := c.At(10, 10); !ok || got != Cyan {
		t.Errorf("centre = %+v, %v", got, ok)
	}
	if _, ok := c.At(1, 1); ok {
		t.Error("corner should be outside the circle")
	}
}

func TestRenderEmitsColouredBlocks(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Polygon([]Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}, White, true)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[38;2;255;255;255m") {
		t.Error("expected a truecolor foreground sequence")
	}
	if !strings.ContainsRune(out, BlockFull) {
		t.Error("expected a full block for two stacked pixels of the same colour")
	}
	if !strings.HasSuffix(out, ansiReset) {
		t.Error("render should end with an attribute reset")
	}
}

func TestRenderTextOverlay(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetOffset(2, 1)
	c.Text(0, 0, "Hello", Yellow, AlignRight)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	// Right-aligned at the left edge is clamped to column 1, then offset.
	if !strings.Contains(buf.String(), "\033[2;3H") || !strings.Contains(buf.String(), "Hello") {
		t.Errorf("unexpected output %q", buf.String())
	}

	c.Clear()
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Hello") {
		t.Error("Clear should drop pending text")
	}
}

func TestScaledCanvasLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(96, 32, 960, 640)
	if w, h := c.Size(); w != 960 || h != 640 {
		t.Errorf("Size = %v x %v", w, h)
	}
	col, row := c.LogicalToTerminal(480, 320)
	if col != 49 || row != 17 {
		t.Errorf("LogicalToTerminal centre = (%d,%d), want (49,17)", col, row)
	}

	c.Resize(48, 16)
	if c.TerminalWidth() != 48 || c.TerminalHeight() != 16 {
		t.Error("Resize should update terminal dimensions")
	}
	if w, _ := c.Size(); w != 960 {
		t.Error("Resize must keep the logical size")
	}
}

func TestTransformRotatesAndMoves(t *testing.T) {
	model := []Point{{20, 0}, {-10, 10}}
	got := Transform(nil, model, 100, 50, math.Pi/2)
	want := []Point{{100, 70}, {90, 40}}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestJaggedAndEllipse(t *testing.T) {
	pts := Jagged(nil, 0, 0, 10, []float64{1, 0.8, 1.2, 1})
	if len(pts) != 4 {
		t.Fatalf("len = %d", len(pts))
	}
	if math.Abs(pts[0].X-10) > 1e-9 || math.Abs(pts[2].X+12) > 1e-9 {
		t.Errorf("unexpected vertices %+v", pts)
	}

	ring := Ellipse(nil, 0, 0, 20, 10, 16)
	for _, p := range ring {
		if v := p.X*p.X/400 + p.Y*p.Y/100; math.Abs(v-1) > 1e-9 {
			t.Errorf("point %+v is off the ellipse", p)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 3, 2)
	cw.WriteAt(1, 1, "hi")
	cw.WriteColorAt(2, 2, "x", color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if buf.Len() != 0 {
		t.Fatal("nothing should reach the writer before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[3;4Hhi\033[4;5H\033[38;2;1;2;3mx" + ansiReset
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
