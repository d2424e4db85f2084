package gfx

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroids-arcade/internal/input"
)

// keyMap maps physical keys onto the game's logical keys.
var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyBackspace:  input.KeyBackspace,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyDigit1:     input.Key1,
	ebiten.KeyDigit2:     input.Key2,
	ebiten.KeyNumpad1:    input.Key1,
	ebiten.KeyNumpad2:    input.Key2,
}

// Button is an on-screen control that holds a key while touched or clicked.
type Button struct {
	Key   input.Key
	Label string
	Rect  image.Rectangle
}

// Contains reports whether the logical point (x, y) is on the button.
func (b Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// TouchButtons lays out player one's controls along the bottom of a
// width x height screen: rotate on the left, thrust and fire on the right.
func TouchButtons(width, height int) []Button {
	const size, gap, margin = 64, 12, 16
	top := height - margin - size
	square := func(left int) image.Rectangle {
		return image.Rect(left, top, left+size, top+size)
	}
	b := input.PlayerOneBindings
	return []Button{
		{Key: b.Left, Label: "<", Rect: square(margin)},
		{Key: b.Right, Label: ">", Rect: square(margin + size + gap)},
		{Key: b.Thrust, Label: "^", Rect: square(width - margin - 2*size - gap)},
		{Key: b.Fire, Label: "*", Rect: square(width - margin - size)},
	}
}

// pressButtons presses the key of every button under one of the pointers.
func pressButtons(st *input.State, buttons []Button, pointers []image.Point) {
	for _, p := range pointers {
		for _, b := range buttons {
			if b.Contains(p.X, p.Y) {
				st.Press(b.Key)
			}
		}
	}
}

// textBytes keeps the printable ASCII characters of typed runes.
func textBytes(dst []byte, runes []rune) []byte {
	for _, r := range runes {
		if r >= ' ' && r < 0x7f {
			dst = append(dst, byte(r))
		}
	}
	return dst
}

// reader polls ebiten's input state once per tick.
type reader struct {
	buttons  []Button
	touchIDs []ebiten.TouchID
	pointers []image.Point
	runes    []rune
	touched  bool // A touch was seen; on-screen buttons are shown from then on
}

// read builds this tick's input state.
func (r *reader) read() input.State {
	var st input.State
	for k, lk := range keyMap {
		if ebiten.IsKeyPressed(k) {
			st.Press(lk)
		}
	}

	r.pointers = r.pointers[:0]
	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	for _, id := range r.touchIDs {
		x, y := ebiten.TouchPosition(id)
		r.pointers = append(r.pointers, image.Pt(x, y))
		r.touched = true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		r.pointers = append(r.pointers, image.Pt(x, y))
	}
	pressButtons(&st, r.buttons, r.pointers)

	r.runes = ebiten.AppendInputChars(r.runes[:0])
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		st.Text = append(st.Text, input.Backspace)
	}
	st.Text = textBytes(st.Text, r.runes)
	st.Submit = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	return st
}
