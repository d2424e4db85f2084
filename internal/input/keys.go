// Package input turns raw keyboard (and touch) events into the per-frame
// set of held logical keys that the game reads.
package input

// Key is a logical key, independent of the device that produced it.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyA
	KeyD
	KeyW
	KeyS
	Key1
	Key2
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:      "none",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyA:         "a",
	KeyD:         "d",
	KeyW:         "w",
	KeyS:         "s",
	Key1:         "1",
	Key2:         "2",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Bindings maps a ship's four controls onto logical keys.
type Bindings struct {
	Left   Key
	Right  Key
	Thrust Key
	Fire   Key
}

// Default bindings for the two local players.
var (
	PlayerOneBindings = Bindings{Left: KeyLeft, Right: KeyRight, Thrust: KeyUp, Fire: KeySpace}
	PlayerTwoBindings = Bindings{Left: KeyA, Right: KeyD, Thrust: KeyW, Fire: KeyS}
)

// Backspace marks an erased character in State.Text.
const Backspace = '\b'

// Controls is the resolved control state of one ship for one frame.
type Controls struct {
	Left   bool
	Right  bool
	Thrust bool
	Fire   bool
}

// State is the input snapshot for a single frame.
type State struct {
	keys [keyCount]bool

	Text   []byte // Name-entry edits typed this frame, in order: printable bytes and Backspace
	Submit bool   // Enter typed this frame
	Quit   bool   // Ctrl+C
	Closed bool   // Input source is gone (EOF, disconnected session)
}

// Press marks k as held.
func (s *State) Press(k Key) {
	if k > KeyNone && k < keyCount {
		s.keys[k] = true
	}
}

// Pressed reports whether k is held this frame.
func (s State) Pressed(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return s.keys[k]
}

// Controls resolves a ship's bindings against this frame's keys.
func (s State) Controls(b Bindings) Controls {
	return Controls{
		Left:   s.Pressed(b.Left),
		Right:  s.Pressed(b.Right),
		Thrust: s.Pressed(b.Thrust),
		Fire:   s.Pressed(b.Fire),
	}
}

// Any reports whether any key or text arrived this frame.
func (s State) Any() bool {
	if len(s.Text) > 0 || s.Submit {
		return true
	}
	for _, held := range s.keys {
		if held {
			return true
		}
	}
	return false
}
