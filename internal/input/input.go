package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses (and auto-repeat), never releases, so a key
// stays down for this long after each byte that mentions it.
const keyHoldDuration = 120 * time.Millisecond

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	last    [keyCount]time.Time
	pending []byte // Escape sequence cut off at the end of the previous read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Read drains all available bytes and builds the State at the given instant.
// Keys stay pressed for keyHoldDuration after their last byte so simultaneous
// keys combine. An escape sequence split across reads is held back until the
// rest arrives; a lone ESC counts as Escape once a read brings nothing new.
func (s *Stream) Read(now time.Time) State {
	buf := s.pending
	s.pending = nil
	carried := len(buf)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	stale := len(buf) == carried || s.closed

	var state State
	state.Closed = s.closed

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			k, n, complete := escapeSequence(buf[i:])
			if !complete {
				if !stale {
					s.pending = append([]byte(nil), buf[i:]...)
					break
				}
				k, n = KeyEscape, len(buf)-i
			}
			if k != KeyNone {
				s.last[k] = now
			}
			i += n - 1
			continue
		}

		if b == 0x03 {
			state.Quit = true
			continue
		}
		if k := byteKey(b); k != KeyNone {
			s.last[k] = now
		}
		switch {
		case b == '\n' || b == '\r':
			state.Submit = true
		case b == '\b' || b == 0x7f:
			state.Text = append(state.Text, Backspace)
		case b >= 0x20 && b < 0x7f:
			state.Text = append(state.Text, b)
		}
	}

	for k := KeyNone + 1; k < keyCount; k++ {
		if !s.last[k].IsZero() && now.Sub(s.last[k]) < keyHoldDuration {
			state.keys[k] = true
		}
	}

	return state
}

// escapeSequence decodes the sequence starting with ESC at buf[0]. It returns
// the key it stands for (KeyNone for sequences the game ignores), the number
// of bytes it spans, and whether buf holds all of it. CSI (ESC [ params
// final) and SS3 (ESC O code) sequences are consumed whole; ESC followed by
// anything else is a plain Escape.
func escapeSequence(buf []byte) (k Key, n int, complete bool) {
	if len(buf) < 2 {
		return KeyNone, 0, false
	}
	switch buf[1] {
	case '[':
		j := 2
		for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x3f {
			j++
		}
		if j == len(buf) {
			return KeyNone, 0, false
		}
		if final := buf[j]; final >= 0x40 && final <= 0x7e {
			return arrowKey(final), j + 1, true
		}
		return KeyEscape, 1, true
	case 'O':
		if len(buf) < 3 {
			return KeyNone, 0, false
		}
		if k := arrowKey(buf[2]); k != KeyNone {
			return k, 3, true
		}
	}
	return KeyEscape, 1, true
}

// Reset forgets every held key, so a key used to leave a menu does not
// leak into the next screen.
func Reset(s *Stream) {
	if s == nil {
		return
	}
	s.last = [keyCount]time.Time{}
}

func arrowKey(code byte) Key {
	switch code {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// byteKey maps a single byte onto the logical key it stands for.
func byteKey(b byte) Key {
	switch b {
	case 'a', 'A':
		return KeyA
	case 'd', 'D':
		return KeyD
	case 'w', 'W':
		return KeyW
	case 's', 'S':
		return KeyS
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\b', 0x7f:
		return KeyBackspace
	case '\x1b':
		return KeyEscape
	case '1':
		return Key1
	case '2':
		return Key2
	}
	return KeyNone
}
