// Package audio turns game events into short synthesised sound cues.
package audio

import (
	"sync"
	"time"
)

// Cue names a sound effect the game can emit.
type Cue int

const (
	CueLaser Cue = iota
	CueExplosion
	CueThrust
	CueAlienLaser
	CueBonus
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueLaser:
		return "laser"
	case CueExplosion:
		return "explosion"
	case CueThrust:
		return "thrust"
	case CueAlienLaser:
		return "alien-laser"
	case CueBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveTriangle
)

// Tone describes the sound played for a cue.
type Tone struct {
	Freq     float64
	Wave     Wave
	Duration time.Duration
	Volume   float64 // Relative gain in [0, 1]
}

var tones = [cueCount]Tone{
	CueLaser:      {Freq: 1000, Wave: WaveSaw, Duration: 50 * time.Millisecond, Volume: 0.3},
	CueExplosion:  {Freq: 60, Wave: WaveSaw, Duration: 300 * time.Millisecond, Volume: 0.4},
	CueThrust:     {Freq: 200, Wave: WaveTriangle, Duration: 50 * time.Millisecond, Volume: 0.2},
	CueAlienLaser: {Freq: 700, Wave: WaveSaw, Duration: 100 * time.Millisecond, Volume: 0.4},
	CueBonus:      {Freq: 600, Wave: WaveSine, Duration: 200 * time.Millisecond, Volume: 0.3},
}

// ToneFor returns the tone for c and false if c is not a known cue.
func ToneFor(c Cue) (Tone, bool) {
	if c < 0 || c >= cueCount {
		return Tone{}, false
	}
	return tones[c], true
}

// Sink receives sound cues. Play must not block the caller.
type Sink interface {
	Play(c Cue)
}

// NopSink discards every cue.
type NopSink struct{}

func (NopSink) Play(Cue) {}

// Recorder is a Sink that remembers the cues it was given.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets all recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = r.cues[:0]
	r.mu.Unlock()
}
