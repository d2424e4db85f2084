package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	defaultVolume = 0.5
	attack        = 2 * time.Millisecond
	release       = 20 * time.Millisecond

	// Thrust is requested every frame while the key is held.
	thrustInterval = 50 * time.Millisecond
)

// oscillator generates a single tone for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	duration int
	wave     Wave
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in and out to avoid clicks.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	return &envelope{
		streamer: s,
		attack:   min(rate.N(attack), total/2),
		release:  min(rate.N(release), total/2),
		total:    total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Streamer returns the shaped stream for a tone, scaled by the tone's own
// volume and the master volume.
func (t Tone) Streamer(rate beep.SampleRate, master float64) beep.Streamer {
	volume := t.Volume * master
	shaped := newEnvelope(newOscillator(t.Freq, t.Duration, t.Wave, rate), t.Duration, rate)
	if volume <= 0 {
		return &effects.Volume{Streamer: shaped, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(volume)}
}

// BeepSink plays cues on the local speaker through a beep mixer.
type BeepSink struct {
	mu         sync.Mutex
	mixer      *beep.Mixer
	volume     float64
	lastThrust time.Time
	now        func() time.Time
}

// NewBeepSink initialises the speaker and starts the mixer.
func NewBeepSink() (*BeepSink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &BeepSink{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
		now:    time.Now,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues the tone for c. Thrust cues closer together than one thrust
// tone are dropped.
func (s *BeepSink) Play(c Cue) {
	tone, ok := ToneFor(c)
	if !ok {
		return
	}

	s.mu.Lock()
	if c == CueThrust {
		now := s.now()
		if now.Sub(s.lastThrust) < thrustInterval {
			s.mu.Unlock()
			return
		}
		s.lastThrust = now
	}
	s.mu.Unlock()

	st := tone.Streamer(sampleRate, s.volume)
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *BeepSink) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
