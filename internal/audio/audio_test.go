package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestToneTable(t *testing.T) {
	tests := []struct {
		cue      Cue
		freq     float64
		wave     Wave
		duration time.Duration
	}{
		{CueLaser, 1000, WaveSaw, 50 * time.Millisecond},
		{CueExplosion, 60, WaveSaw, 300 * time.Millisecond},
		{CueThrust, 200, WaveTriangle, 50 * time.Millisecond},
		{CueAlienLaser, 700, WaveSaw, 100 * time.Millisecond},
		{CueBonus, 600, WaveSine, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			got, ok := ToneFor(tt.cue)
			if !ok {
				t.Fatal("cue not found")
			}
			if got.Freq != tt.freq || got.Wave != tt.wave || got.Duration != tt.duration {
				t.Errorf("ToneFor(%v) = %+v", tt.cue, got)
			}
		})
	}

	if _, ok := ToneFor(Cue(42)); ok {
		t.Error("unknown cue should not resolve to a tone")
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(1000)
	for _, wave := range []Wave{WaveSine, WaveSaw, WaveTriangle} {
		osc := newOscillator(50, 100*time.Millisecond, wave, rate)
		buf := make([][2]float64, 64)

		total := 0
		for {
			n, ok := osc.Stream(buf)
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("wave %d sample %v out of range", wave, buf[i][0])
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != 100 {
			t.Errorf("wave %d streamed %d samples, want 100", wave, total)
		}
	}
}

func TestToneStreamerFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	tone := Tone{Freq: 100, Wave: WaveSaw, Duration: 100 * time.Millisecond, Volume: 1}
	st := tone.Streamer(rate, 1)

	buf := make([][2]float64, 100)
	n, _ := st.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silenced by the attack, got %v", buf[0][0])
	}
	if v := buf[99][0]; v > 0.1 || v < -0.1 {
		t.Errorf("last sample should be nearly silent, got %v", v)
	}
}

func TestBeepSinkThrottlesThrust(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &BeepSink{mixer: &beep.Mixer{}, volume: 0, now: func() time.Time { return now }}

	s.Play(CueThrust)
	s.Play(CueThrust)
	if got := s.mixer.Len(); got != 1 {
		t.Fatalf("mixer has %d streamers, want 1", got)
	}

	now = now.Add(thrustInterval)
	s.Play(CueThrust)
	s.Play(CueLaser)
	s.Play(CueLaser)
	if got := s.mixer.Len(); got != 4 {
		t.Errorf("mixer has %d streamers, want 4", got)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var s Sink = &r
	s.Play(CueLaser)
	s.Play(CueBonus)
	s.Play(CueLaser)

	if r.Count(CueLaser) != 2 || r.Count(CueBonus) != 1 {
		t.Errorf("counts = %v", r.Cues())
	}
	r.Reset()
	if len(r.Cues()) != 0 {
		t.Error("Reset should clear the recording")
	}
	NopSink{}.Play(CueExplosion)
}
