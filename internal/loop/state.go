package loop

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
)

// Clock supplies frame timestamps and paces the loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Options configures a Session. Zero values pick sensible defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Store        leaderboard.Store // Nil disables the leaderboard
	Audio        audio.Sink
	Clock        Clock
	Rand         *rand.Rand
	Width        float64 // Logical play-field size
	Height       float64

	// Inactivity warning and disconnect thresholds; zero disables them.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration

	// Shutdown, when closed, shows the shutdown notice and ends the session
	// after ShutdownDisplay.
	Shutdown <-chan struct{}
}

// gameOverState is the results screen.
type gameOverState struct {
	leaderboard.Results
	since time.Time // Start of the current step; gates the restart key
}

// Session runs one terminal game: input, simulation, screens and rendering.
type Session struct {
	world        *game.World
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	clock        Clock
	logger       *log.Logger
	store        leaderboard.Store
	opts         Options

	running   bool
	lastFrame time.Time
	lastInput time.Time
	inactive  bool

	shutdownAt time.Time // Zero until a shutdown was requested

	startBoard      []leaderboard.Entry // Leaderboard shown on the start screen
	over            gameOverState
	pendingGameOver bool
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Width <= 0 {
		opts.Width = game.DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = game.DefaultHeight
	}

	s := &Session{
		writer:       w,
		termSizeFunc: opts.TermSizeFunc,
		clock:        opts.Clock,
		logger:       opts.Logger,
		store:        opts.Store,
		opts:         opts,
		running:      true,
		lastFrame:    opts.Clock.Now(),
		lastInput:    opts.Clock.Now(),
	}
	if r != nil {
		s.inputStream = input.StartStream(r)
	}
	s.world = game.NewWorld(game.Options{
		Width:    opts.Width,
		Height:   opts.Height,
		Rand:     opts.Rand,
		Audio:    opts.Audio,
		Observer: s,
		Logger:   opts.Logger,
	})

	termWidth, termHeight, _ := s.termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	s.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, opts.Width, opts.Height)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)
	return s
}

// World exposes the simulated world.
func (s *Session) World() *game.World {
	return s.world
}

// Running reports whether the session loop should continue.
func (s *Session) Running() bool {
	return s.running
}

// PhaseChanged implements game.PhaseObserver.
func (s *Session) PhaseChanged(from, to game.Phase) {
	if to == game.PhaseGameOver {
		s.pendingGameOver = true
	}
	if to == game.PhaseStart || from == game.PhaseStart {
		input.Reset(s.inputStream)
	}
}
