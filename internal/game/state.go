// Package game holds the world state and the rules that advance it: entity
// updates, collisions, spawning, levels, scoring and the phase machine.
package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Options configures a World. Zero values pick sensible defaults.
type Options struct {
	Width    float64
	Height   float64
	Rand     *rand.Rand // Seeded for deterministic games; time-seeded if nil
	Audio    audio.Sink
	Observer PhaseObserver
	Logger   *log.Logger
}

// World owns every entity and all game-wide counters. Only Step and the
// phase methods mutate it; a World is not safe for concurrent use.
type World struct {
	Screen object.Screen

	Ships      []*object.Ship
	Bullets    []*object.Bullet
	Asteroids  []*object.Asteroid
	Aliens     []*object.AlienShip
	Explosions []*object.Explosion

	Score           int
	Level           int
	NextBonus       int
	AlienTimer      float64 // ms since the last alien spawned
	TransitionTimer float64 // ms left on the level banner

	phase    Phase
	rng      *rand.Rand
	audio    audio.Sink
	observer PhaseObserver
	logger   *log.Logger

	toSpawn    []object.Object      // Objects to add after the current update cycle
	fragments  []*object.Asteroid   // Children of asteroids destroyed this frame
	grid       *physics.SpatialGrid // Broad phase for bullet/asteroid hits
	candidates []int
}

// NewWorld creates a world on the start screen.
func NewWorld(opts Options) *World {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Audio == nil {
		opts.Audio = audio.NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	w := &World{
		Screen:   object.Screen{Width: opts.Width, Height: opts.Height},
		phase:    PhaseStart,
		rng:      opts.Rand,
		audio:    opts.Audio,
		observer: opts.Observer,
		logger:   opts.Logger,
		grid:     physics.NewSpatialGrid(opts.Width, opts.Height, collisionGridCellSize),
	}
	w.reset()
	return w
}

// Phase returns the current phase.
func (w *World) Phase() Phase {
	return w.phase
}

// SetObserver registers the phase observer, replacing any previous one.
func (w *World) SetObserver(o PhaseObserver) {
	w.observer = o
}

// reset clears every entity and counter for a fresh game.
func (w *World) reset() {
	w.Ships = w.Ships[:0]
	w.Bullets = w.Bullets[:0]
	w.Asteroids = w.Asteroids[:0]
	w.Aliens = w.Aliens[:0]
	for _, e := range w.Explosions {
		e.Release()
	}
	w.Explosions = w.Explosions[:0]
	w.toSpawn = w.toSpawn[:0]
	w.fragments = w.fragments[:0]

	w.Score = 0
	w.Level = 1
	w.NextBonus = BonusEvery
	w.AlienTimer = 0
	w.TransitionTimer = 0
}

// placeShips creates the ships for a new game: player one on the left in
// cyan, player two on the right in yellow.
func (w *World) placeShips(players int) {
	h := w.Screen.Height / 2
	w.Ships = append(w.Ships, object.NewShip(w.Screen.Width*0.3, h, draw.Cyan, input.PlayerOneBindings))
	if players == 2 {
		w.Ships = append(w.Ships, object.NewShip(w.Screen.Width*0.7, h, draw.Yellow, input.PlayerTwoBindings))
	}
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned moves all queued objects into their collections.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		switch o := obj.(type) {
		case *object.Bullet:
			w.Bullets = append(w.Bullets, o)
		case *object.Asteroid:
			w.Asteroids = append(w.Asteroids, o)
		case *object.AlienShip:
			w.Aliens = append(w.Aliens, o)
		case *object.Explosion:
			w.Explosions = append(w.Explosions, o)
		case *object.Ship:
			w.Ships = append(w.Ships, o)
		default:
			w.logger.Warn("dropping unknown spawned object", "type", fmt.Sprintf("%T", obj))
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

func (w *World) updateContext(delta time.Duration, in input.State) object.UpdateContext {
	return object.UpdateContext{
		Delta:   delta,
		Input:   in,
		Screen:  w.Screen,
		Spawner: w,
		Audio:   w.audio,
		Rand:    w.rng,
		Level:   w.Level,
	}
}
