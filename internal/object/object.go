// Package object contains the game entities: ships, bullets, asteroids,
// alien ships and explosions.
package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.State
	Screen  Screen
	Spawner Spawner
	Audio   audio.Sink
	Rand    *rand.Rand
	Level   int // Current game level, 1-based
}

// Millis returns the frame's elapsed time in milliseconds, the unit all
// entity rates are expressed in.
func (ctx UpdateContext) Millis() float64 {
	return Millis(ctx.Delta)
}

func (ctx UpdateContext) play(c audio.Cue) {
	if ctx.Audio != nil {
		ctx.Audio.Play(c)
	}
}

func (ctx UpdateContext) spawn(obj Object) {
	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(obj)
	}
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Screen is the logical play area.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the play area.
func (s Screen) Center() (x, y float64) {
	return s.Width / 2, s.Height / 2
}

// WrapPosition wraps x and y around the screen edges into [0,W)x[0,H).
func (s Screen) WrapPosition(x, y *float64) {
	*x = physics.Wrap(*x, s.Width)
	*y = physics.Wrap(*y, s.Height)
}

// WrapPositionMargin wraps an object that may travel margin beyond each edge
// before reappearing on the other side.
func (s Screen) WrapPositionMargin(x, y *float64, margin float64) {
	*x = physics.WrapMargin(*x, s.Width, margin)
	*y = physics.WrapMargin(*y, s.Height, margin)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// randomHeading returns a uniformly random direction in radians.
func randomHeading(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}
