package object

import (
	"sync"

	"github.com/tomz197/asteroids-arcade/internal/draw"
)

// Explosion tuning.
const (
	ExplosionDuration  = 500.0 // ms
	ExplosionMaxRadius = 30.0
)

// explosionPool reuses Explosion objects to reduce allocations.
var explosionPool = sync.Pool{
	New: func() any {
		return &Explosion{}
	},
}

// Explosion is a short-lived expanding, fading disc. It has no gameplay effect.
type Explosion struct {
	X, Y     float64
	Elapsed  float64 // ms
	Duration float64 // ms
	MaxR     float64
}

// NewExplosion creates an explosion from the pool.
func NewExplosion(x, y float64) *Explosion {
	e := explosionPool.Get().(*Explosion)
	*e = Explosion{
		X:        x,
		Y:        y,
		Duration: ExplosionDuration,
		MaxR:     ExplosionMaxRadius,
	}
	return e
}

// Release returns the explosion to the pool for reuse.
// Should be called when the explosion is removed from the game.
func (e *Explosion) Release() {
	explosionPool.Put(e)
}

// Progress returns how far the explosion has run, clamped to [0, 1].
func (e *Explosion) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return min(max(e.Elapsed/e.Duration, 0), 1)
}

// Done reports whether the explosion has run its full duration.
func (e *Explosion) Done() bool {
	return e.Elapsed >= e.Duration
}

// Update advances the animation.
func (e *Explosion) Update(ctx UpdateContext) (bool, error) {
	e.Elapsed += ctx.Millis()
	return e.Done(), nil
}

// Draw renders the disc growing and fading with progress.
func (e *Explosion) Draw(ctx DrawContext) error {
	p := e.Progress()
	ctx.Surface.Circle(e.X, e.Y, e.MaxR*p, draw.Fade(draw.Orange, 1-p), true)
	return nil
}
