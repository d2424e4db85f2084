package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/draw"
)

// Asteroid tuning. Speeds are pixels per ms.
const (
	AsteroidRadius       = 40.0
	AsteroidMaxLevel     = 4
	AsteroidFragments    = 2
	AsteroidShrink       = 0.6
	AsteroidImpulse      = 0.05
	asteroidBaseSpeed    = 0.01
	asteroidSpeedJitter  = 0.005
	asteroidLevelSpeedUp = 0.005
	asteroidMinVertices  = 8
	asteroidVertexSpread = 4 // Vertex count is 8..11
	asteroidMinJitter    = 0.8
	asteroidJitterSpread = 0.4 // Per-vertex radius factor is 0.8..1.2
)

// Asteroid is a destructible space rock. Level 1 is the largest.
type Asteroid struct {
	X, Y      float64 // Position (center)
	VX, VY    float64 // Velocity
	Radius    float64 // Collision radius
	Level     int     // 1..4, grows with every split
	Jitter    []float64
	destroyed bool

	points []draw.Point
}

// AsteroidSpeed returns the base drift speed of an asteroid created while
// the game is at gameLevel, given a uniform sample u in [0, 1).
func AsteroidSpeed(gameLevel int, u float64) float64 {
	return asteroidBaseSpeed + u*asteroidSpeedJitter + float64(gameLevel-1)*asteroidLevelSpeedUp
}

// NewAsteroid creates an asteroid of the given size level drifting in a
// random direction. gameLevel scales its speed.
func NewAsteroid(rng *rand.Rand, x, y, radius float64, level, gameLevel int) *Asteroid {
	speed := AsteroidSpeed(gameLevel, rng.Float64())
	angle := randomHeading(rng)

	jitter := make([]float64, asteroidMinVertices+rng.Intn(asteroidVertexSpread))
	for i := range jitter {
		jitter[i] = asteroidMinJitter + rng.Float64()*asteroidJitterSpread
	}

	return &Asteroid{
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * speed,
		VY:     math.Sin(angle) * speed,
		Radius: radius,
		Level:  level,
		Jitter: jitter,
	}
}

// Score returns the points awarded for destroying the asteroid.
func (a *Asteroid) Score() int {
	return (5 - a.Level) * 20
}

// Fragment returns the pieces the asteroid breaks into: two smaller, faster
// asteroids at its position, or none at the maximum level.
func (a *Asteroid) Fragment(rng *rand.Rand, gameLevel int) []*Asteroid {
	if a.Level >= AsteroidMaxLevel {
		return nil
	}
	children := make([]*Asteroid, 0, AsteroidFragments)
	for i := 0; i < AsteroidFragments; i++ {
		child := NewAsteroid(rng, a.X, a.Y, a.Radius*AsteroidShrink, a.Level+1, gameLevel)
		angle := randomHeading(rng)
		child.VX += math.Cos(angle) * AsteroidImpulse
		child.VY += math.Sin(angle) * AsteroidImpulse
		children = append(children, child)
	}
	return children
}

// Update drifts the asteroid. It may leave the screen by up to its radius
// before wrapping.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Millis()
	a.X += a.VX * dt
	a.Y += a.VY * dt
	ctx.Screen.WrapPositionMargin(&a.X, &a.Y, a.Radius)
	return false, nil
}

// Draw renders the asteroid as an irregular outline.
func (a *Asteroid) Draw(ctx DrawContext) error {
	a.points = draw.Jagged(a.points, a.X, a.Y, a.Radius, a.Jitter)
	ctx.Surface.Polygon(a.points, draw.White, false)
	return nil
}

// MarkDestroyed marks the asteroid for removal (implements Destructible).
func (a *Asteroid) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for destruction (implements Destructible).
func (a *Asteroid) IsDestroyed() bool {
	return a.destroyed
}
