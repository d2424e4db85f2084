package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
)

// Alien ship tuning.
const (
	AlienWidth  = 40.0
	AlienHeight = 20.0
	AlienScore  = 500
)

// AlienSpeed is the horizontal speed (pixels per ms) at the given level.
func AlienSpeed(level int) float64 {
	return 0.1 + float64(level-1)*0.01
}

// AlienFireCooldown is the time between alien shots (ms) at the given level.
func AlienFireCooldown(level int) float64 {
	return math.Max(2000-float64(level-1)*100, 1000)
}

// AlienAimError is the maximum aiming error (radians) at the given level.
func AlienAimError(level int) float64 {
	return math.Max(math.Pi/6-float64(level-1)*math.Pi/60, math.Pi/30)
}

// AlienBulletSpeed is the speed of alien shots (pixels per ms) at the given level.
func AlienBulletSpeed(level int) float64 {
	return 0.4 + float64(level-1)*0.02
}

// AlienShip crosses the top of the screen once, firing at the centre.
type AlienShip struct {
	X, Y      float64
	Direction float64 // +1 moving right, -1 moving left
	Speed     float64
	Cooldown  float64 // ms until the next shot
	Width     float64
	Height    float64
	destroyed bool

	body []draw.Point
	dome []draw.Point
}

// NewAlienShip places an alien just off the edge it enters from, in the top
// 30% of the screen.
func NewAlienShip(rng *rand.Rand, screen Screen, level int) *AlienShip {
	a := &AlienShip{
		Y:         rng.Float64() * screen.Height * 0.3,
		Direction: 1,
		Speed:     AlienSpeed(level),
		Cooldown:  AlienFireCooldown(level),
		Width:     AlienWidth,
		Height:    AlienHeight,
	}
	if rng.Float64() >= 0.5 {
		a.Direction = -1
	}
	if a.Direction > 0 {
		a.X = -a.Width
	} else {
		a.X = screen.Width + a.Width
	}
	return a
}

// Update moves the alien and fires when its cooldown runs out. It is
// removed once it has left the screen in its direction of travel.
func (a *AlienShip) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Millis()
	a.X += a.Speed * a.Direction * dt

	a.Cooldown -= dt
	if a.Cooldown <= 0 {
		a.fire(ctx)
		a.Cooldown = AlienFireCooldown(ctx.Level)
	}

	return a.OffScreen(ctx.Screen), nil
}

func (a *AlienShip) fire(ctx UpdateContext) {
	cx, cy := ctx.Screen.Center()
	angle := math.Atan2(cy-a.Y, cx-a.X)
	if ctx.Rand != nil {
		angle += (ctx.Rand.Float64()*2 - 1) * AlienAimError(ctx.Level)
	}
	x, y := a.X, a.Y
	ctx.Screen.WrapPosition(&x, &y)
	ctx.spawn(NewBullet(x, y, angle, AlienBulletSpeed(ctx.Level), draw.Lime, OwnerAlien))
	ctx.play(audio.CueAlienLaser)
}

// OffScreen reports whether the alien has fully crossed the far edge.
func (a *AlienShip) OffScreen(screen Screen) bool {
	return (a.Direction > 0 && a.X-a.Width > screen.Width) ||
		(a.Direction < 0 && a.X+a.Width < 0)
}

// Draw renders a lime saucer with a white dome.
func (a *AlienShip) Draw(ctx DrawContext) error {
	a.body = draw.Ellipse(a.body, a.X, a.Y, a.Width/2, a.Height/2, 20)
	ctx.Surface.Polygon(a.body, draw.Lime, true)

	a.dome = draw.Arc(a.dome, a.X, a.Y-a.Height/4, a.Width/4, a.Width/4, math.Pi, 2*math.Pi, 10)
	ctx.Surface.Polygon(a.dome, draw.White, true)
	return nil
}

// MarkDestroyed marks the alien for removal (implements Destructible).
func (a *AlienShip) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the alien is marked for destruction (implements Destructible).
func (a *AlienShip) IsDestroyed() bool {
	return a.destroyed
}
