package object

import (
	"image/color"
	"math"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Ship tuning. Rates are per millisecond.
const (
	ShipRadius       = 15.0
	ShipLives        = 3
	ShipTurnRate     = 0.002  // Radians per ms
	ShipThrust       = 0.0002 // Velocity gained per ms of thrust
	ShipFireCooldown = 300.0  // ms between shots
	ShipBulletSpeed  = 0.5    // Pixels per ms
)

// Ship outline in model space, nose along +X.
var (
	shipModel  = []draw.Point{{X: 20, Y: 0}, {X: -10, Y: 10}, {X: -10, Y: -10}}
	flameModel = []draw.Point{{X: -10, Y: 5}, {X: -18, Y: 0}, {X: -10, Y: -5}}
)

// Ship is a player-controlled spaceship.
type Ship struct {
	X, Y     float64 // Position (center of ship)
	VX, VY   float64 // Velocity in pixels per ms
	Angle    float64 // Heading in radians, 0 points right
	Radius   float64
	Color    color.RGBA
	Bindings input.Bindings
	Cooldown float64 // ms until the next shot is allowed
	Lives    int

	Thrusting bool // Thrust was held during the last update

	points []draw.Point
	flame  []draw.Point
}

// NewShip creates a ship at rest pointing up.
func NewShip(x, y float64, c color.RGBA, b input.Bindings) *Ship {
	return &Ship{
		X:        x,
		Y:        y,
		Angle:    -math.Pi / 2,
		Radius:   ShipRadius,
		Color:    c,
		Bindings: b,
		Lives:    ShipLives,
	}
}

// Update handles rotation, thrust, momentum and shooting.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Millis()
	controls := ctx.Input.Controls(s.Bindings)

	if controls.Left {
		s.Angle -= ShipTurnRate * dt
	}
	if controls.Right {
		s.Angle += ShipTurnRate * dt
	}

	s.Thrusting = controls.Thrust
	if controls.Thrust {
		force := ShipThrust * dt
		hx, hy := physics.Heading(s.Angle)
		s.VX += hx * force
		s.VY += hy * force
		ctx.play(audio.CueThrust)
	}

	s.X += s.VX * dt
	s.Y += s.VY * dt
	ctx.Screen.WrapPosition(&s.X, &s.Y)

	s.Cooldown = math.Max(0, s.Cooldown-dt)
	if controls.Fire && s.Cooldown <= 0 {
		s.fire(ctx)
		s.Cooldown = ShipFireCooldown
	}

	return false, nil
}

// fire spawns a bullet at the nose of the ship.
func (s *Ship) fire(ctx UpdateContext) {
	hx, hy := physics.Heading(s.Angle)
	x, y := s.X+hx*s.Radius, s.Y+hy*s.Radius
	ctx.Screen.WrapPosition(&x, &y)
	ctx.spawn(NewBullet(x, y, s.Angle, ShipBulletSpeed, s.Color, OwnerPlayer))
	ctx.play(audio.CueLaser)
}

// Damage takes one life. A ship with lives left is moved back to the centre
// of the screen at rest; dead reports that no lives remain.
func (s *Ship) Damage(screen Screen) (dead bool) {
	if s.Lives > 0 {
		s.Lives--
	}
	if s.Lives == 0 {
		return true
	}
	s.X, s.Y = screen.Center()
	s.VX, s.VY = 0, 0
	return false
}

// AddLife grants an extra life.
func (s *Ship) AddLife() {
	s.Lives++
}

// Draw renders the ship outline and, while thrusting, its exhaust flame.
func (s *Ship) Draw(ctx DrawContext) error {
	s.points = draw.Transform(s.points, shipModel, s.X, s.Y, s.Angle)
	ctx.Surface.Polygon(s.points, s.Color, false)

	if s.Thrusting {
		s.flame = draw.Transform(s.flame, flameModel, s.X, s.Y, s.Angle)
		ctx.Surface.Polygon(s.flame, draw.Orange, true)
	}
	return nil
}
