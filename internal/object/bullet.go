package object

import (
	"image/color"

	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Owner identifies who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerAlien
)

func (o Owner) String() string {
	if o == OwnerAlien {
		return "alien"
	}
	return "player"
}

// Bullet tuning.
const (
	BulletRadius   = 2.0
	BulletLifetime = 2000.0 // ms
)

// Bullet is a shot fired by a ship or an alien.
type Bullet struct {
	X, Y      float64 // Position
	Angle     float64 // Direction of travel
	Speed     float64 // Pixels per ms
	Radius    float64
	Color     color.RGBA
	Lifetime  float64 // ms remaining before removal
	Owner     Owner
	destroyed bool
}

// NewBullet creates a bullet travelling along angle.
func NewBullet(x, y, angle, speed float64, c color.RGBA, owner Owner) *Bullet {
	return &Bullet{
		X:        x,
		Y:        y,
		Angle:    angle,
		Speed:    speed,
		Radius:   BulletRadius,
		Color:    c,
		Lifetime: BulletLifetime,
		Owner:    owner,
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet hit something or ran out of lifetime.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed || b.Lifetime <= 0
}

// Update moves the bullet and burns its lifetime.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Millis()

	hx, hy := physics.Heading(b.Angle)
	b.X += hx * b.Speed * dt
	b.Y += hy * b.Speed * dt
	b.Lifetime -= dt
	ctx.Screen.WrapPosition(&b.X, &b.Y)

	return b.Lifetime <= 0, nil
}

// Draw renders the bullet as a filled dot.
func (b *Bullet) Draw(ctx DrawContext) error {
	ctx.Surface.Circle(b.X, b.Y, b.Radius, b.Color, true)
	return nil
}
