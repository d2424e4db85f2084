package object

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
)

const eps = 1e-9

var testScreen = Screen{Width: 960, Height: 640}

type spawnList struct {
	objects []Object
}

func (s *spawnList) Spawn(obj Object) {
	s.objects = append(s.objects, obj)
}

type call struct {
	kind   string
	points int
	c      color.RGBA
	filled bool
	r      float64
}

type recordingSurface struct {
	calls []call
}

func (r *recordingSurface) Size() (float64, float64) { return testScreen.Width, testScreen.Height }

func (r *recordingSurface) Polygon(points []draw.Point, c color.RGBA, filled bool) {
	r.calls = append(r.calls, call{kind: "polygon", points: len(points), c: c, filled: filled})
}

func (r *recordingSurface) Circle(x, y, radius float64, c color.RGBA, filled bool) {
	r.calls = append(r.calls, call{kind: "circle", c: c, filled: filled, r: radius})
}

func (r *recordingSurface) Text(x, y float64, s string, c color.RGBA, align draw.Align) {
	r.calls = append(r.calls, call{kind: "text", c: c})
}

func newContext(ms float64, keys ...input.Key) (UpdateContext, *spawnList, *audio.Recorder) {
	var st input.State
	for _, k := range keys {
		st.Press(k)
	}
	spawned := &spawnList{}
	rec := &audio.Recorder{}
	return UpdateContext{
		Delta:   time.Duration(ms * float64(time.Millisecond)),
		Input:   st,
		Screen:  testScreen,
		Spawner: spawned,
		Audio:   rec,
		Rand:    rand.New(rand.NewSource(1)),
		Level:   1,
	}, spawned, rec
}

func TestShipTurnAndThrust(t *testing.T) {
	s := NewShip(100, 100, draw.Cyan, input.PlayerOneBindings)
	ctx, _, rec := newContext(100, input.KeyRight, input.KeyUp)

	if _, err := s.Update(ctx); err != nil {
		t.Fatal(err)
	}

	wantAngle := -math.Pi/2 + ShipTurnRate*100
	if math.Abs(s.Angle-wantAngle) > eps {
		t.Errorf("Angle = %v, want %v", s.Angle, wantAngle)
	}
	speed := math.Hypot(s.VX, s.VY)
	if math.Abs(speed-ShipThrust*100) > eps {
		t.Errorf("speed = %v, want %v", speed, ShipThrust*100)
	}
	if !s.Thrusting {
		t.Error("ship should be marked as thrusting")
	}
	if rec.Count(audio.CueThrust) != 1 {
		t.Error("thrust should emit a thrust cue")
	}
}

func TestShipFireCooldown(t *testing.T) {
	s := NewShip(100, 100, draw.Yellow, input.PlayerTwoBindings)
	ctx, spawned, rec := newContext(16, input.KeyS)

	s.Update(ctx)
	if len(spawned.objects) != 1 {
		t.Fatalf("spawned %d objects, want 1", len(spawned.objects))
	}
	b, ok := spawned.objects[0].(*Bullet)
	if !ok {
		t.Fatalf("spawned %T, want *Bullet", spawned.objects[0])
	}
	if b.Owner != OwnerPlayer || b.Color != draw.Yellow || b.Speed != ShipBulletSpeed {
		t.Errorf("bullet = %+v", b)
	}
	if math.Abs(b.X-100) > eps || math.Abs(b.Y-(100-ShipRadius)) > eps {
		t.Errorf("bullet should leave from the nose, got (%v,%v)", b.X, b.Y)
	}
	if rec.Count(audio.CueLaser) != 1 {
		t.Error("firing should emit a laser cue")
	}

	// Held fire inside the cooldown window does nothing.
	for i := 0; i < 10; i++ {
		s.Update(ctx)
	}
	if len(spawned.objects) != 1 {
		t.Errorf("fired during cooldown: %d bullets", len(spawned.objects))
	}

	// The cooldown set at 300 ms runs out on the 19th frame after the shot.
	for i := 0; i < 8; i++ {
		s.Update(ctx)
	}
	if len(spawned.objects) != 1 {
		t.Fatalf("fired before the cooldown expired: %d bullets", len(spawned.objects))
	}
	s.Update(ctx)
	if len(spawned.objects) != 2 {
		t.Errorf("expected a second shot once the cooldown expires, got %d", len(spawned.objects))
	}
	if s.Cooldown < 0 {
		t.Error("cooldown must never be negative")
	}
}

func TestBulletsSpawnInsideScreen(t *testing.T) {
	s := NewShip(testScreen.Width/2, 5, draw.White, input.PlayerOneBindings)
	ctx, spawned, _ := newContext(16, input.KeySpace)
	s.Update(ctx)
	if len(spawned.objects) != 1 {
		t.Fatalf("spawned %d objects, want 1", len(spawned.objects))
	}
	b := spawned.objects[0].(*Bullet)
	if b.Y < 0 || b.Y >= testScreen.Height {
		t.Errorf("nose bullet at y=%v, want it wrapped into the screen", b.Y)
	}
	if math.Abs(b.Y-(testScreen.Height+s.Y-ShipRadius)) > 1 {
		t.Errorf("nose bullet at y=%v, want about %v", b.Y, testScreen.Height+s.Y-ShipRadius)
	}

	a := &AlienShip{X: -20, Y: 50, Direction: 1, Speed: 0, Cooldown: 0, Width: AlienWidth, Height: AlienHeight}
	ctx, spawned, _ = newContext(16)
	a.Update(ctx)
	if len(spawned.objects) != 1 {
		t.Fatalf("alien spawned %d objects, want 1", len(spawned.objects))
	}
	if ab := spawned.objects[0].(*Bullet); ab.X < 0 || ab.X >= testScreen.Width {
		t.Errorf("alien bullet at x=%v, want it wrapped into the screen", ab.X)
	}
}

func TestShipWrapsIntoScreen(t *testing.T) {
	s := NewShip(959, 1, draw.Cyan, input.PlayerOneBindings)
	s.VX, s.VY = 0.1, -0.1
	ctx, _, _ := newContext(50)
	s.Update(ctx)

	if s.X < 0 || s.X >= testScreen.Width || s.Y < 0 || s.Y >= testScreen.Height {
		t.Errorf("ship left the screen: (%v,%v)", s.X, s.Y)
	}
}

func TestShipDamage(t *testing.T) {
	s := NewShip(10, 10, draw.Cyan, input.PlayerOneBindings)
	s.VX = 1

	if dead := s.Damage(testScreen); dead {
		t.Fatal("ship with 3 lives should survive a hit")
	}
	if s.Lives != 2 || s.X != 480 || s.Y != 320 || s.VX != 0 {
		t.Errorf("after hit: %+v", s)
	}

	s.Lives = 1
	if dead := s.Damage(testScreen); !dead {
		t.Error("last life lost should report dead")
	}
	if dead := s.Damage(testScreen); !dead || s.Lives != 0 {
		t.Errorf("lives must not go below zero, got %d", s.Lives)
	}
}

func TestBulletLifetime(t *testing.T) {
	b := NewBullet(10, 10, 0, 0.5, draw.White, OwnerPlayer)
	ctx, _, _ := newContext(1000)

	if remove, _ := b.Update(ctx); remove {
		t.Fatal("bullet removed too early")
	}
	if math.Abs(b.X-510) > eps {
		t.Errorf("X = %v, want 510", b.X)
	}
	if remove, _ := b.Update(ctx); !remove {
		t.Error("bullet should be removed once its lifetime reaches zero")
	}
	if !b.IsDestroyed() {
		t.Error("expired bullet should report destroyed")
	}
}

func TestBulletWraps(t *testing.T) {
	b := NewBullet(5, 5, math.Pi, 0.5, draw.White, OwnerAlien)
	ctx, _, _ := newContext(20)
	b.Update(ctx)
	if b.X < 0 || b.X >= testScreen.Width {
		t.Errorf("X = %v outside the screen", b.X)
	}
}

func TestNewAsteroidShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		a := NewAsteroid(rng, 0, 0, AsteroidRadius, 1, 3)
		if n := len(a.Jitter); n < 8 || n > 11 {
			t.Fatalf("vertex count %d outside 8..11", n)
		}
		for _, j := range a.Jitter {
			if j < 0.8 || j >= 1.2 {
				t.Fatalf("jitter %v outside [0.8,1.2)", j)
			}
		}
		speed := math.Hypot(a.VX, a.VY)
		if speed < 0.02-eps || speed >= 0.025 {
			t.Fatalf("level 3 speed %v outside [0.02,0.025)", speed)
		}
	}
}

func TestAsteroidFragment(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := NewAsteroid(rng, 100, 200, 40, 1, 1)

	children := parent.Fragment(rng, 1)
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	for _, c := range children {
		if c.Level != 2 || math.Abs(c.Radius-24) > eps || c.X != 100 || c.Y != 200 {
			t.Errorf("child = level %d radius %v at (%v,%v)", c.Level, c.Radius, c.X, c.Y)
		}
		// Base speed is at most 0.015; the impulse adds 0.05.
		if speed := math.Hypot(c.VX, c.VY); speed > 0.065+eps {
			t.Errorf("child speed %v too high", speed)
		}
	}

	smallest := &Asteroid{Level: AsteroidMaxLevel, Radius: 8.64}
	if got := smallest.Fragment(rng, 1); len(got) != 0 {
		t.Errorf("level 4 produced %d fragments", len(got))
	}
}

func TestAsteroidScore(t *testing.T) {
	for level, want := range map[int]int{1: 80, 2: 60, 3: 40, 4: 20} {
		if got := (&Asteroid{Level: level}).Score(); got != want {
			t.Errorf("level %d score = %d, want %d", level, got, want)
		}
	}
}

func TestAsteroidMarginWrap(t *testing.T) {
	a := &Asteroid{X: -39, Y: 100, VX: -0.1, Radius: 40}
	ctx, _, _ := newContext(20)
	a.Update(ctx)

	// x = -41 crosses the margin and moves by W + r.
	if math.Abs(a.X-959) > eps {
		t.Errorf("X = %v, want 959", a.X)
	}
	if a.X < -a.Radius || a.X > testScreen.Width+a.Radius {
		t.Error("asteroid outside its wrap margin")
	}
}

func TestAlienSpawnAndFlight(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		a := NewAlienShip(rng, testScreen, 1)
		if a.Y < 0 || a.Y >= testScreen.Height*0.3 {
			t.Fatalf("Y = %v outside the top band", a.Y)
		}
		switch a.Direction {
		case 1:
			if a.X != -AlienWidth {
				t.Fatalf("right-moving alien starts at %v", a.X)
			}
		case -1:
			if a.X != testScreen.Width+AlienWidth {
				t.Fatalf("left-moving alien starts at %v", a.X)
			}
		default:
			t.Fatalf("direction %v", a.Direction)
		}
	}

	a := &AlienShip{X: testScreen.Width + AlienWidth - 1, Direction: 1, Speed: 0.1, Cooldown: 5000, Width: AlienWidth}
	ctx, _, _ := newContext(20)
	if remove, _ := a.Update(ctx); !remove {
		t.Error("alien past the far edge should be removed")
	}
	back := &AlienShip{X: testScreen.Width + AlienWidth, Direction: -1, Speed: 0.1, Cooldown: 5000, Width: AlienWidth}
	if remove, _ := back.Update(ctx); remove {
		t.Error("alien entering from the right must not be removed")
	}
}

func TestAlienFires(t *testing.T) {
	a := &AlienShip{X: 100, Y: 50, Direction: 1, Speed: 0.1, Cooldown: 10, Width: AlienWidth, Height: AlienHeight}
	ctx, spawned, rec := newContext(16)
	ctx.Level = 3
	a.Update(ctx)

	if len(spawned.objects) != 1 {
		t.Fatalf("spawned %d objects, want 1", len(spawned.objects))
	}
	b := spawned.objects[0].(*Bullet)
	if b.Owner != OwnerAlien || b.Color != draw.Lime {
		t.Errorf("bullet = %+v", b)
	}
	if math.Abs(b.Speed-0.44) > eps {
		t.Errorf("speed = %v, want 0.44", b.Speed)
	}
	ideal := math.Atan2(320-50, 480-a.X)
	if math.Abs(b.Angle-ideal) > AlienAimError(3)+0.01 {
		t.Errorf("aim %v too far from %v", b.Angle, ideal)
	}
	if a.Cooldown != 1800 {
		t.Errorf("cooldown = %v, want 1800", a.Cooldown)
	}
	if rec.Count(audio.CueAlienLaser) != 1 {
		t.Error("alien shot should emit an alien-laser cue")
	}
}

func TestAlienLevelCurves(t *testing.T) {
	tests := []struct {
		level    int
		speed    float64
		cooldown float64
		aim      float64
	}{
		{1, 0.1, 2000, math.Pi / 6},
		{5, 0.14, 1600, math.Pi/6 - 4*math.Pi/60},
		{11, 0.2, 1000, math.Pi / 30},
		{20, 0.29, 1000, math.Pi / 30},
	}
	for _, tt := range tests {
		if got := AlienSpeed(tt.level); math.Abs(got-tt.speed) > eps {
			t.Errorf("AlienSpeed(%d) = %v, want %v", tt.level, got, tt.speed)
		}
		if got := AlienFireCooldown(tt.level); got != tt.cooldown {
			t.Errorf("AlienFireCooldown(%d) = %v, want %v", tt.level, got, tt.cooldown)
		}
		if got := AlienAimError(tt.level); math.Abs(got-tt.aim) > eps {
			t.Errorf("AlienAimError(%d) = %v, want %v", tt.level, got, tt.aim)
		}
	}
}

func TestExplosionLifecycle(t *testing.T) {
	e := NewExplosion(5, 5)
	defer e.Release()
	ctx, _, _ := newContext(250)

	if remove, _ := e.Update(ctx); remove {
		t.Fatal("explosion finished too early")
	}
	surf := &recordingSurface{}
	e.Draw(DrawContext{Surface: surf})
	got := surf.calls[0]
	if got.kind != "circle" || got.r != 15 || got.c.A != 128 {
		t.Errorf("half-way draw = %+v", got)
	}
	if remove, _ := e.Update(ctx); !remove || !e.Done() {
		t.Error("explosion should finish after its duration")
	}
}

func TestDrawCalls(t *testing.T) {
	surf := &recordingSurface{}
	ctx := DrawContext{Surface: surf}

	s := NewShip(100, 100, draw.Cyan, input.PlayerOneBindings)
	s.Draw(ctx)
	s.Thrusting = true
	s.Draw(ctx)
	if len(surf.calls) != 3 {
		t.Fatalf("ship draws = %d, want 3", len(surf.calls))
	}
	if surf.calls[2].c != draw.Orange || !surf.calls[2].filled {
		t.Errorf("flame = %+v", surf.calls[2])
	}

	surf.calls = nil
	a := NewAsteroid(rand.New(rand.NewSource(1)), 10, 10, 40, 1, 1)
	a.Draw(ctx)
	if c := surf.calls[0]; c.points != len(a.Jitter) || c.filled || c.c != draw.White {
		t.Errorf("asteroid draw = %+v", c)
	}

	surf.calls = nil
	alien := NewAlienShip(rand.New(rand.NewSource(1)), testScreen, 1)
	alien.Draw(ctx)
	if len(surf.calls) != 2 || surf.calls[0].c != draw.Lime || surf.calls[1].c != draw.White {
		t.Errorf("alien draws = %+v", surf.calls)
	}
}
