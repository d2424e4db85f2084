package game

import (
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// resolveCollisions runs every collision check in a fixed order. Hits only
// mark entities; removal happens in one compaction pass at the end, so a
// bullet scores at most once and an asteroid is destroyed at most once per
// frame. Resolution stops as soon as the game is over.
func (w *World) resolveCollisions() {
	defer w.compact()

	w.checkBulletAsteroidCollisions()
	w.checkBulletAlienCollisions()
	if w.checkAlienBulletShipCollisions() {
		return
	}
	w.checkShipAsteroidCollisions()
}

// populateGrid clears and re-inserts all asteroids into the spatial grid.
func (w *World) populateGrid() {
	w.grid.Clear()
	for i, a := range w.Asteroids {
		w.grid.Insert(a.X, a.Y, i)
	}
}

// checkBulletAsteroidCollisions breaks asteroids hit by player bullets.
// A bullet hits the first live asteroid in world order.
func (w *World) checkBulletAsteroidCollisions() {
	w.populateGrid()
	for _, b := range w.Bullets {
		if b.Owner != object.OwnerPlayer || b.IsDestroyed() {
			continue
		}
		w.candidates = w.grid.Candidates(b.X, b.Y, w.candidates)
		for _, i := range w.candidates {
			a := w.Asteroids[i]
			if a.IsDestroyed() {
				continue
			}
			if physics.PointInCircle(b.X, b.Y, a.X, a.Y, a.Radius) {
				b.MarkDestroyed()
				w.destroyAsteroid(a)
				break
			}
		}
	}
}

// destroyAsteroid marks the asteroid, queues its fragments and scores it.
func (w *World) destroyAsteroid(a *object.Asteroid) {
	a.MarkDestroyed()
	w.fragments = append(w.fragments, a.Fragment(w.rng, w.Level)...)
	w.audio.Play(audio.CueExplosion)
	w.addScore(a.Score())
	w.checkBonus()
}

// addScore adds points; negative amounts are ignored so the score never drops.
func (w *World) addScore(points int) {
	if points > 0 {
		w.Score += points
	}
}

// checkBonus grants every ship a life for each bonus threshold the score has
// reached.
func (w *World) checkBonus() {
	for w.Score >= w.NextBonus {
		for _, s := range w.Ships {
			s.AddLife()
		}
		w.audio.Play(audio.CueBonus)
		w.NextBonus += BonusEvery
		w.logger.Debug("bonus life", "score", w.Score, "next", w.NextBonus)
	}
}

// checkBulletAlienCollisions destroys aliens hit by player bullets.
func (w *World) checkBulletAlienCollisions() {
	for _, b := range w.Bullets {
		if b.Owner != object.OwnerPlayer || b.IsDestroyed() {
			continue
		}
		for _, a := range w.Aliens {
			if a.IsDestroyed() {
				continue
			}
			if physics.PointInCircle(b.X, b.Y, a.X, a.Y, a.Width/2) {
				b.MarkDestroyed()
				a.MarkDestroyed()
				w.explode(a.X, a.Y)
				w.addScore(object.AlienScore)
				break
			}
		}
	}
}

// checkAlienBulletShipCollisions damages ships hit by alien bullets.
// Returns true if the game ended.
func (w *World) checkAlienBulletShipCollisions() bool {
	for _, b := range w.Bullets {
		if b.Owner != object.OwnerAlien || b.IsDestroyed() {
			continue
		}
		for _, s := range w.Ships {
			if physics.PointInCircle(b.X, b.Y, s.X, s.Y, s.Radius) {
				b.MarkDestroyed()
				if w.damageShip(s) {
					return true
				}
				break
			}
		}
	}
	return false
}

// checkShipAsteroidCollisions damages ships touching an asteroid. The
// asteroid survives, and a ship takes at most one contact per frame.
// Returns true if the game ended.
func (w *World) checkShipAsteroidCollisions() bool {
	for _, s := range w.Ships {
		for _, a := range w.Asteroids {
			if a.IsDestroyed() {
				continue
			}
			if physics.CirclesOverlap(s.X, s.Y, s.Radius, a.X, a.Y, a.Radius) {
				if w.damageShip(s) {
					return true
				}
				break
			}
		}
	}
	return false
}

// damageShip blows up a ship and takes a life. Returns true if that ended the game.
func (w *World) damageShip(s *object.Ship) bool {
	w.explode(s.X, s.Y)
	if s.Damage(w.Screen) {
		w.gameOver()
		return true
	}
	return false
}

// explode adds an explosion effect and its sound.
func (w *World) explode(x, y float64) {
	w.Explosions = append(w.Explosions, object.NewExplosion(x, y))
	w.audio.Play(audio.CueExplosion)
}

// compact drops everything marked destroyed this frame and adds the queued
// asteroid fragments.
func (w *World) compact() {
	w.Bullets = compact(w.Bullets)
	w.Aliens = compact(w.Aliens)
	w.Asteroids = compact(w.Asteroids)
	w.Asteroids = append(w.Asteroids, w.fragments...)
	clear(w.fragments)
	w.fragments = w.fragments[:0]
}

// compact keeps the items not marked destroyed, preserving their order.
func compact[T object.Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
