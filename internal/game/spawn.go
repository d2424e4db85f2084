package game

import (
	"math"

	"github.com/tomz197/asteroids-arcade/internal/object"
)

// AsteroidCount is the number of large asteroids a level starts with.
func AsteroidCount(level int) int {
	return baseAsteroidCount + level
}

// AlienSpawnInterval is the time (ms) between alien ships at the given level.
func AlienSpawnInterval(level int) float64 {
	return math.Max(alienSpawnBase-float64(level-1)*alienSpawnStep, alienSpawnFloor)
}

// startLevel fills the field with the level's asteroids and raises the
// level banner.
func (w *World) startLevel() error {
	for i := 0; i < AsteroidCount(w.Level); i++ {
		x := w.rng.Float64() * w.Screen.Width
		y := w.rng.Float64() * w.Screen.Height
		w.Asteroids = append(w.Asteroids, object.NewAsteroid(w.rng, x, y, object.AsteroidRadius, 1, w.Level))
	}
	if err := w.transition(PhaseLevelTransition); err != nil {
		return err
	}
	w.TransitionTimer = LevelTransitionMillis
	w.logger.Info("level started", "level", w.Level, "asteroids", AsteroidCount(w.Level))
	return nil
}

// advanceLevel moves on once the field has been cleared during play.
func (w *World) advanceLevel() error {
	if w.phase != PhasePlaying || len(w.Asteroids) > 0 {
		return nil
	}
	w.Level++
	return w.startLevel()
}

// updateAlienSpawn sends in a new alien ship every spawn interval.
func (w *World) updateAlienSpawn(dt float64) {
	w.AlienTimer += dt
	if w.AlienTimer > AlienSpawnInterval(w.Level) {
		w.AlienTimer = 0
		w.Aliens = append(w.Aliens, object.NewAlienShip(w.rng, w.Screen, w.Level))
		w.logger.Debug("alien spawned", "level", w.Level)
	}
}
