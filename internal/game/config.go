package game

import (
	"time"

	"github.com/tomz197/asteroids-arcade/internal/object"
)

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Play area
const (
	DefaultWidth  = 960.0
	DefaultHeight = 640.0
)

// Players
const (
	MinPlayers = 1
	MaxPlayers = 2
)

// Levels
const (
	baseAsteroidCount     = 4
	LevelTransitionMillis = 2000.0
)

// Aliens
const (
	alienSpawnBase  = 15000.0 // ms
	alienSpawnStep  = 500.0   // ms less per level
	alienSpawnFloor = 5000.0  // ms
)

// Scoring
const (
	BonusEvery = 1000 // A life for every ship each time the score crosses a multiple
)

// Frame timing
const (
	// MaxFrameDelta caps the elapsed time a driver feeds into one step.
	MaxFrameDelta = 100 * time.Millisecond
)

// Broad phase: a bullet hits when it is within an asteroid's radius, so the
// cell must be at least the largest radius.
const collisionGridCellSize = object.AsteroidRadius

// Version is shown in the top-right corner of the screen.
const Version = "v1.0"
