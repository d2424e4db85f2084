package loop

import "time"

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Render resolution. Larger terminals get a centred, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 54
)

// Inactivity defaults for remote sessions.
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// Screens
const (
	ShutdownDisplay    = 10 * time.Second // Shutdown notice before auto-disconnect
	GameOverInputDelay = time.Second      // Keeps a held fire key from skipping the results
	promptBlinkPeriod  = 600 * time.Millisecond
)
