package game

import (
	"errors"
	"fmt"
)

// Phase is the game's top-level state.
type Phase int

const (
	PhaseStart           Phase = iota // Title screen, waiting for a player count
	PhasePlaying                      // Active gameplay
	PhaseLevelTransition              // "Level N" banner up; simulation keeps running
	PhaseGameOver                     // Final score and leaderboard
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseLevelTransition:
		return "levelTransition"
	case PhaseGameOver:
		return "gameover"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var (
	// ErrInvalidTransition is returned for a phase change the game does not allow.
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrPlayerCount is returned by Start for anything other than one or two players.
	ErrPlayerCount = errors.New("player count must be 1 or 2")
)

var validTransitions = map[Phase][]Phase{
	PhaseStart:           {PhasePlaying},
	PhasePlaying:         {PhaseLevelTransition, PhaseGameOver},
	PhaseLevelTransition: {PhasePlaying, PhaseGameOver},
	PhaseGameOver:        {PhaseStart},
}

// CanTransition reports whether the game may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// PhaseObserver is notified after every phase change. The screen controller
// uses it to show and hide overlays.
type PhaseObserver interface {
	PhaseChanged(from, to Phase)
}

// PhaseObserverFunc adapts a function to PhaseObserver.
type PhaseObserverFunc func(from, to Phase)

func (f PhaseObserverFunc) PhaseChanged(from, to Phase) {
	f(from, to)
}

// transition moves the world to another phase and notifies the observer.
func (w *World) transition(to Phase) error {
	from := w.phase
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	w.phase = to
	w.logger.Debug("phase changed", "from", from, "to", to, "level", w.Level, "score", w.Score)
	if w.observer != nil {
		w.observer.PhaseChanged(from, to)
	}
	return nil
}

// Start begins a new game for one or two players from the start screen.
// The world is reset, ships are placed and level 1 begins.
func (w *World) Start(players int) error {
	if players < MinPlayers || players > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrPlayerCount, players)
	}
	if w.phase != PhaseStart {
		return fmt.Errorf("%w: start a game from %s", ErrInvalidTransition, w.phase)
	}

	w.reset()
	w.placeShips(players)
	if err := w.transition(PhasePlaying); err != nil {
		return err
	}
	w.logger.Info("game started", "players", players)
	return w.startLevel()
}

// Restart returns from the game-over screen to the start screen.
func (w *World) Restart() error {
	return w.transition(PhaseStart)
}

// gameOver ends the game.
func (w *World) gameOver() {
	if err := w.transition(PhaseGameOver); err != nil {
		w.logger.Error("end game", "err", err)
		return
	}
	w.logger.Info("game over", "score", w.Score, "level", w.Level)
}
