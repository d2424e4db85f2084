package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
)

// updateStartScreen picks the player count or quits.
func (s *Session) updateStartScreen(in input.State) {
	players := 0
	switch {
	case in.Pressed(input.Key1):
		players = 1
	case in.Pressed(input.Key2):
		players = 2
	case in.Pressed(input.KeyEscape):
		s.running = false
		return
	}
	if players == 0 {
		return
	}
	if err := s.world.Start(players); err != nil {
		s.logger.Error("start game", "err", err)
	}
}

// enterGameOver sets up the results screen. A qualifying score asks for a
// name first; any other score is recorded straight away.
func (s *Session) enterGameOver(ctx context.Context, now time.Time) {
	input.Reset(s.inputStream)
	s.over = gameOverState{
		Results: leaderboard.Begin(ctx, s.store, s.world.Score),
		since:   now,
	}
	if s.over.Err != nil {
		s.logger.Error("record score", "err", s.over.Err)
	} else if s.over.Board != nil {
		s.logger.Info("score submitted", "name", leaderboard.Anonymous, "score", s.over.Score)
	}
}

// updateGameOver handles name entry, then restarts on Space or Enter.
func (s *Session) updateGameOver(ctx context.Context, now time.Time, in input.State) {
	if s.over.Naming {
		s.over.Type(in.Text)
		if in.Submit {
			s.over.since = now
			input.Reset(s.inputStream)
			if err := s.over.Submit(ctx, s.store); err != nil {
				s.logger.Error("submit score", "err", err)
			} else {
				s.logger.Info("score submitted", "name", leaderboard.CleanName(string(s.over.Name)), "score", s.over.Score)
			}
		}
		return
	}

	if now.Sub(s.over.since) < GameOverInputDelay {
		return
	}
	if in.Pressed(input.KeySpace) || in.Pressed(input.KeyEnter) {
		if err := s.world.Restart(); err != nil {
			s.logger.Error("restart", "err", err)
			return
		}
		if s.over.Board != nil {
			s.startBoard = s.over.Board
		}
	}
}

// refreshStartBoard loads the leaderboard shown on the start screen.
func (s *Session) refreshStartBoard(ctx context.Context) {
	if s.store == nil {
		return
	}
	board, err := s.store.Top(ctx)
	if err != nil {
		s.logger.Warn("load leaderboard", "err", err)
		return
	}
	s.startBoard = board
}

// drawOverlay draws the screen for the current state on top of the canvas.
func (s *Session) drawOverlay(now time.Time) {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	if !s.shutdownAt.IsZero() {
		s.drawShutdownScreen(now, centerX, centerY)
		return
	}
	if s.inactive {
		s.drawInactivityScreen(now, centerX, centerY)
		return
	}

	switch s.world.Phase() {
	case game.PhaseStart:
		s.drawStartScreen(now, centerX, centerY)
	case game.PhaseGameOver:
		s.drawGameOverScreen(now, centerX, centerY)
	}
}

// writeCentered writes text centred on centerX.
func (s *Session) writeCentered(centerX, row int, text string) {
	s.chunkWriter.WriteAt(max(centerX-len(text)/2, 1), row, text)
}

func blinkOn(now time.Time) bool {
	return now.UnixMilli()/promptBlinkPeriod.Milliseconds()%2 == 0
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(now time.Time, centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`    _   ___ _____ ___ ___  ___ ___ ___  ___  `,
		`   /_\ / __|_   _| __| _ \/ _ \_ _|   \/ __| `,
		`  / _ \\__ \ | | | _||   / (_) | || |) \__ \ `,
		` /_/ \_\___/ |_| |___|_|_\\___/___|___/|___/ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := s.chunkWriter
	titleStartY := centerY - 9
	for i, line := range titleArt {
		cw.WriteColorAt(centerX-titleWidth/2, titleStartY+i, line, draw.Cyan)
	}

	controlsY := titleStartY + len(titleArt) + 2
	s.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"Player 1   < >  Rotate   Up  Thrust   SPACE  Fire",
		"Player 2   A D  Rotate   W   Thrust   S      Fire",
		"ESC  Quit",
	}
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+1+i, line)
	}

	promptY := controlsY + len(controlLines) + 2
	if blinkOn(now) {
		s.writeCentered(centerX, promptY, ">>  Press 1 or 2 for the number of players  <<")
	}

	s.drawBoard(centerX, promptY+2, s.startBoard)
}

// drawBoard lists leaderboard entries starting at row.
func (s *Session) drawBoard(centerX, row int, board []leaderboard.Entry) {
	if len(board) == 0 {
		return
	}
	s.chunkWriter.WriteColorAt(centerX-len("Leaderboard")/2, row, "Leaderboard", draw.Yellow)
	for i, e := range board {
		s.writeCentered(centerX, row+1+i, fmt.Sprintf("%d. %s", i+1, e))
	}
}

// drawGameOverScreen draws the final score, name entry and leaderboard.
func (s *Session) drawGameOverScreen(now time.Time, centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := s.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteColorAt(centerX-titleWidth/2, titleStartY+i, line, draw.Orange)
	}

	row := titleStartY + len(titleArt) + 1
	s.writeCentered(centerX, row, fmt.Sprintf("Final score: %d", s.over.Score))
	row += 2

	switch {
	case s.over.Naming:
		s.writeCentered(centerX, row, "You made the top 3! Enter your name:")
		cursor := " "
		if blinkOn(now) {
			cursor = "_"
		}
		s.writeCentered(centerX, row+1, string(s.over.Name)+cursor)
		s.writeCentered(centerX, row+3, "Press ENTER to save")
		return
	case s.over.Err != nil:
		s.writeCentered(centerX, row, "Leaderboard unavailable")
		row += 2
	case len(s.over.Board) > 0:
		s.drawBoard(centerX, row, s.over.Board)
		row += len(s.over.Board) + 2
	}

	if now.Sub(s.over.since) >= GameOverInputDelay && blinkOn(now) {
		s.writeCentered(centerX, row, ">>  Press SPACE to play again  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(now time.Time, centerX, centerY int) {
	s.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := s.opts.InactivityDisconnect - now.Sub(s.lastInput)
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(max(left, 0).Seconds()),
	)
	s.writeCentered(centerX, centerY, msg)
	s.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(now time.Time, centerX, centerY int) {
	s.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(s.shutdownAt.Sub(now).Seconds()) + 1
	s.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	s.writeCentered(centerX, centerY+4, "Press Ctrl+C to disconnect now")
}
