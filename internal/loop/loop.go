// Package loop runs the game in a terminal: the frame loop, the start and
// game-over screens, and leaderboard submission.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/input"
)

// Run plays a session on r and w until the player quits, the input closes,
// or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// Run starts the frame loop with the standard Input → Update → Draw cycle.
// Blocks until the session ends.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	s.refreshStartBoard(ctx)

	for s.running {
		if ctx.Err() != nil {
			break
		}
		frameStart := s.clock.Now()

		// ===== INPUT PHASE =====
		var in input.State
		if s.inputStream != nil {
			in = s.inputStream.Read(frameStart)
		}

		// ===== UPDATE PHASE =====
		s.updateScreen()
		if err := s.Update(ctx, frameStart, in); err != nil {
			return err
		}

		// ===== DRAW PHASE =====
		if err := s.Draw(frameStart); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := s.clock.Now().Sub(frameStart)
		if elapsed < TargetFrameTime {
			s.clock.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	s.logger.Debug("session ended", "score", s.world.Score, "level", s.world.Level)
	return nil
}

// Update advances the session by one frame at now with the frame's input.
func (s *Session) Update(ctx context.Context, now time.Time, in input.State) error {
	if in.Quit || in.Closed {
		s.running = false
		return nil
	}
	s.trackActivity(now, in)
	s.checkShutdown(now)
	if !s.running {
		return nil
	}

	delta := now.Sub(s.lastFrame)
	s.lastFrame = now
	delta = min(max(delta, 0), game.MaxFrameDelta)

	switch s.world.Phase() {
	case game.PhaseStart:
		s.updateStartScreen(in)
	case game.PhasePlaying, game.PhaseLevelTransition:
		if err := s.world.Step(delta, in); err != nil {
			return err
		}
	case game.PhaseGameOver:
		s.updateGameOver(ctx, now, in)
	}

	if s.pendingGameOver {
		s.pendingGameOver = false
		s.enterGameOver(ctx, now)
	}
	return nil
}

// trackActivity handles the inactivity warning and disconnect.
func (s *Session) trackActivity(now time.Time, in input.State) {
	if s.opts.InactivityDisconnect <= 0 {
		return
	}
	idle := now.Sub(s.lastInput)
	switch {
	case in.Any():
		s.lastInput = now
		s.inactive = false
	case idle > s.opts.InactivityDisconnect:
		s.logger.Info("disconnecting inactive session", "idle", idle.Round(time.Second))
		s.running = false
	case s.opts.InactivityWarn > 0 && idle > s.opts.InactivityWarn:
		s.inactive = true
	}
}

// checkShutdown starts the shutdown countdown once requested and ends the
// session when it runs out.
func (s *Session) checkShutdown(now time.Time) {
	if s.shutdownAt.IsZero() {
		select {
		case <-s.opts.Shutdown:
			s.shutdownAt = now.Add(ShutdownDisplay)
		default:
			return
		}
	}
	if !now.Before(s.shutdownAt) {
		s.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), MaxTermWidth)
	renderHeight = min(max(termHeight, 1), MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}

// Draw renders the frame: the play field, its HUD, then any screen overlay.
func (s *Session) Draw(now time.Time) error {
	cw := s.chunkWriter
	cw.WriteString("\033[H\033[2J")
	s.canvas.Clear()

	if s.world.Phase() != game.PhaseStart {
		if err := s.world.Draw(s.canvas); err != nil {
			return err
		}
	}
	if err := s.canvas.Render(cw); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(cw); err != nil {
		return err
	}

	s.drawOverlay(now)
	return cw.Flush()
}
