package gfx

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
)

// Options configures a Game. Zero values pick sensible defaults.
type Options struct {
	Logger      *log.Logger
	Store       leaderboard.Store // Nil disables the leaderboard
	Audio       audio.Sink
	Rand        *rand.Rand
	Width       float64
	Height      float64
	ShowButtons bool // Draw touch controls before the first touch
}

// Game adapts the world to ebiten.Game.
type Game struct {
	world   *game.World
	surface *Surface
	input   reader
	logger  *log.Logger
	store   leaderboard.Store
	opts    Options

	board           []leaderboard.Entry // Shown on the start screen
	results         leaderboard.Results
	resultsAt       time.Time
	pendingGameOver bool
	now             func() time.Time
}

// NewGame creates the desktop game on its start screen.
func NewGame(ctx context.Context, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 {
		opts.Width = game.DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = game.DefaultHeight
	}

	g := &Game{
		surface: NewSurface(opts.Width, opts.Height),
		input:   reader{buttons: TouchButtons(int(opts.Width), int(opts.Height))},
		logger:  opts.Logger,
		store:   opts.Store,
		opts:    opts,
		now:     time.Now,
	}
	g.world = game.NewWorld(game.Options{
		Width:    opts.Width,
		Height:   opts.Height,
		Rand:     opts.Rand,
		Audio:    opts.Audio,
		Observer: g,
		Logger:   opts.Logger,
	})
	if g.store != nil {
		board, err := g.store.Top(ctx)
		if err != nil {
			g.logger.Warn("load leaderboard", "err", err)
		}
		g.board = board
	}
	return g
}

// PhaseChanged implements game.PhaseObserver.
func (g *Game) PhaseChanged(_, to game.Phase) {
	if to == game.PhaseGameOver {
		g.pendingGameOver = true
	}
}

// Update advances one tick. Implements ebiten.Game.
func (g *Game) Update() error {
	return g.update(context.Background(), g.input.read())
}

func (g *Game) update(ctx context.Context, in input.State) error {
	delta := time.Second / time.Duration(ebiten.TPS())

	switch g.world.Phase() {
	case game.PhaseStart:
		switch {
		case in.Pressed(input.Key1):
			return g.start(1)
		case in.Pressed(input.Key2):
			return g.start(2)
		case in.Pressed(input.KeyEscape):
			return ebiten.Termination
		}
	case game.PhasePlaying, game.PhaseLevelTransition:
		if err := g.world.Step(delta, in); err != nil {
			return err
		}
	case game.PhaseGameOver:
		g.updateGameOver(ctx, in)
	}

	if g.pendingGameOver {
		g.pendingGameOver = false
		g.results = leaderboard.Begin(ctx, g.store, g.world.Score)
		g.resultsAt = g.now()
		if g.results.Err != nil {
			g.logger.Error("record score", "err", g.results.Err)
		}
	}
	return nil
}

func (g *Game) start(players int) error {
	if err := g.world.Start(players); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// updateGameOver handles name entry, then restarts on Space or Enter.
func (g *Game) updateGameOver(ctx context.Context, in input.State) {
	if g.results.Naming {
		g.results.Type(in.Text)
		if in.Submit {
			g.resultsAt = g.now()
			if err := g.results.Submit(ctx, g.store); err != nil {
				g.logger.Error("submit score", "err", err)
			}
		}
		return
	}
	if g.now().Sub(g.resultsAt) < time.Second {
		return
	}
	if in.Pressed(input.KeySpace) || in.Pressed(input.KeyEnter) {
		if err := g.world.Restart(); err != nil {
			g.logger.Error("restart", "err", err)
			return
		}
		if g.results.Board != nil {
			g.board = g.results.Board
		}
	}
}

// Draw renders the frame. Implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	if g.world.Phase() != game.PhaseStart {
		if err := g.world.Draw(g.surface); err != nil {
			g.logger.Error("draw", "err", err)
		}
	}

	switch g.world.Phase() {
	case game.PhaseStart:
		g.drawStartScreen()
	case game.PhaseGameOver:
		g.drawGameOverScreen()
	default:
		if g.opts.ShowButtons || g.input.touched {
			g.drawButtons()
		}
	}
}

// Layout keeps the logical screen size fixed; ebiten scales to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.opts.Width), int(g.opts.Height)
}

func (g *Game) drawStartScreen() {
	s := g.surface
	cx, cy := g.opts.Width/2, g.opts.Height/2
	s.Text(cx, cy-120, "A S T E R O I D S", draw.Cyan, draw.AlignCenter)
	s.Text(cx, cy-60, "Player 1   < >  Rotate   Up  Thrust   SPACE  Fire", draw.White, draw.AlignCenter)
	s.Text(cx, cy-40, "Player 2   A D  Rotate   W   Thrust   S      Fire", draw.White, draw.AlignCenter)
	s.Text(cx, cy, "Press 1 or 2 for the number of players", draw.Yellow, draw.AlignCenter)
	g.drawBoard(cx, cy+60, g.board)
}

func (g *Game) drawBoard(cx, y float64, board []leaderboard.Entry) {
	if len(board) == 0 {
		return
	}
	g.surface.Text(cx, y, "Leaderboard", draw.Yellow, draw.AlignCenter)
	for i, e := range board {
		g.surface.Text(cx, y+float64(i+1)*20, fmt.Sprintf("%d. %s", i+1, e), draw.White, draw.AlignCenter)
	}
}

func (g *Game) drawGameOverScreen() {
	s := g.surface
	cx, cy := g.opts.Width/2, g.opts.Height/2
	s.Text(cx, cy-100, "GAME OVER", draw.Orange, draw.AlignCenter)
	s.Text(cx, cy-60, fmt.Sprintf("Final score: %d", g.results.Score), draw.White, draw.AlignCenter)

	switch {
	case g.results.Naming:
		s.Text(cx, cy-20, "You made the top 3! Enter your name:", draw.Yellow, draw.AlignCenter)
		s.Text(cx, cy, string(g.results.Name)+"_", draw.White, draw.AlignCenter)
		return
	case g.results.Err != nil:
		s.Text(cx, cy-20, "Leaderboard unavailable", draw.Gray, draw.AlignCenter)
	default:
		g.drawBoard(cx, cy-20, g.results.Board)
	}
	s.Text(cx, cy+100, "Press SPACE to play again", draw.White, draw.AlignCenter)
}

func (g *Game) drawButtons() {
	for _, b := range g.input.buttons {
		pts := []draw.Point{
			{X: float64(b.Rect.Min.X), Y: float64(b.Rect.Min.Y)},
			{X: float64(b.Rect.Max.X), Y: float64(b.Rect.Min.Y)},
			{X: float64(b.Rect.Max.X), Y: float64(b.Rect.Max.Y)},
			{X: float64(b.Rect.Min.X), Y: float64(b.Rect.Max.Y)},
		}
		g.surface.Polygon(pts, draw.Fade(draw.White, 0.15), true)
		g.surface.Polygon(pts, draw.Gray, false)
		c := b.Rect.Min.Add(b.Rect.Max).Div(2)
		g.surface.Text(float64(c.X), float64(c.Y+4), b.Label, draw.White, draw.AlignCenter)
	}
}

var _ ebiten.Game = (*Game)(nil)
