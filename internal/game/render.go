package game

import (
	"fmt"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

// HUD layout in logical coordinates.
const (
	hudLeft       = 20.0
	hudScoreY     = 30.0
	hudLivesY     = 60.0
	hudLineHeight = 30.0
	hudVersionY   = 20.0
	hudRightPad   = 10.0
	bannerOpacity = 0.8
)

// Draw renders every entity followed by the HUD.
func (w *World) Draw(s draw.Surface) error {
	ctx := object.DrawContext{Surface: s}

	if err := drawAll(ctx, w.Ships); err != nil {
		return err
	}
	if err := drawAll(ctx, w.Bullets); err != nil {
		return err
	}
	if err := drawAll(ctx, w.Asteroids); err != nil {
		return err
	}
	if err := drawAll(ctx, w.Aliens); err != nil {
		return err
	}
	if err := drawAll(ctx, w.Explosions); err != nil {
		return err
	}

	w.drawHUD(s)
	return nil
}

func drawAll[T object.Object](ctx object.DrawContext, items []T) error {
	for _, obj := range items {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawHUD draws the score, each player's lives, the level banner and the version.
func (w *World) drawHUD(s draw.Surface) {
	s.Text(hudLeft, hudScoreY, fmt.Sprintf("Score: %d", w.Score), draw.White, draw.AlignLeft)
	for i, ship := range w.Ships {
		y := hudLivesY + float64(i)*hudLineHeight
		s.Text(hudLeft, y, fmt.Sprintf("Player %d lives: %d", i+1, ship.Lives), draw.White, draw.AlignLeft)
	}

	if w.phase == PhaseLevelTransition {
		cx, cy := w.Screen.Center()
		s.Text(cx, cy, fmt.Sprintf("Level %d", w.Level), draw.Fade(draw.White, bannerOpacity), draw.AlignCenter)
	}

	s.Text(w.Screen.Width-hudRightPad, hudVersionY, Version, draw.White, draw.AlignRight)
}
