package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/gfx"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
	"github.com/tomz197/asteroids-arcade/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "desktop error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, logFile, err := logging.New(settings, logging.Options{Prefix: "desktop"})
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, err := leaderboard.Open(settings.LeaderboardBackend, settings.LeaderboardPath)
	if err != nil {
		logger.Error("leaderboard disabled", "err", err)
	} else {
		defer store.Close()
	}

	var sink audio.Sink = audio.NopSink{}
	if settings.Audio {
		beep, err := audio.NewBeepSink()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer beep.Close()
			sink = beep
		}
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := gfx.NewGame(context.Background(), gfx.Options{
		Logger: logger,
		Store:  store,
		Audio:  sink,
		Rand:   rand.New(rand.NewSource(seed)),
		Width:  settings.ScreenWidth,
		Height: settings.ScreenHeight,
	})

	ebiten.SetWindowSize(int(settings.ScreenWidth), int(settings.ScreenHeight))
	ebiten.SetWindowTitle("Asteroids " + game.Version)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
