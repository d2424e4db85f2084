package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
	"github.com/tomz197/asteroids-arcade/internal/logging"
	"github.com/tomz197/asteroids-arcade/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout is the game screen, so logs only go to LOG_FILE.
	logger, logFile, err := logging.New(settings, logging.Options{Prefix: "game", Fallback: io.Discard})
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

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Logger: logger,
		Store:  store,
		Audio:  sink,
		Rand:   newRand(settings.Seed, logger),
		Width:  settings.ScreenWidth,
		Height: settings.ScreenHeight,
	}
	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
}

// newRand seeds from SEED, or from the clock when it is zero.
func newRand(seed int64, logger *log.Logger) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("seeded", "seed", seed)
	return rand.New(rand.NewSource(seed))
}
