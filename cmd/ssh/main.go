package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
	applog "github.com/tomz197/asteroids-arcade/internal/logging"
	"github.com/tomz197/asteroids-arcade/internal/loop"
)

const shutdownGrace = loop.ShutdownDisplay + 5*time.Second

// arcade serves one independent game per SSH session, sharing the leaderboard.
type arcade struct {
	settings config.Settings
	logger   *log.Logger
	store    leaderboard.Store

	mu       sync.Mutex
	closing  bool          // Set once shutdown starts; new sessions are refused
	shutdown chan struct{} // Closed to show every player the shutdown notice
	sessions sync.WaitGroup
}

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, logFile, err := applog.New(settings, applog.Options{Prefix: "ssh"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.SSHHostKey, "workingDir", workingDir)

	store, err := leaderboard.Open(settings.LeaderboardBackend, settings.LeaderboardPath)
	if err != nil {
		logger.Fatal("open leaderboard", "err", err)
	}
	defer store.Close()

	a := &arcade{
		settings: settings,
		logger:   logger,
		store:    store,
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server, notifying connected players")
	a.drain(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// drain shows the shutdown notice and waits up to grace for sessions to end.
func (a *arcade) drain(grace time.Duration) {
	a.mu.Lock()
	a.closing = true
	close(a.shutdown)
	a.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		a.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		a.logger.Info("all sessions ended")
	case <-time.After(grace):
		a.logger.Warn("sessions still open after grace period")
	}
}

// begin registers a new session. It reports false once shutdown started.
func (a *arcade) begin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closing {
		return false
	}
	a.sessions.Add(1)
	return true
}

// gameMiddleware handles SSH sessions and runs a game in each.
func (a *arcade) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !a.begin() {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		defer a.sessions.Done()

		logger := a.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			TermSizeFunc:         sizeTracker.getSize,
			Logger:               logger,
			Store:                a.store,
			Width:                a.settings.ScreenWidth,
			Height:               a.settings.ScreenHeight,
			InactivityWarn:       loop.InactivityWarn,
			InactivityDisconnect: loop.InactivityDisconnect,
			Shutdown:             a.shutdown,
		}
		if err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
