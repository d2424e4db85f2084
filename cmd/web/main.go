package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/skip2/go-qrcode"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/game"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
	"github.com/tomz197/asteroids-arcade/internal/logging"
)

const qrSize = 256

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlPage))

// site serves the landing page: how to connect, a QR code of the ssh
// command and the current leaderboard.
type site struct {
	sshHost string
	sshPort string
	store   leaderboard.Store // Nil hides the leaderboard
	logger  *log.Logger
	qr      []byte
}

type pageData struct {
	Command string
	Version string
	Board   []leaderboard.Entry
}

func newSite(settings config.Settings, store leaderboard.Store, logger *log.Logger) (*site, error) {
	s := &site{
		sshHost: settings.SSHDisplayHost,
		sshPort: settings.SSHPort,
		store:   store,
		logger:  logger,
	}
	png, err := qrcode.Encode(s.command(), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	s.qr = png
	return s, nil
}

// command is the ssh invocation players copy.
func (s *site) command() string {
	if s.sshPort == "" || s.sshPort == "22" {
		return "ssh -t " + s.sshHost
	}
	return fmt.Sprintf("ssh -t -p %s %s", s.sshPort, s.sshHost)
}

func (s *site) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /qr.png", s.handleQR)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	return mux
}

func (s *site) top(ctx context.Context) []leaderboard.Entry {
	if s.store == nil {
		return nil
	}
	board, err := s.store.Top(ctx)
	if err != nil {
		s.logger.Warn("load leaderboard", "err", err)
		return nil
	}
	return board
}

func (s *site) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Command: s.command(), Version: game.Version, Board: s.top(r.Context())}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

func (s *site) handleQR(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(s.qr)
}

func (s *site) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board := s.top(r.Context())
	if board == nil {
		board = []leaderboard.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		s.logger.Error("encode leaderboard", "err", err)
	}
}

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, logFile, err := logging.New(settings, logging.Options{Prefix: "web"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, err := leaderboard.Open(settings.LeaderboardBackend, settings.LeaderboardPath)
	if err != nil {
		logger.Warn("leaderboard hidden", "err", err)
	} else {
		defer store.Close()
	}

	s, err := newSite(settings, store, logger)
	if err != nil {
		logger.Fatal("build site", "err", err)
	}

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
