package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/leaderboard"
)

func newTestSite(t *testing.T, store leaderboard.Store) *site {
	t.Helper()
	settings := config.Settings{SSHDisplayHost: "play.example.com", SSHPort: "2222"}
	s, err := newSite(settings, store, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCommand(t *testing.T) {
	s := &site{sshHost: "play.example.com", sshPort: "22"}
	if got := s.command(); got != "ssh -t play.example.com" {
		t.Errorf("command = %q", got)
	}
	s.sshPort = "2222"
	if got := s.command(); got != "ssh -t -p 2222 play.example.com" {
		t.Errorf("command = %q", got)
	}
}

func TestIndexListsLeaderboard(t *testing.T) {
	store := leaderboard.NewMemoryStore()
	store.Submit(context.Background(), "<ada>", 420)
	h := newTestSite(t, store).routes()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"ssh -t -p 2222 play.example.com", "&lt;ada&gt;", "420", "1."} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexWithoutStore(t *testing.T) {
	body := get(t, newTestSite(t, nil).routes(), "/").Body.String()
	if strings.Contains(body, "Leaderboard") {
		t.Error("leaderboard section shown without a store")
	}
}

func TestQRCode(t *testing.T) {
	rec := get(t, newTestSite(t, nil).routes(), "/qr.png")
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestLeaderboardAPI(t *testing.T) {
	store := leaderboard.NewMemoryStore()
	h := newTestSite(t, store).routes()

	if body := strings.TrimSpace(get(t, h, "/api/leaderboard").Body.String()); body != "[]" {
		t.Errorf("empty board = %q", body)
	}

	store.Submit(context.Background(), "ada", 420)
	var board []leaderboard.Entry
	if err := json.Unmarshal(get(t, h, "/api/leaderboard").Body.Bytes(), &board); err != nil {
		t.Fatal(err)
	}
	if len(board) != 1 || board[0].Name != "ada" || board[0].Score != 420 {
		t.Errorf("board = %v", board)
	}
}

func TestUnknownPath(t *testing.T) {
	if rec := get(t, newTestSite(t, nil).routes(), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
