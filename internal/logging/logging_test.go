package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/config"
)

func TestNewUsesLevelAndFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.Settings{LogLevel: "warn"}, Options{Prefix: "test", Fallback: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if closer != nil {
		t.Error("no file was configured")
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "test") {
		t.Errorf("output = %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(config.Settings{LogLevel: "loud"}, Options{Fallback: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, closer, err := New(config.Settings{LogLevel: "debug", LogFile: path}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("level started", "level", 2)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "level started") {
		t.Errorf("log file = %q", data)
	}
}
