package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ASTEROIDS_TEST_KEY", "value")
	if got := GetEnv("ASTEROIDS_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("ASTEROIDS_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing = %q", got)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("T_INT", "42")
	t.Setenv("T_FLOAT", " 1.5 ")
	t.Setenv("T_ON", "on")
	t.Setenv("T_FALSE", "false")
	t.Setenv("T_BAD", "nope")

	if n, err := GetInt("T_INT", 0); err != nil || n != 42 {
		t.Errorf("GetInt = %d, %v", n, err)
	}
	if f, err := GetFloat("T_FLOAT", 0); err != nil || f != 1.5 {
		t.Errorf("GetFloat = %v, %v", f, err)
	}
	if b, err := GetBool("T_ON", false); err != nil || !b {
		t.Errorf("GetBool(on) = %v, %v", b, err)
	}
	if b, err := GetBool("T_FALSE", true); err != nil || b {
		t.Errorf("GetBool(false) = %v, %v", b, err)
	}
	if b, err := GetBool("T_UNSET", true); err != nil || !b {
		t.Errorf("GetBool(unset) = %v, %v", b, err)
	}

	n, err := GetInt("T_BAD", 7)
	if err == nil || n != 7 || !strings.Contains(err.Error(), "T_BAD") {
		t.Errorf("GetInt(bad) = %d, %v", n, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"SSH_PORT", "AUDIO", "SEED", "SCREEN_WIDTH", "LEADERBOARD_BACKEND"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	s, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if s.SSHPort != DefaultSSHPort || !s.Audio || s.Seed != 0 || s.ScreenWidth != DefaultScreenWidth {
		t.Errorf("defaults = %+v", s)
	}
	if s.LeaderboardBackend != DefaultBackend {
		t.Errorf("backend = %q", s.LeaderboardBackend)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.env")
	content := "SSH_PORT=2300\nAUDIO=off\nSEED=99\nLEADERBOARD_BACKEND=file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"SSH_PORT", "AUDIO", "SEED", "LEADERBOARD_BACKEND"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.SSHPort != "2300" || s.Audio || s.Seed != 99 || s.LeaderboardBackend != "file" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load should fail for a named file that does not exist")
	}
}

func TestLoadReportsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEED", "abc")
	t.Setenv("SCREEN_WIDTH", "-5")

	s, err := Load()
	if err == nil || !strings.Contains(err.Error(), "SEED") {
		t.Errorf("Load error = %v", err)
	}
	if s.ScreenWidth != DefaultScreenWidth {
		t.Errorf("negative width should fall back, got %v", s.ScreenWidth)
	}
}
