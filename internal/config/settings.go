package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Defaults for every setting.
const (
	DefaultSSHHost        = "::"
	DefaultSSHPort        = "2222"
	DefaultSSHHostKey     = "/app/keys/host_key"
	DefaultWebHost        = "0.0.0.0"
	DefaultWebPort        = "8080"
	DefaultSSHDisplayHost = "your-server.com"
	DefaultBackend        = "sqlite"
	DefaultLeaderboard    = "asteroids.db"
	DefaultLogLevel       = "info"
	DefaultScreenWidth    = 960
	DefaultScreenHeight   = 640
)

// Settings is the process configuration, read from the environment.
type Settings struct {
	SSHHost        string
	SSHPort        string
	SSHHostKey     string
	WebHost        string
	WebPort        string
	SSHDisplayHost string // Host shown to players in the connect command

	LeaderboardBackend string // sqlite, file or memory
	LeaderboardPath    string

	Audio    bool
	LogLevel string
	LogFile  string // Empty means stderr for servers, discard for the terminal game

	ScreenWidth  float64
	ScreenHeight float64
	Seed         int64 // 0 seeds from the clock
}

// Load reads Settings from the environment after loading any .env files.
// With no files given it tries ./.env, which may be missing.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !(len(files) == 0 && errors.Is(err, fs.ErrNotExist)) {
		return Settings{}, err
	}

	s := Settings{
		SSHHost:            GetEnv("SSH_HOST", DefaultSSHHost),
		SSHPort:            GetEnv("SSH_PORT", DefaultSSHPort),
		SSHHostKey:         GetEnv("SSH_HOST_KEY", DefaultSSHHostKey),
		WebHost:            GetEnv("WEB_HOST", DefaultWebHost),
		WebPort:            GetEnv("WEB_PORT", DefaultWebPort),
		SSHDisplayHost:     GetEnv("SSH_DISPLAY_HOST", DefaultSSHDisplayHost),
		LeaderboardBackend: GetEnv("LEADERBOARD_BACKEND", DefaultBackend),
		LeaderboardPath:    GetEnv("LEADERBOARD_PATH", DefaultLeaderboard),
		LogLevel:           GetEnv("LOG_LEVEL", DefaultLogLevel),
		LogFile:            GetEnv("LOG_FILE", ""),
	}

	var errs []error
	var err error
	s.Audio, err = GetBool("AUDIO", true)
	errs = append(errs, err)
	s.ScreenWidth, err = GetFloat("SCREEN_WIDTH", DefaultScreenWidth)
	errs = append(errs, err)
	s.ScreenHeight, err = GetFloat("SCREEN_HEIGHT", DefaultScreenHeight)
	errs = append(errs, err)
	s.Seed, err = GetInt("SEED", 0)
	errs = append(errs, err)

	if s.ScreenWidth <= 0 {
		s.ScreenWidth = DefaultScreenWidth
	}
	if s.ScreenHeight <= 0 {
		s.ScreenHeight = DefaultScreenHeight
	}
	return s, errors.Join(errs...)
}
