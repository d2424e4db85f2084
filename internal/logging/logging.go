// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arcade/internal/config"
)

// Options selects where a logger writes.
type Options struct {
	Prefix string
	// Fallback receives output when no log file is configured. The terminal
	// game passes io.Discard because stdout is the screen.
	Fallback io.Writer
}

// New returns a logger configured from settings and the file it writes to,
// if any. The caller closes the file.
func New(s config.Settings, opts Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		level = log.InfoLevel
	}

	var (
		out    = opts.Fallback
		closer io.Closer
	)
	if out == nil {
		out = os.Stderr
	}
	if s.LogFile != "" {
		f, ferr := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", ferr)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	if err != nil {
		logger.Warn("unknown log level, using info", "level", s.LogLevel)
	}
	return logger, closer, nil
}
