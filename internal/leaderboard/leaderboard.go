// Package leaderboard keeps the best three scores.
//
// Every finished game is submitted. A score that beats the lowest kept
// entry (or arrives while fewer than three are kept) is stored under the
// player's name; any other score is stored under Anonymous and falls off
// the list straight away. Equal scores keep their submission order.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// Size is the number of entries kept.
	Size = 3
	// Anonymous replaces empty names and the names of non-qualifying scores.
	Anonymous = "Anonymous"
	// MaxNameLength caps stored names, in runes.
	MaxNameLength = 16
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown leaderboard backend")

// Entry is one leaderboard line.
type Entry struct {
	Name  string `json:"name" msgpack:"name"`
	Score int    `json:"score" msgpack:"score"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s - %d", e.Name, e.Score)
}

// Store persists the leaderboard. Implementations are safe for concurrent use.
type Store interface {
	// Top returns the kept entries, best first.
	Top(ctx context.Context) ([]Entry, error)
	// Qualifies reports whether score would enter the leaderboard.
	Qualifies(ctx context.Context, score int) (bool, error)
	// Submit records a finished game and returns the updated leaderboard.
	Submit(ctx context.Context, name string, score int) ([]Entry, error)
	Close() error
}

// Open returns the store for a backend name: "sqlite", "file" or "memory".
// path is ignored by the memory backend.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "sqlite", "":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "file":
		return NewFileStore(path), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Qualifies reports whether score enters a leaderboard holding entries.
func Qualifies(entries []Entry, score int) bool {
	if len(entries) < Size {
		return true
	}
	lowest := entries[0].Score
	for _, e := range entries[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// Insert adds a finished game to entries and returns the new leaderboard.
// entries is not modified.
func Insert(entries []Entry, name string, score int) []Entry {
	if !Qualifies(entries, score) {
		name = Anonymous
	}
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, Entry{Name: CleanName(name), Score: score})
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(out) > Size {
		out = out[:Size]
	}
	return out
}

// CleanName trims name, drops control characters and truncates it to
// MaxNameLength runes. An empty result becomes Anonymous.
func CleanName(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if r < ' ' || r == utf8.RuneError || r == 0x7f {
			continue
		}
		if n == MaxNameLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		return s
	}
	return Anonymous
}
