package leaderboard

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps the leaderboard for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore returns an empty in-memory leaderboard.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Top(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

func (m *MemoryStore) Qualifies(_ context.Context, score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Qualifies(m.entries, score), nil
}

func (m *MemoryStore) Submit(_ context.Context, name string, score int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = Insert(m.entries, name, score)
	return slices.Clone(m.entries), nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
