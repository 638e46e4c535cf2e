package store

import (
	"context"
	"errors"
	"sync"

	"github.com/lox/pokerroom/internal/table"
)

// ErrNotFound is returned when no snapshot exists for a table
var ErrNotFound = errors.New("snapshot not found")

// Store persists table snapshots so tables survive a server restart
type Store interface {
	SaveSnapshot(ctx context.Context, snap table.Snapshot) error
	LoadSnapshot(ctx context.Context, tableID string) (table.Snapshot, error)
	LoadAllSnapshots(ctx context.Context) ([]table.Snapshot, error)
	DeleteSnapshot(ctx context.Context, tableID string) error
	Close()
}

// Memory is an in-process Store, used when no database is configured and in
// tests.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string]table.Snapshot
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]table.Snapshot)}
}

// SaveSnapshot stores or replaces the snapshot for a table
func (m *Memory) SaveSnapshot(_ context.Context, snap table.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.ID] = snap
	return nil
}

// LoadSnapshot returns the snapshot for a table
func (m *Memory) LoadSnapshot(_ context.Context, tableID string) (table.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snaps[tableID]
	if !ok {
		return table.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// LoadAllSnapshots returns every stored snapshot
func (m *Memory) LoadAllSnapshots(_ context.Context) ([]table.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]table.Snapshot, 0, len(m.snaps))
	for _, snap := range m.snaps {
		out = append(out, snap)
	}
	return out, nil
}

// DeleteSnapshot removes a table's snapshot, if present
func (m *Memory) DeleteSnapshot(_ context.Context, tableID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, tableID)
	return nil
}

// Close implements Store
func (m *Memory) Close() {}
