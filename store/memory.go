// Package store persists parsed snapshots so a restart within the
// cache TTL can serve without refetching the feed.
package store

import (
	"sync"

	"departures.dev/stationboard"
)

// Memory holds the snapshot in process memory. Useful in tests and
// as a null store for deployments that don't mind cold starts.
type Memory struct {
	mu       sync.Mutex
	snapshot *stationboard.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (*stationboard.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot, nil
}

func (m *Memory) Save(snap *stationboard.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
	return nil
}
