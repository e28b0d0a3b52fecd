package repo

import (
	"context"
	"sync"
)

// MemStore is a map-backed BlobStore for tests and throwaway sessions.
// FailWrites, when set, makes every Write return the given error, which
// lets tests exercise the rollback path of the reservation store.
type MemStore struct {
	mu         sync.RWMutex
	blobs      map[string]string
	FailWrites error
}

var _ BlobStore = (*MemStore)(nil)

// NewMemStore returns an empty in-memory blob store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string]string)}
}

// Read returns the blob stored under key, or ok=false when absent.
func (m *MemStore) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

// Write stores value under key, or fails with FailWrites when set.
func (m *MemStore) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.blobs[key] = value
	return nil
}

// Clear removes the blob stored under key.
func (m *MemStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
