package repositories

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot blob in memory. Used for tests and STORAGE_DRIVER=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte

	// WriteErr, when set, is returned by every Write
	WriteErr error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns a copy of the stored blob
func (s *MemoryStore) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrSnapshotMissing
	}
	return append([]byte(nil), s.data...), nil
}

// Write replaces the stored blob
func (s *MemoryStore) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.data = append([]byte(nil), data...)
	return nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
