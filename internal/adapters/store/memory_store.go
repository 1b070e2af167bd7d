// Package store provides key/value store implementations for persisting
// classifier artifacts: an in-memory store for tests and ephemeral use,
// plus SQLite and MySQL backends.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the KeyValueStore
// interface. Values survive for the process lifetime only.
type MemoryStore struct {
	values map[string][]byte
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		logger: logger,
	}
}

// Get retrieves the value for a key
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores a value under a key
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Remove deletes a key
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
