package kv

import (
	"context"
	"sync"

	"github.com/studymate/studymate/core"
)

// InMemStore is a map-backed durable store used by tests and by degraded
// in-memory-only operation after a persistence failure.
type InMemStore struct {
	mu     sync.RWMutex
	values map[string]string

	// injectable failures
	GetErr error
	SetErr error
}

var _ core.KVStore = (*InMemStore)(nil)

func NewInMemStore() *InMemStore {
	return &InMemStore{values: make(map[string]string)}
}

func (s *InMemStore) Get(_ context.Context, key string) (string, error) {
	if s.GetErr != nil {
		return "", s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return value, nil
}

func (s *InMemStore) Set(_ context.Context, key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Seed writes a raw value bypassing failure injection; test setup only.
func (s *InMemStore) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Raw returns the stored value and whether it exists, bypassing failure injection.
func (s *InMemStore) Raw(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}
