// Package memory provides an in-process slot store, used as the default
// backend and in tests.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu    sync.RWMutex
	slots map[string]string
}

func New() *Store {
	return &Store{slots: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}
