package keystore

import (
	"context"
	"sync"
)

// MemoryStore keeps the key in process memory
type MemoryStore struct {
	mu  sync.RWMutex
	key string
	set bool
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, key string) error {
	key, err := normalize(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.key, s.set = key, true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Read(context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, s.set, nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	s.key, s.set = "", false
	s.mu.Unlock()
	return nil
}
