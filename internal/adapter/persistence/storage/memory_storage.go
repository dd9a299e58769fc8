package storage

import (
	"context"
	"sync"

	"product_estimator/internal/usecase/interfaces"
)

// MemoryStorage keeps values for the lifetime of the process. It is the
// session tier: used as the fallback when the durable tier is unavailable.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ interfaces.IStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Name() string { return "memory" }

func (s *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
