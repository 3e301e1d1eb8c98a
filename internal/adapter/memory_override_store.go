package adapter

import (
	"context"
	"sync"

	"quiz-deck/internal/domain"
)

// MemoryOverrideStore keeps overrides in process memory. Edits are lost on restart.
type MemoryOverrideStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryOverrideStore() *MemoryOverrideStore {
	return &MemoryOverrideStore{values: make(map[string]string)}
}

func (m *MemoryOverrideStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return "", domain.ErrStoreMiss
	}
	return val, nil
}

func (m *MemoryOverrideStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryOverrideStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryOverrideStore) Ping(context.Context) error {
	return nil
}
