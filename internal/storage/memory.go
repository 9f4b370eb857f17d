package storage

import (
	"context"
	"sync"
)

// MemoryStore is a non-durable Store used in tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	writeFn func(key string) error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// FailWritesWith installs a write-failure hook; pass nil to clear it.
func (m *MemoryStore) FailWritesWith(fn func(key string) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeFn = fn
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeFn != nil {
		if err := m.writeFn(key); err != nil {
			return err
		}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeFn != nil {
		if err := m.writeFn(key); err != nil {
			return err
		}
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
