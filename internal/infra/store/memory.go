package store

import (
	"context"
	"sync"
)

// Memory is a volatile in-process keyed store. Each operation is a single
// atomic map access guarded by the mutex; values are stored and returned by
// copy, so callers never alias stored state. Concurrent updates to the same
// id are last-writer-wins.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemory creates an empty in-memory store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{items: make(map[string]T)}
}

// Get retrieves a value by id. The boolean reports presence.
func (m *Memory[T]) Get(_ context.Context, id string) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[id]
	return v, ok, nil
}

// Set writes a value under the given id, replacing any previous value.
func (m *Memory[T]) Set(_ context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

// Delete removes a value by id, reporting whether it existed.
func (m *Memory[T]) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	delete(m.items, id)
	return ok, nil
}

// List returns all stored values.
func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.items))
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, nil
}
