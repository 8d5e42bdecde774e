package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-memory Store for tests and single-process development.
type Memory struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

func memKey(profile, key string) string {
	return profile + "/" + key
}

func (m *Memory) Get(_ context.Context, profile, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[memKey(profile, key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(_ context.Context, profile, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	m.values[memKey(profile, key)] = stored
	return nil
}
