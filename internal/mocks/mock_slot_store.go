package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/movie-favorites/internal/domain"
)

// MockSlotStore serves Get from GetFunc and records every Set. A nil GetFunc
// behaves like an empty slot; a non-nil SetErr fails every write.
type MockSlotStore struct {
	mu      sync.Mutex
	GetFunc func(ctx context.Context, key string) (string, error)
	SetErr  error
	Writes  []SlotWrite
}

type SlotWrite struct {
	Key   string
	Value string
}

func (m *MockSlotStore) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc == nil {
		return "", domain.ErrSlotEmpty
	}

	return m.GetFunc(ctx, key)
}

func (m *MockSlotStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Writes = append(m.Writes, SlotWrite{Key: key, Value: value})

	return m.SetErr
}

func (m *MockSlotStore) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Writes)
}
