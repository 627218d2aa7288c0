package repository

import (
	"context"
	"sync"

	"github.com/metinatakli/movie-favorites/internal/domain"
)

// MemorySlotStore keeps slots in process memory. Nothing survives a restart.
type MemorySlotStore struct {
	sync.RWMutex
	data map[string]string
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{
		data: map[string]string{},
	}
}

func (m *MemorySlotStore) Get(_ context.Context, key string) (string, error) {
	m.RLock()
	defer m.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", domain.ErrSlotEmpty
	}

	return value, nil
}

func (m *MemorySlotStore) Set(_ context.Context, key string, value string) error {
	m.Lock()
	defer m.Unlock()

	m.data[key] = value

	return nil
}
