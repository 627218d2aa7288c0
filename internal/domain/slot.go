package domain

import "context"

// SlotStore reads and writes named entries of durable key-value storage.
// Get returns ErrSlotEmpty when the key has never been written.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
