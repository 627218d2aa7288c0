package favorites

import "context"

// Persister mirrors the liked movies into Storage after every dispatch.
// Write failures are logged by Storage and do not reach the store.
type Persister struct {
	storage *Storage
}

func NewPersister(storage *Storage) *Persister {
	return &Persister{
		storage: storage,
	}
}

func (p *Persister) OnStateChange(ctx context.Context, state State) {
	// the write outlives a cancelled request
	_ = p.storage.Save(context.WithoutCancel(ctx), state.LikedMovies)
}
