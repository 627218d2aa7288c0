package favorites

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Listener is notified after every dispatch with the resulting state.
type Listener interface {
	OnStateChange(ctx context.Context, state State)
}

type ListenerFunc func(ctx context.Context, state State)

func (f ListenerFunc) OnStateChange(ctx context.Context, state State) {
	f(ctx, state)
}

type subscription struct {
	id       uuid.UUID
	listener Listener
}

// Store owns the liked movies state. Dispatches are serialised: the reducer
// and every listener run to completion before the next dispatch starts.
// Listeners must not call Dispatch or an unsubscribe func.
type Store struct {
	mu            sync.Mutex
	state         State
	subscriptions []subscription
}

func New(initial State) *Store {
	return &Store{
		state: dedupeState(initial),
	}
}

// Initialize builds the store from what storage holds and subscribes a
// Persister, so every later dispatch is written back to the same slot.
func Initialize(ctx context.Context, storage *Storage) *Store {
	store := New(State{LikedMovies: storage.Load(ctx)})
	store.Subscribe(NewPersister(storage))

	return store
}

// Dispatch applies action and returns a copy of the state it produced, which
// later dispatches cannot change.
func (s *Store) Dispatch(ctx context.Context, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)

	for _, sub := range s.subscriptions {
		sub.listener.OnStateChange(ctx, s.state)
	}

	return s.state.clone()
}

// Subscribe registers l and returns a func that removes it again.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.subscriptions = append(s.subscriptions, subscription{id: id, listener: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

func dedupeState(state State) State {
	if state.LikedMovies == nil {
		return state
	}

	return State{LikedMovies: dedupe(state.LikedMovies)}
}
