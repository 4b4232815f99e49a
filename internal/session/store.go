package session

import (
	"log/slog"
	"sync"
)

// Store owns a session's State. All changes go through Dispatch.
type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers map[int]func(State)
	nextID      int
}

// NewStore creates a Store holding initial
func NewStore(initial State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and notifies subscribers with the new state.
// Subscribers run outside the lock and may see snapshots out of order; State.Version orders them.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	prev := s.state
	s.state = Reduce(s.state, action)
	next := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if next.Version == prev.Version {
		slog.Debug("Store: Action ignored", "action", action.actionName())
		return next
	}

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn to receive every new state; the returned func unregisters it
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
