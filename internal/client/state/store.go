package state

import (
	"sync"
)

// Listener is called after every dispatched action with the action and the
// resulting snapshot.
type Listener func(a Action, s State)

// Store holds the current State. Dispatch and Snapshot are safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn Listener
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and then notifies listeners in subscription order, in
// the calling goroutine and outside the lock, so a listener may dispatch
// again.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]*listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(a, next)
	}
	return next
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	e := &listenerEntry{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, e)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l == e {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
