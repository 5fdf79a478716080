// Package store holds the single mutable copy of the task-list state and
// serializes every transition through the reducer.
package store

import (
	"fmt"
	"sync"

	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// Change describes one applied transition.
type Change struct {
	Action todo.Action
	Prev   todo.State
	Next   todo.State
}

// Listener is notified after every successful transition, while the store lock
// is held. Listeners must not call Dispatch.
type Listener func(Change) error

// Store owns the current state.
type Store struct {
	mu        sync.Mutex
	state     todo.State
	reducer   *todo.Reducer
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithReducer sets the reducer used for transitions, typically one with a
// deterministic ID generator.
func WithReducer(r *todo.Reducer) Option {
	return func(s *Store) { s.reducer = r }
}

// WithListener registers l at construction time.
func WithListener(l Listener) Option {
	return func(s *Store) { s.listeners = append(s.listeners, l) }
}

// New creates a store holding initial.
func New(initial todo.State, opts ...Option) *Store {
	s := &Store{state: initial.Clone(), reducer: &todo.Reducer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store) State() todo.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l. Listeners run in registration order.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies a to the current state and notifies listeners.
//
// A reduce error leaves the state unchanged and no listener runs. A listener
// error is returned after the transition has been applied; the remaining
// listeners still run.
func (s *Store) Dispatch(a todo.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.reducer.Reduce(s.state, a)
	if err != nil {
		return err
	}

	ch := Change{Action: a, Prev: s.state, Next: next}
	s.state = next

	var firstErr error
	for _, l := range s.listeners {
		if err := l(ch); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s listener: %w", a.Type(), err)
		}
	}
	return firstErr
}
