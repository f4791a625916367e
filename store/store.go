// Package store implements the single state container for the layer
// switcher: a pure reducer over AppState, a selector deriving view
// props, and a Store that serializes dispatches and notifies
// subscribers synchronously.
//
// The Store is an explicit value. Create one at startup and pass it to
// whatever needs it; there is no package-level instance.
package store

import "sync"

// Listener is called after every dispatch with the new state.
type Listener func(s AppState)

// Transition is the outcome of one dispatch, captured under the store
// lock. Action is the action as applied, with PickLayer resolved.
// Applied is false when a middleware dropped the action.
type Transition struct {
	Action  Action
	From    AppState
	To      AppState
	Applied bool
}

// DispatchFunc submits an action and reports what it did.
type DispatchFunc func(a Action) Transition

// Middleware wraps the dispatch chain. It may inspect the action before
// calling next and the returned Transition after, or drop the action by
// returning a zero Transition without calling next.
type Middleware func(st *Store, next DispatchFunc) DispatchFunc

// Option configures a Store.
type Option func(*Store)

// WithMiddleware appends middleware. The first one given is the
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Store) {
		s.middleware = append(s.middleware, mw...)
	}
}

type subscription struct {
	id uint64
	fn Listener
}

// Store holds the current AppState.
type Store struct {
	mu     sync.RWMutex
	state  AppState
	subs   []subscription
	nextID uint64

	middleware []Middleware
	dispatch   DispatchFunc
}

// New creates a store holding initial.
func New(initial AppState, opts ...Option) *Store {
	s := &Store{state: initial}
	for _, opt := range opts {
		opt(s)
	}
	d := DispatchFunc(s.reduce)
	for i := len(s.middleware) - 1; i >= 0; i-- {
		d = s.middleware[i](s, d)
	}
	s.dispatch = d
	return s
}

// GetState returns the current snapshot. The Layers slice must be
// treated as read-only; the store never writes to it again.
func (s *Store) GetState() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch runs a through the middleware chain and the reducer. It
// returns after every subscriber has seen the new state.
func (s *Store) Dispatch(a Action) {
	s.dispatch(a)
}

// reduce is the innermost dispatch step. Resolving and reducing happen
// in one critical section.
func (s *Store) reduce(a Action) Transition {
	s.mu.Lock()
	prev := s.state
	applied := Resolve(prev, a)
	next := Reduce(prev, applied)
	s.state = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	// Notify outside lock so listeners can read state.
	for _, sub := range subs {
		sub.fn(next)
	}
	return Transition{Action: applied, From: prev, To: next, Applied: true}
}

// Subscribe registers l and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}
