// Package state is the client-side mirror of the signed-in session. Events
// are applied by a pure reducer; Store serializes dispatches and notifies
// subscribers such as the persistor.
package state

import "sync"

// User is the client's snapshot of the signed-in user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// State is the auth slice. IsAuthenticated is true exactly when Token and
// User are set.
type State struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Event is something that happened to the session.
type Event interface {
	event()
}

// SignedIn is dispatched with the result of a successful sign-in or sign-up.
type SignedIn struct {
	User  User
	Token string
}

// LoggedOut is dispatched on explicit sign-out and whenever the server
// rejects the stored token.
type LoggedOut struct{}

func (SignedIn) event()  {}
func (LoggedOut) event() {}

// Reduce returns the state after applying e. It never mutates s.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case SignedIn:
		u := ev.User
		return State{User: &u, Token: ev.Token, IsAuthenticated: true}
	case LoggedOut:
		return State{}
	default:
		return s
	}
}

// Store holds the current State.
type Store struct {
	// dispatchMu orders dispatches end to end, so subscribers see states in
	// the order they were produced.
	dispatchMu sync.Mutex

	mu     sync.Mutex
	state  State
	nextID int
	subs   map[int]func(State)
}

// NewStore creates a store starting from initial, usually the rehydrated
// state.
func NewStore(initial State) *Store {
	return &Store{state: initial, subs: make(map[int]func(State))}
}

// Dispatch applies e and notifies subscribers with the new state. Returns
// the new state. Subscribers may call Snapshot but must not Dispatch.
func (s *Store) Dispatch(e Event) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, e)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
