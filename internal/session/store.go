// Package session owns the client-side notion of "am I logged in, and as
// whom". The Store holds the state, the Client reconciles it against the
// remote Memoriq service, and a CredentialStrategy decides how a session is
// proven on the wire (cookie jar vs bearer token).
package session

import "sync"

// User is the identity reported by the service. Replaced wholesale on each
// successful verification, never partially mutated.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// State is a point-in-time snapshot of the session.
// Invariant: Authenticated == (User != nil).
type State struct {
	User          *User
	Authenticated bool
	Loading       bool
	Token         string
}

// Store is the single source of truth for session state. Mutations happen
// under a mutex because UI commands resolve on their own goroutines; each
// server response is applied as one atomic transition.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore returns a store in the initial Loading state: nobody is known to
// be logged in until the startup check settles.
func NewStore() *Store {
	return &Store{state: State{Loading: true}}
}

// State returns a read-only snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// SetUser records a verified identity and marks the session authenticated.
func (s *Store) SetUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &u
	s.state.Authenticated = true
}

// SetToken records the in-memory copy of the bearer credential.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
}

// Token returns the in-memory bearer credential, if any.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Clear drops the identity, the authenticated flag and the in-memory token.
// Durable credential removal is the strategy's job, not the store's.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.Authenticated = false
	s.state.Token = ""
}

// SetLoading flips the startup-check-in-progress flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = v
}
