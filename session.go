package authstate

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State is a snapshot of the client side session
type State struct {
	IsAuthenticated bool `json:"is_authenticated"`
	User            User `json:"user,omitempty"`
	IsLoading       bool `json:"is_loading"`
}

// IsLoggingIn is true between a successful token check and the profile load
func (s State) IsLoggingIn() bool {
	return s.IsAuthenticated && isNilUser(s.User)
}

func (s State) String() string {
	userID := ""
	if !isNilUser(s.User) {
		userID = s.User.GetID()
	}
	return fmt.Sprintf(
		"State{IsAuthenticated: %t, User: %q, IsLoading: %t}",
		s.IsAuthenticated,
		userID,
		s.IsLoading,
	)
}

type subscription struct {
	id uuid.UUID
	fn Listener
}

// sessionStore holds the state triple and fans out changes to subscribers.
// Listeners run on the mutating goroutine after the lock is released.
type sessionStore struct {
	mu        sync.RWMutex
	state     State
	listeners []subscription
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		state: State{IsLoading: true},
	}
}

func (s *sessionStore) get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *sessionStore) subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	id := uuid.New()

	s.mu.Lock()
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// update applies fn under the write lock. When fn reports a change every
// listener is notified with the new snapshot.
func (s *sessionStore) update(fn func(st *State) bool) (State, bool) {
	s.mu.Lock()
	changed := fn(&s.state)
	snapshot := s.state
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if changed {
		for _, sub := range listeners {
			sub.fn(snapshot)
		}
	}
	return snapshot, changed
}

// setAuthenticated returns true when the flag actually flipped
func (s *sessionStore) setAuthenticated(v bool) bool {
	_, changed := s.update(func(st *State) bool {
		if st.IsAuthenticated == v {
			return false
		}
		st.IsAuthenticated = v
		return true
	})
	return changed
}

func (s *sessionStore) setUser(u User) {
	s.update(func(st *State) bool {
		st.User = u
		return true
	})
}

func (s *sessionStore) setLoading(v bool) {
	s.update(func(st *State) bool {
		if st.IsLoading == v {
			return false
		}
		st.IsLoading = v
		return true
	})
}

// clear drops the user and the authenticated flag in a single mutation
func (s *sessionStore) clear() bool {
	var flipped bool
	s.update(func(st *State) bool {
		flipped = st.IsAuthenticated
		st.User = nil
		st.IsAuthenticated = false
		return true
	})
	return flipped
}
