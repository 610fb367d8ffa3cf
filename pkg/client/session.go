package client

import (
	"errors"
	"sync"
	"time"
)

// State is the client-side authentication state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// ErrInvalidTransition is returned when a session method is called from a
// state it is not valid in, e.g. Succeed without a prior Begin.
var ErrInvalidTransition = errors.New("client: invalid session transition")

// Snapshot is the persisted view of an authenticated session.
type Snapshot struct {
	Token   string    `json:"token"`
	User    User      `json:"user"`
	SavedAt time.Time `json:"savedAt"`
}

// Session tracks the authentication lifecycle:
//
//	anonymous -> authenticating -> authenticated -> anonymous
//
// A login attempt moves through Begin and then either Succeed or Fail.
// Logout and Expire both drop an authenticated session back to anonymous;
// they differ only in why. All methods are safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	state State
	token string
	user  User
}

// NewSession returns a session in the anonymous state.
func NewSession() *Session {
	return &Session{state: StateAnonymous}
}

// Restore seeds an anonymous session directly into the authenticated state
// from a persisted snapshot. Used on construction, before any request runs.
func (s *Session) Restore(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnonymous {
		return ErrInvalidTransition
	}
	if snap.Token == "" {
		return ErrInvalidTransition
	}
	s.state = StateAuthenticated
	s.token = snap.Token
	s.user = snap.User
	return nil
}

// Begin marks the start of a login attempt.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnonymous {
		return ErrInvalidTransition
	}
	s.state = StateAuthenticating
	return nil
}

// Succeed completes a login attempt with the issued token and user.
func (s *Session) Succeed(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticating {
		return ErrInvalidTransition
	}
	s.state = StateAuthenticated
	s.token = token
	s.user = user
	return nil
}

// Fail aborts a login attempt and returns to anonymous.
func (s *Session) Fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticating {
		return ErrInvalidTransition
	}
	s.reset()
	return nil
}

// Logout drops an authenticated session deliberately.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return ErrInvalidTransition
	}
	s.reset()
	return nil
}

// Expire drops an authenticated session because the server stopped accepting
// its token.
func (s *Session) Expire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return ErrInvalidTransition
	}
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.state = StateAnonymous
	s.token = ""
	s.user = User{}
}

// State reports the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the bearer token, empty unless authenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the user captured at login. Zero value unless authenticated.
// It reflects the login response, not live server state.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
