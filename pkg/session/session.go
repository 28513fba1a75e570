// Package session tracks the authenticated-user state the form engine reads:
// whether anyone is signed in and under which email. Logout hooks let the
// assembler invalidate the shared token without a dependency cycle between
// the session and token packages.
package session

import "sync"

// Source supplies the current authentication state to readers.
type Source interface {
	Authenticated() bool
	Email() string
}

// State is the in-memory session source.
type State struct {
	mu       sync.RWMutex
	authed   bool
	email    string
	onLogout []func()
}

// NewState constructs an unauthenticated session.
func NewState() *State {
	return &State{}
}

// Authenticated reports whether a user is signed in.
func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

// Email returns the signed-in user's email, empty when unauthenticated.
func (s *State) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Login records the signed-in user.
func (s *State) Login(email string) {
	s.mu.Lock()
	s.authed = true
	s.email = email
	s.mu.Unlock()
}

// Logout clears the session and runs every registered hook.
func (s *State) Logout() {
	s.mu.Lock()
	s.authed = false
	s.email = ""
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// OnLogout registers a hook invoked after the session clears.
func (s *State) OnLogout(hook func()) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	s.onLogout = append(s.onLogout, hook)
	s.mu.Unlock()
}
