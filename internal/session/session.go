// Package session keeps the access token of a linked financial institution account
package session

import "sync"

// Session holds at most one OAuth2 access token
type Session struct {
	mu    sync.RWMutex
	token string
}

// New is constructor
func New() *Session {
	return &Session{}
}

// IsLinked reports whether a token is stored
func (s *Session) IsLinked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the stored token and whether there is one
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Store replaces any stored token
func (s *Session) Store(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear discards the stored token
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
