// Package tokenstore keeps the latest token/user pair in memory so code that
// does not subscribe to the session can still ask "who is logged in".
//
// The session is the only writer; everything else reads. None of the
// operations fail: an absent value is reported through the boolean result.
package tokenstore

import (
	"sync"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
)

// Store holds at most one token/user pair.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *models.AuthUser
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

var defaultStore = New()

// Default returns the process-wide Store.
func Default() *Store {
	return defaultStore
}

// SetAuthResult overwrites both the token and the user.
func (s *Store) SetAuthResult(result models.AuthResult) {
	u := result.User.Clone()

	s.mu.Lock()
	s.token = result.Token
	s.user = &u
	s.mu.Unlock()
}

// ClearAuth drops the token and the user. Calling it on an empty store is a no-op.
func (s *Store) ClearAuth() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// AuthToken returns the current token, if any.
func (s *Store) AuthToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// AuthUser returns a copy of the current user, if any.
func (s *Store) AuthUser() (models.AuthUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.AuthUser{}, false
	}
	return s.user.Clone(), true
}

// AuthResult returns the token/user pair only when both are present.
func (s *Store) AuthResult() (models.AuthResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return models.AuthResult{}, false
	}
	return models.AuthResult{Token: s.token, User: s.user.Clone()}, true
}

// UpdateAuthUser merges the patch into the held user. Without a user it
// does nothing.
func (s *Store) UpdateAuthUser(patch models.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	u := s.user.Apply(patch)
	s.user = &u
}

// AuthUserID resolves the numeric id of the held user from either the
// modern or the legacy identifier field.
func (s *Store) AuthUserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0, false
	}
	return s.user.NumericID()
}
