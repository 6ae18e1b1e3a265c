// Package session is the single source of truth for "is someone logged in,
// and as whom". It mirrors every change into a tokenstore.Store so code that
// does not subscribe can still read the current token synchronously.
//
// A Session is either Unauthenticated (no token, no user) or Authenticated
// (both present). A token without a user, or the reverse, is never
// observable.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// ErrEmptyToken is returned by SignIn for a result without a token.
var ErrEmptyToken = errors.New("auth result has no token")

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Snapshot is an immutable view of the session handed to readers and
// subscribers.
type Snapshot struct {
	Token string
	User  *models.AuthUser
}

func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}

func (s Snapshot) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Unauthenticated
}

type Session struct {
	mu    sync.Mutex
	store *tokenstore.Store
	log   logging.Logger

	token string
	user  *models.AuthUser

	subs   map[int]func(Snapshot)
	nextID int
}

// New creates a Session backed by store and rehydrates it: if the store
// already holds a complete token/user pair the session starts
// Authenticated, otherwise Unauthenticated.
func New(store *tokenstore.Store, log logging.Logger) *Session {
	s := &Session{
		store: store,
		log:   log,
		subs:  make(map[int]func(Snapshot)),
	}
	if res, ok := store.AuthResult(); ok {
		u := res.User
		s.token = res.Token
		s.user = &u
		log.Debug(context.Background(), "session rehydrated", "user", u.Identifier())
	}
	return s
}

// SignIn replaces whatever session exists with result. Token and user are
// set together.
func (s *Session) SignIn(result models.AuthResult) error {
	if result.Token == "" {
		return ErrEmptyToken
	}
	u := result.User.Clone()

	s.mu.Lock()
	s.store.SetAuthResult(result)
	s.token = result.Token
	s.user = &u
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	s.log.Info(context.Background(), "signed in", "user", u.Identifier())
	notify(subs, snap)
	return nil
}

// SignOut clears the session. It is idempotent; subscribers are only
// notified when the session actually was authenticated.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.store.ClearAuth()
	was := s.token != ""
	s.token = ""
	s.user = nil
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	if !was {
		return
	}
	s.log.Info(context.Background(), "signed out")
	notify(subs, snap)
}

// Logout is an alias of SignOut.
func (s *Session) Logout() {
	s.SignOut()
}

// UpdateUser merges patch into the current user. Without a session it does
// nothing.
func (s *Session) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	u := s.user.Apply(patch)
	s.user = &u
	s.store.UpdateAuthUser(patch)
	snap, subs := s.snapshotLocked(), s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snap)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// User returns a copy of the signed-in user.
func (s *Session) User() (models.AuthUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.AuthUser{}, false
	}
	return s.user.Clone(), true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

func (s *Session) State() State {
	return s.Snapshot().State()
}

// Subscribe registers fn to be called with a fresh Snapshot after every
// change. Callbacks run synchronously on the goroutine that made the change,
// in subscription order. The returned func removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) snapshotLocked() Snapshot {
	if s.token == "" || s.user == nil {
		return Snapshot{}
	}
	u := s.user.Clone()
	return Snapshot{Token: s.token, User: &u}
}

func (s *Session) subscribersLocked() []func(Snapshot) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
