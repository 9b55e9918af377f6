// Package session persists the authenticated API session (bearer token and
// account email) behind an injectable Store.
package session

import (
	"errors"
	"time"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("no session")

// Session is the persisted authentication state.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // zero when the API did not report an expiry
	Email        string
}

// Valid reports whether the session carries a token that has not expired.
func (s Session) Valid(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Store reads and writes the session.
type Store interface {
	// Load returns the stored session or ErrNoSession.
	Load() (Session, error)
	Save(s Session) error
	Clear() error
	Close() error
}

// Token returns the bearer token of a valid stored session, or "".
func Token(store Store, now time.Time) string {
	s, err := store.Load()
	if err != nil || !s.Valid(now) {
		return ""
	}
	return s.AccessToken
}
