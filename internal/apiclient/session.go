package apiclient

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrSessionExpired is returned by every call made after (or observing)
// a 401. The dashboard reacts to it exactly once.
var ErrSessionExpired = errors.New("session expired")

// Session holds the bearer credential shared by all in-flight calls.
// The credential is written only by login and the expiry path, so
// concurrent fetches observing the same 401 cannot race a re-redirect:
// Expire is a single-flight latch and only its winner should prompt
// re-authentication.
type Session struct {
	mu         sync.RWMutex
	credential string
	expired    atomic.Bool
}

func NewSession(credential string) *Session {
	s := &Session{}
	s.credential = credential

	return s
}

func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.credential
}

// SetCredential installs a fresh credential and re-arms the latch.
func (s *Session) SetCredential(credential string) {
	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()

	s.expired.Store(false)
}

// Expired reports whether the latch has fired.
func (s *Session) Expired() bool {
	return s.expired.Load()
}

// Expire fires the latch and clears the stored credential. It returns
// true for exactly one caller; losers already know the session is gone.
func (s *Session) Expire() bool {
	if !s.expired.CompareAndSwap(false, true) {
		return false
	}

	s.mu.Lock()
	s.credential = ""
	s.mu.Unlock()

	return true
}
