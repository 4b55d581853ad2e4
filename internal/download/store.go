// Package download owns single-use download credentials.
package download

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrInvalid covers both never-issued and already-consumed tokens; the
	// two must stay indistinguishable to callers.
	ErrInvalid = errors.New("download token invalid or consumed")
	ErrExpired = errors.New("download token expired")
)

// Credential grants one download of one file until ExpiresAt.
type Credential struct {
	Token     string
	FilePath  string
	ExpiresAt time.Time
}

// Store holds live credentials. A credential is removed on its first
// redemption attempt no matter how that attempt ends.
type Store struct {
	mu  sync.RWMutex
	m   map[string]Credential
	ttl time.Duration
	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		m:   make(map[string]Credential),
		ttl: ttl,
		now: time.Now,
	}
}

// Mint issues a fresh credential for filePath and returns it.
func (s *Store) Mint(filePath string) (Credential, error) {
	token, err := NewToken()
	if err != nil {
		return Credential{}, err
	}
	c := Credential{
		Token:     token,
		FilePath:  filePath,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Lock()
	s.m[token] = c
	s.mu.Unlock()
	return c, nil
}

// Redeem consumes a token. Exactly one of two concurrent redemptions of the
// same token can succeed; the delete happens before the grant is returned so
// a failure downstream never leaves the token redeemable again.
func (s *Store) Redeem(token string) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[token]
	if !ok {
		return Credential{}, ErrInvalid
	}
	delete(s.m, token)
	if s.now().After(c.ExpiresAt) {
		return Credential{}, ErrExpired
	}
	return c, nil
}

// Remove discards a credential without redeeming it.
func (s *Store) Remove(token string) {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
}

// Sweep evicts expired credentials and reports how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for t, c := range s.m {
		if now.After(c.ExpiresAt) {
			delete(s.m, t)
			n++
		}
	}
	return n
}

// Len reports how many credentials are live.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
