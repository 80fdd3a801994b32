// Package otp generates registration one-time passwords and keeps them in a
// service-owned store with a bounded lifetime. The store is created at service
// construction and injected, never reached as ambient global state; entries
// are evicted on successful consumption or expiry.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type entry struct {
	code      string
	expiresAt time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[string]entry

	TTL time.Duration
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Put records the code for the email, replacing any earlier one.
func (s *Store) Put(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expiresAt: s.now().Add(s.ttl())}
}

// Consume reports whether code matches the stored one for email. A match
// removes the entry; an expired entry is evicted and never matches.
func (s *Store) Consume(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return false
	}
	if e.code != code {
		return false
	}
	delete(s.entries, email)
	return true
}
