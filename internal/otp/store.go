package otp

import (
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store holds one-time passwords for the password-reset flow, keyed by
// username. Entries expire after the configured TTL; expired entries are
// dropped lazily on read and in bulk by Sweep.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewStore creates a Store with the given entry lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put stores a code for a username, replacing any previous one.
func (s *Store) Put(username, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[username] = entry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Consume validates a code for a username and removes it on success. An
// expired or unknown entry fails the same way as a wrong code.
func (s *Store) Consume(username, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[username]
	if !ok {
		return false
	}

	if s.now().After(e.expiresAt) {
		delete(s.entries, username)
		return false
	}

	if e.code != code {
		return false
	}

	delete(s.entries, username)
	return true
}

// Sweep removes all expired entries.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for username, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, username)
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
