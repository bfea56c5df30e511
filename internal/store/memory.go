// Package store provides the process-scoped in-memory state objects.
// Nothing here survives a restart; that is deliberate. The stores are
// injected into handlers and services, never reached as globals.
package store

import (
	"sync"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// AuthStates holds pending PKCE verifiers keyed by state token.
type AuthStates struct {
	mu      sync.Mutex
	pending map[string]string
}

var _ ports.AuthStateStore = (*AuthStates)(nil)

func NewAuthStates() *AuthStates {
	return &AuthStates{pending: make(map[string]string)}
}

func (s *AuthStates) Put(state, verifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[state] = verifier
}

// Take consumes the entry: a second Take with the same state misses, which is
// what makes replayed callbacks fail.
func (s *AuthStates) Take(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	verifier, ok := s.pending[state]
	if ok {
		delete(s.pending, state)
	}
	return verifier, ok
}

// Credentials maps identity keys to credential records. Re-login overwrites;
// records live for the process lifetime.
type Credentials struct {
	mu      sync.RWMutex
	records map[string]domain.CredentialRecord
}

var _ ports.CredentialStore = (*Credentials)(nil)

func NewCredentials() *Credentials {
	return &Credentials{records: make(map[string]domain.CredentialRecord)}
}

func (s *Credentials) Put(key string, rec domain.CredentialRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

func (s *Credentials) Get(key string) (domain.CredentialRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Taste accumulates liked artists/genres per identity key. Union-only growth.
type Taste struct {
	mu       sync.Mutex
	profiles map[string]domain.TasteProfile
}

var _ ports.TasteStore = (*Taste)(nil)

func NewTaste() *Taste {
	return &Taste{profiles: make(map[string]domain.TasteProfile)}
}

func (s *Taste) Merge(key string, artists, genres []string) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[key]
	if !ok {
		p = domain.NewTasteProfile()
		s.profiles[key] = p
	}
	p.Merge(artists, genres)
	return len(p.LikedArtists), len(p.LikedGenres)
}

// Get returns a copy so callers can read without holding the lock.
func (s *Taste) Get(key string) domain.TasteProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[key]
	if !ok {
		return domain.NewTasteProfile()
	}
	snapshot := domain.NewTasteProfile()
	for a := range p.LikedArtists {
		snapshot.LikedArtists[a] = struct{}{}
	}
	for g := range p.LikedGenres {
		snapshot.LikedGenres[g] = struct{}{}
	}
	return snapshot
}
