// Package session keeps the client-side copy of the last-known identity and
// bearer token. It survives process restarts via a pluggable Storage backend
// but is always advisory: only the server's verification of the token is
// authoritative. The store exists to avoid redundant network calls and to
// render optimistically.
package session

import (
	"encoding/json"
	"sync"
)

const (
	keyToken    = "auth_token"
	keyIdentity = "user"
)

// Identity is the client-side view of the authenticated user.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session pairs the cached identity with its bearer token.
type Session struct {
	Identity *Identity
	Token    string
}

// Storage is a durable string key-value backing. Write replaces the entire
// contents in one operation, which is what makes Save atomic from the
// store's perspective.
type Storage interface {
	Read() (map[string]string, error)
	Write(entries map[string]string) error
}

// Store synchronizes an in-memory session with durable storage.
type Store struct {
	mu      sync.Mutex
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Save persists identity and token together. Either both are retrievable
// afterwards or neither; a partial write never survives.
func (s *Store) Save(identity *Identity, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.storage.Write(map[string]string{
		keyToken:    token,
		keyIdentity: string(raw),
	})
}

// Load reconstructs the session from storage. Corrupt or partially present
// data (a token without an identity, or the reverse) is treated as no
// session at all: the remnants are cleared and the caller must
// re-authenticate rather than operate on partial trust.
func (s *Store) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.storage.Read()
	if err != nil {
		_ = s.storage.Write(map[string]string{})
		return Session{}, false
	}

	token := entries[keyToken]
	rawIdentity := entries[keyIdentity]
	if token == "" || rawIdentity == "" {
		if token != "" || rawIdentity != "" {
			_ = s.storage.Write(map[string]string{})
		}
		return Session{}, false
	}

	var identity Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil || identity.ID == "" {
		_ = s.storage.Write(map[string]string{})
		return Session{}, false
	}

	return Session{Identity: &identity, Token: token}, true
}

// Clear removes both fields. Calling it twice leaves the same empty state as
// calling it once.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Write(map[string]string{})
}
