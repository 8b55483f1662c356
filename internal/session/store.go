// Package session holds the identity snapshots of logged-in users, keyed by
// the opaque token carried in the session cookie. Entries live until logout;
// expiry is enforced by the cookie max-age on the client side.
package session

import (
	"sync"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/google/uuid"
)

// Identity is the snapshot stored at login time. It is not refreshed if the
// underlying account changes.
type Identity struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Store maps session tokens to identities. Implementations must be safe for
// concurrent use.
type Store interface {
	Put(token string, id Identity)
	Get(token string) (Identity, bool)
	Delete(token string)
}

// NewToken returns a fresh unguessable session token.
func NewToken() string {
	return uuid.NewString()
}

// MemoryStore is the in-process Store used in production. A single instance
// is shared by every request.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Identity
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Identity)}
}

func (s *MemoryStore) Put(token string, id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = id
}

func (s *MemoryStore) Get(token string) (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	return id, ok
}

// Delete removes the entry if present. Deleting an unknown token is a no-op.
func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
