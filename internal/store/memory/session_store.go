// Package memory provides in-process fallbacks for the optional external
// stores, used when Redis/PostgreSQL are not configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// SessionStore keeps the session in process memory; it disappears with the
// process, which matches the product's single-session scope.
type SessionStore struct {
	mu      sync.Mutex
	user    domain.User
	present bool
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Save stores a copy of the user.
func (s *SessionStore) Save(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.Clone()
	s.present = true
	return nil
}

// Load returns the stored session or domain.ErrNotFound.
func (s *SessionStore) Load(_ context.Context) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return domain.User{}, domain.ErrNotFound
	}
	return s.user.Clone(), nil
}

// Clear empties the slot.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = domain.User{}
	s.present = false
	return nil
}

var _ domain.SessionStore = (*SessionStore)(nil)
