package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

// sessionKey is the fixed slot the single wallet session lives under.
const sessionKey = "cascade:wallet:session"

// SessionStore implements domain.SessionStore on a single Redis key holding
// the JSON-serialized user.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a SessionStore backed by the given Client.
func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{rdb: c.Underlying()}
}

// Save overwrites the session slot. No TTL: the session lives until Clear.
func (s *SessionStore) Save(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("redis: marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	return nil
}

// Load returns the persisted session, or domain.ErrNotFound when the slot is
// empty. A corrupt blob is discarded and reported as not found so a reload
// falls back to a fresh wallet prompt.
func (s *SessionStore) Load(ctx context.Context) (domain.User, error) {
	data, err := s.rdb.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("redis: load session: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = s.rdb.Del(ctx, sessionKey).Err()
		return domain.User{}, fmt.Errorf("redis: corrupt session discarded: %w", domain.ErrNotFound)
	}
	return user, nil
}

// Clear deletes the session slot. Clearing an empty slot is not an error.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("redis: clear session: %w", err)
	}
	return nil
}

var _ domain.SessionStore = (*SessionStore)(nil)
