package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/storekit/catalog-api/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps web sessions in Redis. The value under
// session:<id> is the owning user id; expiry handles idle logout.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create mints a fresh session id for the user. Callers replace any previous
// cookie with the new id, which also rotates the id on every login.
func (s *SessionStore) Create(ctx context.Context, userID string) (*ports.Session, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+id, userID, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &ports.Session{ID: id, UserID: userID}, nil
}

// Get resolves a session id, sliding its expiry on success. Unknown or
// expired ids yield nil, nil.
func (s *SessionStore) Get(ctx context.Context, id string) (*ports.Session, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	_ = s.client.Expire(ctx, sessionKeyPrefix+id, s.ttl).Err()
	return &ports.Session{ID: id, UserID: userID}, nil
}

// Destroy invalidates the session id. Destroying an unknown id is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
