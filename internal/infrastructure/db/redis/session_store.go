package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderlust-travel/wanderlust/internal/session"
)

// SessionStore persists session state in Redis.
// Key format: session:<sid>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context, sid string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNoSession
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return data, nil
}

func (s *SessionStore) Set(ctx context.Context, sid string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sid), data, ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *SessionStore) Del(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
