package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/fekuna/omnipos-storefront/pkg/cache"
)

// SessionStore binds opaque session tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	// Resolve returns 0 and no error when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type RedisSessionStore struct {
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewRedisSessionStore(c *cache.RedisClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: c, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Client.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		return "", errors.Wrap(err, "store session")
	}
	return token, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	val, err := s.cache.Client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "load session")
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Corrupt entry, treat as anonymous.
		return 0, nil
	}
	return userID, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}
