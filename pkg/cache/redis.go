package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	return &RedisClient{Client: client}, nil
}

// Allow implements a fixed-window counter: the first call in a window sets
// the expiry, and calls beyond limit within the window are refused.
func (r *RedisClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "incr rate key")
	}
	if count == 1 {
		if err := r.Client.Expire(ctx, key, window).Err(); err != nil {
			return false, errors.Wrap(err, "expire rate key")
		}
	}
	return count <= int64(limit), nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}
