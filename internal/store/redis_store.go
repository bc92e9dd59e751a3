package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
)

// Options configures the Redis connection
type Options struct {
	Addr         string
	Password     string
	DB           int
	KeyPrefix    string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}

// redisStore implements the Store interface using Redis
type redisStore struct {
	client *redis.Client
	prefix string
	open   atomic.Bool
}

// NewRedisStore connects to Redis and verifies the connection with a PING.
// Returns error if connection fails; the client is closed in that case.
func NewRedisStore(ctx context.Context, opts Options) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
		// A failed command is reported once, never replayed.
		MaxRetries: -1,
	})

	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	s := &redisStore{client: client, prefix: opts.KeyPrefix}
	s.open.Store(true)

	return s, nil
}

// Get retrieves a value from Redis by key
func (s *redisStore) Get(ctx context.Context, code string) (string, error) {
	val, err := s.client.Get(ctx, s.key(code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

// SetNX stores the mapping without overwriting an existing code.
// No expiry: short links live until removed out of band.
func (s *redisStore) SetNX(ctx context.Context, code, url string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(code), url, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}

	return ok, nil
}

// Ping checks Redis connectivity
func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// IsOpen reports whether Close has been called
func (s *redisStore) IsOpen() bool {
	return s.open.Load()
}

// Close closes the Redis connection
func (s *redisStore) Close() error {
	if !s.open.CompareAndSwap(true, false) {
		return nil
	}
	return s.client.Close()
}

func (s *redisStore) key(code string) string {
	return s.prefix + code
}
