package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serialisable values under string keys.
type Cache interface {
	// Get decodes the cached value into dest; found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Options configures New.
type Options struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New returns a Redis cache when a URL is configured and a no-op cache otherwise.
func New(opts Options) (Cache, error) {
	if opts.RedisURL == "" {
		return Noop{}, nil
	}
	c, err := NewRedisCache(RedisCacheOptions{
		URL:        opts.RedisURL,
		Prefix:     opts.Prefix,
		DefaultTTL: opts.DefaultTTL,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) Close() error { return nil }
