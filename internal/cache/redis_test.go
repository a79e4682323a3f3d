package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPolicy struct {
	ID      uint   `json:"id"`
	TitleDE string `json:"title_de"`
}

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	c, err := NewRedisCache(RedisCacheOptions{
		URL:        "redis://" + server.Addr() + "/0",
		Prefix:     "campaign:",
		DefaultTTL: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, server
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, server := newTestRedisCache(t)
	ctx := context.Background()

	want := []cachedPolicy{{ID: 1, TitleDE: "Bildung"}, {ID: 2, TitleDE: "Umwelt"}}
	require.NoError(t, c.Set(ctx, "policies:public", want))

	// 前缀写入 Redis 的实际键
	assert.True(t, server.Exists("campaign:policies:public"))
	assert.False(t, server.Exists("policies:public"))
	assert.Equal(t, 30*time.Second, server.TTL("campaign:policies:public"))

	var got []cachedPolicy
	found, err := c.Get(ctx, "policies:public", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "policies:public"))
	assert.False(t, server.Exists("campaign:policies:public"))

	found, err = c.Get(ctx, "policies:public", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t)

	var got []cachedPolicy
	found, err := c.Get(context.Background(), "faqs:public", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(context.Background()))
}

func TestRedisCacheCorruptValue(t *testing.T) {
	c, server := newTestRedisCache(t)
	require.NoError(t, server.Set("campaign:events:public", "{not json"))

	var got []cachedPolicy
	found, err := c.Get(context.Background(), "events:public", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCacheFailsWhenServerStops(t *testing.T) {
	c, server := newTestRedisCache(t)
	server.Close()

	var got []cachedPolicy
	_, err := c.Get(context.Background(), "policies:public", &got)
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "policies:public", got))
}

func TestNewUsesRedisWhenConfigured(t *testing.T) {
	server := miniredis.RunT(t)
	c, err := New(Options{RedisURL: "redis://" + server.Addr(), Prefix: "campaign:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.IsType(t, &RedisCache{}, c)
}
