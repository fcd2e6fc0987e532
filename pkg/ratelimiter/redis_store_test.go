package ratelimiter_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	storeContract(t, func(t *testing.T, clock *fakeClock) ratelimiter.Store {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return ratelimiter.NewRedisStore(client, ratelimiter.WithRedisClock(clock.Now))
	})
}

func TestRedisStoreKeys(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix("rl:"))
	_, _, err := store.ConsumeTokens(context.Background(), "10.0.0.1", 1, testConfig)
	require.NoError(t, err)

	assert.True(t, mr.Exists("rl:10.0.0.1"))
	assert.Equal(t, "9", mr.HGet("rl:10.0.0.1", "tokens"))
	assert.Positive(t, mr.TTL("rl:10.0.0.1"))

	require.NoError(t, store.Reset(context.Background(), "10.0.0.1"))
	assert.False(t, mr.Exists("rl:10.0.0.1"))
}

func TestRedisStoreUnavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	store := ratelimiter.NewRedisStore(client)
	_, _, err := store.ConsumeTokens(context.Background(), "k", 1, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)

	err = store.Reset(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}
