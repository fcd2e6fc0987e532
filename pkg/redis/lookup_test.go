package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSetLookup(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)

	_, err := mr.SAdd("test:countries", "CZE", "FRA")
	require.NoError(t, err)

	lookup := redis.NewSetLookup(client, "test:")

	found, err := lookup.Contains(ctx, "countries", "CZE")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = lookup.Contains(ctx, "countries", "DEU")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = lookup.Contains(ctx, "missing", "CZE")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, lookup.Seed(ctx, "countries", "DEU"))
	found, err = lookup.Contains(ctx, "countries", "DEU")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, lookup.Seed(ctx, "countries"))
}

func TestSetLookupErrors(t *testing.T) {
	mr, client := newClient(t)
	lookup := redis.NewSetLookup(client, "")

	require.NoError(t, mr.Set("scalar", "value"))
	_, err := lookup.Contains(context.Background(), "scalar", "value")
	assert.ErrorIs(t, err, redis.ErrLookupFailed)

	mr.Close()
	_, err = lookup.Contains(context.Background(), "countries", "CZE")
	assert.ErrorIs(t, err, redis.ErrLookupFailed)
}

func TestSetLookupAsCheck(t *testing.T) {
	mr, client := newClient(t)
	_, err := mr.SAdd("formkit:lookup:countries", "CZE")
	require.NoError(t, err)

	registry := validator.NewRegistry(validator.WithLookup(redis.NewSetLookup(client, "formkit:lookup:")))
	binding, err := registry.Bind("lookup", "countries")
	require.NoError(t, err)

	ok, err := binding.Run(context.Background(), "CZE").Await()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = binding.Run(context.Background(), "XXX").Await()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("success", func(t *testing.T) {
		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		defer client.Close()
		assert.NoError(t, redis.Healthcheck(client)(context.Background()))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("not ready", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}

func TestHealthcheckFailure(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()
	assert.ErrorIs(t, redis.Healthcheck(client)(context.Background()), redis.ErrHealthcheckFailed)
}
