package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
)

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	for name, cfg := range map[string]ratelimiter.Config{
		"zero capacity": {Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		"zero rate":     {Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		"zero interval": {Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig, name)
	}

	_, err := ratelimiter.NewBucket(nil, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)

	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(context.Background(), "k", 4)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Remaining)

	res, err = b.Status(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Remaining)
	assert.Equal(t, 10, res.Limit)

	require.NoError(t, b.Reset(context.Background(), "k"))
	res, err = b.Status(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Remaining)
}

func TestResult(t *testing.T) {
	t.Parallel()

	now := time.Now()
	allowed := &ratelimiter.Result{Remaining: 0, ResetAt: now.Add(time.Minute)}
	assert.True(t, allowed.Allowed())
	assert.Zero(t, allowed.RetryAfter(now))

	denied := &ratelimiter.Result{Remaining: -1, ResetAt: now.Add(3 * time.Second)}
	assert.False(t, denied.Allowed())
	assert.Equal(t, 3*time.Second, denied.RetryAfter(now))
	assert.Zero(t, denied.RetryAfter(now.Add(time.Minute)))
}

func TestKeyFuncs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, "10.0.0.1:1", "203.0.113.7"},
		{"first valid forwarded entry", map[string]string{"X-Forwarded-For": "garbage, 203.0.113.9, 10.0.0.2"}, "10.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "2001:db8::1"}, "10.0.0.1:1", "2001:db8::1"},
		{"invalid headers fall back", map[string]string{"X-Real-IP": "nope"}, "[2001:db8::2]:443", "2001:db8::2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ratelimiter.ClientIP(r))
		})
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	r.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "192.0.2.1", ratelimiter.RemoteIP(r))

	static := func(s string) ratelimiter.KeyFunc { return func(*http.Request) string { return s } }
	assert.Equal(t, "a:b", ratelimiter.Composite(static("a"), static(""), static("b"))(r))
	assert.Empty(t, ratelimiter.Composite(static(""))(r))

	long := ratelimiter.Composite(static(strings.Repeat("x", 40)), static(strings.Repeat("y", 40)))(r)
	assert.LessOrEqual(t, len(long), 64)
	assert.NotContains(t, long, ":")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, errors.New("store down")
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("limits per key", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		defer store.Close()
		limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
		require.NoError(t, err)
		h := ratelimiter.Middleware(limiter, ratelimiter.RemoteIP, nil)(ok)

		call := func(remote string) *httptest.ResponseRecorder {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.RemoteAddr = remote
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			return rec
		}

		rec := call("192.0.2.1:1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

		assert.Equal(t, http.StatusNoContent, call("192.0.2.1:2").Code)

		rec = call("192.0.2.1:3")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())

		assert.Equal(t, http.StatusNoContent, call("192.0.2.2:1").Code)
	})

	t.Run("empty key skips limiting", func(t *testing.T) {
		t.Parallel()
		h := ratelimiter.Middleware(failingLimiter{}, func(*http.Request) string { return "" }, nil)(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("store failure lets request through", func(t *testing.T) {
		t.Parallel()
		h := ratelimiter.Middleware(failingLimiter{}, ratelimiter.RemoteIP, nil)(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
