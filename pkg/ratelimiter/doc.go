// Package ratelimiter implements token bucket rate limiting for the HTTP API.
//
// A Bucket allows bursts up to Capacity and refills RefillRate tokens every
// RefillInterval. Bucket state lives in a Store: MemoryStore for a single
// process, RedisStore (an atomic Lua script) when several replicas share
// limits.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.RemoteIP, log)).Post("/validate", h)
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response and answers 429 with
// Retry-After once the bucket is empty.
package ratelimiter
