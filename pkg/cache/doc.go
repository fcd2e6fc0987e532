// Package cache provides a generic, thread-safe LRU (Least Recently Used) cache
// with optional expiry.
//
// The cache automatically evicts the least recently used items when it reaches
// its configured capacity. With WithTTL, entries also expire a fixed time after
// they were written; expired entries are dropped lazily on access. formkit uses
// it to memoize answers of lookup checks, whose source of truth (Redis, Postgres)
// may change over time.
//
// # Usage
//
//	c := cache.NewLRUCache[string, bool](1024, cache.WithTTL(time.Minute))
//	c.Put("countries:CZE", true)
//
//	if found, ok := c.Get("countries:CZE"); ok {
//		// use found
//	}
//
// # Thread Safety
//
// All operations are guarded by a single mutex and may be called from many
// goroutines. Get, Put and Remove are O(1).
package cache
