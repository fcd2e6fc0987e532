package validator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/cache"
)

// Lookup answers membership questions against an external source: "is CZE a
// known country code", "is this coupon issued". Implementations must be safe
// for concurrent use.
type Lookup interface {
	Contains(ctx context.Context, set, value string) (bool, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, set, value string) (bool, error)

func (fn LookupFunc) Contains(ctx context.Context, set, value string) (bool, error) {
	return fn(ctx, set, value)
}

// LookupDefinition returns the asynchronous "lookup" check backed by l. The
// check configuration is the set name. Empty values pass.
func LookupDefinition(l Lookup) Definition {
	return Definition{
		Name:     "lookup",
		Prepare:  prepareText,
		ParamKey: "set",
		Check: AsyncCheck(func(ctx context.Context, value any, cfg Config) (bool, error) {
			if IsEmpty(value) {
				return true, nil
			}
			if l == nil {
				return false, ErrLookupUnavailable
			}
			s, ok := Text(value)
			if !ok {
				return false, nil
			}
			return l.Contains(ctx, cfg.Compiled().(string), s)
		}),
		Message: func(cfg Config) string {
			return fmt.Sprintf("is not a known %s value", cfg.Compiled())
		},
		TranslationKey: "validation.lookup",
	}
}

// StaticLookup is an in-memory Lookup, handy for small reference lists and tests.
type StaticLookup struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

func NewStaticLookup(sets map[string][]string) *StaticLookup {
	l := &StaticLookup{sets: make(map[string]map[string]struct{}, len(sets))}
	for name, values := range sets {
		l.Add(name, values...)
	}
	return l
}

func (l *StaticLookup) Add(set string, values ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	members, ok := l.sets[set]
	if !ok {
		members = make(map[string]struct{}, len(values))
		l.sets[set] = members
	}
	for _, v := range values {
		members[v] = struct{}{}
	}
}

func (l *StaticLookup) Contains(ctx context.Context, set, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	members, ok := l.sets[set]
	if !ok {
		return false, fmt.Errorf("%w: unknown set %q", ErrLookupUnavailable, set)
	}
	_, found := members[value]
	return found, nil
}

type lookupKey struct {
	set   string
	value string
}

// CachedLookup memoizes answers of another Lookup in a bounded LRU cache.
// Errors are never cached.
type CachedLookup struct {
	next  Lookup
	cache *cache.LRUCache[lookupKey, bool]
}

// NewCachedLookup wraps next with a cache of the given capacity. A positive ttl
// expires answers so that membership changes in the source become visible.
func NewCachedLookup(next Lookup, capacity int, ttl time.Duration) *CachedLookup {
	opts := []cache.Option{}
	if ttl > 0 {
		opts = append(opts, cache.WithTTL(ttl))
	}
	return &CachedLookup{
		next:  next,
		cache: cache.NewLRUCache[lookupKey, bool](capacity, opts...),
	}
}

func (c *CachedLookup) Contains(ctx context.Context, set, value string) (bool, error) {
	if c.next == nil {
		return false, ErrLookupUnavailable
	}

	key := lookupKey{set: set, value: value}
	if found, ok := c.cache.Get(key); ok {
		return found, nil
	}

	found, err := c.next.Contains(ctx, set, value)
	if err != nil {
		return false, errors.Join(ErrLookupUnavailable, err)
	}
	c.cache.Put(key, found)
	return found, nil
}
