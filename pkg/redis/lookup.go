package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SetLookup answers lookup checks with Redis sets: value v belongs to set s
// when SISMEMBER <prefix>s v is true. It satisfies validator.Lookup.
type SetLookup struct {
	client redis.UniversalClient
	prefix string
}

// NewSetLookup returns a SetLookup reading sets named prefix+set.
func NewSetLookup(client redis.UniversalClient, prefix string) *SetLookup {
	return &SetLookup{client: client, prefix: prefix}
}

func (l *SetLookup) Contains(ctx context.Context, set, value string) (bool, error) {
	found, err := l.client.SIsMember(ctx, l.key(set), value).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}

// Seed adds values to set, creating it if needed.
func (l *SetLookup) Seed(ctx context.Context, set string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]any, len(values))
	for i, v := range values {
		members[i] = v
	}
	if err := l.client.SAdd(ctx, l.key(set), members...).Err(); err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	return nil
}

func (l *SetLookup) key(set string) string {
	return l.prefix + set
}
