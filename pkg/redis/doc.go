// Package redis connects to Redis and exposes Redis sets as a lookup source
// for form validation.
//
// A SetLookup backs the asynchronous "lookup" check: the check configuration
// names a set and the field value must be one of its members.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	lookup := redis.NewSetLookup(client, cfg.KeyPrefix)
//	registry := validator.NewRegistry(validator.WithLookup(lookup))
//
// Healthcheck returns a probe suitable for the HTTP server's readiness endpoint.
package redis
