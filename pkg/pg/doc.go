// Package pg provides PostgreSQL helpers built on pgx/v5: a retrying
// connection pool, goose migrations, a health probe and a table-backed lookup
// source for form validation.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	lookup := pg.NewTableLookup(pool, cfg.LookupTable)
//	registry := validator.NewRegistry(validator.WithLookup(lookup))
//
// The embedded migration creates the lookup_values table with one row per
// (set_name, value) pair.
package pg
