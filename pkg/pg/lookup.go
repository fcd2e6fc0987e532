package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool (and pgx.Tx) used by TableLookup.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TableLookup answers lookup checks from a table of (set_name, value) rows.
// It satisfies validator.Lookup.
type TableLookup struct {
	db          Querier
	existsQuery string
	insertQuery string
}

// NewTableLookup returns a TableLookup reading table. An empty name falls back
// to lookup_values, the table created by Migrate.
func NewTableLookup(db Querier, table string) *TableLookup {
	if table == "" {
		table = "lookup_values"
	}
	ident := pgx.Identifier{table}.Sanitize()
	return &TableLookup{
		db:          db,
		existsQuery: fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE set_name = $1 AND value = $2)", ident),
		insertQuery: fmt.Sprintf("INSERT INTO %s (set_name, value) VALUES ($1, $2) ON CONFLICT DO NOTHING", ident),
	}
}

func (l *TableLookup) Contains(ctx context.Context, set, value string) (bool, error) {
	var found bool
	if err := l.db.QueryRow(ctx, l.existsQuery, set, value).Scan(&found); err != nil {
		if IsUndefinedTableError(err) {
			return false, errors.Join(ErrLookupTableMissing, err)
		}
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}

// Seed inserts values into set, skipping those already present.
func (l *TableLookup) Seed(ctx context.Context, set string, values ...string) error {
	for _, v := range values {
		if _, err := l.db.Exec(ctx, l.insertQuery, set, v); err != nil {
			return errors.Join(ErrLookupFailed, err)
		}
	}
	return nil
}
