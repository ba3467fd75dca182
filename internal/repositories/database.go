package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the query surface shared by a pool and an open transaction.
// Transaction-scoped repository methods take it explicitly so the caller
// controls the transaction boundary.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database is the pool-level surface repositories are built on. Both
// pgxpool.Pool and pgxmock satisfy it.
type Database interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
