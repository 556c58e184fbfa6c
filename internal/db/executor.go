package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomview-sql/roomview/pkg/roomview"
)

// PoolExecutor adapts *pgxpool.Pool to the roomview.Executor interface.
// This keeps pgx-specific types out of the sync service and its tests.
//
// Thread-Safety: safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolExecutor struct {
	pool *pgxpool.Pool
}

// NewPoolExecutor creates a PoolExecutor wrapping the given pool.
func NewPoolExecutor(pool *pgxpool.Pool) *PoolExecutor {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &PoolExecutor{pool: pool}
}

// Exec runs a statement that returns no rows.
func (e *PoolExecutor) Exec(ctx context.Context, sql string) error {
	_, err := e.pool.Exec(ctx, sql)
	return err
}

// QueryRow runs a query expected to return at most one row.
func (e *PoolExecutor) QueryRow(ctx context.Context, sql string, args ...any) roomview.Row {
	return e.pool.QueryRow(ctx, sql, args...)
}

var _ roomview.Executor = (*PoolExecutor)(nil)
