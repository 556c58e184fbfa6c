package roomview

import "context"

// Executor is the SQL-execution capability injected into the sync
// orchestrator. It hides connection lifecycle, pooling, and transaction
// scope; the core only issues statements and reads single-row probes.
//
// Thread-Safety: implementations should follow their underlying
// connection's guarantees. The core itself issues calls sequentially.
type Executor interface {
	// Exec executes a statement without returning rows (DDL, drops, creates).
	Exec(ctx context.Context, sql string) error

	// QueryRow executes a query expected to return at most one row.
	// Always returns a non-nil Row; errors are deferred until Scan.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Row represents a single row returned by QueryRow.
// Decouples the core from driver-specific row types.
type Row interface {
	// Scan reads the row's values into dest. Returns the driver's
	// no-rows error when the query matched nothing.
	Scan(dest ...any) error
}
