package adapters

import (
	"context"
	"errors"
)

// ErrNoRows is returned by DBRow.Scan when the query produced no row.
var ErrNoRows = errors.New("no rows in result set")

// DBAdapter defines the session operations needed by the store.
type DBAdapter interface {
	Begin(ctx context.Context) (DBTx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// SupportsOutParams reports whether Exec accepts database/sql output parameters (sql.Out).
	SupportsOutParams() bool
}

// DBTx defines a unit of work on the session.
type DBTx interface {
	QueryRow(ctx context.Context, query string, args ...any) DBRow
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRow defines a single query result row.
type DBRow interface {
	Scan(dest ...any) error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
