package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Begin starts a transaction using the sqlx.DB.
func (s *SQLXAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &sqlxTx{tx: tx}, nil
}

// Ping verifies the session is reachable.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying sql.DB.
func (s *SQLXAdapter) Close(_ context.Context) error {
	return s.db.Close()
}

// SupportsOutParams is true: sqlx passes arguments through to database/sql.
func (s *SQLXAdapter) SupportsOutParams() bool {
	return true
}

type sqlxTx struct {
	tx *sqlx.Tx
}

// QueryRow executes a query using the sqlx.Tx and returns the wrapped row.
func (t *sqlxTx) QueryRow(ctx context.Context, query string, args ...any) DBRow {
	return &sqlRow{row: t.tx.QueryRowxContext(ctx, query, args...)}
}

// Exec executes a statement using the sqlx.Tx and returns the wrapped result.
func (t *sqlxTx) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &sqlResult{result: result}, nil
}

func (t *sqlxTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *sqlxTx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}
