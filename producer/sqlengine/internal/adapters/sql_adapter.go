package adapters

import (
	"context"
	"database/sql"
	"errors"
)

// SQLAdapter implements DBAdapter for sql.DB
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &sqlTx{tx: tx}, nil
}

func (s *SQLAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLAdapter) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *SQLAdapter) SupportsOutParams() bool {
	return true
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) QueryRow(ctx context.Context, query string, args ...any) DBRow {
	return &sqlRow{row: t.tx.QueryRowContext(ctx, query, args...)}
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &sqlResult{result: result}, nil
}

func (t *sqlTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}

// scanner is satisfied by both *sql.Row and *sqlx.Row.
type scanner interface {
	Scan(dest ...any) error
}

type sqlRow struct {
	row scanner
}

func (r *sqlRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}

	return err
}

type sqlResult struct {
	result sql.Result
}

func (r *sqlResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}
