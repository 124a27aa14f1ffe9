package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGXAdapter implements DBAdapter for a single pgx.Conn.
type PGXAdapter struct {
	conn *pgx.Conn
}

// NewPGXAdapter creates a new PGX adapter.
func NewPGXAdapter(conn *pgx.Conn) *PGXAdapter {
	return &PGXAdapter{conn: conn}
}

// Begin starts a transaction on the connection.
func (p *PGXAdapter) Begin(ctx context.Context) (DBTx, error) {
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxTx{tx: tx}, nil
}

// Ping checks that the connection is alive.
func (p *PGXAdapter) Ping(ctx context.Context) error {
	return p.conn.Ping(ctx)
}

// Close closes the connection.
func (p *PGXAdapter) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}

// SupportsOutParams is false: pgx has no output parameters.
func (p *PGXAdapter) SupportsOutParams() bool {
	return false
}

// pgxTx wraps pgx.Tx to implement the DBTx interface.
type pgxTx struct {
	tx pgx.Tx
}

// QueryRow executes a query that is expected to return at most one row.
func (t *pgxTx) QueryRow(ctx context.Context, query string, args ...any) DBRow {
	return &pgxRow{row: t.tx.QueryRow(ctx, query, args...)}
}

// Exec executes a statement and returns the wrapped command tag.
func (t *pgxTx) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &pgxResult{tag: tag}, nil
}

// Commit commits the transaction.
func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls the transaction back.
func (t *pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// pgxRow wraps pgx.Row to implement the DBRow interface.
type pgxRow struct {
	row pgx.Row
}

// Scan copies row values into provided destinations.
func (r *pgxRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}

	return err
}

// pgxResult wraps pgconn.CommandTag to implement the DBResult interface.
type pgxResult struct {
	tag pgconn.CommandTag
}

// RowsAffected returns the number of rows affected by the command.
func (r *pgxResult) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}
