package sqlengine_test

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine/internal/adapters"
)

type executed struct {
	query string
	args  []any
}

// fakeAdapter is a scripted session: every QueryRow scans rowValues or fails with rowErr,
// every Exec fills sql.Out destinations with outID and reports rowsAffected.
type fakeAdapter struct {
	outParams    bool
	rowValues    []any
	rowErr       error
	execErr      error
	rowsAffected int64
	outID        int64
	beginErr     error
	closeErr     error

	statements []executed
	commits    int
	rollbacks  int
	closes     int
}

func (a *fakeAdapter) Begin(_ context.Context) (adapters.DBTx, error) {
	if a.beginErr != nil {
		return nil, a.beginErr
	}

	return &fakeTx{adapter: a}, nil
}

func (a *fakeAdapter) Ping(_ context.Context) error {
	return nil
}

func (a *fakeAdapter) Close(_ context.Context) error {
	a.closes++
	return a.closeErr
}

func (a *fakeAdapter) SupportsOutParams() bool {
	return a.outParams
}

type fakeTx struct {
	adapter *fakeAdapter
}

func (t *fakeTx) QueryRow(_ context.Context, query string, args ...any) adapters.DBRow {
	t.adapter.statements = append(t.adapter.statements, executed{query: query, args: args})
	return &fakeRow{values: t.adapter.rowValues, err: t.adapter.rowErr}
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (adapters.DBResult, error) {
	t.adapter.statements = append(t.adapter.statements, executed{query: query, args: args})

	if t.adapter.execErr != nil {
		return nil, t.adapter.execErr
	}

	for _, arg := range args {
		if out, ok := arg.(sql.Out); ok {
			if dest, ok := out.Dest.(*int64); ok {
				*dest = t.adapter.outID
			}
		}
	}

	return fakeResult(t.adapter.rowsAffected), nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.adapter.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.adapter.rollbacks++
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	if len(dest) != len(r.values) {
		return errors.New("scan arity mismatch")
	}

	for i, value := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = value.(int64)
		case *string:
			*d = value.(string)
		default:
			return errors.New("unsupported scan destination")
		}
	}

	return nil
}

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) {
	return int64(r), nil
}
