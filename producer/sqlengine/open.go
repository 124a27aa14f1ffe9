package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"          // registers the "postgres" database/sql driver
	_ "github.com/sijms/go-ora/v2" // registers the "oracle" database/sql driver

	"github.com/AntonStoeckl/cdc-load-producer/config"
)

const (
	driverPostgres = "postgres"
	driverOracle   = "oracle"
)

// Open establishes one session for the configured backend and adapter and verifies it with a ping.
// It does not retry, see Connect.
func Open(ctx context.Context, cfg config.Config, options ...Option) (*Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, options...)
	case config.BackendOracle:
		options = append([]Option{WithDialect(Oracle())}, options...)
		return openSQL(ctx, cfg.Adapter, driverOracle, cfg.Oracle.URL(cfg.Connect.Timeout), cfg.Connect.Timeout, options...)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, options ...Option) (*Store, error) {
	dsn := cfg.Postgres.DSN(cfg.Connect.Timeout)

	if cfg.Adapter != config.AdapterPGX {
		return openSQL(ctx, cfg.Adapter, driverPostgres, dsn, cfg.Connect.Timeout, options...)
	}

	pgxConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pgxConfig.ConnectTimeout = cfg.Connect.Timeout

	conn, err := pgx.ConnectConfig(ctx, pgxConfig)
	if err != nil {
		return nil, err
	}

	store, err := NewStoreFromPGXConn(conn, options...)
	if err != nil {
		return nil, errors.Join(err, conn.Close(context.Background()))
	}

	return store, nil
}

func openSQL(
	ctx context.Context,
	adapter config.Adapter,
	driverName string,
	dsn string,
	timeout time.Duration,
	options ...Option,
) (*Store, error) {
	var (
		db    *sql.DB
		store *Store
		err   error
	)

	switch adapter {
	case config.AdapterSQLDB:
		if db, err = sql.Open(driverName, dsn); err != nil {
			return nil, err
		}

		limitToOneSession(db)
		store, err = NewStoreFromSQLDB(db, options...)

	case config.AdapterSQLX:
		var dbx *sqlx.DB
		if dbx, err = sqlx.Open(driverName, dsn); err != nil {
			return nil, err
		}

		db = dbx.DB
		limitToOneSession(db)
		store, err = NewStoreFromSQLX(dbx, options...)

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedAdapter, adapter)
	}

	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err = store.Ping(pingCtx); err != nil {
		return nil, errors.Join(err, store.Close(context.Background()))
	}

	return store, nil
}

// limitToOneSession makes the pool behave like the single long-lived session the producer expects.
func limitToOneSession(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
}
