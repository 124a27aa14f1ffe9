package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBExecFailed     = "database statement failed"
	logMsgRollbackFailed   = "rollback failed"
	logMsgCloseFailed      = "closing database session failed"
	logMsgSQLExecuted      = "executed sql for: "
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDurationMS      = "duration_ms"
	logAttrStatement       = "statement"
	logAttrDialect         = "dialect"
	stmtInsertUser         = "insert_user"
	stmtSelectRandomUser   = "select_random_user"
	stmtUpdateUserStatus   = "update_user_status"
	stmtInsertActivity     = "insert_activity"
	stmtBegin              = "begin"
	stmtCommit             = "commit"
	stmtRollback           = "rollback"
)

// Store implements producer.Store on a single database session.
// All units of work run on that session, one at a time.
type Store struct {
	db               adapters.DBAdapter
	dialect          Dialect
	logger           producer.Logger
	metricsCollector producer.MetricsCollector

	closeOnce sync.Once
	closeErr  error
}

// NewStoreFromPGXConn creates a new Store using a single pgx connection with optional configuration.
func NewStoreFromPGXConn(conn *pgx.Conn, options ...Option) (*Store, error) {
	if conn == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(conn), options...)
}

// NewStoreFromSQLDB creates a new Store using a database/sql handle with optional configuration.
// The handle should be limited to one open connection, see Open.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx handle with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:      db,
		dialect: Postgres(),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.dialect.ReturnsIDViaOutParam() && !db.SupportsOutParams() {
		return nil, ErrUnsupportedAdapter
	}

	return s, nil
}

// Dialect returns the dialect the store renders statements with.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping verifies the session is alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return errors.Join(ErrPingFailed, err)
	}

	return nil
}

// Close releases the session. Only the first call closes it, later calls return the same result.
func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if err := s.db.Close(ctx); err != nil {
			s.logError(logMsgCloseFailed, err)
			s.closeErr = errors.Join(ErrCloseFailed, err)
		}
	})

	return s.closeErr
}

// Begin starts a unit of work on the session.
func (s *Store) Begin(ctx context.Context) (producer.UnitOfWork, error) {
	start := time.Now()
	tx, err := s.db.Begin(ctx)
	s.recordQueryDuration(ctx, stmtBegin, time.Since(start), err)

	if err != nil {
		s.logError(logMsgDBExecFailed, err, logAttrStatement, stmtBegin)
		return nil, err
	}

	return &unitOfWork{store: s, tx: tx}, nil
}

type unitOfWork struct {
	store *Store
	tx    adapters.DBTx
}

func (u *unitOfWork) InsertUser(ctx context.Context, user producer.UserRecord) (int64, error) {
	stmt, err := u.store.dialect.InsertUser(user)
	if err != nil {
		return 0, u.buildFailed(stmtInsertUser, err)
	}

	id, err := u.insertReturningID(ctx, stmtInsertUser, stmt)
	if err != nil {
		return 0, u.classify(stmtInsertUser, ErrInsertingUserFailed, err)
	}

	return id, nil
}

func (u *unitOfWork) RandomUser(ctx context.Context) (producer.UserRef, error) {
	stmt, err := u.store.dialect.SelectRandomUser()
	if err != nil {
		return producer.UserRef{}, u.buildFailed(stmtSelectRandomUser, err)
	}

	var user producer.UserRef

	start := time.Now()
	err = u.tx.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&user.ID, &user.Username)
	u.observe(ctx, stmtSelectRandomUser, stmt.SQL, time.Since(start), err)

	if err != nil {
		if errors.Is(err, adapters.ErrNoRows) {
			return producer.UserRef{}, producer.ErrNoUsers
		}

		return producer.UserRef{}, u.classify(stmtSelectRandomUser, ErrSelectingUserFailed, err)
	}

	return user, nil
}

func (u *unitOfWork) UpdateUserStatus(ctx context.Context, userID int64, status producer.UserStatus) error {
	stmt, err := u.store.dialect.UpdateUserStatus(userID, status)
	if err != nil {
		return u.buildFailed(stmtUpdateUserStatus, err)
	}

	start := time.Now()
	result, err := u.tx.Exec(ctx, stmt.SQL, stmt.Args...)
	u.observe(ctx, stmtUpdateUserStatus, stmt.SQL, time.Since(start), err)

	if err != nil {
		return u.classify(stmtUpdateUserStatus, ErrUpdatingUserFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrGettingRowsAffectedFailed, err)
	}

	if rowsAffected == 0 {
		// the user was deleted between selection and update
		return producer.ErrNoUsers
	}

	return nil
}

func (u *unitOfWork) InsertActivity(ctx context.Context, activity producer.ActivityRecord) (int64, error) {
	stmt, err := u.store.dialect.InsertActivity(activity)
	if err != nil {
		return 0, u.buildFailed(stmtInsertActivity, err)
	}

	id, err := u.insertReturningID(ctx, stmtInsertActivity, stmt)
	if err != nil {
		return 0, u.classify(stmtInsertActivity, ErrInsertingActivityFailed, err)
	}

	return id, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	start := time.Now()
	err := u.tx.Commit(ctx)
	u.store.recordQueryDuration(ctx, stmtCommit, time.Since(start), err)

	return err
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	start := time.Now()
	err := u.tx.Rollback(ctx)
	u.store.recordQueryDuration(ctx, stmtRollback, time.Since(start), err)

	if err != nil {
		u.store.logWarn(logMsgRollbackFailed, err)
	}

	return err
}

// insertReturningID executes an INSERT and returns the generated id, reading it either from the
// result row or from a trailing output parameter, depending on the statement.
func (u *unitOfWork) insertReturningID(ctx context.Context, name string, stmt Statement) (int64, error) {
	var id int64

	start := time.Now()

	var err error
	switch stmt.ID {
	case IDFromOutParam:
		args := append(append([]any{}, stmt.Args...), sql.Out{Dest: &id})
		_, err = u.tx.Exec(ctx, stmt.SQL, args...)
	default:
		err = u.tx.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&id)
	}

	u.observe(ctx, name, stmt.SQL, time.Since(start), err)

	return id, err
}

func (u *unitOfWork) observe(ctx context.Context, name, sqlQuery string, duration time.Duration, err error) {
	u.store.logQueryWithDuration(sqlQuery, name, duration)
	u.store.recordQueryDuration(ctx, name, duration, err)
}

// classify maps a driver error: uniqueness violations to producer.ErrConstraintViolation,
// anything else to the statement's failure sentinel.
func (u *unitOfWork) classify(name string, failure error, err error) error {
	if isUniqueViolation(err) {
		return errors.Join(producer.ErrConstraintViolation, err)
	}

	u.store.logError(logMsgDBExecFailed, err, logAttrStatement, name, logAttrDialect, u.store.dialect.Name())

	return errors.Join(failure, err)
}

func (u *unitOfWork) buildFailed(name string, err error) error {
	u.store.logError(logMsgBuildQueryFailed, err, logAttrStatement, name)
	return errors.Join(ErrBuildingQueryFailed, err)
}
