package sqlengine

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a constructor receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrNilDialect is returned by WithDialect for a nil dialect.
	ErrNilDialect = errors.New("dialect must not be nil")

	// ErrUnsupportedAdapter is returned when the dialect needs a capability the adapter lacks.
	ErrUnsupportedAdapter = errors.New("dialect is not supported by this database adapter")

	// ErrBuildingQueryFailed is returned when a statement could not be rendered.
	ErrBuildingQueryFailed = errors.New("building query failed")

	ErrInsertingUserFailed       = errors.New("inserting user failed")
	ErrSelectingUserFailed       = errors.New("selecting random user failed")
	ErrUpdatingUserFailed        = errors.New("updating user status failed")
	ErrInsertingActivityFailed   = errors.New("inserting activity failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrPingFailed                = errors.New("database ping failed")
	ErrCloseFailed               = errors.New("closing database session failed")
)
