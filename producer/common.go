package producer

import (
	"errors"
)

var ErrNilStore = errors.New("store must not be nil")
var ErrNegativeInterval = errors.New("interval must not be negative")
var ErrNilOperationPicker = errors.New("operation picker must not be nil")
var ErrNilExecutor = errors.New("executor must not be nil")
var ErrGeneratorAlreadyStarted = errors.New("generator was already started")

// ErrConstraintViolation marks a write rejected by a uniqueness constraint. It is a benign no-op.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrNoUsers is returned by UnitOfWork.RandomUser when the users table is empty.
var ErrNoUsers = errors.New("no users exist")

var ErrUnknownOperation = errors.New("unknown operation kind")
var ErrOperationFailed = errors.New("operation failed")
var ErrBeginFailed = errors.New("beginning unit of work failed")
var ErrCommitFailed = errors.New("committing unit of work failed")
var ErrRollbackFailed = errors.New("rolling back unit of work failed")

// ErrConnectFailed is returned when no session could be opened within the configured attempts.
var ErrConnectFailed = errors.New("connecting to the database failed")
