package producer

import "context"

// Store is the single database session the producer holds for its whole lifetime.
type Store interface {
	// Begin starts a unit of work.
	Begin(ctx context.Context) (UnitOfWork, error)

	// Close releases the session. Implementations must tolerate repeated calls.
	Close(ctx context.Context) error
}

// UnitOfWork groups the writes between one commit/rollback boundary.
//
// Write methods return an error matching ErrConstraintViolation when a uniqueness constraint
// rejected the write, and RandomUser returns ErrNoUsers when the users table is empty.
type UnitOfWork interface {
	InsertUser(ctx context.Context, user UserRecord) (int64, error)
	RandomUser(ctx context.Context) (UserRef, error)
	UpdateUserStatus(ctx context.Context, userID int64, status UserStatus) error
	InsertActivity(ctx context.Context, activity ActivityRecord) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
