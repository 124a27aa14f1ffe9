package producer

import (
	"context"
	"errors"
	"fmt"
)

// NoOpReason explains why an operation did not change the store.
type NoOpReason string

const (
	NoOpNone      NoOpReason = ""
	NoOpDuplicate NoOpReason = "duplicate"
	NoOpNoUsers   NoOpReason = "no_users"
)

// Result describes the outcome of one executed operation.
// A Result with a non-empty NoOp reason did not write anything.
type Result struct {
	Kind         OperationKind
	NoOp         NoOpReason
	UserID       int64
	ActivityID   int64
	Username     string
	Status       UserStatus
	ActivityType ActivityType
}

// Applied reports whether the operation wrote to the store.
func (r Result) Applied() bool {
	return r.NoOp == NoOpNone
}

// LogArgs returns the identifiers and values of the result as logger key/value pairs.
func (r Result) LogArgs() []any {
	switch r.Kind {
	case OpInsertUser:
		return []any{logAttrUserID, r.UserID, logAttrUsername, r.Username, logAttrStatus, string(r.Status)}
	case OpUpdateUser:
		return []any{logAttrUserID, r.UserID, logAttrUsername, r.Username, logAttrNewStatus, string(r.Status)}
	case OpInsertActivity:
		return []any{logAttrActivityID, r.ActivityID, logAttrUserID, r.UserID, logAttrActivityType, string(r.ActivityType)}
	default:
		return nil
	}
}

func noOp(kind OperationKind, reason NoOpReason) Result {
	return Result{Kind: kind, NoOp: reason}
}

// Executor maps an operation kind to exactly one write on a unit of work.
type Executor struct{}

// Execute performs the operation and returns the affected identifiers and values.
// Unmet preconditions and uniqueness violations yield a no-op Result and a nil error.
// Any other failure is returned as an error matching ErrOperationFailed; committing or rolling
// back the unit of work is the caller's job.
func (e Executor) Execute(ctx context.Context, uow UnitOfWork, kind OperationKind) (Result, error) {
	switch kind {
	case OpInsertUser:
		return e.insertUser(ctx, uow)
	case OpUpdateUser:
		return e.updateUser(ctx, uow)
	case OpInsertActivity:
		return e.insertActivity(ctx, uow)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperation, kind)
	}
}

func (e Executor) insertUser(ctx context.Context, uow UnitOfWork) (Result, error) {
	user := GenerateUser()

	userID, err := uow.InsertUser(ctx, user)
	if err != nil {
		if errors.Is(err, ErrConstraintViolation) {
			return noOp(OpInsertUser, NoOpDuplicate), nil
		}

		return Result{}, errors.Join(ErrOperationFailed, err)
	}

	return Result{
		Kind:     OpInsertUser,
		UserID:   userID,
		Username: user.Username,
		Status:   user.Status,
	}, nil
}

func (e Executor) updateUser(ctx context.Context, uow UnitOfWork) (Result, error) {
	user, err := uow.RandomUser(ctx)
	if err != nil {
		if errors.Is(err, ErrNoUsers) {
			return noOp(OpUpdateUser, NoOpNoUsers), nil
		}

		return Result{}, errors.Join(ErrOperationFailed, err)
	}

	newStatus := GenerateStatus()

	if err = uow.UpdateUserStatus(ctx, user.ID, newStatus); err != nil {
		if errors.Is(err, ErrNoUsers) {
			return noOp(OpUpdateUser, NoOpNoUsers), nil
		}

		return Result{}, errors.Join(ErrOperationFailed, err)
	}

	return Result{
		Kind:     OpUpdateUser,
		UserID:   user.ID,
		Username: user.Username,
		Status:   newStatus,
	}, nil
}

func (e Executor) insertActivity(ctx context.Context, uow UnitOfWork) (Result, error) {
	user, err := uow.RandomUser(ctx)
	if err != nil {
		if errors.Is(err, ErrNoUsers) {
			return noOp(OpInsertActivity, NoOpNoUsers), nil
		}

		return Result{}, errors.Join(ErrOperationFailed, err)
	}

	activity := GenerateActivity(user.ID)

	activityID, err := uow.InsertActivity(ctx, activity)
	if err != nil {
		if errors.Is(err, ErrConstraintViolation) {
			return noOp(OpInsertActivity, NoOpDuplicate), nil
		}

		return Result{}, errors.Join(ErrOperationFailed, err)
	}

	return Result{
		Kind:         OpInsertActivity,
		ActivityID:   activityID,
		UserID:       user.ID,
		ActivityType: activity.Type,
	}, nil
}
