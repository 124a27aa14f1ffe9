package producer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
	"github.com/AntonStoeckl/cdc-load-producer/testutil/testdoubles"
)

func beginUnitOfWork(t *testing.T, store *testdoubles.FakeStore) producer.UnitOfWork {
	t.Helper()

	uow, err := store.Begin(context.Background())
	require.NoError(t, err)

	return uow
}

func Test_Executor_InsertUser(t *testing.T) {
	store := testdoubles.NewFakeStore()
	uow := beginUnitOfWork(t, store)

	result, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpInsertUser)

	require.NoError(t, err)
	assert.True(t, result.Applied())
	assert.Equal(t, producer.OpInsertUser, result.Kind)
	assert.Equal(t, int64(1), result.UserID)
	assert.Regexp(t, usernamePattern, result.Username)
	assert.Contains(t, producer.UserStatuses(), result.Status)
	assert.Empty(t, store.Users(), "executing must not commit")
}

func Test_Executor_InsertUser_DuplicateIsNoOp(t *testing.T) {
	store := testdoubles.NewFakeStore()
	store.FailNext(testdoubles.MethodInsertUser, errors.Join(producer.ErrConstraintViolation, testdoubles.ErrDuplicateUsername))
	uow := beginUnitOfWork(t, store)

	result, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpInsertUser)

	require.NoError(t, err)
	assert.False(t, result.Applied())
	assert.Equal(t, producer.NoOpDuplicate, result.NoOp)
}

func Test_Executor_UpdateUser(t *testing.T) {
	store := testdoubles.NewFakeStore()
	userID := store.SeedUser("alice_1234", producer.StatusActive)
	uow := beginUnitOfWork(t, store)

	result, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpUpdateUser)

	require.NoError(t, err)
	assert.True(t, result.Applied())
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "alice_1234", result.Username)
	assert.Contains(t, producer.UserStatuses(), result.Status)
	assert.Equal(t, 1, store.Calls(testdoubles.MethodUpdateUserStatus))
}

func Test_Executor_InsertActivity(t *testing.T) {
	store := testdoubles.NewFakeStore()
	userID := store.SeedUser("bob_2000", producer.StatusInactive)
	uow := beginUnitOfWork(t, store)

	result, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpInsertActivity)

	require.NoError(t, err)
	assert.True(t, result.Applied())
	assert.Equal(t, int64(1), result.ActivityID)
	assert.Equal(t, userID, result.UserID)
	assert.Contains(t, producer.ActivityTypes(), result.ActivityType)
}

func Test_Executor_WithoutUsers_IsNoOp(t *testing.T) {
	for _, kind := range []producer.OperationKind{producer.OpUpdateUser, producer.OpInsertActivity} {
		t.Run(string(kind), func(t *testing.T) {
			store := testdoubles.NewFakeStore()
			uow := beginUnitOfWork(t, store)

			result, err := producer.Executor{}.Execute(context.Background(), uow, kind)

			require.NoError(t, err)
			assert.Equal(t, producer.NoOpNoUsers, result.NoOp)
			assert.Equal(t, 0, store.Calls(testdoubles.MethodUpdateUserStatus))
			assert.Equal(t, 0, store.Calls(testdoubles.MethodInsertActivity))
		})
	}
}

func Test_Executor_UpdateOfVanishedUser_IsNoOp(t *testing.T) {
	store := testdoubles.NewFakeStore()
	store.SeedUser("carol_3000", producer.StatusActive)
	store.FailNext(testdoubles.MethodUpdateUserStatus, producer.ErrNoUsers)
	uow := beginUnitOfWork(t, store)

	result, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpUpdateUser)

	require.NoError(t, err)
	assert.Equal(t, producer.NoOpNoUsers, result.NoOp)
}

func Test_Executor_DatabaseError_IsOperationFailure(t *testing.T) {
	boom := errors.New("connection reset by peer")

	store := testdoubles.NewFakeStore()
	store.SeedUser("dave_4000", producer.StatusActive)
	store.FailNext(testdoubles.MethodInsertActivity, boom)
	uow := beginUnitOfWork(t, store)

	_, err := producer.Executor{}.Execute(context.Background(), uow, producer.OpInsertActivity)

	assert.ErrorIs(t, err, producer.ErrOperationFailed)
	assert.ErrorIs(t, err, boom)
}

func Test_Executor_UnknownKind(t *testing.T) {
	store := testdoubles.NewFakeStore()
	uow := beginUnitOfWork(t, store)

	_, err := producer.Executor{}.Execute(context.Background(), uow, producer.OperationKind("delete_user"))

	assert.ErrorIs(t, err, producer.ErrUnknownOperation)
}
