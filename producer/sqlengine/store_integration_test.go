//go:build integration

package sqlengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine"
	"github.com/AntonStoeckl/cdc-load-producer/testutil/helper"
	"github.com/AntonStoeckl/cdc-load-producer/testutil/testdoubles"
)

func Test_Integration_Store(t *testing.T) {
	ctx := context.Background()
	pg := helper.StartPostgres(ctx, t)

	t.Run("duplicate username is a constraint violation and leaves the table unchanged", func(t *testing.T) {
		pg.Truncate(ctx, t)
		store := pg.OpenStore(ctx, t)

		uow, err := store.Begin(ctx)
		require.NoError(t, err)
		_, err = uow.InsertUser(ctx, testUser)
		require.NoError(t, err)
		require.NoError(t, uow.Commit(ctx))

		uow, err = store.Begin(ctx)
		require.NoError(t, err)
		_, err = uow.InsertUser(ctx, testUser)
		assert.ErrorIs(t, err, producer.ErrConstraintViolation)
		require.NoError(t, uow.Rollback(ctx))

		assert.Equal(t, 1, pg.CountRows(ctx, t, "users"))
	})

	t.Run("empty users table yields ErrNoUsers", func(t *testing.T) {
		pg.Truncate(ctx, t)
		store := pg.OpenStore(ctx, t)

		uow, err := store.Begin(ctx)
		require.NoError(t, err)

		_, err = uow.RandomUser(ctx)
		assert.ErrorIs(t, err, producer.ErrNoUsers)
		require.NoError(t, uow.Rollback(ctx))
	})

	t.Run("update and activity reference an existing user", func(t *testing.T) {
		pg.Truncate(ctx, t)
		store := pg.OpenStore(ctx, t)

		uow, err := store.Begin(ctx)
		require.NoError(t, err)
		userID, err := uow.InsertUser(ctx, testUser)
		require.NoError(t, err)
		require.NoError(t, uow.Commit(ctx))

		uow, err = store.Begin(ctx)
		require.NoError(t, err)
		user, err := uow.RandomUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, producer.UserRef{ID: userID, Username: testUser.Username}, user)

		require.NoError(t, uow.UpdateUserStatus(ctx, user.ID, producer.StatusSuspended))
		activityID, err := uow.InsertActivity(ctx, producer.GenerateActivity(user.ID))
		require.NoError(t, err)
		assert.Positive(t, activityID)
		require.NoError(t, uow.Commit(ctx))

		assert.Equal(t, "suspended", pg.UserStatus(ctx, t, userID))
		assert.Equal(t, 1, pg.CountRows(ctx, t, "user_activities"))
	})

	t.Run("rolled back writes are not visible", func(t *testing.T) {
		pg.Truncate(ctx, t)
		store := pg.OpenStore(ctx, t)

		uow, err := store.Begin(ctx)
		require.NoError(t, err)
		_, err = uow.InsertUser(ctx, testUser)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback(ctx))

		assert.Equal(t, 0, pg.CountRows(ctx, t, "users"))
	})
}

func Test_Integration_Generator(t *testing.T) {
	ctx := context.Background()
	pg := helper.StartPostgres(ctx, t)

	run := func(t *testing.T, kinds ...producer.OperationKind) producer.Summary {
		t.Helper()

		store, err := sqlengine.Connect(ctx, pg.Config)
		require.NoError(t, err)

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := testdoubles.NewLoggerSpy(false)
		generator, err := producer.NewGenerator(
			store,
			producer.WithInterval(0),
			producer.WithLogger(logger),
			producer.WithOperationPicker(producer.NewSequencePicker(kinds...)),
		)
		require.NoError(t, err)

		time.AfterFunc(time.Duration(len(kinds))*200*time.Millisecond, cancel)

		summary, err := generator.Run(runCtx)
		require.NoError(t, err)
		assert.Len(t, logger.EntriesWithPrefix("committed: "), summary.Committed)

		return summary
	}

	t.Run("empty database skips update and activity", func(t *testing.T) {
		pg.Truncate(ctx, t)

		summary := run(t, producer.OpUpdateUser, producer.OpInsertActivity)

		assert.Zero(t, summary.Committed)
		assert.Zero(t, summary.Failed)
		assert.Positive(t, summary.Skipped)
		assert.Equal(t, 0, pg.CountRows(ctx, t, "users"))
		assert.Equal(t, 0, pg.CountRows(ctx, t, "user_activities"))
	})

	t.Run("inserted users receive activities", func(t *testing.T) {
		pg.Truncate(ctx, t)

		summary := run(t, producer.OpInsertUser, producer.OpInsertActivity)

		assert.Zero(t, summary.Failed)
		assert.Equal(t, 1, pg.CountRows(ctx, t, "users"))
		assert.Equal(t, summary.Committed-1, pg.CountRows(ctx, t, "user_activities"))
	})
}

func Test_Integration_Connect_Unreachable(t *testing.T) {
	ctx := context.Background()
	pg := helper.StartPostgres(ctx, t)

	cfg := pg.Config
	cfg.Postgres.Port = 1
	cfg.Connect.MaxAttempts = 2
	cfg.Connect.RetryDelay = 10 * time.Millisecond

	_, err := sqlengine.Connect(ctx, cfg)

	assert.True(t, errors.Is(err, producer.ErrConnectFailed))
}
