//go:build integration

package helper

import (
	"context"
	_ "embed"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/AntonStoeckl/cdc-load-producer/config"
	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine"
)

const (
	envAdapterType = "ADAPTER_TYPE"
	postgresImage  = "postgres:16-alpine"
	testDatabase   = "cdcdb"
	testUser       = "postgres"
	testPassword   = "postgres123"
	postgresPort   = "5432/tcp"
)

//go:embed schema_postgres.sql
var schemaPostgres string

// Postgres is a running test database with the producer's tables.
type Postgres struct {
	Config  config.Config
	ConnStr string
}

// StartPostgres runs a PostgreSQL container for the duration of the test, creates the tables,
// and returns a configuration pointing at it that uses the adapter from ADAPTER_TYPE.
func StartPostgres(ctx context.Context, t testing.TB) Postgres {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage(postgresImage),
		postgrescontainer.WithDatabase(testDatabase),
		postgrescontainer.WithUsername(testUser),
		postgrescontainer.WithPassword(testPassword),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		conn, err := pgx.Connect(ctx, connStr)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close(ctx) }()

		return conn.Ping(ctx) == nil
	}, 30*time.Second, 500*time.Millisecond, "postgres did not become ready")

	exec(ctx, t, connStr, schemaPostgres)

	host, err := pg.Host(ctx)
	require.NoError(t, err)

	port, err := pg.MappedPort(ctx, postgresPort)
	require.NoError(t, err)

	portNumber, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	cfg, err := config.FromSpec(config.Spec{
		CDCMode:            string(config.BackendPostgres),
		DBAdapter:          AdapterFromEnv(),
		PostgresHost:       host,
		PostgresPort:       portNumber,
		PostgresDatabase:   testDatabase,
		PostgresUser:       testUser,
		PostgresPassword:   testPassword,
		ConnectMaxAttempts: 3,
		ConnectRetryDelay:  500 * time.Millisecond,
		ConnectTimeout:     5 * time.Second,
		LogLevel:           "debug",
	})
	require.NoError(t, err)

	return Postgres{Config: cfg, ConnStr: connStr}
}

// AdapterFromEnv returns the adapter named by ADAPTER_TYPE, pgx when unset.
func AdapterFromEnv() string {
	adapter := strings.ToLower(os.Getenv(envAdapterType))
	if adapter == "" {
		return string(config.AdapterPGX)
	}

	return adapter
}

// OpenStore opens a Store on the test database and closes it when the test ends.
func (p Postgres) OpenStore(ctx context.Context, t testing.TB, options ...sqlengine.Option) *sqlengine.Store {
	t.Helper()

	store, err := sqlengine.Open(ctx, p.Config, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

// Truncate empties both tables and resets their id sequences.
func (p Postgres) Truncate(ctx context.Context, t testing.TB) {
	t.Helper()

	exec(ctx, t, p.ConnStr, "TRUNCATE user_activities, users RESTART IDENTITY")
}

// CountRows returns the number of rows in table.
func (p Postgres) CountRows(ctx context.Context, t testing.TB, table string) int {
	t.Helper()

	conn, err := pgx.Connect(ctx, p.ConnStr)
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()

	var count int
	require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count))

	return count
}

// UserStatus returns the status column of the user with id.
func (p Postgres) UserStatus(ctx context.Context, t testing.TB, id int64) string {
	t.Helper()

	conn, err := pgx.Connect(ctx, p.ConnStr)
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()

	var status string
	require.NoError(t, conn.QueryRow(ctx, "SELECT status FROM users WHERE id = $1", id).Scan(&status))

	return status
}

func exec(ctx context.Context, t testing.TB, connStr, sql string) {
	t.Helper()

	conn, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)
	defer func() { _ = conn.Close(ctx) }()

	_, err = conn.Exec(ctx, sql)
	require.NoError(t, err)
}
