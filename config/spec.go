package config

import "time"

// Spec mirrors the environment variables understood by the producer. Every key has a default
// suitable for the local docker-compose CDC test environment.
type Spec struct {
	// CDCMode selects the backend: POSTGRES or ORACLE (case-insensitive).
	CDCMode string `envconfig:"CDC_MODE" default:"POSTGRES"`

	// DBAdapter selects the session adapter: pgx, sql.db or sqlx.db.
	// Empty picks the backend default (pgx for PostgreSQL, sql.db for Oracle).
	DBAdapter string `envconfig:"DB_ADAPTER"`

	PostgresHost     string `envconfig:"DB_HOST" default:"postgres"`
	PostgresPort     int    `envconfig:"DB_PORT" default:"5432"`
	PostgresDatabase string `envconfig:"POSTGRES_DB" default:"cdcdb"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres123"`

	OracleHost     string `envconfig:"ORACLE_HOST" default:"oracle"`
	OraclePort     int    `envconfig:"ORACLE_PORT" default:"1521"`
	OracleService  string `envconfig:"ORACLE_DATABASE" default:"CDCDB"`
	OracleUser     string `envconfig:"ORACLE_APP_USER" default:"appuser"`
	OraclePassword string `envconfig:"ORACLE_APP_PASSWORD" default:"appuser123"`

	// ConnectMaxAttempts bounds the connector's retries while the database is starting up.
	ConnectMaxAttempts uint `envconfig:"CONNECT_MAX_ATTEMPTS" default:"30"`

	// ConnectRetryDelay is the fixed wait between two connection attempts.
	ConnectRetryDelay time.Duration `envconfig:"CONNECT_RETRY_DELAY" default:"5s"`

	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSONStdout bool   `envconfig:"LOG_JSON_STDOUT" default:"false"`

	// OTelMetricsEndpoint is the OTLP/gRPC endpoint metrics are exported to. Empty disables export.
	OTelMetricsEndpoint string        `envconfig:"OTEL_METRICS_ENDPOINT"`
	OTelMetricsInterval time.Duration `envconfig:"OTEL_METRICS_INTERVAL" default:"10s"`
}
