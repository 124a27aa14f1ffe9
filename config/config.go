package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

// Backend selects the database product the producer writes to.
type Backend string

const (
	BackendPostgres Backend = "POSTGRES"
	BackendOracle   Backend = "ORACLE"
)

// Adapter selects the Go database library used for the session.
type Adapter string

const (
	AdapterPGX   Adapter = "pgx"
	AdapterSQLDB Adapter = "sql.db"
	AdapterSQLX  Adapter = "sqlx.db"
)

var (
	// ErrInvalidBackend is returned for a CDC_MODE other than POSTGRES or ORACLE.
	ErrInvalidBackend = errors.New("invalid CDC_MODE")

	// ErrUnsupportedAdapter is returned for an unknown DB_ADAPTER or one the backend cannot use.
	ErrUnsupportedAdapter = errors.New("unsupported DB_ADAPTER")

	// ErrInvalidConnectAttempts is returned when CONNECT_MAX_ATTEMPTS is zero.
	ErrInvalidConnectAttempts = errors.New("CONNECT_MAX_ATTEMPTS must be positive")
)

var backendAdapters = map[Backend][]Adapter{
	BackendPostgres: {AdapterPGX, AdapterSQLDB, AdapterSQLX},
	BackendOracle:   {AdapterSQLDB, AdapterSQLX},
}

// Postgres holds the PostgreSQL connection parameters.
type Postgres struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// Oracle holds the Oracle connection parameters.
type Oracle struct {
	Host     string
	Port     int
	Service  string
	User     string
	Password string
}

// Connect holds the connector's retry policy.
type Connect struct {
	MaxAttempts uint
	RetryDelay  time.Duration
	Timeout     time.Duration
}

// Log holds the logger settings.
type Log struct {
	Level      string
	JSONStdout bool
}

// Metrics holds the OpenTelemetry metrics export settings.
type Metrics struct {
	Endpoint string
	Interval time.Duration
}

// Enabled reports whether metrics should be exported.
func (m Metrics) Enabled() bool {
	return m.Endpoint != ""
}

// Config is the validated runtime configuration, constructed once at startup.
type Config struct {
	Backend  Backend
	Adapter  Adapter
	Postgres Postgres
	Oracle   Oracle
	Connect  Connect
	Log      Log
	Metrics  Metrics
}

// Load reads an optional .env file from the working directory and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env file: %w", err)
	}

	var spec Spec
	if err := envconfig.Process("", &spec); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return FromSpec(spec)
}

// FromSpec validates spec and converts it into a Config.
func FromSpec(spec Spec) (Config, error) {
	backend := Backend(strings.ToUpper(strings.TrimSpace(spec.CDCMode)))
	allowed, ok := backendAdapters[backend]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q, must be %q or %q", ErrInvalidBackend, spec.CDCMode, BackendPostgres, BackendOracle)
	}

	adapter := Adapter(strings.ToLower(strings.TrimSpace(spec.DBAdapter)))
	if adapter == "" {
		adapter = allowed[0]
	}

	if !lo.Contains(allowed, adapter) {
		return Config{}, fmt.Errorf("%w: %q cannot be used with %s", ErrUnsupportedAdapter, spec.DBAdapter, backend)
	}

	if spec.ConnectMaxAttempts == 0 {
		return Config{}, ErrInvalidConnectAttempts
	}

	return Config{
		Backend: backend,
		Adapter: adapter,
		Postgres: Postgres{
			Host:     spec.PostgresHost,
			Port:     spec.PostgresPort,
			Database: spec.PostgresDatabase,
			User:     spec.PostgresUser,
			Password: spec.PostgresPassword,
		},
		Oracle: Oracle{
			Host:     spec.OracleHost,
			Port:     spec.OraclePort,
			Service:  spec.OracleService,
			User:     spec.OracleUser,
			Password: spec.OraclePassword,
		},
		Connect: Connect{
			MaxAttempts: spec.ConnectMaxAttempts,
			RetryDelay:  spec.ConnectRetryDelay,
			Timeout:     spec.ConnectTimeout,
		},
		Log: Log{
			Level:      spec.LogLevel,
			JSONStdout: spec.LogJSONStdout,
		},
		Metrics: Metrics{
			Endpoint: spec.OTelMetricsEndpoint,
			Interval: spec.OTelMetricsInterval,
		},
	}, nil
}
