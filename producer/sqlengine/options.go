package sqlengine

import (
	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithDialect sets the SQL dialect. The default is Postgres().
func WithDialect(dialect Dialect) Option {
	return func(s *Store) error {
		if dialect == nil {
			return ErrNilDialect
		}

		s.dialect = dialect

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing
// Warn level: failed rollbacks
// Error level: failed statements, except uniqueness violations which are expected.
func WithLogger(logger producer.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store, which records per-statement durations.
func WithMetrics(collector producer.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}
