package producer

import "time"

const defaultInterval = 3 * time.Second

// Option defines a functional option for configuring a Generator.
type Option func(*Generator) error

// WithInterval sets the fixed wait between two cycles.
func WithInterval(interval time.Duration) Option {
	return func(g *Generator) error {
		if interval < 0 {
			return ErrNegativeInterval
		}

		g.interval = interval

		return nil
	}
}

// WithLogger sets the logger for the Generator.
//
// Debug level: no-op cycles
// Info level: committed operations, start and shutdown summary
// Error level: failed operations, commit/rollback failures, close failures.
func WithLogger(logger Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Generator.
// The collector receives operation counts by kind and outcome and operation durations.
func WithMetrics(collector MetricsCollector) Option {
	return func(g *Generator) error {
		g.metricsCollector = collector
		return nil
	}
}

// WithOperationPicker replaces the default 2:1:5 weighted draw.
func WithOperationPicker(picker OperationPicker) Option {
	return func(g *Generator) error {
		if picker == nil {
			return ErrNilOperationPicker
		}

		g.picker = picker

		return nil
	}
}

// WithExecutor replaces the operation executor.
func WithExecutor(executor OperationExecutor) Option {
	return func(g *Generator) error {
		if executor == nil {
			return ErrNilExecutor
		}

		g.executor = executor

		return nil
	}
}
