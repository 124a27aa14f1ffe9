package producer

import (
	"context"
	"time"
)

const (
	MetricOperationsTotal          = "producer_operations_total"
	MetricOperationDurationSeconds = "producer_operation_duration_seconds"
	MetricStoreQueryDuration       = "producer_store_query_duration_seconds"
	MetricConnectAttemptsTotal     = "producer_connect_attempts_total"
	MetricCommittedOperations      = "producer_committed_operations"

	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelStatement = "statement"

	StatusCommitted = "committed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusSuccess   = "success"
	StatusError     = "error"
)

// Logger interface for SQL query logging, operation results, warnings, and error reporting.
// Arguments are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting producer performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
// It is optional: the producer uses the context-aware methods when available and falls back to
// the base MetricsCollector interface otherwise.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// IncrementCounter increments a counter on the collector, preferring the context-aware variant.
// A nil collector is a no-op.
func IncrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if collector == nil {
		return
	}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// RecordDuration records a duration on the collector, preferring the context-aware variant.
// A nil collector is a no-op.
func RecordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if collector == nil {
		return
	}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

// RecordValue sets a gauge on the collector, preferring the context-aware variant.
// A nil collector is a no-op.
func RecordValue(ctx context.Context, collector MetricsCollector, metric string, value float64, labels map[string]string) {
	if collector == nil {
		return
	}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	collector.RecordValue(metric, value, labels)
}
