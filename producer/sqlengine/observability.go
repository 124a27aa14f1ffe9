package sqlengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s *Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s *Store) logError(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

func (s *Store) logWarn(message string, err error, args ...any) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Warn(message, allArgs...)
	}
}

// recordQueryDuration records the duration of one statement, labeled by statement and status.
func (s *Store) recordQueryDuration(ctx context.Context, statement string, duration time.Duration, err error) {
	status := producer.StatusSuccess
	if err != nil {
		status = producer.StatusError
	}

	producer.RecordDuration(ctx, s.metricsCollector, producer.MetricStoreQueryDuration, duration, map[string]string{
		producer.LabelStatement: statement,
		producer.LabelStatus:    status,
	})
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
