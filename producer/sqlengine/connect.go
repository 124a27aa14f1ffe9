package sqlengine

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/AntonStoeckl/cdc-load-producer/config"
	"github.com/AntonStoeckl/cdc-load-producer/producer"
)

const (
	logMsgConnecting      = "connecting to database"
	logMsgConnected       = "connected to database"
	logMsgConnectFailed   = "failed to connect"
	logMsgRetrying        = "retrying"
	logMsgRetriesExceeded = "max retries reached"
	logAttrBackend        = "backend"
	logAttrAdapter        = "adapter"
	logAttrTarget         = "target"
	logAttrAttempt        = "attempt"
	logAttrMaxAttempts    = "max_attempts"
	logAttrRetryIn        = "retry_in"
)

// Opener opens one session, Open being the production implementation.
type Opener func(ctx context.Context, cfg config.Config, options ...Option) (*Store, error)

type connector struct {
	open             Opener
	logger           producer.Logger
	metricsCollector producer.MetricsCollector
	storeOptions     []Option
}

// ConnectOption configures Connect.
type ConnectOption func(*connector)

// WithOpener replaces Open, mainly for tests.
func WithOpener(open Opener) ConnectOption {
	return func(c *connector) {
		c.open = open
	}
}

// WithConnectLogger sets the logger receiving one line per attempt.
func WithConnectLogger(logger producer.Logger) ConnectOption {
	return func(c *connector) {
		c.logger = logger
	}
}

// WithConnectMetrics sets the collector counting connection attempts by status.
func WithConnectMetrics(collector producer.MetricsCollector) ConnectOption {
	return func(c *connector) {
		c.metricsCollector = collector
	}
}

// WithStoreOptions passes options through to the Store that is eventually opened.
func WithStoreOptions(options ...Option) ConnectOption {
	return func(c *connector) {
		c.storeOptions = append(c.storeOptions, options...)
	}
}

// Connect opens a session, retrying with a fixed delay until it succeeds or
// cfg.Connect.MaxAttempts attempts have failed. Exhaustion returns an error matching
// producer.ErrConnectFailed together with the last failure.
// Cancelling ctx aborts the wait between attempts.
func Connect(ctx context.Context, cfg config.Config, options ...ConnectOption) (*Store, error) {
	c := connector{open: Open}
	for _, option := range options {
		option(&c)
	}

	maxAttempts := cfg.Connect.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	var (
		store   *Store
		attempt uint
	)

	err := retry.Do(
		func() error {
			attempt++
			c.log(logMsgConnecting, cfg, logAttrAttempt, attempt, logAttrMaxAttempts, maxAttempts)

			opened, err := c.open(ctx, cfg, c.storeOptions...)
			if err != nil {
				c.recordAttempt(ctx, producer.StatusError)
				c.logFailure(err, attempt, maxAttempts, cfg.Connect.RetryDelay)

				return err
			}

			c.recordAttempt(ctx, producer.StatusSuccess)
			store = opened

			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(cfg.Connect.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, errors.Join(producer.ErrConnectFailed, err)
	}

	c.log(logMsgConnected, cfg)

	return store, nil
}

func (c *connector) log(msg string, cfg config.Config, args ...any) {
	if c.logger == nil {
		return
	}

	allArgs := []any{
		logAttrBackend, string(cfg.Backend),
		logAttrAdapter, string(cfg.Adapter),
		logAttrTarget, cfg.Target(),
	}
	allArgs = append(allArgs, args...)
	c.logger.Info(msg, allArgs...)
}

func (c *connector) logFailure(err error, attempt, maxAttempts uint, delay time.Duration) {
	if c.logger == nil {
		return
	}

	c.logger.Error(logMsgConnectFailed, logAttrError, err.Error(), logAttrAttempt, attempt, logAttrMaxAttempts, maxAttempts)

	if attempt < maxAttempts {
		c.logger.Info(logMsgRetrying, logAttrRetryIn, delay.String())
		return
	}

	c.logger.Error(logMsgRetriesExceeded, logAttrMaxAttempts, maxAttempts)
}

func (c *connector) recordAttempt(ctx context.Context, status string) {
	producer.IncrementCounter(ctx, c.metricsCollector, producer.MetricConnectAttemptsTotal, map[string]string{
		producer.LabelStatus: status,
	})
}
