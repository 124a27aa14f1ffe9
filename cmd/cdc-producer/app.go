package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/AntonStoeckl/cdc-load-producer/config"
	"github.com/AntonStoeckl/cdc-load-producer/logging"
	"github.com/AntonStoeckl/cdc-load-producer/oteladapters"
	"github.com/AntonStoeckl/cdc-load-producer/producer"
	"github.com/AntonStoeckl/cdc-load-producer/producer/sqlengine"
)

const (
	appName         = "cdc-producer"
	flagInterval    = "interval"
	envInterval     = "PRODUCER_INTERVAL"
	defaultInterval = 3.0
	exitFailure     = 1
	bannerWidth     = 60
)

const maxIntervalSeconds = math.MaxInt64 / float64(time.Second)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      appName,
		Usage:     "generate a steady stream of INSERTs and UPDATEs for CDC testing",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    flagInterval,
				Usage:   "seconds to wait between two operations",
				Value:   defaultInterval,
				EnvVars: []string{envInterval},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, out)
		},
		// errors are turned into exit codes by main, not inside Run
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func run(c *cli.Context, out io.Writer) error {
	interval, err := parseInterval(c.Float64(flagInterval))
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	zl, runID := logging.WithRunID(logging.Configure(cfg.Log, out))
	logger := logging.NewAdapter(zl)

	printBanner(zl, cfg, interval)
	zl.Debug().Str("run_id", runID).Msg("run id assigned")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector, shutdownMetrics := setupMetrics(ctx, zl, cfg.Metrics)
	defer shutdownMetrics()

	store, err := sqlengine.Connect(
		ctx,
		cfg,
		sqlengine.WithConnectLogger(logger),
		sqlengine.WithConnectMetrics(collector),
		sqlengine.WithStoreOptions(
			sqlengine.WithLogger(logger),
			sqlengine.WithMetrics(collector),
		),
	)
	if err != nil {
		if ctx.Err() != nil {
			zl.Info().Msg("stopped before a database connection was established")
			return nil
		}

		return cli.Exit(err.Error(), exitFailure)
	}

	generator, err := producer.NewGenerator(
		store,
		producer.WithInterval(interval),
		producer.WithLogger(logger),
		producer.WithMetrics(collector),
	)
	if err != nil {
		_ = store.Close(context.Background())
		return cli.Exit(err.Error(), exitFailure)
	}

	zl.Info().Msg("press Ctrl+C to stop")

	summary, err := generator.Run(ctx)
	if err != nil {
		zl.Warn().Err(err).Msg("producer stopped with error")
	}

	zl.Info().
		Int("total_operations", summary.Committed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("producer stopped")

	return nil
}

// parseInterval converts the --interval seconds into a duration that time.Duration can hold.
func parseInterval(seconds float64) (time.Duration, error) {
	switch {
	case math.IsNaN(seconds):
		return 0, fmt.Errorf("--%s must be a number, got %v", flagInterval, seconds)
	case seconds < 0:
		return 0, fmt.Errorf("--%s must not be negative, got %v", flagInterval, seconds)
	case seconds >= maxIntervalSeconds:
		return 0, fmt.Errorf("--%s must be below %.0f seconds, got %v", flagInterval, maxIntervalSeconds, seconds)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

func printBanner(zl zerolog.Logger, cfg config.Config, interval time.Duration) {
	line := strings.Repeat("=", bannerWidth)

	zl.Info().Msg(line)
	zl.Info().
		Str("mode", string(cfg.Backend)).
		Str("adapter", string(cfg.Adapter)).
		Str("target", cfg.Target()).
		Str("interval", interval.String()).
		Msg("CDC load producer")
	zl.Info().Msg(line)
}

// setupMetrics returns a nil collector when export is disabled or the exporter cannot be built,
// metrics being optional for the producer.
func setupMetrics(ctx context.Context, zl zerolog.Logger, cfg config.Metrics) (producer.MetricsCollector, func()) {
	noop := func() {}

	if !cfg.Enabled() {
		return nil, noop
	}

	provider, err := oteladapters.NewMeterProvider(ctx, cfg.Endpoint, cfg.Interval)
	if err != nil {
		zl.Warn().Err(err).Str("endpoint", cfg.Endpoint).Msg("metrics export disabled")
		return nil, noop
	}

	shutdown := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			zl.Warn().Err(err).Msg("flushing metrics failed")
		}
	}

	return oteladapters.NewMetricsCollector(provider.Meter(oteladapters.MeterName)), shutdown
}
