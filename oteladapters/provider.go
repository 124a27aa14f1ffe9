package oteladapters

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// MeterName is the instrumentation scope of the producer's metrics.
	MeterName = "github.com/AntonStoeckl/cdc-load-producer"

	serviceName = "cdc-load-producer"
)

// ErrEmptyEndpoint is returned by NewMeterProvider when no endpoint is given.
var ErrEmptyEndpoint = errors.New("metrics endpoint must not be empty")

// NewMeterProvider creates a MeterProvider exporting to the OTLP/gRPC endpoint (host:port,
// plaintext) every interval. The caller owns the provider and must Shutdown it, which flushes
// pending metrics.
func NewMeterProvider(ctx context.Context, endpoint string, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	readerOptions := []sdkmetric.PeriodicReaderOption{}
	if interval > 0 {
		readerOptions = append(readerOptions, sdkmetric.WithInterval(interval))
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOptions...)),
		sdkmetric.WithResource(res),
	), nil
}
