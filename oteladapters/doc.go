// Package oteladapters connects the producer's dependency-free observability interfaces to
// OpenTelemetry.
//
// MetricsCollector implements producer.MetricsCollector and producer.ContextualMetricsCollector
// on an OpenTelemetry metric.Meter. NewMeterProvider builds a MeterProvider that periodically
// pushes those metrics to an OTLP/gRPC endpoint:
//
//	provider, err := oteladapters.NewMeterProvider(ctx, "otel-collector:4317", 10*time.Second)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(context.Background())
//
//	collector := oteladapters.NewMetricsCollector(provider.Meter(oteladapters.MeterName))
package oteladapters
