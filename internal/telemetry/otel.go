// Package telemetry configures OpenTelemetry tracing for the server and worker.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.uber.org/zap"
)

// Service names reported to the collector
const (
	ServerServiceName = "slack-remind-server"
	WorkerServiceName = "slack-remind-worker"
)

const shutdownTimeout = 5 * time.Second

// Options describes the traced service and where spans go
type Options struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is host:port of an OTLP/HTTP collector
	Endpoint string
}

// InitTracer initializes the OpenTelemetry tracer provider and installs it
// together with the W3C trace-context propagator
func InitTracer(ctx context.Context, opts Options) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(), // collector runs beside the service
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	attrs := []resource.Option{resource.WithAttributes(semconv.ServiceName(opts.ServiceName))}
	if opts.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(opts.ServiceVersion)))
	}
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// Setup initializes tracing when enabled and returns a function flushing
// and stopping it. Failures are logged and leave the no-op provider in place;
// the returned function is always safe to call.
func Setup(ctx context.Context, enabled bool, opts Options, logger *zap.Logger) func() {
	noop := func() {}
	if !enabled {
		return noop
	}
	if opts.Endpoint == "" {
		logger.Warn("otel_enabled_but_endpoint_not_configured")
		return noop
	}

	tp, err := InitTracer(ctx, opts)
	if err != nil {
		logger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		return noop
	}
	logger.Info("otel_tracer_initialized",
		zap.String("service", opts.ServiceName),
		zap.String("endpoint", opts.Endpoint),
	)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := Shutdown(shutdownCtx, tp); err != nil {
			logger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
		}
	}
}

// Shutdown gracefully shuts down the tracer provider
func Shutdown(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}
