package telemetry

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitTracer(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "server with version",
			opts: Options{ServiceName: ServerServiceName, ServiceVersion: "1.0.0", Endpoint: "localhost:4318"},
		},
		{
			name: "worker without version",
			opts: Options{ServiceName: WorkerServiceName, Endpoint: "localhost:4318"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			tp, err := InitTracer(ctx, tt.opts)
			if err != nil {
				t.Fatalf("InitTracer() error = %v", err)
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := Shutdown(shutdownCtx, tp); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestShutdown_NilProvider(t *testing.T) {
	if err := Shutdown(context.Background(), nil); err != nil {
		t.Errorf("Shutdown() with nil provider should not error, got: %v", err)
	}
}

func TestSetup(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		stop := Setup(context.Background(), false, Options{Endpoint: "localhost:4318"}, zap.New(core))
		stop()
		if logs.Len() != 0 {
			t.Errorf("disabled tracing logged %v", logs.All())
		}
	})

	t.Run("enabled without endpoint", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		stop := Setup(context.Background(), true, Options{ServiceName: ServerServiceName}, zap.New(core))
		stop()
		if logs.FilterMessage("otel_enabled_but_endpoint_not_configured").Len() != 1 {
			t.Errorf("logs = %v", logs.All())
		}
	})

	t.Run("enabled", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		stop := Setup(context.Background(), true, Options{ServiceName: WorkerServiceName, Endpoint: "localhost:4318"}, zap.New(core))
		if logs.FilterMessage("otel_tracer_initialized").Len() != 1 {
			t.Errorf("logs = %v", logs.All())
		}
		stop()
	})
}
