package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// otelmux continues an incoming traceparent and AI attempt spans nest
// under the request span.
func TestTraceContextPropagation(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := mux.NewRouter()
	r.Use(otelmux.Middleware(ServerServiceName,
		otelmux.WithTracerProvider(tp),
		otelmux.WithPropagators(propagation.TraceContext{}),
	))
	r.HandleFunc("/api/v1/ai/commands", func(w http.ResponseWriter, r *http.Request) {
		_, span := tp.Tracer("ai").Start(r.Context(), "ai.chat_completion")
		span.End()
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	const incomingTrace = "4bf92f3577b34da6a3ce929d0e0e4736"

	tests := []struct {
		name        string
		traceParent string
	}{
		{name: "new trace"},
		{name: "continued trace", traceParent: "00-" + incomingTrace + "-00f067aa0ba902b7-01"},
	}

	// Subtests share the exporter, so they run in order
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter.Reset()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ai/commands", nil)
			if tt.traceParent != "" {
				req.Header.Set("traceparent", tt.traceParent)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != http.StatusNoContent {
				t.Fatalf("status = %d", rr.Code)
			}

			spans := exporter.GetSpans()
			if len(spans) != 2 {
				t.Fatalf("got %d spans, want 2", len(spans))
			}
			attempt, server := spans[0], spans[1]
			if attempt.Name != "ai.chat_completion" {
				t.Errorf("first span = %q", attempt.Name)
			}
			if attempt.Parent.SpanID() != server.SpanContext.SpanID() {
				t.Error("attempt span is not a child of the request span")
			}

			traceID := server.SpanContext.TraceID().String()
			if tt.traceParent != "" && traceID != incomingTrace {
				t.Errorf("trace id = %s, want %s", traceID, incomingTrace)
			}
			if tt.traceParent == "" && traceID == incomingTrace {
				t.Error("new request reused the incoming trace id")
			}
		})
	}
}
