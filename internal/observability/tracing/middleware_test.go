package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracer installs an in-memory exporter as the global provider.
func setupTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider("test", sdktrace.WithSyncer(exporter))
	tracer = otel.Tracer(ServiceName)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
		tracer = otel.Tracer(ServiceName)
	})
	return exporter, tp
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := setupTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPut, "/api/fundacoes/42", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "PUT /api/fundacoes/:id", span.Name)

	status, ok := attrValue(span.Attributes, "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(200), status.AsInt64())

	route, ok := attrValue(span.Attributes, "http.route")
	require.True(t, ok)
	assert.Equal(t, "/api/fundacoes/:id", route.AsString())

	path, ok := attrValue(span.Attributes, "http.path")
	require.True(t, ok)
	assert.Equal(t, "/api/fundacoes/42", path.AsString())
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/fundacoes", nil))

	traceID := rr.Header().Get(TraceIDHeader)
	assert.Len(t, traceID, 32)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := setupTracer(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/api/fundacoes", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
}

func TestMiddleware_SpanStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus codes.Code
	}{
		{name: "ok", status: http.StatusOK, wantStatus: codes.Unset},
		{name: "not found", status: http.StatusNotFound, wantStatus: codes.Unset},
		{name: "conflict", status: http.StatusConflict, wantStatus: codes.Unset},
		{name: "internal error", status: http.StatusInternalServerError, wantStatus: codes.Error},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := setupTracer(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/fundacoes", nil))
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status.Code)
		})
	}
}

func TestNewProvider_SetsResource(t *testing.T) {
	exporter, tp := setupTracer(t)

	_, span := GetTracer().Start(context.Background(), "db.exec")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	name, ok := attrValue(spans[0].Resource.Attributes(), "service.name")
	require.True(t, ok)
	assert.Equal(t, ServiceName, name.AsString())
}
