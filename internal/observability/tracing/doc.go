// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware opens one server span per HTTP request and echoes the trace ID in
// the X-Trace-Id response header. The storage adapter opens child spans for
// each database primitive through GetTracer.
//
//	tp := tracing.NewProvider(version)
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//	handler := tracing.Middleware(mux)
package tracing
