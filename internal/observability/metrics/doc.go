// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (foundations total, registry operations)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "fundacoes/internal/observability/metrics"
//
//	func create(ctx context.Context) {
//	    start := time.Now()
//	    // ... insert row ...
//	    metrics.RecordDBQuery("exec", time.Since(start))
//	    metrics.RecordFoundationOperation("create", "success")
//	}
package metrics
