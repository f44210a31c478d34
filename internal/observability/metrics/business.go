package metrics

import (
	"time"
)

// RecordFoundationOperation counts one registry operation.
// Result is a short outcome label such as "success" or "conflict".
func RecordFoundationOperation(operation, result string) {
	FoundationOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateFoundationsTotal updates the total count of foundations in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateFoundationsTotal(count int) {
	FoundationsTotal.Set(float64(count))
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited(path string) {
	RateLimitedTotal.WithLabelValues(path).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the primitive (e.g., "exec", "query_one").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitBreakerState publishes a breaker's state code.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
