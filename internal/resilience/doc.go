// Package resilience provides fault tolerance patterns for the storage layer.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker. The storage
// adapter optionally routes every primitive through a breaker so that a dead
// database fails fast instead of piling up requests.
//
// Writes are never retried: conflicting writes are settled by the storage
// engine's own constraints.
package resilience
