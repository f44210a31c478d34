package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"fundacoes/internal/observability/metrics"
	"fundacoes/internal/observability/tracing"
	"fundacoes/internal/resilience/circuitbreaker"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ExecResult reports the outcome of a write.
// LastInsertID is zero for drivers that do not report it (pgx); use RETURNING there.
type ExecResult struct {
	LastInsertID int64
	RowsAffected int64
}

// Adapter exposes the three storage primitives used by the repositories:
// Exec (write), QueryOne (fetch a single row) and QueryAll (fetch every row).
// Every call is traced, timed, and optionally guarded by a circuit breaker.
type Adapter struct {
	db      *sql.DB
	breaker *circuitbreaker.CircuitBreaker
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCircuitBreaker guards every primitive with a breaker built from cfg.
// Missing rows and constraint violations do not count as failures.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(a *Adapter) {
		cfg.IsSuccessful = IsBenign
		a.breaker = circuitbreaker.New(cfg)
	}
}

// NewAdapter wraps an open handle.
func NewAdapter(db *sql.DB, opts ...Option) *Adapter {
	a := &Adapter{db: db}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DB returns the underlying handle.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

// Breaker returns the circuit breaker, or nil when disabled.
func (a *Adapter) Breaker() *circuitbreaker.CircuitBreaker {
	return a.breaker
}

// Exec runs a write statement.
func (a *Adapter) Exec(ctx context.Context, query string, args ...any) (ExecResult, error) {
	var out ExecResult
	err := a.run(ctx, "exec", func(ctx context.Context) error {
		res, err := a.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if id, err := res.LastInsertId(); err == nil {
			out.LastInsertID = id
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		out.RowsAffected = n
		return nil
	})
	return out, err
}

// QueryOne scans the first row into dest. It reports false, without error, when no row matches.
func (a *Adapter) QueryOne(ctx context.Context, query string, args []any, dest ...any) (bool, error) {
	err := a.run(ctx, "query_one", func(ctx context.Context) error {
		return a.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// QueryAll calls scan once per row. An empty result is not an error.
func (a *Adapter) QueryAll(ctx context.Context, query string, args []any, scan func(Scanner) error) error {
	return a.run(ctx, "query_all", func(ctx context.Context) error {
		rows, err := a.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
}

// Ping verifies the connection is alive.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.run(ctx, "ping", a.db.PingContext)
}

func (a *Adapter) run(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := tracing.GetTracer().Start(ctx, "db."+op)
	defer span.End()
	span.SetAttributes(attribute.String("db.operation", op))

	start := time.Now()
	err := a.guard(func() error { return fn(ctx) })
	metrics.RecordDBQuery(op, time.Since(start))

	if err != nil && !IsBenign(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (a *Adapter) guard(fn func() error) error {
	if a.breaker == nil {
		return fn()
	}
	return a.breaker.Do(fn)
}
