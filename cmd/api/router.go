package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	hhttp "fundacoes/internal/handler/http"
	"fundacoes/internal/handler/http/foundation"
	"fundacoes/internal/handler/http/middleware"
	"fundacoes/internal/handler/http/requestid"
	"fundacoes/internal/handler/http/static"
	"fundacoes/internal/observability/tracing"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// routerDeps carries everything the HTTP surface needs.
type routerDeps struct {
	Logger         *slog.Logger
	DB             *sql.DB
	Breaker        hhttp.BreakerState
	Version        string
	Service        fdnUC.Service
	PublicDir      string
	BodyLimitBytes int64
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
}

// newRouter registers all routes and wraps them in the middleware chain.
//
// Routes: health checks and /metrics, /swagger/, the foundation API under /api, and
// the static UI for everything else.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Handle("/health", &hhttp.HealthHandler{DB: d.DB, Version: d.Version, Breaker: d.Breaker})
	r.Handle("/ready", &hhttp.ReadyHandler{DB: d.DB})
	r.Handle("/live", &hhttp.LiveHandler{})
	r.Handle("/metrics", hhttp.MetricsHandler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	foundation.Register(r, d.Service)

	r.NotFound(static.Handler{Root: d.PublicDir}.ServeHTTP)
	r.MethodNotAllowed(static.Handler{Root: d.PublicDir}.ServeHTTP)

	return applyMiddleware(d, r)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Tracing → Recovery → Logging → Metrics →
// Rate Limit → Input Validation → Timeout.
func applyMiddleware(d routerDeps, handler http.Handler) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.Timeout(d.RequestTimeout)(chain)
	chain = hhttp.InputValidation(d.BodyLimitBytes)(chain)
	if d.RateLimiter != nil {
		chain = d.RateLimiter.Middleware(chain)
	}
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(d.Logger)(chain)
	chain = hhttp.Recover(d.Logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}
