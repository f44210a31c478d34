package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"fundacoes/internal/config"
	"fundacoes/internal/handler/http/middleware"
	"fundacoes/internal/handler/http/respond"
	pgRepo "fundacoes/internal/infra/adapter/persistence/postgres"
	sqliteRepo "fundacoes/internal/infra/adapter/persistence/sqlite"
	"fundacoes/internal/infra/db"
	grpcserver "fundacoes/internal/interface/grpc"
	"fundacoes/internal/observability/logging"
	"fundacoes/internal/observability/tracing"
	"fundacoes/internal/repository"
	"fundacoes/internal/resilience/circuitbreaker"
	fdnUC "fundacoes/internal/usecase/foundation"

	_ "fundacoes/docs" // swagger docs
)

// @title           Fundações API
// @version         1.0
// @description     Registry of foundations identified by tax ID (CNPJ).

// @BasePath  /

func main() {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)

	tp := tracing.NewProvider(cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer provider", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	adapter := newAdapter(logger, cfg, database)
	svc := fdnUC.Service{Repo: newRepository(cfg, adapter)}

	// schema failure is fatal: the process must not accept requests without a table
	if err := svc.InitializeSchema(context.Background()); err != nil {
		logger.Error("failed to initialize schema", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}

	if err := runServer(logger, cfg, database, adapter, svc); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the configured store. Failure to connect is fatal.
func initDatabase(logger *slog.Logger, cfg *config.AppConfig) *sql.DB {
	database, err := db.Open(context.Background(), cfg.DBConfig())
	if err != nil {
		logger.Error("failed to open database",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	return database
}

func newAdapter(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB) *db.Adapter {
	if !cfg.Database.CircuitBreakerEnabled {
		logger.Warn("database circuit breaker is disabled")
		return db.NewAdapter(database)
	}
	return db.NewAdapter(database, db.WithCircuitBreaker(circuitbreaker.DBConfig()))
}

func newRepository(cfg *config.AppConfig, adapter *db.Adapter) repository.FoundationRepository {
	if cfg.Database.Driver == db.DriverPostgres {
		return pgRepo.NewFoundationRepo(adapter)
	}
	return sqliteRepo.NewFoundationRepo(adapter)
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(logger *slog.Logger, cfg *config.AppConfig) (*middleware.RateLimiter, error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return nil, nil
	}

	proxyConfig, err := middleware.ParseTrustedProxies(rl.TrustProxy, rl.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxy configuration: %w", err)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	logger.Info("rate limiting initialized",
		slog.Float64("rps", rl.RPS),
		slog.Int("burst", rl.Burst))
	return middleware.NewRateLimiter(rl.RPS, rl.Burst, "/api/", ipExtractor), nil
}

// startStatsRefresh schedules the foundations_total gauge refresh.
func startStatsRefresh(logger *slog.Logger, schedule string, svc fdnUC.Service) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svc.RefreshStats(ctx); err != nil {
			logger.Warn("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add stats refresh job: %w", err)
	}
	c.Start()
	logger.Info("stats refresh scheduled", slog.String("schedule", schedule))
	return c, nil
}

// runServer starts the HTTP server and the optional gRPC health server, and
// shuts both down gracefully on SIGINT/SIGTERM.
func runServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB, adapter *db.Adapter, svc fdnUC.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter, err := newRateLimiter(logger, cfg)
	if err != nil {
		return err
	}
	if limiter != nil {
		limiter.StartCleanup(ctx, time.Minute, 10*time.Minute)
	}

	deps := routerDeps{
		Logger:         logger,
		DB:             database,
		Version:        cfg.Version,
		Service:        svc,
		PublicDir:      cfg.HTTP.PublicDir,
		BodyLimitBytes: cfg.HTTP.BodyLimitBytes,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RateLimiter:    limiter,
	}
	if cb := adapter.Breaker(); cb != nil {
		deps.Breaker = cb
	}

	if cfg.StatsRefreshSchedule != "" {
		c, err := startStatsRefresh(logger, cfg.StatsRefreshSchedule, svc)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	var (
		grpcLis net.Listener
		grpcSrv *grpc.Server
		health  *grpcserver.HealthServer
	)
	if cfg.GRPCHealthAddr != "" {
		grpcLis, err = net.Listen("tcp", cfg.GRPCHealthAddr)
		if err != nil {
			return fmt.Errorf("listen grpc health: %w", err)
		}
		health = grpcserver.NewHealthServer(adapter)
		grpcSrv = grpcserver.NewServer(health)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcSrv != nil {
		g.Go(func() error {
			health.Run(gctx, 10*time.Second)
			return nil
		})
		g.Go(func() error {
			logger.Info("grpc health server starting", slog.String("addr", cfg.GRPCHealthAddr))
			if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
		}
		if grpcSrv != nil {
			grpcSrv.GracefulStop()
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
