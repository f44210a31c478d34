// Package config assembles the process configuration of the API server.
//
// Settings come from three layers, later ones winning: built-in defaults, an
// optional YAML file named by CONFIG_FILE, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"fundacoes/internal/infra/db"
	pkgconfig "fundacoes/pkg/config"
)

// AppConfig holds every runtime setting of the API server.
type AppConfig struct {
	Port    int    `yaml:"port"`
	Version string `yaml:"version"`

	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	HTTP      HTTPConfig      `yaml:"http"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// GRPCHealthAddr is the listen address of the gRPC health service. Empty disables it.
	GRPCHealthAddr string `yaml:"grpc_health_addr"`

	// StatsRefreshSchedule is a cron spec for refreshing the foundations_total gauge.
	StatsRefreshSchedule string `yaml:"stats_refresh_schedule"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
	URL        string `yaml:"url"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`

	CircuitBreakerEnabled bool `yaml:"circuit_breaker_enabled"`
}

type HTTPConfig struct {
	PublicDir       string        `yaml:"public_dir"`
	BodyLimitBytes  int64         `yaml:"body_limit_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RequestTimeout bounds handler execution; zero disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// TrustProxy makes the limiter read X-Forwarded-For from TrustedProxies.
	TrustProxy     bool   `yaml:"trust_proxy"`
	TrustedProxies string `yaml:"trusted_proxies"`
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	pool := db.DefaultConnectionConfig()
	return AppConfig{
		Port:    3000,
		Version: "dev",
		Log:     LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			Driver:                db.DriverSQLite,
			SQLitePath:            "data.sqlite",
			MaxOpenConns:          pool.MaxOpenConns,
			MaxIdleConns:          pool.MaxIdleConns,
			ConnMaxLifetime:       pool.ConnMaxLifetime,
			ConnMaxIdleTime:       pool.ConnMaxIdleTime,
			CircuitBreakerEnabled: true,
		},
		HTTP: HTTPConfig{
			PublicDir:       "public",
			BodyLimitBytes:  1 << 20,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		StatsRefreshSchedule: "@every 1m",
	}
}

// LoadAppConfig builds the configuration from defaults, the CONFIG_FILE overlay
// and the environment, then validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := Default()

	if path := pkgconfig.GetEnvString("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error

	c.Port, err = pkgconfig.GetEnvInt("PORT", c.Port)
	collect(err)
	c.Version = pkgconfig.GetEnvString("VERSION", c.Version)
	c.Log.Level = pkgconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = pkgconfig.GetEnvString("LOG_FORMAT", c.Log.Format)

	d := &c.Database
	d.Driver = strings.ToLower(pkgconfig.GetEnvString("DB_DRIVER", d.Driver))
	d.SQLitePath = pkgconfig.GetEnvString("SQLITE_PATH", d.SQLitePath)
	d.URL = pkgconfig.GetEnvString("DATABASE_URL", d.URL)
	d.MaxOpenConns, err = pkgconfig.GetEnvInt("DB_MAX_OPEN_CONNS", d.MaxOpenConns)
	collect(err)
	d.MaxIdleConns, err = pkgconfig.GetEnvInt("DB_MAX_IDLE_CONNS", d.MaxIdleConns)
	collect(err)
	d.ConnMaxLifetime, err = pkgconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", d.ConnMaxLifetime)
	collect(err)
	d.ConnMaxIdleTime, err = pkgconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", d.ConnMaxIdleTime)
	collect(err)
	d.CircuitBreakerEnabled, err = pkgconfig.GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", d.CircuitBreakerEnabled)
	collect(err)

	h := &c.HTTP
	h.PublicDir = pkgconfig.GetEnvString("PUBLIC_DIR", h.PublicDir)
	h.BodyLimitBytes, err = pkgconfig.GetEnvInt64("BODY_LIMIT_BYTES", h.BodyLimitBytes)
	collect(err)
	h.ShutdownTimeout, err = pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", h.ShutdownTimeout)
	collect(err)
	h.RequestTimeout, err = pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", h.RequestTimeout)
	collect(err)

	r := &c.RateLimit
	r.Enabled, err = pkgconfig.GetEnvBool("RATE_LIMIT_ENABLED", r.Enabled)
	collect(err)
	r.RPS, err = pkgconfig.GetEnvFloat("RATE_LIMIT_RPS", r.RPS)
	collect(err)
	r.Burst, err = pkgconfig.GetEnvInt("RATE_LIMIT_BURST", r.Burst)
	collect(err)
	r.TrustProxy, err = pkgconfig.GetEnvBool("RATE_LIMIT_TRUST_PROXY", r.TrustProxy)
	collect(err)
	r.TrustedProxies = pkgconfig.GetEnvString("RATE_LIMIT_TRUSTED_PROXIES", r.TrustedProxies)

	c.GRPCHealthAddr = pkgconfig.GetEnvString("GRPC_HEALTH_ADDR", c.GRPCHealthAddr)
	c.StatsRefreshSchedule = pkgconfig.GetEnvString("STATS_REFRESH_SCHEDULE", c.StatsRefreshSchedule)

	return errors.Join(errs...)
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Database.Driver {
	case db.DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH cannot be empty")
		}
	case db.DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must be non-negative")
	}
	if c.Database.MaxOpenConns > 0 && c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS (%d) cannot exceed DB_MAX_OPEN_CONNS (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.Database.ConnMaxIdleTime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_IDLE_TIME: %w", err)
	}

	if c.HTTP.BodyLimitBytes <= 0 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.HTTP.RequestTimeout); err != nil {
		return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("RATE_LIMIT_BURST must be positive")
		}
		if c.RateLimit.TrustProxy && strings.TrimSpace(c.RateLimit.TrustedProxies) == "" {
			return fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES is required when RATE_LIMIT_TRUST_PROXY=true")
		}
	}

	if c.StatsRefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.StatsRefreshSchedule); err != nil {
			return fmt.Errorf("STATS_REFRESH_SCHEDULE: %w", err)
		}
	}

	return nil
}

// DBConfig returns the storage connection settings.
func (c *AppConfig) DBConfig() db.Config {
	dsn := c.Database.SQLitePath
	if c.Database.Driver == db.DriverPostgres {
		dsn = c.Database.URL
	}
	return db.Config{
		Driver: c.Database.Driver,
		DSN:    dsn,
		Pool: db.ConnectionConfig{
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
			ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		},
	}
}

// Addr is the HTTP listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
