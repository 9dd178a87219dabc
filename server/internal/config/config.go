package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/Sideko-Inc/insurance-api-demo/devmode"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Supported document store drivers.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the configuration for the insurance API service.
// Environment variables are parsed from the INSURANCE_API_ prefix.
type Config struct {
	// Build target selects the default store: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived when "auto" or empty
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"3000"`

	// Accepted x-api-key values, comma separated
	APIKeys []string `envconfig:"API_KEYS"`

	// File driver
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// Redis driver
	RedisURL string `envconfig:"REDIS_URL" default:""`

	// SQLite driver; derived from DataDir when empty
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Postgres driver
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`

	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`

	// Notification dispatcher; 0 disables it
	NotifyIntervalSeconds int `envconfig:"NOTIFY_INTERVAL_SECONDS" default:"0"`
	NotifyMaxAttempts     int `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"3"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = DriverFile
	case "cloud-dev":
		defaultDB = DriverSQLite
	case "cloud":
		defaultDB = DriverRedis
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{
		DriverFile:     true,
		DriverRedis:    true,
		DriverSQLite:   true,
		DriverPostgres: true,
		DriverMemory:   true,
	}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.DBDriver {
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("INSURANCE_API_REDIS_URL is required when DB_DRIVER=redis")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("INSURANCE_API_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			c.SQLitePath = filepath.Join(c.DataDir, "insurance.db")
		}
	}

	if len(c.APIKeys) == 0 {
		c.APIKeys = []string{devmode.DemoAPIKey, devmode.TestAPIKey}
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: INSURANCE_API_HTTP_PORT, INSURANCE_API_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("INSURANCE_API", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("data_dir", cfg.DataDir).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("redis_url_present", cfg.RedisURL != "").
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Int("api_keys", len(cfg.APIKeys)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		BuildTarget:               "local",
		DBDriver:                  DriverMemory,
		Environment:               EnvTesting,
		HTTPPort:                  3000,
		DataDir:                   "data",
		BootstrapTimeoutSeconds:   1,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
	_ = cfg.ResolveDefaults()
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// HealthInterval returns the period between health probes.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

// HealthProbeTimeout returns the deadline of a single health probe.
func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutSeconds) * time.Second
}
