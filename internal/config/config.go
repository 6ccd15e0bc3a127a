// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Compare  CompareConfig
	Database DatabaseConfig
	S3       S3Config
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 60s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 5m)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"5m"`
}

// CompareConfig holds file loading and comparison settings.
type CompareConfig struct {
	// Delimiter is the field separator: auto, "," or ";" (default: auto)
	Delimiter string `env:"COMPARE_DELIMITER" default:"auto"`

	// MaxFileSize is the maximum size of one input in bytes (default: 100MB)
	MaxFileSize int64 `env:"COMPARE_MAX_FILE_SIZE" default:"104857600"`

	// MaxConcurrent is the maximum number of comparisons loading at once (default: 2)
	MaxConcurrent int `env:"COMPARE_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long a comparison waits for a free slot (default: 30s)
	MaxWaitTime time.Duration `env:"COMPARE_MAX_WAIT_TIME" default:"30s"`

	// LoadTimeout bounds loading both inputs of one comparison (default: 2m)
	LoadTimeout time.Duration `env:"COMPARE_LOAD_TIMEOUT" default:"2m"`

	// PageSize is the number of display rows rendered per grid page (default: 200)
	PageSize int `env:"COMPARE_PAGE_SIZE" default:"200"`
}

// DatabaseConfig holds the optional database used for "pg:" table sources.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database was configured.
func (c *DatabaseConfig) Enabled() bool { return c.URL != "" }

// S3Config holds the optional object store used for "s3://" sources.
type S3Config struct {
	// Enabled turns on s3:// sources (default: false)
	Enabled bool `env:"S3_ENABLED" default:"false"`

	// Region is the bucket region (default: us-east-1)
	Region string `env:"S3_REGION" envAlt:"AWS_REGION" default:"us-east-1"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores (optional)
	Endpoint string `env:"S3_ENDPOINT"`

	// AccessKey and SecretKey are static credentials (optional).
	// When unset the default AWS credential chain is used.
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`

	// ForcePathStyle addresses buckets by path, as MinIO and most
	// S3-compatible stores require (default: false)
	ForcePathStyle bool `env:"S3_FORCE_PATH_STYLE" default:"false"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 600)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"600"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey enables X-API-Key checks on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
