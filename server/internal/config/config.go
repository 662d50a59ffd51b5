package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the roster service.
// Environment variables are parsed from the ROSTER_ prefix.
type Config struct {
	// Build target selects the default storage: local (sqlite) or cloud (postgres)
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	DBDriver    string      `envconfig:"DB_DRIVER" default:"auto"`
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	HTTPPort        int           `envconfig:"HTTP_PORT" default:"5000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HealthInterval  time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`

	// Storage
	DataDir     string `envconfig:"DATA_DIR" default:"."`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Auth
	JWTSecret     string        `envconfig:"JWT_SECRET" default:""`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	AuthRequired  bool          `envconfig:"AUTH_REQUIRED" default:"false"`
	AdminUsername string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD" default:""`

	// Resume download; served from S3 when a bucket is set
	ResumeFilename   string `envconfig:"RESUME_FILENAME" default:"Harvinder_Singh_Resume.txt"`
	ResumeS3Bucket   string `envconfig:"RESUME_S3_BUCKET" default:""`
	ResumeS3Key      string `envconfig:"RESUME_S3_KEY" default:"resume.txt"`
	ResumeS3Region   string `envconfig:"RESUME_S3_REGION" default:""`
	ResumeS3Endpoint string `envconfig:"RESUME_S3_ENDPOINT" default:""`
}

// ResolveDefaults validates BuildTarget and derives DBDriver and SQLitePath.
func (c *Config) ResolveDefaults() error {
	var defaultDB string
	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = filepath.Join(c.DataDir, "roster.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.AuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("AUTH_REQUIRED=true requires JWT_SECRET")
	}
	if c.Environment == EnvProduction && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-only-secret"
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: ROSTER_HTTP_PORT, ROSTER_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ROSTER", &cfg); err != nil {
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
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Bool("auth_required", cfg.AuthRequired).
		Str("resume_bucket", cfg.ResumeS3Bucket).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:     "local",
		DBDriver:        "sqlite",
		Environment:     EnvTesting,
		HTTPPort:        0,
		ShutdownTimeout: time.Second,
		HealthInterval:  time.Hour,
		SQLitePath:      ":memory:",
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		ResumeFilename:  "Harvinder_Singh_Resume.txt",
	}
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
