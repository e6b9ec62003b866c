package config

import (
	"fmt"
	"time"

	"github.com/georgemunganga/printa-storefront/internal/core"
	pkgredis "github.com/georgemunganga/printa-storefront/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Catalog sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration, sourced from the environment
// (and a .env file for local runs).
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"APP_PORT" default:"8080"`

	CatalogSource string `envconfig:"CATALOG_SOURCE" default:"file"`
	CatalogFile   string `envconfig:"CATALOG_FILE" default:"data/catalog.json"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`

	Redis    pkgredis.Config
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`

	RatePerSecond float64 `envconfig:"RATE_PER_SECOND" default:"20"`
	RateBurst     int     `envconfig:"RATE_BURST" default:"40"`
}

// Environment returns the parsed deployment environment.
func (c *Config) Environment() core.Environment { return core.ParseEnvironment(c.Env) }

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceFile:
		if c.CatalogFile == "" {
			return fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=%s", SourceFile)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q (want %s or %s)", c.CatalogSource, SourceFile, SourcePostgres)
	}
	if c.RatePerSecond < 0 || c.RateBurst < 0 {
		return fmt.Errorf("RATE_PER_SECOND and RATE_BURST must not be negative")
	}
	return nil
}
