// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, metadata client) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Folio API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the metadata cache.
	RedisURL string `env:"REDIS_URL"`

	// Identity provider settings. Tokens are issued elsewhere and only verified here.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	AuthIssuer    string `env:"AUTH_ISSUER" envDefault:"folio.app"`

	// External book metadata provider
	MetadataBaseURL  string        `env:"METADATA_BASE_URL"  envDefault:"https://openlibrary.org"`
	MetadataTimeout  time.Duration `env:"METADATA_TIMEOUT"   envDefault:"4s"`
	MetadataAttempts int           `env:"METADATA_ATTEMPTS"  envDefault:"3"`
	MetadataCacheTTL time.Duration `env:"METADATA_CACHE_TTL" envDefault:"24h"`

	// Cross-Origin Resource Sharing (comma separated list of origin suffixes)
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MetadataAttempts < 1 {
		return nil, fmt.Errorf("config: METADATA_ATTEMPTS must be at least 1, got %d", cfg.MetadataAttempts)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginAllowed reports whether origin ends with one of the configured suffixes.
func (c *Config) OriginAllowed(origin string) bool {
	for _, suffix := range strings.Split(c.AllowedOrigins, ",") {
		suffix = strings.TrimSpace(suffix)
		if suffix != "" && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}
