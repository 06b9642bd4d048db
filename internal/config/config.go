// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Adapter names accepted in STORAGE_ADAPTER.
const (
	AdapterLocal  = "local"
	AdapterRemote = "remote"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Storage adapter selection: "local" (Valkey-backed) or "remote"
	// (static JSON document + export file).
	StorageAdapter string

	// Valkey (Redis-compatible store) — local adapter state, sessions,
	// and the public page cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Remote adapter settings
	ContentURL string // well-known URL of the static content document
	ExportDir  string // directory the export snapshot is written to

	// SimulateLatency adds fixed per-operation delays to the local
	// adapter, emulating network-backed storage during development.
	SimulateLatency bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first when present. Returns an error if critical values are
// missing for the selected mode.
func Load() (*Config, error) {
	// Missing .env is fine — environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StorageAdapter: envOrDefault("STORAGE_ADAPTER", AdapterLocal),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		ContentURL: os.Getenv("CONTENT_URL"),
		ExportDir:  envOrDefault("EXPORT_DIR", "export"),

		SimulateLatency: envBool("SIMULATE_LATENCY"),
	}

	switch cfg.StorageAdapter {
	case AdapterLocal:
		// Valkey defaults are fine for development.
	case AdapterRemote:
		if cfg.ContentURL == "" {
			return nil, fmt.Errorf("CONTENT_URL must be set when STORAGE_ADAPTER=remote")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_ADAPTER %q (want %q or %q)",
			cfg.StorageAdapter, AdapterLocal, AdapterRemote)
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// ExportPath returns the full path of the export snapshot file.
func (c *Config) ExportPath() string {
	return filepath.Join(c.ExportDir, "content.json")
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool reads a boolean environment variable; "1" and "true" enable it.
func envBool(key string) bool {
	v := os.Getenv(key)
	return v == "1" || v == "true"
}
