// Package config provides configuration loading and validation for the teamhealth service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Counter backends
const (
	CounterPostgres = "postgres"
	CounterRedis    = "redis"
	CounterMemory   = "memory"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port       int    `json:"port,omitempty"`        // HTTP listen port
	SessionTTL string `json:"session_ttl,omitempty"` // Idle lifetime of quiz sessions, e.g. "2h"
	CatalogDir string `json:"catalog_dir,omitempty"` // Directory of extra YAML quiz definitions

	// Storage
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	RedisURL       string `json:"redis_url,omitempty"`       // Redis connection URL
	CounterBackend string `json:"counter_backend,omitempty"` // postgres, redis or memory

	// External services
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key for meeting analysis
	ResendAPIKey string `json:"resend_api_key,omitempty"` // Resend API key for email
	AdminEmail   string `json:"admin_email,omitempty"`    // Recipient of assessment and contact mail
	FromAddress  string `json:"from_address,omitempty"`   // Sender address

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:           8080,
		SessionTTL:     "2h",
		CounterBackend: CounterMemory,
		FromAddress:    "Team Health <onboarding@resend.dev>",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables.
// A malformed PORT is reported rather than ignored.
func FromEnv() (Config, error) {
	cfg := Config{
		SessionTTL:     os.Getenv("SESSION_TTL"),
		CatalogDir:     os.Getenv("CATALOG_DIR"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CounterBackend: os.Getenv("COUNTER_BACKEND"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		FromAddress:    os.Getenv("FROM_ADDRESS"),
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.SessionTTL != "" {
		ttl, err := time.ParseDuration(c.SessionTTL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'session_ttl': %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config error: 'session_ttl' must be positive")
		}
	}

	switch c.CounterBackend {
	case "", CounterMemory:
	case CounterPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: counter backend 'postgres' requires 'database_url'")
		}
	case CounterRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: counter backend 'redis' requires 'redis_url'")
		}
	default:
		return fmt.Errorf("config error: unknown counter backend %q", c.CounterBackend)
	}

	if c.CatalogDir != "" {
		info, err := os.Stat(c.CatalogDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("config error: catalog directory not found: %s", c.CatalogDir)
		}
	}

	return nil
}

// SessionTTLDuration parses SessionTTL, returning fallback when unset or invalid.
func (c *Config) SessionTTLDuration(fallback time.Duration) time.Duration {
	if c.SessionTTL == "" {
		return fallback
	}
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil || ttl <= 0 {
		return fallback
	}
	return ttl
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Config file values are merged over environment values this way, then over Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.CatalogDir == "" {
		result.CatalogDir = defaults.CatalogDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.CounterBackend == "" {
		result.CounterBackend = defaults.CounterBackend
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.ResendAPIKey == "" {
		result.ResendAPIKey = defaults.ResendAPIKey
	}
	if result.AdminEmail == "" {
		result.AdminEmail = defaults.AdminEmail
	}
	if result.FromAddress == "" {
		result.FromAddress = defaults.FromAddress
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so either side enables it
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Load resolves the effective configuration: file (if any) over environment over defaults.
func Load(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	merged := env.MergeWithDefaults(Defaults())
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = file.MergeWithDefaults(merged)
	}

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
