package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"counter_backend": "redis",
		"redis_url": "redis://localhost:6379/0",
		"admin_email": "coach@example.com",
		"session_ttl": "30m",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, CounterRedis, cfg.CounterBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "coach@example.com", cfg.AdminEmail)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTLDuration(time.Hour))
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"defaults", Defaults(), ""},
		{"port out of range", Config{Port: 70000}, "'port'"},
		{"bad ttl", Config{SessionTTL: "soon"}, "invalid 'session_ttl'"},
		{"negative ttl", Config{SessionTTL: "-1h"}, "must be positive"},
		{"postgres without url", Config{CounterBackend: CounterPostgres}, "requires 'database_url'"},
		{"postgres with url", Config{CounterBackend: CounterPostgres, DatabaseURL: "postgres://localhost/th"}, ""},
		{"redis without url", Config{CounterBackend: CounterRedis}, "requires 'redis_url'"},
		{"unknown backend", Config{CounterBackend: "sqlite"}, "unknown counter backend"},
		{"catalog dir exists", Config{CatalogDir: dir}, ""},
		{"catalog dir missing", Config{CatalogDir: filepath.Join(dir, "nope")}, "catalog directory not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSessionTTLDuration_Fallback(t *testing.T) {
	assert.Equal(t, time.Hour, (&Config{}).SessionTTLDuration(time.Hour))
	assert.Equal(t, time.Hour, (&Config{SessionTTL: "bogus"}).SessionTTLDuration(time.Hour))
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		AdminEmail: "coach@example.com",
		Port:       9000,
	}
	defaults := Config{
		AdminEmail:     "other@example.com",
		Port:           8080,
		CounterBackend: CounterMemory,
		FromAddress:    "noreply@example.com",
		Verbose:        true,
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "coach@example.com", result.AdminEmail)
	assert.Equal(t, 9000, result.Port)
	assert.Equal(t, CounterMemory, result.CounterBackend)
	assert.Equal(t, "noreply@example.com", result.FromAddress)
	assert.True(t, result.Verbose)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("ADMIN_EMAIL", "env@example.com")
	t.Setenv("COUNTER_BACKEND", "")

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"admin_email": "file@example.com"}`), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "file@example.com", cfg.AdminEmail)
	assert.Equal(t, CounterMemory, cfg.CounterBackend)
	assert.Equal(t, "2h", cfg.SessionTTL)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}
