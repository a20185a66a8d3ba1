package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds rate limiting settings
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig is the limit for one method on a path. A Path ending in "/" is a prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, Limit when 0
}

func (e EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

func (e EndpointConfig) rate() float64 {
	window := e.Window
	if window <= 0 {
		window = time.Minute
	}
	return float64(e.Limit) / window.Seconds()
}

// DefaultConfig is used when no configuration is given
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over DefaultConfig
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envOr("RATE_LIMIT_ENABLED", cfg.Enabled, strconv.ParseBool)
	if !cfg.Enabled {
		return &Config{}
	}

	cfg.DefaultLimit = envOr("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit, strconv.Atoi)
	cfg.DefaultWindow = envOr("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow, time.ParseDuration)
	cfg.CleanupInterval = envOr("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval, time.ParseDuration)
	cfg.Whitelist = clientSet(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = clientSet(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultEndpointConfigs meters the endpoints that cost money or hold state more tightly than reads
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Upstream calls billed per request
		{Path: "/meetings/analyze", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/notifications/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},

		// Writes
		{Path: "/counters/quick-test", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Session reads include PDF rendering
		{Path: "/sessions/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 60},
	}
}

// envOr parses an environment variable, keeping def when it is unset or malformed
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// clientSet parses a comma-separated client list
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
