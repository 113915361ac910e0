// Package config collects the process configuration: defaults, then
// OTP_MCP_* environment variables, then command-line flags (applied by
// main). A .env file in the working directory is honored via godotenv.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime knob of the server.
type Config struct {
	// APIEndpoint is the Open Targets Platform GraphQL endpoint.
	APIEndpoint string

	// ServerName is the MCP implementation name announced to clients.
	ServerName string

	// HTTPAddr is the listen address for the streamable HTTP transport
	// (also serves /metrics and /healthz).
	HTTPAddr string

	// Timeout bounds a single upstream GraphQL request.
	Timeout time.Duration

	// CacheSize is the LRU capacity for upstream query responses.
	CacheSize int

	// CategoriesPath optionally overrides the embedded category file.
	CategoriesPath string

	// BatchConcurrency caps parallel upstream requests in batch tools.
	BatchConcurrency int

	// Rate limiting: the global bucket covers requests arriving before a
	// session is established; each session then gets its own bucket.
	GlobalRPS    float64
	GlobalBurst  int
	SessionRPS   float64
	SessionBurst int
}

// Default returns the stock configuration for the public platform API.
func Default() Config {
	return Config{
		APIEndpoint:      "https://api.platform.opentargets.org/api/v4/graphql",
		ServerName:       "Open Targets MCP",
		HTTPAddr:         "127.0.0.1:8000",
		Timeout:          30 * time.Second,
		CacheSize:        256,
		BatchConcurrency: 4,
		GlobalRPS:        5,
		GlobalBurst:      10,
		SessionRPS:       10,
		SessionBurst:     20,
	}
}

// FromEnv starts from Default and applies any OTP_MCP_* overrides.
func FromEnv() Config {
	cfg := Default()

	setString(&cfg.APIEndpoint, "OTP_MCP_API_ENDPOINT")
	setString(&cfg.ServerName, "OTP_MCP_SERVER_NAME")
	setString(&cfg.HTTPAddr, "OTP_MCP_HTTP_ADDR")
	setString(&cfg.CategoriesPath, "OTP_MCP_CATEGORIES")
	setInt(&cfg.CacheSize, "OTP_MCP_CACHE_SIZE")
	setInt(&cfg.BatchConcurrency, "OTP_MCP_BATCH_CONCURRENCY")
	setFloat(&cfg.GlobalRPS, "OTP_MCP_GLOBAL_RPS")
	setInt(&cfg.GlobalBurst, "OTP_MCP_GLOBAL_BURST")
	setFloat(&cfg.SessionRPS, "OTP_MCP_SESSION_RPS")
	setInt(&cfg.SessionBurst, "OTP_MCP_SESSION_BURST")

	if v := os.Getenv("OTP_MCP_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
