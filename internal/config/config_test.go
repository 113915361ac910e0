package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIEndpoint != "https://api.platform.opentargets.org/api/v4/graphql" {
		t.Errorf("endpoint = %q", cfg.APIEndpoint)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.CacheSize != 256 || cfg.BatchConcurrency != 4 {
		t.Errorf("cache=%d concurrency=%d", cfg.CacheSize, cfg.BatchConcurrency)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("OTP_MCP_API_ENDPOINT", "http://localhost:9999/graphql")
	t.Setenv("OTP_MCP_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("OTP_MCP_CACHE_SIZE", "-1")
	t.Setenv("OTP_MCP_TIMEOUT", "5")
	t.Setenv("OTP_MCP_SESSION_RPS", "2.5")

	cfg := FromEnv()
	if cfg.APIEndpoint != "http://localhost:9999/graphql" {
		t.Errorf("endpoint = %q", cfg.APIEndpoint)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.CacheSize != -1 {
		t.Errorf("cache size = %d, want -1 (disabled)", cfg.CacheSize)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.SessionRPS != 2.5 {
		t.Errorf("session rps = %v", cfg.SessionRPS)
	}
	// Untouched knobs keep their defaults.
	if cfg.ServerName != "Open Targets MCP" {
		t.Errorf("server name = %q", cfg.ServerName)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("OTP_MCP_CACHE_SIZE", "lots")
	t.Setenv("OTP_MCP_TIMEOUT", "-3")

	cfg := FromEnv()
	if cfg.CacheSize != 256 {
		t.Errorf("unparseable cache size should keep default, got %d", cfg.CacheSize)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("non-positive timeout should keep default, got %v", cfg.Timeout)
	}
}
