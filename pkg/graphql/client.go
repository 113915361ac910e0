// Package graphql talks to the Open Targets Platform GraphQL API.
//
// It owns the transport concerns the schema engine deliberately excludes:
// executing queries, fetching the schema via introspection, and applying
// jq-style result filters.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sanonone/otp-mcp/pkg/metrics"
)

// Config holds the connection settings for the platform API.
type Config struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration

	// CacheSize is the number of query responses kept in the LRU cache.
	// Zero picks a default; negative disables caching.
	CacheSize int
}

const defaultCacheSize = 256

// Client executes GraphQL queries over HTTP. The platform API is read-only,
// so responses are cached in a bounded LRU keyed by query text plus
// variables; repeated tool calls with identical inputs never leave the
// process twice.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cache      *lru.Cache[string, []byte]
}

// NewClient initializes a new API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("graphql: endpoint is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	if cfg.CacheSize >= 0 {
		size := cfg.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		cache, err := lru.New[string, []byte](size)
		if err != nil {
			return nil, fmt.Errorf("graphql: creating response cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlErr struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlErr        `json:"errors"`
}

// Execute runs a query and returns the decoded "data" object. GraphQL-level
// errors are surfaced as a single Go error with every message joined.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	raw, err := c.execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	// Decode fresh on every call, including cache hits, so callers never
	// share a mutable map.
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("graphql: decoding response data: %w", err)
	}
	return data, nil
}

// execute is the raw round trip, returning the undecoded data payload.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	key, err := cacheKey(query, variables)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if raw, ok := c.cache.Get(key); ok {
			metrics.UpstreamRequestsTotal.WithLabelValues("cached").Inc()
			return raw, nil
		}
	}

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("graphql: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphql: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("graphql request",
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("graphql: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("graphql: decoding response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		msgs := make([]string, len(decoded.Errors))
		for i, e := range decoded.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("graphql: query returned errors: %s", strings.Join(msgs, "; "))
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("ok").Inc()

	if c.cache != nil {
		c.cache.Add(key, []byte(decoded.Data))
	}

	return decoded.Data, nil
}

// cacheKey builds a stable key from the query text and its variables.
// json.Marshal sorts map keys, so equal variable sets always collide.
func cacheKey(query string, variables map[string]any) (string, error) {
	if len(variables) == 0 {
		return query, nil
	}
	encoded, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("graphql: encoding variables: %w", err)
	}
	return query + "\x00" + string(encoded), nil
}
