package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/sanonone/otp-mcp/pkg/metrics"
)

// RateLimitConfig carries the two-tier limits: a global bucket for requests
// arriving before a session exists, and per-session buckets afterwards.
// Without client identification, session-only limiting leaves the global
// surface (initialization and friends) open to abuse; the separate global
// bucket closes that gap.
type RateLimitConfig struct {
	GlobalRPS    float64
	GlobalBurst  int
	SessionRPS   float64
	SessionBurst int
}

type rateLimiter struct {
	cfg    RateLimitConfig
	global *rate.Limiter

	mu       sync.Mutex
	sessions map[string]*rate.Limiter
}

func (rl *rateLimiter) sessionLimiter(id string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	lim, ok := rl.sessions[id]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(rl.cfg.SessionRPS), rl.cfg.SessionBurst)
		rl.sessions[id] = lim
	}
	return lim
}

// allow picks the right limiter for the request and consumes one token,
// returning the scope name for metrics.
func (rl *rateLimiter) allow(sessionID string) (bool, string) {
	if sessionID == "" {
		return rl.global.Allow(), "global"
	}
	return rl.sessionLimiter(sessionID).Allow(), "session"
}

// NewRateLimitMiddleware builds an adaptive rate-limiting middleware for the
// MCP server's receiving side.
func NewRateLimitMiddleware(cfg RateLimitConfig) mcp.Middleware {
	rl := &rateLimiter{
		cfg:      cfg,
		global:   rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.GlobalBurst),
		sessions: make(map[string]*rate.Limiter),
	}

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			sessionID := ""
			if session := req.GetSession(); session != nil {
				sessionID = session.ID()
			}

			allowed, scope := rl.allow(sessionID)
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return nil, fmt.Errorf("rate limit exceeded")
			}

			return next(ctx, method, req)
		}
	}
}
