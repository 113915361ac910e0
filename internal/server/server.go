// Package server hosts the HTTP side of the process: the streamable MCP
// endpoint plus the operational surface (/healthz, /metrics).
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wraps the HTTP listener used by the streamable transport.
// The stdio transport bypasses this entirely.
type Server struct {
	httpServer *http.Server
	authToken  string
}

// NewServer mounts the MCP handler under /mcp behind the middleware chain,
// with /healthz and /metrics outside the chain so probes and scrapes are
// never rate limited or logged as traffic.
func NewServer(mcpHandler http.Handler, httpAddr, authToken string) *Server {
	s := &Server{authToken: authToken}

	var handler http.Handler = mcpHandler

	// Chain middlewares: Recovery -> Logging -> Auth -> MCP.
	// Order matters! Recovery must be outer-most to catch everything.
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}

	return s
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown() {
	slog.Info("starting graceful shutdown of HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

// handleHealthz reports liveness. The process only reaches this point after
// the schema prefetch succeeded, so alive means ready.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
