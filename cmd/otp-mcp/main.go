package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/otp-mcp/internal/config"
	otpmcp "github.com/sanonone/otp-mcp/internal/mcp"
	"github.com/sanonone/otp-mcp/internal/server"
	"github.com/sanonone/otp-mcp/pkg/graphql"
	"github.com/sanonone/otp-mcp/pkg/schema"
)

func main() {
	// Optional .env in the working directory; absence is fine.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	transport := flag.String("transport", "stdio", "MCP transport: stdio or http")
	httpAddr := flag.String("http-addr", cfg.HTTPAddr, "Listen address for the http transport (also serves /metrics and /healthz)")
	apiEndpoint := flag.String("api-endpoint", cfg.APIEndpoint, "Open Targets Platform GraphQL endpoint")
	timeout := flag.Duration("timeout", cfg.Timeout, "Timeout for a single upstream GraphQL request")
	categoriesPath := flag.String("categories", cfg.CategoriesPath, "Path to a category config file overriding the embedded one")
	authToken := flag.String("auth-token", "", "Optional bearer token required on the http transport")
	flag.Parse()

	// All logging goes to stderr: on the stdio transport, stdout belongs
	// to the MCP protocol.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	client, err := graphql.NewClient(graphql.Config{
		Endpoint:  *apiEndpoint,
		Timeout:   *timeout,
		CacheSize: cfg.CacheSize,
	})
	if err != nil {
		slog.Error("creating GraphQL client", "error", err)
		os.Exit(1)
	}

	categories, err := loadCategories(*categoriesPath)
	if err != nil {
		slog.Error("loading categories", "error", err)
		os.Exit(1)
	}

	// One-shot prefetch before serving any request. A failure here is
	// fatal: better to not start than to serve an empty schema.
	prefetchCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	snap, err := schema.Prefetch(prefetchCtx, client, categories)
	cancel()
	if err != nil {
		slog.Error("schema prefetch failed", "error", err)
		os.Exit(1)
	}

	service := otpmcp.NewService(snap, client, cfg.BatchConcurrency)
	mcpServer := otpmcp.NewMCPServer(snap, service, otpmcp.Options{
		ServerName: cfg.ServerName,
		RateLimit: otpmcp.RateLimitConfig{
			GlobalRPS:    cfg.GlobalRPS,
			GlobalBurst:  cfg.GlobalBurst,
			SessionRPS:   cfg.SessionRPS,
			SessionBurst: cfg.SessionBurst,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *transport {
	case "stdio":
		if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}

	case "http":
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return mcpServer
		}, nil)

		srv := server.NewServer(handler, *httpAddr, *authToken)
		go func() {
			if err := srv.Run(); err != nil {
				slog.Error("server stopped", "error", err)
				os.Exit(1)
			}
		}()

		<-ctx.Done()
		srv.Shutdown()

	default:
		slog.Error("unknown transport", "transport", *transport)
		os.Exit(1)
	}
}

func loadCategories(path string) ([]schema.Category, error) {
	if path != "" {
		return schema.LoadCategories(path)
	}
	return schema.DefaultCategories()
}
