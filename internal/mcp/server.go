package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/otp-mcp/pkg/metrics"
	"github.com/sanonone/otp-mcp/pkg/schema"
)

// Version of the server implementation announced to MCP clients.
const Version = "0.3.1"

// Options for NewMCPServer.
type Options struct {
	ServerName string
	RateLimit  RateLimitConfig
}

// NewMCPServer wires the schema snapshot and GraphQL client into an MCP
// server: typed tools for the LLM surface, one resource per category
// subschema, plus rate limiting and metrics middleware.
func NewMCPServer(snap *schema.Snapshot, service *Service, opts Options) *mcp.Server {
	name := opts.ServerName
	if name == "" {
		name = "Open Targets MCP"
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: Version,
	}, nil)

	s.AddReceivingMiddleware(
		NewRateLimitMiddleware(opts.RateLimit),
		metricsMiddleware(),
	)

	// Register Tools using the generic AddTool which inspects the arg structs.

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_graphql_schema",
		Description: "Retrieve the full Open Targets Platform GraphQL schema in SDL format. Large; prefer category subschemas when possible.",
	}, service.GetSchema)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_schema_categories",
		Description: "List the topical schema categories available via get_category_subschema." + categoriesBlurb(snap),
	}, service.ListCategories)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_category_subschema",
		Description: "Get the SDL subschema for one named category: its seed types plus everything they reference within the configured depth.",
	}, service.GetCategorySubschema)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_type_dependencies",
		Description: "For a list of GraphQL type names, return SDL for each type's specific dependencies and one 'shared' block for types reachable from several of them.",
	}, service.GetTypeDependencies)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "query_open_targets",
		Description: "Execute a GraphQL query against the Open Targets Platform API, optionally post-processing the result with a jq filter.",
	}, service.Query)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "batch_query_open_targets",
		Description: "Execute one GraphQL query once per variable set, in parallel, returning per-item results and a success/failure summary.",
	}, service.BatchQuery)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_entities",
		Description: "Search the platform for entities (targets, diseases, drugs, variants, studies) by free text and return the top matching IDs with their entity kinds.",
	}, service.SearchEntities)

	registerCategoryResources(s, snap)

	return s
}

// categoriesBlurb appends the configured category list to the tool
// description, so a client sees the valid names without a round trip.
func categoriesBlurb(snap *schema.Snapshot) string {
	subschemas, err := snap.Subschemas()
	if err != nil {
		return ""
	}
	out := " Available categories:"
	for _, name := range snap.CategoryNames() {
		out += fmt.Sprintf("\n - %s: %s", name, subschemas[name].Description)
	}
	return out
}

// registerCategoryResources exposes each category subschema additionally as
// a readable MCP resource under otp://schema/<name>.
func registerCategoryResources(s *mcp.Server, snap *schema.Snapshot) {
	subschemas, err := snap.Subschemas()
	if err != nil {
		return
	}

	for _, name := range snap.CategoryNames() {
		sub := subschemas[name]
		uri := "otp://schema/" + name

		s.AddResource(&mcp.Resource{
			URI:         uri,
			Name:        name,
			Description: sub.Description,
			MIMEType:    "text/plain",
		}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/plain",
					Text:     sub.SDL,
				}},
			}, nil
		})
	}
}

// metricsMiddleware records a counter and duration histogram per tool call.
// Non-tool methods (initialize, resource reads) are left to the transport.
func metricsMiddleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != "tools/call" {
				return next(ctx, method, req)
			}

			tool := "unknown"
			if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
				tool = call.Params.Name
			}

			start := time.Now()
			res, err := next(ctx, method, req)

			status := "ok"
			if err != nil {
				status = "error"
			}
			metrics.ToolCallsTotal.WithLabelValues(tool, status).Inc()
			metrics.ToolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

			return res, err
		}
	}
}
