package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. Tool Calls Total (Counter)
	// Counts MCP tool invocations, labeled by tool name and outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otpmcp_tool_calls_total",
			Help: "Total number of MCP tool calls processed",
		},
		[]string{"tool", "status"},
	)

	// 2. Tool Call Duration (Histogram)
	// Schema reads are served from memory and sit in the low buckets;
	// anything above a second is a remote GraphQL round trip.
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otpmcp_tool_call_duration_seconds",
			Help:    "Duration of MCP tool calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"tool"},
	)

	// 3. Upstream GraphQL Requests (Counter)
	// Tracks calls against the Open Targets API, including cache hits
	// that never left the process.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otpmcp_upstream_requests_total",
			Help: "Total number of GraphQL requests against the platform API",
		},
		[]string{"status"},
	)

	// 4. Schema Prefetch Duration (Histogram)
	// One observation per process under normal operation.
	SchemaPrefetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otpmcp_schema_prefetch_duration_seconds",
			Help:    "Duration of the startup schema prefetch in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// 5. Schema Types (Gauge)
	// Number of custom types in the cached type graph.
	SchemaTypes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "otpmcp_schema_types",
			Help: "Number of custom types in the cached schema snapshot",
		},
	)

	// 6. Rate Limited Requests (Counter)
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otpmcp_rate_limited_total",
			Help: "Total number of MCP requests rejected by the rate limiter",
		},
		[]string{"scope"}, // "global" or "session"
	)
)
