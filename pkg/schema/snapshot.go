package schema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/sanonone/otp-mcp/pkg/metrics"
)

// SchemaFetcher fetches the remote GraphQL schema. Implemented by
// pkg/graphql.Client; a stub suffices in tests.
type SchemaFetcher interface {
	FetchSchema(ctx context.Context) (*ast.Schema, error)
}

// Snapshot holds everything derived from one fetch of the remote schema:
// the schema object, its printed SDL, the type graph and the resolved
// category subschemas. It is built once by Prefetch before the server
// accepts traffic and is immutable afterwards, so any number of tool
// handlers can read it concurrently without locking.
//
// A future refresh operation must build a whole new Snapshot and swap the
// pointer, never patch one in place.
type Snapshot struct {
	schema     *ast.Schema
	sdl        string
	graph      *TypeGraph
	subschemas map[string]*CategorySubschema
}

// Prefetch performs the one-shot startup step: fetch the schema, build the
// graph and resolve every category. A fetch failure is returned as-is and
// is fatal to startup by design; there is no retry here.
func Prefetch(ctx context.Context, fetcher SchemaFetcher, categories []Category) (*Snapshot, error) {
	start := time.Now()

	schemaObj, err := fetcher.FetchSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching schema: %w", err)
	}

	var buf strings.Builder
	formatter.NewFormatter(&buf).FormatSchema(schemaObj)

	graph := BuildTypeGraph(schemaObj)

	snap := &Snapshot{
		schema:     schemaObj,
		sdl:        buf.String(),
		graph:      graph,
		subschemas: BuildSubschemas(categories, graph, schemaObj),
	}

	metrics.SchemaPrefetchDuration.Observe(time.Since(start).Seconds())
	metrics.SchemaTypes.Set(float64(graph.Len()))

	slog.Info("schema snapshot ready",
		"types", graph.Len(),
		"categories", len(snap.subschemas),
		"duration", time.Since(start).String(),
	)

	return snap, nil
}

// ready guards every read. A nil Snapshot is the uninitialized state.
func (s *Snapshot) ready() error {
	if s == nil || s.schema == nil {
		return ErrNotInitialized
	}
	return nil
}

// SDL returns the full printed schema.
func (s *Snapshot) SDL() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.sdl, nil
}

// Schema returns the parsed schema object.
func (s *Snapshot) Schema() (*ast.Schema, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.schema, nil
}

// Graph returns the type reference graph.
func (s *Snapshot) Graph() (*TypeGraph, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.graph, nil
}

// Subschemas returns all resolved category subschemas keyed by name.
func (s *Snapshot) Subschemas() (map[string]*CategorySubschema, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.subschemas, nil
}

// Subschema looks up a single category. Unknown names fail with the full
// list of valid categories embedded in the error.
func (s *Snapshot) Subschema(name string) (*CategorySubschema, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sub, ok := s.subschemas[name]
	if !ok {
		return nil, unknownCategoryError(name, s.CategoryNames())
	}
	return sub, nil
}

// CategoryNames returns the configured category names in sorted order.
// Safe on an uninitialized snapshot (returns nil) since it only feeds
// error messages and docs.
func (s *Snapshot) CategoryNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.subschemas))
	for name := range s.subschemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
