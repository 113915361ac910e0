package mcp

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/otp-mcp/pkg/graphql"
	"github.com/sanonone/otp-mcp/pkg/result"
	"github.com/sanonone/otp-mcp/pkg/schema"
)

// QueryExecutor is the slice of the GraphQL client the tool handlers need.
// Kept as an interface so service tests run against a stub, no network.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// Entity search against the platform API: fixed query, fixed projection.
const (
	searchVariableField = "queryString"
	searchJQFilter      = ".data.search.hits[:3] | map({id, entity})"
	searchEntityQuery   = `
query searchEntity($queryString: String!) {
  search(queryString: $queryString) {
    total
    hits {
      id
      entity
      description
    }
  }
}
`
)

// Service implements the tool handlers over the prefetched schema snapshot
// and the GraphQL client.
type Service struct {
	snapshot *schema.Snapshot
	client   QueryExecutor

	// batchConcurrency caps parallel upstream requests during fan-out.
	batchConcurrency int
}

func NewService(snap *schema.Snapshot, client QueryExecutor, batchConcurrency int) *Service {
	if batchConcurrency <= 0 {
		batchConcurrency = 4
	}
	return &Service{
		snapshot:         snap,
		client:           client,
		batchConcurrency: batchConcurrency,
	}
}

// --- Schema Tool Handlers ---

func (s *Service) GetSchema(ctx context.Context, req *mcp.CallToolRequest, args GetSchemaArgs) (*mcp.CallToolResult, GetSchemaResult, error) {
	sdl, err := s.snapshot.SDL()
	if err != nil {
		return nil, GetSchemaResult{}, err
	}
	return nil, GetSchemaResult{SDL: sdl}, nil
}

func (s *Service) ListCategories(ctx context.Context, req *mcp.CallToolRequest, args ListCategoriesArgs) (*mcp.CallToolResult, ListCategoriesResult, error) {
	subschemas, err := s.snapshot.Subschemas()
	if err != nil {
		return nil, ListCategoriesResult{}, err
	}

	res := ListCategoriesResult{Categories: make([]CategoryInfo, 0, len(subschemas))}
	for _, name := range s.snapshot.CategoryNames() {
		sub := subschemas[name]
		res.Categories = append(res.Categories, CategoryInfo{
			Name:        sub.Name,
			Description: sub.Description,
			TypeCount:   len(sub.Types),
		})
	}
	return nil, res, nil
}

func (s *Service) GetCategorySubschema(ctx context.Context, req *mcp.CallToolRequest, args GetCategorySubschemaArgs) (*mcp.CallToolResult, GetCategorySubschemaResult, error) {
	sub, err := s.snapshot.Subschema(args.Category)
	if err != nil {
		return nil, GetCategorySubschemaResult{}, err
	}

	return nil, GetCategorySubschemaResult{
		Name:        sub.Name,
		Description: sub.Description,
		Types:       slices.Sorted(maps.Keys(sub.Types)),
		SDL:         sub.SDL,
	}, nil
}

func (s *Service) GetTypeDependencies(ctx context.Context, req *mcp.CallToolRequest, args GetTypeDependenciesArgs) (*mcp.CallToolResult, GetTypeDependenciesResult, error) {
	if len(args.TypeNames) == 0 {
		return nil, GetTypeDependenciesResult{}, fmt.Errorf("type_names must not be empty")
	}

	deps, err := s.snapshot.TypeDependencies(args.TypeNames)
	if err != nil {
		return nil, GetTypeDependenciesResult{}, err
	}

	return nil, GetTypeDependenciesResult{
		PerType: deps.PerType,
		Shared:  deps.Shared,
	}, nil
}

// --- Query Tool Handlers ---

func (s *Service) Query(ctx context.Context, req *mcp.CallToolRequest, args QueryArgs) (*mcp.CallToolResult, result.QueryResult, error) {
	// Compile the filter before any network work.
	var filter *graphql.Filter
	if args.JQFilter != "" {
		f, err := graphql.CompileFilter(args.JQFilter)
		if err != nil {
			return nil, result.QueryResult{}, err
		}
		filter = f
	}

	return nil, s.runQuery(ctx, args.Query, args.Variables, filter), nil
}

func (s *Service) BatchQuery(ctx context.Context, req *mcp.CallToolRequest, args BatchQueryArgs) (*mcp.CallToolResult, result.BatchQueryResult, error) {
	if len(args.VariableSets) == 0 {
		return nil, result.BatchQueryResult{}, fmt.Errorf("variable_sets must not be empty")
	}

	var filter *graphql.Filter
	if args.JQFilter != "" {
		f, err := graphql.CompileFilter(args.JQFilter)
		if err != nil {
			return nil, result.BatchQueryResult{}, err
		}
		filter = f
	}

	return nil, s.runBatch(ctx, args.Query, args.VariableSets, args.KeyField, filter), nil
}

func (s *Service) SearchEntities(ctx context.Context, req *mcp.CallToolRequest, args SearchEntitiesArgs) (*mcp.CallToolResult, result.BatchQueryResult, error) {
	if len(args.QueryStrings) == 0 {
		return nil, result.BatchQueryResult{}, fmt.Errorf("query_strings must not be empty")
	}

	// The projection is fixed and known-good; a parse failure here is a bug.
	filter, err := graphql.CompileFilter(searchJQFilter)
	if err != nil {
		return nil, result.BatchQueryResult{}, err
	}

	variableSets := make([]map[string]any, len(args.QueryStrings))
	for i, queryString := range args.QueryStrings {
		variableSets[i] = map[string]any{searchVariableField: queryString}
	}

	return nil, s.runBatch(ctx, searchEntityQuery, variableSets, searchVariableField, filter), nil
}

// --- Query execution helpers ---

// runQuery executes one query and folds transport errors and filter
// failures into the result envelope.
func (s *Service) runQuery(ctx context.Context, query string, variables map[string]any, filter *graphql.Filter) result.QueryResult {
	data, err := s.client.Execute(ctx, query, variables)
	if err != nil {
		return result.Error(err.Error())
	}

	if filter == nil {
		return result.Success(data)
	}

	filtered, err := filter.Apply(data)
	if err != nil {
		tip := fmt.Sprintf(
			"%v. Tip: Use '// empty' or '// []' to handle null values. Example: '%s // empty'",
			err, filter.Expr(),
		)
		return result.Warning(data, tip)
	}
	return result.Success(filtered)
}

// runBatch fans the query out over the variable sets with bounded
// concurrency, preserving input order in the result list.
func (s *Service) runBatch(ctx context.Context, query string, variableSets []map[string]any, keyField string, filter *graphql.Filter) result.BatchQueryResult {
	items := make([]result.BatchItem, len(variableSets))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.batchConcurrency)

	for i, variables := range variableSets {
		wg.Add(1)
		go func(i int, variables map[string]any) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key := ""
			if keyField != "" {
				if v, ok := variables[keyField]; ok {
					key = fmt.Sprintf("%v", v)
				}
			}

			items[i] = result.BatchItem{
				Index:  i,
				Key:    key,
				Result: s.runQuery(ctx, query, variables, filter),
			}
		}(i, variables)
	}
	wg.Wait()

	return result.BatchQueryResult{
		Results: items,
		Summary: result.Summarize(items),
	}
}
