package graphql

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq expression. Callers compile before executing any
// remote query so a broken filter fails fast and cheap.
type Filter struct {
	expr  string
	query *gojq.Query
}

// CompileFilter parses a jq filter expression.
func CompileFilter(expr string) (*Filter, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq filter: %w", err)
	}
	return &Filter{expr: expr, query: q}, nil
}

// Expr returns the original filter text, for error messages.
func (f *Filter) Expr() string {
	return f.expr
}

// maxFilterOutputs bounds the number of values a filter may emit. Filters
// like "range(infinite)" would otherwise loop forever on a tool call.
const maxFilterOutputs = 10000

// Apply runs the filter over a decoded query result and collects every
// emitted output. The input is wrapped as {"data": ...} so the same filters
// that work against a raw GraphQL HTTP response (".data.search...") work
// here.
func (f *Filter) Apply(data any) ([]any, error) {
	iter := f.query.Run(map[string]any{"data": data})

	var out []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq filter failed: %w", err)
		}
		if len(out) >= maxFilterOutputs {
			return nil, fmt.Errorf("jq filter emitted more than %d outputs", maxFilterOutputs)
		}
		out = append(out, v)
	}
	return out, nil
}
