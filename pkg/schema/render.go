package schema

import (
	"maps"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// RenderDefinitions converts a set of type names into SDL text. Names are
// emitted in lexicographic order so output is deterministic; names not found
// in the schema are silently skipped. Top-level type descriptions are
// suppressed to save caller context, while field, argument and enum-value
// descriptions survive verbatim.
//
// A single call never emits the same definition twice (the input is a set),
// but concatenating the output of two calls can. Callers that combine
// subsets must union the name sets first and render once.
func RenderDefinitions(names map[string]struct{}, s *ast.Schema) string {
	sorted := slices.Sorted(maps.Keys(names))

	parts := make([]string, 0, len(sorted))
	for _, name := range sorted {
		def, ok := s.Types[name]
		if !ok {
			continue
		}
		parts = append(parts, formatDefinition(def))
	}

	return strings.Join(parts, "\n\n")
}

// formatDefinition prints one definition with its top-level description
// stripped. The strip happens on a shallow copy so the shared schema object
// is never touched and concurrent renders need no locking.
func formatDefinition(def *ast.Definition) string {
	stripped := *def
	stripped.Description = ""

	var buf strings.Builder
	f := formatter.NewFormatter(&buf)
	f.FormatSchemaDocument(&ast.SchemaDocument{
		Definitions: ast.DefinitionList{&stripped},
	})

	return strings.TrimRight(buf.String(), "\n")
}
