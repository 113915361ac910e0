package schema

import (
	"testing"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// testSDL is a miniature of the platform schema with the reference shapes
// the engine has to handle: cycles (Target <-> Disease), a diamond
// (Drug reachable from both Target and Disease), a union, an enum, and a
// leaf type with no outgoing references.
const testSDL = `
type Query {
    target(ensemblId: String!): Target
    disease(efoId: String!): Disease
}

type Target {
    id: String!
    approvedSymbol: String
    diseases: [Disease!]
    pathways: [Pathway!]
}

type Disease {
    id: String!
    name: String
    targets: [Target!]
    drugs: [Drug!]
}

type Drug {
    id: String!
    name: String
    mechanisms: [Mechanism!]
}

type Pathway {
    id: String!
    name: String
}

type Mechanism {
    id: String!
    description: String
}

type Pagination {
    count: Int!
}

enum DiseaseType {
    RARE
    COMMON
}

union SearchResult = Target | Disease | Drug
`

func loadTestSchema(t *testing.T) *ast.Schema {
	t.Helper()
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: testSDL})
	if err != nil {
		t.Fatalf("loading test schema: %v", err)
	}
	return s
}

func mustLoad(t *testing.T, sdl string) *ast.Schema {
	t.Helper()
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "inline.graphql", Input: sdl})
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	return s
}

func buildTestGraph(t *testing.T) *TypeGraph {
	t.Helper()
	return BuildTypeGraph(loadTestSchema(t))
}

// set is a test shorthand for building expected type sets.
func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func equalSets(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
