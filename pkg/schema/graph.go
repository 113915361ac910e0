// Package schema implements the type-graph engine behind the schema tools.
//
// The Open Targets GraphQL schema is far too large to hand to an LLM in one
// piece, so this package builds a directed reference graph over its custom
// types and answers questions like "what does Target transitively depend on"
// or "what do Target and Disease share". Everything here is computed once at
// startup from a fetched schema and is read-only afterwards.
package schema

import (
	"github.com/tidwall/btree"
	"github.com/vektah/gqlparser/v2/ast"
)

// UnionMemberLabel is the edge label used for union-membership edges,
// where no field name exists to label the reference.
const UnionMemberLabel = "<union>"

// builtinScalars are the GraphQL built-in scalar types, excluded from the
// graph along with the __-prefixed introspection types.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// TypeKind is a closed discriminator for the category of a schema type.
type TypeKind string

const (
	KindObject      TypeKind = "object"
	KindInterface   TypeKind = "interface"
	KindUnion       TypeKind = "union"
	KindEnum        TypeKind = "enum"
	KindInputObject TypeKind = "input_object"
	KindScalar      TypeKind = "scalar"
)

// TypeGraph is the directed reference graph over the schema's custom types.
//
// Adjacency maps a type to the types it references, each entry carrying the
// ordered list of field names that produce the reference (or the union
// sentinel). Reverse is the exact transpose of Adjacency. The types index is
// kept in a B-tree so listings and suggestion scans come out sorted without
// re-sorting on every call.
//
// A TypeGraph is immutable once BuildTypeGraph returns.
type TypeGraph struct {
	types     btree.Map[string, TypeKind]
	Adjacency map[string]map[string][]string
	Reverse   map[string]map[string]struct{}
}

// IsCustomType reports whether a type name belongs in the graph: not a
// built-in scalar and not an introspection meta type.
func IsCustomType(name string) bool {
	if name == "" {
		return false
	}
	if len(name) >= 2 && name[0] == '_' && name[1] == '_' {
		return false
	}
	return !builtinScalars[name]
}

// kindOf maps the gqlparser definition kind onto our closed TypeKind enum.
func kindOf(def *ast.Definition) TypeKind {
	switch def.Kind {
	case ast.Object:
		return KindObject
	case ast.Interface:
		return KindInterface
	case ast.Union:
		return KindUnion
	case ast.Enum:
		return KindEnum
	case ast.InputObject:
		return KindInputObject
	default:
		return KindScalar
	}
}

// namedType unwraps list and non-null wrappers down to the underlying
// named type (e.g. [Disease!]! -> Disease).
func namedType(t *ast.Type) string {
	for t != nil && t.NamedType == "" {
		t = t.Elem
	}
	if t == nil {
		return ""
	}
	return t.NamedType
}

// BuildTypeGraph walks every declared type in the schema and records which
// custom types it references and through which fields. Union members are
// recorded with UnionMemberLabel. The builder is total: a well-formed schema
// always yields a graph, and a type with no outgoing references is simply a
// leaf with an empty adjacency entry.
func BuildTypeGraph(s *ast.Schema) *TypeGraph {
	g := &TypeGraph{
		Adjacency: make(map[string]map[string][]string),
		Reverse:   make(map[string]map[string]struct{}),
	}

	for name, def := range s.Types {
		if !IsCustomType(name) {
			continue
		}

		g.types.Set(name, kindOf(def))
		g.Adjacency[name] = make(map[string][]string)

		switch def.Kind {
		case ast.Object, ast.Interface, ast.InputObject:
			for _, field := range def.Fields {
				target := namedType(field.Type)
				if IsCustomType(target) {
					g.addReference(name, target, field.Name)
				}
			}
		case ast.Union:
			for _, member := range def.Types {
				if IsCustomType(member) {
					g.addReference(name, member, UnionMemberLabel)
				}
			}
		}
	}

	// Transpose once all forward edges are in place.
	for source, targets := range g.Adjacency {
		for target := range targets {
			if g.Reverse[target] == nil {
				g.Reverse[target] = make(map[string]struct{})
			}
			g.Reverse[target][source] = struct{}{}
		}
	}

	return g
}

// addReference appends a labeled edge source -> target. Multiple fields
// pointing at the same target accumulate as a list, never collapsed.
func (g *TypeGraph) addReference(source, target, label string) {
	g.Adjacency[source][target] = append(g.Adjacency[source][target], label)
}

// HasType reports whether the graph knows the given type name.
func (g *TypeGraph) HasType(name string) bool {
	_, ok := g.types.Get(name)
	return ok
}

// Kind returns the kind tag recorded for a type.
func (g *TypeGraph) Kind(name string) (TypeKind, bool) {
	return g.types.Get(name)
}

// TypeNames returns every type name in the graph in lexicographic order.
func (g *TypeGraph) TypeNames() []string {
	return g.types.Keys()
}

// Len returns the number of custom types in the graph.
func (g *TypeGraph) Len() int {
	return g.types.Len()
}
