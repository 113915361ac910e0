package graphql

import (
	"encoding/json"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
)

// introspectionFixture mirrors the shape the platform API returns, cut down
// to one of each kind plus the meta and built-in types the converter must
// skip.
const introspectionFixture = `{
  "__schema": {
    "queryType": {"name": "Query"},
    "mutationType": null,
    "subscriptionType": null,
    "types": [
      {
        "kind": "OBJECT",
        "name": "Query",
        "description": "Platform root",
        "fields": [
          {
            "name": "target",
            "description": "Look up a target",
            "args": [
              {
                "name": "ensemblId",
                "description": "Ensembl gene id",
                "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}
              }
            ],
            "type": {"kind": "OBJECT", "name": "Target", "ofType": null}
          }
        ]
      },
      {
        "kind": "OBJECT",
        "name": "Target",
        "description": "A drug target",
        "fields": [
          {
            "name": "id",
            "args": [],
            "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}
          },
          {
            "name": "diseases",
            "args": [],
            "type": {"kind": "LIST", "name": null, "ofType": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "OBJECT", "name": "Disease", "ofType": null}}}
          }
        ],
        "interfaces": [{"kind": "INTERFACE", "name": "EntityUnionType", "ofType": null}]
      },
      {
        "kind": "OBJECT",
        "name": "Disease",
        "fields": [
          {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}}
        ]
      },
      {
        "kind": "INTERFACE",
        "name": "EntityUnionType",
        "fields": [
          {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}}
        ]
      },
      {
        "kind": "UNION",
        "name": "EntityResult",
        "possibleTypes": [
          {"kind": "OBJECT", "name": "Target", "ofType": null},
          {"kind": "OBJECT", "name": "Disease", "ofType": null}
        ]
      },
      {
        "kind": "ENUM",
        "name": "Ontology",
        "enumValues": [
          {"name": "EFO", "description": "Experimental Factor Ontology"},
          {"name": "HPO"}
        ]
      },
      {
        "kind": "INPUT_OBJECT",
        "name": "Pagination",
        "inputFields": [
          {"name": "index", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "Int", "ofType": null}}},
          {"name": "size", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "Int", "ofType": null}}}
        ]
      },
      {"kind": "SCALAR", "name": "Long"},
      {"kind": "SCALAR", "name": "String", "description": "Built-in"},
      {"kind": "SCALAR", "name": "Int"},
      {"kind": "OBJECT", "name": "__Type", "fields": []},
      {"kind": "FUTURE_KIND", "name": "Mystery"}
    ]
  }
}`

func buildFixtureSchema(t *testing.T) *ast.Schema {
	t.Helper()
	var intro introspectionResponse
	if err := json.Unmarshal([]byte(introspectionFixture), &intro); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	s, err := buildSchema(&intro.Schema)
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}
	return s
}

func TestBuildSchemaKinds(t *testing.T) {
	s := buildFixtureSchema(t)

	tests := []struct {
		name string
		kind ast.DefinitionKind
	}{
		{"Query", ast.Object},
		{"Target", ast.Object},
		{"EntityUnionType", ast.Interface},
		{"EntityResult", ast.Union},
		{"Ontology", ast.Enum},
		{"Pagination", ast.InputObject},
		{"Long", ast.Scalar},
	}
	for _, tc := range tests {
		def := s.Types[tc.name]
		if def == nil {
			t.Errorf("type %s missing from rebuilt schema", tc.name)
			continue
		}
		if def.Kind != tc.kind {
			t.Errorf("%s kind = %s, want %s", tc.name, def.Kind, tc.kind)
		}
	}
}

func TestBuildSchemaOperationsAndFields(t *testing.T) {
	s := buildFixtureSchema(t)

	if s.Query == nil || s.Query.Name != "Query" {
		t.Fatal("query root not wired")
	}
	if s.Mutation != nil {
		t.Error("no mutation was introspected, none should exist")
	}

	target := s.Query.Fields.ForName("target")
	if target == nil {
		t.Fatal("Query.target missing")
	}
	arg := target.Arguments.ForName("ensemblId")
	if arg == nil {
		t.Fatal("ensemblId argument missing")
	}
	if arg.Type.String() != "String!" {
		t.Errorf("ensemblId type = %s, want String!", arg.Type.String())
	}

	diseases := s.Types["Target"].Fields.ForName("diseases")
	if diseases == nil {
		t.Fatal("Target.diseases missing")
	}
	if diseases.Type.String() != "[Disease!]" {
		t.Errorf("diseases type = %s, want [Disease!]", diseases.Type.String())
	}
}

func TestBuildSchemaDetails(t *testing.T) {
	s := buildFixtureSchema(t)

	if got := s.Types["Target"].Description; got != "A drug target" {
		t.Errorf("Target description = %q", got)
	}
	if got := s.Types["Target"].Interfaces; len(got) != 1 || got[0] != "EntityUnionType" {
		t.Errorf("Target interfaces = %v", got)
	}
	if got := s.Types["EntityResult"].Types; len(got) != 2 {
		t.Errorf("union members = %v", got)
	}

	enum := s.Types["Ontology"]
	if len(enum.EnumValues) != 2 || enum.EnumValues.ForName("EFO") == nil {
		t.Errorf("enum values = %v", enum.EnumValues)
	}

	pag := s.Types["Pagination"]
	if idx := pag.Fields.ForName("index"); idx == nil || idx.Type.String() != "Int!" {
		t.Error("Pagination.index not converted")
	}
}

func TestBuildSchemaSkipsNonCustomAndUnknown(t *testing.T) {
	s := buildFixtureSchema(t)

	// The prelude still provides String and Int, so they resolve, but the
	// introspected redeclarations (and meta types) must not be emitted as
	// custom definitions.
	if _, ok := s.Types["Mystery"]; ok {
		t.Error("unknown kind should be dropped")
	}
	str := s.Types["String"]
	if str == nil {
		t.Fatal("prelude String missing after rebuild")
	}
	if str.Description == "Built-in" {
		t.Error("introspected String redeclaration leaked into the schema")
	}
}
