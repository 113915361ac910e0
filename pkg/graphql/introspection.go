package graphql

// The standard full introspection query, trimmed of deprecation and
// directive-argument detail we do not carry into the rebuilt schema.
// Type references nest seven levels deep, enough for any practical
// combination of list and non-null wrappers.
const introspectionQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      kind
      name
      description
      fields(includeDeprecated: false) {
        name
        description
        args {
          name
          description
          type { ...TypeRef }
        }
        type { ...TypeRef }
      }
      inputFields {
        name
        description
        type { ...TypeRef }
      }
      interfaces { ...TypeRef }
      enumValues(includeDeprecated: false) {
        name
        description
      }
      possibleTypes { ...TypeRef }
    }
  }
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

// --- Introspection result shapes ---

type introspectionResponse struct {
	Schema introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *namedRef  `json:"queryType"`
	MutationType     *namedRef  `json:"mutationType"`
	SubscriptionType *namedRef  `json:"subscriptionType"`
	Types            []fullType `json:"types"`
}

type namedRef struct {
	Name string `json:"name"`
}

type fullType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Fields        []fieldDef   `json:"fields"`
	InputFields   []inputValue `json:"inputFields"`
	Interfaces    []typeRef    `json:"interfaces"`
	EnumValues    []enumValue  `json:"enumValues"`
	PossibleTypes []typeRef    `json:"possibleTypes"`
}

type fieldDef struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Args        []inputValue `json:"args"`
	Type        typeRef      `json:"type"`
}

type inputValue struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        typeRef `json:"type"`
}

type enumValue struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}
