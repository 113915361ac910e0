package mcp

// --- Tool Arguments ---

type GetSchemaArgs struct{}

type GetSchemaResult struct {
	SDL string `json:"sdl"`
}

type ListCategoriesArgs struct{}

type CategoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TypeCount   int    `json:"type_count"`
}

type ListCategoriesResult struct {
	Categories []CategoryInfo `json:"categories"`
}

type GetCategorySubschemaArgs struct {
	Category string `json:"category" jsonschema:"Name of the schema category to retrieve (see list_schema_categories),required"`
}

type GetCategorySubschemaResult struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Types       []string `json:"types"`
	SDL         string   `json:"sdl"`
}

type GetTypeDependenciesArgs struct {
	TypeNames []string `json:"type_names" jsonschema:"List of GraphQL type names to explore (e.g. ['Target', 'Disease', 'Drug']),required"`
}

type GetTypeDependenciesResult struct {
	// PerType maps each requested type to SDL for types reachable ONLY
	// from that type. The Shared block holds everything reachable from
	// two or more of them.
	PerType map[string]string `json:"per_type"`
	Shared  string            `json:"shared"`
}

type QueryArgs struct {
	Query     string         `json:"query" jsonschema:"The GraphQL query to execute against the Open Targets Platform API,required"`
	Variables map[string]any `json:"variables,omitempty" jsonschema:"Variables for the GraphQL query"`
	JQFilter  string         `json:"jq_filter,omitempty" jsonschema:"Optional jq filter applied to the result. The response is wrapped as {data: ...} so filters start with .data"`
}

type BatchQueryArgs struct {
	Query        string           `json:"query" jsonschema:"The GraphQL query to execute once per variable set,required"`
	VariableSets []map[string]any `json:"variable_sets" jsonschema:"One variables object per execution,required"`
	KeyField     string           `json:"key_field,omitempty" jsonschema:"Variable name whose value labels each result (e.g. 'queryString')"`
	JQFilter     string           `json:"jq_filter,omitempty" jsonschema:"Optional jq filter applied to every result"`
}

type SearchEntitiesArgs struct {
	QueryStrings []string `json:"query_strings" jsonschema:"List of search strings to find entities (e.g. ['BRCA1', 'breast cancer', 'aspirin']),required"`
}
