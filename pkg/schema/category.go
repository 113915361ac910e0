package schema

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoriesYAML []byte

// Category is one static configuration entry: a named grouping of seed
// types from which a subschema is resolved at startup.
type Category struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Types       []string `yaml:"types"`
	Depth       Depth    `yaml:"depth"`
}

// CategorySubschema is the resolved form of a Category: the full reachable
// type set plus its rendered SDL. Computed once at startup, read-only after.
type CategorySubschema struct {
	Name        string
	Description string
	Types       map[string]struct{}
	SDL         string
}

type categoryFile struct {
	Categories []Category `yaml:"categories"`
}

// categoryFileSchema validates the raw YAML document before it is decoded
// into typed structs, so a malformed file fails with a schema error instead
// of a zero-valued category.
var categoryFileSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"categories"},
	Properties: map[string]*jsonschema.Schema{
		"categories": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"name", "description", "types", "depth"},
				Properties: map[string]*jsonschema.Schema{
					"name":        {Type: "string"},
					"description": {Type: "string"},
					"types": {
						Type:  "array",
						Items: &jsonschema.Schema{Type: "string"},
					},
					"depth": {Types: []string{"integer", "string"}},
				},
			},
		},
	},
}

// DefaultCategories loads the category list embedded in the binary.
func DefaultCategories() ([]Category, error) {
	return parseCategories(defaultCategoriesYAML)
}

// LoadCategories reads a category list from an override file on disk.
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}
	cats, err := parseCategories(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cats, nil
}

func parseCategories(data []byte) ([]Category, error) {
	// 1. Structural validation on the raw document.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	resolved, err := categoryFileSchema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving category schema: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid categories config: %w", err)
	}

	// 2. Typed decode. Depth's custom unmarshaller rejects negatives and
	// anything other than "exhaustive" as the string form.
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid categories config: %w", err)
	}

	seen := make(map[string]bool, len(file.Categories))
	for _, cat := range file.Categories {
		if seen[cat.Name] {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
	}

	return file.Categories, nil
}

// BuildSubschemas resolves every configured category against the graph.
// Seed types missing from the schema are dropped silently: stale category
// configuration should shrink a subschema, not break startup. A category
// whose seeds are all unknown yields an empty type set and empty SDL.
func BuildSubschemas(categories []Category, g *TypeGraph, s *ast.Schema) map[string]*CategorySubschema {
	result := make(map[string]*CategorySubschema, len(categories))
	for _, cat := range categories {
		result[cat.Name] = buildSubschema(cat, g, s)
	}
	return result
}

func buildSubschema(cat Category, g *TypeGraph, s *ast.Schema) *CategorySubschema {
	seeds := make([]string, 0, len(cat.Types))
	for _, seed := range cat.Types {
		if g.HasType(seed) {
			seeds = append(seeds, seed)
		}
	}

	types := make(map[string]struct{})
	if len(seeds) > 0 {
		types = g.ReachableWithDepth(seeds, cat.Depth)
	}

	return &CategorySubschema{
		Name:        cat.Name,
		Description: cat.Description,
		Types:       types,
		SDL:         RenderDefinitions(types, s),
	}
}
