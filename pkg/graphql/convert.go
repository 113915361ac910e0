package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/sanonone/otp-mcp/pkg/schema"
)

// FetchSchema retrieves the remote schema via introspection and rebuilds it
// as a parsed *ast.Schema. The introspection result is converted to an SDL
// document, printed, and re-loaded through gqlparser so the outcome is a
// fully validated schema with the standard prelude (built-in scalars and
// directives) attached, exactly what an SDL-first fetch would have given.
func (c *Client) FetchSchema(ctx context.Context) (*ast.Schema, error) {
	raw, err := c.execute(ctx, introspectionQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("introspection query: %w", err)
	}

	var intro introspectionResponse
	if err := json.Unmarshal(raw, &intro); err != nil {
		return nil, fmt.Errorf("decoding introspection result: %w", err)
	}

	return buildSchema(&intro.Schema)
}

// buildSchema turns an introspection result into a validated schema.
func buildSchema(intro *introspectionSchema) (*ast.Schema, error) {
	doc := &ast.SchemaDocument{}

	for _, t := range intro.Types {
		// Built-in scalars and meta types come from the gqlparser
		// prelude; redeclaring them would fail validation.
		if !schema.IsCustomType(t.Name) {
			continue
		}
		if def := convertType(t); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}

	schemaDef := &ast.SchemaDefinition{}
	addOperation(schemaDef, ast.Query, intro.QueryType)
	addOperation(schemaDef, ast.Mutation, intro.MutationType)
	addOperation(schemaDef, ast.Subscription, intro.SubscriptionType)
	if len(schemaDef.OperationTypes) > 0 {
		doc.Schema = append(doc.Schema, schemaDef)
	}

	var buf strings.Builder
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)

	loaded, err := gqlparser.LoadSchema(&ast.Source{
		Name:  "opentargets.graphql",
		Input: buf.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("rebuilding schema from introspection: %w", err)
	}
	return loaded, nil
}

func addOperation(def *ast.SchemaDefinition, op ast.Operation, ref *namedRef) {
	if ref == nil || ref.Name == "" {
		return
	}
	def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{
		Operation: op,
		Type:      ref.Name,
	})
}

// convertType maps one introspected type onto an ast.Definition. Types with
// unknown kinds are dropped rather than guessed at.
func convertType(t fullType) *ast.Definition {
	def := &ast.Definition{
		Name:        t.Name,
		Description: t.Description,
	}

	switch t.Kind {
	case "OBJECT", "INTERFACE":
		if t.Kind == "OBJECT" {
			def.Kind = ast.Object
		} else {
			def.Kind = ast.Interface
		}
		for _, iface := range t.Interfaces {
			if iface.Name != "" {
				def.Interfaces = append(def.Interfaces, iface.Name)
			}
		}
		for _, f := range t.Fields {
			def.Fields = append(def.Fields, convertField(f))
		}
	case "INPUT_OBJECT":
		def.Kind = ast.InputObject
		for _, f := range t.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Type:        convertTypeRef(&f.Type),
			})
		}
	case "UNION":
		def.Kind = ast.Union
		for _, member := range t.PossibleTypes {
			if member.Name != "" {
				def.Types = append(def.Types, member.Name)
			}
		}
	case "ENUM":
		def.Kind = ast.Enum
		for _, v := range t.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Name:        v.Name,
				Description: v.Description,
			})
		}
	case "SCALAR":
		def.Kind = ast.Scalar
	default:
		return nil
	}

	return def
}

func convertField(f fieldDef) *ast.FieldDefinition {
	field := &ast.FieldDefinition{
		Name:        f.Name,
		Description: f.Description,
		Type:        convertTypeRef(&f.Type),
	}
	for _, arg := range f.Args {
		field.Arguments = append(field.Arguments, &ast.ArgumentDefinition{
			Name:        arg.Name,
			Description: arg.Description,
			Type:        convertTypeRef(&arg.Type),
		})
	}
	return field
}

// convertTypeRef unwraps the introspection wrapper chain (NON_NULL, LIST)
// into gqlparser's type representation.
func convertTypeRef(ref *typeRef) *ast.Type {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case "NON_NULL":
		inner := convertTypeRef(ref.OfType)
		if inner == nil {
			return nil
		}
		inner.NonNull = true
		return inner
	case "LIST":
		return ast.ListType(convertTypeRef(ref.OfType), nil)
	default:
		return ast.NamedType(ref.Name, nil)
	}
}
