package frontend

import (
	"bytes"
	"fmt"
	"math/big"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"schemaforge/internal/ir"
)

// CompileJSONSchema compiles a raw JSON-Schema document (any supported
// draft) and returns a single TypeDef named typeName for the root
// schema. `$defs`/`definitions` subschemas are not hoisted as TypeDefs
// of their own: a subschema that is only a `$ref` compiles to an
// any-typed primitive (see jsonSchemaNode).
func CompileJSONSchema(namespace, version, typeName string, doc []byte) ([]ir.TypeDef, error) {
	compiler := jsonschema.NewCompiler()

	resource, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("parsing JSON-Schema document: %v", err))
	}
	const resourceURL = "schemaforge://document.json"
	if err := compiler.AddResource(resourceURL, resource); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("adding JSON-Schema resource: %v", err))
	}

	schema, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("compiling JSON-Schema document: %v", err))
	}

	acc := NewAccumulator(namespace, ir.QualifiedName{}.WithVersion(version).Version)
	acc.ResolveRef = jsonSchemaRefResolver()

	if _, err := compileNamed(jsonSchemaNode{schema: schema}, acc, typeName); err != nil {
		return nil, err
	}
	return acc.Defs, nil
}

// jsonSchemaRefResolver is installed as the Accumulator's ResolveRef,
// but jsonSchemaNode.Ref always reports empty, so compile never calls
// it; it hoists nothing and only returns an internal error.
func jsonSchemaRefResolver() func(ref string, acc *Accumulator) (ir.Type, error) {
	return func(ref string, acc *Accumulator) (ir.Type, error) {
		return ir.Type{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unexpected unresolved $ref %q: jsonschema/v6 should resolve refs before compile returns", ref))
	}
}

// jsonSchemaNode adapts *jsonschema.Schema to schemaNode. Ref always
// reports empty, and the adapter does not follow the `$ref` target that
// jsonschema/v6 resolves: a subschema whose only keyword is `$ref` has
// no Types and no Properties, so Kind reports kindAny for it.
type jsonSchemaNode struct {
	schema *jsonschema.Schema
}

func (n jsonSchemaNode) Ref() string { return "" }

func (n jsonSchemaNode) Title() string { return n.schema.Title }

func (n jsonSchemaNode) Description() string { return n.schema.Description }

func (n jsonSchemaNode) Kind() schemaKind {
	if len(n.schema.OneOf) > 0 {
		return kindOneOf
	}
	if n.schema.Types == nil {
		if len(n.schema.Properties) > 0 {
			return kindObject
		}
		return kindAny
	}
	for _, t := range n.schema.Types.ToStrings() {
		switch t {
		case "object":
			return kindObject
		case "array":
			return kindArray
		case "string":
			return kindString
		case "integer":
			return kindInteger
		case "number":
			return kindNumber
		case "boolean":
			return kindBoolean
		case "null":
			return kindNull
		}
	}
	return kindAny
}

func (n jsonSchemaNode) PropertyNames() []string {
	names := make([]string, 0, len(n.schema.Properties))
	for name := range n.schema.Properties {
		names = append(names, name)
	}
	return names
}

func (n jsonSchemaNode) Property(name string) schemaNode {
	return jsonSchemaNode{schema: n.schema.Properties[name]}
}

func (n jsonSchemaNode) Items() schemaNode {
	switch items := n.schema.Items.(type) {
	case *jsonschema.Schema:
		return jsonSchemaNode{schema: items}
	default:
		if n.schema.Items2020 != nil {
			return jsonSchemaNode{schema: n.schema.Items2020}
		}
		return nil
	}
}

func (n jsonSchemaNode) AdditionalPropertiesSchema() (schemaNode, bool) {
	switch ap := n.schema.AdditionalProperties.(type) {
	case *jsonschema.Schema:
		return jsonSchemaNode{schema: ap}, true
	case bool:
		if ap {
			return nil, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func (n jsonSchemaNode) Enum() []ir.Literal {
	if n.schema.Enum == nil {
		return nil
	}
	out := make([]ir.Literal, 0, len(n.schema.Enum.Values))
	for _, v := range n.schema.Enum.Values {
		out = append(out, interfaceToLiteral(v))
	}
	return out
}

func (n jsonSchemaNode) OneOf() []schemaNode {
	if len(n.schema.OneOf) == 0 {
		return nil
	}
	out := make([]schemaNode, 0, len(n.schema.OneOf))
	for _, s := range n.schema.OneOf {
		out = append(out, jsonSchemaNode{schema: s})
	}
	return out
}

func (n jsonSchemaNode) Pattern() string {
	if n.schema.Pattern == nil {
		return ""
	}
	return n.schema.Pattern.String()
}

func (n jsonSchemaNode) MinLength() *int { return n.schema.MinLength }
func (n jsonSchemaNode) MaxLength() *int { return n.schema.MaxLength }
func (n jsonSchemaNode) MinItems() *int  { return n.schema.MinItems }
func (n jsonSchemaNode) MaxItems() *int  { return n.schema.MaxItems }

func (n jsonSchemaNode) Minimum() *string { return bigRatToStringPtr(n.schema.Minimum) }
func (n jsonSchemaNode) Maximum() *string { return bigRatToStringPtr(n.schema.Maximum) }
func (n jsonSchemaNode) MultipleOf() *string {
	return bigRatToStringPtr(n.schema.MultipleOf)
}

func bigRatToStringPtr(r *big.Rat) *string {
	if r == nil {
		return nil
	}
	out := r.RatString()
	return &out
}
