package frontend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/getkin/kin-openapi/openapi3"

	"schemaforge/internal/ir"
)

// CompileOpenAPI parses an OpenAPI v3 document and returns one TypeDef
// per named schema under components.schemas, per spec.md §4.2. version
// is the QualifiedName version to assign; callers pass the manifest
// entry's declared version, or let it fall through to the v0 sentinel
// via QualifiedName.WithVersion when the source carries none.
func CompileOpenAPI(namespace, version string, doc []byte) ([]ir.TypeDef, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	document, err := loader.LoadFromData(doc)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("parsing OpenAPI document: %v", err))
	}
	if err := document.Validate(context.Background()); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("validating OpenAPI document: %v", err))
	}
	if document.Components == nil || len(document.Components.Schemas) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("OpenAPI document declares no components.schemas")
	}

	acc := NewAccumulator(namespace, ir.QualifiedName{}.WithVersion(version).Version)
	acc.ResolveRef = openapiRefResolver(document)

	names := make([]string, 0, len(document.Components.Schemas))
	for name := range document.Components.Schemas {
		names = append(names, name)
	}
	sortStrings(names)

	for _, name := range names {
		ref := document.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		if _, err := compileNamed(openapiNode{schema: ref.Value}, acc, name); err != nil {
			return nil, err
		}
	}
	return acc.Defs, nil
}

func openapiRefResolver(document *openapi3.T) func(ref string, acc *Accumulator) (ir.Type, error) {
	return func(ref string, acc *Accumulator) (ir.Type, error) {
		const prefix = "#/components/schemas/"
		if !strings.HasPrefix(ref, prefix) {
			return ir.Type{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported external $ref %q (only local component schemas are resolved here)", ref))
		}
		simple := strings.TrimPrefix(ref, prefix)
		target, ok := document.Components.Schemas[simple]
		if !ok || target == nil || target.Value == nil {
			return ir.Type{}, NewDanglingReferenceError("OpenAPI document", ref)
		}
		name, err := compileNamed(openapiNode{schema: target.Value}, acc, simple)
		if err != nil {
			return ir.Type{}, err
		}
		return ir.NewReference(name), nil
	}
}

// openapiNode adapts *openapi3.Schema to schemaNode.
type openapiNode struct {
	schema *openapi3.Schema
	ref    string
}

func (n openapiNode) Ref() string { return n.ref }

func (n openapiNode) Title() string {
	if n.schema == nil {
		return ""
	}
	return n.schema.Title
}

func (n openapiNode) Description() string {
	if n.schema == nil {
		return ""
	}
	return n.schema.Description
}

func (n openapiNode) Kind() schemaKind {
	if len(n.schema.OneOf) > 0 {
		return kindOneOf
	}
	switch {
	case n.schema.Type == nil:
		if len(n.schema.Properties) > 0 {
			return kindObject
		}
		return kindAny
	case n.schema.Type.Is("object"):
		return kindObject
	case n.schema.Type.Is("array"):
		return kindArray
	case n.schema.Type.Is("string"):
		return kindString
	case n.schema.Type.Is("integer"):
		return kindInteger
	case n.schema.Type.Is("number"):
		return kindNumber
	case n.schema.Type.Is("boolean"):
		return kindBoolean
	case n.schema.Type.Is("null"):
		return kindNull
	default:
		return kindAny
	}
}

func (n openapiNode) PropertyNames() []string {
	names := make([]string, 0, len(n.schema.Properties))
	for name := range n.schema.Properties {
		names = append(names, name)
	}
	return names
}

func (n openapiNode) Property(name string) schemaNode {
	ref := n.schema.Properties[name]
	return refToNode(ref)
}

func (n openapiNode) Items() schemaNode {
	if n.schema.Items == nil {
		return nil
	}
	return refToNode(n.schema.Items)
}

func (n openapiNode) AdditionalPropertiesSchema() (schemaNode, bool) {
	ap := n.schema.AdditionalProperties
	if ap.Schema != nil {
		return refToNode(ap.Schema), true
	}
	if ap.Has != nil && *ap.Has {
		return nil, true
	}
	return nil, false
}

func (n openapiNode) Enum() []ir.Literal {
	if len(n.schema.Enum) == 0 {
		return nil
	}
	out := make([]ir.Literal, 0, len(n.schema.Enum))
	for _, v := range n.schema.Enum {
		out = append(out, interfaceToLiteral(v))
	}
	return out
}

func (n openapiNode) OneOf() []schemaNode {
	if len(n.schema.OneOf) == 0 {
		return nil
	}
	out := make([]schemaNode, 0, len(n.schema.OneOf))
	for _, ref := range n.schema.OneOf {
		out = append(out, refToNode(ref))
	}
	return out
}

func (n openapiNode) Pattern() string { return n.schema.Pattern }

func (n openapiNode) MinLength() *int { return uint64PtrToIntPtr(&n.schema.MinLength) }
func (n openapiNode) MaxLength() *int { return uint64PtrToIntPtr(n.schema.MaxLength) }
func (n openapiNode) MinItems() *int  { return uint64PtrToIntPtr(&n.schema.MinItems) }
func (n openapiNode) MaxItems() *int  { return uint64PtrToIntPtr(n.schema.MaxItems) }

func (n openapiNode) Minimum() *string { return float64PtrToStringPtr(n.schema.Min) }
func (n openapiNode) Maximum() *string { return float64PtrToStringPtr(n.schema.Max) }
func (n openapiNode) MultipleOf() *string {
	return float64PtrToStringPtr(n.schema.MultipleOf)
}

func refToNode(ref *openapi3.SchemaRef) schemaNode {
	if ref == nil {
		return nil
	}
	if ref.Value == nil {
		return openapiNode{ref: ref.Ref}
	}
	return openapiNode{schema: ref.Value, ref: ref.Ref}
}

func uint64PtrToIntPtr(v *uint64) *int {
	if v == nil || *v == 0 {
		return nil
	}
	out := int(*v)
	return &out
}

func float64PtrToStringPtr(v *float64) *string {
	if v == nil {
		return nil
	}
	out := strconv.FormatFloat(*v, 'g', -1, 64)
	return &out
}

func sortStrings(values []string) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j-1] > values[j]; j-- {
			values[j-1], values[j] = values[j], values[j-1]
		}
	}
}
