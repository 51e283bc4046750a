package frontend

import (
	"encoding/json"
	"fmt"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/yaml"

	"schemaforge/internal/ir"
)

// CompileCRD parses a CustomResourceDefinition document and returns one
// Record TypeDef per served version, named after spec.names.kind, per
// spec.md §4.2. The group becomes the QualifiedName's namespace; the
// CRD version name becomes the QualifiedName's version (the v0 sentinel
// never applies here since every CRD version is explicitly named).
func CompileCRD(doc []byte) ([]ir.TypeDef, error) {
	var crd apiextensionsv1.CustomResourceDefinition
	if err := yaml.UnmarshalStrict(doc, &crd); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("parsing CustomResourceDefinition: %v", err))
	}
	if crd.Spec.Names.Kind == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("CustomResourceDefinition is missing spec.names.kind")
	}

	var defs []ir.TypeDef
	for _, version := range crd.Spec.Versions {
		if !version.Served {
			continue
		}
		if version.Schema == nil || version.Schema.OpenAPIV3Schema == nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version %q of %s has no openAPIV3Schema", version.Name, crd.Spec.Names.Kind))
		}

		acc := NewAccumulator(crd.Spec.Group, version.Name)
		root := crdNode{schema: version.Schema.OpenAPIV3Schema, all: collectDefinitions(version.Schema.OpenAPIV3Schema)}
		acc.ResolveRef = crdRefResolver(root.all)
		if _, err := compileNamed(root, acc, crd.Spec.Names.Kind); err != nil {
			return nil, err
		}
		defs = append(defs, acc.Defs...)
	}
	return defs, nil
}

// collectDefinitions walks a CRD's openAPIV3Schema looking for the
// `x-kubernetes-...` extension-free `definitions`-style local
// subschemas some CRDs nest under properties for reuse. CRD schemas
// have no standard `$ref` target outside the document itself, so this
// is the full set `crdNode.Ref` can ever resolve against.
func collectDefinitions(schema *apiextensionsv1.JSONSchemaProps) map[string]*apiextensionsv1.JSONSchemaProps {
	found := map[string]*apiextensionsv1.JSONSchemaProps{}
	var walk func(s *apiextensionsv1.JSONSchemaProps)
	walk = func(s *apiextensionsv1.JSONSchemaProps) {
		if s == nil {
			return
		}
		for name, prop := range s.Properties {
			p := prop
			found[name] = &p
			walk(&p)
		}
		if s.Items != nil && s.Items.Schema != nil {
			walk(s.Items.Schema)
		}
	}
	walk(schema)
	return found
}

func crdRefResolver(defs map[string]*apiextensionsv1.JSONSchemaProps) func(ref string, acc *Accumulator) (ir.Type, error) {
	return func(ref string, acc *Accumulator) (ir.Type, error) {
		simple := ref
		if idx := strings.LastIndex(ref, "/"); idx >= 0 {
			simple = ref[idx+1:]
		}
		target, ok := defs[simple]
		if !ok {
			return ir.Type{}, NewDanglingReferenceError("CustomResourceDefinition", ref)
		}
		name, err := compileNamed(crdNode{schema: target, all: defs}, acc, titleCase(simple))
		if err != nil {
			return ir.Type{}, err
		}
		return ir.NewReference(name), nil
	}
}

// crdNode adapts *apiextensionsv1.JSONSchemaProps to schemaNode.
type crdNode struct {
	schema *apiextensionsv1.JSONSchemaProps
	all    map[string]*apiextensionsv1.JSONSchemaProps
}

func (n crdNode) Ref() string {
	if n.schema.Ref == nil {
		return ""
	}
	return *n.schema.Ref
}

func (n crdNode) Title() string       { return n.schema.Title }
func (n crdNode) Description() string { return n.schema.Description }

func (n crdNode) Kind() schemaKind {
	switch n.schema.Type {
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
	case "":
		if len(n.schema.Properties) > 0 {
			return kindObject
		}
		return kindAny
	default:
		return kindAny
	}
}

func (n crdNode) PropertyNames() []string {
	names := make([]string, 0, len(n.schema.Properties))
	for name := range n.schema.Properties {
		names = append(names, name)
	}
	return names
}

func (n crdNode) Property(name string) schemaNode {
	prop := n.schema.Properties[name]
	return crdNode{schema: &prop, all: n.all}
}

func (n crdNode) Items() schemaNode {
	if n.schema.Items == nil || n.schema.Items.Schema == nil {
		return nil
	}
	return crdNode{schema: n.schema.Items.Schema, all: n.all}
}

func (n crdNode) AdditionalPropertiesSchema() (schemaNode, bool) {
	ap := n.schema.AdditionalProperties
	if ap == nil {
		return nil, false
	}
	if ap.Schema == nil {
		if ap.Allows {
			return nil, true
		}
		return nil, false
	}
	return crdNode{schema: ap.Schema, all: n.all}, true
}

func (n crdNode) Enum() []ir.Literal {
	if len(n.schema.Enum) == 0 {
		return nil
	}
	out := make([]ir.Literal, 0, len(n.schema.Enum))
	for _, raw := range n.schema.Enum {
		out = append(out, jsonRawToLiteral(raw.Raw))
	}
	return out
}

func (n crdNode) OneOf() []schemaNode {
	if len(n.schema.OneOf) == 0 {
		return nil
	}
	out := make([]schemaNode, 0, len(n.schema.OneOf))
	for i := range n.schema.OneOf {
		out = append(out, crdNode{schema: &n.schema.OneOf[i], all: n.all})
	}
	return out
}

func (n crdNode) Pattern() string { return n.schema.Pattern }

func (n crdNode) MinLength() *int { return int64PtrToIntPtr(n.schema.MinLength) }
func (n crdNode) MaxLength() *int { return int64PtrToIntPtr(n.schema.MaxLength) }
func (n crdNode) MinItems() *int  { return int64PtrToIntPtr(n.schema.MinItems) }
func (n crdNode) MaxItems() *int  { return int64PtrToIntPtr(n.schema.MaxItems) }

func (n crdNode) Minimum() *string { return floatPtrToStringPtr(n.schema.Minimum) }
func (n crdNode) Maximum() *string { return floatPtrToStringPtr(n.schema.Maximum) }
func (n crdNode) MultipleOf() *string {
	return floatPtrToStringPtr(n.schema.MultipleOf)
}

func int64PtrToIntPtr(v *int64) *int {
	if v == nil {
		return nil
	}
	out := int(*v)
	return &out
}

func floatPtrToStringPtr(v *float64) *string {
	if v == nil {
		return nil
	}
	out := fmt.Sprintf("%g", *v)
	return &out
}

func jsonRawToLiteral(raw []byte) ir.Literal {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return ir.NewStringLiteral(string(raw))
	}
	return interfaceToLiteral(value)
}

func interfaceToLiteral(value interface{}) ir.Literal {
	switch v := value.(type) {
	case nil:
		return ir.NewNullLiteral()
	case bool:
		return ir.NewBoolLiteral(v)
	case float64:
		return ir.NewNumberLiteral(trimFloat(v))
	case string:
		return ir.NewStringLiteral(v)
	case []interface{}:
		items := make([]ir.Literal, 0, len(v))
		for _, item := range v {
			items = append(items, interfaceToLiteral(item))
		}
		return ir.NewArrayLiteral(items)
	case map[string]interface{}:
		fields := make([]ir.LiteralField, 0, len(v))
		for key, val := range v {
			fields = append(fields, ir.LiteralField{Key: key, Value: interfaceToLiteral(val)})
		}
		return ir.NewObjectLiteral(fields)
	default:
		return ir.NewStringLiteral(fmt.Sprintf("%v", v))
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
