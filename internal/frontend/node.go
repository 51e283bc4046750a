// Package frontend implements the three schema front-ends of spec.md
// §4.2: CRD, OpenAPI, and JSON-Schema documents are each translated by
// their own library-specific adapter into a common schemaNode view,
// then compiled by one shared recursive compiler into ir.Types. This
// follows an "external document → internal record" adapter shape with
// a single-point-of-truth policy package consulted from multiple call
// sites (`internal/policies`).
package frontend

import (
	"fmt"
	"sort"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ir"
	"schemaforge/internal/policies"
)

// schemaKind is the shape a schemaNode reports, independent of which
// underlying library produced it.
type schemaKind int

const (
	kindUnknown schemaKind = iota
	kindObject
	kindArray
	kindString
	kindInteger
	kindNumber
	kindBoolean
	kindNull
	kindAny
	kindOneOf
)

// schemaNode is the shared surface every front-end's library-specific
// schema type is adapted to. A nil schemaNode method result always
// means "not set", never "set to zero".
type schemaNode interface {
	Ref() string
	Title() string
	Description() string
	Kind() schemaKind
	PropertyNames() []string
	Property(name string) schemaNode
	Items() schemaNode
	AdditionalPropertiesSchema() (schemaNode, bool)
	Enum() []ir.Literal
	OneOf() []schemaNode
	Pattern() string
	MinLength() *int
	MaxLength() *int
	Minimum() *string
	Maximum() *string
	MultipleOf() *string
	MinItems() *int
	MaxItems() *int
}

// Accumulator gathers TypeDefs discovered while compiling one document,
// so object subschemas with a name (CRD kinds, OpenAPI/JSON-Schema
// named definitions) are hoisted into their own top-level types instead
// of nested inline, per spec.md §4.2.
type Accumulator struct {
	Namespace string
	Version   string
	Defs      []ir.TypeDef
	named     map[string]ir.QualifiedName

	// ResolveRef resolves a document-local `$ref` string into a Type,
	// hoisting the target definition into this Accumulator as needed.
	// Each front-end installs its own closure (see crd.go/openapi.go/
	// jsonschema.go) since `$ref` syntax and the local definition table
	// differ per document kind. Kept per-Accumulator rather than a
	// package-level var so concurrent compiles of independent documents
	// never share mutable resolver state.
	ResolveRef func(ref string, acc *Accumulator) (ir.Type, error)
}

// NewAccumulator starts an Accumulator for one document's types, all
// sharing namespace/version.
func NewAccumulator(namespace, version string) *Accumulator {
	return &Accumulator{Namespace: namespace, Version: version, named: map[string]ir.QualifiedName{}}
}

func (a *Accumulator) hoist(simpleName string, t ir.Type) ir.QualifiedName {
	name := ir.QualifiedName{Namespace: a.Namespace, Version: a.Version, Name: simpleName}
	if existing, ok := a.named[simpleName]; ok {
		return existing
	}
	a.named[simpleName] = name
	a.Defs = append(a.Defs, ir.TypeDef{Name: name, Type: t})
	return name
}

// NewDanglingReferenceError reports a `$ref` that points within the
// current document but names no definition there. Per spec.md §4.2,
// this is a front-end error distinct from the resolver's UnknownType:
// it means the document itself is malformed, not that a cross-document
// reference has yet to be resolved.
func NewDanglingReferenceError(doc, ref string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("DanglingReference: %s in %s has no matching local definition", ref, doc))
}

// NewDuplicateDefinitionError reports that two manifest sources
// produced distinct, non-structurally-equal definitions for the same
// QualifiedName. Per spec.md §4.2, a shared type discovered through two
// sources (e.g. a common OpenAPI component referenced by two CRDs) is
// fine as long as its shape agrees; disagreement is a manifest error.
func NewDuplicateDefinitionError(name ir.QualifiedName) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("conflicting definitions for %s discovered across manifest sources", name))
}

// compile translates node into an ir.Type. An inline object subschema
// is embedded in place as a Record; only compileNamed and a front-end's
// ResolveRef add top-level TypeDefs to the Accumulator, per spec.md
// §4.2. pathHint is extended with "Item"/"Variant<i>" as the walk
// descends into array items and oneOf variants; it does not name any
// TypeDef.
func compile(node schemaNode, acc *Accumulator, pathHint string) (ir.Type, error) {
	if ref := node.Ref(); ref != "" {
		if acc.ResolveRef == nil {
			return ir.Type{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("no $ref resolver installed for this document")
		}
		return acc.ResolveRef(ref, acc)
	}

	switch node.Kind() {
	case kindObject:
		record, err := compileObjectBody(node, acc)
		if err != nil {
			return ir.Type{}, err
		}
		return record, nil
	case kindArray:
		element := node.Items()
		var elemType ir.Type
		var err error
		if element == nil {
			elemType = ir.NewPrimitive(ir.PrimitiveAny)
		} else {
			elemType, err = compile(element, acc, pathHint+"Item")
			if err != nil {
				return ir.Type{}, err
			}
		}
		return ir.NewArray(elemType, node.MinItems(), node.MaxItems(), nil), nil
	case kindOneOf:
		variants := make([]ir.Type, 0, len(node.OneOf()))
		for i, v := range node.OneOf() {
			variant, err := compile(v, acc, fmt.Sprintf("%sVariant%d", pathHint, i))
			if err != nil {
				return ir.Type{}, err
			}
			variants = append(variants, variant)
		}
		return ir.NewSum(variants), nil
	case kindString, kindInteger, kindNumber, kindBoolean, kindNull, kindAny:
		base := primitiveFor(node.Kind())
		predicates := refinementPredicates(node)
		if len(predicates) == 0 {
			return base, nil
		}
		return ir.NewRefinement(base, predicates), nil
	default:
		return ir.NewPrimitive(ir.PrimitiveAny), nil
	}
}

// compileNamed is like compile but always hoists an object result
// under simpleName (used for a document's own top-level kinds/
// definitions, which are always named).
func compileNamed(node schemaNode, acc *Accumulator, simpleName string) (ir.QualifiedName, error) {
	t, err := compile(node, acc, simpleName)
	if err != nil {
		return ir.QualifiedName{}, err
	}
	// Non-record top-level schemas (e.g. a JSON-Schema document whose
	// root is a string enum) are still hoisted so callers can
	// reference them by name.
	return acc.hoist(simpleName, t), nil
}

func compileObjectBody(node schemaNode, acc *Accumulator) (ir.Type, error) {
	names := append([]string(nil), node.PropertyNames()...)
	sort.Strings(names)

	var fields []ir.Field
	for _, name := range names {
		prop := node.Property(name)
		fieldType, err := compile(prop, acc, titleCase(name))
		if err != nil {
			return ir.Type{}, err
		}
		fields = append(fields, ir.Field{
			Name:        name,
			EscapedName: escapedFieldName(name),
			Type:        fieldType,
			// Optional-by-default (spec.md §4.2): every field is
			// optional regardless of the schema's `required` list.
			Optional: true,
			Doc:      node.Property(name).Description(),
		})
	}

	open := false
	if additional, ok := node.AdditionalPropertiesSchema(); ok {
		if additional == nil {
			open = true
		} else {
			valueType, err := compile(additional, acc, "Value")
			if err != nil {
				return ir.Type{}, err
			}
			if len(fields) == 0 {
				return ir.NewMap(valueType), nil
			}
		}
	}
	return ir.NewRecord(fields, open), nil
}

func escapedFieldName(name string) string {
	if policies.IsReserved(name) {
		return policies.Escape(name)
	}
	return ""
}

func primitiveFor(kind schemaKind) ir.Type {
	switch kind {
	case kindString:
		return ir.NewPrimitive(ir.PrimitiveString)
	case kindInteger:
		return ir.NewPrimitive(ir.PrimitiveInteger)
	case kindNumber:
		return ir.NewPrimitive(ir.PrimitiveNumber)
	case kindBoolean:
		return ir.NewPrimitive(ir.PrimitiveBoolean)
	case kindNull:
		return ir.NewPrimitive(ir.PrimitiveNull)
	default:
		return ir.NewPrimitive(ir.PrimitiveAny)
	}
}

func refinementPredicates(node schemaNode) []ir.Predicate {
	var predicates []ir.Predicate
	if enum := node.Enum(); len(enum) > 0 {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateEnum, Args: enum})
	}
	if pattern := node.Pattern(); pattern != "" {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicatePattern, Args: []ir.Literal{ir.NewStringLiteral(pattern)}})
	}
	if v := node.MinLength(); v != nil {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateMinLength, Args: []ir.Literal{ir.NewNumberLiteral(itoa(*v))}})
	}
	if v := node.MaxLength(); v != nil {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateMaxLength, Args: []ir.Literal{ir.NewNumberLiteral(itoa(*v))}})
	}
	if v := node.Minimum(); v != nil {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateMinimum, Args: []ir.Literal{ir.NewNumberLiteral(*v)}})
	}
	if v := node.Maximum(); v != nil {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateMaximum, Args: []ir.Literal{ir.NewNumberLiteral(*v)}})
	}
	if v := node.MultipleOf(); v != nil {
		predicates = append(predicates, ir.Predicate{Kind: ir.PredicateMultipleOf, Args: []ir.Literal{ir.NewNumberLiteral(*v)}})
	}
	return predicates
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

