package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/ir"
)

// fakeNode is a hand-built schemaNode used to exercise the shared
// compiler without depending on any front-end library.
type fakeNode struct {
	ref         string
	description string
	kind        schemaKind
	properties  map[string]*fakeNode
	items       *fakeNode
	additional  *fakeNode
	additionalOK bool
	enum        []ir.Literal
	oneOf       []*fakeNode
	pattern     string
	minLength   *int
	maxLength   *int
	minimum     *string
	maximum     *string
	multipleOf  *string
	minItems    *int
	maxItems    *int
}

func (n *fakeNode) Ref() string         { return n.ref }
func (n *fakeNode) Title() string       { return "" }
func (n *fakeNode) Description() string { return n.description }
func (n *fakeNode) Kind() schemaKind    { return n.kind }

func (n *fakeNode) PropertyNames() []string {
	names := make([]string, 0, len(n.properties))
	for name := range n.properties {
		names = append(names, name)
	}
	return names
}

func (n *fakeNode) Property(name string) schemaNode {
	p := n.properties[name]
	if p == nil {
		return nil
	}
	return p
}

func (n *fakeNode) Items() schemaNode {
	if n.items == nil {
		return nil
	}
	return n.items
}

func (n *fakeNode) AdditionalPropertiesSchema() (schemaNode, bool) {
	if n.additional == nil {
		return nil, n.additionalOK
	}
	return n.additional, true
}

func (n *fakeNode) Enum() []ir.Literal { return n.enum }

func (n *fakeNode) OneOf() []schemaNode {
	out := make([]schemaNode, 0, len(n.oneOf))
	for _, v := range n.oneOf {
		out = append(out, v)
	}
	return out
}

func (n *fakeNode) Pattern() string     { return n.pattern }
func (n *fakeNode) MinLength() *int     { return n.minLength }
func (n *fakeNode) MaxLength() *int     { return n.maxLength }
func (n *fakeNode) Minimum() *string    { return n.minimum }
func (n *fakeNode) Maximum() *string    { return n.maximum }
func (n *fakeNode) MultipleOf() *string { return n.multipleOf }
func (n *fakeNode) MinItems() *int      { return n.minItems }
func (n *fakeNode) MaxItems() *int      { return n.maxItems }

func TestCompileObjectProducesOptionalFieldsRegardlessOfRequired(t *testing.T) {
	node := &fakeNode{
		kind: kindObject,
		properties: map[string]*fakeNode{
			"name": {kind: kindString, description: "the name"},
			"age":  {kind: kindInteger},
		},
	}

	acc := NewAccumulator("example.com", "v1")
	name, err := compileNamed(node, acc, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "example.com", name.Namespace)
	assert.Equal(t, "v1", name.Version)
	assert.Equal(t, "Widget", name.Name)

	def, ok := findDef(acc.Defs, name)
	require.True(t, ok)
	require.Equal(t, ir.KindRecord, def.Type.Kind)
	assert.False(t, def.Type.Record.Open)
	for _, field := range def.Type.Record.Fields {
		assert.True(t, field.Optional, "field %s must be optional", field.Name)
	}
}

func TestCompileArrayWithBounds(t *testing.T) {
	min, max := 1, 10
	node := &fakeNode{kind: kindArray, items: &fakeNode{kind: kindString}, minItems: &min, maxItems: &max}

	acc := NewAccumulator("example.com", "v1")
	typ, err := compile(node, acc, "Tags")
	require.NoError(t, err)
	require.Equal(t, ir.KindArray, typ.Kind)
	assert.Equal(t, &min, typ.Array.Min)
	assert.Equal(t, &max, typ.Array.Max)
}

func TestCompileRefinementFromEnum(t *testing.T) {
	node := &fakeNode{kind: kindString, enum: []ir.Literal{ir.NewStringLiteral("a"), ir.NewStringLiteral("b")}}

	acc := NewAccumulator("example.com", "v1")
	typ, err := compile(node, acc, "Mode")
	require.NoError(t, err)
	require.Equal(t, ir.KindRefinement, typ.Kind)
	require.Len(t, typ.Refinement.Predicates, 1)
	assert.Equal(t, ir.PredicateEnum, typ.Refinement.Predicates[0].Kind)
}

func TestCompileOpenMapWithNoNamedProperties(t *testing.T) {
	node := &fakeNode{
		kind:         kindObject,
		additional:   &fakeNode{kind: kindInteger},
		additionalOK: true,
	}

	acc := NewAccumulator("example.com", "v1")
	typ, err := compile(node, acc, "Counts")
	require.NoError(t, err)
	require.Equal(t, ir.KindMap, typ.Kind)
	assert.Equal(t, ir.KindPrimitive, typ.Map.Value.Kind)
}

func TestCompileMissingRefResolverFails(t *testing.T) {
	node := &fakeNode{kind: kindObject, ref: "#/local/Thing"}
	acc := NewAccumulator("example.com", "v1")
	_, err := compile(node, acc, "Thing")
	assert.Error(t, err)
}

func TestCompileUsesInstalledRefResolver(t *testing.T) {
	node := &fakeNode{kind: kindObject, ref: "#/local/Thing"}
	acc := NewAccumulator("example.com", "v1")
	acc.ResolveRef = func(ref string, acc *Accumulator) (ir.Type, error) {
		return ir.NewPrimitive(ir.PrimitiveString), nil
	}
	typ, err := compile(node, acc, "Thing")
	require.NoError(t, err)
	assert.Equal(t, ir.KindPrimitive, typ.Kind)
}

func findDef(defs []ir.TypeDef, name ir.QualifiedName) (ir.TypeDef, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return ir.TypeDef{}, false
}
