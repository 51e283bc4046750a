// Package emitter renders resolved ir.Modules into the target
// configuration syntax (spec.md §4.5): an import preamble of
// `let X = import "…" in` bindings, a `field | optional | Type`
// contract body per record, and deterministic ordering throughout
// (imports sorted by binding, fields in declaration order, map keys
// lexicographic). Rendering is hand-rolled, template-free line
// writing rather than text/template, matching how the rest of this
// codebase builds structured output.
package emitter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ir"
	"schemaforge/internal/policies"
)

// context tracks how to render a Reference: local types resolve to
// their own simple-name, everything else must already have a matching
// Import on the module (the resolver's job, not the emitter's).
type context struct {
	local   map[string]struct{}
	imports map[ir.QualifiedName]string
}

func newContext(module *ir.Module) *context {
	ctx := &context{local: map[string]struct{}{}, imports: map[ir.QualifiedName]string{}}
	for _, def := range module.Types {
		ctx.local[def.Name.Name] = struct{}{}
	}
	for _, imp := range module.Imports {
		ctx.imports[imp.Source] = imp.Binding
	}
	return ctx
}

// importPath renders the string inside an import's quotes: a relative
// path for a same-package import, or the package-system form
// "<package-id>@<version>" for a cross-package one (spec.md §4.3's
// Cross-package rule). imp.PackageID is only set by the resolver when
// the target module belongs to a different package than the importer.
func importPath(imp ir.Import) string {
	if imp.PackageID == "" {
		return imp.RelativePath
	}
	if imp.Version == "" {
		return imp.PackageID
	}
	return imp.PackageID + "@" + imp.Version
}

func (c *context) bindingFor(ref ir.QualifiedName) (string, error) {
	if _, ok := c.local[ref.Name]; ok {
		return ref.Name, nil
	}
	if binding, ok := c.imports[ref]; ok {
		return binding, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("reference %s has no matching import; the module was not fully resolved", ref))
}

// Render produces the full text of one module's file, per spec.md §4.5.
func Render(module *ir.Module) (string, error) {
	ctx := newContext(module)
	var b strings.Builder

	imports := append([]ir.Import(nil), module.Imports...)
	sort.Slice(imports, func(i, j int) bool { return imports[i].Binding < imports[j].Binding })
	for _, imp := range imports {
		fmt.Fprintf(&b, "let %s = import \"%s\" in\n", policies.Escape(imp.Binding), importPath(imp))
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}

	for _, def := range module.Types {
		if def.Type.Doc != "" {
			writeDocComment(&b, def.Type.Doc)
		}
		rendered, err := renderType(def.Type, ctx)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "let %s = %s in\n\n", policies.Escape(def.Name.Name), rendered)
	}

	b.WriteString(exportLine(module))
	return b.String(), nil
}

// exportLine renders the module's final expression: the sole defined
// type's identifier, or (for a synthesized index module with no types
// of its own) a record gathering every import it re-exports.
func exportLine(module *ir.Module) string {
	if len(module.Types) > 0 {
		names := make([]string, len(module.Types))
		for i, def := range module.Types {
			names[i] = policies.Escape(def.Name.Name)
		}
		if len(names) == 1 {
			return names[0] + "\n"
		}
		sort.Strings(names)
		return "{ " + strings.Join(names, ", ") + " }\n"
	}
	if len(module.Imports) == 0 {
		return "{}\n"
	}
	bindings := make([]string, len(module.Imports))
	for i, imp := range module.Imports {
		bindings[i] = policies.Escape(imp.Binding)
	}
	sort.Strings(bindings)
	return "{ " + strings.Join(bindings, ", ") + " }\n"
}

func writeDocComment(b *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		fmt.Fprintf(b, "# %s\n", line)
	}
}

func renderType(t ir.Type, ctx *context) (string, error) {
	switch t.Kind {
	case ir.KindPrimitive:
		return renderPrimitive(t.Primitive), nil
	case ir.KindArray:
		return renderArray(t.Array, ctx)
	case ir.KindMap:
		value, err := renderType(t.Map.Value, ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ _ : %s }", value), nil
	case ir.KindRecord:
		return renderRecord(t.Record, ctx)
	case ir.KindSum:
		return renderSum(t.Sum, ctx)
	case ir.KindReference:
		return ctx.bindingFor(t.Reference)
	case ir.KindRefinement:
		return renderRefinement(t.Refinement, ctx)
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("cannot render type of kind %s", t.Kind))
	}
}

func renderPrimitive(kind ir.PrimitiveKind) string {
	switch kind {
	case ir.PrimitiveString, ir.PrimitiveBytes:
		return "String"
	case ir.PrimitiveInteger, ir.PrimitiveNumber:
		return "Number"
	case ir.PrimitiveBoolean:
		return "Bool"
	default:
		return "Dyn"
	}
}

func renderArray(array *ir.ArrayType, ctx *context) (string, error) {
	element, err := renderType(array.Element, ctx)
	if err != nil {
		return "", err
	}
	base := fmt.Sprintf("Array %s", element)
	if array.Min == nil && array.Max == nil {
		return base, nil
	}
	var constraints []string
	if array.Min != nil {
		constraints = append(constraints, fmt.Sprintf("array.length_min %d", *array.Min))
	}
	if array.Max != nil {
		constraints = append(constraints, fmt.Sprintf("array.length_max %d", *array.Max))
	}
	return fmt.Sprintf("%s | %s", base, strings.Join(constraints, " | ")), nil
}

func renderRecord(record *ir.RecordType, ctx *context) (string, error) {
	if len(record.Fields) == 0 {
		if record.Open {
			return "{ _ : Dyn }", nil
		}
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, field := range record.Fields {
		if err := renderField(&b, field, ctx); err != nil {
			return "", err
		}
	}
	b.WriteString("}")
	return b.String(), nil
}

func renderField(b *strings.Builder, field ir.Field, ctx *context) error {
	fieldType, err := renderType(field.Type, ctx)
	if err != nil {
		return err
	}
	if field.Doc != "" {
		for _, line := range strings.Split(strings.TrimRight(field.Doc, "\n"), "\n") {
			fmt.Fprintf(b, "  # %s\n", line)
		}
	}
	binding := policies.Escape(field.Binding())
	if field.Optional {
		fmt.Fprintf(b, "  %s | optional | %s", binding, fieldType)
	} else {
		fmt.Fprintf(b, "  %s | %s", binding, fieldType)
	}
	if field.Default != nil {
		b.WriteString(" = ")
		b.WriteString(renderLiteral(*field.Default))
	}
	b.WriteString(",\n")
	return nil
}

func renderSum(sum *ir.SumType, ctx *context) (string, error) {
	rendered := make([]string, len(sum.Variants))
	for i, variant := range sum.Variants {
		r, err := renderType(variant, ctx)
		if err != nil {
			return "", err
		}
		rendered[i] = r
	}
	return strings.Join(rendered, " | "), nil
}

func renderRefinement(refinement *ir.RefinementType, ctx *context) (string, error) {
	base, err := renderType(refinement.Base, ctx)
	if err != nil {
		return "", err
	}
	var predicates []string
	for _, p := range refinement.Predicates {
		predicates = append(predicates, renderPredicate(p))
	}
	if len(predicates) == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s | %s", base, strings.Join(predicates, " | ")), nil
}

func renderPredicate(p ir.Predicate) string {
	switch p.Kind {
	case ir.PredicateEnum:
		values := make([]string, len(p.Args))
		for i, v := range p.Args {
			values[i] = renderLiteral(v)
		}
		return fmt.Sprintf("std.enum.TagOrString [%s]", strings.Join(values, ", "))
	case ir.PredicatePattern:
		return fmt.Sprintf("std.string.is_match %s", renderLiteral(firstArg(p.Args)))
	case ir.PredicateMinLength:
		return fmt.Sprintf("std.string.length_min %s", renderLiteral(firstArg(p.Args)))
	case ir.PredicateMaxLength:
		return fmt.Sprintf("std.string.length_max %s", renderLiteral(firstArg(p.Args)))
	case ir.PredicateMinimum:
		return fmt.Sprintf("std.number.geq %s", renderLiteral(firstArg(p.Args)))
	case ir.PredicateMaximum:
		return fmt.Sprintf("std.number.leq %s", renderLiteral(firstArg(p.Args)))
	case ir.PredicateMultipleOf:
		return fmt.Sprintf("std.number.multiple_of %s", renderLiteral(firstArg(p.Args)))
	default:
		return "Dyn"
	}
}

func firstArg(args []ir.Literal) ir.Literal {
	if len(args) == 0 {
		return ir.Literal{}
	}
	return args[0]
}

func renderLiteral(lit ir.Literal) string {
	switch lit.Kind {
	case ir.LiteralString:
		return strconv.Quote(lit.Str)
	case ir.LiteralNumber:
		return lit.Num
	case ir.LiteralBool:
		if lit.Bool {
			return "true"
		}
		return "false"
	case ir.LiteralNull:
		return "null"
	case ir.LiteralArray:
		parts := make([]string, len(lit.Array))
		for i, v := range lit.Array {
			parts[i] = renderLiteral(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.LiteralObject:
		fields := append([]ir.LiteralField(nil), lit.Object...)
		sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fmt.Sprintf("%s = %s", policies.Escape(f.Key), renderLiteral(f.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return "null"
	}
}
