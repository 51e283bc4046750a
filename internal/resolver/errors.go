package resolver

import (
	"fmt"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ir"
)

// NewUnknownTypeError reports that ref has no entry in the global
// registry (spec.md §4.3 Errors). Resolver errors always include the
// referring module, the reference, and (where relevant) the candidate
// set considered, per spec.md §7.
func NewUnknownTypeError(modulePath string, ref ir.QualifiedName, origin ir.Origin) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("UnknownType: %s referenced from %s (%s:%d)", ref, modulePath, origin.File, origin.Line))
}

// NewAmbiguousTypeError reports that more than one registry entry could
// resolve ref from the current context.
func NewAmbiguousTypeError(modulePath string, ref ir.QualifiedName, candidates []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("AmbiguousType: %s referenced from %s has %d candidates: %s", ref, modulePath, len(candidates), strings.Join(candidates, ", ")))
}

// NewImportBindingCollisionError reports that two distinct
// QualifiedNames would need the same binding identifier within one
// module, violating the "no two imports share a binding-identifier"
// invariant (spec.md §4.3 Deduplication).
func NewImportBindingCollisionError(modulePath, binding string, existing, incoming ir.QualifiedName) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("import binding collision in %s: %q already bound to %s, cannot also bind %s", modulePath, binding, existing, incoming))
}

// NewSelfImportError reports a violation of invariant P4 (no module
// imports itself).
func NewSelfImportError(modulePath string, ref ir.QualifiedName) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("module %s would import itself resolving %s", modulePath, ref))
}

// NewCyclicImportError reports a file-level import cycle with no
// acyclic alternative. Per spec.md §4.3, cyclic imports are "reported
// but not always fatal" — callers decide whether to treat the result as
// a hard failure or a warning; mutually-recursive modules are fine so
// long as each binding is declared before use.
func NewCyclicImportError(cycle []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("CyclicImport: %s", strings.Join(cycle, " -> ")))
}
