// Package resolver implements the cross-module reference resolver of
// spec.md §4.3: for every Reference encountered while emitting a
// Module, it decides whether the reference is local, already imported,
// or requires a new import, and computes the import path and binding
// identifier. It follows a cache → reuse → new-entry shape with
// directive-style fallbacks, retargeted from package/version
// constraint solving to import-path/binding resolution.
package resolver

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"schemaforge/internal/ir"
	"schemaforge/internal/registry"
)

// Resolution is what Resolve returns for a single reference: either a
// local identifier (Import == nil) or a newly-created-or-reused Import.
type Resolution struct {
	Identifier string
	Import     *ir.Import
}

// Context is the resolution context C = (current qualified-name
// prefix, already-chosen imports) from spec.md §4.3, scoped to one
// Module being emitted.
type Context struct {
	PackageID  string
	Namespace  string
	Version    string
	Path       string
	LocalNames map[string]ir.QualifiedName
	imports    []ir.Import
	cache      map[ir.QualifiedName]Resolution
}

// NewContext creates a resolution context for the module at path within
// packageID, whose top-level types are named under (namespace, version).
func NewContext(packageID, namespace, version, path string, localNames map[string]ir.QualifiedName) *Context {
	if localNames == nil {
		localNames = map[string]ir.QualifiedName{}
	}
	return &Context{
		PackageID:  packageID,
		Namespace:  namespace,
		Version:    version,
		Path:       path,
		LocalNames: localNames,
		cache:      map[ir.QualifiedName]Resolution{},
	}
}

// Imports returns the imports accumulated on this context so far, in
// the order they were created. The caller (the planner/emitter) sorts
// these by binding before writing the import preamble (spec.md §4.5).
func (c *Context) Imports() []ir.Import {
	return append([]ir.Import(nil), c.imports...)
}

// Resolver resolves References against a frozen global Registry.
type Resolver struct {
	Registry *registry.Registry
}

// New creates a Resolver backed by reg, which must already be frozen
// (spec.md §5: resolution observes a frozen registry).
func New(reg *registry.Registry) *Resolver {
	return &Resolver{Registry: reg}
}

// Resolve implements the four-step algorithm of spec.md §4.3.
func (r *Resolver) Resolve(ctx *Context, ref ir.QualifiedName, origin ir.Origin) (Resolution, error) {
	// Step 1: cache lookup.
	if cached, ok := ctx.cache[ref]; ok {
		return cached, nil
	}

	// Step 2: local test.
	if ref.Namespace == ctx.Namespace && ref.Version == ctx.Version {
		if _, ok := ctx.LocalNames[ref.Name]; ok {
			res := Resolution{Identifier: ref.Name}
			ctx.cache[ref] = res
			return res, nil
		}
	}

	// Step 3: existing-import reuse.
	for i := range ctx.imports {
		if ctx.imports[i].Source == ref {
			res := Resolution{Identifier: ctx.imports[i].Binding, Import: &ctx.imports[i]}
			ctx.cache[ref] = res
			return res, nil
		}
	}

	// Step 4: new import.
	entries := r.Registry.Lookup(ref)
	if len(entries) == 0 {
		return Resolution{}, NewUnknownTypeError(ctx.Path, ref, origin)
	}
	if len(entries) > 1 {
		candidates := make([]string, len(entries))
		for i, e := range entries {
			candidates[i] = fmt.Sprintf("%s:%s", e.PackageID, e.FilePath)
		}
		return Resolution{}, NewAmbiguousTypeError(ctx.Path, ref, candidates)
	}
	entry := entries[0]

	// A registry entry whose file is the current module is local even
	// when its namespace/version disagree with ctx (e.g. the v0
	// sentinel file resolving one of its own sibling types); this
	// enforces P4 (no self-import) rather than raising it as an error.
	if entry.FilePath == ctx.Path {
		res := Resolution{Identifier: entry.SimpleName}
		ctx.cache[ref] = res
		return res, nil
	}

	binding := ref.Name
	if existingByName, ok := ctx.LocalNames[binding]; ok && existingByName != ref {
		return Resolution{}, NewImportBindingCollisionError(ctx.Path, binding, existingByName, ref)
	}
	for _, imp := range ctx.imports {
		if imp.Binding == binding && imp.Source != ref {
			return Resolution{}, NewImportBindingCollisionError(ctx.Path, binding, imp.Source, ref)
		}
	}

	imp := ir.Import{
		Binding:      binding,
		RelativePath: RelativePath(ctx.Path, entry.FilePath),
		Source:       ref,
		Origin:       origin,
	}
	if entry.PackageID != ctx.PackageID {
		imp.PackageID = entry.PackageID
		imp.Version = entry.Version
	}

	ctx.imports = append(ctx.imports, imp)
	res := Resolution{Identifier: binding, Import: &ctx.imports[len(ctx.imports)-1]}
	ctx.cache[ref] = res
	log.Debug().Str("module", ctx.Path).Str("reference", ref.String()).Str("binding", binding).Msg("reference resolved to new import")
	return res, nil
}
