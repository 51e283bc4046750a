// Package manifest implements the manifest driver of spec.md §4.7: it
// reads a pinned-source TOML manifest, fetches and compiles each
// package's schema sources through the appropriate front-end, merges
// the discovered types into one registry, resolves references, plans
// and emits the package, and persists fingerprints for the next
// incremental run. Driver is a port-wiring orchestration struct with
// one request-shaped method per pipeline entry point (Run, Import,
// Vendor).
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"schemaforge/internal/adapters"
	"schemaforge/internal/emitter"
	"schemaforge/internal/fingerprint"
	"schemaforge/internal/frontend"
	"schemaforge/internal/ir"
	"schemaforge/internal/planner"
	"schemaforge/internal/ports"
	"schemaforge/internal/registry"
	"schemaforge/internal/resolver"
)

// CompilerVersion is folded into every fingerprint digest (spec.md
// §4.6) so a compiler upgrade invalidates the cache even when sources
// and pins are unchanged.
const CompilerVersion = "schemaforge/0"

// FileExtension is the target configuration language's file suffix,
// used throughout the planner and emitter.
const FileExtension = "ncl"

// Driver wires the ports a manifest run needs: fetching sources,
// pinning git refs, loading the manifest itself, persisting
// fingerprints, writing emitted modules, and (optionally) subprocessing
// a typechecker, per spec.md §2's port boundary.
type Driver struct {
	Fetcher      ports.Fetcher
	RefResolver  ports.RefResolver
	ManifestFile ports.ManifestLoader
	Fingerprints ports.FingerprintStore
	Writer       ports.EmitterWriter
	Typecheck    ports.Typechecker
}

// NewDriver wires the concrete adapters, matching `app.NewService`'s
// construction shape (one adapter per port, wired at the call site
// rather than via dependency injection framework).
func NewDriver(outputDir string, fingerprintDir string) Driver {
	return Driver{
		Fetcher:      adapters.NewFetcherAdapter(),
		RefResolver:  adapters.NewGitRefAdapter(),
		ManifestFile: adapters.NewManifestFileAdapter(),
		Fingerprints: fingerprint.NewStore(fingerprintDir),
		Writer:       emitter.NewWriter(outputDir),
	}
}

// Request configures one manifest run.
type Request struct {
	ManifestPath  string
	AllowUnpinned bool
	ForceRebuild  bool
	SkipTypecheck bool
}

// Result summarizes a completed run.
type Result struct {
	PackageID      string
	ModulesWritten int
	SourcesSkipped int
}

// Run executes the fetch → compile → merge → plan → resolve → emit →
// fingerprint pipeline for one manifest, per spec.md §4.7.
func (d Driver) Run(ctx context.Context, req Request) (Result, error) {
	manifest, err := d.ManifestFile.Load(req.ManifestPath)
	if err != nil {
		return Result{}, err
	}
	if len(manifest.Packages) == 0 {
		return Result{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest declares no [[packages]] entries")
	}

	var (
		docs     []frontend.Document
		failures []error
		skipped  int
		// cachedOnly tracks QualifiedNames seen so far only in
		// fingerprint-cache-hit sources; a name compiled fresh by any
		// source is removed, since a fresh compilation always wins.
		cachedOnly = map[ir.QualifiedName]struct{}{}
	)
	for i, pkg := range manifest.Packages {
		pkgID := packageID(manifest.BasePackageID, pkg, i)
		for _, source := range pkg.Source {
			doc, hit, err := d.compileSource(ctx, pkgID, pkg, source, req)
			if err != nil {
				failures = append(failures, fmt.Errorf("%s (%s): %w", pkgID, source, err))
				continue
			}
			if hit {
				skipped++
				for _, def := range doc.Defs {
					cachedOnly[def.Name] = struct{}{}
				}
			} else {
				for _, def := range doc.Defs {
					delete(cachedOnly, def.Name)
				}
			}
			docs = append(docs, doc)
		}
	}
	if len(failures) > 0 {
		return Result{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("one or more manifest sources failed to compile").
			WithCause(errors.Join(failures...))
	}

	defs, err := frontend.Merge(docs)
	if err != nil {
		return Result{}, err
	}

	modules, err := planner.Assign(defs, FileExtension)
	if err != nil {
		return Result{}, err
	}
	reg := buildRegistry(modules)
	if err := resolveModules(reg, modules); err != nil {
		return Result{}, err
	}
	planner.BuildIndexes(modules, FileExtension)

	skipPaths := cachedOnlyModulePaths(modules, cachedOnly)
	if err := d.writeAll(modules, skipPaths); err != nil {
		return Result{}, err
	}
	if err := d.Writer.WriteManifest(planner.BuildManifest(collectDependencies(modules))); err != nil {
		return Result{}, err
	}

	if !req.SkipTypecheck && d.Typecheck != nil {
		if err := d.typecheckAll(ctx, modules, skipPaths); err != nil {
			return Result{}, err
		}
	}

	return Result{
		PackageID:      manifest.BasePackageID,
		ModulesWritten: len(modules),
		SourcesSkipped: skipped,
	}, nil
}

// cachedOnlyModulePaths returns the set of module paths whose every
// top-level TypeDef came from a fingerprint cache hit: these files did
// not change since the last run and can skip re-writing and
// typechecking, per spec.md §4.6's cache contract. Index/root modules
// (no Types of their own) are always rewritten, since they are cheap
// to regenerate and may re-export a module that did change.
func cachedOnlyModulePaths(modules map[string]*ir.Module, cachedOnly map[ir.QualifiedName]struct{}) map[string]struct{} {
	skip := map[string]struct{}{}
	for path, module := range modules {
		if len(module.Types) == 0 {
			continue
		}
		allCached := true
		for _, def := range module.Types {
			if _, ok := cachedOnly[def.Name]; !ok {
				allCached = false
				break
			}
		}
		if allCached {
			skip[path] = struct{}{}
		}
	}
	return skip
}

// collectDependencies gathers the cross-package dependencies a build
// discovered while resolving references, for planner.BuildManifest.
func collectDependencies(modules map[string]*ir.Module) []ir.PackageDependency {
	var deps []ir.PackageDependency
	for _, module := range modules {
		for _, imp := range module.Imports {
			if imp.PackageID == "" {
				continue
			}
			deps = append(deps, ir.PackageDependency{PackageID: imp.PackageID, Version: imp.Version})
		}
	}
	return deps
}

// ImportRequest configures a single-source import run (spec.md §6's
// `import` subcommand): compile exactly one schema document, without a
// manifest file, and emit its package.
type ImportRequest struct {
	Source        string
	PackageID     string
	Namespace     string
	Version       string
	TypeName      string
	AllowUnpinned bool
	SkipTypecheck bool
}

// Import fetches and compiles a single source and emits it as its own
// package, reusing the same plan → resolve → emit tail of Run but
// skipping the manifest/fingerprint machinery entirely, since a
// one-shot import has no prior build to compare against.
func (d Driver) Import(ctx context.Context, req ImportRequest) (Result, error) {
	if req.Source == "" {
		return Result{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("import source is empty")
	}
	if req.Version != "" {
		if err := fingerprint.RequirePinned(req.Version, req.AllowUnpinned); err != nil {
			return Result{}, err
		}
	}
	if repoURL, ok := gitRepoRoot(req.Source); ok {
		if _, err := d.RefResolver.ResolveRef(ctx, repoURL, req.Version); err != nil {
			return Result{}, err
		}
	}

	data, err := d.Fetcher.Fetch(ctx, req.Source)
	if err != nil {
		return Result{}, err
	}

	namespace := req.Namespace
	if namespace == "" {
		namespace = namespaceFor(req.PackageID)
	}
	source := req.Source
	if req.TypeName != "" {
		source = req.TypeName
	}
	doc, err := compileBySniffedKind(namespace, req.Version, source, data)
	if err != nil {
		return Result{}, err
	}
	tagPackage(doc.Defs, req.PackageID, req.Version)

	defs, err := frontend.Merge([]frontend.Document{doc})
	if err != nil {
		return Result{}, err
	}
	modules, err := planner.Assign(defs, FileExtension)
	if err != nil {
		return Result{}, err
	}
	reg := buildRegistry(modules)
	if err := resolveModules(reg, modules); err != nil {
		return Result{}, err
	}
	planner.BuildIndexes(modules, FileExtension)

	if err := d.writeAll(modules, nil); err != nil {
		return Result{}, err
	}
	if err := d.Writer.WriteManifest(planner.BuildManifest(collectDependencies(modules))); err != nil {
		return Result{}, err
	}
	if !req.SkipTypecheck && d.Typecheck != nil {
		if err := d.typecheckAll(ctx, modules, nil); err != nil {
			return Result{}, err
		}
	}

	return Result{PackageID: req.PackageID, ModulesWritten: len(modules)}, nil
}

// VendorRequest configures a vendor run: fetch every manifest source and
// persist its raw bytes locally, without compiling or emitting, so a
// later generate-from-manifest run can proceed offline against a
// pinned, already-fetched tree (spec.md §6's "vendor (materialize
// dependencies)" subcommand).
type VendorRequest struct {
	ManifestPath  string
	VendorDir     string
	AllowUnpinned bool
}

// VendorResult summarizes a completed vendor run.
type VendorResult struct {
	FilesWritten int
}

// Vendor fetches every pinned source named by the manifest and writes
// it under <VendorDir>/<packageID>/<basename(source)>, enforcing the
// same pin rule compileSource does but skipping front-end compilation
// entirely.
func (d Driver) Vendor(ctx context.Context, req VendorRequest) (VendorResult, error) {
	manifest, err := d.ManifestFile.Load(req.ManifestPath)
	if err != nil {
		return VendorResult{}, err
	}
	if len(manifest.Packages) == 0 {
		return VendorResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest declares no [[packages]] entries")
	}
	if req.VendorDir == "" {
		return VendorResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("vendor directory is empty")
	}

	var failures []error
	written := 0
	for i, pkg := range manifest.Packages {
		pkgID := packageID(manifest.BasePackageID, pkg, i)
		if err := fingerprint.RequirePinned(pkg.Version, req.AllowUnpinned); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", pkgID, err))
			continue
		}
		reportVersionConflict(req.VendorDir, pkgID, pkg.Version)
		for _, source := range pkg.Source {
			if _, ok := gitRepoRoot(source); ok {
				if _, err := d.RefResolver.ResolveRef(ctx, strings.TrimSuffix(source, ".git"), pkg.Version); err != nil {
					failures = append(failures, fmt.Errorf("%s (%s): %w", pkgID, source, err))
					continue
				}
			}
			data, err := d.Fetcher.Fetch(ctx, source)
			if err != nil {
				failures = append(failures, fmt.Errorf("%s (%s): %w", pkgID, source, err))
				continue
			}
			if err := writeVendoredFile(req.VendorDir, pkgID, source, data); err != nil {
				failures = append(failures, fmt.Errorf("%s (%s): %w", pkgID, source, err))
				continue
			}
			written++
		}
		if pkg.Version != "" {
			_ = writeVendorVersionMarker(req.VendorDir, pkgID, pkg.Version)
		}
	}
	if len(failures) > 0 {
		return VendorResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("one or more sources failed to vendor").
			WithCause(errors.Join(failures...))
	}
	return VendorResult{FilesWritten: written}, nil
}

// versionMarkerName records the pinned version a package directory was
// last vendored at, so a later vendor run at a different pin can be
// reported as a conflict instead of silently overwriting.
const versionMarkerName = ".vendored-version"

// reportVersionConflict logs when a package is being vendored at a
// different pin than the version already on disk, ordering the two
// versions via PEP 440 first and falling back to Debian version
// comparison, mirroring `core.versionCache.compare`'s dual-scheme
// ordering for APT vs. Pip dependency versions.
func reportVersionConflict(vendorDir, packageID, version string) {
	prior, ok := readVendorVersionMarker(vendorDir, packageID)
	if !ok || prior == version || version == "" {
		return
	}
	if compareVersions(version, prior) < 0 {
		log.Warn().Str("package", packageID).Str("vendored_version", prior).
			Str("manifest_version", version).
			Msg("vendoring an older version than what is already on disk")
		return
	}
	log.Info().Str("package", packageID).Str("previous_version", prior).
		Str("version", version).
		Msg("vendored package version changed")
}

// compareVersions orders two version strings, returning -1, 0, or 1.
// It tries PEP 440 first, then Debian version syntax, and falls back
// to 0 (unordered) when neither scheme parses both strings.
func compareVersions(a, b string) int {
	if va, err := pep440.Parse(a); err == nil {
		if vb, err := pep440.Parse(b); err == nil {
			return va.Compare(vb)
		}
	}
	if va, err := debversion.NewVersion(a); err == nil {
		if vb, err := debversion.NewVersion(b); err == nil {
			return va.Compare(vb)
		}
	}
	return 0
}

func readVendorVersionMarker(vendorDir, packageID string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(vendorDir, filepath.FromSlash(packageID), versionMarkerName))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func writeVendorVersionMarker(vendorDir, packageID, version string) error {
	full := filepath.Join(vendorDir, filepath.FromSlash(packageID), versionMarkerName)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(version), 0644)
}

func writeVendoredFile(vendorDir, packageID, source string, data []byte) error {
	base := source
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if base == "" {
		base = "source"
	}
	full := filepath.Join(vendorDir, filepath.FromSlash(packageID), base)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create vendor directory").
			WithCause(err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write vendored file").
			WithCause(err)
	}
	return nil
}

// compileSource fetches and compiles one source entry, returning
// (doc, true, nil) when its fingerprint is unchanged and req does not
// force a rebuild — per spec.md §4.6 this means the digest half of the
// cache hit. The source is still compiled and its TypeDefs are still
// returned so they stay in the shared type universe Merge/Assign build
// (DESIGN.md's cache-hit-scope decision: this is never a whole-pipeline
// short-circuit); a cache hit only skips re-saving the fingerprint
// record, leaving the caller to decide which files that implies can
// skip a re-write and a typecheck subprocess call.
func (d Driver) compileSource(ctx context.Context, packageID string, pkg ports.ManifestPackage, source string, req Request) (frontend.Document, bool, error) {
	if err := fingerprint.RequirePinned(pkg.Version, req.AllowUnpinned); err != nil {
		return frontend.Document{}, false, err
	}

	resolvedRef := pkg.Version
	if repoURL, ok := gitRepoRoot(source); ok {
		ref, err := d.RefResolver.ResolveRef(ctx, repoURL, pkg.Version)
		if err != nil {
			return frontend.Document{}, false, err
		}
		resolvedRef = ref
	}

	data, err := d.Fetcher.Fetch(ctx, source)
	if err != nil {
		return frontend.Document{}, false, err
	}

	options := fingerprint.QuoteOptions(map[string]string{
		"description": pkg.Description,
		"override":    pkg.PackageIDOverride,
	})
	input := fingerprint.Input{
		SourceBytes:     data,
		SourceRef:       resolvedRef,
		ManifestOptions: options,
		CompilerVersion: CompilerVersion,
	}

	hit := false
	if !req.ForceRebuild && d.Fingerprints != nil {
		if record, ok, err := d.Fingerprints.Load(packageID); err == nil && ok && record.Matches(input) {
			hit = true
			if newer, _ := fingerprint.NewerPinAvailable(record.SourceRef, resolvedRef); newer {
				log.Info().Str("package", packageID).Msg("newer pin available (not applied automatically)")
			}
		}
	}

	namespace := namespaceFor(packageID)
	version := pkg.Version
	doc, err := compileBySniffedKind(namespace, version, source, data)
	if err != nil {
		return frontend.Document{}, false, err
	}
	tagPackage(doc.Defs, packageID, pkg.Version)

	if !hit && d.Fingerprints != nil {
		record := fingerprint.Record{
			Package:         packageID,
			Source:          source,
			Digest:          fingerprint.Compute(input),
			SourceRef:       resolvedRef,
			CompilerVersion: CompilerVersion,
		}
		if err := d.Fingerprints.Save(record); err != nil {
			return frontend.Document{}, false, err
		}
	}

	return doc, hit, nil
}

// writeAll persists every planned module through the EmitterWriter
// port, continuing past per-module failures so one bad module doesn't
// block writing the rest of the package, matching
// `emitter.Writer.WritePackage`'s own aggregation shape (not reused
// directly since the port only guarantees WriteModule). skip names the
// paths compileSource found to be an unchanged fingerprint cache hit in
// full; those files are left untouched on disk.
func (d Driver) writeAll(modules map[string]*ir.Module, skip map[string]struct{}) error {
	var failures []error
	for path, module := range modules {
		if _, ok := skip[path]; ok {
			continue
		}
		if err := d.Writer.WriteModule(module); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("one or more modules failed to write").
		WithCause(errors.Join(failures...))
}

func (d Driver) typecheckAll(ctx context.Context, modules map[string]*ir.Module, skip map[string]struct{}) error {
	var failures []error
	for path := range modules {
		if _, ok := skip[path]; ok {
			continue
		}
		if err := d.Typecheck.Check(ctx, path); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", path, err))
		}
	}
	if len(failures) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("typecheck failed for one or more emitted modules").
			WithCause(errors.Join(failures...))
	}
	return nil
}

// tagPackage stamps every def with the manifest package it was
// compiled from, so buildRegistry and resolveModules can tell a
// same-package reference from a cross-package one (spec.md §3/§4.3).
func tagPackage(defs []ir.TypeDef, packageID, version string) {
	for i := range defs {
		defs[i].PackageID = packageID
		defs[i].PackageVersion = version
	}
}

// buildRegistry stages every already-planned module's types into one
// registry.Stage, merges it, and freezes the registry before any
// resolution begins, per spec.md §5's single-writer-then-frozen-read
// discipline. Each entry carries the owning package's id and version
// (tagPackage), which is what lets the resolver's cross-package branch
// fire against a real, multi-package manifest rather than only in a
// hand-built test registry.
func buildRegistry(modules map[string]*ir.Module) *registry.Registry {
	reg := registry.New()
	stage := registry.NewStage()
	for path, module := range modules {
		for _, def := range module.Types {
			stage.Add(def.Name, registry.Entry{
				PackageID:  def.PackageID,
				Version:    def.PackageVersion,
				FilePath:   path,
				SimpleName: def.Name.Name,
			})
		}
	}
	// Merge only fails when the registry is already frozen, which
	// cannot happen here: this is the sole Merge call before Freeze.
	_ = reg.Merge(stage)
	reg.Freeze()
	return reg
}

// resolveModules resolves every Reference type reachable from each
// module's top-level TypeDefs against reg, appending the imports the
// resolver creates to the module. Per spec.md §4.3 this never mutates
// the IR node's Reference — the emitter consults the module's
// Imports and local names to render a binding, not the Reference value
// itself. The resolution context's PackageID is taken from the
// module's own types (all types assigned to one file come from the
// same manifest package), so a reference into a file assigned to a
// different package is recognized as cross-package rather than
// defaulting to same-package for every module.
func resolveModules(reg *registry.Registry, modules map[string]*ir.Module) error {
	res := resolver.New(reg)
	for path, module := range modules {
		if len(module.Types) == 0 {
			continue
		}
		localNames := map[string]ir.QualifiedName{}
		for _, def := range module.Types {
			localNames[def.Name.Name] = def.Name
		}
		rctx := resolver.NewContext(module.Types[0].PackageID, module.Types[0].Name.Namespace, module.Types[0].Name.Version, path, localNames)
		for _, def := range module.Types {
			if err := walkReferences(res, rctx, def.Type); err != nil {
				return err
			}
		}
		module.Imports = rctx.Imports()
	}
	return nil
}

func walkReferences(res *resolver.Resolver, rctx *resolver.Context, t ir.Type) error {
	switch t.Kind {
	case ir.KindReference:
		_, err := res.Resolve(rctx, t.Reference, t.Origin)
		return err
	case ir.KindArray:
		return walkReferences(res, rctx, t.Array.Element)
	case ir.KindMap:
		return walkReferences(res, rctx, t.Map.Value)
	case ir.KindRecord:
		for _, field := range t.Record.Fields {
			if err := walkReferences(res, rctx, field.Type); err != nil {
				return err
			}
		}
		return nil
	case ir.KindSum:
		for _, variant := range t.Sum.Variants {
			if err := walkReferences(res, rctx, variant); err != nil {
				return err
			}
		}
		return nil
	case ir.KindRefinement:
		return walkReferences(res, rctx, t.Refinement.Base)
	default:
		return nil
	}
}

// compileBySniffedKind detects whether data is a CustomResourceDefinition,
// an OpenAPI document, or a bare JSON-Schema document and dispatches to
// the matching front-end. The manifest's TOML shape (spec.md §6) has no
// explicit per-source "kind" field, so detection searches the raw bytes
// for a `CustomResourceDefinition` or `openapi` key marker (sniffKind)
// and falls back to JSON-Schema, rather than requiring a declared kind
// up front.
func compileBySniffedKind(namespace, version, source string, data []byte) (frontend.Document, error) {
	switch sniffKind(data) {
	case sniffedCRD:
		defs, err := frontend.CompileCRD(data)
		if err != nil {
			return frontend.Document{}, err
		}
		return frontend.Document{Namespace: namespace, Version: version, Defs: defs}, nil
	case sniffedOpenAPI:
		defs, err := frontend.CompileOpenAPI(namespace, version, data)
		if err != nil {
			return frontend.Document{}, err
		}
		return frontend.Document{Namespace: namespace, Version: version, Defs: defs}, nil
	default:
		typeName := titleCaseBaseName(source)
		defs, err := frontend.CompileJSONSchema(namespace, version, typeName, data)
		if err != nil {
			return frontend.Document{}, err
		}
		return frontend.Document{Namespace: namespace, Version: version, Defs: defs}, nil
	}
}

type sniffedKind int

const (
	sniffedJSONSchema sniffedKind = iota
	sniffedCRD
	sniffedOpenAPI
)

func sniffKind(data []byte) sniffedKind {
	text := string(data)
	switch {
	case strings.Contains(text, "CustomResourceDefinition"):
		return sniffedCRD
	case strings.Contains(text, `"openapi"`) || strings.Contains(text, "openapi:"):
		return sniffedOpenAPI
	default:
		return sniffedJSONSchema
	}
}

func titleCaseBaseName(source string) string {
	base := source
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	var b strings.Builder
	upperNext := true
	for _, r := range base {
		if r == '-' || r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(toUpperRune(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Document"
	}
	return b.String()
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// packageID derives the per-package identifier used as the fingerprint
// key: the manifest entry's explicit override, or
// "<base>/<index>" when none was given.
func packageID(basePackageID string, pkg ports.ManifestPackage, index int) string {
	if pkg.PackageIDOverride != "" {
		return pkg.PackageIDOverride
	}
	return fmt.Sprintf("%s/%d", basePackageID, index)
}

// namespaceFor derives a QualifiedName namespace from a package
// identifier for the OpenAPI/JSON-Schema front-ends, which (unlike CRD
// documents) carry no group field of their own. Decision: the
// package-id's path is reused verbatim as the namespace, dot-joined in
// place of slashes, matching how the CRD front-end's group ends up
// being the last dot-segment of a dotted namespace (see
// `planner.GroupOf`).
func namespaceFor(packageID string) string {
	return strings.ReplaceAll(packageID, "/", ".")
}

// gitRepoRoot reports whether source names a git repository root
// (rather than a single raw file within one), using the same
// `.git`-suffix-or-bare-host-path heuristic real tooling uses to tell a
// clone URL from a direct fetch URL.
func gitRepoRoot(source string) (string, bool) {
	if strings.HasSuffix(source, ".git") {
		return strings.TrimSuffix(source, ".git"), true
	}
	if !strings.HasPrefix(source, "https://") && !strings.HasPrefix(source, "http://") {
		return "", false
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(source, "https://"), "http://")
	segments := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(segments) != 3 {
		return "", false
	}
	if strings.Contains(segments[2], ".") {
		return "", false
	}
	return source, true
}
