package ir

// TypeDef is a top-level named Type owned by a Module. PackageID and
// PackageVersion record which manifest package the definition came
// from, so the registry and resolver can tell a same-package reference
// from a cross-package one (spec.md §3/§4.3).
type TypeDef struct {
	Name           QualifiedName
	Type           Type
	PackageID      string
	PackageVersion string
}

// Import is the (binding-identifier, relative-path, source-qualified-
// name) triple from spec.md §3. PackageID and Version are non-empty
// only for cross-package imports (spec.md §4.3's cross-package rule);
// both are empty for same-package relative imports, which use
// RelativePath instead. Origin records the referring site for
// diagnostics (§7).
type Import struct {
	Binding      string
	RelativePath string
	Source       QualifiedName
	PackageID    string
	Version      string
	Origin       Origin
}

// Module is one emitted file's worth of IR: a set of top-level named
// Types plus a set of Imports. Path is the module's location relative
// to its Package root, e.g. "apps/v1/Deployment.ncl".
type Module struct {
	Path    string
	Types   []TypeDef
	Imports []Import
}

// FindType returns the top-level TypeDef with the given simple-name, if
// any is defined directly in this module.
func (m *Module) FindType(name string) (TypeDef, bool) {
	for _, t := range m.Types {
		if t.Name.Name == name {
			return t, true
		}
	}
	return TypeDef{}, false
}

// FindImport returns the Import bound to the given identifier, if any.
func (m *Module) FindImport(binding string) (Import, bool) {
	for _, imp := range m.Imports {
		if imp.Binding == binding {
			return imp, true
		}
	}
	return Import{}, false
}

// PackageDependency is one entry of a Package-Manifest: every
// dependency is referenced by {package_id, version}, never by a
// filesystem path, per spec.md §3/§4.4.
type PackageDependency struct {
	PackageID string `json:"package_id"`
	Version   string `json:"version"`
}

// PackageManifest enumerates a Package's inter-package dependencies.
type PackageManifest struct {
	Dependencies []PackageDependency `json:"dependencies"`
}

// Package is a rooted directory of Modules with a stable external
// identifier and a version, per spec.md §3.
type Package struct {
	ID       string
	Version  string
	Modules  []*Module
	Manifest PackageManifest
}

// FindModule returns the Module at the given path, if present.
func (p *Package) FindModule(path string) (*Module, bool) {
	for _, m := range p.Modules {
		if m.Path == path {
			return m, true
		}
	}
	return nil, false
}

// Fingerprint is the 256-bit digest (hex-encoded) computed over a
// source's normalized bytes, resolved ref, manifest-entry options, and
// compiler version, per spec.md §3/§4.6.
type Fingerprint struct {
	Package string
	Source  string
	Digest  string
}
