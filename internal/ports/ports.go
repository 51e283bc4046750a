// Package ports declares the small, interface-only boundary between
// the core compiler (ir, frontend, resolver, planner, emitter,
// fingerprint) and everything spec.md §2 calls "external collaborator":
// fetching bytes, resolving git refs, loading the manifest, persisting
// fingerprints, writing files, and subprocessing an external
// typechecker: one small interface per external dependency,
// context.Context on every blocking call.
package ports

import (
	"context"

	"schemaforge/internal/fingerprint"
	"schemaforge/internal/ir"
)

// Fetcher materializes a pinned source (a URL or local path) into
// bytes the front-end can parse.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// RefResolver pins a manifest's version/ref string to a concrete,
// immutable identifier (a git commit), enforcing spec.md §4.6's
// URL-pinning rule.
type RefResolver interface {
	ResolveRef(ctx context.Context, repoURL, ref string) (string, error)
}

// ManifestLoader parses a top-level pinned-source manifest (spec.md
// §4.7/§6).
type ManifestLoader interface {
	Load(path string) (Manifest, error)
}

// Manifest is the parsed form of the TOML manifest, kept in ports so
// both the adapters and the driver can depend on the same shape
// without an import cycle.
type Manifest struct {
	OutputBase    string
	PackageMode   bool
	BasePackageID string
	Packages      []ManifestPackage
}

// ManifestPackage is one `[[packages]]` entry.
type ManifestPackage struct {
	Source            []string
	Version           string
	Description       string
	PackageIDOverride string
}

// FingerprintStore persists and loads per-package fingerprint records.
type FingerprintStore interface {
	Load(packageID string) (fingerprint.Record, bool, error)
	Save(record fingerprint.Record) error
}

// EmitterWriter persists a planned package's modules and its
// dependency manifest to disk (spec.md §4.4/§6).
type EmitterWriter interface {
	WriteModule(module *ir.Module) error
	WriteManifest(manifest ir.PackageManifest) error
}

// Typechecker subprocesses an external validator against emitted
// output (spec.md §2's "typecheck-by-subprocess validator", kept out of
// scope for the core and implemented purely as an adapter).
type Typechecker interface {
	Check(ctx context.Context, path string) error
}
