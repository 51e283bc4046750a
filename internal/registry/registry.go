// Package registry implements the global type registry spec.md §4.3/§9
// describes: a QualifiedName → (package, file, simple-name) table
// consulted by the resolver. Per spec.md §5, population is staged (one
// table per source pipeline) and merged behind a single-writer barrier
// before resolution begins; after Freeze, Resolve-time lookups observe
// a read-only snapshot and no entries may be added.
package registry

import (
	"sync"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ir"
)

// Entry is what a QualifiedName resolves to in the registry. Version is
// the owning package's version (not the QualifiedName's API version),
// used to render the external package-id form of a cross-package
// import.
type Entry struct {
	PackageID  string
	Version    string
	FilePath   string
	SimpleName string
}

// Registry is the frozen-after-build global type table. The zero value
// is not usable; construct with New.
type Registry struct {
	mu     sync.RWMutex
	frozen bool
	byName map[ir.QualifiedName][]Entry
}

// New returns an empty, writable Registry.
func New() *Registry {
	return &Registry{byName: map[ir.QualifiedName][]Entry{}}
}

// Stage returns a per-source staging table. Each source pipeline
// should populate its own Stage and hand it to Merge once parsing
// completes, rather than writing into the Registry directly — this is
// the single-writer discipline spec.md §5 requires when multiple
// source pipelines run in parallel.
type Stage struct {
	entries map[ir.QualifiedName]Entry
}

// NewStage returns an empty staging table.
func NewStage() *Stage {
	return &Stage{entries: map[ir.QualifiedName]Entry{}}
}

// Add records that name resolves to entry within this stage.
func (s *Stage) Add(name ir.QualifiedName, entry Entry) {
	s.entries[name] = entry
}

// Merge folds a completed Stage into the Registry. Merge must not be
// called after Freeze.
func (r *Registry) Merge(stage *Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("registry is frozen: cannot merge a new stage during resolution")
	}
	for name, entry := range stage.entries {
		r.byName[name] = append(r.byName[name], entry)
	}
	return nil
}

// Freeze closes the registry to further writes. Reference resolution
// must only begin after Freeze, per spec.md §5.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Lookup returns the candidate Entries for name. More than one entry
// means an AmbiguousType condition for the resolver to report.
func (r *Registry) Lookup(name ir.QualifiedName) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.byName[name]...)
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
