package emitter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"schemaforge/internal/ir"
)

// PackageManifestFileName is the package-manifest file spec.md §6's
// output layout places at <output_base>/<package>/<package-manifest-
// file>, one directory above every group/version tree.
const PackageManifestFileName = "package-manifest.json"

// Writer persists rendered modules under a package root directory: an
// ensurePath step creates the directory tree, then the full file
// contents are written in one call.
type Writer struct {
	Root string
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string) Writer {
	return Writer{Root: root}
}

// WriteModule renders and writes module to <Root>/<module.Path>.
func (w Writer) WriteModule(module *ir.Module) error {
	text, err := Render(module)
	if err != nil {
		return err
	}
	path, err := w.ensurePath(module.Path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write module").
			WithCause(err)
	}
	log.Debug().Str("path", path).Msg("module written")
	return nil
}

// WritePackage writes every module of a package, continuing past
// per-module failures and returning an aggregate error so one bad
// module doesn't block writing the rest of the package (matching
// spec.md §4.7's "surface the error but continue" driver posture).
func (w Writer) WritePackage(modules map[string]*ir.Module) error {
	var failures []error
	for _, module := range modules {
		if err := w.WriteModule(module); err != nil {
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

// WriteManifest persists a package's dependency manifest at
// <Root>/package-manifest.json (spec.md §3/§4.4/§6): every cross-
// package dependency as a {package_id, version} pair, never a
// filesystem path.
func (w Writer) WriteManifest(manifest ir.PackageManifest) error {
	path, err := w.ensurePath(PackageManifestFileName)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal package manifest").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write package manifest").
			WithCause(err)
	}
	log.Debug().Str("path", path).Msg("package manifest written")
	return nil
}

func (w Writer) ensurePath(relative string) (string, error) {
	if w.Root == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("emitter root directory is empty")
	}
	full := filepath.Join(w.Root, filepath.FromSlash(relative))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return full, nil
}
