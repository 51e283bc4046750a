package adapters

import (
	"bytes"
	"os"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	toml "github.com/pelletier/go-toml/v2"

	"schemaforge/internal/ports"
)

// manifestDocument is the TOML shape of spec.md §6's manifest. Field
// names are spelled out explicitly (rather than derived) so
// `DisallowUnknownFields` can reject an unrecognized key per spec.md
// §9's "Dynamic options" closed-set requirement.
type manifestDocument struct {
	Config struct {
		OutputBase    string `toml:"output_base"`
		PackageMode   bool   `toml:"package_mode"`
		BasePackageID string `toml:"base_package_id"`
	} `toml:"config"`
	Packages []struct {
		Source            sourceField `toml:"source"`
		Version           string      `toml:"version"`
		Description       string      `toml:"description"`
		PackageIDOverride string      `toml:"package_id_override"`
	} `toml:"packages"`
}

// sourceField accepts both `source = "url"` and `source = ["a", "b"]`
// forms, per spec.md §4.7's manifest shape.
type sourceField []string

func (s *sourceField) UnmarshalTOML(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = []string{v}
	case []interface{}:
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("manifest source array must contain only strings")
			}
			*s = append(*s, str)
		}
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest source must be a string or array of strings")
	}
	return nil
}

// ManifestFileAdapter loads the TOML pinned-source manifest, following
// the same read-then-unmarshal-then-wrap idiom the rest of this
// package uses for its other file-backed adapters, with go-toml's
// strict decoder in place of yaml.v3.
type ManifestFileAdapter struct{}

// NewManifestFileAdapter returns a ManifestFileAdapter.
func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (ports.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ports.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var doc manifestDocument
	if err := decoder.Decode(&doc); err != nil {
		return ports.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid manifest: unknown key or malformed TOML").
			WithCause(err)
	}

	manifest := ports.Manifest{
		OutputBase:    doc.Config.OutputBase,
		PackageMode:   doc.Config.PackageMode,
		BasePackageID: doc.Config.BasePackageID,
	}
	for _, p := range doc.Packages {
		manifest.Packages = append(manifest.Packages, ports.ManifestPackage{
			Source:            p.Source,
			Version:           p.Version,
			Description:       p.Description,
			PackageIDOverride: p.PackageIDOverride,
		})
	}
	return manifest, nil
}

var _ ports.ManifestLoader = ManifestFileAdapter{}
