package fingerprint

import (
	"encoding/json"
	"os"
	"path/filepath"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// Store persists one Record per package as `.fingerprints/<package>.json`
// side-files, grounded on `internal/adapters/sbom_writer.go`'s
// MkdirAll-then-MarshalIndent-then-WriteFile idiom.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir (typically
// "<output_base>/.fingerprints").
func NewStore(dir string) Store {
	return Store{Dir: dir}
}

func (s Store) path(packageID string) string {
	return filepath.Join(s.Dir, packageID+".json")
}

// Load reads the persisted Record for packageID. A missing file is not
// an error: it means no prior build exists, so the caller always
// regenerates.
func (s Store) Load(packageID string) (Record, bool, error) {
	data, err := os.ReadFile(s.path(packageID))
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read fingerprint file").
			WithCause(err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid fingerprint file").
			WithCause(err)
	}
	return record, true, nil
}

// Save persists record, creating the store directory if needed.
func (s Store) Save(record Record) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create fingerprint directory").
			WithCause(err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal fingerprint record").
			WithCause(err)
	}
	if err := os.WriteFile(s.path(record.Package), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write fingerprint file").
			WithCause(err)
	}
	return nil
}
