package fingerprint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIsDeterministic(t *testing.T) {
	in := Input{SourceBytes: []byte("schema bytes"), SourceRef: "v1.2.3", ManifestOptions: "package_id_override=\"foo\"\n", CompilerVersion: "0.1.0"}
	assert.Equal(t, Compute(in), Compute(in))
}

func TestComputeChangesWithAnyField(t *testing.T) {
	base := Input{SourceBytes: []byte("a"), SourceRef: "v1", ManifestOptions: "", CompilerVersion: "0.1.0"}
	mutations := map[string]func(*Input){
		"SourceBytes":     func(in *Input) { in.SourceBytes = []byte("b") },
		"SourceRef":       func(in *Input) { in.SourceRef = "v2" },
		"ManifestOptions": func(in *Input) { in.ManifestOptions = "x=\"1\"\n" },
		"CompilerVersion": func(in *Input) { in.CompilerVersion = "0.2.0" },
	}
	for field, mutate := range mutations {
		variant := base
		mutate(&variant)
		assert.NotEqual(t, Compute(base), Compute(variant), field)
	}
}

func TestRecordMatches(t *testing.T) {
	in := Input{SourceBytes: []byte("a"), SourceRef: "v1", CompilerVersion: "0.1.0"}
	record := Record{Digest: Compute(in)}
	assert.True(t, record.Matches(in))

	in.SourceRef = "v2"
	assert.False(t, record.Matches(in))
}

func TestStoreSaveAndLoadRoundTrips(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ".fingerprints"))
	record := Record{Package: "k8s_io", Source: "github.com/k8s/k8s", Digest: "abc123", SourceRef: "v1.31.2", CompilerVersion: "0.1.0"}
	require.NoError(t, store.Save(record))

	loaded, ok, err := store.Load("k8s_io")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record, loaded)
}

func TestStoreLoadMissingIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir())
	_, ok, err := store.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequirePinnedRejectsFloatingRefs(t *testing.T) {
	require.Error(t, RequirePinned("main", false))
	require.Error(t, RequirePinned("HEAD", false))
	require.NoError(t, RequirePinned("main", true))
	require.NoError(t, RequirePinned("v1.31.2", false))
}

func TestNewerPinAvailable(t *testing.T) {
	newer, err := NewerPinAvailable("1.31.0", "1.31.2")
	require.NoError(t, err)
	assert.True(t, newer)

	newer, err = NewerPinAvailable("1.31.2", "1.31.2")
	require.NoError(t, err)
	assert.False(t, newer)
}

func TestNewerPinAvailableIgnoresNonVersionRefs(t *testing.T) {
	newer, err := NewerPinAvailable("feature/my-branch", "refs/heads/other")
	require.NoError(t, err)
	assert.False(t, newer)
}
