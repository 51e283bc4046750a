package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/ir"
)

func TestMergeThenFreezeThenLookup(t *testing.T) {
	r := New()
	stage := NewStage()
	name := ir.QualifiedName{Namespace: "io.k8s.apimachinery.pkg.apis.meta", Version: "v1", Name: "ObjectMeta"}
	stage.Add(name, Entry{PackageID: "k8s_io", FilePath: "meta/v1/ObjectMeta.ncl", SimpleName: "ObjectMeta"})

	require.NoError(t, r.Merge(stage))
	r.Freeze()

	entries := r.Lookup(name)
	require.Len(t, entries, 1)
	assert.Equal(t, "k8s_io", entries[0].PackageID)
}

func TestMergeAfterFreezeFails(t *testing.T) {
	r := New()
	r.Freeze()
	err := r.Merge(NewStage())
	require.Error(t, err)
}

func TestLookupAmbiguousReturnsMultipleEntries(t *testing.T) {
	r := New()
	name := ir.QualifiedName{Namespace: "a", Version: "v1", Name: "Foo"}
	s1 := NewStage()
	s1.Add(name, Entry{PackageID: "pkg-a", FilePath: "a/v1/Foo.ncl", SimpleName: "Foo"})
	s2 := NewStage()
	s2.Add(name, Entry{PackageID: "pkg-b", FilePath: "b/v1/Foo.ncl", SimpleName: "Foo"})

	require.NoError(t, r.Merge(s1))
	require.NoError(t, r.Merge(s2))
	r.Freeze()

	assert.Len(t, r.Lookup(name), 2)
}
