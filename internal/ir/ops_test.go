package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeReferencesCollectsNestedReferences(t *testing.T) {
	objectMeta := QualifiedName{Namespace: "io.k8s.apimachinery.pkg.apis.meta", Version: "v1", Name: "ObjectMeta"}
	nodeSelector := QualifiedName{Namespace: "io.k8s.api.core", Version: "v1", Name: "NodeSelector"}

	record := NewRecord([]Field{
		{Name: "metadata", Type: NewReference(objectMeta), Optional: true},
		{Name: "affinity", Type: NewArray(NewReference(nodeSelector), nil, nil, nil), Optional: true},
	}, false)

	refs := FreeReferences(record)
	assert.Len(t, refs, 2)
	_, ok := refs[objectMeta]
	assert.True(t, ok)
	_, ok = refs[nodeSelector]
	assert.True(t, ok)
}

func TestSubstituteReplacesReference(t *testing.T) {
	target := QualifiedName{Namespace: "a", Version: "v1", Name: "Foo"}
	rec := NewRecord([]Field{{Name: "x", Type: NewReference(target), Optional: true}}, false)

	replaced := Substitute(rec, func(q QualifiedName) Type {
		if q == target {
			return NewPrimitive(PrimitiveString)
		}
		return Type{}
	})

	require.Equal(t, KindPrimitive, replaced.Record.Fields[0].Type.Kind)
}

func TestMergeRecordsUnionsDisjointFields(t *testing.T) {
	a := RecordType{Fields: []Field{{Name: "x", Type: NewPrimitive(PrimitiveString), Optional: true}}}
	b := RecordType{Fields: []Field{{Name: "y", Type: NewPrimitive(PrimitiveInteger), Optional: true}}}

	merged, err := MergeRecords(a, b)
	require.NoError(t, err)
	assert.Len(t, merged.Fields, 2)
}

func TestMergeRecordsConflictingFieldType(t *testing.T) {
	a := RecordType{Fields: []Field{{Name: "x", Type: NewPrimitive(PrimitiveString), Optional: true}}}
	b := RecordType{Fields: []Field{{Name: "x", Type: NewPrimitive(PrimitiveInteger), Optional: true}}}

	_, err := MergeRecords(a, b)
	require.Error(t, err)
}

func TestMergeRecordsSameTypeAgreesOnCollision(t *testing.T) {
	a := RecordType{Fields: []Field{{Name: "x", Type: NewPrimitive(PrimitiveString), Optional: true}}}
	b := RecordType{Fields: []Field{{Name: "x", Type: NewPrimitive(PrimitiveString), Optional: false}}}

	merged, err := MergeRecords(a, b)
	require.NoError(t, err)
	require.Len(t, merged.Fields, 1)
	// merging recovers required-ness: the field is required as soon as
	// either side requires it.
	assert.False(t, merged.Fields[0].Optional)
}
