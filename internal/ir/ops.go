package ir

import (
	"fmt"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// FreeReferences returns the set of QualifiedNames referenced anywhere
// within t, per spec.md §4.1. It is the seed operation recursive type
// discovery (spec.md §4.2) closes under.
func FreeReferences(t Type) map[QualifiedName]struct{} {
	out := map[QualifiedName]struct{}{}
	collectReferences(t, out)
	return out
}

func collectReferences(t Type, out map[QualifiedName]struct{}) {
	switch t.Kind {
	case KindArray:
		collectReferences(t.Array.Element, out)
	case KindMap:
		collectReferences(t.Map.Value, out)
	case KindRecord:
		for _, f := range t.Record.Fields {
			collectReferences(f.Type, out)
		}
	case KindSum:
		for _, v := range t.Sum.Variants {
			collectReferences(v, out)
		}
	case KindReference:
		out[t.Reference] = struct{}{}
	case KindRefinement:
		collectReferences(t.Refinement.Base, out)
	}
}

// Substitute returns a copy of t with every Reference replaced by
// replace(ref) wherever replace returns a non-zero Type; references the
// function declines (returns the zero Type for) are left untouched.
func Substitute(t Type, replace func(QualifiedName) Type) Type {
	switch t.Kind {
	case KindArray:
		elem := Substitute(t.Array.Element, replace)
		return Type{Kind: KindArray, Doc: t.Doc, Origin: t.Origin, Array: &ArrayType{
			Element: elem, Min: t.Array.Min, Max: t.Array.Max, Unique: t.Array.Unique,
		}}
	case KindMap:
		return Type{Kind: KindMap, Doc: t.Doc, Origin: t.Origin, Map: &MapType{Value: Substitute(t.Map.Value, replace)}}
	case KindRecord:
		fields := make([]Field, len(t.Record.Fields))
		for i, f := range t.Record.Fields {
			f.Type = Substitute(f.Type, replace)
			fields[i] = f
		}
		return Type{Kind: KindRecord, Doc: t.Doc, Origin: t.Origin, Record: &RecordType{Fields: fields, Open: t.Record.Open}}
	case KindSum:
		variants := make([]Type, len(t.Sum.Variants))
		for i, v := range t.Sum.Variants {
			variants[i] = Substitute(v, replace)
		}
		return Type{Kind: KindSum, Doc: t.Doc, Origin: t.Origin, Sum: &SumType{Variants: variants}}
	case KindReference:
		replacement := replace(t.Reference)
		if replacement.Kind == KindInvalid {
			return t
		}
		return replacement
	case KindRefinement:
		base := Substitute(t.Refinement.Base, replace)
		return Type{Kind: KindRefinement, Doc: t.Doc, Origin: t.Origin, Refinement: &RefinementType{Base: base, Predicates: t.Refinement.Predicates}}
	default:
		return t
	}
}

// MergeRecords performs the field-wise union spec.md §4.1 requires for
// JSON-Schema `allOf` composition: fields present in only one side pass
// through; fields present in both must be structurally equal or the
// merge fails with a ConflictingFieldType error.
func MergeRecords(a, b RecordType) (RecordType, error) {
	byName := map[string]Field{}
	var order []string
	for _, f := range a.Fields {
		byName[f.Name] = f
		order = append(order, f.Name)
	}
	for _, f := range b.Fields {
		existing, ok := byName[f.Name]
		if !ok {
			byName[f.Name] = f
			order = append(order, f.Name)
			continue
		}
		if !Equal(existing.Type, f.Type) {
			return RecordType{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("conflicting field type for %q: %s vs %s", f.Name, existing.Type.Kind, f.Type.Kind))
		}
		merged := existing
		merged.Optional = existing.Optional && f.Optional
		if merged.Doc == "" {
			merged.Doc = f.Doc
		}
		if merged.Default == nil {
			merged.Default = f.Default
		}
		byName[f.Name] = merged
	}
	fields := make([]Field, 0, len(order))
	for _, name := range order {
		fields = append(fields, byName[name])
	}
	return RecordType{Fields: fields, Open: a.Open || b.Open}, nil
}
