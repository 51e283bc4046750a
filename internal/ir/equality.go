package ir

// Equal reports structural equality between two Types: it ignores Doc
// and Origin, as spec.md §4.1 requires ("structural (ignores
// documentation/origin)").
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindPrimitive:
		return a.Primitive == b.Primitive
	case KindArray:
		return equalArray(a.Array, b.Array)
	case KindMap:
		return Equal(a.Map.Value, b.Map.Value)
	case KindRecord:
		return equalRecord(a.Record, b.Record)
	case KindSum:
		return equalSum(a.Sum, b.Sum)
	case KindReference:
		return a.Reference == b.Reference
	case KindRefinement:
		return equalRefinement(a.Refinement, b.Refinement)
	default:
		return true
	}
}

func equalArray(a, b *ArrayType) bool {
	if !Equal(a.Element, b.Element) {
		return false
	}
	return equalIntPtr(a.Min, b.Min) && equalIntPtr(a.Max, b.Max) && equalBoolPtr(a.Unique, b.Unique)
}

func equalRecord(a, b *RecordType) bool {
	if a.Open != b.Open || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if !equalField(a.Fields[i], b.Fields[i]) {
			return false
		}
	}
	return true
}

func equalField(a, b Field) bool {
	return a.Name == b.Name && a.Optional == b.Optional && Equal(a.Type, b.Type) && equalDefault(a.Default, b.Default)
}

func equalDefault(a, b *Literal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalLiteral(*a, *b)
}

func equalLiteral(a, b Literal) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case LiteralString:
		return a.Str == b.Str
	case LiteralNumber:
		return a.Num == b.Num
	case LiteralBool:
		return a.Bool == b.Bool
	case LiteralNull:
		return true
	case LiteralArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !equalLiteral(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case LiteralObject:
		if len(a.Object) != len(b.Object) {
			return false
		}
		for i := range a.Object {
			if a.Object[i].Key != b.Object[i].Key || !equalLiteral(a.Object[i].Value, b.Object[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func equalSum(a, b *SumType) bool {
	if len(a.Variants) != len(b.Variants) {
		return false
	}
	for i := range a.Variants {
		if !Equal(a.Variants[i], b.Variants[i]) {
			return false
		}
	}
	return true
}

func equalRefinement(a, b *RefinementType) bool {
	if !Equal(a.Base, b.Base) || len(a.Predicates) != len(b.Predicates) {
		return false
	}
	for i := range a.Predicates {
		if a.Predicates[i].Kind != b.Predicates[i].Kind || len(a.Predicates[i].Args) != len(b.Predicates[i].Args) {
			return false
		}
		for j := range a.Predicates[i].Args {
			if !equalLiteral(a.Predicates[i].Args[j], b.Predicates[i].Args[j]) {
				return false
			}
		}
	}
	return true
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SameIdentity reports identity equality: same QualifiedName.
func SameIdentity(a, b QualifiedName) bool {
	return a == b
}
