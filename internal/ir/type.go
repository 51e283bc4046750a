package ir

// Origin is a source-span used for diagnostics only; it never
// participates in structural or identity equality.
type Origin struct {
	File string
	Line int
}

// Type is the tagged IR node described in spec.md §3. Exactly one of
// the variant fields is populated, selected by Kind. Doc and Origin are
// carried for documentation/diagnostics and are ignored by Equal.
type Type struct {
	Kind Kind
	Doc  string
	Origin Origin

	Primitive  PrimitiveKind
	Array      *ArrayType
	Map        *MapType
	Record     *RecordType
	Sum        *SumType
	Reference  QualifiedName
	Refinement *RefinementType
}

// ArrayType is the Array{element, min?, max?, unique?} variant.
type ArrayType struct {
	Element Type
	Min     *int
	Max     *int
	Unique  *bool
}

// MapType is the Map{value} variant.
type MapType struct {
	Value Type
}

// RecordType is the Record{fields, open?} variant.
type RecordType struct {
	Fields []Field
	Open   bool
}

// SumType is the Sum{variants} variant.
type SumType struct {
	Variants []Type
}

// RefinementType is the Refinement{base, predicates} variant, used for
// enums and other constrained-primitive forms.
type RefinementType struct {
	Base       Type
	Predicates []Predicate
}

// PredicateKind enumerates the refinement predicates front-ends emit.
type PredicateKind int

const (
	PredicateInvalid PredicateKind = iota
	PredicateEnum
	PredicatePattern
	PredicateMinLength
	PredicateMaxLength
	PredicateMinimum
	PredicateMaximum
	PredicateMultipleOf
)

// Predicate is a single refinement constraint. Args holds operator-
// specific literal arguments (e.g. the enum's allowed Literal values, or
// a single numeric/string Literal for min/max/pattern predicates).
type Predicate struct {
	Kind PredicateKind
	Args []Literal
}

// Field is a Record member: name, optional escaped form, type,
// optionality, default, and documentation, per spec.md §3.
type Field struct {
	Name         string
	EscapedName  string
	Type         Type
	Optional     bool
	Default      *Literal
	Doc          string
}

// Binding returns the identifier the emitter must use at both
// declaration and use sites: the escaped form when one was assigned,
// otherwise the original name.
func (f Field) Binding() string {
	if f.EscapedName != "" {
		return f.EscapedName
	}
	return f.Name
}

// Primitive builds a Primitive{kind} Type.
func NewPrimitive(kind PrimitiveKind) Type {
	return Type{Kind: KindPrimitive, Primitive: kind}
}

// NewArray builds an Array{element, ...} Type.
func NewArray(element Type, min, max *int, unique *bool) Type {
	return Type{Kind: KindArray, Array: &ArrayType{Element: element, Min: min, Max: max, Unique: unique}}
}

// NewMap builds a Map{value} Type.
func NewMap(value Type) Type {
	return Type{Kind: KindMap, Map: &MapType{Value: value}}
}

// NewRecord builds a Record{fields, open?} Type.
func NewRecord(fields []Field, open bool) Type {
	return Type{Kind: KindRecord, Record: &RecordType{Fields: fields, Open: open}}
}

// NewSum builds a Sum{variants} Type.
func NewSum(variants []Type) Type {
	return Type{Kind: KindSum, Sum: &SumType{Variants: variants}}
}

// NewReference builds a Reference{qualified_name} Type.
func NewReference(name QualifiedName) Type {
	return Type{Kind: KindReference, Reference: name}
}

// NewRefinement builds a Refinement{base, predicates} Type.
func NewRefinement(base Type, predicates []Predicate) Type {
	return Type{Kind: KindRefinement, Refinement: &RefinementType{Base: base, Predicates: predicates}}
}
