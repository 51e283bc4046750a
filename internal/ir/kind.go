// Package ir defines the algebraic intermediate representation shared by
// every schema front-end, the reference resolver, the package planner,
// and the emitter. Types here carry no behavior beyond construction,
// equality, and the traversal helpers required by the rest of the
// pipeline — front-ends build IR, the resolver rewrites References in
// place, and the emitter only reads it.
package ir

// Kind tags the algebraic variant a Type represents.
type Kind int

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindArray
	KindMap
	KindRecord
	KindSum
	KindReference
	KindRefinement
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	case KindSum:
		return "sum"
	case KindReference:
		return "reference"
	case KindRefinement:
		return "refinement"
	default:
		return "invalid"
	}
}

// PrimitiveKind enumerates the scalar kinds spec.md §3 names.
type PrimitiveKind int

const (
	PrimitiveInvalid PrimitiveKind = iota
	PrimitiveString
	PrimitiveInteger
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveNull
	PrimitiveAny
	PrimitiveBytes
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveInteger:
		return "integer"
	case PrimitiveNumber:
		return "number"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveNull:
		return "null"
	case PrimitiveAny:
		return "any"
	case PrimitiveBytes:
		return "bytes"
	default:
		return "invalid"
	}
}
