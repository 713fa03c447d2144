package ir

import "github.com/statlang/statc/types"

// SizedKind tags the variant of a SizedType.
type SizedKind int

const (
	// SIntKind is a sized int.
	SIntKind SizedKind = iota
	// SRealKind is a sized real.
	SRealKind
	// SVectorKind is a sized vector, carrying its length expression.
	SVectorKind
	// SRowVectorKind is a sized row vector, carrying its length expression.
	SRowVectorKind
	// SMatrixKind is a sized matrix, carrying its row/column expressions.
	SMatrixKind
	// SArrayKind is a sized array, carrying its element type and length.
	SArrayKind
)

// SizedType is a declared type that carries the size expressions the
// source language allows in declarations (spec.md §3: "SizedType").
// Unlike UnsizedType, a SizedType is parametric in the metadata of the
// size expressions it carries, since those expressions go through the
// same typing and labeling passes as any other expression.
type SizedType[M any] struct {
	Kind SizedKind
	Elem *SizedType[M] // SArrayKind
	Dims []Expr[M]     // length SVectorKind/SRowVectorKind; rows,cols SMatrixKind; length SArrayKind
}

// SInt returns the sized int type.
func SInt[M any]() SizedType[M] { return SizedType[M]{Kind: SIntKind} }

// SReal returns the sized real type.
func SReal[M any]() SizedType[M] { return SizedType[M]{Kind: SRealKind} }

// SVector returns a sized vector of the given length expression.
func SVector[M any](length Expr[M]) SizedType[M] {
	return SizedType[M]{Kind: SVectorKind, Dims: []Expr[M]{length}}
}

// SRowVector returns a sized row vector of the given length expression.
func SRowVector[M any](length Expr[M]) SizedType[M] {
	return SizedType[M]{Kind: SRowVectorKind, Dims: []Expr[M]{length}}
}

// SMatrix returns a sized matrix of the given row/column expressions.
func SMatrix[M any](rows, cols Expr[M]) SizedType[M] {
	return SizedType[M]{Kind: SMatrixKind, Dims: []Expr[M]{rows, cols}}
}

// SArray returns a sized array of elem with the given length expression.
func SArray[M any](elem SizedType[M], length Expr[M]) SizedType[M] {
	return SizedType[M]{Kind: SArrayKind, Elem: &elem, Dims: []Expr[M]{length}}
}

// Unsized strips the size expressions off a SizedType, returning its
// UnsizedType per spec.md §3.
func Unsized[M any](t SizedType[M]) types.UnsizedType {
	switch t.Kind {
	case SIntKind:
		return types.NewInt()
	case SRealKind:
		return types.NewReal()
	case SVectorKind:
		return types.NewVector()
	case SRowVectorKind:
		return types.NewRowVector()
	case SMatrixKind:
		return types.NewMatrix()
	case SArrayKind:
		return types.NewArray(Unsized(*t.Elem))
	default:
		panic("unsized: unknown sized kind")
	}
}

func (k SizedKind) String() string {
	switch k {
	case SIntKind:
		return "int"
	case SRealKind:
		return "real"
	case SVectorKind:
		return "vector"
	case SRowVectorKind:
		return "row_vector"
	case SMatrixKind:
		return "matrix"
	case SArrayKind:
		return "array"
	default:
		return "?"
	}
}
