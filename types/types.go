// Package types implements the unsized type lattice of the source
// language: the ad-level modifier, return types, and the block-origin
// total order, together with the conversion and compatibility
// predicates consulted by the catalog and the analyzer.
package types

import (
	"strings"

	"github.com/pkg/errors"
)

// AdLevel says whether a value participates in automatic differentiation.
type AdLevel int

const (
	// DataOnly values are compile-time-known; they never carry gradients.
	DataOnly AdLevel = iota
	// AutoDiffable values may carry gradients.
	AutoDiffable
)

func (a AdLevel) String() string {
	if a == AutoDiffable {
		return "autodiffable"
	}
	return "data"
}

// CanConvertAd reports whether a value with ad-level `from` may flow into
// a position requiring ad-level `to`. Widening is always allowed except
// from DataOnly into AutoDiffable, which would require rederiving a value
// that was never tracked for gradients in the first place.
func CanConvertAd(from, to AdLevel) bool {
	return !(from == DataOnly && to == AutoDiffable)
}

// Kind tags the variant of an UnsizedType.
type Kind int

const (
	// Int is the scalar integer type.
	Int Kind = iota
	// Real is the scalar real (floating point) type.
	Real
	// Vector is a one-dimensional column vector of reals.
	Vector
	// RowVector is a one-dimensional row vector of reals.
	RowVector
	// Matrix is a two-dimensional array of reals.
	Matrix
	// ArrayKind is an array of some element type.
	ArrayKind
	// FunKind is a function type.
	FunKind
	// MathLibraryFunction is the type of a name resolved purely through the
	// built-in catalog (not a first-class value in the language).
	MathLibraryFunction
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Real:
		return "real"
	case Vector:
		return "vector"
	case RowVector:
		return "row_vector"
	case Matrix:
		return "matrix"
	case ArrayKind:
		return "array"
	case FunKind:
		return "function"
	case MathLibraryFunction:
		return "math_library_function"
	default:
		return "?"
	}
}

// Formal is one parameter of a Fun type: its ad-level and its unsized type.
type Formal struct {
	Ad   AdLevel
	Type UnsizedType
}

// ReturnType is either Void or a returning UnsizedType.
type ReturnType struct {
	Void bool
	Type UnsizedType
}

// VoidReturn is the Void return type.
var VoidReturn = ReturnType{Void: true}

// Returning builds a ReturnType that returns t.
func Returning(t UnsizedType) ReturnType {
	return ReturnType{Type: t}
}

func (r ReturnType) String() string {
	if r.Void {
		return "void"
	}
	return r.Type.String()
}

// Equal reports whether two return types are identical.
func (r ReturnType) Equal(o ReturnType) bool {
	if r.Void != o.Void {
		return false
	}
	if r.Void {
		return true
	}
	return r.Type.Equal(o.Type)
}

// UnsizedType is a type of the source language, stripped of any size
// expressions. It is a closed variant set; NewXxx constructors are the
// only way to build one.
type UnsizedType struct {
	kind   Kind
	elem   *UnsizedType // ArrayKind
	params []Formal     // FunKind
	ret    *ReturnType  // FunKind
}

// NewInt returns the Int type.
func NewInt() UnsizedType { return UnsizedType{kind: Int} }

// NewReal returns the Real type.
func NewReal() UnsizedType { return UnsizedType{kind: Real} }

// NewVector returns the Vector type.
func NewVector() UnsizedType { return UnsizedType{kind: Vector} }

// NewRowVector returns the RowVector type.
func NewRowVector() UnsizedType { return UnsizedType{kind: RowVector} }

// NewMatrix returns the Matrix type.
func NewMatrix() UnsizedType { return UnsizedType{kind: Matrix} }

// NewArray returns an array of elem.
func NewArray(elem UnsizedType) UnsizedType {
	return UnsizedType{kind: ArrayKind, elem: &elem}
}

// NewFun returns a function type.
func NewFun(params []Formal, ret ReturnType) UnsizedType {
	return UnsizedType{kind: FunKind, params: params, ret: &ret}
}

// NewMathLibraryFunction returns the pseudo-type of a bare reference to an
// overloaded catalog name.
func NewMathLibraryFunction() UnsizedType { return UnsizedType{kind: MathLibraryFunction} }

// Kind returns the variant tag of the type.
func (t UnsizedType) Kind() Kind { return t.kind }

// Elem returns the element type of an array; panics on any other kind.
func (t UnsizedType) Elem() UnsizedType {
	if t.kind != ArrayKind {
		panic("Elem called on a non-array type")
	}
	return *t.elem
}

// Params returns the parameters of a Fun type; panics on any other kind.
func (t UnsizedType) Params() []Formal {
	if t.kind != FunKind {
		panic("Params called on a non-function type")
	}
	return t.params
}

// Returns returns the return type of a Fun type; panics on any other kind.
func (t UnsizedType) Returns() ReturnType {
	if t.kind != FunKind {
		panic("Returns called on a non-function type")
	}
	return *t.ret
}

// IsArray reports whether t is an array.
func (t UnsizedType) IsArray() bool { return t.kind == ArrayKind }

// IsNumeric reports whether t is Int or Real.
func (t UnsizedType) IsNumeric() bool { return t.kind == Int || t.kind == Real }

// String renders the type the way the source language spells it.
func (t UnsizedType) String() string {
	switch t.kind {
	case ArrayKind:
		return "array[" + t.elem.String() + "]"
	case FunKind:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			ad := ""
			if p.Ad == AutoDiffable {
				ad = "autodiff "
			}
			parts[i] = ad + p.Type.String()
		}
		return "(" + strings.Join(parts, ", ") + ") => " + t.ret.String()
	default:
		return t.kind.String()
	}
}

// Equal reports whether two unsized types are structurally identical.
func (t UnsizedType) Equal(o UnsizedType) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case ArrayKind:
		return t.elem.Equal(*o.elem)
	case FunKind:
		if !t.ret.Equal(*o.ret) {
			return false
		}
		if len(t.params) != len(o.params) {
			return false
		}
		for i := range t.params {
			if t.params[i].Ad != o.params[i].Ad {
				return false
			}
			if !t.params[i].Type.Equal(o.params[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ContainsInt reports whether t is Int, or an array whose element
// (recursively) contains Int.
func ContainsInt(t UnsizedType) bool {
	if t.kind == Int {
		return true
	}
	if t.kind == ArrayKind {
		return ContainsInt(*t.elem)
	}
	return false
}

// SameTypeModConv reports whether two unsized types are the same type up
// to implicit int->real widening. `name` governs the rule: names prefixed
// with "assign_" demand exact equality (an assignment must not silently
// narrow or widen); every other name allows t2 (the actual) to be Int
// where t1 (the formal) is Real. Fun types require an exact return type
// and pairwise-compatible parameter types with the ad-level check
// flipped: CanConvertAd runs from t1's parameter ad-level to t2's,
// the reverse of the actual-to-formal direction
// CompatibleArgumentsModConv uses for ordinary arguments.
func SameTypeModConv(name string, t1, t2 UnsizedType) bool {
	exact := strings.HasPrefix(name, "assign_")
	return sameTypeModConv(exact, t1, t2)
}

func sameTypeModConv(exact bool, t1, t2 UnsizedType) bool {
	if t1.kind == FunKind && t2.kind == FunKind {
		if !t1.ret.Equal(*t2.ret) {
			return false
		}
		if len(t1.params) != len(t2.params) {
			return false
		}
		for i := range t1.params {
			if !sameTypeModConv(exact, t1.params[i].Type, t2.params[i].Type) {
				return false
			}
			if !CanConvertAd(t1.params[i].Ad, t2.params[i].Ad) {
				return false
			}
		}
		return true
	}
	if t1.kind == t2.kind {
		if t1.kind == ArrayKind {
			return sameTypeModConv(exact, *t1.elem, *t2.elem)
		}
		return true
	}
	if exact {
		return false
	}
	return t1.kind == Real && t2.kind == Int
}

// SameTypeModArrayConv is SameTypeModConv, recursing through arrays the
// same way SameTypeModConv already does; it is kept as a distinct,
// explicitly named entry point because spec §4.1 calls it out separately.
func SameTypeModArrayConv(name string, t1, t2 UnsizedType) bool {
	return SameTypeModConv(name, t1, t2)
}

// Actual is an actual argument: its ad-level and its unsized type.
type Actual struct {
	Ad   AdLevel
	Type UnsizedType
}

// CompatibleArgumentsModConv reports whether a list of actual arguments
// can be passed to a signature with the given formal parameters: equal
// arity, pairwise SameTypeModConv on the unsized parts, and pairwise
// CanConvertAd on the ad-levels.
func CompatibleArgumentsModConv(name string, formals []Formal, actuals []Actual) bool {
	if len(formals) != len(actuals) {
		return false
	}
	for i, formal := range formals {
		actual := actuals[i]
		if !SameTypeModConv(name, formal.Type, actual.Type) {
			return false
		}
		if !CanConvertAd(actual.Ad, formal.Ad) {
			return false
		}
	}
	return true
}

// LubAd returns the least-upper-bound ad-level of two ad-levels: the
// widened one wins.
func LubAd(a, b AdLevel) AdLevel {
	if a == AutoDiffable || b == AutoDiffable {
		return AutoDiffable
	}
	return DataOnly
}

// ErrIncompatibleReturn is returned by JoinReturnType when two branches of
// a conditional return incompatible, non-unifiable types.
var ErrIncompatibleReturn = errors.New("incompatible return types")

// JoinReturnType unifies the return types of two branches of a
// conditional (or two statements in a sequence), widening Int/Real as
// SameTypeModConv would. It fails if the two types do not unify.
func JoinReturnType(a, b UnsizedType) (UnsizedType, error) {
	if a.Equal(b) {
		return a, nil
	}
	if a.kind == Int && b.kind == Real {
		return b, nil
	}
	if a.kind == Real && b.kind == Int {
		return a, nil
	}
	return UnsizedType{}, ErrIncompatibleReturn
}
