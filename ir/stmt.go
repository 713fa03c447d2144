package ir

import "github.com/statlang/statc/types"

// Stmt is a node of the statement tree, carrying metadata of type M
// (analogous to Expr's metadata but without a type: statements have no
// type of their own, per spec.md §3) and one of the variants below.
type Stmt[M any] struct {
	Meta M
	Data StmtData[M]
}

// WithMeta returns s with its metadata replaced by meta.
func (s Stmt[M]) WithMeta(meta M) Stmt[M] {
	s.Meta = meta
	return s
}

// StmtData is implemented by each statement variant.
type StmtData[M any] interface {
	stmtData()
}

// Assign is `lvalue = e` or one of its operator forms (`+=`, `*=`, ...),
// resolved by the analyzer through the catalog's operator entries and
// recorded here already desugared to a plain Assign with Op set.
type Assign[M any] struct {
	LValue Expr[M]
	Op     string // "" for plain `=`, else the catalog operator name, e.g. "Plus__"
	Rhs    Expr[M]
}

func (Assign[M]) stmtData() {}

// TargetPlusEq is `target += e`.
type TargetPlusEq[M any] struct {
	E Expr[M]
}

func (TargetPlusEq[M]) stmtData() {}

// Truncation is the optional truncation clause of a `~` sampling
// statement.
type Truncation[M any] struct {
	Lower, Upper *Expr[M]
}

// HasLower reports whether the truncation has a lower bound.
func (t Truncation[M]) HasLower() bool { return t.Lower != nil }

// HasUpper reports whether the truncation has an upper bound.
func (t Truncation[M]) HasUpper() bool { return t.Upper != nil }

// Tilde is a `lhs ~ distribution(args) T[lower, upper];` sampling
// statement (spec.md §4.5.6).
type Tilde[M any] struct {
	Arg          Expr[M]
	Distribution string
	Args         []Expr[M]
	Trunc        Truncation[M]
}

func (Tilde[M]) stmtData() {}

// NRFunApp is a function call used as a statement (no return value is
// retained; `reject(...)` is the prototypical example).
type NRFunApp[M any] struct {
	Kind FunAppKind
	Name string
	Args []Expr[M]
}

func (NRFunApp[M]) stmtData() {}

// Break exits the innermost loop.
type Break[M any] struct{}

func (Break[M]) stmtData() {}

// Continue skips to the next iteration of the innermost loop.
type Continue[M any] struct{}

func (Continue[M]) stmtData() {}

// Return is `return;` (E == nil) or `return e;`.
type Return[M any] struct {
	E *Expr[M]
}

func (Return[M]) stmtData() {}

// Skip is the empty statement.
type Skip[M any] struct{}

func (Skip[M]) stmtData() {}

// IfElse is `if (cond) then [else else_]`.
type IfElse[M any] struct {
	Cond Expr[M]
	Then Stmt[M]
	Else *Stmt[M]
}

func (IfElse[M]) stmtData() {}

// While is `while (cond) body`.
type While[M any] struct {
	Cond Expr[M]
	Body Stmt[M]
}

func (While[M]) stmtData() {}

// For is `for (loopvar in lower:upper) body`.
type For[M any] struct {
	LoopVar string
	Lower   Expr[M]
	Upper   Expr[M]
	Body    Stmt[M]
}

func (For[M]) stmtData() {}

// ForEach is `for (loopvar in seq) body`, iterating over the elements of
// an array/vector/matrix rather than an integer range.
type ForEach[M any] struct {
	LoopVar string
	Seq     Expr[M]
	Body    Stmt[M]
}

func (ForEach[M]) stmtData() {}

// Block is a scoped sequence of statements: entering it pushes a new
// symbol table frame, per spec.md §4.5.6.
type Block[M any] struct {
	Stmts []Stmt[M]
}

func (Block[M]) stmtData() {}

// SList is a flat sequence of statements with no scope of its own (used
// to splice statements together, e.g. the desugaring of a `~` statement
// into a `target +=`, without introducing a spurious nested scope).
type SList[M any] struct {
	Stmts []Stmt[M]
}

func (SList[M]) stmtData() {}

// Decl declares a new variable, with its ad-level and sized type.
type Decl[M any] struct {
	Ad   types.AdLevel
	Name string
	Type SizedType[M]
}

func (Decl[M]) stmtData() {}

// FunParam is one parameter of a FunDef.
type FunParam[M any] struct {
	Ad   types.AdLevel
	Name string
	Type SizedType[M]
}

// FunDef declares or defines a user function. A first occurrence with
// Body.Data == nil records the forward declaration's signature; a later
// occurrence with a body must match it exactly (spec.md §4.5.6).
type FunDef[M any] struct {
	Rt     types.ReturnType
	Name   string
	Params []FunParam[M]
	Body   Stmt[M] // Data == nil for a forward declaration only
}

func (FunDef[M]) stmtData() {}
