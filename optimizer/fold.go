package optimizer

import (
	"math"
	"strconv"

	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/types"
)

// foldConstant implements spec.md §4.6.1: prefix and binary operators
// applied to Int/Real literal operands reduce to the literal result,
// EAnd/EOr short-circuit on a literal operand, and a TernaryIf whose
// condition is a literal reduces to whichever branch the condition
// selects. It returns ok == false when e is not a foldable shape.
func foldConstant(e ir.Expr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	switch d := e.Data.(type) {
	case ir.FunApp[ir.Typed]:
		return foldOperator(e, d)
	case ir.EAnd[ir.Typed]:
		return foldAnd(e, d)
	case ir.EOr[ir.Typed]:
		return foldOr(e, d)
	case ir.TernaryIf[ir.Typed]:
		return foldTernary(e, d)
	}
	return e, false
}

var unaryOps = map[string]func(float64) float64{
	catalog.OpPMinus: func(a float64) float64 { return -a },
	catalog.OpPPlus:  func(a float64) float64 { return a },
}

var binaryOps = map[string]func(a, b float64) float64{
	catalog.OpPlus:   func(a, b float64) float64 { return a + b },
	catalog.OpMinus:  func(a, b float64) float64 { return a - b },
	catalog.OpTimes:  func(a, b float64) float64 { return a * b },
	catalog.OpDivide: func(a, b float64) float64 { return a / b },
	catalog.OpPow:    math.Pow,
}

var comparisonOps = map[string]func(a, b float64) bool{
	catalog.OpEquals:  func(a, b float64) bool { return a == b },
	catalog.OpNEquals: func(a, b float64) bool { return a != b },
	catalog.OpLess:    func(a, b float64) bool { return a < b },
	catalog.OpLEquals: func(a, b float64) bool { return a <= b },
	catalog.OpGreater: func(a, b float64) bool { return a > b },
	catalog.OpGEquals: func(a, b float64) bool { return a >= b },
}

func foldOperator(e ir.Expr[ir.Typed], d ir.FunApp[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	switch len(d.Args) {
	case 1:
		v, litOK := litNumber(d.Args[0])
		if !litOK {
			return e, false
		}
		if d.Name == catalog.OpNot {
			return mkIntLit(e.Meta, boolToInt(v == 0)), true
		}
		fn, ok := unaryOps[d.Name]
		if !ok {
			return e, false
		}
		return mkNumberLit(e, fn(v)), true
	case 2:
		a, aOK := litNumber(d.Args[0])
		b, bOK := litNumber(d.Args[1])
		if !aOK || !bOK {
			return e, false
		}
		if cmp, ok := comparisonOps[d.Name]; ok {
			return mkIntLit(e.Meta, boolToInt(cmp(a, b))), true
		}
		if d.Name == catalog.OpDivide && e.Meta.Type.Kind() == types.Int {
			if b == 0 {
				return e, false
			}
			ai, bi := int64(a), int64(b)
			return mkLitText(e.Meta, ir.IntLit, strconv.FormatInt(ai/bi, 10)), true
		}
		if d.Name == catalog.OpModulo {
			if b == 0 {
				return e, false
			}
			ai, bi := int64(a), int64(b)
			return mkLitText(e.Meta, ir.IntLit, strconv.FormatInt(ai%bi, 10)), true
		}
		fn, ok := binaryOps[d.Name]
		if !ok {
			return e, false
		}
		result := fn(a, b)
		return mkNumberLit(e, result), true
	}
	return e, false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// mkNumberLit renders a binary fold's result according to the node's own
// already-inferred static type, so folding never changes the type the
// analyzer assigned the original expression (spec.md §8 invariant 3).
func mkNumberLit(e ir.Expr[ir.Typed], v float64) ir.Expr[ir.Typed] {
	if e.Meta.Type.Kind() == types.Int {
		return mkLitText(e.Meta, ir.IntLit, strconv.FormatInt(int64(v), 10))
	}
	return mkLitText(e.Meta, ir.RealLit, strconv.FormatFloat(v, 'g', -1, 64))
}

func mkLitText(meta ir.Typed, kind ir.LitKind, text string) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.Lit[ir.Typed]{Kind: kind, Text: text}}
}

func foldAnd(e ir.Expr[ir.Typed], d ir.EAnd[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	av, aOK := litNumber(d.A)
	if aOK && av == 0 {
		return mkIntLit(e.Meta, 0), true
	}
	bv, bOK := litNumber(d.B)
	if aOK && bOK {
		return mkIntLit(e.Meta, boolToInt(av != 0 && bv != 0)), true
	}
	return e, false
}

func foldOr(e ir.Expr[ir.Typed], d ir.EOr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	av, aOK := litNumber(d.A)
	if aOK && av != 0 {
		return mkIntLit(e.Meta, 1), true
	}
	bv, bOK := litNumber(d.B)
	if aOK && bOK {
		return mkIntLit(e.Meta, boolToInt(av != 0 || bv != 0)), true
	}
	return e, false
}

func foldTernary(e ir.Expr[ir.Typed], d ir.TernaryIf[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	cv, ok := litNumber(d.Cond)
	if !ok {
		return e, false
	}
	if cv != 0 {
		return d.Then, true
	}
	return d.Else, true
}
