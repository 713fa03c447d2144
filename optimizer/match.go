package optimizer

import (
	"strconv"

	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/types"
)

// asCall reports whether e is a FunApp or CondDistApp named name, returning
// its arguments. Operators are ordinary FunApp nodes keyed by the catalog
// operator names in catalog/operators.go, so this is also how the
// rewrites below recognize `+`, `-`, `*`, ... in their patterns.
func asCall(e ir.Expr[ir.Typed], name string) ([]ir.Expr[ir.Typed], bool) {
	if d, ok := e.Data.(ir.FunApp[ir.Typed]); ok && d.Name == name {
		return d.Args, true
	}
	return nil, false
}

// litNumber returns the numeric value of e if it is an Int or Real
// literal, promoting an Int literal to float64.
func litNumber(e ir.Expr[ir.Typed]) (float64, bool) {
	d, ok := e.Data.(ir.Lit[ir.Typed])
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(d.Text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// litIsNumber reports whether e is a literal equal to v.
func litIsNumber(e ir.Expr[ir.Typed], v float64) bool {
	got, ok := litNumber(e)
	return ok && got == v
}

// asUnaryCall recognizes a one-argument call to name, returning its sole
// argument.
func asUnaryCall(e ir.Expr[ir.Typed], name string) (ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(e, name, 1)
	if !ok {
		return ir.Expr[ir.Typed]{}, false
	}
	return args[0], true
}

// asCallArgs recognizes a call to name with exactly arity arguments.
func asCallArgs(e ir.Expr[ir.Typed], name string, arity int) ([]ir.Expr[ir.Typed], bool) {
	args, ok := asCall(e, name)
	if !ok || len(args) != arity {
		return nil, false
	}
	return args, true
}

func minusOf(e ir.Expr[ir.Typed]) (a, b ir.Expr[ir.Typed], ok bool) {
	args, ok := asCallArgs(e, catalog.OpMinus, 2)
	if !ok {
		return ir.Expr[ir.Typed]{}, ir.Expr[ir.Typed]{}, false
	}
	return args[0], args[1], true
}

func plusOf(e ir.Expr[ir.Typed]) (a, b ir.Expr[ir.Typed], ok bool) {
	args, ok := asCallArgs(e, catalog.OpPlus, 2)
	if !ok {
		return ir.Expr[ir.Typed]{}, ir.Expr[ir.Typed]{}, false
	}
	return args[0], args[1], true
}

func timesOf(e ir.Expr[ir.Typed]) (a, b ir.Expr[ir.Typed], ok bool) {
	args, ok := asCallArgs(e, catalog.OpTimes, 2)
	if !ok {
		return ir.Expr[ir.Typed]{}, ir.Expr[ir.Typed]{}, false
	}
	return args[0], args[1], true
}

func mkIntLit(meta ir.Typed, v int64) ir.Expr[ir.Typed] {
	m := meta
	m.Type = types.NewInt()
	return ir.Expr[ir.Typed]{Meta: m, Data: ir.Lit[ir.Typed]{Kind: ir.IntLit, Text: strconv.FormatInt(v, 10)}}
}

// actualsOf builds the catalog.ReturnType argument list from already-typed
// arguments, the shape the applicability guard (spec.md §4.6.3) re-checks
// a rewrite's candidate call against.
func actualsOf(args []ir.Expr[ir.Typed]) []types.Actual {
	out := make([]types.Actual, len(args))
	for i, a := range args {
		out[i] = types.Actual{Ad: a.Meta.Ad, Type: a.Meta.Type}
	}
	return out
}
