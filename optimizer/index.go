package optimizer

import (
	"strconv"

	"github.com/statlang/statc/ir"
)

// foldIndexLiteral implements the index-literal folding patterns of
// spec.md §4.6.2: a single literal index into a make_array(...) literal
// reduces to the selected element, and a literal Multi/Between/Upfrom/
// Downfrom index into a make_array(...) literal reduces to the
// corresponding sub-array literal.
func foldIndexLiteral(e ir.Expr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	d, ok := e.Data.(ir.Indexed[ir.Typed])
	if !ok || len(d.Indices) != 1 {
		return e, false
	}
	elems, ok := asCall(d.Base, "make_array")
	if !ok {
		return e, false
	}
	switch idx := d.Indices[0].Data.(type) {
	case ir.Single[ir.Typed]:
		i, ok := litInt(idx.E)
		if !ok || i < 1 || int(i) > len(elems) {
			return e, false
		}
		return elems[i-1], true
	case ir.Multi[ir.Typed]:
		picks, ok := asCall(idx.E, "make_array")
		if !ok {
			return e, false
		}
		sub := make([]ir.Expr[ir.Typed], 0, len(picks))
		for _, p := range picks {
			i, ok := litInt(p)
			if !ok || i < 1 || int(i) > len(elems) {
				return e, false
			}
			sub = append(sub, elems[i-1])
		}
		return ir.Expr[ir.Typed]{Meta: e.Meta, Data: ir.FunApp[ir.Typed]{Kind: ir.CompilerInternal, Name: "make_array", Args: sub}}, true
	case ir.Between[ir.Typed]:
		lo, okLo := litInt(idx.E1)
		hi, okHi := litInt(idx.E2)
		if !okLo || !okHi {
			return e, false
		}
		return subArray(e, elems, lo, hi)
	case ir.Upfrom[ir.Typed]:
		lo, ok := litInt(idx.E)
		if !ok {
			return e, false
		}
		return subArray(e, elems, lo, int64(len(elems)))
	case ir.Downfrom[ir.Typed]:
		hi, ok := litInt(idx.E)
		if !ok {
			return e, false
		}
		return subArray(e, elems, 1, hi)
	}
	return e, false
}

func litInt(e ir.Expr[ir.Typed]) (int64, bool) {
	d, ok := e.Data.(ir.Lit[ir.Typed])
	if !ok || d.Kind != ir.IntLit {
		return 0, false
	}
	v, err := strconv.ParseInt(d.Text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func subArray(e ir.Expr[ir.Typed], elems []ir.Expr[ir.Typed], lo, hi int64) (ir.Expr[ir.Typed], bool) {
	if lo < 1 || hi > int64(len(elems)) || lo > hi+1 {
		return e, false
	}
	sub := make([]ir.Expr[ir.Typed], 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		sub = append(sub, elems[i-1])
	}
	return ir.Expr[ir.Typed]{Meta: e.Meta, Data: ir.FunApp[ir.Typed]{Kind: ir.CompilerInternal, Name: "make_array", Args: sub}}, true
}
