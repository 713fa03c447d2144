package ir

import (
	"fmt"
	"strings"
)

// StringExpr renders e back into source-like text. It is used by
// diagnostics (spec.md §4.5.4: "produce a typed error listing available
// signatures and supplied types") and by tests that assert on rewrite
// output, not by the emitter, which is an external boundary.
func StringExpr[M any](e Expr[M]) string {
	switch d := e.Data.(type) {
	case Var[M]:
		return d.Name
	case Lit[M]:
		if d.Kind == StrLit {
			return fmt.Sprintf("%q", d.Text)
		}
		return d.Text
	case FunApp[M]:
		return d.Name + "(" + joinExprs(d.Args) + ")"
	case CondDistApp[M]:
		return d.Name + "(" + joinExprs(d.Args) + ")"
	case TernaryIf[M]:
		return fmt.Sprintf("(%s ? %s : %s)", StringExpr(d.Cond), StringExpr(d.Then), StringExpr(d.Else))
	case EAnd[M]:
		return fmt.Sprintf("(%s && %s)", StringExpr(d.A), StringExpr(d.B))
	case EOr[M]:
		return fmt.Sprintf("(%s || %s)", StringExpr(d.A), StringExpr(d.B))
	case Indexed[M]:
		idxs := make([]string, len(d.Indices))
		for i, idx := range d.Indices {
			idxs[i] = stringIndex(idx)
		}
		return StringExpr(d.Base) + "[" + strings.Join(idxs, ", ") + "]"
	default:
		return "<?expr>"
	}
}

func joinExprs[M any](es []Expr[M]) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = StringExpr(e)
	}
	return strings.Join(parts, ", ")
}

func stringIndex[M any](idx Index[M]) string {
	switch d := idx.Data.(type) {
	case All[M]:
		return ":"
	case Single[M]:
		return StringExpr(d.E)
	case Multi[M]:
		return StringExpr(d.E)
	case Upfrom[M]:
		return StringExpr(d.E) + ":"
	case Downfrom[M]:
		return ":" + StringExpr(d.E)
	case Between[M]:
		return StringExpr(d.E1) + ":" + StringExpr(d.E2)
	default:
		return "?"
	}
}
