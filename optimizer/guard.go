package optimizer

import "github.com/statlang/statc/ir"

// applyRewrites runs the ordered specialized-function rewrite table
// against call, taking the first entry whose pattern matches and whose
// proposed replacement survives the applicability guard of spec.md
// §4.6.3: the candidate name and argument types are re-queried against
// the catalog, and the rewrite is discarded -- reverting silently to the
// original expression -- if no overload matches. Rewrites never raise a
// diagnostic; an inapplicable rewrite is indistinguishable from one that
// was never tried.
func (o *Optimizer) applyRewrites(e ir.Expr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	call, ok := e.Data.(ir.FunApp[ir.Typed])
	if !ok {
		return e, false
	}
	for _, rw := range rewriteTable {
		name, args, matched := rw(call)
		if !matched {
			continue
		}
		rt, ok := o.catalog.ReturnType(name, actualsOf(args))
		if !ok {
			continue
		}
		meta := e.Meta
		meta.Type = rt.Type
		return ir.Expr[ir.Typed]{Meta: meta, Data: ir.FunApp[ir.Typed]{Kind: ir.CompilerInternal, Name: name, Args: args}}, true
	}
	return e, false
}
