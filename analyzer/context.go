package analyzer

import (
	"strings"

	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/types"
)

// ctxFlags is the contextual-flag record of spec.md §4.5: everything
// besides the symbol table that governs whether a given piece of syntax
// is legal at the point the walk has reached. It is copied by value at
// every push so that restoring the caller's flags after a nested walk
// is just "assign back the saved copy" -- no explicit stack needed
// beyond the analyzer's own call stack.
type ctxFlags struct {
	block types.BlockOrigin

	inFunDef      bool
	funIsVoid     bool
	funReturnType types.UnsizedType
	inRngFunDef   bool
	inLpFunDef    bool
	inLoop        bool
}

// with returns a copy of f with mutate applied, leaving f itself
// unchanged. Analyzer methods call this to scope a flag change to one
// recursive call: the caller keeps the old record in `save` and assigns
// it back with `a.ctx = save` once the nested call has returned.
func (f ctxFlags) with(mutate func(*ctxFlags)) ctxFlags {
	g := f
	mutate(&g)
	return g
}

// inDensityContext reports whether target += and ~ statements are legal
// at the current point: the model block itself, or the body of a
// user function whose name carries the _lp suffix (spec.md §4.5.6).
func (f ctxFlags) inDensityContext() bool {
	return f.block == types.Model || f.inLpFunDef
}

// checkSuffixContext implements the placement half of spec.md's
// suffix-governed function rules for `_rng` and `_lp`: an `_rng`
// function may only be called from transformed data, generated
// quantities, or another `_rng` function body; an `_lp` function may
// only be called from the model block or another `_lp` function body.
// Names without either suffix are unconstrained.
func (a *Analyzer) checkSuffixContext(name string, span pos.Span) error {
	switch {
	case strings.HasSuffix(name, "_rng"):
		allowed := a.ctx.block == types.TData || a.ctx.block == types.GQuant || a.ctx.inRngFunDef
		if !allowed {
			a.report(diag.FnRng, span, "%q may only be called from transformed data, generated quantities, or an _rng function", name)
			return errTypeFailed
		}
	case strings.HasSuffix(name, "_lp"):
		if !a.ctx.inDensityContext() {
			a.report(diag.FnConditioning, span, "%q may only be called from the model block or an _lp function", name)
			return errTypeFailed
		}
	}
	return nil
}
