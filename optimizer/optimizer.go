// Package optimizer implements the partial evaluator of spec.md §4.6: a
// bottom-up rewrite pass over the typed program that folds constant
// subexpressions, recognizes specialized-function idioms the built-in
// catalog offers a single name for, and prunes statically-determined
// dead branches. It shares the ir.Typed metadata shape with the
// analyzer's output (spec.md §4.7: the MIR preserves the typed tree's
// shape), so it runs directly on an *ir.Program[ir.Typed] with no
// separate lowering step of its own.
package optimizer

import (
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
)

// Optimizer holds the read-only catalog the applicability guard
// re-validates every specialized-function rewrite against.
type Optimizer struct {
	catalog *catalog.Catalog
}

// New returns an Optimizer backed by cat.
func New(cat *catalog.Catalog) *Optimizer {
	return &Optimizer{catalog: cat}
}

// maxFixpointPasses bounds the per-node rewrite loop defensively. The
// rewrite set is well-founded (each accepted step strictly reduces node
// count or replaces a call by a name earlier in a fixed specialization
// order, per spec.md §4.6 and §9), so in practice this never saturates;
// the bound exists so a bug in a rewrite's termination argument makes
// the optimizer stop rewriting that node, with no error reported,
// instead of hanging.
const maxFixpointPasses = 32

// Optimize rewrites every block of p, returning a new program; p itself
// is left untouched.
func (o *Optimizer) Optimize(p *ir.Program[ir.Typed]) *ir.Program[ir.Typed] {
	out := &ir.Program[ir.Typed]{Name: p.Name}
	out.Functions = o.optimizeBlock(p.Functions)
	out.Data = o.optimizeBlock(p.Data)
	out.TransformedData = o.optimizeBlock(p.TransformedData)
	out.Parameters = o.optimizeBlock(p.Parameters)
	out.TransformedParameters = o.optimizeBlock(p.TransformedParameters)
	out.Model = o.optimizeBlock(p.Model)
	out.GeneratedQuantities = o.optimizeBlock(p.GeneratedQuantities)
	return out
}

func (o *Optimizer) optimizeBlock(b *ir.Block[ir.Typed]) *ir.Block[ir.Typed] {
	if b == nil {
		return nil
	}
	stmts := make([]ir.Stmt[ir.Typed], len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = o.OptimizeStmt(s)
	}
	return &ir.Block[ir.Typed]{Stmts: stmts}
}

// OptimizeStmt rewrites one statement and every expression it contains,
// bottom-up, to a fixpoint.
func (o *Optimizer) OptimizeStmt(s ir.Stmt[ir.Typed]) ir.Stmt[ir.Typed] {
	return ir.MapStmt(s, o.rewriteExprToFixpoint, o.rewriteDeadBranches)
}

// OptimizeExpr rewrites one expression, bottom-up, to a fixpoint. It is
// exported so tests (and, eventually, the driver) can exercise the
// partial evaluator on a bare expression without wrapping it in a
// statement.
func (o *Optimizer) OptimizeExpr(e ir.Expr[ir.Typed]) ir.Expr[ir.Typed] {
	return ir.MapExpr(e, o.rewriteExprToFixpoint, o.rewriteDeadBranches)
}

// rewriteExprToFixpoint is the fe callback MapExpr applies to every node
// after its children are already rewritten. It tries constant folding,
// then the specialized-function table, then index-literal folding, and
// repeats until none of them changes the node -- the idempotence
// property of spec.md §8 invariant 4 otherwise would not hold for a
// single rewrite pass, since one rewrite's output can itself match a
// different (earlier-in-priority) rule, e.g. `log(1 - exp(x))` folding
// to a call that a later pass must not re-expand.
func (o *Optimizer) rewriteExprToFixpoint(e ir.Expr[ir.Typed]) ir.Expr[ir.Typed] {
	cur := e
	for i := 0; i < maxFixpointPasses; i++ {
		next, changed := o.rewriteExprOnce(cur)
		if !changed {
			return cur
		}
		cur = next
	}
	return cur
}

func (o *Optimizer) rewriteExprOnce(e ir.Expr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	if folded, ok := foldConstant(e); ok && !ir.EqualExpr(folded, e) {
		return folded, true
	}
	if rewritten, ok := o.applyRewrites(e); ok && !ir.EqualExpr(rewritten, e) {
		return rewritten, true
	}
	if indexed, ok := foldIndexLiteral(e); ok && !ir.EqualExpr(indexed, e) {
		return indexed, true
	}
	return e, false
}

// rewriteDeadBranches is the fs callback: an IfElse whose condition has
// folded to a literal reduces to whichever branch the literal selects
// (dead-branch elimination, part of the overview's "MIR partial
// evaluator/optimizer" remit alongside constant folding and algebraic
// simplification).
func (o *Optimizer) rewriteDeadBranches(s ir.Stmt[ir.Typed]) ir.Stmt[ir.Typed] {
	d, ok := s.Data.(ir.IfElse[ir.Typed])
	if !ok {
		return s
	}
	v, ok := litNumber(d.Cond)
	if !ok {
		return s
	}
	if v != 0 {
		return d.Then
	}
	if d.Else != nil {
		return *d.Else
	}
	return ir.Stmt[ir.Typed]{Meta: s.Meta, Data: ir.Skip[ir.Typed]{}}
}
