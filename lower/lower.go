// Package lower implements the typed-AST-to-MIR boundary of spec.md
// §4.7: a function to_mir(program_typed) -> program_mir, required to
// preserve variable identities, source locations, and function kinds,
// and to hand the optimizer a tree in canonical form (every call marked
// StanLib/CompilerInternal/UserDefined, every declaration's sized type
// faithfully carried).
//
// The MIR shares the typed tree's shape exactly: both are
// ir.Program[ir.Typed]. ToMIR is therefore a mechanical translation in
// the sense spec.md §2 describes it -- no node variant changes, no
// metadata field is dropped or recomputed -- but it is not a bare
// identity function. It rebuilds the tree through the same generic
// traversal every other pass uses (ir.MapStmt/ir.MapExpr), both to hand
// back a defensively-copied program the analyzer's own tree can no
// longer alias, and to verify the canonical-form precondition the
// optimizer's applicability guard relies on: no CompilerInternal call
// may already be present, since that kind is reserved for rewrites the
// optimizer itself introduces.
package lower

import (
	"github.com/pkg/errors"

	"github.com/statlang/statc/ir"
)

// MIR is the lowered program the optimizer consumes. It is exactly the
// typed-AST's type: spec.md §4.7 describes MIR as sharing the typed
// tree's shape, so no separate node-variant set or metadata type exists
// for it.
type MIR = ir.Program[ir.Typed]

// ToMIR lowers a fully-typed program to its MIR, or reports an error if
// p is not in the canonical form the optimizer requires. p itself is
// left untouched.
func ToMIR(p *ir.Program[ir.Typed]) (*MIR, error) {
	out := &ir.Program[ir.Typed]{Name: p.Name}
	var err error
	lowerBlock := func(b *ir.Block[ir.Typed]) *ir.Block[ir.Typed] {
		if b == nil || err != nil {
			return nil
		}
		lb, lerr := lowerBlockStmts(b)
		if lerr != nil {
			err = lerr
			return nil
		}
		return lb
	}
	out.Functions = lowerBlock(p.Functions)
	out.Data = lowerBlock(p.Data)
	out.TransformedData = lowerBlock(p.TransformedData)
	out.Parameters = lowerBlock(p.Parameters)
	out.TransformedParameters = lowerBlock(p.TransformedParameters)
	out.Model = lowerBlock(p.Model)
	out.GeneratedQuantities = lowerBlock(p.GeneratedQuantities)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lowerBlockStmts(b *ir.Block[ir.Typed]) (*ir.Block[ir.Typed], error) {
	stmts := make([]ir.Stmt[ir.Typed], len(b.Stmts))
	for i, s := range b.Stmts {
		ls, err := lowerStmt(s)
		if err != nil {
			return nil, err
		}
		stmts[i] = ls
	}
	return &ir.Block[ir.Typed]{Stmts: stmts}, nil
}

// lowerStmt rebuilds s through the shared generic traversal, checking
// the canonical-form precondition on every FunApp/NRFunApp node it
// visits. ir.MapStmt's bottom-up order means a violation anywhere in
// the tree surfaces before lowerStmt returns.
func lowerStmt(s ir.Stmt[ir.Typed]) (ir.Stmt[ir.Typed], error) {
	var err error
	out := ir.MapStmt(s, func(e ir.Expr[ir.Typed]) ir.Expr[ir.Typed] {
		if verr := verifyCanonicalCall(e); verr != nil && err == nil {
			err = verr
		}
		return e
	}, func(st ir.Stmt[ir.Typed]) ir.Stmt[ir.Typed] {
		if d, ok := st.Data.(ir.NRFunApp[ir.Typed]); ok && d.Kind == ir.CompilerInternal && err == nil {
			err = errors.Errorf("lower: call to %q is already marked CompilerInternal before lowering", d.Name)
		}
		return st
	})
	if err != nil {
		return ir.Stmt[ir.Typed]{}, err
	}
	return out, nil
}

// verifyCanonicalCall reports an error if e is a call already marked
// CompilerInternal: that kind is reserved for the optimizer's own
// specialized-function rewrites (spec.md §4.6.3) and must never appear
// in the analyzer's typed output, which only ever produces StanLib or
// UserDefined calls.
func verifyCanonicalCall(e ir.Expr[ir.Typed]) error {
	d, ok := e.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Kind != ir.CompilerInternal {
		return nil
	}
	return errors.Errorf("lower: call to %q is already marked CompilerInternal before lowering", d.Name)
}
