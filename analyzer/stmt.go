package analyzer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/symtab"
	"github.com/statlang/statc/types"
)

// typeStmts implements the sequencing half of spec.md §4.5.7: every
// statement is typed in order, regardless of whether an earlier one
// already terminates the sequence, and the sequence's own status is the
// left fold of sequence() over the per-statement statuses.
func (a *Analyzer) typeStmts(stmts []ir.Stmt[ir.Positioned]) ([]ir.Stmt[ir.Typed], returnStatus, error) {
	out := make([]ir.Stmt[ir.Typed], len(stmts))
	status := noReturn
	for i, s := range stmts {
		ts, st, err := a.typeStmt(s)
		if err != nil {
			return nil, noReturn, err
		}
		out[i] = ts
		status = sequence(status, st)
	}
	return out, status, nil
}

// typeStmt implements spec.md §4.5.6: dispatch on statement variant,
// enforcing the block-structured rules each one carries and returning
// the ir.Typed statement plus the return status it contributes to its
// enclosing sequence.
func (a *Analyzer) typeStmt(s ir.Stmt[ir.Positioned]) (ir.Stmt[ir.Typed], returnStatus, error) {
	span := s.Meta.Span
	switch d := s.Data.(type) {
	case ir.Assign[ir.Positioned]:
		return a.typeAssign(d, span)
	case ir.TargetPlusEq[ir.Positioned]:
		return a.typeTargetPlusEq(d, span)
	case ir.Tilde[ir.Positioned]:
		return a.typeTilde(d, span)
	case ir.NRFunApp[ir.Positioned]:
		return a.typeNRFunApp(d, span)
	case ir.Break[ir.Positioned]:
		if !a.ctx.inLoop {
			a.report(diag.FnConditioning, span, "break outside a loop")
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
		return mkStmt(ir.Break[ir.Typed]{}, ir.Typed{Span: span}), anyReturn, nil
	case ir.Continue[ir.Positioned]:
		if !a.ctx.inLoop {
			a.report(diag.FnConditioning, span, "continue outside a loop")
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
		return mkStmt(ir.Continue[ir.Typed]{}, ir.Typed{Span: span}), anyReturn, nil
	case ir.Return[ir.Positioned]:
		return a.typeReturn(d, span)
	case ir.Skip[ir.Positioned]:
		return mkStmt(ir.Skip[ir.Typed]{}, ir.Typed{Span: span}), noReturn, nil
	case ir.IfElse[ir.Positioned]:
		return a.typeIfElse(d, span)
	case ir.While[ir.Positioned]:
		return a.typeWhile(d, span)
	case ir.For[ir.Positioned]:
		return a.typeFor(d, span)
	case ir.ForEach[ir.Positioned]:
		return a.typeForEach(d, span)
	case ir.Block[ir.Positioned]:
		return a.typeBlockStmt(d, span)
	case ir.SList[ir.Positioned]:
		stmts, status, err := a.typeStmts(d.Stmts)
		if err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		return mkStmt(ir.SList[ir.Typed]{Stmts: stmts}, ir.Typed{Span: span}), status, nil
	case ir.Decl[ir.Positioned]:
		return a.typeDecl(d, span)
	case ir.FunDef[ir.Positioned]:
		return a.typeFunDef(d, span)
	default:
		return ir.Stmt[ir.Typed]{}, noReturn, a.fatalf(span, "typeStmt: unhandled statement variant %T", d)
	}
}

func mkStmt[M any](data ir.StmtData[M], meta M) ir.Stmt[M] {
	return ir.Stmt[M]{Meta: meta, Data: data}
}

// assignable reports whether a value of type rhs may be stored into a
// location declared with type lhs: exact equality, except that an int
// value may widen into a real-typed location (spec.md §4.1's
// assign_-prefixed SameTypeModConv rule).
func assignable(lhs, rhs types.UnsizedType) bool {
	return types.SameTypeModConv("assign_", lhs, rhs)
}

func (a *Analyzer) typeAssign(d ir.Assign[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	lvalue, err := a.typeExpr(d.LValue)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	rhs, err := a.typeExpr(d.Rhs)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if name, ok := lvalueName(d.LValue); ok {
		data, ok := a.syms.Look(name)
		if !ok {
			a.report(diag.IdentifierNotInScope, span, "%q is not in scope", name)
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
		if data.ReadOnly {
			a.report(diag.IdentifierInUse, span, "%q is read-only and cannot be assigned", name)
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
	}

	rhsType := rhs.Meta.Type
	if d.Op != "" {
		rt, ok := a.catalog.ReturnType(d.Op, []types.Actual{
			{Ad: lvalue.Meta.Ad, Type: lvalue.Meta.Type},
			{Ad: rhs.Meta.Ad, Type: rhs.Meta.Type},
		})
		if !ok || rt.Void {
			a.report(diag.IllTypedBinOp, span, "operator %q is not defined for %s and %s", d.Op, lvalue.Meta.Type, rhs.Meta.Type)
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
		rhsType = rt.Type
	}
	if !assignable(lvalue.Meta.Type, rhsType) {
		a.report(diag.IllTypedFunctionApp, span, "cannot assign %s to %s", rhsType, lvalue.Meta.Type)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}

	if name, ok := lvalueName(d.LValue); ok {
		if a.syms.IsGlobal(name) {
			data, _ := a.syms.Look(name)
			if data.Origin != a.ctx.block {
				a.report(diag.IdentifierInUse, span, "%q belongs to block %s and cannot be assigned from %s", name, data.Origin, a.ctx.block)
				return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
			}
			if lub := types.Lub(data.Origin, rhs.Meta.Origin); lub != data.Origin {
				if err := a.syms.UnsafeReplace(name, symtab.Data{Origin: lub, Type: data.Type, ReadOnly: data.ReadOnly}); err != nil {
					return ir.Stmt[ir.Typed]{}, noReturn, errors.Wrap(err, "typeAssign")
				}
			}
		}
		_ = a.syms.SetIsAssigned(name)
	}

	meta := ir.Typed{Span: span}
	data := ir.Assign[ir.Typed]{LValue: lvalue, Op: d.Op, Rhs: rhs}
	return mkStmt(data, meta), noReturn, nil
}

// lvalueName returns the bound name an lvalue ultimately resolves to
// (the base of an Indexed chain, or the Var itself), and whether the
// lvalue has a name at all.
func lvalueName(e ir.Expr[ir.Positioned]) (string, bool) {
	switch d := e.Data.(type) {
	case ir.Var[ir.Positioned]:
		return d.Name, true
	case ir.Indexed[ir.Positioned]:
		return lvalueName(d.Base)
	default:
		return "", false
	}
}

func (a *Analyzer) typeTargetPlusEq(d ir.TargetPlusEq[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	if !a.ctx.inDensityContext() {
		a.report(diag.FnTargetPlusEquals, span, "target += is only legal in the model block or an _lp function")
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	e, err := a.typeExpr(d.E)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if !e.Meta.Type.IsNumeric() {
		a.report(diag.IllTypedFunctionApp, span, "target += requires an int or real operand, got %s", e.Meta.Type)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	meta := ir.Typed{Span: span}
	return mkStmt(ir.TargetPlusEq[ir.Typed]{E: e}, meta), noReturn, nil
}

// distributionSuffixCandidates lists, in trial order, the suffixes a
// bare distribution stem is tried against to resolve a `~` statement's
// density function (spec.md §4.5.6/§4.5.3).
var distributionSuffixCandidates = []string{"_lpdf", "_lpmf", "_log"}

func (a *Analyzer) typeTilde(d ir.Tilde[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	if !a.ctx.inDensityContext() {
		a.report(diag.FnConditioning, span, "~ is only legal in the model block or an _lp function")
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if hasDistributionSuffix(d.Distribution) {
		a.report(diag.FnConditioning, span, "%q already names a density function; use its bare distribution name", d.Distribution)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	arg, err := a.typeExpr(d.Arg)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	args := make([]ir.Expr[ir.Typed], len(d.Args))
	actuals := make([]types.Actual, len(d.Args)+1)
	actuals[0] = types.Actual{Ad: arg.Meta.Ad, Type: arg.Meta.Type}
	for i, e := range d.Args {
		te, err := a.typeExpr(e)
		if err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		args[i] = te
		actuals[i+1] = types.Actual{Ad: te.Meta.Ad, Type: te.Meta.Type}
	}
	densityName, ok := a.resolveDensity(d.Distribution, actuals, span)
	if !ok {
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	trunc, err := a.typeTruncation(d.Trunc, d.Distribution, actuals[1:], span)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	meta := ir.Typed{Span: span}
	data := ir.Tilde[ir.Typed]{Arg: arg, Distribution: densityName, Args: args, Trunc: trunc}
	return mkStmt(data, meta), noReturn, nil
}

func (a *Analyzer) resolveDensity(stem string, actuals []types.Actual, span pos.Span) (string, bool) {
	for _, suffix := range distributionSuffixCandidates {
		name := stem + suffix
		if _, ok := a.catalog.ReturnType(name, actuals); ok {
			return name, true
		}
	}
	a.report(diag.IllTypedNoSuchFunction, span, "no density function matches %q with the given argument types", stem)
	return "", false
}

func (a *Analyzer) typeTruncation(t ir.Truncation[ir.Positioned], stem string, densityActuals []types.Actual, span pos.Span) (ir.Truncation[ir.Typed], error) {
	var out ir.Truncation[ir.Typed]
	if t.HasLower() {
		lo, err := a.typeExpr(*t.Lower)
		if err != nil {
			return ir.Truncation[ir.Typed]{}, err
		}
		actuals := append([]types.Actual{{Ad: lo.Meta.Ad, Type: lo.Meta.Type}}, densityActuals...)
		if _, ok := a.catalog.ReturnType(stem+"_lcdf", actuals); !ok {
			a.report(diag.IllTypedNoSuchFunction, span, "%q has no _lcdf overload for this truncation bound", stem)
			return ir.Truncation[ir.Typed]{}, errTypeFailed
		}
		out.Lower = &lo
	}
	if t.HasUpper() {
		up, err := a.typeExpr(*t.Upper)
		if err != nil {
			return ir.Truncation[ir.Typed]{}, err
		}
		actuals := append([]types.Actual{{Ad: up.Meta.Ad, Type: up.Meta.Type}}, densityActuals...)
		if _, ok := a.catalog.ReturnType(stem+"_lccdf", actuals); !ok {
			a.report(diag.IllTypedNoSuchFunction, span, "%q has no _lccdf overload for this truncation bound", stem)
			return ir.Truncation[ir.Typed]{}, errTypeFailed
		}
		out.Upper = &up
	}
	return out, nil
}

func (a *Analyzer) typeNRFunApp(d ir.NRFunApp[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	// print and reject accept any argument types; neither is registered
	// in the catalog, since their whole point is to report whatever was
	// handed to them (spec.md §4.5.6).
	if d.Name == "print" || d.Name == "reject" {
		args := make([]ir.Expr[ir.Typed], len(d.Args))
		for i, e := range d.Args {
			te, err := a.typeExpr(e)
			if err != nil {
				return ir.Stmt[ir.Typed]{}, noReturn, err
			}
			args[i] = te
		}
		meta := ir.Typed{Span: span}
		data := ir.NRFunApp[ir.Typed]{Kind: d.Kind, Name: d.Name, Args: args}
		if d.Name == "reject" {
			return mkStmt(data, meta), anyReturn, nil
		}
		return mkStmt(data, meta), noReturn, nil
	}

	if err := a.checkSuffixContext(d.Name, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	args := make([]ir.Expr[ir.Typed], len(d.Args))
	actuals := make([]types.Actual, len(d.Args))
	for i, e := range d.Args {
		te, err := a.typeExpr(e)
		if err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		args[i] = te
		actuals[i] = types.Actual{Ad: te.Meta.Ad, Type: te.Meta.Type}
	}
	rt, resolvedKind, ok := a.resolveFunApp(d.Name, actuals)
	if !ok {
		a.reportNoSuchFunction(d.Name, span)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if !rt.Void {
		a.report(diag.IllTypedNRFunction, span, "%q returns a value and cannot be used as a statement", d.Name)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	meta := ir.Typed{Span: span}
	data := ir.NRFunApp[ir.Typed]{Kind: resolvedKind, Name: d.Name, Args: args}
	return mkStmt(data, meta), noReturn, nil
}

func (a *Analyzer) typeReturn(d ir.Return[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	if !a.ctx.inFunDef {
		a.report(diag.FnConditioning, span, "return outside a function body")
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if d.E == nil {
		if !a.ctx.funIsVoid {
			a.report(diag.IllTypedIfReturnTypes, span, "bare return is only legal in a void function")
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
		meta := ir.Typed{Span: span}
		return mkStmt(ir.Return[ir.Typed]{}, meta), complete(a.ctx.funReturnType), nil
	}
	if a.ctx.funIsVoid {
		a.report(diag.IllTypedIfReturnTypes, span, "void function cannot return a value")
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	e, err := a.typeExpr(*d.E)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if !assignable(a.ctx.funReturnType, e.Meta.Type) {
		a.report(diag.IllTypedIfReturnTypes, span, "cannot return %s from a function declared to return %s", e.Meta.Type, a.ctx.funReturnType)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	meta := ir.Typed{Span: span}
	return mkStmt(ir.Return[ir.Typed]{E: &e}, meta), complete(a.ctx.funReturnType), nil
}

func (a *Analyzer) typeIfElse(d ir.IfElse[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	cond, err := a.typeExpr(d.Cond)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if !cond.Meta.Type.IsNumeric() {
		a.report(diag.IllTypedIfReturnTypes, span, "if condition must be int or real, got %s", cond.Meta.Type)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	then, thenStatus, err := a.typeStmt(d.Then)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if d.Else == nil {
		meta := ir.Typed{Span: span}
		return mkStmt(ir.IfElse[ir.Typed]{Cond: cond, Then: then}, meta), weaken(thenStatus), nil
	}
	els, elseStatus, err := a.typeStmt(*d.Else)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	status, err := joinBranches(thenStatus, elseStatus)
	if err != nil {
		a.report(diag.IllTypedIfReturnTypes, span, "if/else branches do not agree on a return type: %v", err)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	meta := ir.Typed{Span: span}
	return mkStmt(ir.IfElse[ir.Typed]{Cond: cond, Then: then, Else: &els}, meta), status, nil
}

func (a *Analyzer) typeWhile(d ir.While[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	cond, err := a.typeExpr(d.Cond)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if !cond.Meta.Type.IsNumeric() {
		a.report(diag.IllTypedIfReturnTypes, span, "while condition must be int or real, got %s", cond.Meta.Type)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	save := a.ctx
	a.ctx = a.ctx.with(func(f *ctxFlags) { f.inLoop = true })
	body, status, err := a.typeStmt(d.Body)
	a.ctx = save
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	// A loop body may run zero times, so it can never guarantee a
	// return on the path that follows the loop.
	meta := ir.Typed{Span: span}
	return mkStmt(ir.While[ir.Typed]{Cond: cond, Body: body}, meta), weaken(status), nil
}

func (a *Analyzer) typeFor(d ir.For[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	lower, err := a.typeExpr(d.Lower)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	upper, err := a.typeExpr(d.Upper)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if lower.Meta.Type.Kind() != types.Int || upper.Meta.Type.Kind() != types.Int {
		a.report(diag.InvalidIndex, span, "for loop bounds must be int, got %s and %s", lower.Meta.Type, upper.Meta.Type)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if err := a.validateIdentifier(d.LoopVar, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if err := a.checkFresh(d.LoopVar, false, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	a.syms.BeginScope()
	defer a.syms.EndScope()
	loopOrigin := types.Lub(lower.Meta.Origin, upper.Meta.Origin)
	_ = a.syms.Enter(d.LoopVar, symtab.Data{Origin: loopOrigin, Type: types.NewInt()})
	_ = a.syms.SetReadOnly(d.LoopVar)

	save := a.ctx
	a.ctx = a.ctx.with(func(f *ctxFlags) { f.inLoop = true })
	body, status, err := a.typeStmt(d.Body)
	a.ctx = save
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	meta := ir.Typed{Span: span}
	data := ir.For[ir.Typed]{LoopVar: d.LoopVar, Lower: lower, Upper: upper, Body: body}
	return mkStmt(data, meta), weaken(status), nil
}

func (a *Analyzer) typeForEach(d ir.ForEach[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	seq, err := a.typeExpr(d.Seq)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	elem, err := seqElemType(seq.Meta.Type)
	if err != nil {
		a.report(diag.InvalidIndex, span, "cannot iterate over %s: %v", seq.Meta.Type, err)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if err := a.validateIdentifier(d.LoopVar, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if err := a.checkFresh(d.LoopVar, false, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	a.syms.BeginScope()
	defer a.syms.EndScope()
	_ = a.syms.Enter(d.LoopVar, symtab.Data{Origin: seq.Meta.Origin, Type: elem})
	_ = a.syms.SetReadOnly(d.LoopVar)

	save := a.ctx
	a.ctx = a.ctx.with(func(f *ctxFlags) { f.inLoop = true })
	body, status, err := a.typeStmt(d.Body)
	a.ctx = save
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	meta := ir.Typed{Span: span}
	data := ir.ForEach[ir.Typed]{LoopVar: d.LoopVar, Seq: seq, Body: body}
	return mkStmt(data, meta), weaken(status), nil
}

// seqElemType gives the element type a foreach loop binds its loop
// variable to: the usual element type for an array, a scalar real for a
// vector or row vector, and a row vector for a matrix (iterating a
// matrix walks it row by row).
func seqElemType(t types.UnsizedType) (types.UnsizedType, error) {
	switch t.Kind() {
	case types.ArrayKind:
		return t.Elem(), nil
	case types.Vector, types.RowVector:
		return types.NewReal(), nil
	case types.Matrix:
		return types.NewRowVector(), nil
	default:
		return types.UnsizedType{}, errors.Errorf("%s is not iterable", t)
	}
}

func (a *Analyzer) typeBlockStmt(d ir.Block[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	a.syms.BeginScope()
	defer a.syms.EndScope()
	stmts, status, err := a.typeStmts(d.Stmts)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	meta := ir.Typed{Span: span}
	return mkStmt(ir.Block[ir.Typed]{Stmts: stmts}, meta), status, nil
}

func (a *Analyzer) typeDecl(d ir.Decl[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	if err := a.validateIdentifier(d.Name, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if err := a.checkFresh(d.Name, false, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	sizedDims, err := a.typeSizedDims(d.Type)
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	unsized := ir.Unsized(d.Type)
	if (a.ctx.block == types.Param || a.ctx.block == types.TParam) && types.ContainsInt(unsized) {
		a.report(diag.IdentifierInUse, span, "%q: integer-containing types are not allowed in the parameters or transformed parameters block", d.Name)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}
	if err := a.syms.Enter(d.Name, symtab.Data{Origin: a.ctx.block, Type: unsized, Unassigned: true}); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, errors.Wrap(err, "typeDecl")
	}
	meta := ir.Typed{Span: span}
	data := ir.Decl[ir.Typed]{Ad: d.Ad, Name: d.Name, Type: sizedDims}
	return mkStmt(data, meta), noReturn, nil
}

// typeSizedDims types every size expression a declared type carries
// (e.g. the N in `vector[N]`), leaving the structural shape untouched.
func (a *Analyzer) typeSizedDims(t ir.SizedType[ir.Positioned]) (ir.SizedType[ir.Typed], error) {
	out := ir.SizedType[ir.Typed]{Kind: t.Kind}
	if t.Elem != nil {
		elem, err := a.typeSizedDims(*t.Elem)
		if err != nil {
			return ir.SizedType[ir.Typed]{}, err
		}
		out.Elem = &elem
	}
	if len(t.Dims) > 0 {
		out.Dims = make([]ir.Expr[ir.Typed], len(t.Dims))
		for i, dim := range t.Dims {
			te, err := a.typeExpr(dim)
			if err != nil {
				return ir.SizedType[ir.Typed]{}, err
			}
			if te.Meta.Type.Kind() != types.Int {
				return ir.SizedType[ir.Typed]{}, a.fatalf(te.Meta.Span, "size expression must be int, got %s", te.Meta.Type)
			}
			out.Dims[i] = te
		}
	}
	return out, nil
}

func (a *Analyzer) typeFunDef(d ir.FunDef[ir.Positioned], span pos.Span) (ir.Stmt[ir.Typed], returnStatus, error) {
	if err := a.validateIdentifier(d.Name, span); err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	params := make([]types.Formal, len(d.Params))
	for i, p := range d.Params {
		params[i] = types.Formal{Ad: p.Ad, Type: ir.Unsized(p.Type)}
	}
	sig := types.NewFun(params, d.Rt)

	if existing, ok := a.funSigs[d.Name]; ok {
		if !existing.Equal(sig) {
			a.report(diag.IllTypedFunctionApp, span, "redeclaration of %q does not match its earlier signature", d.Name)
			return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
		}
	} else {
		if err := a.checkFresh(d.Name, false, span); err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		a.funSigs[d.Name] = sig
		if err := a.syms.Enter(d.Name, symtab.Data{Origin: types.Functions, Type: sig, ReadOnly: true}); err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, errors.Wrap(err, "typeFunDef")
		}
	}

	typedParams := make([]ir.FunParam[ir.Typed], len(d.Params))
	if d.Body.Data == nil {
		// Forward declaration: record the signature only.
		for i, p := range d.Params {
			sized, err := a.typeSizedDims(p.Type)
			if err != nil {
				return ir.Stmt[ir.Typed]{}, noReturn, err
			}
			typedParams[i] = ir.FunParam[ir.Typed]{Ad: p.Ad, Name: p.Name, Type: sized}
		}
		meta := ir.Typed{Span: span}
		data := ir.FunDef[ir.Typed]{Rt: d.Rt, Name: d.Name, Params: typedParams}
		return mkStmt(data, meta), noReturn, nil
	}

	a.syms.BeginScope()
	defer a.syms.EndScope()
	for i, p := range d.Params {
		if err := a.validateIdentifier(p.Name, span); err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		if err := a.checkFresh(p.Name, false, span); err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		sized, err := a.typeSizedDims(p.Type)
		if err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, err
		}
		typedParams[i] = ir.FunParam[ir.Typed]{Ad: p.Ad, Name: p.Name, Type: sized}
		if err := a.syms.Enter(p.Name, symtab.Data{Origin: types.Functions, Type: ir.Unsized(sized)}); err != nil {
			return ir.Stmt[ir.Typed]{}, noReturn, errors.Wrap(err, "typeFunDef")
		}
	}

	save := a.ctx
	a.ctx = ctxFlags{
		block:         types.Functions,
		inFunDef:      true,
		funIsVoid:     d.Rt.Void,
		funReturnType: d.Rt.Type,
		inRngFunDef:   strings.HasSuffix(d.Name, "_rng"),
		inLpFunDef:    strings.HasSuffix(d.Name, "_lp"),
	}
	body, status, err := a.typeStmt(d.Body)
	a.ctx = save
	if err != nil {
		return ir.Stmt[ir.Typed]{}, noReturn, err
	}
	if !d.Rt.Void && !status.kind.returning() {
		a.report(diag.IllTypedIfReturnTypes, span, "%q does not return on every path", d.Name)
		return ir.Stmt[ir.Typed]{}, noReturn, errTypeFailed
	}

	meta := ir.Typed{Span: span}
	data := ir.FunDef[ir.Typed]{Rt: d.Rt, Name: d.Name, Params: typedParams, Body: body}
	return mkStmt(data, meta), noReturn, nil
}

