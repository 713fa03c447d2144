package analyzer

import (
	"sort"

	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/types"
)

// typeExpr implements spec.md §4.5.4: it infers the type, ad-level and
// origin of e, consulting the catalog and the symbol table, and
// returns the same shape rebuilt with ir.Typed metadata at every node.
func (a *Analyzer) typeExpr(e ir.Expr[ir.Positioned]) (ir.Expr[ir.Typed], error) {
	span := e.Meta.Span
	switch d := e.Data.(type) {
	case ir.Var[ir.Positioned]:
		return a.typeVar(d.Name, span)
	case ir.Lit[ir.Positioned]:
		return a.typeLit(d, span)
	case ir.FunApp[ir.Positioned]:
		return a.typeFunApp(d.Name, d.Args, span, false)
	case ir.CondDistApp[ir.Positioned]:
		if !hasDistributionSuffix(d.Name) {
			return ir.Expr[ir.Typed]{}, a.fatalf(span, "CondDistApp name %q lacks a distribution suffix", d.Name)
		}
		return a.typeFunApp(d.Name, d.Args, span, true)
	case ir.TernaryIf[ir.Positioned]:
		return a.typeTernaryIf(d, span)
	case ir.EAnd[ir.Positioned]:
		return a.typeAndOr(true, d.A, d.B, span)
	case ir.EOr[ir.Positioned]:
		return a.typeAndOr(false, d.A, d.B, span)
	case ir.Indexed[ir.Positioned]:
		return a.typeIndexed(d, span)
	default:
		return ir.Expr[ir.Typed]{}, a.fatalf(span, "typeExpr: unhandled expression variant %T", d)
	}
}

func (a *Analyzer) typeVar(name string, span pos.Span) (ir.Expr[ir.Typed], error) {
	if data, ok := a.syms.Look(name); ok {
		meta := ir.Typed{Type: data.Type, Ad: adOfOrigin(data.Origin), Origin: data.Origin, Span: span}
		return ir.Expr[ir.Typed]{Meta: meta, Data: ir.Var[ir.Typed]{Name: name}}, nil
	}
	if a.catalog.IsBuiltin(name) && !a.catalog.HasNullary(name) {
		meta := ir.Typed{Type: types.NewMathLibraryFunction(), Ad: types.DataOnly, Origin: types.MathLibrary, Span: span}
		return ir.Expr[ir.Typed]{Meta: meta, Data: ir.Var[ir.Typed]{Name: name}}, nil
	}
	a.report(diag.IdentifierNotInScope, span, "%q is not in scope", name)
	return ir.Expr[ir.Typed]{}, errTypeFailed
}

// adOfOrigin gives a symbol's ad-level from the block it was declared
// in: `data`/`transformed data` variables are compile-time-known and
// never carry gradients (spec.md §4.1); everything else may.
func adOfOrigin(origin types.BlockOrigin) types.AdLevel {
	if origin == types.Data || origin == types.TData {
		return types.DataOnly
	}
	return types.AutoDiffable
}

func (a *Analyzer) typeLit(d ir.Lit[ir.Positioned], span pos.Span) (ir.Expr[ir.Typed], error) {
	t := types.NewReal()
	if d.Kind == ir.IntLit {
		t = types.NewInt()
	}
	meta := ir.Typed{Type: t, Ad: types.DataOnly, Origin: types.Data, Span: span}
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.Lit[ir.Typed]{Kind: d.Kind, Text: d.Text}}, nil
}

// typeFunApp types the arguments, resolves name against the catalog
// then the symbol table, and builds the FunApp (or CondDistApp) node.
// isCondDist selects which IR node is rebuilt; the typing rule is
// otherwise identical between the two per spec.md §4.5.4.
func (a *Analyzer) typeFunApp(name string, args []ir.Expr[ir.Positioned], span pos.Span, isCondDist bool) (ir.Expr[ir.Typed], error) {
	if !isCondDist {
		if err := a.checkSuffixContext(name, span); err != nil {
			return ir.Expr[ir.Typed]{}, err
		}
	}
	typedArgs := make([]ir.Expr[ir.Typed], len(args))
	actuals := make([]types.Actual, len(args))
	origins := make([]types.BlockOrigin, len(args))
	for i, arg := range args {
		te, err := a.typeExpr(arg)
		if err != nil {
			return ir.Expr[ir.Typed]{}, err
		}
		typedArgs[i] = te
		actuals[i] = types.Actual{Ad: te.Meta.Ad, Type: te.Meta.Type}
		origins[i] = te.Meta.Origin
	}
	rt, resolvedKind, ok := a.resolveFunApp(name, actuals)
	if !ok {
		a.reportNoSuchFunction(name, span)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	if rt.Void {
		a.report(diag.IllTypedNRFunction, span, "%q does not return a value", name)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	origin := types.Lub(types.MathLibrary, types.LubAll(origins...))
	meta := ir.Typed{Type: rt.Type, Ad: types.AutoDiffable, Origin: origin, Span: span}
	if isCondDist {
		return ir.Expr[ir.Typed]{Meta: meta, Data: ir.CondDistApp[ir.Typed]{Name: name, Args: typedArgs}}, nil
	}
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.FunApp[ir.Typed]{Kind: resolvedKind, Name: name, Args: typedArgs}}, nil
}

// resolveFunApp queries the built-in catalog then the symbol table
// (spec.md §4.5.4), reporting which of the two resolved the call: the
// typed tree (and the MIR it is shaped identically to, spec.md §4.7)
// records a call's resolution source as ir.StanLib or ir.UserDefined,
// not whatever FunAppKind the parser guessed before any name was
// resolved.
func (a *Analyzer) resolveFunApp(name string, actuals []types.Actual) (types.ReturnType, ir.FunAppKind, bool) {
	if rt, ok := a.catalog.ReturnType(name, actuals); ok {
		return rt, ir.StanLib, true
	}
	rt, ok := a.userFunReturnType(name, actuals)
	return rt, ir.UserDefined, ok
}

// reportNoSuchFunction raises IllTypedNoSuchFunction for a call that
// resolveFunApp could not resolve. When name is not registered in the
// catalog at all (as opposed to being registered but mismatched on
// argument types), the message lists the closest-sounding known
// built-ins, since "no overload matches" reads as a typo-detection
// failure in that case rather than an arity/type mismatch.
func (a *Analyzer) reportNoSuchFunction(name string, span pos.Span) {
	if a.catalog.IsBuiltin(name) {
		a.report(diag.IllTypedNoSuchFunction, span, "no overload of %q matches the supplied argument types", name)
		return
	}
	suggestions := suggestNames(name, a.catalog.Names())
	if len(suggestions) == 0 {
		a.report(diag.IllTypedNoSuchFunction, span, "%q is not a built-in or user-defined function", name)
		return
	}
	a.report(diag.IllTypedNoSuchFunction, span, "%q is not a built-in or user-defined function; did you mean one of %v?", name, suggestions)
}

func (a *Analyzer) userFunReturnType(name string, actuals []types.Actual) (types.ReturnType, bool) {
	data, ok := a.syms.Look(name)
	if !ok || data.Type.Kind() != types.FunKind {
		return types.ReturnType{}, false
	}
	if !types.CompatibleArgumentsModConv(name, data.Type.Params(), actuals) {
		return types.ReturnType{}, false
	}
	return data.Type.Returns(), true
}

func (a *Analyzer) typeTernaryIf(d ir.TernaryIf[ir.Positioned], span pos.Span) (ir.Expr[ir.Typed], error) {
	cond, err := a.typeExpr(d.Cond)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	then, err := a.typeExpr(d.Then)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	els, err := a.typeExpr(d.Else)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	if !cond.Meta.Type.IsNumeric() {
		a.report(diag.IllTypedTernaryIf, span, "ternary condition must be int or real, got %s", cond.Meta.Type)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	unified, err := types.JoinReturnType(then.Meta.Type, els.Meta.Type)
	if err != nil {
		a.report(diag.IllTypedTernaryIf, span, "ternary branches do not unify: %s vs %s", then.Meta.Type, els.Meta.Type)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	origin := types.LubAll(cond.Meta.Origin, then.Meta.Origin, els.Meta.Origin)
	ad := types.LubAd(cond.Meta.Ad, types.LubAd(then.Meta.Ad, els.Meta.Ad))
	meta := ir.Typed{Type: unified, Ad: ad, Origin: origin, Span: span}
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.TernaryIf[ir.Typed]{Cond: cond, Then: then, Else: els}}, nil
}

func (a *Analyzer) typeAndOr(isAnd bool, aExpr, bExpr ir.Expr[ir.Positioned], span pos.Span) (ir.Expr[ir.Typed], error) {
	ta, err := a.typeExpr(aExpr)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	tb, err := a.typeExpr(bExpr)
	if err != nil {
		return ir.Expr[ir.Typed]{}, err
	}
	if !ta.Meta.Type.IsNumeric() || !tb.Meta.Type.IsNumeric() {
		a.report(diag.IllTypedBinOp, span, "&&/|| require int-or-real operands, got %s and %s", ta.Meta.Type, tb.Meta.Type)
		return ir.Expr[ir.Typed]{}, errTypeFailed
	}
	origin := types.LubAll(ta.Meta.Origin, tb.Meta.Origin)
	ad := types.LubAd(ta.Meta.Ad, tb.Meta.Ad)
	meta := ir.Typed{Type: types.NewInt(), Ad: ad, Origin: origin, Span: span}
	if isAnd {
		return ir.Expr[ir.Typed]{Meta: meta, Data: ir.EAnd[ir.Typed]{A: ta, B: tb}}, nil
	}
	return ir.Expr[ir.Typed]{Meta: meta, Data: ir.EOr[ir.Typed]{A: ta, B: tb}}, nil
}

// suggestNames returns up to 3 entries of known, sorted by
// editDistance to name, keeping only those within distance 2 -- close
// enough to plausibly be a typo rather than an unrelated name.
func suggestNames(name string, known []string) []string {
	const maxDistance = 2
	const maxSuggestions = 3
	var out []string
	dist := make(map[string]int)
	for _, k := range known {
		if d := editDistance(name, k); d <= maxDistance {
			out = append(out, k)
			dist[k] = d
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return dist[out[i]] < dist[out[j]] })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// editDistance is the ordinary Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev = cur
	}
	return prev[len(b)]
}

func (a *Analyzer) fatalf(span pos.Span, format string, args ...any) error {
	a.report(diag.FatalInternal, span, format, args...)
	return errTypeFailed
}
