package optimizer_test

import (
	"testing"

	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/optimizer"
	"github.com/statlang/statc/types"
)

func realMeta(t types.UnsizedType) ir.Typed {
	return ir.Typed{Type: t, Ad: types.DataOnly, Origin: types.Data}
}

func realLit(text string) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: realMeta(types.NewReal()), Data: ir.Lit[ir.Typed]{Kind: ir.RealLit, Text: text}}
}

func intLit(text string) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: realMeta(types.NewInt()), Data: ir.Lit[ir.Typed]{Kind: ir.IntLit, Text: text}}
}

func typedVar(name string, t types.UnsizedType) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: ir.Typed{Type: t, Ad: types.AutoDiffable, Origin: types.Param}, Data: ir.Var[ir.Typed]{Name: name}}
}

func call(name string, t types.UnsizedType, args ...ir.Expr[ir.Typed]) ir.Expr[ir.Typed] {
	ad := types.DataOnly
	origin := types.Data
	for _, a := range args {
		ad = types.LubAd(ad, a.Meta.Ad)
		origin = types.Lub(origin, a.Meta.Origin)
	}
	return ir.Expr[ir.Typed]{Meta: ir.Typed{Type: t, Ad: ad, Origin: origin}, Data: ir.FunApp[ir.Typed]{Kind: ir.StanLib, Name: name, Args: args}}
}

func op(name string, t types.UnsizedType, args ...ir.Expr[ir.Typed]) ir.Expr[ir.Typed] {
	return call(name, t, args...)
}

func newOptimizer() *optimizer.Optimizer {
	return optimizer.New(catalog.New())
}

func real() types.UnsizedType { return types.NewReal() }

// scenario: log(1 - exp(x)) -> log1m_exp(x)
func TestLog1mExpRewrite(t *testing.T) {
	x := typedVar("x", real())
	e := call("log", real(), op(catalog.OpMinus, real(), realLit("1.0"), call("exp", real(), x)))
	got := newOptimizer().OptimizeExpr(e)
	d, ok := got.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Name != "log1m_exp" || len(d.Args) != 1 || !ir.EqualExpr(d.Args[0], x) {
		t.Fatalf("log(1 - exp(x)) did not fold to log1m_exp(x): %#v", got.Data)
	}
}

// scenario: pow(2, x) -> exp2(x); pow(x, 2) -> square(x)
func TestPowSpecializations(t *testing.T) {
	x := typedVar("x", real())

	exp2 := newOptimizer().OptimizeExpr(call("pow", real(), realLit("2.0"), x))
	d, ok := exp2.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Name != "exp2" || !ir.EqualExpr(d.Args[0], x) {
		t.Fatalf("pow(2, x) did not fold to exp2(x): %#v", exp2.Data)
	}

	square := newOptimizer().OptimizeExpr(call("pow", real(), x, realLit("2.0")))
	d, ok = square.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Name != "square" || !ir.EqualExpr(d.Args[0], x) {
		t.Fatalf("pow(x, 2) did not fold to square(x): %#v", square.Data)
	}
}

// scenario: bernoulli_lpmf(y, inv_logit(alpha + x*beta)) and the operand-order
// swap both fuse to bernoulli_logit_glm_lpmf.
func TestBernoulliLogitGLMFusion(t *testing.T) {
	y := typedVar("y", types.NewArray(types.NewInt()))
	x := typedVar("x", types.NewMatrix())
	alpha := typedVar("alpha", real())
	beta := typedVar("beta", types.NewVector())

	affine := op(catalog.OpPlus, real(), alpha, op(catalog.OpTimes, real(), x, beta))
	e := call("bernoulli_lpmf", real(), y, call("inv_logit", real(), affine))
	got := newOptimizer().OptimizeExpr(e)
	d, ok := got.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Name != "bernoulli_logit_glm_lpmf" {
		t.Fatalf("affine-first ordering did not fuse to bernoulli_logit_glm_lpmf: %#v", got.Data)
	}

	swapped := op(catalog.OpPlus, real(), op(catalog.OpTimes, real(), x, beta), alpha)
	e2 := call("bernoulli_lpmf", real(), y, call("inv_logit", real(), swapped))
	got2 := newOptimizer().OptimizeExpr(e2)
	d2, ok := got2.Data.(ir.FunApp[ir.Typed])
	if !ok || d2.Name != "bernoulli_logit_glm_lpmf" {
		t.Fatalf("affine-second ordering did not fuse to bernoulli_logit_glm_lpmf: %#v", got2.Data)
	}
}

// a rewrite that does not survive the applicability guard (no matching
// catalog overload for the proposed name/argument-type combination)
// reverts silently to the original expression rather than raising a
// diagnostic.
func TestInapplicableRewriteRevertsSilently(t *testing.T) {
	x := typedVar("x", types.NewMatrix())
	e := call("pow", real(), x, realLit("2.0"))
	got := newOptimizer().OptimizeExpr(e)
	d, ok := got.Data.(ir.FunApp[ir.Typed])
	if !ok || d.Name != "pow" {
		t.Fatalf("pow(matrix, 2) should have reverted to pow, got %#v", got.Data)
	}
}

// idempotence: eval(eval(e)) == eval(e) (spec.md §8 invariant 4).
func TestOptimizeIsIdempotent(t *testing.T) {
	x := typedVar("x", real())
	e := call("log", real(), op(catalog.OpMinus, real(), realLit("1.0"), call("exp", real(), x)))
	o := newOptimizer()
	once := o.OptimizeExpr(e)
	twice := o.OptimizeExpr(once)
	if !ir.EqualExpr(once, twice) {
		t.Fatalf("optimizer is not idempotent: once=%#v twice=%#v", once.Data, twice.Data)
	}
}

func TestConstantFoldingArithmetic(t *testing.T) {
	e := op(catalog.OpPlus, real(), realLit("1.0"), realLit("2.0"))
	got := newOptimizer().OptimizeExpr(e)
	lit, ok := got.Data.(ir.Lit[ir.Typed])
	if !ok || lit.Kind != ir.RealLit || lit.Text != "3" {
		t.Fatalf("1.0 + 2.0 did not fold to the literal 3, got %#v", got.Data)
	}
}

func TestConstantFoldingIntDivisionTruncates(t *testing.T) {
	e := op(catalog.OpDivide, types.NewInt(), intLit("7"), intLit("2"))
	got := newOptimizer().OptimizeExpr(e)
	lit, ok := got.Data.(ir.Lit[ir.Typed])
	if !ok || lit.Kind != ir.IntLit || lit.Text != "3" {
		t.Fatalf("7 / 2 did not fold to the int literal 3, got %#v", got.Data)
	}
}

func TestTernaryOnLiteralConditionReduces(t *testing.T) {
	then := realLit("1.0")
	els := realLit("2.0")
	e := ir.Expr[ir.Typed]{
		Meta: realMeta(real()),
		Data: ir.TernaryIf[ir.Typed]{Cond: intLit("1"), Then: then, Else: els},
	}
	got := newOptimizer().OptimizeExpr(e)
	if !ir.EqualExpr(got, then) {
		t.Fatalf("ternary on a truthy literal condition did not reduce to the then-branch: %#v", got.Data)
	}
}

func TestDeadBranchEliminationOnFoldedCondition(t *testing.T) {
	cond := op(catalog.OpGreater, types.NewInt(), realLit("2.0"), realLit("1.0"))
	then := ir.Stmt[ir.Typed]{Data: ir.Skip[ir.Typed]{}}
	els := ir.Stmt[ir.Typed]{Data: ir.Break[ir.Typed]{}}
	s := ir.Stmt[ir.Typed]{Data: ir.IfElse[ir.Typed]{Cond: cond, Then: then, Else: &els}}
	got := newOptimizer().OptimizeStmt(s)
	if _, ok := got.Data.(ir.Skip[ir.Typed]); !ok {
		t.Fatalf("a statically-true condition should eliminate the else branch, got %#v", got.Data)
	}
}
