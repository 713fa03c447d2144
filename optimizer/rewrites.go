package optimizer

import (
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
)

// rewrite is one entry of the specialized-function rewrite table of
// spec.md §4.6.2: given a call already typed as ir.Typed, it either
// recognizes its own pattern in call's arguments and proposes a
// replacement call, or reports ok == false. The replacement is always
// re-validated against the catalog before being accepted (applicability
// guard, spec.md §4.6.3, in guard.go) -- a rewrite function itself never
// needs to check that its target name actually exists.
type rewrite func(call ir.FunApp[ir.Typed]) (name string, args []ir.Expr[ir.Typed], ok bool)

// rewriteTable is tried top-to-bottom; the first applicable entry wins
// (spec.md §9: "rewrite ordering follows the listed order"). More
// specialized patterns are listed before the more general ones they
// would otherwise be shadowed by -- e.g. log1m_exp before log1m.
var rewriteTable = []rewrite{
	rwLog1mExp,
	rwLog1mInvLogit,
	rwLog1m,
	rwLog1pExp,
	rwLog1p,
	rwLogDeterminant,
	rwLogDiffExp,
	rwLogSumExp,
	rwLogSumExpArray,
	rwLogFallingFactorial,
	rwLogRisingFactorial,
	rwLogInvLogit,
	rwLogSoftmax,
	rwExpm1,
	rwErfc,
	rwErf,
	rwGammaQ,
	rwGammaP,
	rwFma,
	rwExp2,
	rwSquare,
	rwVariance,
	rwSqrtFromPow,
	rwSqrt2,
	rwMultiplyLog,
	rwSquaredDistance,
	rwQuadForm,
	rwTraceGenQuadForm,
	rwTraceQuadForm,
	rwTrace,
	rwDiagPostMultiply,
	rwDiagPreMultiply,
	rwQuadFormDiag,
	rwMatrixExpMultiply,
	rwBernoulliLogitGLM,
	rwBernoulliLogit,
	rwBernoulliLogitRng,
	rwPoissonLogGLM,
	rwPoissonLog,
	rwNegBinomial2LogGLM,
	rwNegBinomial2Log,
	rwNormalIdGLM,
	rwCategoricalLogit,
	rwBinomialLogit,
	rwColumnsDotSelf,
	rwRowsDotSelf,
	rwDotSelf,
	rwInvSqrt,
	rwInvSquare,
}

func unary(args []ir.Expr[ir.Typed]) (ir.Expr[ir.Typed], bool) {
	if len(args) != 1 {
		return ir.Expr[ir.Typed]{}, false
	}
	return args[0], true
}

// log(1 - exp(x)) -> log1m_exp(x)
func rwLog1mExp(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := minusOf(arg)
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	x, ok := asUnaryCall(b, "exp")
	if !ok {
		return "", nil, false
	}
	return "log1m_exp", []ir.Expr[ir.Typed]{x}, true
}

// log(1 - inv_logit(x)) -> log1m_inv_logit(x)
func rwLog1mInvLogit(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := minusOf(arg)
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	x, ok := asUnaryCall(b, "inv_logit")
	if !ok {
		return "", nil, false
	}
	return "log1m_inv_logit", []ir.Expr[ir.Typed]{x}, true
}

// log(1 - x) -> log1m(x), tried after the more specific inner-call forms.
func rwLog1m(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := minusOf(arg)
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	return "log1m", []ir.Expr[ir.Typed]{b}, true
}

// log(1 + exp(x)) -> log1p_exp(x)
func rwLog1pExp(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := plusOf(arg)
	if !ok {
		return "", nil, false
	}
	if litIsNumber(a, 1) {
		if x, ok := asUnaryCall(b, "exp"); ok {
			return "log1p_exp", []ir.Expr[ir.Typed]{x}, true
		}
	}
	if litIsNumber(b, 1) {
		if x, ok := asUnaryCall(a, "exp"); ok {
			return "log1p_exp", []ir.Expr[ir.Typed]{x}, true
		}
	}
	return "", nil, false
}

// log(1 + x) -> log1p(x)
func rwLog1p(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := plusOf(arg)
	if !ok {
		return "", nil, false
	}
	if litIsNumber(a, 1) {
		return "log1p", []ir.Expr[ir.Typed]{b}, true
	}
	if litIsNumber(b, 1) {
		return "log1p", []ir.Expr[ir.Typed]{a}, true
	}
	return "", nil, false
}

// log(det(x)) -> log_determinant(x)
func rwLogDeterminant(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	x, ok := asUnaryCall(arg, "det")
	if !ok {
		return "", nil, false
	}
	return "log_determinant", []ir.Expr[ir.Typed]{x}, true
}

// log(exp(x) - exp(y)) -> log_diff_exp(x, y)
func rwLogDiffExp(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := minusOf(arg)
	if !ok {
		return "", nil, false
	}
	x, okx := asUnaryCall(a, "exp")
	y, oky := asUnaryCall(b, "exp")
	if !okx || !oky {
		return "", nil, false
	}
	return "log_diff_exp", []ir.Expr[ir.Typed]{x, y}, true
}

// log(exp(x) + exp(y)) -> log_sum_exp(x, y)
func rwLogSumExp(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	a, b, ok := plusOf(arg)
	if !ok {
		return "", nil, false
	}
	x, okx := asUnaryCall(a, "exp")
	y, oky := asUnaryCall(b, "exp")
	if !okx || !oky {
		return "", nil, false
	}
	return "log_sum_exp", []ir.Expr[ir.Typed]{x, y}, true
}

// log(sum(exp(l))) -> log_sum_exp(l), the array/vector-argument form.
func rwLogSumExpArray(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	s, ok := asCallArgs(arg, "sum", 1)
	if !ok {
		return "", nil, false
	}
	l, ok := asUnaryCall(s[0], "exp")
	if !ok {
		return "", nil, false
	}
	return "log_sum_exp", []ir.Expr[ir.Typed]{l}, true
}

// log(falling_factorial(a, b)) -> log_falling_factorial(a, b)
func rwLogFallingFactorial(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	args, ok := asCallArgs(arg, "falling_factorial", 2)
	if !ok {
		return "", nil, false
	}
	return "log_falling_factorial", args, true
}

// log(rising_factorial(a, b)) -> log_rising_factorial(a, b)
func rwLogRisingFactorial(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	args, ok := asCallArgs(arg, "rising_factorial", 2)
	if !ok {
		return "", nil, false
	}
	return "log_rising_factorial", args, true
}

// log(inv_logit(x)) -> log_inv_logit(x)
func rwLogInvLogit(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	x, ok := asUnaryCall(arg, "inv_logit")
	if !ok {
		return "", nil, false
	}
	return "log_inv_logit", []ir.Expr[ir.Typed]{x}, true
}

// log(softmax(x)) -> log_softmax(x)
func rwLogSoftmax(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "log" {
		return "", nil, false
	}
	arg, ok := unary(call.Args)
	if !ok {
		return "", nil, false
	}
	x, ok := asUnaryCall(arg, "softmax")
	if !ok {
		return "", nil, false
	}
	return "log_softmax", []ir.Expr[ir.Typed]{x}, true
}

// exp(x) - 1 -> expm1(x)
func rwExpm1(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := minusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok || !litIsNumber(b, 1) {
		return "", nil, false
	}
	x, ok := asUnaryCall(a, "exp")
	if !ok {
		return "", nil, false
	}
	return "expm1", []ir.Expr[ir.Typed]{x}, true
}

// 1 - erf(x) -> erfc(x)
func rwErfc(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := minusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	x, ok := asUnaryCall(b, "erf")
	if !ok {
		return "", nil, false
	}
	return "erfc", []ir.Expr[ir.Typed]{x}, true
}

// 1 - erfc(x) -> erf(x)
func rwErf(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := minusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	x, ok := asUnaryCall(b, "erfc")
	if !ok {
		return "", nil, false
	}
	return "erf", []ir.Expr[ir.Typed]{x}, true
}

// 1 - gamma_p(a, x) -> gamma_q(a, x)
func rwGammaQ(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := minusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	args, ok := asCallArgs(b, "gamma_p", 2)
	if !ok {
		return "", nil, false
	}
	return "gamma_q", args, true
}

// 1 - gamma_q(a, x) -> gamma_p(a, x)
func rwGammaP(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := minusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok || !litIsNumber(a, 1) {
		return "", nil, false
	}
	args, ok := asCallArgs(b, "gamma_q", 2)
	if !ok {
		return "", nil, false
	}
	return "gamma_p", args, true
}

// x*y + z -> fma(x, y, z)
func rwFma(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := plusOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	if x, y, ok := timesOf(a); ok {
		return "fma", []ir.Expr[ir.Typed]{x, y, b}, true
	}
	if x, y, ok := timesOf(b); ok {
		return "fma", []ir.Expr[ir.Typed]{x, y, a}, true
	}
	return "", nil, false
}

// pow(2, x) -> exp2(x)
func rwExp2(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "pow", 2)
	if !ok || !litIsNumber(args[0], 2) {
		return "", nil, false
	}
	return "exp2", []ir.Expr[ir.Typed]{args[1]}, true
}

// pow(x, 2) -> square(x)
func rwSquare(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "pow", 2)
	if !ok || !litIsNumber(args[1], 2) {
		return "", nil, false
	}
	return "square", []ir.Expr[ir.Typed]{args[0]}, true
}

// square(sd(x)) -> variance(x)
func rwVariance(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "square", 1)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(args[0], "sd", 1)
	if !ok {
		return "", nil, false
	}
	return "variance", inner, true
}

// pow(x, 0.5) -> sqrt(x)
func rwSqrtFromPow(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "pow", 2)
	if !ok || !litIsNumber(args[1], 0.5) {
		return "", nil, false
	}
	return "sqrt", []ir.Expr[ir.Typed]{args[0]}, true
}

// sqrt(2) -> sqrt2()
func rwSqrt2(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "sqrt", 1)
	if !ok || !litIsNumber(args[0], 2) {
		return "", nil, false
	}
	return "sqrt2", nil, true
}

// x * log(y) -> multiply_log(x, y)
func rwMultiplyLog(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	x, y, ok := timesOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	arg, ok := asUnaryCall(y, "log")
	if !ok {
		return "", nil, false
	}
	return "multiply_log", []ir.Expr[ir.Typed]{x, arg}, true
}

// dot_self(x - y) -> squared_distance(x, y)
func rwSquaredDistance(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	arg, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "dot_self", 1)
	if !ok {
		return "", nil, false
	}
	x, y, ok := minusOf(arg[0])
	if !ok {
		return "", nil, false
	}
	return "squared_distance", []ir.Expr[ir.Typed]{x, y}, true
}

// transpose(b) * a * b -> quad_form(a, b)
func rwQuadForm(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	left, b2, ok := timesOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	tb, a, ok := timesOf(left)
	if !ok {
		return "", nil, false
	}
	b1, ok := asUnaryCall(tb, catalog.OpTranspose)
	if !ok || !ir.EqualExpr(b1, b2) {
		return "", nil, false
	}
	return "quad_form", []ir.Expr[ir.Typed]{a, b2}, true
}

// trace(d * quad_form(a, b)) -> trace_gen_quad_form(d, a, b)
func rwTraceGenQuadForm(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	arg, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "trace", 1)
	if !ok {
		return "", nil, false
	}
	d, qf, ok := timesOf(arg[0])
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(qf, "quad_form", 2)
	if !ok {
		return "", nil, false
	}
	return "trace_gen_quad_form", []ir.Expr[ir.Typed]{d, inner[0], inner[1]}, true
}

// trace(quad_form(a, b)) -> trace_quad_form(a, b)
func rwTraceQuadForm(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	arg, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "trace", 1)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(arg[0], "quad_form", 2)
	if !ok {
		return "", nil, false
	}
	return "trace_quad_form", inner, true
}

// sum(diagonal(x)) -> trace(x)
func rwTrace(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	arg, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "sum", 1)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(arg[0], "diagonal", 1)
	if !ok {
		return "", nil, false
	}
	return "trace", inner, true
}

// m * diag_matrix(v) -> diag_post_multiply(m, v)
func rwDiagPostMultiply(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	m, v, ok := timesOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(v, "diag_matrix", 1)
	if !ok {
		return "", nil, false
	}
	return "diag_post_multiply", []ir.Expr[ir.Typed]{m, inner[0]}, true
}

// diag_matrix(v) * m -> diag_pre_multiply(v, m)
func rwDiagPreMultiply(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	v, m, ok := timesOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(v, "diag_matrix", 1)
	if !ok {
		return "", nil, false
	}
	return "diag_pre_multiply", []ir.Expr[ir.Typed]{inner[0], m}, true
}

// quad_form(m, diag_matrix(v)) -> quad_form_diag(m, v)
func rwQuadFormDiag(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "quad_form", 2)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(args[1], "diag_matrix", 1)
	if !ok {
		return "", nil, false
	}
	return "quad_form_diag", []ir.Expr[ir.Typed]{args[0], inner[0]}, true
}

// matrix_exp(a) * b -> matrix_exp_multiply(a, b)
func rwMatrixExpMultiply(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	a, b, ok := timesOf(ir.Expr[ir.Typed]{Data: call})
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(a, "matrix_exp", 1)
	if !ok {
		return "", nil, false
	}
	if tArgs, ok := timesOf2(inner[0]); ok {
		return "scale_matrix_exp_multiply", []ir.Expr[ir.Typed]{tArgs[0], tArgs[1], b}, true
	}
	return "matrix_exp_multiply", []ir.Expr[ir.Typed]{inner[0], b}, true
}

func timesOf2(e ir.Expr[ir.Typed]) ([2]ir.Expr[ir.Typed], bool) {
	a, b, ok := timesOf(e)
	return [2]ir.Expr[ir.Typed]{a, b}, ok
}

// bernoulli_lpmf(y, inv_logit(z)) -> bernoulli_logit_lpmf(y, z) (compact
// equivalence rewrite, not a GLM fusion: z need not be affine).
func rwBernoulliLogit(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "bernoulli_lpmf" || len(call.Args) != 2 {
		return "", nil, false
	}
	z, ok := asUnaryCall(call.Args[1], "inv_logit")
	if !ok {
		return "", nil, false
	}
	return "bernoulli_logit_lpmf", []ir.Expr[ir.Typed]{call.Args[0], z}, true
}

// bernoulli_lpmf(y, inv_logit(alpha + x*beta)) -> bernoulli_logit_glm_lpmf(y, x, alpha, beta),
// tried both operand orderings of the affine sum; a bare x*beta gets an
// int literal 0 as alpha (see affineOf).
func rwBernoulliLogitGLM(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "bernoulli_lpmf" || len(call.Args) != 2 {
		return "", nil, false
	}
	z, ok := asUnaryCall(call.Args[1], "inv_logit")
	if !ok {
		return "", nil, false
	}
	alpha, beta, x, ok := affineOf(z)
	if !ok {
		return "", nil, false
	}
	return "bernoulli_logit_glm_lpmf", []ir.Expr[ir.Typed]{call.Args[0], x, alpha, beta}, true
}

// affineOf recognizes `alpha + x*beta`, `x*beta + alpha`, and bare
// `x*beta` (alpha == 0, built as an int literal with z's metadata so the
// zero-alpha GLM overload still receives a well-typed argument).
func affineOf(z ir.Expr[ir.Typed]) (alpha, beta, x ir.Expr[ir.Typed], ok bool) {
	if a, b, ok := plusOf(z); ok {
		if xx, bb, ok := timesOf(b); ok {
			return a, bb, xx, true
		}
		if xx, bb, ok := timesOf(a); ok {
			return b, bb, xx, true
		}
	}
	if xx, bb, ok := timesOf(z); ok {
		return mkIntLit(z.Meta, 0), bb, xx, true
	}
	return ir.Expr[ir.Typed]{}, ir.Expr[ir.Typed]{}, ir.Expr[ir.Typed]{}, false
}

// bernoulli_rng(inv_logit(alpha)) -> bernoulli_logit_rng(alpha)
func rwBernoulliLogitRng(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "bernoulli_rng", 1)
	if !ok {
		return "", nil, false
	}
	alpha, ok := asUnaryCall(args[0], "inv_logit")
	if !ok {
		return "", nil, false
	}
	return "bernoulli_logit_rng", []ir.Expr[ir.Typed]{alpha}, true
}

// poisson_log_lpmf(y, alpha + x*beta) -> poisson_log_glm_lpmf(y, x, alpha, beta)
func rwPoissonLogGLM(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "poisson_log_lpmf" || len(call.Args) != 2 {
		return "", nil, false
	}
	alpha, beta, x, ok := affineOf(call.Args[1])
	if !ok {
		return "", nil, false
	}
	return "poisson_log_glm_lpmf", []ir.Expr[ir.Typed]{call.Args[0], x, alpha, beta}, true
}

// poisson_lpmf(y, exp(eta)) -> poisson_log_lpmf(y, eta)
func rwPoissonLog(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "poisson_lpmf" || len(call.Args) != 2 {
		return "", nil, false
	}
	eta, ok := asUnaryCall(call.Args[1], "exp")
	if !ok {
		return "", nil, false
	}
	return "poisson_log_lpmf", []ir.Expr[ir.Typed]{call.Args[0], eta}, true
}

// neg_binomial_2_log_lpmf(y, alpha + x*beta, phi) -> neg_binomial_2_log_glm_lpmf(y, x, alpha, beta, phi)
func rwNegBinomial2LogGLM(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "neg_binomial_2_log_lpmf" || len(call.Args) != 3 {
		return "", nil, false
	}
	alpha, beta, x, ok := affineOf(call.Args[1])
	if !ok {
		return "", nil, false
	}
	return "neg_binomial_2_log_glm_lpmf", []ir.Expr[ir.Typed]{call.Args[0], x, alpha, beta, call.Args[2]}, true
}

// neg_binomial_2_lpmf(y, exp(eta), phi) -> neg_binomial_2_log_lpmf(y, eta, phi)
func rwNegBinomial2Log(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "neg_binomial_2_lpmf" || len(call.Args) != 3 {
		return "", nil, false
	}
	eta, ok := asUnaryCall(call.Args[1], "exp")
	if !ok {
		return "", nil, false
	}
	return "neg_binomial_2_log_lpmf", []ir.Expr[ir.Typed]{call.Args[0], eta, call.Args[2]}, true
}

// normal_lpdf(y, alpha + x*beta, sigma) -> normal_id_glm_lpdf(y, x, alpha, beta, sigma)
func rwNormalIdGLM(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "normal_lpdf" || len(call.Args) != 3 {
		return "", nil, false
	}
	alpha, beta, x, ok := affineOf(call.Args[1])
	if !ok {
		return "", nil, false
	}
	return "normal_id_glm_lpdf", []ir.Expr[ir.Typed]{call.Args[0], x, alpha, beta, call.Args[2]}, true
}

// categorical_lpmf(y, softmax(beta)) -> categorical_logit_lpmf(y, beta)
func rwCategoricalLogit(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "categorical_lpmf" || len(call.Args) != 2 {
		return "", nil, false
	}
	beta, ok := asUnaryCall(call.Args[1], "softmax")
	if !ok {
		return "", nil, false
	}
	return "categorical_logit_lpmf", []ir.Expr[ir.Typed]{call.Args[0], beta}, true
}

// binomial_lpmf(y, n, inv_logit(alpha)) -> binomial_logit_lpmf(y, n, alpha)
func rwBinomialLogit(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	if call.Name != "binomial_lpmf" || len(call.Args) != 3 {
		return "", nil, false
	}
	alpha, ok := asUnaryCall(call.Args[2], "inv_logit")
	if !ok {
		return "", nil, false
	}
	return "binomial_logit_lpmf", []ir.Expr[ir.Typed]{call.Args[0], call.Args[1], alpha}, true
}

// columns_dot_product(x, x) -> columns_dot_self(x)
func rwColumnsDotSelf(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "columns_dot_product", 2)
	if !ok || !ir.EqualExpr(args[0], args[1]) {
		return "", nil, false
	}
	return "columns_dot_self", []ir.Expr[ir.Typed]{args[0]}, true
}

// rows_dot_product(x, x) -> rows_dot_self(x)
func rwRowsDotSelf(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "rows_dot_product", 2)
	if !ok || !ir.EqualExpr(args[0], args[1]) {
		return "", nil, false
	}
	return "rows_dot_self", []ir.Expr[ir.Typed]{args[0]}, true
}

// dot_product(x, x) -> dot_self(x)
func rwDotSelf(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "dot_product", 2)
	if !ok || !ir.EqualExpr(args[0], args[1]) {
		return "", nil, false
	}
	return "dot_self", []ir.Expr[ir.Typed]{args[0]}, true
}

// inv(sqrt(x)) -> inv_sqrt(x)
func rwInvSqrt(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "inv", 1)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(args[0], "sqrt", 1)
	if !ok {
		return "", nil, false
	}
	return "inv_sqrt", inner, true
}

// inv(square(x)) -> inv_square(x)
func rwInvSquare(call ir.FunApp[ir.Typed]) (string, []ir.Expr[ir.Typed], bool) {
	args, ok := asCallArgs(ir.Expr[ir.Typed]{Data: call}, "inv", 1)
	if !ok {
		return "", nil, false
	}
	inner, ok := asCallArgs(args[0], "square", 1)
	if !ok {
		return "", nil, false
	}
	return "inv_square", inner, true
}
