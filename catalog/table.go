package catalog

import "github.com/statlang/statc/types"

// entry is one row of the static table: a name and the overloads it
// accepts, in the declaration order overload resolution must respect.
type entry struct {
	name      string
	overloads []Overload
}

// New builds the catalog from the static table below (spec.md §6: "loaded
// once at startup from a static table; format out of scope"). The result
// is never mutated afterwards.
func New() *Catalog {
	c := &Catalog{entries: make(map[string][]Overload, len(table))}
	for _, e := range table {
		c.entries[e.name] = append(c.entries[e.name], e.overloads...)
	}
	return c
}

// data builds a parameter that accepts either DataOnly or AutoDiffable
// actuals: per types.CanConvertAd, a DataOnly formal is the permissive
// one, so ordinary math-library parameters are declared this way.
func data(t types.UnsizedType) types.Formal { return types.Formal{Ad: types.DataOnly, Type: t} }

func ret(t types.UnsizedType) types.ReturnType { return types.Returning(t) }

var (
	tInt       = types.NewInt()
	tReal      = types.NewReal()
	tVector    = types.NewVector()
	tRowVector = types.NewRowVector()
	tMatrix    = types.NewMatrix()
	tArrInt    = types.NewArray(types.NewInt())
	tArrReal   = types.NewArray(types.NewReal())
)

func sig(returns types.UnsizedType, params ...types.Formal) Overload {
	return Overload{Params: params, Return: ret(returns)}
}

func nullary(returns types.UnsizedType) Overload {
	return Overload{Return: ret(returns)}
}

var table = []entry{
	// Arithmetic and comparison operators. Where an exact int,int form
	// exists it is listed before the real,real form, which also accepts
	// int actuals via widening; comparisons have only the real,real form.
	{OpPlus, []Overload{sig(tInt, data(tInt), data(tInt)), sig(tReal, data(tReal), data(tReal))}},
	{OpMinus, []Overload{
		sig(tInt, data(tInt), data(tInt)), sig(tReal, data(tReal), data(tReal)),
		sig(tInt, data(tInt)), sig(tReal, data(tReal)),
	}},
	{OpTimes, []Overload{
		sig(tInt, data(tInt), data(tInt)), sig(tReal, data(tReal), data(tReal)),
		sig(tVector, data(tReal), data(tVector)), sig(tVector, data(tVector), data(tReal)),
		sig(tMatrix, data(tReal), data(tMatrix)), sig(tMatrix, data(tMatrix), data(tReal)),
		sig(tMatrix, data(tMatrix), data(tMatrix)),
		sig(tReal, data(tRowVector), data(tVector)),
		sig(tVector, data(tMatrix), data(tVector)),
	}},
	{OpDivide, []Overload{sig(tInt, data(tInt), data(tInt)), sig(tReal, data(tReal), data(tReal))}},
	{OpModulo, []Overload{sig(tInt, data(tInt), data(tInt))}},
	{OpLDivide, []Overload{sig(tReal, data(tReal), data(tReal))}},
	{OpEltTimes, []Overload{sig(tVector, data(tVector), data(tVector)), sig(tMatrix, data(tMatrix), data(tMatrix))}},
	{OpEltDiv, []Overload{sig(tVector, data(tVector), data(tVector)), sig(tMatrix, data(tMatrix), data(tMatrix))}},
	{OpPow, []Overload{sig(tReal, data(tReal), data(tReal))}},

	{OpEquals, []Overload{sig(tInt, data(tReal), data(tReal))}},
	{OpNEquals, []Overload{sig(tInt, data(tReal), data(tReal))}},
	{OpLess, []Overload{sig(tInt, data(tReal), data(tReal))}},
	{OpLEquals, []Overload{sig(tInt, data(tReal), data(tReal))}},
	{OpGreater, []Overload{sig(tInt, data(tReal), data(tReal))}},
	{OpGEquals, []Overload{sig(tInt, data(tReal), data(tReal))}},

	{OpPMinus, []Overload{sig(tInt, data(tInt)), sig(tReal, data(tReal))}},
	{OpPPlus, []Overload{sig(tInt, data(tInt)), sig(tReal, data(tReal))}},
	{OpNot, []Overload{sig(tInt, data(tReal))}},

	{OpTranspose, []Overload{sig(tRowVector, data(tVector)), sig(tVector, data(tRowVector)), sig(tMatrix, data(tMatrix))}},

	// Elementary math library, real-valued, one-argument by default.
	{"log", []Overload{sig(tReal, data(tReal))}},
	{"exp", []Overload{sig(tReal, data(tReal))}},
	{"exp2", []Overload{sig(tReal, data(tReal))}},
	{"sqrt", []Overload{sig(tReal, data(tReal))}},
	{"sqrt2", []Overload{nullary(tReal)}},
	{"square", []Overload{sig(tReal, data(tReal))}},
	{"inv", []Overload{sig(tReal, data(tReal))}},
	{"inv_sqrt", []Overload{sig(tReal, data(tReal))}},
	{"inv_square", []Overload{sig(tReal, data(tReal))}},
	{"fabs", []Overload{sig(tReal, data(tReal))}},
	{"abs", []Overload{sig(tInt, data(tInt)), sig(tReal, data(tReal))}},
	{"floor", []Overload{sig(tReal, data(tReal))}},
	{"ceil", []Overload{sig(tReal, data(tReal))}},
	{"round", []Overload{sig(tReal, data(tReal))}},
	{"trunc", []Overload{sig(tReal, data(tReal))}},

	{"expm1", []Overload{sig(tReal, data(tReal))}},
	{"log1m", []Overload{sig(tReal, data(tReal))}},
	{"log1p", []Overload{sig(tReal, data(tReal))}},
	{"log1m_exp", []Overload{sig(tReal, data(tReal))}},
	{"log1p_exp", []Overload{sig(tReal, data(tReal))}},
	{"log1m_inv_logit", []Overload{sig(tReal, data(tReal))}},
	{"log_inv_logit", []Overload{sig(tReal, data(tReal))}},
	{"inv_logit", []Overload{sig(tReal, data(tReal))}},
	{"logit", []Overload{sig(tReal, data(tReal))}},
	{"erf", []Overload{sig(tReal, data(tReal))}},
	{"erfc", []Overload{sig(tReal, data(tReal))}},
	{"gamma_p", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"gamma_q", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"fma", []Overload{sig(tReal, data(tReal), data(tReal), data(tReal))}},
	{"pow", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"multiply_log", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"binomial_coefficient_log", []Overload{sig(tReal, data(tReal), data(tReal))}},

	{"log_diff_exp", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"log_sum_exp", []Overload{sig(tReal, data(tReal), data(tReal)), sig(tReal, data(tArrReal)), sig(tReal, data(tVector))}},
	{"log_determinant", []Overload{sig(tReal, data(tMatrix))}},
	{"det", []Overload{sig(tReal, data(tMatrix))}},
	{"falling_factorial", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"rising_factorial", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"log_falling_factorial", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"log_rising_factorial", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"softmax", []Overload{sig(tVector, data(tVector))}},
	{"log_softmax", []Overload{sig(tVector, data(tVector))}},

	{"sum", []Overload{sig(tReal, data(tArrReal)), sig(tInt, data(tArrInt)), sig(tReal, data(tVector)), sig(tReal, data(tRowVector)), sig(tReal, data(tMatrix))}},
	{"diagonal", []Overload{sig(tVector, data(tMatrix))}},
	{"trace", []Overload{sig(tReal, data(tMatrix))}},
	{"variance", []Overload{sig(tReal, data(tVector)), sig(tReal, data(tArrReal))}},
	{"sd", []Overload{sig(tReal, data(tVector)), sig(tReal, data(tArrReal))}},
	{"squared_distance", []Overload{sig(tReal, data(tVector), data(tVector)), sig(tReal, data(tRowVector), data(tRowVector))}},

	{"diag_matrix", []Overload{sig(tMatrix, data(tVector))}},
	{"diag_post_multiply", []Overload{sig(tMatrix, data(tMatrix), data(tVector))}},
	{"diag_pre_multiply", []Overload{sig(tMatrix, data(tVector), data(tMatrix))}},
	{"quad_form", []Overload{sig(tReal, data(tMatrix), data(tVector)), sig(tMatrix, data(tMatrix), data(tMatrix))}},
	{"quad_form_diag", []Overload{sig(tMatrix, data(tMatrix), data(tVector))}},
	{"trace_quad_form", []Overload{sig(tReal, data(tMatrix), data(tVector))}},
	{"trace_gen_quad_form", []Overload{sig(tReal, data(tMatrix), data(tMatrix), data(tMatrix))}},
	{"matrix_exp", []Overload{sig(tMatrix, data(tMatrix))}},
	{"matrix_exp_multiply", []Overload{sig(tMatrix, data(tMatrix), data(tMatrix))}},
	{"scale_matrix_exp_multiply", []Overload{sig(tMatrix, data(tReal), data(tMatrix), data(tMatrix))}},

	{"columns_dot_product", []Overload{sig(tRowVector, data(tMatrix), data(tMatrix)), sig(tRowVector, data(tVector), data(tVector))}},
	{"columns_dot_self", []Overload{sig(tRowVector, data(tMatrix)), sig(tRowVector, data(tVector))}},
	{"rows_dot_product", []Overload{sig(tVector, data(tMatrix), data(tMatrix))}},
	{"rows_dot_self", []Overload{sig(tVector, data(tMatrix))}},
	{"dot_product", []Overload{sig(tReal, data(tVector), data(tVector)), sig(tReal, data(tRowVector), data(tRowVector))}},
	{"dot_self", []Overload{sig(tReal, data(tVector)), sig(tReal, data(tRowVector))}},

	// Distributions: the density/mass overload used by Tilde and
	// FunApp, the (optional) cdf/ccdf pair used by truncation, and the
	// sampler.
	{"normal_lpdf", []Overload{sig(tReal, data(tReal), data(tReal), data(tReal))}},
	{"normal_lcdf", []Overload{sig(tReal, data(tReal), data(tReal), data(tReal))}},
	{"normal_lccdf", []Overload{sig(tReal, data(tReal), data(tReal), data(tReal))}},
	{"normal_cdf", []Overload{sig(tReal, data(tReal), data(tReal), data(tReal))}},
	{"normal_rng", []Overload{sig(tReal, data(tReal), data(tReal))}},
	{"normal_id_glm_lpdf", []Overload{
		sig(tReal, data(tVector), data(tMatrix), data(tVector), data(tVector), data(tReal)),
		sig(tReal, data(tVector), data(tMatrix), data(tReal), data(tVector), data(tReal)),
	}},

	{"bernoulli_lpmf", []Overload{sig(tReal, data(tInt), data(tReal))}},
	{"bernoulli_logit_lpmf", []Overload{sig(tReal, data(tInt), data(tReal))}},
	{"bernoulli_rng", []Overload{sig(tInt, data(tReal))}},
	{"bernoulli_logit_rng", []Overload{sig(tInt, data(tReal))}},
	{"bernoulli_logit_glm_lpmf", []Overload{
		sig(tReal, data(tArrInt), data(tMatrix), data(tVector), data(tVector)),
		sig(tReal, data(tArrInt), data(tMatrix), data(tReal), data(tVector)),
	}},

	{"poisson_lpmf", []Overload{sig(tReal, data(tInt), data(tReal))}},
	{"poisson_log_lpmf", []Overload{sig(tReal, data(tInt), data(tReal))}},
	{"poisson_rng", []Overload{sig(tInt, data(tReal))}},
	{"poisson_log_glm_lpmf", []Overload{
		sig(tReal, data(tArrInt), data(tMatrix), data(tVector), data(tVector)),
		sig(tReal, data(tArrInt), data(tMatrix), data(tReal), data(tVector)),
	}},

	{"neg_binomial_2_lpmf", []Overload{sig(tReal, data(tInt), data(tReal), data(tReal))}},
	{"neg_binomial_2_log_lpmf", []Overload{sig(tReal, data(tInt), data(tReal), data(tReal))}},
	{"neg_binomial_2_log_glm_lpmf", []Overload{
		sig(tReal, data(tArrInt), data(tMatrix), data(tVector), data(tVector), data(tReal)),
		sig(tReal, data(tArrInt), data(tMatrix), data(tReal), data(tVector), data(tReal)),
	}},

	{"categorical_lpmf", []Overload{sig(tReal, data(tInt), data(tVector))}},
	{"categorical_logit_lpmf", []Overload{sig(tReal, data(tInt), data(tVector))}},
	{"categorical_rng", []Overload{sig(tInt, data(tVector))}},

	{"binomial_lpmf", []Overload{sig(tReal, data(tInt), data(tInt), data(tReal))}},
	{"binomial_logit_lpmf", []Overload{sig(tReal, data(tInt), data(tInt), data(tReal))}},
	{"binomial_rng", []Overload{sig(tInt, data(tInt), data(tReal))}},

	// Nullary math-library constants (HasNullary reports true for these,
	// as for sqrt2).
	{"pi", []Overload{nullary(tReal)}},
	{"e", []Overload{nullary(tReal)}},
	{"not_a_number", []Overload{nullary(tReal)}},
	{"positive_infinity", []Overload{nullary(tReal)}},
	{"negative_infinity", []Overload{nullary(tReal)}},
	{"machine_precision", []Overload{nullary(tReal)}},
}
