package catalog_test

import (
	"testing"

	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/types"
)

func actual(t types.UnsizedType) types.Actual {
	return types.Actual{Ad: types.DataOnly, Type: t}
}

func TestReturnTypeExactMatch(t *testing.T) {
	c := catalog.New()
	rt, ok := c.ReturnType("log", []types.Actual{actual(types.NewReal())})
	if !ok || rt.Void || !rt.Type.Equal(types.NewReal()) {
		t.Fatalf("log(real): got %v, %v", rt, ok)
	}
}

func TestReturnTypeWidensIntToReal(t *testing.T) {
	c := catalog.New()
	rt, ok := c.ReturnType("log", []types.Actual{actual(types.NewInt())})
	if !ok || !rt.Type.Equal(types.NewReal()) {
		t.Fatalf("log(int) should widen to log(real): got %v, %v", rt, ok)
	}
}

func TestReturnTypeNoMatch(t *testing.T) {
	c := catalog.New()
	if _, ok := c.ReturnType("log", []types.Actual{actual(types.NewMatrix())}); ok {
		t.Errorf("log(matrix) should not resolve")
	}
	if _, ok := c.ReturnType("no_such_builtin", nil); ok {
		t.Errorf("unregistered name should not resolve")
	}
}

func TestReturnTypePicksNarrowestOverload(t *testing.T) {
	c := catalog.New()
	// Plus__(int,int) is registered before Plus__(real,real); an
	// int,int call must resolve to the exact int overload, not the
	// widened real one.
	rt, ok := c.ReturnType(catalog.OpPlus, []types.Actual{actual(types.NewInt()), actual(types.NewInt())})
	if !ok || !rt.Type.Equal(types.NewInt()) {
		t.Fatalf("Plus__(int,int): got %v, %v", rt, ok)
	}
}

func TestHasNullary(t *testing.T) {
	c := catalog.New()
	if !c.HasNullary("sqrt2") {
		t.Errorf("sqrt2 should be nullary")
	}
	if c.HasNullary("log") {
		t.Errorf("log is not nullary")
	}
	if c.HasNullary("does_not_exist") {
		t.Errorf("unregistered name should not be nullary")
	}
}

func TestIsBuiltinAndLookup(t *testing.T) {
	c := catalog.New()
	if !c.IsBuiltin("bernoulli_logit_glm_lpmf") {
		t.Errorf("expected bernoulli_logit_glm_lpmf to be registered")
	}
	overloads, ok := c.Lookup("bernoulli_logit_glm_lpmf")
	if !ok || len(overloads) != 2 {
		t.Fatalf("expected 2 overloads, got %d, ok=%v", len(overloads), ok)
	}
}

func TestAutoDiffableActualFlowsIntoDataFormal(t *testing.T) {
	c := catalog.New()
	// AutoDiffable actuals must still resolve against the catalog's
	// DataOnly-declared formals (types.CanConvertAd permits it).
	rt, ok := c.ReturnType("exp", []types.Actual{{Ad: types.AutoDiffable, Type: types.NewReal()}})
	if !ok || !rt.Type.Equal(types.NewReal()) {
		t.Fatalf("exp(autodiff real): got %v, %v", rt, ok)
	}
}
