package types_test

import (
	"testing"

	"github.com/statlang/statc/types"
)

func TestCanConvertAd(t *testing.T) {
	tests := []struct {
		from, to types.AdLevel
		want     bool
	}{
		{types.DataOnly, types.DataOnly, true},
		{types.DataOnly, types.AutoDiffable, false},
		{types.AutoDiffable, types.DataOnly, true},
		{types.AutoDiffable, types.AutoDiffable, true},
	}
	for _, test := range tests {
		if got := types.CanConvertAd(test.from, test.to); got != test.want {
			t.Errorf("CanConvertAd(%v, %v) = %v, want %v", test.from, test.to, got, test.want)
		}
	}
}

func TestSameTypeModConv(t *testing.T) {
	intT, realT := types.NewInt(), types.NewReal()
	if !types.SameTypeModConv("normal", realT, intT) {
		t.Errorf("expected real formal to accept an int actual")
	}
	if types.SameTypeModConv("normal", intT, realT) {
		t.Errorf("did not expect an int formal to accept a real actual")
	}
	if types.SameTypeModConv("assign_vector", types.NewVector(), types.NewMatrix()) {
		t.Errorf("assign_ names must require exact type equality")
	}
}

func TestContainsInt(t *testing.T) {
	if !types.ContainsInt(types.NewInt()) {
		t.Errorf("Int must contain int")
	}
	if !types.ContainsInt(types.NewArray(types.NewArray(types.NewInt()))) {
		t.Errorf("nested array of int must contain int")
	}
	if types.ContainsInt(types.NewArray(types.NewReal())) {
		t.Errorf("array of real must not contain int")
	}
}

func TestLub(t *testing.T) {
	if got := types.Lub(types.Data, types.Model); got != types.Model {
		t.Errorf("Lub(Data, Model) = %v, want Model", got)
	}
	if got := types.LubAll(types.Functions, types.Data, types.TData); got != types.TData {
		t.Errorf("LubAll(...) = %v, want TData", got)
	}
}

func TestJoinReturnType(t *testing.T) {
	got, err := types.JoinReturnType(types.NewInt(), types.NewReal())
	if err != nil {
		t.Fatalf("JoinReturnType: %v", err)
	}
	if !got.Equal(types.NewReal()) {
		t.Errorf("JoinReturnType(int, real) = %v, want real", got)
	}
	if _, err := types.JoinReturnType(types.NewVector(), types.NewMatrix()); err == nil {
		t.Errorf("expected an error joining incompatible return types")
	}
}

func TestCompatibleArgumentsModConv(t *testing.T) {
	formals := []types.Formal{
		{Ad: types.DataOnly, Type: types.NewReal()},
		{Ad: types.DataOnly, Type: types.NewInt()},
	}
	ok := types.CompatibleArgumentsModConv("normal", formals, []types.Actual{
		{Ad: types.AutoDiffable, Type: types.NewInt()},
		{Ad: types.DataOnly, Type: types.NewInt()},
	})
	if !ok {
		t.Errorf("expected an autodiffable int to widen into a data-only real formal")
	}
	notOK := types.CompatibleArgumentsModConv("normal", []types.Formal{
		{Ad: types.AutoDiffable, Type: types.NewReal()},
	}, []types.Actual{
		{Ad: types.DataOnly, Type: types.NewReal()},
	})
	if notOK {
		t.Errorf("expected a data-only actual to be rejected by an autodiffable formal")
	}
}
