package symtab_test

import (
	"testing"

	"github.com/statlang/statc/symtab"
	"github.com/statlang/statc/types"
)

func TestEnterAndLook(t *testing.T) {
	tbl := symtab.New()
	if err := tbl.Enter("n", symtab.Data{Origin: types.Data, Type: types.NewInt()}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	d, ok := tbl.Look("n")
	if !ok {
		t.Fatal("expected n to be found")
	}
	if d.Origin != types.Data || !d.Type.Equal(types.NewInt()) {
		t.Errorf("unexpected data: %+v", d)
	}
}

func TestEnterRejectsRedeclarationInSameFrame(t *testing.T) {
	tbl := symtab.New()
	if err := tbl.Enter("n", symtab.Data{Type: types.NewInt()}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := tbl.Enter("n", symtab.Data{Type: types.NewReal()}); err == nil {
		t.Error("expected redeclaration in the same frame to fail")
	}
}

func TestNestedScopeShadowing(t *testing.T) {
	tbl := symtab.New()
	if err := tbl.Enter("x", symtab.Data{Type: types.NewInt()}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	tbl.BeginScope()
	defer tbl.EndScope()
	if err := tbl.Enter("x", symtab.Data{Type: types.NewReal()}); err != nil {
		t.Fatalf("shadowing across scopes should be allowed: %v", err)
	}
	d, _ := tbl.Look("x")
	if !d.Type.Equal(types.NewReal()) {
		t.Errorf("inner scope should shadow outer: got %v", d.Type)
	}
}

func TestEndScopeRestoresOuterBinding(t *testing.T) {
	tbl := symtab.New()
	tbl.Enter("x", symtab.Data{Type: types.NewInt()})
	tbl.BeginScope()
	tbl.Enter("x", symtab.Data{Type: types.NewReal()})
	tbl.EndScope()
	d, ok := tbl.Look("x")
	if !ok || !d.Type.Equal(types.NewInt()) {
		t.Errorf("expected outer binding to be visible again, got %+v, ok=%v", d, ok)
	}
}

func TestIsGlobal(t *testing.T) {
	tbl := symtab.New()
	tbl.Enter("g", symtab.Data{Type: types.NewInt()})
	tbl.BeginScope()
	defer tbl.EndScope()
	tbl.Enter("l", symtab.Data{Type: types.NewInt()})
	if !tbl.IsGlobal("g") {
		t.Error("g should be global")
	}
	if tbl.IsGlobal("l") {
		t.Error("l should not be global")
	}
}

func TestSetReadOnly(t *testing.T) {
	tbl := symtab.New()
	tbl.Enter("i", symtab.Data{Type: types.NewInt()})
	if err := tbl.SetReadOnly("i"); err != nil {
		t.Fatalf("SetReadOnly: %v", err)
	}
	d, _ := tbl.Look("i")
	if !d.ReadOnly {
		t.Error("expected i to be read-only")
	}
}

func TestUnsafeReplaceElevatesOrigin(t *testing.T) {
	tbl := symtab.New()
	tbl.Enter("x", symtab.Data{Origin: types.TData, Type: types.NewReal()})
	if err := tbl.UnsafeReplace("x", symtab.Data{Origin: types.Param, Type: types.NewReal()}); err != nil {
		t.Fatalf("UnsafeReplace: %v", err)
	}
	d, _ := tbl.Look("x")
	if d.Origin != types.Param {
		t.Errorf("expected elevated origin Param, got %v", d.Origin)
	}
}

func TestEndScopeOnRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected EndScope on the root frame to panic")
		}
	}()
	symtab.New().EndScope()
}
