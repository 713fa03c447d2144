package lower_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/lower"
	"github.com/statlang/statc/types"
)

func typedVar(name string, t types.UnsizedType) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: ir.Typed{Type: t, Ad: types.AutoDiffable}, Data: ir.Var[ir.Typed]{Name: name}}
}

func TestToMIRPreservesShapeAndMetadata(t *testing.T) {
	call := ir.Expr[ir.Typed]{
		Meta: ir.Typed{Type: types.NewReal(), Ad: types.AutoDiffable},
		Data: ir.FunApp[ir.Typed]{Kind: ir.StanLib, Name: "log", Args: []ir.Expr[ir.Typed]{typedVar("x", types.NewReal())}},
	}
	assign := ir.Stmt[ir.Typed]{Data: ir.Assign[ir.Typed]{LValue: typedVar("y", types.NewReal()), Rhs: call}}
	p := &ir.Program[ir.Typed]{
		Name:  "m",
		Model: &ir.Block[ir.Typed]{Stmts: []ir.Stmt[ir.Typed]{assign}},
	}

	mir, err := lower.ToMIR(p)
	if err != nil {
		t.Fatalf("ToMIR returned an error for a canonical program: %v", err)
	}
	if diff := cmp.Diff(p, mir); diff != "" {
		t.Errorf("ToMIR changed the program's shape or metadata (-want +got):\n%s", diff)
	}
	if mir == p {
		t.Errorf("ToMIR returned the same *Program the analyzer produced; it must hand back a fresh copy")
	}
}

func TestToMIRRejectsPreexistingCompilerInternalCalls(t *testing.T) {
	call := ir.Expr[ir.Typed]{
		Meta: ir.Typed{Type: types.NewReal()},
		Data: ir.FunApp[ir.Typed]{Kind: ir.CompilerInternal, Name: "log1m_exp", Args: []ir.Expr[ir.Typed]{typedVar("x", types.NewReal())}},
	}
	p := &ir.Program[ir.Typed]{
		Model: &ir.Block[ir.Typed]{Stmts: []ir.Stmt[ir.Typed]{
			{Data: ir.TargetPlusEq[ir.Typed]{E: call}},
		}},
	}
	if _, err := lower.ToMIR(p); err == nil {
		t.Fatalf("ToMIR accepted a program with a pre-existing CompilerInternal call")
	}
}

func TestToMIRPreservesFunctionKinds(t *testing.T) {
	userCall := ir.Expr[ir.Typed]{
		Meta: ir.Typed{Type: types.NewReal()},
		Data: ir.FunApp[ir.Typed]{Kind: ir.UserDefined, Name: "my_helper", Args: nil},
	}
	p := &ir.Program[ir.Typed]{
		Model: &ir.Block[ir.Typed]{Stmts: []ir.Stmt[ir.Typed]{
			{Data: ir.Assign[ir.Typed]{LValue: typedVar("z", types.NewReal()), Rhs: userCall}},
		}},
	}
	mir, err := lower.ToMIR(p)
	if err != nil {
		t.Fatalf("ToMIR returned an error for a UserDefined call: %v", err)
	}
	d := mir.Model.Stmts[0].Data.(ir.Assign[ir.Typed]).Rhs.Data.(ir.FunApp[ir.Typed])
	if d.Kind != ir.UserDefined {
		t.Errorf("ToMIR did not preserve the UserDefined function kind, got %v", d.Kind)
	}
}
