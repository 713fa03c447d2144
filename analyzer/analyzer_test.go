package analyzer_test

import (
	"testing"

	"github.com/statlang/statc/analyzer"
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/types"
)

func posVar(name string) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.Var[ir.Positioned]{Name: name}}
}

func realLit(text string) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.Lit[ir.Positioned]{Kind: ir.RealLit, Text: text}}
}

func intLit(text string) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.Lit[ir.Positioned]{Kind: ir.IntLit, Text: text}}
}

func funApp(name string, args ...ir.Expr[ir.Positioned]) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.FunApp[ir.Positioned]{Kind: ir.StanLib, Name: name, Args: args}}
}

func declStmt(name string, t ir.SizedType[ir.Positioned]) ir.Stmt[ir.Positioned] {
	return ir.Stmt[ir.Positioned]{Data: ir.Decl[ir.Positioned]{Ad: types.AutoDiffable, Name: name, Type: t}}
}

func assignStmt(lvalue ir.Expr[ir.Positioned], op string, rhs ir.Expr[ir.Positioned]) ir.Stmt[ir.Positioned] {
	return ir.Stmt[ir.Positioned]{Data: ir.Assign[ir.Positioned]{LValue: lvalue, Op: op, Rhs: rhs}}
}

func blockStmt(stmts ...ir.Stmt[ir.Positioned]) ir.Stmt[ir.Positioned] {
	return ir.Stmt[ir.Positioned]{Data: ir.Block[ir.Positioned]{Stmts: stmts}}
}

func returnStmt(e ir.Expr[ir.Positioned]) ir.Stmt[ir.Positioned] {
	return ir.Stmt[ir.Positioned]{Data: ir.Return[ir.Positioned]{E: &e}}
}

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(catalog.New(), "the_model")
}

func TestAnalyzeSimpleModelSucceeds(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Data: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("N", ir.SInt[ir.Positioned]()),
		}},
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("x", ir.SReal[ir.Positioned]()),
			assignStmt(posVar("x"), "", funApp(catalog.OpPlus, realLit("1.0"), realLit("2.0"))),
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTildeOutsideModelIsRejected(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		TransformedData: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("x", ir.SReal[ir.Positioned]()),
			{Data: ir.Tilde[ir.Positioned]{
				Arg:          posVar("x"),
				Distribution: "normal",
				Args:         []ir.Expr[ir.Positioned]{realLit("0.0"), realLit("1.0")},
			}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected a ~ statement outside the model block to be rejected")
	}
}

func TestTildeInModelIsAccepted(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Parameters: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("x", ir.SReal[ir.Positioned]()),
		}},
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.Tilde[ir.Positioned]{
				Arg:          posVar("x"),
				Distribution: "normal",
				Args:         []ir.Expr[ir.Positioned]{realLit("0.0"), realLit("1.0")},
			}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.Break[ir.Positioned]{}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected break outside a loop to be rejected")
	}
}

func TestBreakInsideLoopIsAccepted(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.While[ir.Positioned]{
				Cond: intLit("1"),
				Body: blockStmt(ir.Stmt[ir.Positioned]{Data: ir.Break[ir.Positioned]{}}),
			}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForLoopBoundMustBeInt(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.For[ir.Positioned]{
				LoopVar: "i",
				Lower:   realLit("1.0"),
				Upper:   intLit("10"),
				Body:    blockStmt(),
			}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected a real for-loop bound to be rejected")
	}
}

func functionProgram(body ir.Stmt[ir.Positioned]) *ir.Program[ir.Positioned] {
	return &ir.Program[ir.Positioned]{
		Name: "m",
		Functions: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.FunDef[ir.Positioned]{
				Rt:   types.Returning(types.NewReal()),
				Name: "f",
				Body: body,
			}},
		}},
	}
}

func TestFunctionMissingReturnOnSomePathIsRejected(t *testing.T) {
	body := blockStmt(ir.Stmt[ir.Positioned]{Data: ir.IfElse[ir.Positioned]{
		Cond: intLit("1"),
		Then: returnStmt(realLit("1.0")),
	}})
	if _, err := newAnalyzer().Analyze(functionProgram(body)); err == nil {
		t.Fatalf("expected a missing return on the implicit else branch to be rejected")
	}
}

func TestFunctionReturningOnEveryPathIsAccepted(t *testing.T) {
	elseBranch := returnStmt(realLit("2.0"))
	body := blockStmt(ir.Stmt[ir.Positioned]{Data: ir.IfElse[ir.Positioned]{
		Cond: intLit("1"),
		Then: returnStmt(realLit("1.0")),
		Else: &elseBranch,
	}})
	if _, err := newAnalyzer().Analyze(functionProgram(body)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRngFunctionOutsideAllowedContextIsRejected(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Parameters: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("x", ir.SReal[ir.Positioned]()),
		}},
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			assignStmt(posVar("x"), "", funApp("normal_rng", realLit("0.0"), realLit("1.0"))),
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected normal_rng called from the model block to be rejected")
	}
}

func TestRngFunctionInGeneratedQuantitiesIsAccepted(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		GeneratedQuantities: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("y", ir.SReal[ir.Positioned]()),
			assignStmt(posVar("y"), "", funApp("normal_rng", realLit("0.0"), realLit("1.0"))),
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIdentifierCollidingWithModelNameIsRejected(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Data: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			declStmt("the_model", ir.SInt[ir.Positioned]()),
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected an identifier colliding with the model name to be rejected")
	}
}

func TestAssigningToReadOnlyLoopVariableIsRejected(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Name: "m",
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.For[ir.Positioned]{
				LoopVar: "i",
				Lower:   intLit("1"),
				Upper:   intLit("10"),
				Body:    blockStmt(assignStmt(posVar("i"), "", intLit("0"))),
			}},
		}},
	}
	if _, err := newAnalyzer().Analyze(program); err == nil {
		t.Fatalf("expected assignment to the read-only loop variable to be rejected")
	}
}
