package driver_test

import (
	"strings"
	"testing"

	"github.com/statlang/statc/api/options"
	"github.com/statlang/statc/catalog"
	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/driver"
	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/parser"
	"github.com/statlang/statc/pos"
)

// fakeParser stands in for the external lexer/parser this module never
// implements (spec.md §6): it returns a fixed AST regardless of src, so
// driver.Compile can be exercised without a real front-end.
type fakeParser struct {
	program *ir.Program[ir.Positioned]
	diags   parser.Diagnostics
}

func (f fakeParser) Parse(string, []byte) (*ir.Program[ir.Positioned], parser.Diagnostics) {
	return f.program, f.diags
}

type recordingEmitter struct {
	out string
	err error
}

func (e recordingEmitter) Emit(p *ir.Program[ir.Typed]) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.out, nil
}

func posVar(name string) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.Var[ir.Positioned]{Name: name}}
}

func intLit(text string) ir.Expr[ir.Positioned] {
	return ir.Expr[ir.Positioned]{Data: ir.Lit[ir.Positioned]{Kind: ir.IntLit, Text: text}}
}

func TestCompileWiresTheWholePipeline(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Data: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.Decl[ir.Positioned]{Name: "n", Type: ir.SizedType[ir.Positioned]{Kind: ir.SIntKind}}},
		}},
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.Decl[ir.Positioned]{Name: "m", Type: ir.SizedType[ir.Positioned]{Kind: ir.SIntKind}}},
			{Data: ir.Assign[ir.Positioned]{LValue: posVar("m"), Rhs: posVar("n")}},
		}},
	}
	p := fakeParser{program: program}
	em := recordingEmitter{out: "emitted-program"}

	cfg := options.New(options.WithModelName("mymodel"))
	out, err := driver.Compile(p, em, catalog.New(), cfg, "m.stan", nil)
	if err != nil {
		t.Fatalf("Compile returned an unexpected error: %v", err)
	}
	if out != "emitted-program" {
		t.Errorf("Compile returned %q, want the emitter's output", out)
	}
}

func TestCompileReturnsParseDiagnosticsWithoutAProgram(t *testing.T) {
	parseDiag := diag.New(diag.FatalInternal, pos.None, "a fake front-end error")
	p := fakeParser{diags: parser.Diagnostics{parseDiag}}
	em := recordingEmitter{}

	cfg := options.New(options.WithModelName("mymodel"))
	_, err := driver.Compile(p, em, catalog.New(), cfg, "m.stan", nil)
	if err == nil {
		t.Fatalf("Compile did not report the front-end's diagnostic")
	}
	if !strings.Contains(err.Error(), "a fake front-end error") {
		t.Errorf("Compile's combined error %q does not mention the front-end diagnostic", err.Error())
	}
}

func TestCompileSurfacesAnalyzerFailureWithoutEmitting(t *testing.T) {
	program := &ir.Program[ir.Positioned]{
		Model: &ir.Block[ir.Positioned]{Stmts: []ir.Stmt[ir.Positioned]{
			{Data: ir.Assign[ir.Positioned]{LValue: posVar("undeclared"), Rhs: intLit("1")}},
		}},
	}
	p := fakeParser{program: program}
	em := recordingEmitter{out: "should-not-be-used"}

	cfg := options.New(options.WithModelName("mymodel"))
	out, err := driver.Compile(p, em, catalog.New(), cfg, "m.stan", nil)
	if err == nil {
		t.Fatalf("Compile did not report the analyzer's error for an undeclared identifier")
	}
	if out != "" {
		t.Errorf("Compile returned emitter output %q despite the analyzer failing", out)
	}
}
