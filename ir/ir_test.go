package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/statlang/statc/ir"
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/types"
)

func noMetaVar(name string) ir.Expr[ir.NoMeta] {
	return ir.Expr[ir.NoMeta]{Data: ir.Var[ir.NoMeta]{Name: name}}
}

func TestMapExprRebuildsBottomUp(t *testing.T) {
	tree := ir.Expr[ir.NoMeta]{Data: ir.FunApp[ir.NoMeta]{
		Name: "log",
		Args: []ir.Expr[ir.NoMeta]{noMetaVar("x")},
	}}
	renamed := ir.MapExpr(tree, func(e ir.Expr[ir.NoMeta]) ir.Expr[ir.NoMeta] {
		if v, ok := e.Data.(ir.Var[ir.NoMeta]); ok && v.Name == "x" {
			return ir.Expr[ir.NoMeta]{Data: ir.Var[ir.NoMeta]{Name: "y"}}
		}
		return e
	}, func(s ir.Stmt[ir.NoMeta]) ir.Stmt[ir.NoMeta] { return s })
	want := ir.Expr[ir.NoMeta]{Data: ir.FunApp[ir.NoMeta]{Name: "log", Args: []ir.Expr[ir.NoMeta]{noMetaVar("y")}}}
	if !ir.EqualExpr(renamed, want) {
		t.Errorf("MapExpr did not rename the leaf: got %s", ir.StringExpr(renamed))
	}
}

func TestFoldExprCountsNodes(t *testing.T) {
	tree := ir.Expr[ir.NoMeta]{Data: ir.EAnd[ir.NoMeta]{A: noMetaVar("a"), B: noMetaVar("b")}}
	count := ir.FoldExpr(tree, 0, func(acc int, _ ir.Expr[ir.NoMeta]) int { return acc + 1 }, func(acc int, _ ir.Stmt[ir.NoMeta]) int { return acc })
	if count != 3 {
		t.Errorf("FoldExpr counted %d nodes, want 3", count)
	}
}

func typedVar(name string, t types.UnsizedType) ir.Expr[ir.Typed] {
	return ir.Expr[ir.Typed]{Meta: ir.Typed{Type: t, Ad: types.DataOnly, Span: pos.None}, Data: ir.Var[ir.Typed]{Name: name}}
}

func TestLabelsAreDenseAndUnique(t *testing.T) {
	body := ir.Stmt[ir.Typed]{
		Meta: ir.Typed{Span: pos.None},
		Data: ir.Block[ir.Typed]{Stmts: []ir.Stmt[ir.Typed]{
			{Meta: ir.Typed{}, Data: ir.Assign[ir.Typed]{
				LValue: typedVar("x", types.NewReal()),
				Rhs: ir.Expr[ir.Typed]{Meta: ir.Typed{Type: types.NewReal()}, Data: ir.FunApp[ir.Typed]{
					Name: "log", Args: []ir.Expr[ir.Typed]{typedVar("y", types.NewReal())},
				}},
			}},
			{Meta: ir.Typed{}, Data: ir.Break[ir.Typed]{}},
		}},
	}
	labeled := ir.LabelStmt(body)
	exprs, stmts := ir.Associate(labeled)
	total := len(exprs) + len(stmts)
	seen := make([]bool, total)
	record := func(label int) {
		if label < 0 || label >= total {
			t.Fatalf("label %d out of range [0,%d)", label, total)
		}
		if seen[label] {
			t.Fatalf("label %d assigned twice", label)
		}
		seen[label] = true
	}
	for label := range exprs {
		record(label)
	}
	for label := range stmts {
		record(label)
	}
	for i, s := range seen {
		if !s {
			t.Errorf("label %d never assigned: gap in {0,...,%d}", i, total-1)
		}
	}
}

func TestAssociateIndexesByLabel(t *testing.T) {
	s := ir.LabelStmt(ir.Stmt[ir.Typed]{Data: ir.Skip[ir.Typed]{}})
	exprs, stmts := ir.Associate(s)
	if len(exprs) != 0 {
		t.Errorf("expected no expressions, got %d", len(exprs))
	}
	got, ok := stmts[s.Meta.Label]
	if !ok {
		t.Fatalf("expected to find the root statement under its own label")
	}
	if diff := cmp.Diff(s.Meta.Label, got.Meta.Label); diff != "" {
		t.Errorf("unexpected label diff: %s", diff)
	}
}

func TestEqualExprIgnoresMetadata(t *testing.T) {
	a := typedVar("x", types.NewReal())
	b := ir.Expr[ir.Typed]{Meta: ir.Typed{Type: types.NewInt(), Ad: types.AutoDiffable}, Data: ir.Var[ir.Typed]{Name: "x"}}
	if !ir.EqualExpr(a, b) {
		t.Errorf("expected EqualExpr to ignore differing metadata")
	}
	c := typedVar("y", types.NewReal())
	if ir.EqualExpr(a, c) {
		t.Errorf("expected EqualExpr to distinguish different names")
	}
}
