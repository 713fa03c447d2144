package scope_test

import (
	"slices"
	"testing"

	"github.com/statlang/statc/internal/base/scope"
)

func TestDefineAndFind(t *testing.T) {
	s := scope.New[int](nil)
	if err := s.Define("x", 1); err != nil {
		t.Fatalf("Define: %v", err)
	}
	v, ok := s.Find("x")
	if !ok || v != 1 {
		t.Fatalf("Find: got %d, %v", v, ok)
	}
}

func TestDefineRejectsDuplicateInSameFrame(t *testing.T) {
	s := scope.New[int](nil)
	s.Define("x", 1)
	if err := s.Define("x", 2); err == nil {
		t.Error("expected redefining x in the same frame to fail")
	}
}

func TestChildShadowsParent(t *testing.T) {
	parent := scope.New[int](nil)
	parent.Define("x", 1)
	child := scope.New(parent)
	if err := child.Define("x", 2); err != nil {
		t.Fatalf("shadowing should be allowed: %v", err)
	}
	v, _ := child.Find("x")
	if v != 2 {
		t.Errorf("expected child's binding to shadow parent's, got %d", v)
	}
	pv, _ := parent.Find("x")
	if pv != 1 {
		t.Errorf("parent's own binding must be untouched, got %d", pv)
	}
}

func TestFindWalksAncestors(t *testing.T) {
	parent := scope.New[int](nil)
	parent.Define("x", 1)
	child := scope.New(parent)
	v, ok := child.Find("x")
	if !ok || v != 1 {
		t.Fatalf("expected to find x via the parent chain, got %d, %v", v, ok)
	}
	if child.IsLocal("x") {
		t.Error("x is not local to child")
	}
}

func TestReplaceWalksAncestors(t *testing.T) {
	parent := scope.New[int](nil)
	parent.Define("x", 1)
	child := scope.New(parent)
	if err := child.Replace("x", 42); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	v, _ := parent.Find("x")
	if v != 42 {
		t.Errorf("expected parent's binding to be replaced, got %d", v)
	}
}

func TestReplaceUnboundFails(t *testing.T) {
	s := scope.New[int](nil)
	if err := s.Replace("nope", 1); err == nil {
		t.Error("expected Replace of an unbound name to fail")
	}
}

func TestIsRootAndParent(t *testing.T) {
	root := scope.New[int](nil)
	if !root.IsRoot() {
		t.Error("expected a scope with no parent to be root")
	}
	child := scope.New(root)
	if child.IsRoot() {
		t.Error("child should not be root")
	}
	if child.Parent() != root {
		t.Error("expected child.Parent() to be root")
	}
}

func TestLocalKeysPreservesDefinitionOrder(t *testing.T) {
	s := scope.New[int](nil)
	s.Define("b", 1)
	s.Define("a", 2)
	s.Define("c", 3)
	got := slices.Collect(s.LocalKeys())
	want := []string{"b", "a", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("LocalKeys order = %v, want %v", got, want)
	}
}
