package diag_test

import (
	"strings"
	"testing"

	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/pos"
)

func TestDiagnosticError(t *testing.T) {
	d := diag.New(diag.IdentifierNotInScope, pos.None, "%q is not in scope", "x")
	if !strings.Contains(d.Error(), "x") {
		t.Errorf("expected message to mention the name, got %q", d.Error())
	}
}

func TestAppenderCollectsWithContext(t *testing.T) {
	a := diag.NewAppender()
	a.Push("model")
	a.Append(diag.New(diag.IdentifierNotInScope, pos.None, "x"))
	a.Pop()
	ds := a.Diagnostics()
	if len(ds) != 1 || !strings.HasPrefix(ds[0].Message, "model: ") {
		t.Fatalf("expected context-prefixed message, got %+v", ds)
	}
}

func TestAppenderErrCombinesDiagnostics(t *testing.T) {
	a := diag.NewAppender()
	if a.Err() != nil {
		t.Error("expected nil error from an empty appender")
	}
	a.Append(diag.New(diag.FatalInternal, pos.None, "boom"))
	if a.Err() == nil {
		t.Error("expected a non-nil combined error")
	}
	if !a.HasFatal() {
		t.Error("expected HasFatal to report true")
	}
}

func TestAppenderPopWithoutPushPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Pop with no matching Push to panic")
		}
	}()
	diag.NewAppender().Pop()
}

func TestRenderWithoutSpan(t *testing.T) {
	d := diag.New(diag.FatalInternal, pos.None, "boom")
	if got := diag.Render("", d); !strings.Contains(got, "boom") {
		t.Errorf("expected rendered text to contain the message, got %q", got)
	}
}

func TestRenderWithSpan(t *testing.T) {
	span := pos.Span{File: "m.stan", Begin: pos.Point{Line: 2, Col: 5}, End: pos.Point{Line: 2, Col: 6}}
	d := diag.New(diag.IdentifierNotInScope, span, "y")
	source := "data {\n  int y\n}\n"
	got := diag.Render(source, d)
	if !strings.Contains(got, "int y") || !strings.Contains(got, "^") {
		t.Errorf("expected source context and caret, got %q", got)
	}
}
