package ir

import (
	"github.com/statlang/statc/pos"
	"github.com/statlang/statc/types"
)

// NoMeta is the metadata carried by a bare structural tree: none at
// all. Used for unit tests and rewrites that manipulate shape only.
type NoMeta struct{}

// Positioned is the metadata carried by the parser's output: a
// location span and nothing else. This is what the analyzer consumes
// as input (spec.md §6: "the untyped statement/expression variant ...
// with location spans") -- the degenerate, location-only instance of
// the "no-metadata" specialization spec.md §4.4 describes, since a
// diagnostic raised before typing still needs somewhere to point.
type Positioned struct {
	Span pos.Span
}

// Typed is the metadata carried by a typed-and-located node. Expressions
// use the Type and Ad fields; statements leave them at their zero value
// since spec.md §3 describes statement metadata as "analogous to
// expressions but without type" — only Span is meaningful there. Program
// and Stmt/Expr share one metadata type parameter so that a whole typed
// program can be threaded through the IR framework uniformly.
type Typed struct {
	Type   types.UnsizedType
	Ad     types.AdLevel
	Origin types.BlockOrigin
	Span   pos.Span
}

// Labeled is the metadata carried by the labeling pass: everything Typed
// carries, plus a label unique within the program.
type Labeled struct {
	Typed
	Label int
}
