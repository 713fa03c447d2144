// Package parser defines the external-collaborator boundary of spec.md
// §6: the lexer/parser that turns source text into the untyped,
// Positioned-metadata AST is out of scope for this module (spec.md §1,
// §2) and is expected to be supplied by a separate front-end. This
// package fixes the contract such a front-end must satisfy so that
// driver.Compile can wire it in without depending on any concrete
// implementation.
package parser

import (
	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/ir"
)

// Diagnostics is the front-end's own error reporting, kept distinct
// from diag.Appender (the analyzer's accumulator) since a lexer/parser
// may fail before any analysis context exists to push diagnostics into.
type Diagnostics = []*diag.Diagnostic

// Parser turns source text into the untyped AST analyzer.Analyze
// consumes. filename is carried into every diagnostic and pos.Span this
// call produces, for error reporting; src is the complete source text.
//
// A real implementation lexes and parses src according to the source
// language's grammar (out of scope here, spec.md §1) and returns a
// *ir.Program[ir.Positioned] with a location span on every node.
type Parser interface {
	Parse(filename string, src []byte) (*ir.Program[ir.Positioned], Diagnostics)
}
