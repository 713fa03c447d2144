// Package pos carries source-location information through the compiler.
// The lexer and parser that produce positions are external to this module
// (see spec.md §1); this package only defines the shape every phase here
// reads and forwards.
package pos

import "fmt"

// Point is a single line/column location in a source file.
type Point struct {
	Line, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a half-open range of source text, optionally nested inside the
// span of an `@include`-like directive that pulled the file in.
type Span struct {
	File         string
	Begin, End   Point
	IncludedFrom *Span
}

// None is the span used for synthetic nodes that do not come from source
// text (for example nodes introduced by the optimizer).
var None = Span{}

// IsSet reports whether the span carries real location information.
func (s Span) IsSet() bool {
	return s.File != ""
}

func (s Span) String() string {
	if !s.IsSet() {
		return "<unknown>"
	}
	base := fmt.Sprintf("%s:%s", s.File, s.Begin)
	if s.IncludedFrom == nil {
		return base
	}
	return fmt.Sprintf("%s (included from %s)", base, s.IncludedFrom)
}
