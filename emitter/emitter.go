// Package emitter defines the external-collaborator boundary of
// spec.md §6 on the output side: turning optimized MIR into whatever a
// backend consumes (a target-language program, a serialized graph, a
// wire format) is out of scope for this module. This package fixes the
// contract such a backend must satisfy so that driver.Compile can wire
// it in without depending on any concrete implementation.
package emitter

import "github.com/statlang/statc/ir"

// Emitter turns optimized MIR into the backend's output representation.
// A real implementation walks p (an *ir.Program[ir.Typed], spec.md
// §4.7's MIR) and produces whatever the target backend expects.
type Emitter interface {
	Emit(p *ir.Program[ir.Typed]) (string, error)
}
