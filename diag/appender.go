package diag

import (
	"strings"

	"go.uber.org/multierr"
)

// Appender collects diagnostics raised while walking the program,
// tagging each with the stack of block/function names active when it
// was appended. It is the "error sink passed to each phase" that
// spec.md §9 asks for in place of exceptions.
type Appender struct {
	context []string
	diags   []*Diagnostic
}

// NewAppender returns an empty accumulator.
func NewAppender() *Appender {
	return &Appender{}
}

// Push enters a named context (a block, a function definition) that
// will prefix every diagnostic appended until the matching Pop.
func (a *Appender) Push(name string) {
	a.context = append(a.context, name)
}

// Pop leaves the innermost context pushed with Push.
func (a *Appender) Pop() {
	if len(a.context) == 0 {
		panic("diag: Pop called with no matching Push")
	}
	a.context = a.context[:len(a.context)-1]
}

// Append records d, prefixing its message with the current context
// stack for readability.
func (a *Appender) Append(d *Diagnostic) {
	if len(a.context) > 0 {
		d.Message = strings.Join(a.context, "/") + ": " + d.Message
	}
	a.diags = append(a.diags, d)
}

// Diagnostics returns every diagnostic appended so far, in append order.
func (a *Appender) Diagnostics() []*Diagnostic {
	return a.diags
}

// HasFatal reports whether any appended diagnostic is fatal.
func (a *Appender) HasFatal() bool {
	for _, d := range a.diags {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// Err combines every appended diagnostic into a single multierr error,
// or nil if none were appended.
func (a *Appender) Err() error {
	if len(a.diags) == 0 {
		return nil
	}
	errs := make([]error, len(a.diags))
	for i, d := range a.diags {
		errs[i] = d
	}
	return multierr.Combine(errs...)
}
