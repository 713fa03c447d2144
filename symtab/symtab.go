// Package symtab implements the analyzer's symbol table (spec.md §4.3):
// a stack of lexical frames mapping name to block origin and type, with
// per-name read-only and assigned-vs-declared bits.
package symtab

import (
	"github.com/pkg/errors"

	"github.com/statlang/statc/internal/base/scope"
	"github.com/statlang/statc/types"
)

// Data is what the table stores for one name: its block origin, its
// unsized type, and the two auxiliary bits the analyzer consults when
// checking assignment and read access.
type Data struct {
	Origin     types.BlockOrigin
	Type       types.UnsizedType
	ReadOnly   bool
	Unassigned bool
}

// Table is a stack of frames, mutated in place with stack discipline.
// The zero value is not usable; construct one with New.
type Table struct {
	current *scope.RWScope[*Data]
}

// New returns a table with a single root frame, used for globals.
func New() *Table {
	return &Table{current: scope.New[*Data](nil)}
}

// BeginScope pushes a new frame on top of the current one. Every call
// must be paired with exactly one EndScope on every control path
// (spec.md §5); callers should immediately `defer t.EndScope()`.
func (t *Table) BeginScope() {
	t.current = scope.New(t.current)
}

// EndScope pops the current frame, discarding its bindings. It panics
// if called on the root frame: that would indicate an unbalanced
// begin/end pair, a bug in the analyzer, not a recoverable condition.
func (t *Table) EndScope() {
	if t.current.IsRoot() {
		panic("symtab: EndScope called with no matching BeginScope")
	}
	t.current = t.current.Parent()
}

// Enter inserts name into the top frame, failing if it is already bound
// there (shadowing an ancestor frame is fine; redefining within the
// same frame is not).
func (t *Table) Enter(name string, data Data) error {
	d := data
	if err := t.current.Define(name, &d); err != nil {
		return errors.Wrapf(err, "cannot declare %q", name)
	}
	return nil
}

// Look walks the frame stack innermost first, returning the bound data
// and whether name was found at all.
func (t *Table) Look(name string) (*Data, bool) {
	return t.current.Find(name)
}

// IsLocal reports whether name is bound in the current (innermost)
// frame, as opposed to merely visible through an ancestor.
func (t *Table) IsLocal(name string) bool {
	return t.current.IsLocal(name)
}

// IsGlobal reports whether name is bound in the root frame.
func (t *Table) IsGlobal(name string) bool {
	for s := t.current; s != nil; s = s.Parent() {
		if s.IsLocal(name) {
			return s.IsRoot()
		}
	}
	return false
}

// SetReadOnly marks name as read-only in whichever frame binds it, used
// for loop variables (spec.md §4.5.6: "the loop variable is pushed into
// a new scope and marked read-only").
func (t *Table) SetReadOnly(name string) error {
	d, ok := t.Look(name)
	if !ok {
		return errors.Errorf("symtab: cannot mark unbound name %q read-only", name)
	}
	d.ReadOnly = true
	return nil
}

// SetIsUnassigned marks name as declared but not yet given a value.
func (t *Table) SetIsUnassigned(name string) error {
	d, ok := t.Look(name)
	if !ok {
		return errors.Errorf("symtab: cannot mark unbound name %q unassigned", name)
	}
	d.Unassigned = true
	return nil
}

// SetIsAssigned marks name as having received a value.
func (t *Table) SetIsAssigned(name string) error {
	d, ok := t.Look(name)
	if !ok {
		return errors.Errorf("symtab: cannot mark unbound name %q assigned", name)
	}
	d.Unassigned = false
	return nil
}

// UnsafeReplace overwrites the data bound to name in whichever frame
// holds it. It is named for the one use the analyzer makes of it:
// elevating a global's origin when it is assigned an RHS from a higher
// block (spec.md §4.5.6), bypassing the freshness check Enter performs.
func (t *Table) UnsafeReplace(name string, data Data) error {
	d := data
	if err := t.current.Replace(name, &d); err != nil {
		return errors.Wrapf(err, "cannot replace %q", name)
	}
	return nil
}
