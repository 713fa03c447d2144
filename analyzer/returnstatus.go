package analyzer

import "github.com/statlang/statc/types"

// statusKind is one of the four return statuses of spec.md §4.5.7.
type statusKind int

const (
	statusNoReturn statusKind = iota
	statusAnyReturn
	statusIncomplete
	statusComplete
)

// returnStatus pairs a statusKind with the return type it carries, when
// it carries one (NoReturn and AnyReturn do not).
type returnStatus struct {
	kind statusKind
	typ  types.UnsizedType
}

var noReturn = returnStatus{kind: statusNoReturn}
var anyReturn = returnStatus{kind: statusAnyReturn}

func complete(t types.UnsizedType) returnStatus   { return returnStatus{kind: statusComplete, typ: t} }
func incomplete(t types.UnsizedType) returnStatus { return returnStatus{kind: statusIncomplete, typ: t} }

// joinBranches implements the two-branch join of spec.md §4.5.7 for
// IfElse: Complete⊕Complete requires the return types to unify (else it
// is an error); Complete⊕Incomplete (in either order) unifies into
// Incomplete; AnyReturn joined with anything yields the other side
// unchanged, AnyReturn being an already-terminated path that never
// constrains typing; NoReturn joined with a Complete side yields
// Incomplete, and with any other side yields that side.
func joinBranches(a, b returnStatus) (returnStatus, error) {
	switch {
	case a.kind == statusComplete && b.kind == statusComplete:
		t, err := types.JoinReturnType(a.typ, b.typ)
		if err != nil {
			return returnStatus{}, err
		}
		return complete(t), nil
	case a.kind == statusComplete && b.kind == statusIncomplete:
		t, err := types.JoinReturnType(a.typ, b.typ)
		if err != nil {
			return returnStatus{}, err
		}
		return incomplete(t), nil
	case a.kind == statusIncomplete && b.kind == statusComplete:
		t, err := types.JoinReturnType(a.typ, b.typ)
		if err != nil {
			return returnStatus{}, err
		}
		return incomplete(t), nil
	case a.kind == statusIncomplete && b.kind == statusIncomplete:
		t, err := types.JoinReturnType(a.typ, b.typ)
		if err != nil {
			return returnStatus{}, err
		}
		return incomplete(t), nil
	case a.kind == statusAnyReturn:
		return b, nil
	case b.kind == statusAnyReturn:
		return a, nil
	case a.kind == statusNoReturn:
		return weaken(b), nil
	case b.kind == statusNoReturn:
		return weaken(a), nil
	default:
		return noReturn, nil
	}
}

// weaken turns a Complete status into Incomplete: a branch that falls
// through to nothing (NoReturn) means the statement as a whole cannot
// be guaranteed to return.
func weaken(s returnStatus) returnStatus {
	if s.kind == statusComplete {
		return incomplete(s.typ)
	}
	return s
}

// sequence folds the return status of a sequence of statements
// (spec.md §4.5.7: "the left-fold up to the first terminating
// statement"). Once a terminating status is reached, later statements
// are still checked (by the caller) but do not affect the fold. An
// Incomplete prefix followed by a terminating statement becomes
// Complete: every path either returned earlier or reaches that
// statement.
func sequence(a, b returnStatus) returnStatus {
	if a.terminates() {
		return a
	}
	if a.kind == statusIncomplete {
		if b.terminates() {
			return complete(a.typ)
		}
		return a
	}
	return b
}

// terminates reports whether a status ends the statement sequence it
// appears in (Break/Continue/Return/Reject all do, as does an IfElse
// whose branches all do).
func (s returnStatus) terminates() bool {
	return s.kind == statusComplete || s.kind == statusAnyReturn
}

// returning reports whether a function body with this final status
// returns on every control-flow path. statusIncomplete means some path
// falls through without returning, so it does not count.
func (k statusKind) returning() bool {
	return k == statusComplete || k == statusAnyReturn
}
