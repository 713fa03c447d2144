// Package diag implements the structured diagnostic channel of spec.md
// §6-7: a closed set of error kinds, a diagnostic value carrying one of
// them plus a location and a message, and an accumulator the analyzer
// pushes diagnostics into instead of raising exceptions.
package diag

import (
	"fmt"

	"github.com/statlang/statc/pos"
)

// Kind is the exhaustive set of error kinds from spec.md §7.
type Kind int

const (
	IdentifierIsKeyword Kind = iota
	IdentifierIsModelName
	IdentifierIsStanMathName
	IdentifierInUse
	IdentifierNotInScope

	InvalidIndex

	IllTypedIfReturnTypes
	IllTypedTernaryIf

	IllTypedFunctionApp
	IllTypedNRFunction
	IllTypedNotAFunction
	IllTypedNoSuchFunction

	IllTypedBinOp
	IllTypedPrefixOp
	IllTypedPostfixOp

	FnMapRect
	FnConditioning
	FnTargetPlusEquals
	FnRng

	FatalInternal
)

var kindNames = map[Kind]string{
	IdentifierIsKeyword:      "IdentifierIsKeyword",
	IdentifierIsModelName:    "IdentifierIsModelName",
	IdentifierIsStanMathName: "IdentifierIsStanMathName",
	IdentifierInUse:          "IdentifierInUse",
	IdentifierNotInScope:     "IdentifierNotInScope",
	InvalidIndex:             "InvalidIndex",
	IllTypedIfReturnTypes:    "IllTypedIfReturnTypes",
	IllTypedTernaryIf:        "IllTypedTernaryIf",
	IllTypedFunctionApp:      "IllTypedFunctionApp",
	IllTypedNRFunction:       "IllTypedNRFunction",
	IllTypedNotAFunction:     "IllTypedNotAFunction",
	IllTypedNoSuchFunction:   "IllTypedNoSuchFunction",
	IllTypedBinOp:            "IllTypedBinOp",
	IllTypedPrefixOp:         "IllTypedPrefixOp",
	IllTypedPostfixOp:        "IllTypedPostfixOp",
	FnMapRect:                "FnMapRect",
	FnConditioning:           "FnConditioning",
	FnTargetPlusEquals:       "FnTargetPlusEquals",
	FnRng:                    "FnRng",
	FatalInternal:            "FatalInternal",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownKind"
}

// Fatal reports whether k aborts the whole compilation rather than just
// the current top-level block (spec.md §7: "Fatal errors abort
// compilation").
func (k Kind) Fatal() bool { return k == FatalInternal }

// Diagnostic is one structured error: a kind, a location span, and a
// prose message. It implements error so it can be threaded through
// ordinary Go error-handling as well as collected by an Appender.
type Diagnostic struct {
	Kind    Kind
	Span    pos.Span
	Message string
}

// New builds a Diagnostic with a printf-style message.
func New(kind Kind, span pos.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string {
	if d.Span.IsSet() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
