package analyzer

import (
	"github.com/statlang/statc/diag"
	"github.com/statlang/statc/pos"
)

// validateIdentifier implements spec.md §4.5.1.
func (a *Analyzer) validateIdentifier(name string, span pos.Span) error {
	if name == a.modelName {
		a.report(diag.IdentifierIsModelName, span, "%q collides with the model name", name)
		return errTypeFailed
	}
	if hasDoubleUnderscoreSuffix(name) {
		a.report(diag.IdentifierIsKeyword, span, "%q ends with a reserved double underscore", name)
		return errTypeFailed
	}
	if isReservedName(name) {
		a.report(diag.IdentifierIsKeyword, span, "%q is a reserved keyword", name)
		return errTypeFailed
	}
	return nil
}

// checkFresh implements spec.md §4.5.2 and §4.5.3: name must be
// unbound in the current scope and must not collide with a built-in
// the way isNullary describes, and the same check additionally applies
// to every distribution-suffix sibling of name.
func (a *Analyzer) checkFresh(name string, isNullary bool, span pos.Span) error {
	if err := a.checkFreshOne(name, isNullary, span); err != nil {
		return err
	}
	for _, variant := range freshnessVariants(name) {
		if err := a.checkFreshOne(variant, isNullary, span); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkFreshOne(name string, isNullary bool, span pos.Span) error {
	if a.syms.IsLocal(name) {
		a.report(diag.IdentifierInUse, span, "%q is already defined in this scope", name)
		return errTypeFailed
	}
	// A user value may shadow an overloadable built-in (the user can
	// only have meant a value, never a call, by writing a bare name),
	// but never a zero-arity one, which is indistinguishable from a
	// call to that built-in.
	if a.catalog.IsBuiltin(name) && (isNullary || a.catalog.HasNullary(name)) {
		a.report(diag.IdentifierIsStanMathName, span, "%q collides with a built-in", name)
		return errTypeFailed
	}
	return nil
}
