// Package catalog implements the built-in signature catalog of spec.md
// §4.2: a keyed lookup from function (and operator) name to the set of
// argument-type tuples it accepts, together with the overload-resolution
// query the analyzer and the optimizer's applicability guard both use.
package catalog

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/statlang/statc/types"
)

// Overload is one accepted parameter tuple and the return type it
// produces.
type Overload struct {
	Params []types.Formal
	Return types.ReturnType
}

// Catalog is the full, read-only-after-load set of built-in names. It is
// immutable once built; nothing in the compiler ever mutates it after
// New returns.
type Catalog struct {
	entries map[string][]Overload
}

// Lookup returns the overloads registered for name, in declaration
// order, and whether name is a built-in at all.
func (c *Catalog) Lookup(name string) ([]Overload, bool) {
	overloads, ok := c.entries[name]
	return overloads, ok
}

// IsBuiltin reports whether name is registered in the catalog, at any
// arity.
func (c *Catalog) IsBuiltin(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Names returns every registered built-in name, sorted, for stable
// "no such function" diagnostic listings (the catalog is keyed by a
// plain map, whose iteration order is otherwise unspecified).
func (c *Catalog) Names() []string {
	names := maps.Keys(c.entries)
	sort.Strings(names)
	return names
}

// HasNullary reports whether name has a zero-argument overload. The
// freshness rule (spec.md §4.5.2) only lets a user identifier shadow a
// built-in when no such overload exists: a bare reference to a nullary
// built-in is indistinguishable from a variable read, so the user can
// never have intended to call it.
func (c *Catalog) HasNullary(name string) bool {
	for _, o := range c.entries[name] {
		if len(o.Params) == 0 {
			return true
		}
	}
	return false
}

// ReturnType implements the overload-resolution algorithm of spec.md
// §4.2: an exact match wins outright; failing that, the first overload
// compatible under CompatibleArgumentsModConv is a candidate, and among
// all candidates the one with the narrowest total element promotion
// wins, ties broken by declaration order. It reports false when no
// overload of name matches actuals at all.
func (c *Catalog) ReturnType(name string, actuals []types.Actual) (types.ReturnType, bool) {
	overloads, ok := c.entries[name]
	if !ok {
		return types.ReturnType{}, false
	}
	for _, o := range overloads {
		if exactMatch(o.Params, actuals) {
			return o.Return, true
		}
	}
	best := -1
	bestRank := 0
	for i, o := range overloads {
		if !types.CompatibleArgumentsModConv(name, o.Params, actuals) {
			continue
		}
		rank := promotionRank(o.Params, actuals)
		if best == -1 || rank < bestRank {
			best, bestRank = i, rank
		}
	}
	if best == -1 {
		return types.ReturnType{}, false
	}
	return overloads[best].Return, true
}

func exactMatch(formals []types.Formal, actuals []types.Actual) bool {
	if len(formals) != len(actuals) {
		return false
	}
	for i, f := range formals {
		a := actuals[i]
		if !f.Type.Equal(a.Type) || !types.CanConvertAd(a.Ad, f.Ad) {
			return false
		}
	}
	return true
}

// promotionRank measures how far actuals are from formals once
// CompatibleArgumentsModConv has already said the match is legal: the
// number of element promotions needed, recursing through arrays, plus
// one per ad-level widening. Lower is narrower.
func promotionRank(formals []types.Formal, actuals []types.Actual) int {
	rank := 0
	for i, f := range formals {
		rank += typeCost(f.Type, actuals[i].Type)
		if f.Ad != actuals[i].Ad {
			rank++
		}
	}
	return rank
}

func typeCost(formal, actual types.UnsizedType) int {
	if formal.Equal(actual) {
		return 0
	}
	if formal.Kind() == types.ArrayKind && actual.Kind() == types.ArrayKind {
		return typeCost(formal.Elem(), actual.Elem())
	}
	return 1
}
