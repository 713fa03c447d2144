// Package scope provides a lexically nested, stack-discipline namespace:
// a scope that can resolve a name either locally or by walking its chain of
// parents, and that refuses to silently overwrite the binding of another
// scope than its own.
package scope

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/statlang/statc/base/ordered"
)

// Scope provides a set of values that can be found given their name.
type Scope[V any] interface {
	Find(string) (V, bool)
	IsLocal(string) bool
}

type localScope[V any] struct {
	data *ordered.Map[string, V]
}

func newLocalScope[V any]() *localScope[V] {
	return &localScope[V]{data: ordered.NewMap[string, V]()}
}

func (s *localScope[V]) Find(key string) (value V, ok bool) {
	return s.data.Load(key)
}

func (s *localScope[V]) IsLocal(key string) bool {
	_, ok := s.data.Load(key)
	return ok
}

// RWScope stores key,value pairs in a local frame on top of an optional
// parent scope. A key is resolved by looking it up locally first, then
// walking up the chain of parents.
type RWScope[V any] struct {
	parent *RWScope[V]
	local  *localScope[V]
}

var _ Scope[any] = (*RWScope[any])(nil)

// New returns a new scope given a parent, which can be nil.
func New[V any](parent *RWScope[V]) *RWScope[V] {
	return &RWScope[V]{parent: parent, local: newLocalScope[V]()}
}

// Define maps key to value in the local frame, failing if key is already
// bound in that same frame (it may still shadow a binding in a parent
// frame: shadowing across frames is a feature, not an error).
func (s *RWScope[V]) Define(key string, value V) error {
	if s.local.IsLocal(key) {
		return errors.Errorf("%s is already defined in this scope", key)
	}
	s.local.data.Store(key, value)
	return nil
}

// Replace overwrites the binding of key in whichever frame currently holds
// it (local or an ancestor), failing if key is not bound anywhere.
func (s *RWScope[V]) Replace(key string, value V) error {
	if s.local.IsLocal(key) {
		s.local.data.Store(key, value)
		return nil
	}
	if s.parent == nil {
		return errors.Errorf("cannot replace %s: not defined in scope", key)
	}
	return s.parent.Replace(key, value)
}

// IsLocal returns true if key is bound in this scope's own frame.
func (s *RWScope[V]) IsLocal(key string) bool {
	return s.local.IsLocal(key)
}

// Find walks the scope and its ancestors, innermost first.
func (s *RWScope[V]) Find(key string) (value V, ok bool) {
	value, ok = s.local.Find(key)
	if ok || s.parent == nil {
		return value, ok
	}
	return s.parent.Find(key)
}

// Parent returns the enclosing scope, or nil at the root.
func (s *RWScope[V]) Parent() *RWScope[V] {
	return s.parent
}

// IsRoot returns true if this scope has no parent.
func (s *RWScope[V]) IsRoot() bool {
	return s.parent == nil
}

// LocalKeys iterates over the keys bound in this scope's own frame, in
// the order they were defined.
func (s *RWScope[V]) LocalKeys() iter.Seq[string] {
	return s.local.data.Keys()
}
