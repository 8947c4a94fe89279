// Package scope implements the Scope / Symbol Tables component (spec
// §4.3): a per-ruleset mapping from variable name to token-list, and
// from mixin name to definition list, chained by lexical parent.
//
// Scope is generic over the mixin-definition type so that this package
// has no import-time dependency on internal/ast (which in turn embeds
// *Scope[M] in its Ruleset node) — the same shape as the teacher's
// internal/collections.Set[T], just applied to break a would-be cycle
// rather than for its own sake.
package scope

import "lessc.dev/lessc/internal/token"

// Scope is a lexical scope: a frame of variable and mixin bindings
// linked to its lexical parent. M is the concrete mixin-definition type
// (internal/ast.MixinDefinition in every real use).
type Scope[M any] struct {
	parent *Scope[M]
	vars   map[string]varBinding[M]
	mixins map[string][]M
}

// varBinding pairs a variable's token-list with the scope in which it
// was textually defined, per spec §4.1's lazy-binding contract: the
// binding is re-evaluated in defScope, not at the call/use site.
type varBinding[M any] struct {
	list     *token.List
	defScope *Scope[M]
}

// New creates a scope chained to the given parent (nil for the root
// scope of a stylesheet).
func New[M any](parent *Scope[M]) *Scope[M] {
	return &Scope[M]{
		parent: parent,
		vars:   make(map[string]varBinding[M]),
		mixins: make(map[string][]M),
	}
}

// Parent returns the lexical parent scope, or nil at the root.
func (s *Scope[M]) Parent() *Scope[M] {
	return s.parent
}

// DefineVariable binds name to list within this scope. defScope is the
// scope the binding should be re-evaluated against (normally s itself;
// a mixin's default-parameter bindings instead capture the mixin
// definition's own lexical parent, per spec §4.5 "Lazy evaluation of
// defaults").
func (s *Scope[M]) DefineVariable(name string, list *token.List, defScope *Scope[M]) {
	if defScope == nil {
		defScope = s
	}
	s.vars[name] = varBinding[M]{list: list, defScope: defScope}
}

// LookupVariable walks the parent chain for name, returning the bound
// token-list, the scope to re-evaluate it in, and whether it was
// found.
func (s *Scope[M]) LookupVariable(name string) (list *token.List, defScope *Scope[M], ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, found := cur.vars[name]; found {
			return b.list, b.defScope, true
		}
	}
	return nil, nil, false
}

// DefineMixin appends def to the (possibly empty) list of definitions
// registered under name in this scope. Spec §4.3: "Mixins with the same
// name accumulate into a list."
func (s *Scope[M]) DefineMixin(name string, def M) {
	s.mixins[name] = append(s.mixins[name], def)
}

// LookupMixins walks the parent chain and returns every definition
// registered under name at the nearest scope that has any, in
// definition order. LESS mixin lookup does not merge definitions
// across nesting levels with the same name — the nearest scope shadows
// outer ones, matching ordinary lexical shadowing for variables.
func (s *Scope[M]) LookupMixins(name string) ([]M, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if defs, found := cur.mixins[name]; found {
			return defs, true
		}
	}
	return nil, false
}

// OwnMixins returns only the definitions registered directly in this
// scope (no parent walk), without consulting the general lexical chain.
func (s *Scope[M]) OwnMixins(name string) []M {
	return s.mixins[name]
}
