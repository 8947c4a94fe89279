package eval

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/lesserr"
	"lessc.dev/lessc/internal/scope"
	"lessc.dev/lessc/internal/token"
)

// Invoke implements the Mixin Resolver & Invoker (spec §2 component 7,
// §4.5): it resolves call's name path to candidate definitions, filters
// by arity/pattern/guard, and invokes every definition that passes —
// LESS's guard-overloading semantics invoke all matching alternatives,
// not just the first, so a call can legitimately expand to statements
// from more than one definition.
func Invoke(call *ast.MixinCall, callerSc *ast.Scope, parentSelectors []*ast.Selector, current *ast.Ruleset, ctx *Context) error {
	if ctx.depth >= ctx.RecursionLimit {
		return lesserr.NewRecursionLimit(call.Loc, ctx.RecursionLimit)
	}

	name := strings.Join(call.NamePath, "")
	candidates := resolveCandidates(call.NamePath, callerSc)
	if len(candidates) == 0 {
		return lesserr.NewMixinNotFound(call.Loc, name)
	}

	positional, named, err := evaluateCallArgs(call, callerSc, ctx)
	if err != nil {
		return err
	}

	matchedAny := false
	for _, def := range candidates {
		if !arityMatches(def, len(call.Args)) {
			continue
		}
		if !patternMatches(def, positional) {
			continue
		}
		invScope, ok := bindInvocation(def, positional, named)
		if !ok {
			continue
		}
		pass, err := guardsPass(def, invScope, ctx)
		if err != nil {
			return err
		}
		if !pass {
			continue
		}
		matchedAny = true

		ctx.depth++
		err = processBody(def.Body, invScope, parentSelectors, current, ctx)
		ctx.depth--
		if err != nil {
			return err
		}
	}
	if !matchedAny {
		return lesserr.NewMixinNotFound(call.Loc, name)
	}
	return nil
}

// resolveCandidates walks a dotted/hashed name path (spec §4.5 "Name
// paths"): the first segment is looked up lexically from callerSc,
// each further segment is looked up as a mixin definition nested
// directly in the previous segment's matched definitions' bodies.
func resolveCandidates(namePath []string, sc *ast.Scope) []*ast.MixinDefinition {
	if len(namePath) == 0 {
		return nil
	}
	defs, ok := sc.LookupMixins(namePath[0])
	if !ok {
		return nil
	}
	for _, seg := range namePath[1:] {
		var next []*ast.MixinDefinition
		for _, d := range defs {
			next = append(next, findNestedMixins(d.Body, seg, d.Scope)...)
		}
		defs = next
		if len(defs) == 0 {
			return nil
		}
	}
	return defs
}

// findNestedMixins looks for a name-path segment among the
// MixinDefinition statements nested directly in stmts. A nested
// definition only gets its Scope assigned once its own enclosing body
// is invoked (see processBody's registration pre-pass); namespace-only
// access (`a.b()` without ever calling `a()`) would never reach that
// point, so it falls back to the parent's own Scope here — the closure
// a nested mixin would have if its parent were invoked with no
// arguments it reads.
func findNestedMixins(stmts []ast.Statement, name string, parentScope *ast.Scope) []*ast.MixinDefinition {
	var out []*ast.MixinDefinition
	for _, st := range stmts {
		if md, ok := st.(*ast.MixinDefinition); ok && md.Selector.String() == name {
			if md.Scope == nil {
				md.Scope = parentScope
			}
			out = append(out, md)
		}
	}
	return out
}

func evaluateCallArgs(call *ast.MixinCall, sc *ast.Scope, ctx *Context) ([]*token.List, map[string]*token.List, error) {
	named := map[string]*token.List{}
	var positional []*token.List
	for _, a := range call.Args {
		evaluated, err := Process(a.Value, sc, ctx)
		if err != nil {
			return nil, nil, err
		}
		if a.Name != "" {
			named[a.Name] = evaluated
		} else {
			positional = append(positional, evaluated)
		}
	}
	return positional, named, nil
}

func arityMatches(def *ast.MixinDefinition, passed int) bool {
	required := def.RequiredCount()
	if passed < required {
		return false
	}
	if def.Unlimited || def.RestParam != "" {
		return true
	}
	return passed <= required+def.OptionalCount()
}

// patternMatches checks literal pattern-match parameters (spec §4.5
// "Pattern match") against the corresponding positional actuals.
func patternMatches(def *ast.MixinDefinition, positional []*token.List) bool {
	for i, p := range def.Params {
		if !p.IsPattern() {
			continue
		}
		if i >= len(positional) {
			return false
		}
		if !p.Literal.NormalizedEqual(positional[i]) {
			return false
		}
	}
	return true
}

// bindInvocation builds the invocation scope (lexically parented at
// the definition's own enclosing scope, per spec §4.5's closure
// semantics) and binds parameters, the rest parameter, and the
// synthetic `@arguments` list into it.
func bindInvocation(def *ast.MixinDefinition, positional []*token.List, named map[string]*token.List) (*ast.Scope, bool) {
	invScope := scope.New[*ast.MixinDefinition](def.Scope)

	posIdx := 0
	for _, p := range def.Params {
		if p.IsPattern() {
			if posIdx < len(positional) {
				posIdx++
			}
			continue
		}
		if p.Name == "" {
			continue
		}
		if lst, ok := named[p.Name]; ok {
			invScope.DefineVariable(p.Name, lst, invScope)
			continue
		}
		if posIdx < len(positional) {
			invScope.DefineVariable(p.Name, positional[posIdx], invScope)
			posIdx++
			continue
		}
		if p.HasDefault {
			// Lazy evaluation of defaults (spec §4.5): bound to the
			// definition's own lexical scope, not the invocation scope.
			invScope.DefineVariable(p.Name, p.Default, def.Scope)
			continue
		}
		return nil, false
	}

	if def.RestParam != "" {
		rest := token.NewList()
		for i := posIdx; i < len(positional); i++ {
			if i > posIdx {
				rest.Push(token.New(token.Whitespace, " "))
			}
			rest.PushList(positional[i])
		}
		invScope.DefineVariable(def.RestParam, rest, invScope)
	}

	argsList := token.NewList()
	for i, lst := range positional {
		if i > 0 {
			argsList.Push(token.New(token.Whitespace, " "))
		}
		argsList.PushList(lst)
	}
	invScope.DefineVariable("arguments", argsList, invScope)

	return invScope, true
}
