package eval

import (
	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/extend"
	"lessc.dev/lessc/internal/scope"
	"lessc.dev/lessc/internal/token"
)

// hoist is the entry point the Driver calls for the stylesheet root: it
// processes the root's statements with no parent selectors, so every
// top-level ruleset starts a fresh selector chain, and no enclosing
// ruleset receives its bubbled @media blocks.
func hoist(ss *ast.Stylesheet, ctx *Context) error {
	if ss.Scope == nil {
		ss.Scope = scope.New[*ast.MixinDefinition](nil)
	}
	return processBody(ss.Body, ss.Scope, nil, nil, ctx)
}

// processBody walks one set of statements (a stylesheet's or ruleset's
// body) against sc, appending whatever they produce to ctx.Output.
// parentSelectors is the already-flattened selector chain inherited
// from enclosing rulesets (spec §4.4); current is the nearest enclosing
// LESS ruleset, used only to decide whether a nested @media should
// bubble (current != nil) or stay where it is (current == nil, at the
// stylesheet root).
func processBody(body []ast.Statement, sc *ast.Scope, parentSelectors []*ast.Selector, current *ast.Ruleset, ctx *Context) error {
	// Mixin definitions are registered before any statement in this body
	// runs, not in textual order: LESS lets a mixin call reach a
	// definition declared later in the same scope (spec §4.5 is silent
	// on ordering; this matches mainstream LESS's collect-then-evaluate
	// behavior). Variable definitions are deliberately NOT pre-registered
	// — they resolve sequentially, last definition wins at the point of
	// use, which is the documented simplification for this compiler.
	for _, st := range body {
		if md, ok := st.(*ast.MixinDefinition); ok {
			md.Scope = sc
			sc.DefineMixin(md.Selector.String(), md)
		}
	}

	for _, st := range body {
		if st.Reference() {
			// Statements from a `(reference)` import still participate in
			// mixin/extend resolution (already registered in sc) but are
			// never themselves emitted.
			continue
		}
		switch n := st.(type) {
		case *ast.CssComment:
			ctx.Output.Body = append(ctx.Output.Body, n)

		case *ast.Declaration:
			if err := processDeclaration(n, sc, current, ctx); err != nil {
				return err
			}

		case *ast.MixinDefinition:
			// Mixin definitions produce no output of their own; they are
			// already registered in sc by the pre-pass above.

		case *ast.MixinCall:
			if err := Invoke(n, sc, parentSelectors, current, ctx); err != nil {
				return err
			}

		case *ast.Ruleset:
			if err := processRuleset(n, sc, parentSelectors, ctx); err != nil {
				return err
			}

		case *ast.MediaQuery:
			if err := processMediaQuery(n, sc, parentSelectors, current, ctx); err != nil {
				return err
			}

		case *ast.AtRule:
			if err := processAtRule(n, sc, parentSelectors, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// processDeclaration handles a variable definition, a bare
// `&:extend(...)` pseudo-declaration, or an ordinary CSS declaration
// (spec §4.1, §4.6).
func processDeclaration(decl *ast.Declaration, sc *ast.Scope, current *ast.Ruleset, ctx *Context) error {
	if decl.IsVariable() {
		sc.DefineVariable(decl.VariableName(), decl.Value, sc)
		return nil
	}

	if current != nil && decl.Property != nil {
		if targets, all, ok := tryBareAmpersandExtend(decl); ok {
			for _, t := range targets {
				ctx.Extensions = append(ctx.Extensions, ast.Extension{
					Target: t,
					Source: current.Selector,
					All:    all,
				})
			}
			return nil
		}
	}

	propItems, err := expandTokenInterpolation(decl.Property.Items(), sc, ctx)
	if err != nil {
		return err
	}
	value, err := Process(decl.Value, sc, ctx)
	if err != nil {
		return err
	}

	out := &ast.Declaration{
		Base:      decl.Base,
		Property:  token.NewList(propItems...),
		Value:     value,
		Important: decl.Important,
	}
	ctx.Output.Body = append(ctx.Output.Body, out)
	return nil
}

// tryBareAmpersandExtend recognizes a `&: extend(...)` body statement
// (spec §4.6's body-level extend spelling, distinct from the
// selector-suffix `&:extend(...)` ExtractExtend strips).
func tryBareAmpersandExtend(decl *ast.Declaration) (targets []*ast.Selector, all bool, ok bool) {
	prop := decl.Property.Stringify()
	if prop != ast.AmpersandText || decl.Value == nil {
		return nil, false, false
	}
	return extend.ParseBareAmpersandExtend(decl.Value)
}

// processRuleset implements Ruleset Processing (spec §2 component 5,
// §4.4): expand the selector's interpolation and `:extend(...)`
// clauses, flatten it against the inherited parent selectors, emit one
// flat output ruleset, and recurse into the body with the flattened
// selector as the new parent chain.
func processRuleset(rs *ast.Ruleset, sc *ast.Scope, parentSelectors []*ast.Selector, ctx *Context) error {
	rawItems, err := expandTokenInterpolation(rs.Selector.Tokens.Items(), sc, ctx)
	if err != nil {
		return err
	}
	interpolated := ast.NewSelector(token.NewList(rawItems...))

	// Strip each component's :extend(...) clause before flattening (a
	// raw clause must never survive into the cross-product output), but
	// keep its parsed target list so the Extension can be registered
	// once the component's flattened form — its real Source — is known.
	var finalSelectors []*ast.Selector
	for _, comp := range interpolated.Components() {
		cleaned, compExts := extend.ExtractExtend(comp, nil)
		flatForComp := ast.FlattenSelectors(cleaned, parentSelectors)
		finalSelectors = append(finalSelectors, flatForComp...)
		for _, flat := range flatForComp {
			for _, e := range compExts {
				ctx.Extensions = append(ctx.Extensions, ast.Extension{
					Target: e.Target,
					Source: flat,
					All:    e.All,
				})
			}
		}
	}
	outSelector := ast.NewSelector(ast.ToSelectorList(finalSelectors))

	childSc := scope.New[*ast.MixinDefinition](sc)
	rs.Scope = childSc

	out := &ast.Ruleset{
		Base:     rs.Base,
		Selector: outSelector,
		Scope:    childSc,
	}
	ctx.Output.Body = append(ctx.Output.Body, out)

	// The body's declarations belong to out; everything else it produces
	// (nested rulesets, bubbled @media, at-rules) follows out in the
	// enclosing output.
	savedOutput := ctx.Output
	scratch := &ast.Stylesheet{Scope: childSc}
	ctx.Output = scratch
	err = processBody(rs.Body, childSc, finalSelectors, rs, ctx)
	ctx.Output = savedOutput
	if err != nil {
		return err
	}
	for _, st := range scratch.Body {
		if decl, ok := st.(*ast.Declaration); ok {
			out.Body = append(out.Body, decl)
			continue
		}
		ctx.Output.Body = append(ctx.Output.Body, st)
	}
	return nil
}

// processAtRule handles a generic at-rule (spec §4.4's treatment of
// everything other than @media): its prelude is interpolated, and a
// blockless at-rule (`@charset "utf-8";`) is emitted verbatim. A
// blocked at-rule's nested statements are processed as ordinary body
// statements against the at-rule's own scope; any ruleset-shaped
// sub-blocks they contain (e.g. @keyframes' `from {}`/`to {}`) are
// hoisted to the top-level output the same as any other nested
// ruleset, since the output tree has no nested-at-rule representation
// beyond the declaration-only at-rules this compiler targets.
func processAtRule(ar *ast.AtRule, sc *ast.Scope, parentSelectors []*ast.Selector, ctx *Context) error {
	preludeItems, err := expandTokenInterpolation(ar.Prelude.Items(), sc, ctx)
	if err != nil {
		return err
	}
	prelude := token.NewList(preludeItems...)

	if !ar.HasBlock {
		out := &ast.AtRule{Base: ar.Base, Name: ar.Name, Prelude: prelude, HasBlock: false}
		ctx.Output.Body = append(ctx.Output.Body, out)
		return nil
	}

	childSc := scope.New[*ast.MixinDefinition](sc)
	ar.Scope = childSc

	out := &ast.AtRule{Base: ar.Base, Name: ar.Name, Prelude: prelude, HasBlock: true, Scope: childSc}
	ctx.Output.Body = append(ctx.Output.Body, out)

	savedOutput := ctx.Output
	scratch := &ast.Stylesheet{Scope: childSc}
	ctx.Output = scratch
	err = processBody(ar.Body, childSc, parentSelectors, nil, ctx)
	ctx.Output = savedOutput
	if err != nil {
		return err
	}

	for _, st := range scratch.Body {
		if decl, ok := st.(*ast.Declaration); ok {
			out.Body = append(out.Body, decl)
			continue
		}
		ctx.Output.Body = append(ctx.Output.Body, st)
	}
	return nil
}

// processMediaQuery implements @media bubbling (spec §4.4): when
// nested inside a LESS ruleset, the ruleset's own selector is carried
// into a cloned ruleset inside a new top-level @media block instead of
// emitting the @media nested inside the output ruleset, so that CSS
// (which has no nested @media-in-selector syntax) sees one flat
// sequence of top-level rules. At the stylesheet root (current == nil)
// the @media is simply emitted as its own top-level block.
func processMediaQuery(mq *ast.MediaQuery, sc *ast.Scope, parentSelectors []*ast.Selector, current *ast.Ruleset, ctx *Context) error {
	preludeItems, err := expandTokenInterpolation(mq.Prelude.Items(), sc, ctx)
	if err != nil {
		return err
	}
	prelude := token.NewList(preludeItems...)

	mqScope := scope.New[*ast.MixinDefinition](sc)
	mq.Scope = mqScope

	outMQ := &ast.MediaQuery{Base: mq.Base, Prelude: prelude, Scope: mqScope}
	ctx.Output.Body = append(ctx.Output.Body, outMQ)

	savedOutput := ctx.Output
	scratch := &ast.Stylesheet{Scope: mqScope}
	ctx.Output = scratch

	if current != nil {
		bubbled := &ast.Ruleset{Base: current.Base, Selector: current.Selector, Scope: current.Scope}
		scratch.Body = append(scratch.Body, bubbled)
		savedBubbled := ctx.Output
		ctx.Output = &ast.Stylesheet{Scope: current.Scope}
		err = processBody(mq.Body, mqScope, parentSelectors, current, ctx)
		for _, st := range ctx.Output.Body {
			if decl, ok := st.(*ast.Declaration); ok {
				bubbled.Body = append(bubbled.Body, decl)
				continue
			}
			scratch.Body = append(scratch.Body, st)
		}
		ctx.Output = savedBubbled
	} else {
		err = processBody(mq.Body, mqScope, parentSelectors, nil, ctx)
	}

	ctx.Output = savedOutput
	if err != nil {
		return err
	}
	outMQ.Body = scratch.Body
	return nil
}
