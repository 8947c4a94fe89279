package eval

import (
	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/extend"
)

// Compile is the Driver (spec §2 component 9): it runs the main
// processing pass over ss, producing a flat output Stylesheet, then
// runs the Extend Engine once over every ruleset the pass produced
// (spec §4.6: extend rewriting happens "after the main pass completes,
// over the whole output tree").
func Compile(ss *ast.Stylesheet) (*ast.Stylesheet, error) {
	ctx := NewContext()
	if err := hoist(ss, ctx); err != nil {
		return nil, err
	}

	rulesets := collectRulesets(ctx.Output.Body)
	extend.Apply(rulesets, ctx.Extensions)

	return ctx.Output, nil
}

// collectRulesets walks the output tree recursively, gathering every
// *ast.Ruleset wherever it occurs — including inside bubbled @media
// blocks and at-rule bodies — since extend.Apply rewrites selectors
// in place across the whole tree, not just its top level.
func collectRulesets(body []ast.Statement) []*ast.Ruleset {
	var out []*ast.Ruleset
	for _, st := range body {
		switch n := st.(type) {
		case *ast.Ruleset:
			out = append(out, n)
			out = append(out, collectRulesets(n.Body)...)
		case *ast.MediaQuery:
			out = append(out, collectRulesets(n.Body)...)
		case *ast.AtRule:
			out = append(out, collectRulesets(n.Body)...)
		}
	}
	return out
}
