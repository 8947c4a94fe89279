// Package extend implements the Extend Engine (spec §2 component 8,
// §4.6): collecting `:extend(...)` clauses during processing and, once
// the main pass has produced an output CSS tree, rewriting every
// ruleset's selector list to a fixed point.
package extend

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/token"
)

// ExtractExtend scans sel for a trailing `:extend(target)` or
// `:extend(target all)` clause (spec §4.6 "Collection": "any selector
// containing `:extend(TARGET)` ... registers an Extension with source
// = the current ruleset's selector and target = TARGET"). It returns
// the selector with the clause stripped, plus the Extensions the
// clause registers against source. Multiple comma-separated targets
// inside one `:extend(...)` each register their own Extension.
func ExtractExtend(sel *ast.Selector, source *ast.Selector) (*ast.Selector, []ast.Extension) {
	items := sel.Tokens.Items()
	start, end, argStart, argEnd, found := findExtendClause(items)
	if !found {
		return sel, nil
	}

	cleaned := token.NewList()
	for _, t := range items[:start] {
		cleaned.Push(t)
	}
	for _, t := range items[end:] {
		cleaned.Push(t)
	}
	cleaned.Trim()

	argTokens := items[argStart:argEnd]
	all := false
	if n := len(argTokens); n > 0 {
		last := argTokens[n-1]
		if last.Kind == token.Identifier && strings.EqualFold(last.Text, "all") {
			all = true
			argTokens = argTokens[:n-1]
			argTokens = trimTrailingWhitespace(argTokens)
		}
	}

	var exts []ast.Extension
	for _, targetTokens := range splitOnTopLevelComma(argTokens) {
		list := token.NewList()
		for _, t := range targetTokens {
			list.Push(t)
		}
		list.Trim()
		if list.Len() == 0 {
			continue
		}
		exts = append(exts, ast.Extension{
			Target: ast.NewSelector(list),
			Source: source,
			All:    all,
		})
	}
	return ast.NewSelector(cleaned), exts
}

// findExtendClause locates a `:extend(` ... `)` span in items, returning
// [start,end) covering the whole clause (colon through closing paren)
// and [argStart,argEnd) covering the parenthesized argument tokens.
func findExtendClause(items []token.Token) (start, end, argStart, argEnd int, found bool) {
	for i := 0; i < len(items); i++ {
		if items[i].Kind != token.Colon {
			continue
		}
		j := i + 1
		for j < len(items) && items[j].Kind == token.Whitespace {
			j++
		}
		if j >= len(items) || items[j].Kind != token.Identifier || !strings.EqualFold(items[j].Text, "extend") {
			continue
		}
		k := j + 1
		for k < len(items) && items[k].Kind == token.Whitespace {
			k++
		}
		if k >= len(items) || items[k].Kind != token.ParenOpen {
			continue
		}
		depth := 1
		argStart = k + 1
		m := argStart
		for m < len(items) && depth > 0 {
			switch items[m].Kind {
			case token.ParenOpen:
				depth++
			case token.ParenClosed:
				depth--
				if depth == 0 {
					return i, m + 1, argStart, m, true
				}
			}
			m++
		}
	}
	return 0, 0, 0, 0, false
}

func trimTrailingWhitespace(items []token.Token) []token.Token {
	for len(items) > 0 && items[len(items)-1].Kind == token.Whitespace {
		items = items[:len(items)-1]
	}
	return items
}

func splitOnTopLevelComma(items []token.Token) [][]token.Token {
	var out [][]token.Token
	depth := 0
	start := 0
	for i, t := range items {
		switch t.Kind {
		case token.ParenOpen:
			depth++
		case token.ParenClosed:
			if depth > 0 {
				depth--
			}
		case token.Comma:
			if depth == 0 {
				out = append(out, items[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, items[start:])
	return out
}

// ParseBareAmpersandExtend parses the value of a `&:extend(...)`
// pseudo-declaration — the body-level spelling of extend, as opposed
// to the selector-suffix spelling ExtractExtend strips — returning its
// target selectors and all-flag. ok is false when value doesn't have
// this shape at all, letting the caller fall back to treating it as an
// ordinary (if unusual) declaration.
func ParseBareAmpersandExtend(value *token.List) (targets []*ast.Selector, all bool, ok bool) {
	items := value.Items()
	i := 0
	for i < len(items) && items[i].Kind == token.Whitespace {
		i++
	}
	if i >= len(items) || items[i].Kind != token.Identifier || !strings.EqualFold(items[i].Text, "extend") {
		return nil, false, false
	}
	i++
	for i < len(items) && items[i].Kind == token.Whitespace {
		i++
	}
	if i >= len(items) || items[i].Kind != token.ParenOpen {
		return nil, false, false
	}
	depth := 1
	start := i + 1
	j := start
	for j < len(items) && depth > 0 {
		switch items[j].Kind {
		case token.ParenOpen:
			depth++
		case token.ParenClosed:
			depth--
		}
		j++
	}
	if depth != 0 {
		return nil, false, false
	}
	inner := items[start : j-1]
	if n := len(inner); n > 0 {
		last := inner[n-1]
		if last.Kind == token.Identifier && strings.EqualFold(last.Text, "all") {
			all = true
			inner = trimTrailingWhitespace(inner[:n-1])
		}
	}
	for _, targetTokens := range splitOnTopLevelComma(inner) {
		list := token.NewList()
		for _, t := range targetTokens {
			list.Push(t)
		}
		list.Trim()
		if list.Len() == 0 {
			continue
		}
		targets = append(targets, ast.NewSelector(list))
	}
	return targets, all, len(targets) > 0
}

// Apply rewrites each ruleset's selector list per the registered
// extensions, iterating to a fixed point so that a component introduced
// by one extension becomes eligible for another (spec §4.6:
// "Extensions are transitive ... iterate to a fixed point (bounded by
// the extension-count squared)").
func Apply(rulesets []*ast.Ruleset, extensions []ast.Extension) {
	if len(extensions) == 0 {
		return
	}
	// A cyclical extend chain (.a:extend(.b), .b:extend(.a)) would
	// otherwise keep adding alternating components forever; the squared
	// bound is only needed to stop that case; an acyclic extend graph
	// always reaches its fixed point in at most len(extensions) rounds.
	limit := len(extensions) + 1
	if buildExtendGraph(extensions).hasCycle() {
		limit = len(extensions)*len(extensions) + 1
	}

	for _, rs := range rulesets {
		if rs.Selector == nil {
			continue
		}
		components := rs.Selector.Components()
		seen := make(map[string]bool, len(components))
		for _, c := range components {
			seen[c.String()] = true
		}

		for iter := 0; iter < limit; iter++ {
			added := false
			snapshot := components
			for _, c := range snapshot {
				for _, ext := range extensions {
					for _, nc := range matchExtension(c, ext) {
						key := nc.String()
						if seen[key] {
							continue
						}
						seen[key] = true
						components = append(components, nc)
						added = true
					}
				}
			}
			if !added {
				break
			}
		}

		rs.Selector = ast.NewSelector(ast.ToSelectorList(components))
	}
}

// buildExtendGraph models each extension as an edge from Target, whose
// rulesets gain a selector, to Source, the selector they gain — a cycle
// here means two selectors extend each other, directly or transitively.
func buildExtendGraph(extensions []ast.Extension) *dependencyGraph {
	g := newDependencyGraph()
	for _, ext := range extensions {
		g.addEdge(ext.Target.String(), ext.Source.String())
	}
	return g
}

func matchExtension(c *ast.Selector, ext ast.Extension) []*ast.Selector {
	if ext.All {
		return matchAllSubstrings(c, ext)
	}
	if c.Equal(ext.Target) {
		return []*ast.Selector{ext.Source}
	}
	return nil
}

// matchAllSubstrings implements the `all` variant of spec §4.6's
// rewrite rule: every bounded substring occurrence of ext.Target within
// c gets its own emitted component with the match replaced by
// ext.Source.
func matchAllSubstrings(c *ast.Selector, ext ast.Extension) []*ast.Selector {
	haystack := c.String()
	needle := ext.Target.String()
	if needle == "" {
		return nil
	}
	replacement := ext.Source.String()

	var out []*ast.Selector
	from := 0
	for {
		idx := indexBounded(haystack, needle, from)
		if idx < 0 {
			break
		}
		spliced := haystack[:idx] + replacement + haystack[idx+len(needle):]
		out = append(out, selectorFromText(spliced))
		from = idx + 1
	}
	return out
}

func indexBounded(haystack, needle string, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle && boundaryOK(haystack, i, i+len(needle)) {
			return i
		}
	}
	return -1
}

// boundaryOK requires the match to sit at a combinator or string
// boundary on both sides (spec §4.6: "bounded by combinators or
// component boundaries"), so `.ab` is never matched by a search for
// `.a`.
func boundaryOK(s string, start, end int) bool {
	if start > 0 && !isBoundaryByte(s[start-1]) {
		return false
	}
	if end < len(s) && !isBoundaryByte(s[end]) {
		return false
	}
	return true
}

func isBoundaryByte(b byte) bool {
	switch b {
	case ' ', '>', '+', '~', ',':
		return true
	default:
		return false
	}
}

func selectorFromText(s string) *ast.Selector {
	list := token.NewList()
	list.Push(token.New(token.Other, s))
	return ast.NewSelector(list)
}
