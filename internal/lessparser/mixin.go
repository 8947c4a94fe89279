package lessparser

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/lesserr"
	"lessc.dev/lessc/internal/token"
)

// looksLikeMixinCallHead reports whether items begins with a dotted/
// hashed mixin name path (spec §4.5 "Name paths": "a leading `.` or `#`
// is part of the name") — a `.`/`#`-prefixed identifier, optionally
// chained with more such groups with no intervening whitespace.
func looksLikeMixinCallHead(items []token.Token) bool {
	i := 0
	groups := 0
	for i < len(items) {
		if !(items[i].Text == "." || items[i].Kind == token.Hash) {
			break
		}
		i++
		if i < len(items) && items[i].Kind == token.Identifier {
			i++
		}
		groups++
		if i < len(items) && items[i].Text == "." {
			continue
		}
		break
	}
	return groups > 0
}

// buildMixinCall parses `.a.b.c(args) [!important]` into a MixinCall.
// A bare `.mixin;` with no parens at all is also accepted (LESS's
// parameterless mixin-call shorthand).
func (p *Parser) buildMixinCall(items []token.Token, loc token.Location) (ast.Statement, error) {
	namePath, rest := readNamePath(items)

	important := false
	if n := len(rest); n >= 2 && rest[n-1].Kind == token.Identifier &&
		strings.EqualFold(rest[n-1].Text, "important") && rest[n-2].Text == "!" {
		important = true
		rest = trimTokens(rest[:n-2])
	} else {
		rest = trimTokens(rest)
	}

	var args []ast.Argument
	if len(rest) > 0 {
		if rest[0].Kind != token.ParenOpen || rest[len(rest)-1].Kind != token.ParenClosed {
			return nil, lesserr.NewParseError(loc, "mixin call %s has a malformed argument list", strings.Join(namePath, ""))
		}
		inner := trimTokens(rest[1 : len(rest)-1])
		args = parseArgs(inner)
	}

	return &ast.MixinCall{
		Base:      ast.Base{Loc: loc},
		NamePath:  namePath,
		Args:      args,
		Important: important,
	}, nil
}

// readNamePath consumes the leading dotted/hashed name-path groups of
// items and returns them alongside the remaining tokens.
func readNamePath(items []token.Token) (path []string, rest []token.Token) {
	i := 0
	for i < len(items) {
		if !(items[i].Text == "." || items[i].Kind == token.Hash) {
			break
		}
		part := items[i].Text
		i++
		if i < len(items) && items[i].Kind == token.Identifier {
			part += items[i].Text
			i++
		}
		path = append(path, part)
		if i < len(items) && items[i].Text == "." {
			continue
		}
		break
	}
	return path, items[i:]
}

// parseArgs splits a parenthesized argument list's inner tokens on
// top-level commas (and, failing any comma, top-level semicolons — the
// LESS separator used when an argument itself contains commas), then
// classifies each as named (`@name: value`) or positional.
func parseArgs(inner []token.Token) []ast.Argument {
	groups := splitTopLevel(inner, token.Comma, "")
	if len(groups) == 1 && len(inner) > 0 {
		if semi := splitTopLevel(inner, token.Semicolon, ""); len(semi) > 1 {
			groups = semi
		}
	}
	var args []ast.Argument
	for _, g := range groups {
		g = trimTokens(g)
		if len(g) == 0 {
			continue
		}
		if len(g) >= 2 && g[0].Kind == token.AtKeyword {
			if idx := topLevelColon(g); idx > 0 && soleAtKeywordHead(g, idx) {
				args = append(args, ast.Argument{
					Name:  strings.TrimPrefix(g[0].Text, "@"),
					Value: token.NewList(trimTokens(g[idx+1:])...),
				})
				continue
			}
		}
		args = append(args, ast.Argument{Value: token.NewList(g...)})
	}
	return args
}

// splitTopLevel splits items on occurrences of a token matching kind
// (and, if text != "", matching text too) that sit at paren/bracket
// depth 0.
func splitTopLevel(items []token.Token, kind token.Kind, text string) [][]token.Token {
	var out [][]token.Token
	depth := 0
	start := 0
	for i, t := range items {
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && t.Kind == kind && (text == "" || t.Text == text) {
			out = append(out, items[start:i])
			start = i + 1
		}
	}
	out = append(out, items[start:])
	return out
}

// tryParseMixinDefHead attempts to read items as a mixin definition's
// selector head: a dotted/hashed name (possibly a multi-segment name
// path, as readNamePath reads it) followed immediately by a
// parenthesized parameter list and an optional `when` guard clause,
// with nothing else in the prelude. Returns ok == false for anything
// that doesn't match this exact shape, so the caller falls back to
// parsing items as an ordinary ruleset selector.
func tryParseMixinDefHead(items []token.Token) (*ast.MixinDefinition, bool) {
	if len(items) == 0 || !(items[0].Text == "." || items[0].Kind == token.Hash) {
		return nil, false
	}
	namePath, rest := readNamePath(items)
	if len(namePath) == 0 || len(rest) == 0 || rest[0].Kind != token.ParenOpen {
		return nil, false
	}

	depth := 0
	closeIdx := -1
	for i, t := range rest {
		switch t.Kind {
		case token.ParenOpen:
			depth++
		case token.ParenClosed:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return nil, false
	}

	paramTokens := trimTokens(rest[1:closeIdx])
	after := trimTokens(rest[closeIdx+1:])

	params, restName, unlimited, ok := parseParams(paramTokens)
	if !ok {
		return nil, false
	}

	var guards []ast.GuardGroup
	if len(after) > 0 {
		if !(after[0].Kind == token.Identifier && strings.EqualFold(after[0].Text, "when")) {
			return nil, false
		}
		guards = parseGuards(trimTokens(after[1:]))
	}

	def := &ast.MixinDefinition{
		Params:    params,
		RestParam: restName,
		Unlimited: unlimited,
		Guards:    guards,
	}
	def.Selector = ast.NewSelector(token.NewList(items[:len(items)-len(rest)]...))
	return def, true
}

// parseParams parses a mixin definition's parameter list (spec §3:
// "ordered parameter list (name, optional default token-list), an
// optional rest-parameter name, an unlimited-arguments flag").
func parseParams(tokens []token.Token) (params []ast.Param, restName string, unlimited bool, ok bool) {
	groups := splitTopLevel(tokens, token.Comma, "")
	if len(groups) == 1 && len(tokens) == 0 {
		return nil, "", false, true
	}
	for _, g := range groups {
		g = trimTokens(g)
		if len(g) == 0 {
			continue
		}
		if isEllipsis(g) {
			unlimited = true
			continue
		}
		if g[0].Kind == token.AtKeyword {
			name := strings.TrimPrefix(g[0].Text, "@")
			if len(g) >= 2 && isEllipsis(g[1:]) {
				restName = name
				unlimited = true
				continue
			}
			if idx := topLevelColon(g); idx > 0 && soleAtKeywordHead(g, idx) {
				params = append(params, ast.Param{
					Name:       name,
					Default:    token.NewList(trimTokens(g[idx+1:])...),
					HasDefault: true,
				})
				continue
			}
			if len(g) == 1 {
				params = append(params, ast.Param{Name: name})
				continue
			}
			return nil, "", false, false
		}
		// A non-@keyword parameter token is a literal pattern-match slot
		// (spec §4.5 "Pattern match").
		params = append(params, ast.Param{Literal: token.NewList(g...)})
	}
	return params, restName, unlimited, true
}

// soleAtKeywordHead reports whether everything between the leading
// at-keyword (index 0) and the colon at idx is insignificant
// whitespace, i.e. the colon genuinely terminates a bare `@name`
// rather than some larger expression that happens to contain one.
func soleAtKeywordHead(g []token.Token, idx int) bool {
	for i := 1; i < idx; i++ {
		if g[i].Kind != token.Whitespace {
			return false
		}
	}
	return true
}

func isEllipsis(tokens []token.Token) bool {
	joined := token.NewList(tokens...).Stringify()
	return strings.TrimSpace(joined) == "..."
}

// parseGuards parses a `when` clause into OR-of-AND guard groups (spec
// §4.5 "Guards"): top-level commas separate OR alternatives, the
// keyword `and` separates AND conditions within an alternative, and a
// leading `not` negates the condition that follows it.
func parseGuards(tokens []token.Token) []ast.GuardGroup {
	var groups []ast.GuardGroup
	for _, orGroup := range splitTopLevel(tokens, token.Comma, "") {
		var group ast.GuardGroup
		for _, andPart := range splitOnKeyword(orGroup, "and") {
			andPart = trimTokens(andPart)
			if len(andPart) == 0 {
				continue
			}
			negated := false
			if andPart[0].Kind == token.Identifier && strings.EqualFold(andPart[0].Text, "not") {
				negated = true
				andPart = trimTokens(andPart[1:])
			}
			group.Conditions = append(group.Conditions, token.NewList(andPart...))
			group.Negated = append(group.Negated, negated)
		}
		if len(group.Conditions) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// splitOnKeyword splits items on a top-level Identifier token matching
// keyword (case-insensitive).
func splitOnKeyword(items []token.Token, keyword string) [][]token.Token {
	var out [][]token.Token
	depth := 0
	start := 0
	for i, t := range items {
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && t.Kind == token.Identifier && strings.EqualFold(t.Text, keyword) {
			out = append(out, items[start:i])
			start = i + 1
		}
	}
	out = append(out, items[start:])
	return out
}
