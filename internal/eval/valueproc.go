package eval

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/lesserr"
	"lessc.dev/lessc/internal/token"
	"lessc.dev/lessc/internal/value"
)

// Process implements the Value Processor (spec §2 component 6, §4.1):
// variable substitution, arithmetic folding, string/identifier
// interpolation, and function-call dispatch over one token-list.
func Process(list *token.List, sc *ast.Scope, ctx *Context) (*token.List, error) {
	if list == nil {
		return token.NewList(), nil
	}
	lowered, err := lower(list.Items(), sc, ctx)
	if err != nil {
		return nil, err
	}
	folded, err := foldArithmetic(lowered, false)
	if err != nil {
		return nil, err
	}
	return token.NewList(folded...), nil
}

// lower expands interpolation, substitutes variables, and evaluates
// function calls, left to right. Arithmetic folding is a separate pass
// (foldArithmetic) since it needs the fully-substituted token stream.
func lower(items []token.Token, sc *ast.Scope, ctx *Context) ([]token.Token, error) {
	items, err := expandTokenInterpolation(items, sc, ctx)
	if err != nil {
		return nil, err
	}

	var out []token.Token
	i := 0
	for i < len(items) {
		t := items[i]
		switch {
		case t.Kind == token.AtKeyword:
			name := strings.TrimPrefix(t.Text, "@")
			list, defScope, ok := sc.LookupVariable(name)
			if !ok {
				return nil, lesserr.NewUnboundVariable(t.Loc, name)
			}
			key := varKey{scope: defScope, name: name}
			if !ctx.enterVar(key) {
				return nil, lesserr.NewVariableCycle(t.Loc, name)
			}
			evaluated, err := Process(list, defScope, ctx)
			ctx.leaveVar(key)
			if err != nil {
				return nil, err
			}
			out = append(out, evaluated.Items()...)
			i++

		case t.Kind == token.Identifier && i+1 < len(items) && items[i+1].Kind == token.ParenOpen:
			close := matchParen(items, i+1)
			if close < 0 {
				return nil, lesserr.NewParseError(t.Loc, "unmatched ( in call to %s", t.Text)
			}
			callTokens, err := evalCall(t, items[i+2:close], sc, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, callTokens...)
			i = close + 1

		default:
			out = append(out, t)
			i++
		}
	}
	return out, nil
}

// isInterpolationMarker reports whether t is the lexer's whole-token
// spelling of `@{name}`, used wherever interpolation appears outside a
// quoted string (selectors, property names, identifiers).
func isInterpolationMarker(t token.Token) bool {
	return t.Kind == token.AtKeyword && strings.HasPrefix(t.Text, "@{") && strings.HasSuffix(t.Text, "}")
}

// expandTokenInterpolation resolves every `@{name}` marker token and
// every string literal containing `@{name}` substrings, without
// touching bare `@name` variable references or function calls — the
// narrower pass selectors, properties, and at-rule preludes need,
// since none of those evaluate arithmetic or calls.
func expandTokenInterpolation(items []token.Token, sc *ast.Scope, ctx *Context) ([]token.Token, error) {
	out := make([]token.Token, 0, len(items))
	for _, t := range items {
		switch {
		case isInterpolationMarker(t):
			expanded, err := expandVariableInterpolation(t, sc, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded)
		case t.Kind == token.String:
			expanded, err := expandStringInterpolation(t, sc, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded)
		default:
			out = append(out, t)
		}
	}
	return out, nil
}

func expandVariableInterpolation(t token.Token, sc *ast.Scope, ctx *Context) (token.Token, error) {
	name := t.Text[2 : len(t.Text)-1]
	list, defScope, ok := sc.LookupVariable(name)
	if !ok {
		return token.Token{}, lesserr.NewUnboundVariable(t.Loc, name)
	}
	evaluated, err := Process(list, defScope, ctx)
	if err != nil {
		return token.Token{}, err
	}
	return token.Token{Text: evaluated.Stringify(), Kind: token.Identifier, Loc: t.Loc}, nil
}

func expandStringInterpolation(t token.Token, sc *ast.Scope, ctx *Context) (token.Token, error) {
	text := t.Text
	var b strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '@' && i+1 < len(text) && text[i+1] == '{' {
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				b.WriteByte(text[i])
				i++
				continue
			}
			name := text[i+2 : i+2+end]
			list, defScope, ok := sc.LookupVariable(name)
			if !ok {
				return token.Token{}, lesserr.NewUnboundVariable(t.Loc, name)
			}
			evaluated, err := Process(list, defScope, ctx)
			if err != nil {
				return token.Token{}, err
			}
			b.WriteString(evaluated.Stringify())
			i = i + 2 + end + 1
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return token.Token{Text: b.String(), Kind: token.String, Loc: t.Loc}, nil
}

// evalCall evaluates a function call's argument groups and dispatches
// to the function library (spec §4.2). Calls the library doesn't
// recognize (ok == false) are preserved verbatim with their arguments
// still fully evaluated.
func evalCall(name token.Token, argTokens []token.Token, sc *ast.Scope, ctx *Context) ([]token.Token, error) {
	var groups [][]token.Token
	if len(trimWS(argTokens)) > 0 {
		groups = splitTopLevelCommaTokens(argTokens)
	}

	foldedGroups := make([][]token.Token, len(groups))
	args := make([]value.Value, 0, len(groups))
	for gi, g := range groups {
		lowered, err := lower(g, sc, ctx)
		if err != nil {
			return nil, err
		}
		folded, err := foldArithmetic(lowered, true)
		if err != nil {
			return nil, err
		}
		foldedGroups[gi] = folded
		args = append(args, reduceToValue(folded))
	}

	result, ok, err := ctx.Funcs.Call(name.Text, args)
	if err != nil {
		return nil, lesserr.NewFunctionError(name.Loc, name.Text, "%v", err)
	}
	if ok {
		return []token.Token{value.ToToken(result)}, nil
	}

	var out []token.Token
	out = append(out, token.Token{Text: name.Text, Kind: token.Identifier, Loc: name.Loc})
	out = append(out, token.New(token.ParenOpen, "("))
	for gi, folded := range foldedGroups {
		if gi > 0 {
			out = append(out, token.New(token.Comma, ","))
			out = append(out, token.New(token.Whitespace, " "))
		}
		out = append(out, folded...)
	}
	out = append(out, token.New(token.ParenClosed, ")"))
	return out, nil
}

// reduceToValue collapses an evaluated argument's tokens to a single
// Value for the function library. A single literal token lifts
// directly; anything else (shorthand like `1px solid`) becomes a
// Keyword carrying its stringified text, the same treatment unknown
// functions see their arguments receive on re-emission.
func reduceToValue(tokens []token.Token) value.Value {
	trimmed := trimWS(tokens)
	if len(trimmed) == 1 {
		if v, ok := value.FromToken(trimmed[0]); ok {
			return v
		}
	}
	return value.Keyword{Name: token.NewList(trimmed...).Stringify()}
}

func splitTopLevelCommaTokens(items []token.Token) [][]token.Token {
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
		if depth == 0 && t.Kind == token.Comma {
			out = append(out, items[start:i])
			start = i + 1
		}
	}
	out = append(out, items[start:])
	return out
}
