package eval

import (
	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/token"
	"lessc.dev/lessc/internal/value"
)

// guardsPass reports whether def's `when` clause accepts the call
// bound into sc (spec §4.5 "Guards": an OR across GuardGroups, an AND
// within one). A definition with no guards always passes.
func guardsPass(def *ast.MixinDefinition, sc *ast.Scope, ctx *Context) (bool, error) {
	if len(def.Guards) == 0 {
		return true, nil
	}
	for _, group := range def.Guards {
		allTrue := true
		for i, cond := range group.Conditions {
			ok, err := evalGuardCondition(cond, sc, ctx)
			if err != nil {
				return false, err
			}
			if group.Negated[i] {
				ok = !ok
			}
			if !ok {
				allTrue = false
				break
			}
		}
		if allTrue {
			return true, nil
		}
	}
	return false, nil
}

// evalGuardCondition evaluates one guard condition — a comparison like
// `(@a > 5)` or a bare truthy check like `(iscolor(@c))`.
func evalGuardCondition(cond *token.List, sc *ast.Scope, ctx *Context) (bool, error) {
	items := stripOuterParens(cond.Items())

	if idx, oplen, op, found := findComparisonOp(items); found {
		leftEval, err := Process(token.NewList(items[:idx]...), sc, ctx)
		if err != nil {
			return false, err
		}
		rightEval, err := Process(token.NewList(items[idx+oplen:]...), sc, ctx)
		if err != nil {
			return false, err
		}
		leftVal := reduceToValue(leftEval.Items())
		rightVal := reduceToValue(rightEval.Items())
		return value.Compare(op, leftVal, rightVal)
	}

	evaluated, err := Process(token.NewList(items...), sc, ctx)
	if err != nil {
		return false, err
	}
	v := reduceToValue(evaluated.Items())
	if b, ok := v.(value.Bool); ok {
		return b.B, nil
	}
	return true, nil
}

func stripOuterParens(items []token.Token) []token.Token {
	items = trimWS(items)
	if len(items) >= 2 && items[0].Kind == token.ParenOpen {
		if close := matchParen(items, 0); close == len(items)-1 {
			return trimWS(items[1:close])
		}
	}
	return items
}

// findComparisonOp locates a top-level comparison operator in items,
// recognizing the two-character spellings (>=, <=, =<) before the
// single-character ones.
func findComparisonOp(items []token.Token) (idx, length int, op value.CompareOp, found bool) {
	depth := 0
	for i := 0; i < len(items); i++ {
		t := items[i]
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
			continue
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 0 || t.Kind != token.Other {
			continue
		}
		next := func() (token.Token, bool) {
			if i+1 < len(items) {
				return items[i+1], true
			}
			return token.Token{}, false
		}
		switch t.Text {
		case "=":
			if n, ok := next(); ok && n.Kind == token.Other && n.Text == "<" {
				return i, 2, value.CmpLe2, true
			}
			return i, 1, value.CmpEq, true
		case "<":
			if n, ok := next(); ok && n.Kind == token.Other && n.Text == "=" {
				return i, 2, value.CmpLe, true
			}
			return i, 1, value.CmpLt, true
		case ">":
			if n, ok := next(); ok && n.Kind == token.Other && n.Text == "=" {
				return i, 2, value.CmpGe, true
			}
			return i, 1, value.CmpGt, true
		}
	}
	return 0, 0, "", false
}
