package eval

import (
	"fmt"

	"lessc.dev/lessc/internal/token"
	"lessc.dev/lessc/internal/value"
)

// foldArithmetic folds `V OP V` sequences in a lowered token stream
// (spec §4.1 "Arithmetic folding"). divFold forces `/` to fold even
// between two same-unit dimensions — true for anything already inside
// parentheses, false at the top level of a declaration value where
// spec §4.1 carves out bare same-unit-dimension division: `10px/20px`
// survives unfolded, while `12px/1.5` (dimension over number) still
// folds to `8px`.
func foldArithmetic(tokens []token.Token, divFold bool) ([]token.Token, error) {
	withParens, err := foldParens(tokens)
	if err != nil {
		return nil, err
	}
	return foldRuns(withParens, divFold)
}

func foldParens(tokens []token.Token) ([]token.Token, error) {
	var out []token.Token
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind == token.ParenOpen {
			close := matchParen(tokens, i)
			if close < 0 {
				return nil, fmt.Errorf("unmatched (")
			}
			inner, err := foldArithmetic(tokens[i+1:close], true)
			if err != nil {
				return nil, err
			}
			if v, ok := singleValueOf(inner); ok {
				out = append(out, value.ToToken(v))
			} else {
				out = append(out, t)
				out = append(out, inner...)
				out = append(out, tokens[close])
			}
			i = close + 1
			continue
		}
		out = append(out, t)
		i++
	}
	return out, nil
}

func foldRuns(tokens []token.Token, divFold bool) ([]token.Token, error) {
	var out []token.Token
	i := 0
	for i < len(tokens) {
		if isOperandStart(tokens[i]) {
			v, end, consumedOp, err := parseRun(tokens, i, divFold)
			if err != nil {
				return nil, err
			}
			if consumedOp {
				out = append(out, value.ToToken(v))
				i = end
				continue
			}
		}
		out = append(out, tokens[i])
		i++
	}
	return out, nil
}

func singleValueOf(tokens []token.Token) (value.Value, bool) {
	trimmed := trimWS(tokens)
	if len(trimmed) != 1 {
		return nil, false
	}
	return value.FromToken(trimmed[0])
}

func isOperandStart(t token.Token) bool {
	switch t.Kind {
	case token.Number, token.Dimension, token.Percentage, token.Hash, token.String, token.URL, token.Identifier:
		return true
	default:
		return false
	}
}

func isAddSubOp(t token.Token) bool {
	return t.Kind == token.Other && (t.Text == "+" || t.Text == "-")
}

func isMulDivOp(t token.Token) bool {
	return t.Kind == token.Other && (t.Text == "*" || t.Text == "/")
}

// exprParser is a small precedence-climbing parser over an absolute
// token slice, used to evaluate one arithmetic run in place.
type exprParser struct {
	toks        []token.Token
	pos         int
	divFold     bool
	consumedOps int
}

func (p *exprParser) skipWS() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Whitespace {
		p.pos++
	}
}

func (p *exprParser) peek() (token.Token, bool) {
	p.skipWS()
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

// parseRun attempts to parse one folded arithmetic expression starting
// at start. consumedOp reports whether any binary operator actually
// applied — a lone atom with no operator is left for the caller to
// emit verbatim rather than re-rendered through Value.CSS.
func parseRun(tokens []token.Token, start int, divFold bool) (value.Value, int, bool, error) {
	p := &exprParser{toks: tokens, pos: start, divFold: divFold}
	left, err := p.parseSum()
	if err != nil {
		return nil, 0, false, err
	}
	if p.consumedOps == 0 {
		return nil, 0, false, nil
	}
	return left, p.pos, true, nil
}

func (p *exprParser) parseSum() (value.Value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		t, ok := p.peek()
		if !ok || !isAddSubOp(t) {
			p.pos = save
			break
		}
		p.pos++
		if _, ok2 := p.peek(); !ok2 {
			p.pos = save
			break
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := value.OpAdd
		if t.Text == "-" {
			op = value.OpSub
		}
		result, err := value.BinaryOp(op, left, right)
		if err != nil {
			return nil, err
		}
		left = result
		p.consumedOps++
	}
	return left, nil
}

func (p *exprParser) parseTerm() (value.Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		t, ok := p.peek()
		if !ok || !isMulDivOp(t) {
			p.pos = save
			break
		}
		opText := t.Text
		p.pos++

		if opText == "/" && !p.divFold {
			if ld, isDim := left.(value.Dimension); isDim {
				peekPos := p.pos
				rv, perr := p.parseUnary()
				p.pos = peekPos
				if perr == nil {
					if rd, ok2 := rv.(value.Dimension); ok2 && rd.Unit == ld.Unit {
						p.pos = save
						return left, nil
					}
				}
			}
		}

		if _, ok2 := p.peek(); !ok2 {
			p.pos = save
			break
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := value.OpMul
		if opText == "/" {
			op = value.OpDiv
		}
		result, err := value.BinaryOp(op, left, right)
		if err != nil {
			return nil, err
		}
		left = result
		p.consumedOps++
	}
	return left, nil
}

func (p *exprParser) parseUnary() (value.Value, error) {
	save := p.pos
	t, ok := p.peek()
	if ok && t.Kind == token.Other && t.Text == "-" {
		p.pos++
		if nt, ok2 := p.peek(); ok2 && isOperandStart(nt) {
			v, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return negate(v)
		}
		p.pos = save
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (value.Value, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	if t.Kind == token.ParenOpen {
		return nil, fmt.Errorf("non-numeric parenthesized group in arithmetic expression")
	}
	v, ok2 := value.FromToken(t)
	if !ok2 {
		return nil, fmt.Errorf("token %q is not a valid operand", t.Text)
	}
	p.pos++
	return v, nil
}

func negate(v value.Value) (value.Value, error) {
	switch n := v.(type) {
	case value.Number:
		return value.Number{N: -n.N}, nil
	case value.Dimension:
		return value.Dimension{N: -n.N, Unit: n.Unit}, nil
	case value.Percentage:
		return value.Percentage{N: -n.N}, nil
	default:
		return nil, fmt.Errorf("cannot negate a %s", v.Kind())
	}
}

func trimWS(tokens []token.Token) []token.Token {
	start := 0
	for start < len(tokens) && tokens[start].Kind == token.Whitespace {
		start++
	}
	end := len(tokens)
	for end > start && tokens[end-1].Kind == token.Whitespace {
		end--
	}
	return tokens[start:end]
}

func matchParen(items []token.Token, openIdx int) int {
	depth := 1
	for j := openIdx + 1; j < len(items); j++ {
		switch items[j].Kind {
		case token.ParenOpen:
			depth++
		case token.ParenClosed:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
