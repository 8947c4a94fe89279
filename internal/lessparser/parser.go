// Package lessparser is the surface parser spec §1 calls an external
// collaborator ("tokens in, AST nodes out"); this is the minimal
// recursive-descent implementation needed to exercise the evaluation
// engine end to end. It consumes the token.List the lexer produces and
// builds an internal/ast.Stylesheet.
package lessparser

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/lesserr"
	"lessc.dev/lessc/internal/token"
)

// Parser holds the flat token stream and a cursor into it.
type Parser struct {
	items []token.Token
	pos   int
	file  string
}

// New builds a Parser over list's tokens.
func New(list *token.List, file string) *Parser {
	return &Parser{items: list.Items(), file: file}
}

// Parse builds the full Stylesheet from the token stream, or returns
// the first ParseError encountered (spec §7 ParseError: "grammar
// violation").
func Parse(list *token.List, file string) (*ast.Stylesheet, error) {
	p := New(list, file)
	body, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}
	return &ast.Stylesheet{Body: body}, nil
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.items) }

func (p *Parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.Other}
	}
	return p.items[p.pos]
}

func (p *Parser) loc() token.Location {
	if p.atEnd() {
		if len(p.items) > 0 {
			return p.items[len(p.items)-1].Loc
		}
		return token.Location{File: p.file}
	}
	return p.items[p.pos].Loc
}

func (p *Parser) advance() token.Token {
	t := p.items[p.pos]
	p.pos++
	return t
}

func (p *Parser) skipWhitespace() {
	for !p.atEnd() && p.peek().Kind == token.Whitespace {
		p.pos++
	}
}

// parseStatements reads statements until EOF (top level, inBlock ==
// false) or a matching BraceClosed (inBlock == true), consuming the
// closing brace itself.
func (p *Parser) parseStatements(inBlock bool) ([]ast.Statement, error) {
	var out []ast.Statement
	for {
		p.skipWhitespace()
		if p.atEnd() {
			if inBlock {
				return nil, lesserr.NewParseError(p.loc(), "unexpected end of input: missing closing }")
			}
			return out, nil
		}
		if inBlock && p.peek().Kind == token.BraceClosed {
			p.advance()
			return out, nil
		}
		if p.peek().Kind == token.Semicolon {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			out = append(out, stmt)
		}
	}
}

// parseStatement reads one statement: it scans the prelude up to a
// top-level `;` or `{` (respecting paren/bracket nesting so selector
// pseudo-class parens and mixin-call argument lists don't trip the
// scan), then classifies the prelude by shape.
func (p *Parser) parseStatement() (ast.Statement, error) {
	startLoc := p.loc()
	prelude, stop, err := p.readPrelude()
	if err != nil {
		return nil, err
	}

	switch stop {
	case token.Semicolon:
		return p.classifySemicolonStatement(prelude, startLoc)
	case token.BraceOpen:
		return p.classifyBlockStatement(prelude, startLoc)
	default:
		// EOF with a non-empty trailing prelude and no terminator: only
		// tolerated when the prelude is empty/whitespace.
		if len(trimTokens(prelude)) == 0 {
			return nil, nil
		}
		return nil, lesserr.NewParseError(startLoc, "statement is missing a terminating ; or {")
	}
}

// readPrelude reads tokens up to (but not including) the first
// top-level `;` or `{`, tracking paren/bracket depth so nested commas
// and colons inside e.g. `:not(.a, .b)` don't end the prelude early.
// It returns the prelude tokens and which terminator was found
// (Semicolon, BraceOpen, or Other at EOF).
func (p *Parser) readPrelude() ([]token.Token, token.Kind, error) {
	var out []token.Token
	depth := 0
	for !p.atEnd() {
		t := p.peek()
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return out, token.Semicolon, nil
			}
		case token.BraceOpen:
			if depth == 0 {
				p.advance()
				return out, token.BraceOpen, nil
			}
		case token.BraceClosed:
			if depth == 0 {
				// Prelude ends here without consuming the brace; caller's
				// enclosing parseStatements loop will see it.
				return out, token.Other, nil
			}
		}
		out = append(out, p.advance())
	}
	return out, token.Other, nil
}

func trimTokens(items []token.Token) []token.Token {
	list := token.NewList(items...)
	list.Trim()
	return list.Items()
}

// classifySemicolonStatement handles a prelude that ended at `;`: a
// variable definition, a plain declaration, a simple (block-less)
// at-rule, or a mixin call.
func (p *Parser) classifySemicolonStatement(raw []token.Token, loc token.Location) (ast.Statement, error) {
	items := trimTokens(raw)
	if len(items) == 0 {
		return nil, nil
	}

	if items[0].Kind == token.AtKeyword {
		if idx := topLevelColon(items); idx >= 0 {
			return p.buildDeclaration(items, idx, loc)
		}
		return &ast.AtRule{
			Base:    ast.Base{Loc: loc},
			Name:    items[0].Text,
			Prelude: token.NewList(trimTokens(items[1:])...),
		}, nil
	}

	if looksLikeMixinCallHead(items) {
		return p.buildMixinCall(items, loc)
	}

	if idx := topLevelColon(items); idx >= 0 {
		return p.buildDeclaration(items, idx, loc)
	}

	return nil, lesserr.NewParseError(loc, "expected a declaration or mixin call, got %q", token.NewList(items...).Stringify())
}

func (p *Parser) buildDeclaration(items []token.Token, colonIdx int, loc token.Location) (ast.Statement, error) {
	property := token.NewList(trimTokens(items[:colonIdx])...)
	value := trimTokens(items[colonIdx+1:])
	important := false
	if n := len(value); n >= 2 {
		last := value[n-1]
		prev := value[n-2]
		if last.Kind == token.Identifier && strings.EqualFold(last.Text, "important") && prev.Text == "!" {
			important = true
			value = trimTokens(value[:n-2])
		}
	}
	return &ast.Declaration{
		Base:      ast.Base{Loc: loc},
		Property:  property,
		Value:     token.NewList(value...),
		Important: important,
	}, nil
}

// classifyBlockStatement handles a prelude that ended at `{`: an
// @media block, a generic at-rule block, a mixin definition, or an
// ordinary ruleset.
func (p *Parser) classifyBlockStatement(raw []token.Token, loc token.Location) (ast.Statement, error) {
	items := trimTokens(raw)

	if len(items) > 0 && items[0].Kind == token.AtKeyword {
		name := items[0].Text
		rest := trimTokens(items[1:])
		body, err := p.parseStatements(true)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(name, "@media") {
			return &ast.MediaQuery{
				Base:    ast.Base{Loc: loc},
				Prelude: token.NewList(rest...),
				Body:    body,
			}, nil
		}
		return &ast.AtRule{
			Base:     ast.Base{Loc: loc},
			Name:     name,
			Prelude:  token.NewList(rest...),
			Body:     body,
			HasBlock: true,
		}, nil
	}

	if def, ok := tryParseMixinDefHead(items); ok {
		body, err := p.parseStatements(true)
		if err != nil {
			return nil, err
		}
		def.Body = body
		def.Loc = loc
		return def, nil
	}

	sel := ast.NewSelector(token.NewList(items...))
	body, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}
	return &ast.Ruleset{
		Base:     ast.Base{Loc: loc},
		Selector: sel,
		Body:     body,
	}, nil
}

// topLevelColon returns the index of the first Colon token at
// paren/bracket depth 0, or -1. Used only on preludes that stopped at
// `;`, where a top-level colon unambiguously separates property from
// value (selectors never appear in that position).
func topLevelColon(items []token.Token) int {
	depth := 0
	for i, t := range items {
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
		case token.Colon:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
