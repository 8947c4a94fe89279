package ast

import (
	"strings"

	"lessc.dev/lessc/internal/token"
)

// AmpersandText is the LESS parent-reference token's text (spec §3
// "the `&` parent-reference token"). The lexer emits it as an Other
// token; there is no dedicated token.Kind for it since nothing else in
// the grammar needs to distinguish it lexically.
const AmpersandText = "&"

// Selector wraps the TokenList that spans a selector (spec §3:
// "Selector — a TokenList whose tokens include combinators,
// element/class/id tokens, pseudo-classes, and the `&` parent-reference
// token").
type Selector struct {
	Tokens *token.List
}

// NewSelector builds a Selector from a raw token list.
func NewSelector(list *token.List) *Selector {
	return &Selector{Tokens: list}
}

// String renders the selector's normalized (whitespace-collapsed)
// textual form, used for extend's "after whitespace normalization"
// comparisons (spec §4.6).
func (s *Selector) String() string {
	if s == nil || s.Tokens == nil {
		return ""
	}
	return normalizeSpaces(s.Tokens.Stringify())
}

func normalizeSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Equal reports whether two selectors are identical after whitespace
// normalization (spec §3 "`match` equality on stringified form after
// whitespace normalization").
func (s *Selector) Equal(other *Selector) bool {
	return s.String() == other.String()
}

// Components splits the selector on top-level commas — commas not
// nested inside parentheses or brackets, since `:not(.a, .b)` must not
// be mistaken for two selector components (spec §3 "Supports `split`
// on top-level commas to yield component selectors").
func (s *Selector) Components() []*Selector {
	if s == nil || s.Tokens == nil {
		return nil
	}
	items := s.Tokens.Items()
	var out []*Selector
	depth := 0
	start := 0
	flush := func(end int) {
		list := token.NewList()
		for _, t := range items[start:end] {
			list.Push(t)
		}
		list.Trim()
		if list.Len() > 0 {
			out = append(out, NewSelector(list))
		}
	}
	for i, t := range items {
		switch t.Kind {
		case token.ParenOpen, token.BracketOpen:
			depth++
		case token.ParenClosed, token.BracketClosed:
			if depth > 0 {
				depth--
			}
		case token.Comma:
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(items))
	return out
}

// ContainsAmpersand reports whether this selector component has a `&`
// token anywhere in it.
func (s *Selector) ContainsAmpersand() bool {
	if s == nil || s.Tokens == nil {
		return false
	}
	for _, t := range s.Tokens.Items() {
		if isAmpersand(t) {
			return true
		}
	}
	return false
}

func isAmpersand(t token.Token) bool {
	return t.Text == AmpersandText
}

// ReplaceAmpersand substitutes every `&` token in s with a clone of
// parent's tokens, producing a new Selector (spec §4.4: "If the child
// selector contains `&` tokens, each `&` is replaced by the parent
// selector").
func (s *Selector) ReplaceAmpersand(parent *Selector) *Selector {
	out := token.NewList()
	for _, t := range s.Tokens.Items() {
		if isAmpersand(t) {
			out.PushList(parent.Tokens.Clone())
			continue
		}
		out.Push(t)
	}
	return NewSelector(out)
}

// JoinDescendant joins parent and child with a single descendant
// combinator (a space), the fallback when child has no `&` (spec
// §4.4: "a child without `&` is joined with the parent via descendant
// combinator").
func (s *Selector) JoinDescendant(parent *Selector) *Selector {
	out := token.NewList()
	out.PushList(parent.Tokens.Clone())
	out.Push(token.New(token.Whitespace, " "))
	out.PushList(s.Tokens.Clone())
	return NewSelector(out)
}

// FlattenSelectors computes the cross product of child's
// comma-separated components against parents' components, substituting
// `&` where present and descendant-joining otherwise (spec §4.4:
// "Multiple comma-separated selectors in either parent or child produce
// the cross product"). With no parents, child's own components are
// returned unchanged (a top-level ruleset).
func FlattenSelectors(child *Selector, parents []*Selector) []*Selector {
	childComponents := child.Components()
	if len(parents) == 0 {
		return childComponents
	}
	var out []*Selector
	for _, pc := range parents {
		for _, cc := range childComponents {
			if cc.ContainsAmpersand() {
				out = append(out, cc.ReplaceAmpersand(pc))
			} else {
				out = append(out, cc.JoinDescendant(pc))
			}
		}
	}
	return out
}

// ToSelectorList joins selector components with ", " into a single
// TokenList, the inverse of Components — used once extend has appended
// new components to a ruleset's selector.
func ToSelectorList(components []*Selector) *token.List {
	out := token.NewList()
	for i, c := range components {
		if i > 0 {
			out.Push(token.New(token.Comma, ","))
			out.Push(token.New(token.Whitespace, " "))
		}
		out.PushList(c.Tokens.Clone())
	}
	return out
}
