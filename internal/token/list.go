package token

import "strings"

// List is an ordered, mutable sequence of Tokens (spec §3's TokenList).
// The zero value is an empty list ready to use.
type List struct {
	items []Token
}

// NewList builds a List from a slice of tokens.
func NewList(items ...Token) *List {
	l := &List{}
	l.items = append(l.items, items...)
	return l
}

// Len returns the number of tokens in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the token at index i.
func (l *List) At(i int) Token {
	return l.items[i]
}

// Set overwrites the token at index i in place.
func (l *List) Set(i int, t Token) {
	l.items[i] = t
}

// Items returns the underlying slice. Callers must not retain it across
// mutating calls to the List.
func (l *List) Items() []Token {
	if l == nil {
		return nil
	}
	return l.items
}

// Push appends a token to the end of the list.
func (l *List) Push(t Token) {
	l.items = append(l.items, t)
}

// PushList appends every token of other to the end of the list.
func (l *List) PushList(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// Shift removes and returns the first token. Panics on an empty list;
// callers must check Len first.
func (l *List) Shift() Token {
	t := l.items[0]
	l.items = l.items[1:]
	return t
}

// Pop removes and returns the last token.
func (l *List) Pop() Token {
	last := len(l.items) - 1
	t := l.items[last]
	l.items = l.items[:last]
	return t
}

// Trim drops leading and trailing whitespace tokens in place.
func (l *List) Trim() {
	start := 0
	for start < len(l.items) && l.items[start].IsWhitespace() {
		start++
	}
	end := len(l.items)
	for end > start && l.items[end-1].IsWhitespace() {
		end--
	}
	l.items = l.items[start:end]
}

// Split partitions the list into sub-lists wherever a token matching
// sep (by Kind and, if text is non-empty, by Text) occurs, at any
// parenthesis or brace depth. The separator tokens themselves are
// dropped.
func (l *List) Split(sepKind Kind, sepText string) []*List {
	var groups []*List
	current := &List{}
	for _, t := range l.items {
		if t.Kind == sepKind && (sepText == "" || t.Text == sepText) {
			groups = append(groups, current)
			current = &List{}
			continue
		}
		current.items = append(current.items, t)
	}
	groups = append(groups, current)
	return groups
}

// Clone returns a deep copy of the list. Tokens are value types, so
// copying the backing slice suffices.
func (l *List) Clone() *List {
	if l == nil {
		return &List{}
	}
	items := make([]Token, len(l.items))
	copy(items, l.items)
	return &List{items: items}
}

// Stringify concatenates the text of every token in source order.
func (l *List) Stringify() string {
	if l == nil {
		return ""
	}
	var b strings.Builder
	for _, t := range l.items {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Equal compares two lists by their stringified form, per spec §3
// ("compare by stringified form").
func (l *List) Equal(other *List) bool {
	return l.Stringify() == other.Stringify()
}

// NormalizedEqual compares two lists by stringified form after
// collapsing runs of whitespace to a single space and trimming the
// ends — used when matching mixin call arguments against pattern
// parameters.
func (l *List) NormalizedEqual(other *List) bool {
	return normalizeWhitespace(l.Stringify()) == normalizeWhitespace(other.Stringify())
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
