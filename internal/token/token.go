// Package token defines the primitive lexical unit shared by the lexer,
// parser, and evaluator: the Token and its mutable ordered sequence,
// TokenList.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Identifier is a bare word: a property name, selector element, or
	// unquoted keyword value.
	Identifier Kind = iota
	// AtKeyword is a `@name` variable reference or at-rule keyword.
	AtKeyword
	// Number is a plain numeric literal with no unit.
	Number
	// Dimension is a numeric literal immediately followed by a unit.
	Dimension
	// Percentage is a numeric literal immediately followed by `%`.
	Percentage
	// String is a quoted string literal (single or double quotes).
	String
	// URL is a `url(...)` literal.
	URL
	// Hash is a `#rrggbb`-shaped or `#id` literal.
	Hash
	// Colon is the `:` punctuation token.
	Colon
	// Comma is the `,` punctuation token.
	Comma
	// ParenOpen is `(`.
	ParenOpen
	// ParenClosed is `)`.
	ParenClosed
	// BraceOpen is `{`.
	BraceOpen
	// BraceClosed is `}`.
	BraceClosed
	// BracketOpen is `[`.
	BracketOpen
	// BracketClosed is `]`.
	BracketClosed
	// Semicolon is `;`.
	Semicolon
	// Whitespace is any run of space/tab/newline between significant
	// tokens; preserved so TokenList can reproduce source spacing.
	Whitespace
	// Other covers combinators, operators, and anything else the lexer
	// did not need its own Kind for.
	Other
)

// Location identifies where a Token came from in its source file, used
// for error diagnostics (spec §7).
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Token is a lexeme: its text, its Kind, and where it came from. Tokens
// are value objects; the Value Processor does not rewrite a token's
// Text in place but builds new tokens for evaluated values.
type Token struct {
	Text string
	Kind Kind
	Loc  Location
}

// New constructs a Token with no location information, for tokens
// synthesized during evaluation rather than read from source.
func New(kind Kind, text string) Token {
	return Token{Text: text, Kind: kind}
}

// Clone returns a copy of the token. Tokens contain no pointers besides
// strings (immutable in Go), so a shallow copy is a deep copy.
func (t Token) Clone() Token {
	return t
}

// IsWhitespace reports whether the token is insignificant whitespace.
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

func (t Token) String() string {
	return t.Text
}
