package value

import (
	"strconv"
	"strings"

	"lessc.dev/lessc/internal/token"
)

// FromToken lifts a single literal token to its typed Value, per spec
// §4.1 ("Operands are first lifted to typed Values"). Identifier
// tokens that name a color keyword recognized by csscolorparser lift
// to Color; any other identifier lifts to Keyword.
func FromToken(t token.Token) (Value, bool) {
	switch t.Kind {
	case token.Number:
		n, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, false
		}
		return Number{N: n}, true
	case token.Dimension:
		n, unit := splitNumberUnit(t.Text)
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, false
		}
		return Dimension{N: f, Unit: unit}, true
	case token.Percentage:
		n := strings.TrimSuffix(t.Text, "%")
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, false
		}
		return Percentage{N: f}, true
	case token.String:
		text, quote := unquote(t.Text)
		return Str{Text: text, Quoted: true, Quote: quote}, true
	case token.URL:
		return URL{Text: extractURL(t.Text)}, true
	case token.Hash:
		if c, err := ParseColor(t.Text); err == nil {
			return c, true
		}
		return Keyword{Name: t.Text}, true
	case token.Identifier:
		if c, err := ParseColor(t.Text); err == nil && isColorKeyword(t.Text) {
			return c, true
		}
		return Keyword{Name: t.Text}, true
	default:
		return nil, false
	}
}

// isColorKeyword guards FromToken against csscolorparser's permissive
// acceptance of bare numeric strings and the "transparent" fallback —
// only identifiers that are not otherwise meaningful LESS keywords
// should lift to Color, so callers don't see e.g. the keyword `none`
// silently become a color.
func isColorKeyword(name string) bool {
	switch strings.ToLower(name) {
	case "none", "inherit", "initial", "unset", "auto", "transparent":
		return strings.ToLower(name) == "transparent"
	default:
		return true
	}
}

func splitNumberUnit(text string) (number, unit string) {
	i := 0
	for i < len(text) {
		c := text[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			i++
			continue
		}
		break
	}
	return text[:i], text[i:]
}

func unquote(text string) (string, byte) {
	if len(text) >= 2 {
		q := text[0]
		if (q == '"' || q == '\'') && text[len(text)-1] == q {
			return text[1 : len(text)-1], q
		}
	}
	return text, '"'
}

func extractURL(text string) string {
	inner := strings.TrimPrefix(text, "url(")
	inner = strings.TrimSuffix(inner, ")")
	inner = strings.TrimSpace(inner)
	unq, _ := unquote(inner)
	return unq
}

// ToToken renders v back into a single token suitable for splicing
// into an output TokenList, used once arithmetic or a function call
// has produced a fresh Value that needs to rejoin the surrounding
// token stream.
func ToToken(v Value) token.Token {
	kind := token.Other
	switch v.Kind() {
	case KindNumber:
		kind = token.Number
	case KindDimension:
		kind = token.Dimension
	case KindPercentage:
		kind = token.Percentage
	case KindString:
		kind = token.String
	case KindURL:
		kind = token.URL
	case KindColor, KindKeyword, KindUnit, KindBoolean:
		kind = token.Identifier
	}
	return token.New(kind, v.CSS())
}
