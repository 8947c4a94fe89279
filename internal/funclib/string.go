package funclib

import (
	"net/url"
	"strings"

	"lessc.dev/lessc/internal/value"
)

func registerString(l *Library) {
	l.Register("e", "S", func(args []value.Value) (value.Value, error) {
		return value.Str{Text: args[0].(value.Str).Text, Quoted: false}, nil
	})
	l.Register("escape", "S", func(args []value.Value) (value.Value, error) {
		return value.Str{Text: url.QueryEscape(args[0].(value.Str).Text), Quoted: false}, nil
	})
	l.Register("replace", "SSS", func(args []value.Value) (value.Value, error) {
		s := args[0].(value.Str)
		pattern := stringText(args[1])
		repl := stringText(args[2])
		return value.Str{Text: strings.ReplaceAll(s.Text, pattern, repl), Quoted: s.Quoted, Quote: s.Quote}, nil
	})
	l.Register("format", "S+", func(args []value.Value) (value.Value, error) {
		tmpl := args[0].(value.Str)
		rest := args[1:]
		out := tmpl.Text
		for _, r := range rest {
			out = strings.Replace(out, "%s", stringText(r), 1)
			out = strings.Replace(out, "%d", r.CSS(), 1)
		}
		return value.Str{Text: out, Quoted: tmpl.Quoted, Quote: tmpl.Quote}, nil
	})
}

func stringText(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return s.Text
	}
	return v.CSS()
}
