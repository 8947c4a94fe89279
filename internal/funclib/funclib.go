// Package funclib implements the Function Library (spec §2 component
// 3, §4.2): a name → (signature, handler) registry resolving built-in
// calls by argument-type signature, falling back to "not found" for
// anything the caller should preserve verbatim as an output-side CSS
// function call (`rgba(...)`, `calc(...)`, ...).
package funclib

import (
	"fmt"

	"lessc.dev/lessc/internal/value"
)

// Handler evaluates a function call given its already-evaluated
// arguments.
type Handler func(args []value.Value) (value.Value, error)

// entry pairs a signature with its handler, registered under a
// lowercased function name.
type entry struct {
	sig     Signature
	handler Handler
}

// Library is a registry of builtins. The zero value is not usable;
// construct with New, which preregisters every required built-in
// (spec §4.2 "Required built-ins").
type Library struct {
	entries map[string][]entry
}

// New builds a Library with the full standard built-in set registered.
func New() *Library {
	l := &Library{entries: make(map[string][]entry)}
	registerMath(l)
	registerColor(l)
	registerString(l)
	registerTypeTests(l)
	registerList(l)
	return l
}

// Register adds a handler for name under sig. On a second Register
// call for the same (name, sig) pair the newest registration wins
// (spec §4.2: "On multiple matches, the most-recently registered
// wins"), so later calls to Register effectively override earlier
// ones with an identical signature; entries with different signatures
// both remain as overload candidates.
func (l *Library) Register(name string, sig Signature, h Handler) {
	name = normalizeName(name)
	l.entries[name] = append(l.entries[name], entry{sig: sig, handler: h})
}

// Call resolves name against args' types and invokes the matching
// handler. ok is false when the name is not registered or no
// signature accepts the actuals — callers preserve the call literally
// in that case (spec §4.2: "on no match, return 'not found'").
func (l *Library) Call(name string, args []value.Value) (result value.Value, ok bool, err error) {
	candidates, found := l.entries[normalizeName(name)]
	if !found {
		return nil, false, nil
	}
	// Spec §4.2: "On multiple matches, the most-recently registered
	// wins" — scan in reverse registration order and take the first
	// signature that accepts the actuals.
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].sig.Accepts(args) {
			v, err := candidates[i].handler(args)
			return v, true, err
		}
	}
	return nil, false, nil
}

func normalizeName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// argError is a small helper handlers use to build a domain-error
// message; funclib itself does not know about lesserr.Diagnostic since
// that would create an import cycle with internal/eval, which wraps
// this error as a FunctionError at the call site.
func argError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
