// Package lesserr defines the structured diagnostic taxonomy used
// throughout the compiler (spec §7). Every error kind is carried by the
// single Diagnostic type, tagged with its Kind, and each kind has a
// sentinel that callers can match with errors.Is.
package lesserr

import (
	"errors"
	"fmt"

	"lessc.dev/lessc/internal/token"
)

// Sentinels for errors.Is matching, one per spec §7 error kind.
var (
	ErrLex            = errors.New("lex error")
	ErrParse          = errors.New("parse error")
	ErrUnboundVar     = errors.New("unbound variable")
	ErrUnitMismatch   = errors.New("unit mismatch")
	ErrType           = errors.New("type error")
	ErrMixinNotFound  = errors.New("mixin not found")
	ErrArity          = errors.New("arity error")
	ErrVariableCycle  = errors.New("variable cycle")
	ErrRecursionLimit = errors.New("recursion limit exceeded")
	ErrFunction       = errors.New("function error")
	ErrIO             = errors.New("io error")
)

// Kind names the taxonomy entries for reporting (e.g. CLI exit-code
// mapping) without needing a type switch.
type Kind string

const (
	KindLex            Kind = "LexError"
	KindParse          Kind = "ParseError"
	KindUnboundVar     Kind = "UnboundVariable"
	KindUnitMismatch   Kind = "UnitMismatch"
	KindType           Kind = "TypeError"
	KindMixinNotFound  Kind = "MixinNotFound"
	KindArity          Kind = "ArityError"
	KindVariableCycle  Kind = "VariableCycle"
	KindRecursionLimit Kind = "RecursionLimit"
	KindFunction       Kind = "FunctionError"
	KindIO             Kind = "IOError"
)

// Diagnostic is the single error type the driver returns: a kind, a
// message, and the source location of the offending token (spec §7:
// "The driver emits a single diagnostic containing kind, message, and
// source location").
type Diagnostic struct {
	DiagKind Kind
	Message  string
	Loc      token.Location
	sentinel error
}

func (d *Diagnostic) Error() string {
	if d.Loc.File == "" && d.Loc.Line == 0 && d.Loc.Column == 0 {
		return fmt.Sprintf("%s: %s", d.DiagKind, d.Message)
	}
	return fmt.Sprintf("%s: %s (at %s)", d.DiagKind, d.Message, d.Loc)
}

func (d *Diagnostic) Unwrap() error {
	return d.sentinel
}

func (d *Diagnostic) Is(target error) bool {
	return errors.Is(d.sentinel, target)
}

func newDiag(kind Kind, sentinel error, loc token.Location, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		DiagKind: kind,
		Message:  fmt.Sprintf(format, args...),
		Loc:      loc,
		sentinel: sentinel,
	}
}

func NewLexError(loc token.Location, format string, args ...interface{}) *Diagnostic {
	return newDiag(KindLex, ErrLex, loc, format, args...)
}

func NewParseError(loc token.Location, format string, args ...interface{}) *Diagnostic {
	return newDiag(KindParse, ErrParse, loc, format, args...)
}

func NewUnboundVariable(loc token.Location, name string) *Diagnostic {
	return newDiag(KindUnboundVar, ErrUnboundVar, loc, "variable %s is not defined in any enclosing scope", name)
}

func NewUnitMismatch(loc token.Location, left, right string) *Diagnostic {
	return newDiag(KindUnitMismatch, ErrUnitMismatch, loc, "cannot combine unit %q with unit %q: different unit groups", left, right)
}

func NewTypeError(loc token.Location, format string, args ...interface{}) *Diagnostic {
	return newDiag(KindType, ErrType, loc, format, args...)
}

func NewMixinNotFound(loc token.Location, name string) *Diagnostic {
	return newDiag(KindMixinNotFound, ErrMixinNotFound, loc, "no mixin definition named %s matched the call's arity, pattern, and guards", name)
}

func NewArityError(loc token.Location, name string, passed, required, optional int) *Diagnostic {
	return newDiag(KindArity, ErrArity, loc, "mixin %s called with %d arguments, requires %d-%d", name, passed, required, required+optional)
}

func NewVariableCycle(loc token.Location, name string) *Diagnostic {
	return newDiag(KindVariableCycle, ErrVariableCycle, loc, "variable %s is defined in terms of itself", name)
}

func NewRecursionLimit(loc token.Location, limit int) *Diagnostic {
	return newDiag(KindRecursionLimit, ErrRecursionLimit, loc, "mixin expansion exceeded the recursion limit of %d", limit)
}

func NewFunctionError(loc token.Location, name string, format string, args ...interface{}) *Diagnostic {
	msg := fmt.Sprintf(format, args...)
	return newDiag(KindFunction, ErrFunction, loc, "function %s(): %s", name, msg)
}

func NewIOError(format string, args ...interface{}) *Diagnostic {
	return newDiag(KindIO, ErrIO, token.Location{}, format, args...)
}
