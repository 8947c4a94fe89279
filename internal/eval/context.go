// Package eval implements the Value Processor, Ruleset Processing,
// Mixin Resolver & Invoker, and Driver (spec §2 components 6, 7, 9):
// the mutually recursive evaluation engine that turns a parsed LESS
// tree into a flat output CSS tree.
package eval

import (
	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/funclib"
)

// DefaultRecursionLimit is the mixin expansion depth cap spec §4.5
// names ("A global processing-depth limit (default 1024)").
const DefaultRecursionLimit = 1024

// varKey identifies one (scope, variable name) pair for the cycle
// detector (spec §4.3 "Cycle detection": "maintains a per-context set
// of variable names currently being expanded").
type varKey struct {
	scope *ast.Scope
	name  string
}

// Context threads everything a single compilation pass shares:
// the function library, mixin recursion depth, the cycle-detection
// set, and the extensions collected for the final Extend pass.
type Context struct {
	Funcs          *funclib.Library
	RecursionLimit int
	depth          int
	inProgress     map[varKey]bool
	Extensions     []ast.Extension
	// Output is the top-level output stylesheet every processed
	// ruleset/media-query is appended to (spec §4.4: "a nested ruleset
	// yields a new output ruleset appended to the grandparent output").
	Output *ast.Stylesheet
}

// NewContext builds a Context with the standard function library and
// default recursion limit.
func NewContext() *Context {
	return &Context{
		Funcs:          funclib.New(),
		RecursionLimit: DefaultRecursionLimit,
		inProgress:     make(map[varKey]bool),
		Output:         &ast.Stylesheet{},
	}
}

func (c *Context) enterVar(key varKey) bool {
	if c.inProgress[key] {
		return false
	}
	c.inProgress[key] = true
	return true
}

func (c *Context) leaveVar(key varKey) {
	delete(c.inProgress, key)
}
