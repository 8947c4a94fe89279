// Package ast defines the LESS tree (spec §3 "Data model", §2 component
// 4): Stylesheet, Ruleset, Declaration, AtRule, MediaQuery,
// MixinDefinition, MixinCall, Selector, and Extension. Nodes are
// mutable and carry scope pointers, matching the teacher's own AST
// packages' "structs with pointer fields, no interfaces for data"
// style, with one interface (Statement) standing in for the variant
// spec §3 calls out explicitly.
package ast

import (
	"lessc.dev/lessc/internal/scope"
	"lessc.dev/lessc/internal/token"
)

// Scope instantiates the generic scope.Scope with MixinDefinition as
// its mixin-definition type. Using a type alias (not a defined type)
// keeps *ast.Scope and *scope.Scope[*MixinDefinition] interchangeable
// without any conversion boilerplate at call sites in internal/eval.
type Scope = scope.Scope[*MixinDefinition]

// Statement is the variant spec §3 names: CssComment | Declaration |
// Ruleset | AtRule | MediaQuery | MixinCall | MixinDefinition.
type Statement interface {
	statementNode()
	// Reference reports whether this statement was declared inside a
	// `reference` import: it participates in mixin/extend resolution
	// but is never itself emitted to output.
	Reference() bool
	Location() token.Location
}

// Base is embedded by every concrete Statement to carry the two fields
// common to all of them, avoiding repeating the Reference/Location
// plumbing in each type.
type Base struct {
	IsReference bool
	Loc         token.Location
}

func (b Base) Reference() bool        { return b.IsReference }
func (b Base) Location() token.Location { return b.Loc }

// CssComment is a comment preserved verbatim from source (spec §3
// Statement variant). LESS strips `//` line comments at the lexer but
// keeps `/* */` block comments that survive into the CSS output.
type CssComment struct {
	Base
	Text string
}

func (*CssComment) statementNode() {}

// Declaration is `property: value [!important];`. A Declaration whose
// Property is a single at-keyword token is a variable definition (spec
// §4.7: "variable-definitions update the root scope") rather than an
// emitted CSS declaration; IsVariable reports that case.
type Declaration struct {
	Base
	Property  *token.List
	Value     *token.List
	Important bool
}

func (*Declaration) statementNode() {}

// IsVariable reports whether this declaration's property is a bare
// `@name`, making it a variable definition instead of an output
// declaration.
func (d *Declaration) IsVariable() bool {
	if d.Property == nil || d.Property.Len() != 1 {
		return false
	}
	return d.Property.At(0).Kind == token.AtKeyword
}

// VariableName returns the variable name (without the leading `@`) if
// IsVariable, else "".
func (d *Declaration) VariableName() string {
	if !d.IsVariable() {
		return ""
	}
	text := d.Property.At(0).Text
	if len(text) > 0 && text[0] == '@' {
		return text[1:]
	}
	return text
}

// Ruleset is a Selector plus an ordered list of child statements and a
// local Scope (spec §3 "Ruleset").
type Ruleset struct {
	Base
	Selector *Selector
	Body     []Statement
	Scope    *Scope
}

func (*Ruleset) statementNode() {}

// AtRule is a non-media at-rule (`@charset`, `@font-face`, `@keyframes`,
// `@page`, ...). Body is nil when the at-rule has no block (e.g.
// `@charset "utf-8";`).
type AtRule struct {
	Base
	Name     string
	Prelude  *token.List
	Body     []Statement
	HasBlock bool
	Scope    *Scope
}

func (*AtRule) statementNode() {}

// MediaQuery is an `@media` block, processed specially (spec §4.4
// "bubbling") rather than as a generic AtRule.
type MediaQuery struct {
	Base
	Prelude *token.List
	Body    []Statement
	Scope   *Scope
}

func (*MediaQuery) statementNode() {}

// Stylesheet is the root of the LESS tree and of the output CSS tree
// alike (spec §2 component 9, the Driver builds one of each).
type Stylesheet struct {
	Body  []Statement
	Scope *Scope
}
