// Package cssast is the CSS serializer spec §1 calls an external
// collaborator ("AST in, CSS text out"). The evaluator builds its
// output tree out of the same internal/ast node types it reads the
// LESS tree with — spec §9's "single owning tree" strategy, applied to
// the output side too, since nothing downstream needs a distinct output
// representation — so this package's only job is walking that tree and
// rendering it to text in either of the two formats spec §6 names.
package cssast

import (
	"strings"

	"lessc.dev/lessc/internal/ast"
)

// Format selects the output serialization spec §6 names.
type Format int

const (
	// Normal: "declarations one per line, 2-space indent inside braces,
	// `:` + space between property and value, trailing `;` on each
	// declaration, `}` on its own line."
	Normal Format = iota
	// Minified: "no whitespace except as required to preserve token
	// boundaries, no trailing semicolon on the last declaration of a
	// block."
	Minified
)

// Serialize renders ss's statements as CSS text.
func Serialize(ss *ast.Stylesheet, format Format) string {
	var b strings.Builder
	w := &writer{b: &b, format: format}
	w.statements(ss.Body, 0)
	return b.String()
}

type writer struct {
	b      *strings.Builder
	format Format
}

func (w *writer) indent(depth int) {
	if w.format == Minified {
		return
	}
	for i := 0; i < depth; i++ {
		w.b.WriteString("  ")
	}
}

func (w *writer) nl() {
	if w.format == Normal {
		w.b.WriteByte('\n')
	}
}

// openBlock writes a block's opening brace, preceded by a space only in
// Normal output.
func (w *writer) openBlock() {
	if w.format == Normal {
		w.b.WriteByte(' ')
	}
	w.b.WriteByte('{')
}

func (w *writer) statements(stmts []ast.Statement, depth int) {
	for i, stmt := range stmts {
		if stmt.Reference() {
			continue
		}
		w.statement(stmt, depth, isLastDeclaration(stmts, i))
	}
}

// isLastDeclaration reports whether stmts[i] is the last Declaration
// in a block that contains no further statements after it — used to
// suppress the trailing `;` in Minified output.
func isLastDeclaration(stmts []ast.Statement, i int) bool {
	for j := i + 1; j < len(stmts); j++ {
		if !stmts[j].Reference() {
			return false
		}
	}
	return true
}

func (w *writer) statement(stmt ast.Statement, depth int, last bool) {
	switch s := stmt.(type) {
	case *ast.CssComment:
		w.indent(depth)
		w.b.WriteString(s.Text)
		w.nl()
	case *ast.Declaration:
		w.declaration(s, depth, last)
	case *ast.Ruleset:
		w.ruleset(s, depth)
	case *ast.AtRule:
		w.atRule(s, depth)
	case *ast.MediaQuery:
		w.mediaQuery(s, depth)
	}
}

func (w *writer) declaration(d *ast.Declaration, depth int, last bool) {
	w.indent(depth)
	w.b.WriteString(d.Property.Stringify())
	w.b.WriteByte(':')
	if w.format == Normal {
		w.b.WriteByte(' ')
	}
	w.b.WriteString(d.Value.Stringify())
	if d.Important {
		w.b.WriteString(" !important")
	}
	if w.format == Normal || !last {
		w.b.WriteByte(';')
	}
	w.nl()
}

func (w *writer) ruleset(r *ast.Ruleset, depth int) {
	if len(visibleStatements(r.Body)) == 0 {
		return
	}
	w.indent(depth)
	w.b.WriteString(r.Selector.String())
	w.openBlock()
	w.nl()
	w.statements(r.Body, depth+1)
	w.indent(depth)
	w.b.WriteString("}")
	w.nl()
}

func (w *writer) atRule(a *ast.AtRule, depth int) {
	w.indent(depth)
	w.b.WriteString(a.Name)
	if a.Prelude != nil && a.Prelude.Len() > 0 {
		w.b.WriteByte(' ')
		w.b.WriteString(a.Prelude.Stringify())
	}
	if !a.HasBlock {
		w.b.WriteByte(';')
		w.nl()
		return
	}
	w.openBlock()
	w.nl()
	w.statements(a.Body, depth+1)
	w.indent(depth)
	w.b.WriteString("}")
	w.nl()
}

func (w *writer) mediaQuery(m *ast.MediaQuery, depth int) {
	if len(visibleStatements(m.Body)) == 0 {
		return
	}
	w.indent(depth)
	w.b.WriteString("@media ")
	w.b.WriteString(m.Prelude.Stringify())
	w.openBlock()
	w.nl()
	w.statements(m.Body, depth+1)
	w.indent(depth)
	w.b.WriteString("}")
	w.nl()
}

func visibleStatements(stmts []ast.Statement) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		if !s.Reference() {
			out = append(out, s)
		}
	}
	return out
}
