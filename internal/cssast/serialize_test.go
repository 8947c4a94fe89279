package cssast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/token"
)

func decl(prop, value string) *ast.Declaration {
	p := token.NewList()
	p.Push(token.New(token.Identifier, prop))
	v := token.NewList()
	v.Push(token.New(token.Identifier, value))
	return &ast.Declaration{Property: p, Value: v}
}

func ruleset(selector string, body ...ast.Statement) *ast.Ruleset {
	s := token.NewList()
	s.Push(token.New(token.Other, selector))
	return &ast.Ruleset{Selector: ast.NewSelector(s), Body: body}
}

func TestSerializeNormalFormat(t *testing.T) {
	ss := &ast.Stylesheet{Body: []ast.Statement{
		ruleset(".a", decl("color", "red"), decl("width", "1px")),
	}}
	out := Serialize(ss, Normal)
	assert.Equal(t, ".a {\n  color: red;\n  width: 1px;\n}\n", out)
}

func TestSerializeMinifiedFormat(t *testing.T) {
	ss := &ast.Stylesheet{Body: []ast.Statement{
		ruleset(".a", decl("color", "red"), decl("width", "1px")),
	}}
	out := Serialize(ss, Minified)
	assert.Equal(t, ".a{color:red;width:1px}", out)
}

func TestSerializeEmptyRulesetOmitted(t *testing.T) {
	ss := &ast.Stylesheet{Body: []ast.Statement{ruleset(".empty")}}
	out := Serialize(ss, Normal)
	assert.Equal(t, "", out)
}

func TestSerializeImportantDeclaration(t *testing.T) {
	d := decl("color", "red")
	d.Important = true
	ss := &ast.Stylesheet{Body: []ast.Statement{ruleset(".a", d)}}
	out := Serialize(ss, Normal)
	assert.Contains(t, out, "color: red !important;")
}

func TestSerializeBlocklessAtRule(t *testing.T) {
	p := token.NewList()
	p.Push(token.New(token.String, `"utf-8"`))
	ss := &ast.Stylesheet{Body: []ast.Statement{
		&ast.AtRule{Name: "@charset", Prelude: p, HasBlock: false},
	}}
	out := Serialize(ss, Normal)
	assert.Equal(t, `@charset "utf-8";`+"\n", out)
}
