package extend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessc.dev/lessc/internal/ast"
	"lessc.dev/lessc/internal/token"
)

func sel(s string) *ast.Selector {
	list := token.NewList()
	list.Push(token.New(token.Other, s))
	return ast.NewSelector(list)
}

func TestExtractExtendStripsClauseAndReturnsTarget(t *testing.T) {
	list := token.NewList()
	list.Push(token.New(token.Other, ".b"))
	list.Push(token.New(token.Colon, ":"))
	list.Push(token.New(token.Identifier, "extend"))
	list.Push(token.New(token.ParenOpen, "("))
	list.Push(token.New(token.Other, ".a"))
	list.Push(token.New(token.ParenClosed, ")"))
	raw := ast.NewSelector(list)
	cleaned, exts := ExtractExtend(raw, sel(".b"))
	require.Len(t, exts, 1)
	assert.Equal(t, ".a", exts[0].Target.String())
	assert.Equal(t, ".b", exts[0].Source.String())
	assert.NotContains(t, cleaned.String(), "extend")
}

func TestExtractExtendNoClauseIsNoop(t *testing.T) {
	raw := sel(".b")
	cleaned, exts := ExtractExtend(raw, sel(".b"))
	assert.Nil(t, exts)
	assert.Equal(t, ".b", cleaned.String())
}

func TestParseBareAmpersandExtend(t *testing.T) {
	val := token.NewList()
	val.Push(token.New(token.Identifier, "extend"))
	val.Push(token.New(token.ParenOpen, "("))
	val.Push(token.New(token.Other, ".a"))
	val.Push(token.New(token.ParenClosed, ")"))

	targets, all, ok := ParseBareAmpersandExtend(val)
	require.True(t, ok)
	assert.False(t, all)
	require.Len(t, targets, 1)
	assert.Equal(t, ".a", targets[0].String())
}

func TestParseBareAmpersandExtendNotExtendShape(t *testing.T) {
	val := token.NewList()
	val.Push(token.New(token.Identifier, "red"))
	_, _, ok := ParseBareAmpersandExtend(val)
	assert.False(t, ok)
}

func TestApplyRewritesMatchingSelector(t *testing.T) {
	rsA := &ast.Ruleset{Selector: sel(".a")}
	rsB := &ast.Ruleset{Selector: sel(".b")}
	Apply([]*ast.Ruleset{rsA, rsB}, []ast.Extension{
		{Target: sel(".a"), Source: sel(".b")},
	})
	assert.Contains(t, rsA.Selector.String(), ".b")
}

func TestApplyIsTransitive(t *testing.T) {
	rsA := &ast.Ruleset{Selector: sel(".a")}
	Apply([]*ast.Ruleset{rsA}, []ast.Extension{
		{Target: sel(".a"), Source: sel(".b")},
		{Target: sel(".b"), Source: sel(".c")},
	})
	assert.Contains(t, rsA.Selector.String(), ".c")
}

func TestApplyTerminatesOnCyclicExtendChain(t *testing.T) {
	rsA := &ast.Ruleset{Selector: sel(".a")}
	rsB := &ast.Ruleset{Selector: sel(".b")}
	Apply([]*ast.Ruleset{rsA, rsB}, []ast.Extension{
		{Target: sel(".a"), Source: sel(".b")},
		{Target: sel(".b"), Source: sel(".a")},
	})
	assert.Contains(t, rsA.Selector.String(), ".b")
	assert.Contains(t, rsB.Selector.String(), ".a")
}

func TestApplyNoExtensionsIsNoop(t *testing.T) {
	rsA := &ast.Ruleset{Selector: sel(".a")}
	Apply([]*ast.Ruleset{rsA}, nil)
	assert.Equal(t, ".a", rsA.Selector.String())
}

func TestBuildExtendGraphDetectsCycle(t *testing.T) {
	g := buildExtendGraph([]ast.Extension{
		{Target: sel(".a"), Source: sel(".b")},
		{Target: sel(".b"), Source: sel(".a")},
	})
	assert.True(t, g.hasCycle())
}

func TestBuildExtendGraphAcyclic(t *testing.T) {
	g := buildExtendGraph([]ast.Extension{
		{Target: sel(".a"), Source: sel(".b")},
		{Target: sel(".b"), Source: sel(".c")},
	})
	assert.False(t, g.hasCycle())
}
