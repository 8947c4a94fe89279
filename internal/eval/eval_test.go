package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessc.dev/lessc/internal/cssast"
	"lessc.dev/lessc/internal/eval"
	"lessc.dev/lessc/internal/lessparser"
	"lessc.dev/lessc/internal/lexer"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	list, err := lexer.New(src, "test.less").Tokenize()
	require.NoError(t, err)
	ss, err := lessparser.Parse(list, "test.less")
	require.NoError(t, err)
	out, err := eval.Compile(ss)
	require.NoError(t, err)
	return cssast.Serialize(out, cssast.Normal)
}

func compileErr(t *testing.T, src string) error {
	t.Helper()
	list, err := lexer.New(src, "test.less").Tokenize()
	require.NoError(t, err)
	ss, err := lessparser.Parse(list, "test.less")
	require.NoError(t, err)
	_, err = eval.Compile(ss)
	return err
}

func TestVariableSubstitution(t *testing.T) {
	css := compile(t, "@c: red;\n.a { color: @c; }\n")
	assert.Contains(t, css, "color: red")
}

func TestArithmeticWithUnits(t *testing.T) {
	css := compile(t, ".a { width: 2px + 3px; }\n")
	assert.Contains(t, css, "width: 5px")
}

func TestNestedSelectorsFlatten(t *testing.T) {
	css := compile(t, ".a { .b { color: red; } }\n")
	assert.Contains(t, css, ".a .b")
}

func TestAmpersandJoin(t *testing.T) {
	css := compile(t, ".a { &:hover { color: red; } }\n")
	assert.Contains(t, css, ".a:hover")
}

func TestMixinInvocationAndDefaults(t *testing.T) {
	css := compile(t, ".m(@size: 10px) { width: @size; }\n.a { .m(); }\n.b { .m(20px); }\n")
	assert.Contains(t, css, "width: 10px")
	assert.Contains(t, css, "width: 20px")
}

func TestMixinGuardOverloadSelectsMatchingDefinition(t *testing.T) {
	css := compile(t, ".m(@v) when (@v > 5) { matched: big; }\n.m(@v) when (@v <= 5) { matched: small; }\n.a { .m(10); }\n.b { .m(1); }\n")
	assert.Contains(t, css, "matched: big")
	assert.Contains(t, css, "matched: small")
}

func TestMixinLaterDefinitionReachableFromEarlierCall(t *testing.T) {
	css := compile(t, ".a { .m(); }\n.m() { color: red; }\n")
	assert.Contains(t, css, "color: red")
}

func TestMediaQueryBubbling(t *testing.T) {
	css := compile(t, ".a { color: red; @media (min-width: 768px) { color: blue; } }\n")
	idx := strings.Index(css, "@media")
	require.NotEqual(t, -1, idx)
	assert.Contains(t, css[idx:], ".a")
	assert.Contains(t, css[idx:], "color: blue")
}

func TestExtendRewritesMatchingSelector(t *testing.T) {
	css := compile(t, ".a { color: red; }\n.b:extend(.a) { }\n")
	assert.Contains(t, css, ".a")
	assert.Contains(t, css, ".b")
}

func TestUnboundVariableIsEvaluationError(t *testing.T) {
	err := compileErr(t, ".a { color: @missing; }\n")
	require.Error(t, err)
}

func TestMixinNotFoundIsEvaluationError(t *testing.T) {
	err := compileErr(t, ".a { .nope(); }\n")
	require.Error(t, err)
}
