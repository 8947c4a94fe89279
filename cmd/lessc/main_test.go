package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompilesFileToOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.less")
	require.NoError(t, os.WriteFile(in, []byte("@c: red;\n.a { color: @c; }\n"), 0o644))
	out := filepath.Join(dir, "a.css")

	code := run(in, out, false, false, nil)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "color: red")
}

func TestRunMinifies(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.less")
	require.NoError(t, os.WriteFile(in, []byte(".a { color: red; }\n"), 0o644))
	out := filepath.Join(dir, "a.css")

	code := run(in, out, true, true, nil)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n  ")
}

func TestRunNoMatchIsIOError(t *testing.T) {
	dir := t.TempDir()
	code := run(filepath.Join(dir, "*.less"), "", false, false, nil)
	assert.Equal(t, 3, code)
}

func TestRunParseErrorExitsOne(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.less")
	require.NoError(t, os.WriteFile(in, []byte(".a { color: red\n"), 0o644))

	code := run(in, filepath.Join(dir, "bad.css"), false, false, nil)
	assert.Equal(t, 1, code)
}

func TestRunGlobBatchCompilesEachMatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.less"), []byte(".a { color: red; }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.less"), []byte(".b { color: blue; }\n"), 0o644))

	code := run(filepath.Join(dir, "*.less"), "", false, false, nil)
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(dir, "a.css"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "b.css"))
	assert.NoError(t, err)
}

func TestCompileOneUsesConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lessrc.yaml"), []byte("minify: true\n"), 0o644))
	in := filepath.Join(dir, "a.less")
	require.NoError(t, os.WriteFile(in, []byte(".a { color: red; }\n"), 0o644))
	out := filepath.Join(dir, "a.css")

	code := compileOne(in, out, false, false, nil, dir)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n  ")
}
