package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	content := "includePaths:\n  - vendor/less\nminify: true\nstrictUnits: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lessrc.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/less"}, cfg.IncludePaths)
	assert.True(t, cfg.Minify)
	assert.False(t, cfg.StrictUnits)
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	content := "{\n  // project defaults\n  \"includePaths\": [\"a\", \"b\"],\n  \"minify\": false\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lessrc.jsonc"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.IncludePaths)
	assert.False(t, cfg.Minify)
}

func TestLoadMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestMergeFlagsOverrideAndIncludePathsConcat(t *testing.T) {
	cfg := &Config{IncludePaths: []string{"from-config"}, Minify: true, StrictUnits: true}

	includePaths, minify, strictUnits := cfg.Merge([]string{"from-flag"}, false, false, true, true)
	assert.Equal(t, []string{"from-config", "from-flag"}, includePaths)
	assert.False(t, minify)
	assert.False(t, strictUnits)
}

func TestMergeLeavesConfigWhenFlagsUnset(t *testing.T) {
	cfg := &Config{Minify: true, StrictUnits: true}

	_, minify, strictUnits := cfg.Merge(nil, false, false, false, false)
	assert.True(t, minify)
	assert.True(t, strictUnits)
}
