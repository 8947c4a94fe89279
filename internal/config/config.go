// Package config loads the optional `.lessrc.{yaml,yml,jsonc,json}`
// project defaults file (spec §6: "Environment variables: none
// required") a batch compile run may pick up next to the file(s) being
// compiled. Flags always win; this only fills in what the CLI leaves
// unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// candidateNames is the search order tried in a directory; the first
// one present wins, matching the teacher's single-config-wins
// assumption in lsp/configuration.go rather than merging several.
var candidateNames = []string{".lessrc.yaml", ".lessrc.yml", ".lessrc.jsonc", ".lessrc.json"}

// Config is the flat set of project defaults a .lessrc file may supply.
// Every field mirrors a CLI flag of the same concern (spec §6).
type Config struct {
	IncludePaths []string `yaml:"includePaths" json:"includePaths"`
	Minify       bool     `yaml:"minify" json:"minify"`
	StrictUnits  bool     `yaml:"strictUnits" json:"strictUnits"`
}

// Load searches dir for a recognized .lessrc file and decodes it. It
// returns a zero Config (not an error) when none is present.
func Load(dir string) (*Config, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return decode(path, data)
	}
	return &Config{}, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".jsonc", ".json":
		clean := jsonc.ToJSON(data)
		if err := json.Unmarshal(clean, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unrecognized config file extension: %s", path)
	}
	return &cfg, nil
}

// Merge layers flag-supplied values over c: a boolean flag the caller
// reports as set (minifySet, strictUnitsSet) takes precedence even when
// its value is false (spec §6: "Flags always override config-file
// values"). includePaths concatenate instead of replacing, so a
// project's configured search path is never silently dropped by a
// one-off --include-path on the command line.
func (c *Config) Merge(flagIncludePaths []string, flagMinify, flagStrictUnits, minifySet, strictUnitsSet bool) (includePaths []string, minify, strictUnits bool) {
	includePaths = append(append([]string{}, c.IncludePaths...), flagIncludePaths...)
	minify = c.Minify
	if minifySet {
		minify = flagMinify
	}
	strictUnits = c.StrictUnits
	if strictUnitsSet {
		strictUnits = flagStrictUnits
	}
	return includePaths, minify, strictUnits
}
