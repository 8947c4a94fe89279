// Command lessc compiles LESS stylesheets to CSS (spec §6's CLI
// surface): a positional input (file path, glob, or `-` for stdin), an
// output path or stdout, and the flags below. Exit codes mirror the
// driver's error taxonomy: 0 success, 1 parse/lex error, 2 evaluation
// error, 3 I/O error.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"lessc.dev/lessc/internal/config"
	"lessc.dev/lessc/internal/cssast"
	"lessc.dev/lessc/internal/eval"
	"lessc.dev/lessc/internal/lesserr"
	"lessc.dev/lessc/internal/lessparser"
	"lessc.dev/lessc/internal/lexer"
	"lessc.dev/lessc/internal/log"
	"lessc.dev/lessc/internal/version"
)

const usage = `Usage: lessc [flags] <input.less|->

Compiles a LESS stylesheet to CSS. <input> may be a file path, a glob
pattern matching several files, or "-" to read from stdin.

Flags:
`

// includePathFlag collects a repeatable --include-path flag into a
// slice (the flag package style the teacher's tools/lsp-bench/main.go
// uses for per-concern flags, extended here for repetition).
type includePathFlag struct {
	values []string
}

func (f *includePathFlag) String() string { return strings.Join(f.values, ",") }

func (f *includePathFlag) Set(v string) error {
	f.values = append(f.values, v)
	return nil
}

func main() {
	var (
		output       = flag.String("o", "", "output file (default stdout)")
		minify       = flag.Bool("x", false, "minify output")
		showHelp     = flag.Bool("help", false, "show this help message")
		showVersion  = flag.Bool("version", false, "print version and exit")
		includePaths includePathFlag
	)
	flag.Var(&includePaths, "include-path", "search path for @import (may repeat)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println(version.GetFullVersion())
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(3)
	}
	input := flag.Arg(0)

	os.Exit(run(input, *output, *minify, isFlagSet("x"), includePaths.values))
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// run resolves input to one or more source files (or stdin), compiles
// each, and writes the result. It returns the process exit code rather
// than calling os.Exit directly, so the bulk of the CLI is testable.
func run(input, output string, flagMinify, minifySet bool, flagIncludePaths []string) int {
	if input == "-" {
		return compileOne("-", output, flagMinify, minifySet, flagIncludePaths, ".")
	}

	matches, err := doublestar.FilepathGlob(input)
	if err != nil {
		log.Error("invalid glob pattern %q: %s", input, err)
		return 3
	}
	if len(matches) == 0 {
		log.Error("no input files matched %q", input)
		return 3
	}

	batch := len(matches) > 1
	for _, path := range matches {
		out := output
		if batch {
			// A glob batch never shares a single -o target; each match
			// compiles next to itself with a .css extension instead.
			out = strings.TrimSuffix(path, filepath.Ext(path)) + ".css"
		}
		if code := compileOne(path, out, flagMinify, minifySet, flagIncludePaths, filepath.Dir(path)); code != 0 {
			return code
		}
	}
	return 0
}

func compileOne(path, output string, flagMinify, minifySet bool, flagIncludePaths []string, configDir string) int {
	cfg, err := config.Load(configDir)
	if err != nil {
		log.Error("loading .lessrc: %s", err)
		return 3
	}
	// strictUnits has no CLI flag (spec §6 names none for it); its merged
	// value is discarded here and nothing downstream reads it. Only minify
	// is flag-overridable and used. includePaths resolves but goes unused past this point: @import
	// resolution is an external collaborator this compiler never
	// implements (spec §1), so there is nothing downstream to hand a
	// search path to yet.
	_, minify, _ := cfg.Merge(flagIncludePaths, flagMinify, false, minifySet, false)

	source, file, err := readInput(path)
	if err != nil {
		log.Error("%s", err)
		return 3
	}

	list, err := lexer.New(source, file).Tokenize()
	if err != nil {
		return reportDiagnostic(err)
	}

	stylesheet, err := lessparser.Parse(list, file)
	if err != nil {
		return reportDiagnostic(err)
	}

	compiled, err := eval.Compile(stylesheet)
	if err != nil {
		return reportDiagnostic(err)
	}

	format := cssast.Normal
	if minify {
		format = cssast.Minified
	}
	css := cssast.Serialize(compiled, format)

	if err := writeOutput(output, css); err != nil {
		log.Error("%s", err)
		return 3
	}
	return 0
}

func readInput(path string) (source, file string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", lesserr.NewIOError("reading stdin: %s", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", lesserr.NewIOError("reading %s: %s", path, err)
	}
	return string(data), path, nil
}

func writeOutput(path, css string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, css)
		if err != nil {
			return lesserr.NewIOError("writing stdout: %s", err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return lesserr.NewIOError("writing %s: %s", path, err)
	}
	return nil
}

// reportDiagnostic logs err and maps its kind to an exit code: 1 for
// lex/parse errors, 2 for everything else the evaluator can raise
// (spec §6/§7), 3 if it somehow isn't one of our own diagnostics.
func reportDiagnostic(err error) int {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		log.Error("%s", lexErr)
		return 1
	}

	var diag *lesserr.Diagnostic
	if !errors.As(err, &diag) {
		log.Error("%s", err)
		return 3
	}
	log.Error("%s", diag)
	switch diag.DiagKind {
	case lesserr.KindLex, lesserr.KindParse:
		return 1
	case lesserr.KindIO:
		return 3
	default:
		return 2
	}
}
