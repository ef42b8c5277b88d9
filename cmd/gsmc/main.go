// Package main implements the GSM compiler entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/you-not-fish/gsmc/internal/codegen"
	"github.com/you-not-fish/gsmc/internal/ssa"
	"github.com/you-not-fish/gsmc/internal/ssa/passes"
	"github.com/you-not-fish/gsmc/internal/syntax"
)

// Compiler flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	emitSSA    = flag.Bool("emit-ssa", false, "Output lowered blocks")
	emitLL     = flag.Bool("emit-ll", false, "Output LLVM IR (default)")
	runProg    = flag.Bool("run", false, "Execute the program with the interpreter")
	output     = flag.String("o", "", "Output file")
	target     = flag.String("target", "", "LLVM target triple to record in the module")
	ssaVerify  = flag.Bool("ssa-verify", false, "Verify blocks before and after each pass")
	dumpBefore = flag.String("dump-before", "", "Dump blocks before pass (name or \"*\")")
	dumpAfter  = flag.String("dump-after", "", "Dump blocks after pass (name or \"*\")")
	maxSteps   = flag.Int("max-steps", 10000000, "Block budget for -run and -repl (0 = unlimited)")
	trace      = flag.Bool("trace", false, "Output timing trace")
	repl       = flag.Bool("repl", false, "Start an interactive session")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "GSM Compiler %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: gsmc [options] <file.gsm>\n")
		fmt.Fprintf(os.Stderr, "       gsmc -repl\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("gsmc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *repl {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: gsmc [options] <file.gsm>")
		os.Exit(1)
	}

	filename := args[0]

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename))
	case *emitAST:
		os.Exit(runEmitAST(filename))
	case *emitSSA:
		os.Exit(runEmitSSA(filename))
	case *runProg:
		os.Exit(runInterp(filename))
	default:
		// -emit-ll is the default action.
		os.Exit(runEmitLL(filename))
	}
}

// phase reports the time spent in a pipeline stage when -trace is set.
func phase(name string, start time.Time) {
	if *trace {
		fmt.Fprintf(os.Stderr, "[trace] %-8s %v\n", name, time.Since(start))
	}
}

// openOutput returns the destination selected by -o, or stdout.
func openOutput() (io.WriteCloser, error) {
	if *output == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(*output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// parseFile parses filename, printing every syntax error to stderr.
// The returned bool is false if the file could not be read or any error
// was reported.
func parseFile(filename string) (*syntax.Program, bool) {
	defer phase("parse", time.Now())

	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	defer f.Close()

	errh := func(pos syntax.Pos, msg string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
	}

	p := syntax.NewParser(filename, f, errh)
	prog := p.Parse()
	return prog, !p.HasError()
}

// lowerFile parses and lowers filename, then runs the standard analyses.
// Nothing is lowered when the parser reported an error.
func lowerFile(filename string) (*ssa.Func, bool) {
	prog, ok := parseFile(filename)
	if !ok {
		return nil, false
	}

	start := time.Now()
	fn, err := ssa.Build(prog)
	phase("build", start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}

	start = time.Now()
	cfg := passes.Config{
		DumpBefore: *dumpBefore,
		DumpAfter:  *dumpAfter,
		Verify:     *ssaVerify,
	}
	err = passes.Run(fn, passes.Standard(), cfg)
	phase("passes", start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pass pipeline failed for %s:\n%v\n", fn.Name, err)
		return nil, false
	}
	return fn, true
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errors []string
	errh := func(line, col uint32, msg string) {
		errors = append(errors, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		it := s.Next()
		fmt.Printf("%-20s %-12s %s\n", it.Pos, it.Tok, formatLiteral(it.Text))
		if it.Tok.IsEOF() {
			break
		}
	}

	if len(errors) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}

	return 0
}

// formatLiteral quotes a token's text for display, escaping special
// characters.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(lit); i++ {
		switch c := lit[i]; {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, "\\x%02x", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	prog, ok := parseFile(filename)
	if prog == nil {
		return 1
	}

	w, err := openOutput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer w.Close()

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(w, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	case "text":
		syntax.Fprint(w, prog)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -ast-format %q\n", *astFormat)
		return 1
	}

	if !ok {
		return 1
	}
	return 0
}

// runEmitSSA lowers the input file and prints its blocks.
func runEmitSSA(filename string) int {
	fn, ok := lowerFile(filename)
	if !ok {
		return 1
	}

	w, err := openOutput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer w.Close()

	ssa.Fprint(w, fn)
	return 0
}

// runEmitLL lowers the input file and writes an LLVM IR module.
func runEmitLL(filename string) int {
	fn, ok := lowerFile(filename)
	if !ok {
		return 1
	}

	w, err := openOutput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer w.Close()

	start := time.Now()
	err = codegen.Generate(w, fn, codegen.Options{
		SourceName:   filename,
		TargetTriple: *target,
	})
	phase("codegen", start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codegen: %v\n", err)
		return 1
	}
	return 0
}

// runInterp lowers the input file and executes it, printing one value per
// line as the runtime's print hook does.
func runInterp(filename string) int {
	fn, ok := lowerFile(filename)
	if !ok {
		return 1
	}

	in := &ssa.Interp{
		Print:    func(v int32) { fmt.Println(v) },
		MaxSteps: *maxSteps,
	}

	start := time.Now()
	res, err := in.Run(fn)
	phase("run", start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return int(res.ExitCode)
}
