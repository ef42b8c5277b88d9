// Package codegen emits LLVM IR text for a lowered GSM program.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/you-not-fish/gsmc/internal/rtabi"
	"github.com/you-not-fish/gsmc/internal/ssa"
)

// Options control module-level output.
type Options struct {
	// SourceName is recorded as the module's source_filename.
	SourceName string

	// TargetTriple is emitted when non-empty; otherwise the toolchain that
	// consumes the module picks its default target.
	TargetTriple string
}

// generator holds the state for emitting one module.
type generator struct {
	e    *emitter
	opts Options
}

// Generate writes fn as a complete LLVM IR module to w: a declaration of
// every runtime hook followed by the definition of the entry function.
// It returns the first write error, if any.
func Generate(w io.Writer, fn *ssa.Func, opts Options) error {
	g := &generator{
		e:    &emitter{w: w},
		opts: opts,
	}

	g.header()
	g.declareRuntime()
	g.e.emitLine()
	g.lowerFunc(fn)

	return g.e.err
}

func (g *generator) header() {
	name := g.opts.SourceName
	if name == "" {
		name = "<stdin>"
	}
	g.e.emit("; ModuleID = '%s'", name)
	g.e.emit("source_filename = \"%s\"", llvmEscapeString(name))
	if g.opts.TargetTriple != "" {
		g.e.emit("target triple = \"%s\"", g.opts.TargetTriple)
	}
	g.e.emitLine()
}

// declareRuntime declares the external functions the runtime provides.
func (g *generator) declareRuntime() {
	for _, sig := range rtabi.RuntimeFunctions() {
		g.e.emit("declare %s @%s(%s)", sig.ReturnType, sig.Name, strings.Join(sig.ParamTypes, ", "))
	}
}

// llvmEscapeString returns s escaped for use inside an LLVM IR string
// literal. Non-printable characters, quote and backslash become \HH.
func llvmEscapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' || c < 0x20 || c >= 0x7f {
			fmt.Fprintf(&b, "\\%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
