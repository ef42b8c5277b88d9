// Package passes runs analyses over a lowered function in a fixed order,
// with optional dumps and verification between them.
package passes

import (
	"fmt"
	"io"
	"os"

	"github.com/you-not-fish/gsmc/internal/ssa"
)

// Pass describes a single step of the pipeline.
type Pass struct {
	Name string
	Fn   func(f *ssa.Func) error
}

// Config controls pass execution behavior.
type Config struct {
	DumpBefore string    // dump before this pass ("*" for all)
	DumpAfter  string    // dump after this pass ("*" for all)
	Verify     bool      // verify before/after each pass
	Out        io.Writer // dump destination; nil means os.Stderr
}

// Standard returns the analyses run on every lowered program: the
// dominator tree, then the check that every use is dominated by its
// definition.
func Standard() []Pass {
	return []Pass{
		{Name: "dom", Fn: func(f *ssa.Func) error {
			ssa.ComputeDom(f)
			return nil
		}},
		{Name: "domcheck", Fn: ssa.VerifyDom},
	}
}

// Run executes the given passes on f in order. It stops at the first
// pass or verification that fails.
func Run(f *ssa.Func, passes []Pass, cfg Config) error {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) {
			fmt.Fprintf(out, "--- before %s (%s) ---\n", p.Name, f.Name)
			ssa.Fprint(out, f)
			fmt.Fprintln(out)
		}

		if cfg.Verify {
			if err := ssa.Verify(f); err != nil {
				return fmt.Errorf("verify before %s: %w", p.Name, err)
			}
		}

		if err := p.Fn(f); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}

		if cfg.Verify {
			if err := ssa.Verify(f); err != nil {
				return fmt.Errorf("verify after %s: %w", p.Name, err)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) {
			fmt.Fprintf(out, "--- after %s (%s) ---\n", p.Name, f.Name)
			ssa.Fprint(out, f)
			fmt.Fprintln(out)
		}
	}
	return nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}
