package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/gsmc/internal/ssa"
	"github.com/you-not-fish/gsmc/internal/syntax"
)

const (
	promptMain  = "gsm> "
	promptCont  = "...> "
	historyFile = ".gsmc_history"
	replName    = "<repl>"
)

// session accumulates the statements accepted so far. Each new chunk is
// appended to the session and the whole program is lowered and run again;
// only output beyond what was already shown is printed.
type session struct {
	chunks   []string
	printed  int // number of values already shown
	slots    map[string]int32
	maxSteps int
}

func newSession(maxSteps int) *session {
	return &session{maxSteps: maxSteps}
}

// source returns the session program with chunk appended.
func (s *session) source(chunk string) string {
	return strings.Join(append(s.chunks[:len(s.chunks):len(s.chunks)], chunk), "\n")
}

// eval runs the session extended by chunk. On success the chunk is kept and
// new output is written to out; on failure the chunk is discarded and the
// error is returned.
func (s *session) eval(chunk string, out io.Writer) error {
	src := s.source(chunk)

	var errs []error
	p := syntax.NewParser(replName, strings.NewReader(src), func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Errorf("%s: %s", pos, msg))
	})
	prog := p.Parse()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	fn, err := ssa.Build(prog)
	if err != nil {
		return err
	}

	var values []int32
	in := &ssa.Interp{
		Print:    func(v int32) { values = append(values, v) },
		MaxSteps: s.maxSteps,
	}
	res, err := in.Run(fn)
	if err != nil {
		return err
	}

	for _, v := range values[min(s.printed, len(values)):] {
		fmt.Fprintln(out, v)
	}
	s.printed = len(values)
	s.slots = res.Slots
	s.chunks = append(s.chunks, chunk)
	return nil
}

// vars writes every named slot and its current value, sorted by name.
func (s *session) vars(out io.Writer) {
	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "%s = %d\n", name, s.slots[name])
	}
}

// reset forgets every accepted statement.
func (s *session) reset() {
	*s = session{maxSteps: s.maxSteps}
}

// command handles a ":" command line. It reports whether the REPL should
// exit.
func (s *session) command(line string, out io.Writer) (exit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return true
	case ":vars":
		s.vars(out)
	case ":reset":
		s.reset()
	case ":src":
		for _, c := range s.chunks {
			fmt.Fprintln(out, c)
		}
	case ":ssa":
		fn, err := ssa.Build(parseQuiet(strings.Join(s.chunks, "\n")))
		if err != nil {
			fmt.Fprintln(out, err)
			break
		}
		ssa.Fprint(out, fn)
	default:
		fmt.Fprintln(out, "commands: :vars :src :ssa :reset :quit")
	}
	return false
}

// parseQuiet parses src, ignoring errors. It is used only on sources that
// already parsed cleanly.
func parseQuiet(src string) *syntax.Program {
	p := syntax.NewParser(replName, strings.NewReader(src), func(syntax.Pos, string) {})
	return p.Parse()
}

// needsMore reports whether src ends before a statement is complete.
func needsMore(src string) bool {
	p := syntax.NewParser(replName, strings.NewReader(src), func(syntax.Pos, string) {})
	p.Parse()
	return syntax.Incomplete(p.FirstError())
}

// runREPL reads statements interactively until EOF or :quit.
func runREPL() int {
	fmt.Printf("GSM %s. Type :quit to exit.\n", Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(*maxSteps)
	for {
		chunk, ok := readChunk(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(chunk, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed, os.Stdout) {
				return 0
			}
			continue
		}

		if err := s.eval(chunk, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readChunk reads lines until they form input the parser does not consider
// truncated. It returns false at end of input or when the user aborts.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			// io.EOF or liner.ErrPromptAborted
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMore(src) {
			return src, true
		}
	}
}
