package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/you-not-fish/gsmc/internal/ssa"
)

func TestSessionPrintsOnlyNewOutput(t *testing.T) {
	s := newSession(1000)

	steps := []struct {
		chunk string
		want  string
	}{
		{"int a = 2;", ""},
		{"print a;", "2\n"},
		{"a *= 5; print a;", "10\n"},
		{"print a ^ 2;", "100\n"},
	}
	for _, st := range steps {
		var out strings.Builder
		if err := s.eval(st.chunk, &out); err != nil {
			t.Fatalf("eval(%q): %v", st.chunk, err)
		}
		if out.String() != st.want {
			t.Errorf("eval(%q) output = %q, want %q", st.chunk, out.String(), st.want)
		}
	}
	if len(s.chunks) != len(steps) {
		t.Errorf("chunks = %d, want %d", len(s.chunks), len(steps))
	}
}

func TestSessionDiscardsFailedChunk(t *testing.T) {
	s := newSession(1000)
	var out strings.Builder

	if err := s.eval("int a = 1;", &out); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		chunk string
		want  string
	}{
		{"a = ;", "<repl>:2:5: unexpected ;, expected expression"},
		{"print b;", "undefined: b"},
		{"print a / 0;", "integer divide by zero"},
	}
	for _, tt := range tests {
		err := s.eval(tt.chunk, &out)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("eval(%q) error = %v, want %q", tt.chunk, err, tt.want)
		}
	}
	if len(s.chunks) != 1 {
		t.Errorf("failed chunks were kept: %q", s.chunks)
	}
	if out.String() != "" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSessionStepLimit(t *testing.T) {
	s := newSession(20)
	err := s.eval("int i = 1; loopc i: begin i = 1; end", &strings.Builder{})
	if !errors.Is(err, ssa.ErrStepLimit) {
		t.Errorf("error = %v, want %v", err, ssa.ErrStepLimit)
	}
}

func TestSessionCommands(t *testing.T) {
	s := newSession(1000)
	if err := s.eval("int b = 2; int a = b ^ 3;", &strings.Builder{}); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if s.command(":vars", &out) {
		t.Fatal(":vars asked to exit")
	}
	if out.String() != "a = 8\nb = 2\n" {
		t.Errorf(":vars = %q", out.String())
	}

	out.Reset()
	s.command(":ssa", &out)
	if !strings.Contains(out.String(), "pow.cond") {
		t.Errorf(":ssa output:\n%s", out.String())
	}

	out.Reset()
	s.command(":src", &out)
	if out.String() != "int b = 2; int a = b ^ 3;\n" {
		t.Errorf(":src = %q", out.String())
	}

	s.command(":reset", &out)
	if len(s.chunks) != 0 || s.printed != 0 || s.maxSteps != 1000 {
		t.Errorf("reset left state: %+v", s)
	}

	if !s.command(":quit", &out) {
		t.Error(":quit did not ask to exit")
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"int a = 1;", false},
		{"int a = 1", true},
		{"if a > 0: begin", true},
		{"if a > 0: begin a = 1; end", false},
		{"loopc i: begin i -= 1;", true},
		{"/* open comment", true},
		{"int = 1;", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.src); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
