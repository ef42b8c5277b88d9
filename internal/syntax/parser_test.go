package syntax

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseProgram(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs := parseProgramWithErrors(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	return prog
}

func parseProgramWithErrors(t *testing.T, src string) (*Program, []string) {
	t.Helper()
	var errs []string
	errh := func(pos Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := NewParser("test.gsm", strings.NewReader(src), errh)
	prog := p.Parse()
	if prog == nil {
		t.Fatal("Parse returned nil")
	}
	if p.HasError() != (len(errs) > 0) {
		t.Errorf("HasError() = %v with %d errors reported", p.HasError(), len(errs))
	}
	return prog, errs
}

// parseExpr parses "print src;" and returns the printed expression.
func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	prog := parseProgram(t, "print "+src+";")
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	ps, ok := prog.Stmts[0].(*PrintStmt)
	if !ok {
		t.Fatalf("got %T, want *PrintStmt", prog.Stmts[0])
	}
	return ps.X
}

// exprString renders e fully parenthesized.
func exprString(e Expr) string {
	switch e := e.(type) {
	case *Name:
		return e.Value
	case *BasicLit:
		return e.Value
	case *Operation:
		return "(" + exprString(e.X) + " " + e.Op.String() + " " + exprString(e.Y) + ")"
	}
	return "?"
}

// ----------------------------------------------------------------------------
// Expressions

func TestParseExprPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a", "a"},
		{"42", "42"},
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b % c", "((a / b) % c)"},
		{"a ^ b ^ c", "((a ^ b) ^ c)"},
		{"2 * 3 ^ 2", "(2 * (3 ^ 2))"},
		{"a or b and c", "(a or (b and c))"},
		{"a and b or c", "((a and b) or c)"},
		{"a == b > c", "(a == (b > c))"},
		{"a > b >= c", "((a > b) >= c)"},
		{"a >= b > c", "(a >= (b > c))"},
		{"a != b <= c", "(a != (b <= c))"},
		{"a < b + 1", "(a < (b + 1))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"((a))", "a"},
		{"1 + 2 * 3 - 4 / 2", "((1 + (2 * 3)) - (4 / 2))"},
		{"a or b or c", "((a or b) or c)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := exprString(parseExpr(t, tt.src)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseLiteralRange(t *testing.T) {
	if got := exprString(parseExpr(t, "2147483647")); got != "2147483647" {
		t.Errorf("got %s", got)
	}

	_, errs := parseProgramWithErrors(t, "print 2147483648;")
	if len(errs) != 1 || !strings.Contains(errs[0], "out of range") {
		t.Errorf("errors = %v, want one out of range error", errs)
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestParseDecl(t *testing.T) {
	tests := []struct {
		src    string
		names  []string
		values int
	}{
		{"int a;", []string{"a"}, 0},
		{"int a = 5;", []string{"a"}, 1},
		{"int a, b, c;", []string{"a", "b", "c"}, 0},
		{"int a, b, c = 1, 2;", []string{"a", "b", "c"}, 2},
		{"int a, b = 1, 2;", []string{"a", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			if len(prog.Stmts) != 1 {
				t.Fatalf("got %d statements", len(prog.Stmts))
			}
			d, ok := prog.Stmts[0].(*DeclStmt)
			if !ok {
				t.Fatalf("got %T, want *DeclStmt", prog.Stmts[0])
			}
			if len(d.Names) != len(tt.names) {
				t.Fatalf("got %d names, want %d", len(d.Names), len(tt.names))
			}
			for i, n := range d.Names {
				if n.Value != tt.names[i] {
					t.Errorf("name[%d] = %s, want %s", i, n.Value, tt.names[i])
				}
			}
			if len(d.Values) != tt.values {
				t.Errorf("got %d values, want %d", len(d.Values), tt.values)
			}
		})
	}
}

func TestParseAssign(t *testing.T) {
	tests := []struct {
		src   string
		op    Token
		value string
	}{
		{"x = 1;", _Assign, "1"},
		{"x += 1;", _AddAssign, "(x + 1)"},
		{"x -= y;", _SubAssign, "(x - y)"},
		{"x *= 2 + 3;", _MulAssign, "(x * (2 + 3))"},
		{"x /= 2;", _DivAssign, "(x / 2)"},
		{"x %= 7;", _RemAssign, "(x % 7)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			s, ok := prog.Stmts[0].(*AssignStmt)
			if !ok {
				t.Fatalf("got %T, want *AssignStmt", prog.Stmts[0])
			}
			if s.Target.Value != "x" || s.Op != tt.op {
				t.Errorf("got %s %v, want x %v", s.Target.Value, s.Op, tt.op)
			}
			if got := exprString(s.Value()); got != tt.value {
				t.Errorf("Value() = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestAssignValueNotShared(t *testing.T) {
	prog := parseProgram(t, "x += 1;")
	s := prog.Stmts[0].(*AssignStmt)

	v := s.Value().(*Operation)
	if v.X == Expr(s.Target) {
		t.Error("Value() reuses the target node")
	}
	if s.X != v.Y {
		t.Error("Value() does not use the parsed operand")
	}
	if _, ok := s.X.(*BasicLit); !ok {
		t.Errorf("stored X = %T, want *BasicLit", s.X)
	}
}

func TestParseIf(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		conds   int
		bodies  []int
		hasElse bool
	}{
		{"if", "if a: begin x = 1; end", 1, []int{1}, false},
		{"if_else", "if a: begin x = 1; end else: begin x = 2; y = 3; end", 1, []int{1, 2}, true},
		{"elif", "if a: begin end elif b: begin x = 1; end", 2, []int{0, 1}, false},
		{"full", "if a: begin x=1; end elif b: begin x=2; end elif c: begin end else: begin x=4; end",
			3, []int{1, 1, 0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			s, ok := prog.Stmts[0].(*IfStmt)
			if !ok {
				t.Fatalf("got %T, want *IfStmt", prog.Stmts[0])
			}
			if len(s.Conds) != tt.conds {
				t.Errorf("got %d conds, want %d", len(s.Conds), tt.conds)
			}
			if s.HasElse() != tt.hasElse {
				t.Errorf("HasElse() = %v, want %v", s.HasElse(), tt.hasElse)
			}
			if len(s.Bodies) != len(tt.bodies) {
				t.Fatalf("got %d bodies, want %d", len(s.Bodies), len(tt.bodies))
			}
			for i, b := range s.Bodies {
				if len(b) != tt.bodies[i] {
					t.Errorf("body[%d] has %d stmts, want %d", i, len(b), tt.bodies[i])
				}
			}
		})
	}
}

func TestParseLoop(t *testing.T) {
	prog := parseProgram(t, "loopc i < 3: begin i += 1; s = s + i; end")
	s, ok := prog.Stmts[0].(*LoopStmt)
	if !ok {
		t.Fatalf("got %T, want *LoopStmt", prog.Stmts[0])
	}
	if got := exprString(s.Cond); got != "(i < 3)" {
		t.Errorf("cond = %s", got)
	}
	if len(s.Body) != 2 {
		t.Errorf("got %d body stmts, want 2", len(s.Body))
	}
}

func TestParseComments(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		stmts int
	}{
		{"only", "/* nothing */", 0},
		{"between", "int a; /* note */ print a;", 2},
		{"junk_inside", "/* @ # ! if begin */ print 1;", 1},
		{"star_inside", "/* a * b / c */", 0},
		{"not_nested", "/* /* */ print 1;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			if len(prog.Stmts) != tt.stmts {
				t.Errorf("got %d statements, want %d", len(prog.Stmts), tt.stmts)
			}
		})
	}
}

func TestParseProgram(t *testing.T) {
	src := `
int a = 2, b = 3;
int c;
/* power loop */
c = a ^ b;
if c > 5: begin
	c -= 1;
end else: begin
	c += 1;
end
loopc c > 0: begin
	c = c - 3;
end
print c;
`
	prog := parseProgram(t, src)
	want := []string{"*syntax.DeclStmt", "*syntax.DeclStmt", "*syntax.AssignStmt",
		"*syntax.IfStmt", "*syntax.LoopStmt", "*syntax.PrintStmt"}
	if len(prog.Stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(prog.Stmts), len(want))
	}
	for i, s := range prog.Stmts {
		if got := fmt.Sprintf("%T", s); got != want[i] {
			t.Errorf("stmt[%d] = %s, want %s", i, got, want[i])
		}
	}
	if p := prog.Stmts[0].Pos(); p.Line() != 2 || p.Col() != 1 {
		t.Errorf("first statement at %s, want 2:1", p)
	}
}

// ----------------------------------------------------------------------------
// Errors and recovery

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		stmts   int    // statements that survive
		errs    int    // errors reported
		wantErr string // substring of the first error
	}{
		{"unknown_char", "print @;", 0, 1, `invalid character "@"`},
		{"missing_semi", "int a = 1 int b;", 0, 1, "unexpected int, expected ;"},
		{"missing_expr", "x = ;", 0, 1, "unexpected ;, expected expression"},
		{"missing_rparen", "x = (1 + 2;", 0, 2, "unexpected ;, expected )"},
		{"bad_target", "5 = x;", 0, 1, "unexpected 5, expected statement"},
		{"no_assign_op", "x 5;", 0, 1, "unexpected 5, expected assignment operator"},
		{"stray_comment_end", "*/ print 1;", 0, 1, "unexpected */, expected statement"},
		{"stray_else", "else: begin end", 0, 1, "unexpected else, expected statement"},
		{"unterminated_comment", "print 1; /* open", 1, 1, "comment not terminated"},
		{"duplicate_name", "int a, a; print 1;", 1, 1, "a declared twice"},
		{"too_many_values", "int a = 1, 2; print 1;", 1, 1, "too many initializers: 1 names, 2 values"},
		{"decl_no_name", "int 5;", 0, 1, "unexpected 5, expected identifier"},

		// Errors inside a block recover at its end.
		{"block_bad_expr", "if a: begin b = ; end print a;", 1, 1, "expected expression"},
		{"block_missing_semi", "loopc 1: begin x = 1 end print 2;", 1, 1, "unexpected end, expected ;"},
		{"block_missing_colon", "if a begin x = 1; end print 1;", 1, 1, "unexpected begin, expected :"},
		{"block_non_assign", "loopc 1: begin print 1; end print 2;", 1, 1, "expected assignment or end"},
		{"block_bad_cond", "loopc : begin end print 1;", 1, 1, "unexpected :, expected expression"},
		{"elif_error_keeps_going", "if a: begin x = ; end elif b: begin y = ; end print 1;", 1, 2, "expected expression"},
		{"block_at_eof", "loopc 1: begin x = 1;", 0, 1, "unexpected EOF, expected end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, errs := parseProgramWithErrors(t, tt.src)
			if len(errs) != tt.errs {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, tt.errs)
			}
			if !strings.Contains(errs[0], tt.wantErr) {
				t.Errorf("first error = %q, want it to contain %q", errs[0], tt.wantErr)
			}
			if len(prog.Stmts) != tt.stmts {
				t.Errorf("got %d statements, want %d", len(prog.Stmts), tt.stmts)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, errs := parseProgramWithErrors(t, "int a;\nprint a @;")
	if len(errs) == 0 {
		t.Fatal("no error reported")
	}
	if want := "test.gsm:2:9: "; !strings.HasPrefix(errs[0], want) {
		t.Errorf("error = %q, want prefix %q", errs[0], want)
	}
}

func TestParseErrorLimit(t *testing.T) {
	src := strings.Repeat("if a: begin print 1; end\n", 15)
	p := NewParser("test.gsm", strings.NewReader(src), func(Pos, string) {})
	p.Parse()

	if p.Errors() != maxErrors {
		t.Errorf("Errors() = %d, want %d", p.Errors(), maxErrors)
	}
}

func TestFirstError(t *testing.T) {
	p := NewParser("test.gsm", strings.NewReader("print 1;"), nil)
	p.Parse()
	if p.HasError() || p.FirstError() != nil {
		t.Fatalf("unexpected error %v", p.FirstError())
	}

	p = NewParser("test.gsm", strings.NewReader("x = ;\nprint @;"), nil)
	p.Parse()
	err := p.FirstError()
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("FirstError() = %T, want *SyntaxError", err)
	}
	if se.Pos.Line() != 1 || se.Tok != _Semi {
		t.Errorf("first error %v at token %v", se, se.Tok)
	}
	if se.Error() != "test.gsm:1:5: unexpected ;, expected expression" {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"loopc i < 3: begin i += 1;", true},
		{"if a: begin", true},
		{"print 1 +", true},
		{"/* open", true},
		{"int a", true},
		{"print @;", false},
		{"x = ;", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := NewParser("test.gsm", strings.NewReader(tt.src), nil)
			p.Parse()
			if !p.HasError() {
				t.Fatal("expected an error")
			}
			if got := Incomplete(p.FirstError()); got != tt.want {
				t.Errorf("Incomplete = %v, want %v (%v)", got, tt.want, p.FirstError())
			}
		})
	}

	if Incomplete(nil) {
		t.Error("Incomplete(nil) = true")
	}
}

// ----------------------------------------------------------------------------
// Printing and traversal

func TestFprint(t *testing.T) {
	prog := parseProgram(t, "int a = 1, b;\nif a: begin b += 2; end\nprint a ^ b;")

	var buf bytes.Buffer
	Fprint(&buf, prog)
	want := `Program test.gsm:1:1
  DeclStmt test.gsm:1:1
    a:
      BasicLit test.gsm:1:9 1
    b
  IfStmt test.gsm:2:1
    Cond:
      Name test.gsm:2:4 a
    Then:
      AssignStmt test.gsm:2:13 b +=
        BasicLit test.gsm:2:18 2
  PrintStmt test.gsm:3:1
    BinaryOp test.gsm:3:7 ^
      X:
        Name test.gsm:3:7 a
      Y:
        Name test.gsm:3:11 b
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFprintJSON(t *testing.T) {
	prog := parseProgram(t, "loopc i < 3: begin i += 1; end")

	var buf bytes.Buffer
	if err := FprintJSON(&buf, prog); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Type  string `json:"type"`
		Stmts []struct {
			Type string `json:"type"`
			Cond struct {
				Type string `json:"type"`
				Op   string `json:"op"`
			} `json:"cond"`
			Body []struct {
				Target string `json:"target"`
				Op     string `json:"op"`
			} `json:"body"`
		} `json:"stmts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Type != "Program" || len(out.Stmts) != 1 {
		t.Fatalf("got %+v", out)
	}
	s := out.Stmts[0]
	if s.Type != "LoopStmt" || s.Cond.Op != "<" || len(s.Body) != 1 || s.Body[0].Op != "+=" || s.Body[0].Target != "i" {
		t.Errorf("got %+v", s)
	}
}

func TestWalk(t *testing.T) {
	prog := parseProgram(t, "int a = 1; if a: begin b = a + 1; end else: begin b = 2; end print b;")

	var names []string
	Inspect(prog, func(n Node) bool {
		if name, ok := n.(*Name); ok {
			names = append(names, name.Value)
		}
		return true
	})
	want := "a a b a b b"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("names = %q, want %q", got, want)
	}

	// Returning false prunes the subtree.
	count := 0
	Inspect(prog, func(n Node) bool {
		count++
		_, isIf := n.(*IfStmt)
		return !isIf
	})
	// Program, DeclStmt, a, 1, IfStmt, PrintStmt, b
	if count != 7 {
		t.Errorf("visited %d nodes, want 7", count)
	}
}
