package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labeled child node one level deeper.
func (p *printer) field(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) body(label string, list []*AssignStmt) {
	p.printf("%s:\n", label)
	p.indent++
	for _, s := range list {
		p.print(s)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s\n", n.pos)
		p.indent++
		for i, name := range n.Names {
			if i < len(n.Values) {
				p.field(name.Value, n.Values[i])
			} else {
				p.printf("%s\n", name.Value)
			}
		}
		p.indent--

	case *AssignStmt:
		p.printf("AssignStmt %s %s %s\n", n.pos, n.Target.Value, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		for i, cond := range n.Conds {
			p.field("Cond", cond)
			p.body("Then", n.Bodies[i])
		}
		if n.HasElse() {
			p.body("Else", n.Bodies[len(n.Conds)])
		}
		p.indent--

	case *LoopStmt:
		p.printf("LoopStmt %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.body("Body", n.Body)
		p.indent--

	case *Name:
		p.printf("Name %s %s\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s\n", n.pos, n.Value)

	case *Operation:
		p.printf("BinaryOp %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("X", n.X)
		p.field("Y", n.Y)
		p.indent--

	default:
		p.printf("%T %s\n", n, n.Pos())
	}
}
