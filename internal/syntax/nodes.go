package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// The node set is closed: only this package can implement Node, Expr and
// Stmt, so a type switch over the concrete types below is exhaustive.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the first character of the node
	aNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program

// Program is a complete compilation unit: the top-level statements in
// source order.
type Program struct {
	node
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Expressions

// Name is an identifier reference.
type Name struct {
	expr
	Value string
}

// BasicLit is a decimal integer literal. The parser guarantees that Value
// fits in 32 bits.
type BasicLit struct {
	expr
	Value string
}

// Operation is a binary operation. Both X and Y are always set.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// ----------------------------------------------------------------------------
// Statements

// DeclStmt declares one or more variables:
//
//	int a, b, c = 1, 2;
//
// Values holds at most len(Names) initializers; names without one start at 0.
type DeclStmt struct {
	stmt
	Names  []*Name
	Values []Expr
}

// AssignStmt is a plain or compound assignment: Target Op X.
type AssignStmt struct {
	stmt
	Target *Name
	Op     Token // Assign, AddAssign, SubAssign, MulAssign, DivAssign or RemAssign
	X      Expr
}

// Value returns the expression whose result is stored into Target.
// A compound assignment x op= e reads as x = x op e; the Operation is built
// on each call and never stored in the tree.
func (s *AssignStmt) Value() Expr {
	op, ok := s.Op.BinaryOp()
	if !ok {
		return s.X
	}
	target := &Name{Value: s.Target.Value}
	target.pos = s.Target.pos
	bin := &Operation{Op: op, X: target, Y: s.X}
	bin.pos = s.pos
	return bin
}

// IfStmt is an if/elif/else chain.
//
//	if c0: begin ... end elif c1: begin ... end else: begin ... end
//
// Bodies[i] belongs to Conds[i]. When HasElse reports true the last body has
// no condition and is the else clause.
type IfStmt struct {
	stmt
	Conds  []Expr
	Bodies [][]*AssignStmt
}

// HasElse reports whether the chain ends in an else clause.
func (s *IfStmt) HasElse() bool {
	return len(s.Bodies) == len(s.Conds)+1
}

// LoopStmt is a pre-tested loop: loopc Cond: begin Body end.
type LoopStmt struct {
	stmt
	Cond Expr
	Body []*AssignStmt
}

// PrintStmt passes the value of X to the runtime print hook.
type PrintStmt struct {
	stmt
	X Expr
}
