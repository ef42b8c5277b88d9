package syntax

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError is an error reported by the parser.
type SyntaxError struct {
	Pos Pos
	Msg string
	Tok Token // token the parser was looking at
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Incomplete reports whether err is a syntax error caused by running out of
// input, i.e. more source could still make the program valid.
func Incomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Tok == _EOF
}

// Parser builds a Program from GSM source.
//
// Errors are reported through the errh callback and recorded in a sticky
// error count; parsing continues after an error so that later errors are
// reported too. A Program returned while HasError is true must not be
// lowered.
type Parser struct {
	scanner *Scanner

	// current token
	tok Token
	lit string
	pos Pos

	errh   func(pos Pos, msg string)
	errcnt int
	first  error
	abort  bool
}

// NewParser creates a Parser for src and reads the first token.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	p := &Parser{errh: errh}
	p.scanner = NewScanner(filename, src, func(line, col uint32, msg string) {
		p.errorAt(NewPos(filename, line, col), msg)
	})
	p.next()
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	if p.abort {
		return
	}
	it := p.scanner.Next()
	p.tok = it.Tok
	p.lit = it.Text
	p.pos = it.Pos
}

// got consumes the current token if it is tok.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes tok or reports an error naming it as expected.
func (p *Parser) want(tok Token) bool {
	if p.got(tok) {
		return true
	}
	p.unexpected(tok.String())
	return false
}

// synchronize discards tokens until the current one is in stop or the input
// is exhausted. The stop token itself is left for the caller. With no stop
// tokens it drains the input.
func (p *Parser) synchronize(stop ...Token) {
	for p.tok != _EOF {
		for _, t := range stop {
			if p.tok == t {
				return
			}
		}
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Error handling

// unexpected reports the current token as an error. expected, if not empty,
// describes what the grammar allows here.
func (p *Parser) unexpected(expected string) {
	var msg string
	switch p.tok {
	case _EOF:
		msg = "unexpected EOF"
	case _Unknown:
		msg = fmt.Sprintf("invalid character %q", p.lit)
	default:
		msg = "unexpected " + p.lit
	}
	if expected != "" {
		msg += ", expected " + expected
	}
	p.errorAt(p.pos, msg)
}

func (p *Parser) errorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg, Tok: p.tok}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	if p.errcnt >= maxErrors {
		if p.errh != nil {
			p.errh(pos, "too many errors")
		}
		p.abort = true
		p.tok = _EOF
		p.lit = ""
	}
}

// Errors returns the number of errors reported so far.
func (p *Parser) Errors() int {
	return p.errcnt
}

// HasError reports whether any error was reported. Once set it stays set.
func (p *Parser) HasError() bool {
	return p.errcnt > 0
}

// FirstError returns the first error reported, or nil.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the whole input.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	prog.pos = p.pos

	for p.tok != _EOF {
		s, ok := p.stmt()
		if !ok {
			// No safe point at top level: give up on the rest of the unit.
			p.synchronize()
			break
		}
		if s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
	}

	return prog
}

// ----------------------------------------------------------------------------
// Statements
//
// Statement routines return ok == false when the parser is left at an
// unknown point in the token stream and the caller has to resynchronize. A
// nil Stmt with ok == true means the construct was consumed but dropped,
// either because it produces no node (comments) or because an error inside
// it was already recovered from.

func (p *Parser) stmt() (Stmt, bool) {
	switch p.tok {
	case _Int:
		return p.declStmt()
	case _Print:
		return p.printStmt()
	case _Name:
		s, ok := p.assignStmt()
		if !ok {
			return nil, false
		}
		return s, true
	case _If:
		return p.ifStmt()
	case _Loopc:
		return p.loopStmt()
	case _CommentStart:
		p.comment()
		return nil, true
	default:
		p.unexpected("statement")
		return nil, false
	}
}

// declStmt parses: int a, b, c [= e1, e2, e3] ;
func (p *Parser) declStmt() (Stmt, bool) {
	s := &DeclStmt{}
	s.pos = p.pos
	p.next() // int

	valid := true
	seen := make(map[string]bool)
	for {
		n, ok := p.name()
		if !ok {
			return nil, false
		}
		if seen[n.Value] {
			p.errorAt(n.pos, fmt.Sprintf("%s declared twice in one declaration", n.Value))
			valid = false
		}
		seen[n.Value] = true
		s.Names = append(s.Names, n)
		if !p.got(_Comma) {
			break
		}
	}

	if p.got(_Assign) {
		list, ok := p.exprList()
		if !ok {
			return nil, false
		}
		s.Values = list
	}

	if !p.want(_Semi) {
		return nil, false
	}

	if len(s.Values) > len(s.Names) {
		p.errorAt(s.Values[len(s.Names)].Pos(),
			fmt.Sprintf("too many initializers: %d names, %d values", len(s.Names), len(s.Values)))
		valid = false
	}
	if !valid {
		return nil, true
	}
	return s, true
}

// printStmt parses: print e ;
func (p *Parser) printStmt() (Stmt, bool) {
	s := &PrintStmt{}
	s.pos = p.pos
	p.next() // print

	x, ok := p.expr()
	if !ok {
		return nil, false
	}
	s.X = x

	if !p.want(_Semi) {
		return nil, false
	}
	return s, true
}

// assignStmt parses: x op e ;  where op is = or a compound assignment.
func (p *Parser) assignStmt() (*AssignStmt, bool) {
	s := &AssignStmt{}
	s.pos = p.pos

	target, ok := p.name()
	if !ok {
		return nil, false
	}
	s.Target = target

	if !p.tok.IsAssignOp() {
		p.unexpected("assignment operator")
		return nil, false
	}
	s.Op = p.tok
	p.next()

	x, ok := p.expr()
	if !ok {
		return nil, false
	}
	s.X = x

	if !p.want(_Semi) {
		return nil, false
	}
	return s, true
}

// ifStmt parses:
//
//	if e : begin A* end {elif e : begin A* end} [else : begin A* end]
//
// An error inside one clause is recovered at that clause's end, so the
// remaining clauses are still checked.
func (p *Parser) ifStmt() (Stmt, bool) {
	s := &IfStmt{}
	s.pos = p.pos
	p.next() // if

	valid := p.clause(s)
	for p.tok == _Elif {
		p.next()
		valid = p.clause(s) && valid
	}
	if p.got(_Else) {
		body, ok := p.block()
		s.Bodies = append(s.Bodies, body)
		valid = ok && valid
	}

	if !valid {
		return nil, true
	}
	return s, true
}

// clause parses one conditional clause of an if chain and appends it to s.
func (p *Parser) clause(s *IfStmt) bool {
	cond, ok := p.expr()
	if !ok {
		p.skipBlock()
		return false
	}
	body, ok := p.block()
	s.Conds = append(s.Conds, cond)
	s.Bodies = append(s.Bodies, body)
	return ok
}

// loopStmt parses: loopc e : begin A* end
func (p *Parser) loopStmt() (Stmt, bool) {
	s := &LoopStmt{}
	s.pos = p.pos
	p.next() // loopc

	cond, ok := p.expr()
	if !ok {
		p.skipBlock()
		return nil, true
	}
	s.Cond = cond

	body, ok := p.block()
	if !ok {
		return nil, true
	}
	s.Body = body
	return s, true
}

// block parses ": begin A* end", where every A is an assignment.
// On error it discards tokens through the block's end and returns false.
func (p *Parser) block() ([]*AssignStmt, bool) {
	if !p.want(_Colon) || !p.want(_Begin) {
		p.skipBlock()
		return nil, false
	}

	var list []*AssignStmt
	for p.tok != _End && p.tok != _EOF {
		if p.tok != _Name {
			p.unexpected("assignment or end")
			p.skipBlock()
			return nil, false
		}
		a, ok := p.assignStmt()
		if !ok {
			p.skipBlock()
			return nil, false
		}
		list = append(list, a)
	}

	if !p.want(_End) {
		return nil, false
	}
	return list, true
}

// skipBlock recovers inside a block construct: it discards tokens up to and
// including the next end.
func (p *Parser) skipBlock() {
	p.synchronize(_End)
	p.got(_End)
}

// comment skips everything from /* up to and including the matching */.
func (p *Parser) comment() {
	pos := p.pos
	p.next() // /*

	for p.tok != _CommentEnd && p.tok != _EOF {
		p.next()
	}
	if p.tok == _EOF {
		p.errorAt(pos, "comment not terminated")
		return
	}
	p.next()
}

// ----------------------------------------------------------------------------
// Expressions

func (p *Parser) expr() (Expr, bool) {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression whose operators bind tighter than
// prec, building left-associative Operations at each level.
func (p *Parser) binaryExpr(prec int) (Expr, bool) {
	x, ok := p.operand()
	if !ok {
		return nil, false
	}

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x, true
		}

		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()

		y, ok := p.binaryExpr(oprec)
		if !ok {
			return nil, false
		}
		op.Y = y
		x = op
	}
}

// operand parses a number, a name or a parenthesized expression.
func (p *Parser) operand() (Expr, bool) {
	switch p.tok {
	case _Number:
		lit := &BasicLit{Value: p.lit}
		lit.pos = p.pos
		if _, err := strconv.ParseInt(p.lit, 10, 32); err != nil {
			p.errorAt(p.pos, fmt.Sprintf("integer literal %s out of range", p.lit))
		}
		p.next()
		return lit, true

	case _Name:
		n := &Name{Value: p.lit}
		n.pos = p.pos
		p.next()
		return n, true

	case _Lparen:
		p.next()
		x, ok := p.expr()
		if !ok {
			return nil, false
		}
		if !p.want(_Rparen) {
			p.synchronize(_Rparen, _Mul, _Add, _Sub, _Div)
		}
		return x, true

	default:
		p.unexpected("expression")
		return nil, false
	}
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() ([]Expr, bool) {
	var list []Expr
	for {
		x, ok := p.expr()
		if !ok {
			return nil, false
		}
		list = append(list, x)
		if !p.got(_Comma) {
			return list, true
		}
	}
}

// name parses an identifier.
func (p *Parser) name() (*Name, bool) {
	if p.tok != _Name {
		p.unexpected("identifier")
		return nil, false
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n, true
}
