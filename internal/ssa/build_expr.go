package ssa

import (
	"fmt"
	"strconv"

	"github.com/you-not-fish/gsmc/internal/syntax"
)

// expr lowers an expression to a value in the current block. It may end in
// a different block than it started in when the expression contains a power.
func (b *builder) expr(e syntax.Expr) *Value {
	switch e := e.(type) {
	case *syntax.Name:
		return b.nameExpr(e)

	case *syntax.BasicLit:
		return b.basicLitExpr(e)

	case *syntax.Operation:
		return b.binaryExpr(e)

	default:
		panic(fmt.Sprintf("ssa.builder.expr: unhandled %T", e))
	}
}

// nameExpr lowers a name reference to a load from its slot.
func (b *builder) nameExpr(e *syntax.Name) *Value {
	slot, ok := b.vars[e.Value]
	if !ok {
		b.errorf(e.Pos(), "undefined: %s", e.Value)
		return b.fn.ConstInt(b.b, 0)
	}
	return b.fn.NewValuePos(b.b, OpLoad, e.Pos(), slot)
}

func (b *builder) basicLitExpr(e *syntax.BasicLit) *Value {
	n, err := strconv.ParseInt(e.Value, 10, 32)
	if err != nil {
		b.errorf(e.Pos(), "integer literal %s out of range", e.Value)
	}
	v := b.fn.ConstInt(b.b, int32(n))
	v.Pos = e.Pos()
	return v
}

// binaryExpr lowers a binary operation. Both operands are always
// evaluated, left first, including for and/or.
func (b *builder) binaryExpr(e *syntax.Operation) *Value {
	x := b.expr(e.X)
	y := b.expr(e.Y)

	if e.Op == syntax.Pow {
		return b.power(e, x, y)
	}
	return b.fn.NewValuePos(b.b, binOp(e.Op), e.Pos(), x, y)
}

// power lowers base^exp as a counted loop over two entry slots:
//
//	n = exp; acc = 1
//	pow.cond:  If n > 0 -> pow.body pow.after
//	pow.body:  acc = acc * base; n = n - 1; Plain -> pow.cond
//	pow.after: result = acc
//
// A negative exponent fails the first test and yields 1.
func (b *builder) power(e *syntax.Operation, base, exp *Value) *Value {
	pos := e.Pos()
	n := b.entryAlloca("", pos)
	acc := b.entryAlloca("", pos)
	b.store(n, exp, pos)
	b.store(acc, b.fn.ConstInt(b.b, 1), pos)

	cond := b.fn.NewBlock(BlockPlain, "pow.cond")
	body := b.fn.NewBlock(BlockPlain, "pow.body")
	after := b.fn.NewBlock(BlockPlain, "pow.after")
	b.b.AddSucc(cond)

	b.b = cond
	cnt := b.fn.NewValuePos(cond, OpLoad, pos, n)
	more := b.fn.NewValuePos(cond, OpGt32, pos, cnt, b.fn.ConstInt(cond, 0))
	cond.Kind = BlockIf
	cond.SetControl(more)
	cond.AddSucc(body)
	cond.AddSucc(after)

	b.b = body
	prod := b.fn.NewValuePos(body, OpMul32, pos, b.fn.NewValuePos(body, OpLoad, pos, acc), base)
	b.store(acc, prod, pos)
	dec := b.fn.NewValuePos(body, OpSub32, pos, b.fn.NewValuePos(body, OpLoad, pos, n), b.fn.ConstInt(body, 1))
	b.store(n, dec, pos)
	body.AddSucc(cond)

	b.b = after
	return b.fn.NewValuePos(after, OpLoad, pos, acc)
}

// binOp maps a binary operator token to its Op. Pow has no Op; it is
// lowered to a loop by power.
func binOp(tok syntax.Token) Op {
	switch tok {
	case syntax.Add:
		return OpAdd32
	case syntax.Sub:
		return OpSub32
	case syntax.Mul:
		return OpMul32
	case syntax.Div:
		return OpDiv32
	case syntax.Rem:
		return OpMod32
	case syntax.And:
		return OpAnd32
	case syntax.Or:
		return OpOr32
	case syntax.Eql:
		return OpEq32
	case syntax.Neq:
		return OpNeq32
	case syntax.Lss:
		return OpLt32
	case syntax.Leq:
		return OpLeq32
	case syntax.Gtr:
		return OpGt32
	case syntax.Geq:
		return OpGeq32
	default:
		panic(fmt.Sprintf("ssa.binOp: unhandled token %s", tok))
	}
}
