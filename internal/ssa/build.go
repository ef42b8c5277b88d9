package ssa

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/gsmc/internal/rtabi"
	"github.com/you-not-fish/gsmc/internal/syntax"
)

// Error is a lowering failure at a source position.
type Error struct {
	Pos syntax.Pos
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// builder holds the state for lowering one program. It is owned by a single
// Build call.
type builder struct {
	fn *Func  // function being built
	b  *Block // current block

	// vars maps a variable name to its slot. There is one flat namespace;
	// a later declaration of a name replaces the earlier binding.
	vars map[string]*Value

	errs []error
}

// Build lowers a parsed program into a single function named main whose
// final block returns 0. The program must come from a parse that reported no
// errors.
//
// References to names with no preceding declaration are reported as *Error
// values joined into the returned error. Lowering continues past them using
// 0 in place of the missing value, so the returned Func is always
// structurally valid.
func Build(prog *syntax.Program) (*Func, error) {
	fn := NewFunc(rtabi.EntryName)
	b := &builder{
		fn:   fn,
		b:    fn.Entry,
		vars: make(map[string]*Value),
	}

	b.stmts(prog.Stmts)

	ret := b.fn.ConstInt(b.b, 0)
	b.b.Kind = BlockReturn
	b.b.SetControl(ret)

	return fn, errors.Join(b.errs...)
}

func (b *builder) errorf(pos syntax.Pos, format string, args ...interface{}) {
	b.errs = append(b.errs, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// entryAlloca creates a slot in the entry block. Every slot lives there,
// whichever block the declaration is lowered in.
func (b *builder) entryAlloca(name string, pos syntax.Pos) *Value {
	slot := b.fn.NewValuePos(b.fn.Entry, OpAlloca, pos)
	if name != "" {
		slot.Aux = name
	}
	return slot
}

func (b *builder) store(slot, val *Value, pos syntax.Pos) {
	b.fn.NewValuePos(b.b, OpStore, pos, slot, val)
}

// stmts lowers a list of statements.
func (b *builder) stmts(list []syntax.Stmt) {
	for _, s := range list {
		b.stmt(s)
	}
}

// assigns lowers the body of an if clause or loop.
func (b *builder) assigns(list []*syntax.AssignStmt) {
	for _, s := range list {
		b.assignStmt(s)
	}
}

// stmt dispatches a statement to the appropriate lowering method.
func (b *builder) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.DeclStmt:
		b.declStmt(s)

	case *syntax.AssignStmt:
		b.assignStmt(s)

	case *syntax.PrintStmt:
		v := b.expr(s.X)
		b.fn.NewValuePos(b.b, OpPrint, s.Pos(), v)

	case *syntax.IfStmt:
		b.ifStmt(s)

	case *syntax.LoopStmt:
		b.loopStmt(s)

	default:
		panic(fmt.Sprintf("ssa.builder.stmt: unhandled %T", s))
	}
}

// declStmt lowers: int a, b = e1, e2;
// Each name takes the initializer at its position, or 0 when the list is
// shorter. The initializer is evaluated before the name is bound, so it sees
// the previous binding of the same name.
func (b *builder) declStmt(s *syntax.DeclStmt) {
	for i, name := range s.Names {
		var val *Value
		if i < len(s.Values) {
			val = b.expr(s.Values[i])
		} else {
			val = b.fn.ConstInt(b.b, 0)
		}

		slot := b.entryAlloca(name.Value, name.Pos())
		b.store(slot, val, name.Pos())
		b.vars[name.Value] = slot
	}
}

// assignStmt lowers x = e and the compound forms, which Value expands to
// x = x op e.
func (b *builder) assignStmt(s *syntax.AssignStmt) {
	val := b.expr(s.Value())

	slot, ok := b.vars[s.Target.Value]
	if !ok {
		b.errorf(s.Target.Pos(), "undefined: %s", s.Target.Value)
		return
	}
	b.store(slot, val, s.Pos())
}

// ifStmt lowers an if/elif/else chain.
//
// Each clause gets an if.cond block that branches to its if.body on true
// and to the next clause's if.cond on false. The else body, if present, is
// the false target of the last condition; otherwise that edge goes to the
// shared if.done block. Every body ends with a jump to if.done.
func (b *builder) ifStmt(s *syntax.IfStmt) {
	var exits []*Block // blocks that fall through to if.done
	var fallthru *Block

	cond := b.fn.NewBlock(BlockPlain, "if.cond")
	b.b.AddSucc(cond)

	for i, c := range s.Conds {
		b.b = cond
		v := b.expr(c)
		test := b.b // expr may have moved on past a power loop

		body := b.fn.NewBlock(BlockPlain, "if.body")
		test.Kind = BlockIf
		test.SetControl(v)
		test.AddSucc(body)

		b.b = body
		b.assigns(s.Bodies[i])
		exits = append(exits, b.b)

		switch {
		case i+1 < len(s.Conds):
			cond = b.fn.NewBlock(BlockPlain, "if.cond")
			test.AddSucc(cond)
		case s.HasElse():
			els := b.fn.NewBlock(BlockPlain, "if.else")
			test.AddSucc(els)
			b.b = els
			b.assigns(s.Bodies[len(s.Conds)])
			exits = append(exits, b.b)
		default:
			fallthru = test
		}
	}

	done := b.fn.NewBlock(BlockPlain, "if.done")
	if fallthru != nil {
		fallthru.AddSucc(done)
	}
	for _, e := range exits {
		e.AddSucc(done)
	}
	b.b = done
}

// loopStmt lowers: loopc cond: begin body end
//
//	loop.cond: If cond -> loop.body loop.done
//	loop.body: ...; Plain -> loop.cond
func (b *builder) loopStmt(s *syntax.LoopStmt) {
	header := b.fn.NewBlock(BlockPlain, "loop.cond")
	b.b.AddSucc(header)

	b.b = header
	v := b.expr(s.Cond)
	test := b.b

	body := b.fn.NewBlock(BlockPlain, "loop.body")
	exit := b.fn.NewBlock(BlockPlain, "loop.done")
	test.Kind = BlockIf
	test.SetControl(v)
	test.AddSucc(body)
	test.AddSucc(exit)

	b.b = body
	b.assigns(s.Body)
	b.b.AddSucc(header) // back edge

	b.b = exit
}
