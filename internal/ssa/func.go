package ssa

import "github.com/you-not-fish/gsmc/internal/syntax"

// Func represents a lowered program: one function whose entry block holds
// every slot allocation.
type Func struct {
	// Name is the function name.
	Name string

	// Blocks is the list of basic blocks. Blocks[0] is always the entry block.
	Blocks []*Block

	// Entry is the entry block (same as Blocks[0]).
	Entry *Block

	nextValueID ID
	nextBlockID ID
}

// NewFunc creates a new function with the given name.
// An entry block is automatically created.
func NewFunc(name string) *Func {
	f := &Func{Name: name}
	f.Entry = f.NewBlock(BlockPlain, "")
	return f
}

// NewBlock creates a new basic block and appends it to the function.
func (f *Func) NewBlock(kind BlockKind, hint string) *Block {
	b := &Block{
		ID:   f.nextBlockID,
		Kind: kind,
		Hint: hint,
		Func: f,
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewValue creates a new Value at the end of block b.
func (f *Func) NewValue(b *Block, op Op, args ...*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Block: b,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	b.Values = append(b.Values, v)
	return v
}

// NewValuePos creates a new Value with source position in the given block.
func (f *Func) NewValuePos(b *Block, op Op, pos syntax.Pos, args ...*Value) *Value {
	v := f.NewValue(b, op, args...)
	v.Pos = pos
	return v
}

// ConstInt creates an OpConst32 in block b.
func (f *Func) ConstInt(b *Block, c int32) *Value {
	v := f.NewValue(b, OpConst32)
	v.AuxInt = c
	return v
}

// Slots returns the slot allocations of the entry block in creation order.
func (f *Func) Slots() []*Value {
	var slots []*Value
	for _, v := range f.Entry.Values {
		if v.Op == OpAlloca {
			slots = append(slots, v)
		}
	}
	return slots
}

// NumBlocks returns the number of blocks in the function.
func (f *Func) NumBlocks() int { return len(f.Blocks) }

// NumValues returns the total number of values across all blocks.
func (f *Func) NumValues() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Values)
	}
	return n
}

// maxValueID returns one past the largest value ID in use.
func (f *Func) maxValueID() ID { return f.nextValueID }
