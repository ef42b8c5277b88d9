package ssa

import "fmt"

// BlockKind describes how a basic block terminates.
type BlockKind int

const (
	BlockInvalid BlockKind = iota
	BlockPlain             // unconditional jump to Succs[0]
	BlockIf                // if Controls[0] != 0 then Succs[0] else Succs[1]
	BlockReturn            // function return; Controls[0] = exit status
)

var blockKindNames = [...]string{
	BlockInvalid: "invalid",
	BlockPlain:   "plain",
	BlockIf:      "if",
	BlockReturn:  "ret",
}

// String returns the string representation of the block kind.
func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// Block represents a basic block in the control flow graph.
// A block contains a sequence of non-branching Values, followed by
// a terminator indicated by its Kind.
type Block struct {
	// ID is a unique identifier within the containing Func.
	ID ID

	// Kind describes how this block terminates.
	Kind BlockKind

	// Hint names the construct that created the block, such as "loop.cond"
	// or "pow.body". Empty for the entry block.
	Hint string

	// Controls holds the terminator's operand values.
	// For BlockIf: Controls[0] = branch condition.
	// For BlockReturn: Controls[0] = return value.
	Controls []*Value

	// Succs lists the successor blocks in the CFG.
	// For BlockIf: Succs[0] = then, Succs[1] = else.
	Succs []*Block

	// Preds lists the predecessor blocks in the CFG.
	Preds []*Block

	// Values is the ordered list of values computed in this block.
	Values []*Value

	// Func is the function containing this block.
	Func *Func

	// Dominator tree, filled in by ComputeDom.
	Idom     *Block
	Dominees []*Block
}

// String returns a short string representation (e.g., "b3").
func (b *Block) String() string {
	return fmt.Sprintf("b%d", b.ID)
}

// Label returns a readable, function-unique label: "entry" for the entry
// block, otherwise the hint followed by the block ID.
func (b *Block) Label() string {
	if b.Func != nil && b == b.Func.Entry {
		return "entry"
	}
	if b.Hint == "" {
		return b.String()
	}
	return fmt.Sprintf("%s.%d", b.Hint, b.ID)
}

// AddSucc adds a successor block, updating both Succs and the successor's Preds.
func (b *Block) AddSucc(succ *Block) {
	b.Succs = append(b.Succs, succ)
	succ.Preds = append(succ.Preds, b)
}

// SetControl sets the branch/return control value.
func (b *Block) SetControl(v *Value) {
	b.Controls = []*Value{v}
	if v != nil {
		v.Uses++
	}
}

// NumSuccs returns the number of successor blocks.
func (b *Block) NumSuccs() int { return len(b.Succs) }

// NumPreds returns the number of predecessor blocks.
func (b *Block) NumPreds() int { return len(b.Preds) }
