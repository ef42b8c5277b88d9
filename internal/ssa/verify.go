package ssa

import (
	"fmt"
	"strings"
)

// Verify checks the structural integrity of a function.
// It returns an error describing all violations found, or nil if valid.
func Verify(f *Func) error {
	var errs []string

	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if f.Entry == nil {
		add("func %s: entry block is nil", f.Name)
		return combineErrors(errs)
	}

	if len(f.Blocks) == 0 {
		add("func %s: no blocks", f.Name)
		return combineErrors(errs)
	}

	if f.Blocks[0] != f.Entry {
		add("func %s: Blocks[0] is not the entry block", f.Name)
	}

	// 1. Entry block has no predecessors
	if len(f.Entry.Preds) != 0 {
		add("func %s: entry block %s has %d predecessors, want 0",
			f.Name, f.Entry, len(f.Entry.Preds))
	}

	// Build a set of all blocks for membership checks.
	blockSet := make(map[*Block]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		blockSet[b] = true
	}

	// Build a set of all values for reference checks.
	valueSet := make(map[*Value]bool)

	for _, b := range f.Blocks {
		// 2. Every block has a valid Kind
		if b.Kind == BlockInvalid {
			add("func %s, %s: block has invalid kind", f.Name, b)
		}

		// 3. Block's Func pointer matches
		if b.Func != f {
			add("func %s, %s: block Func pointer mismatch", f.Name, b)
		}

		// Check values
		for _, v := range b.Values {
			valueSet[v] = true

			// 4. Every Value's Block pointer matches its containing block
			if v.Block != b {
				add("func %s, %s, %s: value Block pointer is %s, want %s",
					f.Name, b, v, v.Block, b)
			}

			// 5. Arity and operand kinds
			want := 2
			switch v.Op {
			case OpConst32, OpAlloca:
				want = 0
			case OpLoad, OpPrint:
				want = 1
			case OpInvalid:
				add("func %s, %s, %s: invalid op", f.Name, b, v)
			}
			if len(v.Args) != want {
				add("func %s, %s, %s (%s): has %d args, want %d",
					f.Name, b, v, v.Op, len(v.Args), want)
			}

			// 6. Args are non-nil, and slots are used only as addresses
			for i, arg := range v.Args {
				if arg == nil {
					add("func %s, %s, %s: arg[%d] is nil", f.Name, b, v, i)
					continue
				}
				if arg.Op.IsVoid() {
					add("func %s, %s, %s: arg[%d] %s is void", f.Name, b, v, i, arg)
				}
				isAddr := (v.Op == OpLoad || v.Op == OpStore) && i == 0
				if isAddr != (arg.Op == OpAlloca) {
					if isAddr {
						add("func %s, %s, %s: address arg %s is not a slot", f.Name, b, v, arg)
					} else {
						add("func %s, %s, %s: slot %s used as a value", f.Name, b, v, arg)
					}
				}
			}

			// 7. Slots live in the entry block
			if v.Op == OpAlloca && b != f.Entry {
				add("func %s, %s, %s: slot outside entry block", f.Name, b, v)
			}
		}

		// 8. Terminator checks based on Kind
		switch b.Kind {
		case BlockPlain:
			if len(b.Succs) != 1 {
				add("func %s, %s: plain block has %d succs, want 1",
					f.Name, b, len(b.Succs))
			}
		case BlockIf:
			if len(b.Controls) != 1 {
				add("func %s, %s: if block has %d controls, want 1",
					f.Name, b, len(b.Controls))
			}
			if len(b.Succs) != 2 {
				add("func %s, %s: if block has %d succs, want 2",
					f.Name, b, len(b.Succs))
			}
		case BlockReturn:
			if len(b.Controls) != 1 || b.Controls[0] == nil {
				add("func %s, %s: return block needs one control value", f.Name, b)
			}
			if len(b.Succs) != 0 {
				add("func %s, %s: return block has %d succs, want 0",
					f.Name, b, len(b.Succs))
			}
		}

		// 9. Succs/Preds edge consistency
		for _, succ := range b.Succs {
			if !blockSet[succ] {
				add("func %s, %s: successor %s not in function", f.Name, b, succ)
				continue
			}
			if !containsBlock(succ.Preds, b) {
				add("func %s, %s: successor %s does not have %s as predecessor",
					f.Name, b, succ, b)
			}
		}
		for _, pred := range b.Preds {
			if !blockSet[pred] {
				add("func %s, %s: predecessor %s not in function", f.Name, b, pred)
				continue
			}
			if !containsBlock(pred.Succs, b) {
				add("func %s, %s: predecessor %s does not have %s as successor",
					f.Name, b, pred, b)
			}
		}

		// 10. Control values are non-nil integers
		for i, c := range b.Controls {
			if c == nil {
				add("func %s, %s: control[%d] is nil", f.Name, b, i)
			} else if c.Op.IsVoid() || c.Op == OpAlloca {
				add("func %s, %s: control[%d] %s is not an integer", f.Name, b, i, c)
			}
		}
	}

	// 11. Verify all value args are in the function
	for _, b := range f.Blocks {
		for _, v := range b.Values {
			for i, arg := range v.Args {
				if arg != nil && !valueSet[arg] {
					add("func %s, %s, %s: arg[%d] (%s) not found in function",
						f.Name, b, v, i, arg)
				}
			}
		}
		for i, c := range b.Controls {
			if c != nil && !valueSet[c] {
				add("func %s, %s: control[%d] (%s) not found in function",
					f.Name, b, i, c)
			}
		}
	}

	return combineErrors(errs)
}

// containsBlock checks whether bs contains b.
func containsBlock(bs []*Block, b *Block) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

// VerifyDom checks dominance properties of a function.
// ComputeDom must have been called before this.
// It calls Verify first, then checks dominance invariants.
func VerifyDom(f *Func) error {
	if err := Verify(f); err != nil {
		return err
	}

	var errs []string
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	// Build reachability set.
	reachable := make(map[*Block]bool)
	var walk func(b *Block)
	walk = func(b *Block) {
		if reachable[b] {
			return
		}
		reachable[b] = true
		for _, s := range b.Succs {
			walk(s)
		}
	}
	walk(f.Entry)

	// 1. Entry Idom must be nil.
	if f.Entry.Idom != nil {
		add("func %s: entry %s has non-nil Idom %s", f.Name, f.Entry, f.Entry.Idom)
	}

	// 2. All reachable non-entry blocks must have non-nil Idom != self.
	for _, b := range f.Blocks {
		if !reachable[b] || b == f.Entry {
			continue
		}
		if b.Idom == nil {
			add("func %s, %s: reachable block has nil Idom", f.Name, b)
		} else if b.Idom == b {
			add("func %s, %s: block is its own Idom", f.Name, b)
		}
	}

	// Build value-to-index maps for same-block ordering checks.
	valIdx := make(map[*Value]int)
	for _, b := range f.Blocks {
		for i, v := range b.Values {
			valIdx[v] = i
		}
	}

	// 3. Each arg's block must dominate the use block
	// (or if same block, arg must appear before use).
	for _, b := range f.Blocks {
		if !reachable[b] {
			continue
		}
		for _, v := range b.Values {
			for i, arg := range v.Args {
				if arg == nil {
					continue
				}
				defBlock := arg.Block
				if defBlock == b {
					if valIdx[arg] >= valIdx[v] {
						add("func %s, %s, %s: arg[%d] %s defined at index %d, used at index %d (same block)",
							f.Name, b, v, i, arg, valIdx[arg], valIdx[v])
					}
				} else if !Dominates(defBlock, b) {
					add("func %s, %s, %s: arg[%d] %s defined in %s which does not dominate %s",
						f.Name, b, v, i, arg, defBlock, b)
				}
			}
		}
	}

	// 4. Control values must dominate their block.
	for _, b := range f.Blocks {
		if !reachable[b] {
			continue
		}
		for i, c := range b.Controls {
			if c == nil {
				continue
			}
			defBlock := c.Block
			if defBlock != b && !Dominates(defBlock, b) {
				add("func %s, %s: control[%d] %s defined in %s which does not dominate %s",
					f.Name, b, i, c, defBlock, b)
			}
		}
	}

	return combineErrors(errs)
}

// combineErrors creates an error from a list of error strings, or returns nil.
func combineErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("verification failed:\n  %s", strings.Join(errs, "\n  "))
}
