package ssa

import (
	"errors"
	"fmt"
)

// Runtime failures reported by Interp.
var (
	ErrDivideByZero = errors.New("integer divide by zero")
	ErrStepLimit    = errors.New("step limit exceeded")
)

// Interp executes a Func by walking its blocks. The zero value has no step
// limit and discards printed values.
type Interp struct {
	// Print receives every value passed to the print hook, in order.
	Print func(int32)

	// MaxSteps bounds the number of blocks entered; 0 means no limit.
	MaxSteps int

	// Trace, if set, is called on entry to each block.
	Trace func(b *Block)
}

// Result is the machine state after main returns.
type Result struct {
	ExitCode int32
	Steps    int // blocks entered

	// Slots holds the final value of every named slot. For a name declared
	// more than once it is the value of the last declaration.
	Slots map[string]int32
}

// Run executes f from its entry block until it returns.
func (in *Interp) Run(f *Func) (*Result, error) {
	vals := make([]int32, f.maxValueID())
	mem := make(map[*Value]int32)

	b := f.Entry
	for steps := 1; ; steps++ {
		if in.MaxSteps > 0 && steps > in.MaxSteps {
			return nil, fmt.Errorf("%w: %d blocks", ErrStepLimit, in.MaxSteps)
		}
		if in.Trace != nil {
			in.Trace(b)
		}

		for _, v := range b.Values {
			switch v.Op {
			case OpConst32:
				vals[v.ID] = v.AuxInt
			case OpAlloca:
				// slots read as zero until stored
			case OpLoad:
				vals[v.ID] = mem[v.Args[0]]
			case OpStore:
				mem[v.Args[0]] = vals[v.Args[1].ID]
			case OpPrint:
				if in.Print != nil {
					in.Print(vals[v.Args[0].ID])
				}
			default:
				r, err := evalBinary(v.Op, vals[v.Args[0].ID], vals[v.Args[1].ID])
				if err != nil {
					if v.Pos.IsValid() {
						return nil, fmt.Errorf("%s: %w", v.Pos, err)
					}
					return nil, err
				}
				vals[v.ID] = r
			}
		}

		switch b.Kind {
		case BlockPlain:
			b = b.Succs[0]
		case BlockIf:
			if vals[b.Controls[0].ID] != 0 {
				b = b.Succs[0]
			} else {
				b = b.Succs[1]
			}
		case BlockReturn:
			res := &Result{
				ExitCode: vals[b.Controls[0].ID],
				Steps:    steps,
				Slots:    make(map[string]int32),
			}
			for _, s := range f.Slots() {
				if name := s.Name(); name != "" {
					res.Slots[name] = mem[s]
				}
			}
			return res, nil
		default:
			return nil, fmt.Errorf("%s: cannot execute block kind %s", b, b.Kind)
		}
	}
}

// evalBinary computes a two-operand op with 32-bit wraparound.
func evalBinary(op Op, x, y int32) (int32, error) {
	switch op {
	case OpAdd32:
		return x + y, nil
	case OpSub32:
		return x - y, nil
	case OpMul32:
		return x * y, nil
	case OpDiv32:
		if y == 0 {
			return 0, ErrDivideByZero
		}
		return x / y, nil
	case OpMod32:
		if y == 0 {
			return 0, ErrDivideByZero
		}
		return x % y, nil
	case OpAnd32:
		return x & y, nil
	case OpOr32:
		return x | y, nil
	case OpEq32:
		return b2i(x == y), nil
	case OpNeq32:
		return b2i(x != y), nil
	case OpLt32:
		return b2i(x < y), nil
	case OpLeq32:
		return b2i(x <= y), nil
	case OpGt32:
		return b2i(x > y), nil
	case OpGeq32:
		return b2i(x >= y), nil
	}
	return 0, fmt.Errorf("cannot evaluate %s", op)
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
