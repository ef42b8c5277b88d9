package ssa

import (
	"fmt"

	"github.com/you-not-fish/gsmc/internal/syntax"
)

// ID is a unique identifier for Values and Blocks within a Func.
type ID int32

// Value represents a single computation. Every non-void value is a 32-bit
// signed integer, except OpAlloca which yields a slot.
type Value struct {
	// ID is a unique identifier within the containing Func.
	ID ID

	// Op is the operation this value computes.
	Op Op

	// Args are the input values to this operation.
	Args []*Value

	// Block is the basic block that contains this value.
	Block *Block

	// AuxInt holds the constant of an OpConst32.
	AuxInt int32

	// Aux holds the variable name of an OpAlloca.
	Aux interface{}

	// Uses tracks the number of references to this value.
	Uses int32

	// Pos is the source position associated with this value.
	Pos syntax.Pos
}

// String returns a short string representation of the value (e.g., "v5").
func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.ID)
}

// LongString returns a detailed string representation including op and args.
func (v *Value) LongString() string {
	return formatValue(v)
}

// AddArg appends a value to the argument list and increments the arg's use count.
func (v *Value) AddArg(arg *Value) {
	v.Args = append(v.Args, arg)
	arg.Uses++
}

// Name returns the variable name of a slot, or "".
func (v *Value) Name() string {
	s, _ := v.Aux.(string)
	return s
}

// IsPure returns true if this value's op has no side effects.
func (v *Value) IsPure() bool {
	return v.Op.IsPure()
}
