// Package ssa implements the block-graph intermediate representation for GSM
// programs: slots, loads, stores and arithmetic arranged in basic blocks.
package ssa

// Op represents an operation code.
type Op int

const (
	OpInvalid Op = iota

	// Constants
	OpConst32 // integer constant; AuxInt = value

	// Integer arithmetic (two's-complement wraparound)
	OpAdd32 // int + int
	OpSub32 // int - int
	OpMul32 // int * int
	OpDiv32 // int / int, truncated
	OpMod32 // int % int, sign of dividend

	// Bitwise over 0/1 operands; both sides always evaluated
	OpAnd32 // int and int
	OpOr32  // int or int

	// Integer comparison; result is 0 or 1
	OpEq32  // int == int
	OpNeq32 // int != int
	OpLt32  // int < int
	OpLeq32 // int <= int
	OpGt32  // int > int
	OpGeq32 // int >= int

	// Memory
	OpAlloca // slot allocation; Aux = variable name
	OpLoad   // load from slot; Args[0] = slot
	OpStore  // store to slot; Args[0] = slot, Args[1] = val; void

	// Runtime hooks
	OpPrint // print(int); Args[0] = value; void

	opCount // sentinel; must be last
)

// OpInfo holds metadata about an operation.
type OpInfo struct {
	Name    string // human-readable name
	IsPure  bool   // true if the op has no side effects
	IsVoid  bool   // true if the op produces no value (Store, Print)
	Compare bool   // true for comparisons (result is 0 or 1)
}

var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "Invalid"},

	OpConst32: {Name: "Const32", IsPure: true},

	OpAdd32: {Name: "Add32", IsPure: true},
	OpSub32: {Name: "Sub32", IsPure: true},
	OpMul32: {Name: "Mul32", IsPure: true},
	OpDiv32: {Name: "Div32"}, // traps on zero
	OpMod32: {Name: "Mod32"}, // traps on zero

	OpAnd32: {Name: "And32", IsPure: true},
	OpOr32:  {Name: "Or32", IsPure: true},

	OpEq32:  {Name: "Eq32", IsPure: true, Compare: true},
	OpNeq32: {Name: "Neq32", IsPure: true, Compare: true},
	OpLt32:  {Name: "Lt32", IsPure: true, Compare: true},
	OpLeq32: {Name: "Leq32", IsPure: true, Compare: true},
	OpGt32:  {Name: "Gt32", IsPure: true, Compare: true},
	OpGeq32: {Name: "Geq32", IsPure: true, Compare: true},

	OpAlloca: {Name: "Alloca"},
	OpLoad:   {Name: "Load"},
	OpStore:  {Name: "Store", IsVoid: true},

	OpPrint: {Name: "Print", IsVoid: true},
}

// String returns the human-readable name of the op.
func (o Op) String() string {
	return o.Info().Name
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsPure returns true if this op has no side effects.
func (o Op) IsPure() bool { return o.Info().IsPure }

// IsVoid returns true if this op produces no value.
func (o Op) IsVoid() bool { return o.Info().IsVoid }

// IsCompare returns true if this op is a comparison.
func (o Op) IsCompare() bool { return o.Info().Compare }
