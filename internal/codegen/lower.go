package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/you-not-fish/gsmc/internal/rtabi"
	"github.com/you-not-fish/gsmc/internal/ssa"
)

// lowerFunc emits the definition of the entry function.
func (g *generator) lowerFunc(fn *ssa.Func) {
	sig := rtabi.EntrySignature()
	params := make([]string, len(sig.ParamTypes))
	for i, t := range sig.ParamTypes {
		params[i] = fmt.Sprintf("%s %%%s", t, rtabi.EntryParamNames[i])
	}

	g.e.emit("define %s @%s(%s) {", sig.ReturnType, fn.Name, strings.Join(params, ", "))

	for i, b := range fn.Blocks {
		if i > 0 {
			g.e.emitLine()
		}
		g.lowerBlock(b)
	}

	g.e.emit("}")
}

// lowerBlock emits the LLVM IR for a single basic block.
func (g *generator) lowerBlock(b *ssa.Block) {
	g.e.emitLabel(b)

	for _, v := range b.Values {
		g.lowerValue(v)
	}

	g.lowerTerminator(b)
}

// lowerValue emits the LLVM IR for a single value.
func (g *generator) lowerValue(v *ssa.Value) {
	switch v.Op {
	// Constants are inlined at use sites; no instruction emitted.
	case ssa.OpConst32:
		return

	// Integer arithmetic
	case ssa.OpAdd32:
		g.emitBinOp("add", v)
	case ssa.OpSub32:
		g.emitBinOp("sub", v)
	case ssa.OpMul32:
		g.emitBinOp("mul", v)
	case ssa.OpDiv32:
		g.emitBinOp("sdiv", v)
	case ssa.OpMod32:
		g.emitBinOp("srem", v)
	case ssa.OpAnd32:
		g.emitBinOp("and", v)
	case ssa.OpOr32:
		g.emitBinOp("or", v)

	// Integer comparison
	case ssa.OpEq32:
		g.emitICmp("eq", v)
	case ssa.OpNeq32:
		g.emitICmp("ne", v)
	case ssa.OpLt32:
		g.emitICmp("slt", v)
	case ssa.OpLeq32:
		g.emitICmp("sle", v)
	case ssa.OpGt32:
		g.emitICmp("sgt", v)
	case ssa.OpGeq32:
		g.emitICmp("sge", v)

	// Memory
	case ssa.OpAlloca:
		if name := v.Name(); name != "" {
			g.e.emitInst("%s = alloca %s, align %d ; %s", valueName(v), rtabi.LLVMTypeInt, rtabi.AlignInt, name)
		} else {
			g.e.emitInst("%s = alloca %s, align %d", valueName(v), rtabi.LLVMTypeInt, rtabi.AlignInt)
		}
	case ssa.OpLoad:
		g.e.emitInst("%s = load %s, ptr %s, align %d", valueName(v), rtabi.LLVMTypeInt, g.operand(v.Args[0]), rtabi.AlignInt)
	case ssa.OpStore:
		g.e.emitInst("store %s %s, ptr %s, align %d", rtabi.LLVMTypeInt, g.operand(v.Args[1]), g.operand(v.Args[0]), rtabi.AlignInt)

	// Runtime hooks
	case ssa.OpPrint:
		g.e.emitInst("call void @%s(%s %s)", rtabi.FnPrint, rtabi.LLVMTypeInt, g.operand(v.Args[0]))

	default:
		panic(fmt.Sprintf("codegen: unhandled op %s", v.Op))
	}
}

// lowerTerminator emits the block terminator instruction.
func (g *generator) lowerTerminator(b *ssa.Block) {
	switch b.Kind {
	case ssa.BlockPlain:
		g.e.emitInst("br label %%%s", blockName(b.Succs[0]))
	case ssa.BlockIf:
		cond := g.e.nextTmp()
		g.e.emitInst("%s = icmp ne %s %s, 0", cond, rtabi.LLVMTypeInt, g.operand(b.Controls[0]))
		g.e.emitInst("br i1 %s, label %%%s, label %%%s",
			cond, blockName(b.Succs[0]), blockName(b.Succs[1]))
	case ssa.BlockReturn:
		g.e.emitInst("ret %s %s", rtabi.LLVMTypeInt, g.operand(b.Controls[0]))
	default:
		panic(fmt.Sprintf("codegen: unhandled block kind %s", b.Kind))
	}
}

// operand returns the LLVM IR operand string for a value.
// Constants are inlined, others use their %vN name.
func (g *generator) operand(v *ssa.Value) string {
	if v.Op == ssa.OpConst32 {
		return strconv.FormatInt(int64(v.AuxInt), 10)
	}
	return valueName(v)
}

// emitBinOp emits a two-operand integer instruction.
func (g *generator) emitBinOp(inst string, v *ssa.Value) {
	g.e.emitInst("%s = %s %s %s, %s", valueName(v), inst, rtabi.LLVMTypeInt, g.operand(v.Args[0]), g.operand(v.Args[1]))
}

// emitICmp emits a comparison and widens its i1 result to 0 or 1.
func (g *generator) emitICmp(cond string, v *ssa.Value) {
	tmp := g.e.nextTmp()
	g.e.emitInst("%s = icmp %s %s %s, %s", tmp, cond, rtabi.LLVMTypeInt, g.operand(v.Args[0]), g.operand(v.Args[1]))
	g.e.emitInst("%s = zext %s %s to %s", valueName(v), rtabi.LLVMTypeBool, tmp, rtabi.LLVMTypeInt)
}
