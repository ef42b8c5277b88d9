package ssa

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Fprint writes a readable listing of f to w.
//
// Format:
//
//	func main:
//	  b0: (entry)
//	    v0 = Alloca {a}
//	    v1 = Const32 [14]
//	    Store v0 v1
//	    Plain -> b1
//	  b1: loop.cond <- b0 b2
//	    ...
func Fprint(w io.Writer, f *Func) {
	fmt.Fprintf(w, "func %s:\n", f.Name)
	for _, b := range f.Blocks {
		fprintBlock(w, b, f)
	}
}

// fprintBlock writes a single block to w.
func fprintBlock(w io.Writer, b *Block, f *Func) {
	label := ""
	if b == f.Entry {
		label = " (entry)"
	} else if b.Hint != "" {
		label = " " + b.Hint
	}

	predsStr := ""
	if len(b.Preds) > 0 {
		preds := make([]string, len(b.Preds))
		for i, p := range b.Preds {
			preds[i] = p.String()
		}
		predsStr = " <- " + strings.Join(preds, " ")
	}

	fmt.Fprintf(w, "  %s:%s%s\n", b, label, predsStr)

	for _, v := range b.Values {
		fmt.Fprintf(w, "    %s\n", formatValue(v))
	}

	fmt.Fprintf(w, "    %s\n", formatTerminator(b))
}

// formatValue formats a value as a string.
func formatValue(v *Value) string {
	var sb strings.Builder

	if v.Op.IsVoid() {
		sb.WriteString(v.Op.String())
	} else {
		fmt.Fprintf(&sb, "v%d = %s", v.ID, v.Op)
	}

	if v.Op == OpConst32 {
		fmt.Fprintf(&sb, " [%d]", v.AuxInt)
	}

	if v.Aux != nil {
		fmt.Fprintf(&sb, " {%v}", v.Aux)
	}

	for _, arg := range v.Args {
		fmt.Fprintf(&sb, " v%d", arg.ID)
	}

	return sb.String()
}

// formatTerminator formats a block terminator.
func formatTerminator(b *Block) string {
	switch b.Kind {
	case BlockPlain:
		if len(b.Succs) > 0 {
			return fmt.Sprintf("Plain -> %s", b.Succs[0])
		}
		return "Plain"
	case BlockIf:
		if len(b.Controls) > 0 && len(b.Succs) >= 2 {
			return fmt.Sprintf("If v%d -> %s %s", b.Controls[0].ID, b.Succs[0], b.Succs[1])
		}
		return "If (malformed)"
	case BlockReturn:
		if len(b.Controls) > 0 && b.Controls[0] != nil {
			return fmt.Sprintf("Return v%d", b.Controls[0].ID)
		}
		return "Return"
	default:
		return "???"
	}
}

// Sprint returns the listing of f as a string.
func Sprint(f *Func) string {
	var sb strings.Builder
	Fprint(&sb, f)
	return sb.String()
}

// Print writes the listing of f to stdout.
func Print(f *Func) {
	Fprint(os.Stdout, f)
}
