// Package rtabi defines the ABI shared between generated code and the
// runtime it links against.
package rtabi

// Runtime function names (must match runtime/print.c)
const (
	// FnPrint writes one integer followed by a newline.
	FnPrint = "print"
)

// Program entry point
const (
	// EntryName is the name of the generated entry function. The C runtime
	// calls it as int main(int argc, char **argv).
	EntryName = "main"
)

// FuncSignature describes a runtime function's signature for code generation.
type FuncSignature struct {
	Name       string   // Function name
	ReturnType string   // LLVM return type ("void", "i32", ...)
	ParamTypes []string // LLVM parameter types
}

// RuntimeFunctions returns the signatures of all runtime functions the
// generated module may call.
func RuntimeFunctions() []FuncSignature {
	return []FuncSignature{
		{Name: FnPrint, ReturnType: "void", ParamTypes: []string{LLVMTypeInt}},
	}
}

// EntrySignature returns the signature of the generated entry function.
func EntrySignature() FuncSignature {
	return FuncSignature{
		Name:       EntryName,
		ReturnType: LLVMTypeInt,
		ParamTypes: []string{LLVMTypeInt, LLVMTypePtr},
	}
}
