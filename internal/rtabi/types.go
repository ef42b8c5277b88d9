package rtabi

// AlignInt is the alignment in bytes of an int32_t slot.
const AlignInt = 4

// LLVM type names for code generation
const (
	LLVMTypeInt  = "i32" // every GSM value
	LLVMTypeBool = "i1"  // comparison results before widening
	LLVMTypePtr  = "ptr" // opaque pointer (LLVM 15+)
)

// EntryParamNames are the names given to the entry function's parameters.
var EntryParamNames = []string{"argc", "argv"}
