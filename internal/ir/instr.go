package ir

import "minic/internal/types"

// Op is an instruction opcode.
type Op uint8

const (
	OpAlloca Op = iota
	OpLoad
	OpStore
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpSRem
	OpShl
	OpAShr
	OpAnd
	OpOr
	OpXor
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFNeg
	OpICmp
	OpFCmp
	OpTrunc
	OpSExt
	OpZExt
	OpFPTrunc
	OpFPExt
	OpSIToFP
	OpFPToSI
	OpPtrToInt
	OpIntToPtr
	OpBitCast
	OpGEP
	OpCall
)

var opNames = [...]string{
	OpAlloca:   "alloca",
	OpLoad:     "load",
	OpStore:    "store",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpSDiv:     "sdiv",
	OpSRem:     "srem",
	OpShl:      "shl",
	OpAShr:     "ashr",
	OpAnd:      "and",
	OpOr:       "or",
	OpXor:      "xor",
	OpFAdd:     "fadd",
	OpFSub:     "fsub",
	OpFMul:     "fmul",
	OpFDiv:     "fdiv",
	OpFNeg:     "fneg",
	OpICmp:     "icmp",
	OpFCmp:     "fcmp",
	OpTrunc:    "trunc",
	OpSExt:     "sext",
	OpZExt:     "zext",
	OpFPTrunc:  "fptrunc",
	OpFPExt:    "fpext",
	OpSIToFP:   "sitofp",
	OpFPToSI:   "fptosi",
	OpPtrToInt: "ptrtoint",
	OpIntToPtr: "inttoptr",
	OpBitCast:  "bitcast",
	OpGEP:      "getelementptr",
	OpCall:     "call",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// IsCast reports conversion opcodes.
func (op Op) IsCast() bool {
	return op >= OpTrunc && op <= OpBitCast
}

// IsFloatBinary reports floating-point arithmetic opcodes.
func (op Op) IsFloatBinary() bool {
	return op >= OpFAdd && op <= OpFDiv
}

// Pred is a comparison predicate.
type Pred uint8

const (
	PredEQ Pred = iota
	PredNE
	PredSLT
	PredSGT
	PredSLE
	PredSGE
	PredULT
	PredUGT
	PredULE
	PredUGE
	PredOEQ
	PredUNE
	PredOLT
	PredOGT
	PredOLE
	PredOGE
)

var predNames = [...]string{
	PredEQ:  "eq",
	PredNE:  "ne",
	PredSLT: "slt",
	PredSGT: "sgt",
	PredSLE: "sle",
	PredSGE: "sge",
	PredULT: "ult",
	PredUGT: "ugt",
	PredULE: "ule",
	PredUGE: "uge",
	PredOEQ: "oeq",
	PredUNE: "une",
	PredOLT: "olt",
	PredOGT: "ogt",
	PredOLE: "ole",
	PredOGE: "oge",
}

func (p Pred) String() string {
	if int(p) < len(predNames) {
		return predNames[p]
	}
	return "?"
}

// Instr is one non-terminator instruction.
type Instr struct {
	Op     Op
	Result *Value // nil for store
	Args   []*Value
	Pred   Pred
	Elem   types.TypeID // allocated, loaded or indexed element type
	Callee *Func
	Block  *Block
}
