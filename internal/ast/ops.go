package ast

import "fmt"

// BiOp is a binary operator.
type BiOp uint8

const (
	OpAssign BiOp = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpShlAssign
	OpShrAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
)

var biOpNames = [...]string{
	OpAssign:       "ASSIGN",
	OpAddAssign:    "ADD_ASSIGN",
	OpSubAssign:    "SUB_ASSIGN",
	OpMulAssign:    "MUL_ASSIGN",
	OpDivAssign:    "DIV_ASSIGN",
	OpModAssign:    "MOD_ASSIGN",
	OpShlAssign:    "SHL_ASSIGN",
	OpShrAssign:    "SHR_ASSIGN",
	OpAndAssign:    "AND_ASSIGN",
	OpOrAssign:     "OR_ASSIGN",
	OpXorAssign:    "XOR_ASSIGN",
	OpLess:         "LESS",
	OpGreater:      "GREATER",
	OpLessEqual:    "LESS_EQUAL",
	OpGreaterEqual: "GREATER_EQUAL",
	OpEqual:        "EQUAL",
	OpNotEqual:     "NOT_EQUAL",
	OpAdd:          "ADD",
	OpSub:          "SUB",
	OpMul:          "MUL",
	OpDiv:          "DIV",
	OpMod:          "MOD",
	OpShl:          "SHL",
	OpShr:          "SHR",
	OpAnd:          "AND",
	OpOr:           "OR",
	OpXor:          "XOR",
}

func (op BiOp) String() string {
	if int(op) < len(biOpNames) {
		return biOpNames[op]
	}
	return fmt.Sprintf("BiOp(%d)", op)
}

// ParseBiOp maps an operator name such as "ADD_ASSIGN" to its BiOp.
func ParseBiOp(name string) (BiOp, bool) {
	for i, n := range biOpNames {
		if n == name {
			return BiOp(i), true
		}
	}
	return 0, false
}

// IsAssign reports ASSIGN and the ten compound assignment operators.
func (op BiOp) IsAssign() bool {
	return op <= OpXorAssign
}

// IsRelational reports LESS through NOT_EQUAL.
func (op BiOp) IsRelational() bool {
	return op >= OpLess && op <= OpNotEqual
}

// IsIntegerOnly reports operators defined only on integers.
func (op BiOp) IsIntegerOnly() bool {
	return op >= OpMod && op <= OpXor
}

// Underlying returns the arithmetic operator a compound assignment applies.
// ASSIGN and non-assignment operators return themselves.
func (op BiOp) Underlying() BiOp {
	switch op {
	case OpAddAssign:
		return OpAdd
	case OpSubAssign:
		return OpSub
	case OpMulAssign:
		return OpMul
	case OpDivAssign:
		return OpDiv
	case OpModAssign:
		return OpMod
	case OpShlAssign:
		return OpShl
	case OpShrAssign:
		return OpShr
	case OpAndAssign:
		return OpAnd
	case OpOrAssign:
		return OpOr
	case OpXorAssign:
		return OpXor
	}
	return op
}

// UnOp is a unary operator.
type UnOp uint8

const (
	OpPos UnOp = iota
	OpNeg
	OpDeref
	OpAddr
	OpIncPre
	OpIncPost
	OpDecPre
	OpDecPost
	OpNot
	OpNotBit
)

var unOpNames = [...]string{
	OpPos:     "POS",
	OpNeg:     "NEG",
	OpDeref:   "DEREF",
	OpAddr:    "ADDR",
	OpIncPre:  "INC_PRE",
	OpIncPost: "INC_POST",
	OpDecPre:  "DEC_PRE",
	OpDecPost: "DEC_POST",
	OpNot:     "NOT",
	OpNotBit:  "NOT_BIT",
}

func (op UnOp) String() string {
	if int(op) < len(unOpNames) {
		return unOpNames[op]
	}
	return fmt.Sprintf("UnOp(%d)", op)
}

// ParseUnOp maps an operator name such as "INC_POST" to its UnOp.
func ParseUnOp(name string) (UnOp, bool) {
	for i, n := range unOpNames {
		if n == name {
			return UnOp(i), true
		}
	}
	return 0, false
}
