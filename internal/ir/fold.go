package ir

import (
	"math"

	"minic/internal/types"
)

func (b *Builder) foldBinary(op Op, l, r *Value) (*Value, bool) {
	if l.Kind == ValueConstInt && r.Kind == ValueConstInt {
		x, y := l.Int, r.Int
		w := b.types.BitWidth(l.Type)
		var out int64
		switch op {
		case OpAdd:
			out = x + y
		case OpSub:
			out = x - y
		case OpMul:
			out = x * y
		case OpSDiv:
			if y == 0 || (y == -1 && x == math.MinInt64) {
				return nil, false
			}
			out = x / y
		case OpSRem:
			if y == 0 || (y == -1 && x == math.MinInt64) {
				return nil, false
			}
			out = x % y
		case OpShl:
			if y < 0 || y >= int64(w) {
				return nil, false
			}
			out = x << uint64(y)
		case OpAShr:
			if y < 0 || y >= int64(w) {
				return nil, false
			}
			out = x >> uint64(y)
		case OpAnd:
			out = x & y
		case OpOr:
			out = x | y
		case OpXor:
			out = x ^ y
		default:
			return nil, false
		}
		return b.ConstInt(l.Type, out), true
	}
	if l.Kind == ValueConstFloat && r.Kind == ValueConstFloat {
		x, y := l.Float, r.Float
		var out float64
		switch op {
		case OpFAdd:
			out = x + y
		case OpFSub:
			out = x - y
		case OpFMul:
			out = x * y
		case OpFDiv:
			out = x / y
		default:
			return nil, false
		}
		return b.ConstFloat(l.Type, out), true
	}
	return nil, false
}

func (b *Builder) foldICmp(pred Pred, l, r *Value) (*Value, bool) {
	if l.Kind == ValueConstNull && r.Kind == ValueConstNull {
		return b.ConstBool(pred == PredEQ || pred == PredULE || pred == PredUGE), true
	}
	if l.Kind != ValueConstInt || r.Kind != ValueConstInt {
		return nil, false
	}
	x, y := l.Int, r.Int
	w := b.types.BitWidth(l.Type)
	ux, uy := unsignedInt(x, w), unsignedInt(y, w)
	var out bool
	switch pred {
	case PredEQ:
		out = x == y
	case PredNE:
		out = x != y
	case PredSLT:
		out = x < y
	case PredSGT:
		out = x > y
	case PredSLE:
		out = x <= y
	case PredSGE:
		out = x >= y
	case PredULT:
		out = ux < uy
	case PredUGT:
		out = ux > uy
	case PredULE:
		out = ux <= uy
	case PredUGE:
		out = ux >= uy
	default:
		return nil, false
	}
	return b.ConstBool(out), true
}

func (b *Builder) foldFCmp(pred Pred, l, r *Value) (*Value, bool) {
	if l.Kind != ValueConstFloat || r.Kind != ValueConstFloat {
		return nil, false
	}
	x, y := l.Float, r.Float
	var out bool
	switch pred {
	case PredOEQ:
		out = x == y
	case PredUNE:
		out = x != y
	case PredOLT:
		out = x < y
	case PredOGT:
		out = x > y
	case PredOLE:
		out = x <= y
	case PredOGE:
		out = x >= y
	default:
		return nil, false
	}
	return b.ConstBool(out), true
}

func (b *Builder) foldCast(op Op, x *Value, to types.TypeID) (*Value, bool) {
	switch x.Kind {
	case ValueConstInt:
		from := b.types.BitWidth(x.Type)
		switch op {
		case OpTrunc, OpSExt:
			return b.ConstInt(to, x.Int), true
		case OpZExt:
			return b.ConstInt(to, int64(unsignedInt(x.Int, from))), true
		case OpSIToFP:
			return b.ConstFloat(to, float64(x.Int)), true
		case OpIntToPtr:
			if x.Int == 0 {
				return b.Null(to), true
			}
		}
	case ValueConstFloat:
		switch op {
		case OpFPTrunc, OpFPExt:
			return b.ConstFloat(to, x.Float), true
		case OpFPToSI:
			if math.IsNaN(x.Float) || math.IsInf(x.Float, 0) {
				return nil, false
			}
			return b.ConstInt(to, int64(x.Float)), true
		}
	case ValueConstNull:
		if op == OpPtrToInt {
			return b.ConstInt(to, 0), true
		}
	}
	return nil, false
}
