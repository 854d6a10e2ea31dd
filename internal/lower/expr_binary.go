package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/types"
)

// binary lowers a binary expression. Assignment operators lower the right
// operand before the left one; all other operators go left to right.
func (l *Lowerer) binary(e *ast.BiOpExpr) (Value, error) {
	if e.Op.IsAssign() {
		rhs, err := l.expr(e.Right)
		if err != nil {
			return Value{}, err
		}
		lhs, err := l.expr(e.Left)
		if err != nil {
			return Value{}, err
		}
		if e.Op == ast.OpAssign {
			return l.assign(lhs, rhs, e.At)
		}
		if !lhs.LValue {
			return Value{}, l.fail(diag.SemaAssignToRValue, e.At, "Expression is not assignable")
		}
		res, err := l.calculate(e.Op.Underlying(), lhs, rhs, e.At)
		if err != nil {
			return Value{}, err
		}
		return l.assign(lhs, res, e.At)
	}
	lhs, err := l.expr(e.Left)
	if err != nil {
		return Value{}, err
	}
	rhs, err := l.expr(e.Right)
	if err != nil {
		return Value{}, err
	}
	return l.calculate(e.Op, lhs, rhs, e.At)
}

// calculate applies a non-assignment operator to two lowered operands.
func (l *Lowerer) calculate(op ast.BiOp, lhs, rhs Value, loc source.Location) (Value, error) {
	a, b := l.deref(lhs), l.deref(rhs)
	ta, tb := a.Handle.Type, b.Handle.Type
	aPtr, bPtr := l.types.IsPointer(ta), l.types.IsPointer(tb)
	if aPtr || bPtr {
		return l.pointerArith(op, a, b, loc)
	}
	if op.IsIntegerOnly() && (!l.types.IsIntegral(ta) || !l.types.IsIntegral(tb)) {
		return Value{}, l.invalidOperands(ta, tb, loc)
	}
	a, b, err := l.commonType(a, b, loc)
	if err != nil {
		return Value{}, err
	}
	float := l.types.IsFloat(a.Handle.Type)
	x, y := a.Handle, b.Handle
	if op.IsRelational() {
		if float {
			return rvalue(l.b.FCmp(floatPred(op), x, y)), nil
		}
		return rvalue(l.b.ICmp(signedPred(op), x, y)), nil
	}
	var code ir.Op
	switch op {
	case ast.OpAdd:
		code = pick(float, ir.OpFAdd, ir.OpAdd)
	case ast.OpSub:
		code = pick(float, ir.OpFSub, ir.OpSub)
	case ast.OpMul:
		code = pick(float, ir.OpFMul, ir.OpMul)
	case ast.OpDiv:
		code = pick(float, ir.OpFDiv, ir.OpSDiv)
	case ast.OpMod:
		code = ir.OpSRem
	case ast.OpShl:
		code = ir.OpShl
	case ast.OpShr:
		code = ir.OpAShr
	case ast.OpAnd:
		code = ir.OpAnd
	case ast.OpOr:
		code = ir.OpOr
	case ast.OpXor:
		code = ir.OpXor
	default:
		return Value{}, l.invalidOperands(ta, tb, loc)
	}
	return rvalue(l.b.BinOp(code, x, y)), nil
}

// pointerArith handles operators with at least one pointer operand:
// pointer difference, pointer plus or minus an integer, and comparisons.
func (l *Lowerer) pointerArith(op ast.BiOp, a, b Value, loc source.Location) (Value, error) {
	ta, tb := a.Handle.Type, b.Handle.Type
	aPtr, bPtr := l.types.IsPointer(ta), l.types.IsPointer(tb)
	switch {
	case aPtr && bPtr && op == ast.OpSub:
		elem := l.types.Elem(ta)
		if ta != tb || l.types.SizeOf(elem) == 0 {
			return Value{}, l.invalidOperands(ta, tb, loc)
		}
		long := l.builtins.Long
		x := l.b.Cast(ir.OpPtrToInt, a.Handle, long)
		y := l.b.Cast(ir.OpPtrToInt, b.Handle, long)
		diff := l.b.BinOp(ir.OpSub, x, y)
		if size := l.types.SizeOf(elem); size > 1 {
			diff = l.b.BinOp(ir.OpSDiv, diff, l.b.ConstInt(long, int64(size)))
		}
		return rvalue(diff), nil

	case aPtr && bPtr && op.IsRelational():
		if ta != tb {
			return Value{}, l.invalidOperands(ta, tb, loc)
		}
		return rvalue(l.b.ICmp(unsignedPred(op), a.Handle, b.Handle)), nil

	case aPtr && !bPtr && (op == ast.OpAdd || op == ast.OpSub) && l.types.IsIntegral(tb):
		idx := l.toIndex(b.Handle)
		if op == ast.OpSub {
			idx = l.b.Neg(idx)
		}
		return l.offset(a.Handle, idx, loc)

	case bPtr && !aPtr && op == ast.OpAdd && l.types.IsIntegral(ta):
		return l.offset(b.Handle, l.toIndex(a.Handle), loc)
	}
	return Value{}, l.invalidOperands(ta, tb, loc)
}

// offset steps ptr by idx elements.
func (l *Lowerer) offset(ptr, idx *ir.Value, loc source.Location) (Value, error) {
	elem := l.types.Elem(ptr.Type)
	if l.types.SizeOf(elem) == 0 {
		return Value{}, l.fail(diag.SemaInvalidOperandType, loc,
			"Arithmetic on a pointer to an incomplete type '%s'", l.label(elem))
	}
	return rvalue(l.b.GEP(elem, ptr, ptr.Type, idx)), nil
}

func (l *Lowerer) invalidOperands(ta, tb types.TypeID, loc source.Location) error {
	return l.fail(diag.SemaInvalidOperandType, loc,
		"Invalid operands to binary expression ('%s' and '%s')", l.label(ta), l.label(tb))
}

func pick(float bool, f, i ir.Op) ir.Op {
	if float {
		return f
	}
	return i
}

func signedPred(op ast.BiOp) ir.Pred {
	switch op {
	case ast.OpLess:
		return ir.PredSLT
	case ast.OpGreater:
		return ir.PredSGT
	case ast.OpLessEqual:
		return ir.PredSLE
	case ast.OpGreaterEqual:
		return ir.PredSGE
	case ast.OpEqual:
		return ir.PredEQ
	}
	return ir.PredNE
}

func unsignedPred(op ast.BiOp) ir.Pred {
	switch op {
	case ast.OpLess:
		return ir.PredULT
	case ast.OpGreater:
		return ir.PredUGT
	case ast.OpLessEqual:
		return ir.PredULE
	case ast.OpGreaterEqual:
		return ir.PredUGE
	case ast.OpEqual:
		return ir.PredEQ
	}
	return ir.PredNE
}

func floatPred(op ast.BiOp) ir.Pred {
	switch op {
	case ast.OpLess:
		return ir.PredOLT
	case ast.OpGreater:
		return ir.PredOGT
	case ast.OpLessEqual:
		return ir.PredOLE
	case ast.OpGreaterEqual:
		return ir.PredOGE
	case ast.OpEqual:
		return ir.PredOEQ
	}
	return ir.PredUNE
}
