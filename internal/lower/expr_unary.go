package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/types"
)

func (l *Lowerer) unary(e *ast.UnOpExpr) (Value, error) {
	v, err := l.expr(e.Operand)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case ast.OpPos, ast.OpNeg:
		x := l.deref(v)
		t := x.Handle.Type
		if !l.types.IsArithmetic(t) {
			return Value{}, l.invalidOperand(e, t)
		}
		if e.Op == ast.OpPos {
			return x, nil
		}
		if l.types.IsFloat(t) {
			return rvalue(l.b.FNeg(x.Handle)), nil
		}
		if l.types.KindOf(t) == types.KindBool {
			x = rvalue(l.b.Cast(ir.OpZExt, x.Handle, l.builtins.Int))
		}
		return rvalue(l.b.Neg(x.Handle)), nil

	case ast.OpDeref:
		x := l.deref(v)
		t := x.Handle.Type
		if !l.types.IsPointer(t) || l.types.IsVoid(l.types.Elem(t)) {
			return Value{}, l.fail(diag.SemaInvalidOperandType, e.At,
				"Indirection requires pointer operand ('%s' invalid)", l.label(t))
		}
		return lvalue(x.Handle), nil

	case ast.OpAddr:
		if !v.LValue {
			return Value{}, l.fail(diag.SemaRequiresLValue, e.At, "Cannot take the address of an rvalue")
		}
		return rvalue(v.Handle), nil

	case ast.OpIncPre, ast.OpIncPost, ast.OpDecPre, ast.OpDecPost:
		return l.step(e, v)

	case ast.OpNot:
		x := l.deref(v)
		if !l.types.IsIntegral(x.Handle.Type) {
			return Value{}, l.invalidOperand(e, x.Handle.Type)
		}
		return rvalue(l.b.BinOp(ir.OpXor, l.truth(x.Handle), l.b.ConstBool(true))), nil

	case ast.OpNotBit:
		x := l.deref(v)
		if !l.types.IsIntegral(x.Handle.Type) {
			return Value{}, l.invalidOperand(e, x.Handle.Type)
		}
		return rvalue(l.b.Not(x.Handle)), nil
	}
	return Value{}, l.internalError(e.At, e)
}

// step lowers the increment and decrement operators. The prefix forms yield
// the updated storage, the postfix forms the value read before the update.
func (l *Lowerer) step(e *ast.UnOpExpr, v Value) (Value, error) {
	if !v.LValue {
		return Value{}, l.fail(diag.SemaRequiresLValue, e.At, "Expression is not assignable")
	}
	t := l.typeOf(v)
	old := l.b.Load(v.Handle, t)
	delta := int64(1)
	if e.Op == ast.OpDecPre || e.Op == ast.OpDecPost {
		delta = -1
	}
	var next *ir.Value
	switch l.types.KindOf(t) {
	case types.KindInt:
		next = l.b.BinOp(ir.OpAdd, old, l.b.ConstInt(t, delta))
	case types.KindFloat:
		next = l.b.BinOp(ir.OpFAdd, old, l.b.ConstFloat(t, float64(delta)))
	case types.KindPointer:
		res, err := l.offset(old, l.b.ConstInt(l.builtins.Long, delta), e.At)
		if err != nil {
			return Value{}, err
		}
		next = res.Handle
	default:
		return Value{}, l.invalidOperand(e, t)
	}
	l.b.Store(next, v.Handle)
	if e.Op == ast.OpIncPre || e.Op == ast.OpDecPre {
		return v, nil
	}
	return rvalue(old), nil
}

func (l *Lowerer) invalidOperand(e *ast.UnOpExpr, t types.TypeID) error {
	return l.fail(diag.SemaInvalidOperandType, e.At,
		"Invalid argument type '%s' to unary expression", l.label(t))
}
