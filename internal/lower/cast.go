package lower

import (
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/types"
)

const (
	msgIntToFloat   = "Implicit cast from integer to float point"
	msgFloatToInt   = "Implicit cast from float point to integer"
	msgIntWidth     = "Implicit cast between integers of different width"
	msgFloatWidth   = "Implicit cast between float points of different precision"
	msgPointerTypes = "Implicit cast between incompatible pointer types"
)

// castTo converts v to target. With targetRef the value must already be an
// lvalue of exactly target and is returned as is. Lossy conversions warn and
// still convert; impossible ones fail with InvalidCast.
func (l *Lowerer) castTo(v Value, target types.TypeID, targetRef bool, loc source.Location) (Value, error) {
	if targetRef {
		if !v.LValue {
			return Value{}, l.fail(diag.SemaRequiresLValue, loc, "Initial value of reference must be an lvalue")
		}
		if got := l.typeOf(v); got != target {
			return Value{}, l.fail(diag.SemaReferenceTypeMismatch, loc,
				"Cannot bind reference of type '%s' to a value of type '%s'", l.label(target), l.label(got))
		}
		return v, nil
	}
	v = l.deref(v)
	src := v.Handle.Type
	if src == target {
		return v, nil
	}
	sk, tk := l.types.KindOf(src), l.types.KindOf(target)
	switch {
	case sk == types.KindPointer && tk == types.KindPointer:
		if l.opts.PointerCasts == PolicyError {
			return Value{}, l.fail(diag.SemaInvalidCast, loc, "%s", msgPointerTypes)
		}
		l.warn(diag.SemaImplicitPointerCast, loc, msgPointerTypes)
		return rvalue(l.b.Cast(ir.OpBitCast, v.Handle, target)), nil

	case tk == types.KindBool && l.types.IsArithmetic(src):
		return rvalue(l.truth(v.Handle)), nil

	case sk == types.KindBool && tk == types.KindInt:
		return rvalue(l.b.Cast(ir.OpZExt, v.Handle, target)), nil

	case sk == types.KindBool && tk == types.KindFloat:
		wide := l.b.Cast(ir.OpZExt, v.Handle, l.builtins.Int)
		return rvalue(l.b.Cast(ir.OpSIToFP, wide, target)), nil

	case sk == types.KindInt && tk == types.KindInt:
		l.warn(diag.SemaImplicitIntCast, loc, msgIntWidth)
		return rvalue(l.intResize(v.Handle, target)), nil

	case sk == types.KindInt && tk == types.KindFloat:
		l.warn(diag.SemaImplicitIntToFloat, loc, msgIntToFloat)
		return rvalue(l.b.Cast(ir.OpSIToFP, v.Handle, target)), nil

	case sk == types.KindFloat && tk == types.KindInt:
		l.warn(diag.SemaImplicitFloatToInt, loc, msgFloatToInt)
		return rvalue(l.b.Cast(ir.OpFPToSI, v.Handle, target)), nil

	case sk == types.KindFloat && tk == types.KindFloat:
		l.warn(diag.SemaImplicitFloatCast, loc, msgFloatWidth)
		return rvalue(l.floatResize(v.Handle, target)), nil
	}
	return Value{}, l.fail(diag.SemaInvalidCast, loc,
		"Invalid cast from '%s' to '%s'", l.label(src), l.label(target))
}

// commonType promotes the operands of a binary arithmetic or relational
// operator to one type. Lvalues are left untouched.
func (l *Lowerer) commonType(a, b Value, loc source.Location) (Value, Value, error) {
	if a.LValue || b.LValue {
		return a, b, nil
	}
	ta, tb := a.Handle.Type, b.Handle.Type
	switch {
	case !l.types.IsArithmetic(ta) || !l.types.IsArithmetic(tb):
		return Value{}, Value{}, l.fail(diag.SemaInvalidOperandType, loc,
			"Invalid operands to binary expression ('%s' and '%s')", l.label(ta), l.label(tb))

	case l.types.IsFloat(ta) != l.types.IsFloat(tb):
		return rvalue(l.toFloat(a.Handle, l.builtins.Double)), rvalue(l.toFloat(b.Handle, l.builtins.Double)), nil

	case l.types.KindOf(ta) == types.KindBool && l.types.KindOf(tb) == types.KindBool:
		// i1 under signed predicates would order true below false
		int32T := l.builtins.Int
		return rvalue(l.intResize(a.Handle, int32T)), rvalue(l.intResize(b.Handle, int32T)), nil

	case ta == tb:
		return a, b, nil
	}
	wide := ta
	if l.types.BitWidth(tb) > l.types.BitWidth(ta) {
		wide = tb
	}
	if l.types.IsFloat(wide) {
		return rvalue(l.floatResize(a.Handle, wide)), rvalue(l.floatResize(b.Handle, wide)), nil
	}
	return rvalue(l.intResize(a.Handle, wide)), rvalue(l.intResize(b.Handle, wide)), nil
}

// assign stores rhs into the storage of lhs and yields lhs, so assignments chain.
func (l *Lowerer) assign(lhs, rhs Value, loc source.Location) (Value, error) {
	if !lhs.LValue {
		return Value{}, l.fail(diag.SemaAssignToRValue, loc, "Expression is not assignable")
	}
	v, err := l.castTo(rhs, l.typeOf(lhs), false, loc)
	if err != nil {
		return Value{}, err
	}
	l.b.Store(v.Handle, lhs.Handle)
	return lhs, nil
}

// condition converts v to bool by comparing it against zero. It is a truth
// test, not a cast, so castTo's narrowing warnings do not apply.
func (l *Lowerer) condition(v Value, loc source.Location) (*ir.Value, error) {
	v = l.deref(v)
	t := v.Handle.Type
	switch l.types.KindOf(t) {
	case types.KindBool, types.KindInt, types.KindFloat:
		return l.truth(v.Handle), nil
	case types.KindPointer:
		return l.b.ICmp(ir.PredNE, v.Handle, l.b.Null(t)), nil
	}
	return nil, l.fail(diag.SemaInvalidCast, loc, "Value of type '%s' is not contextually convertible to 'bool'", l.label(t))
}

// truth converts an arithmetic value to bool by comparing it with zero.
func (l *Lowerer) truth(h *ir.Value) *ir.Value {
	switch l.types.KindOf(h.Type) {
	case types.KindBool:
		return h
	case types.KindFloat:
		return l.b.FCmp(ir.PredUNE, h, l.b.ConstFloat(h.Type, 0))
	}
	return l.b.ICmp(ir.PredNE, h, l.b.ConstInt(h.Type, 0))
}

// intResize sign-extends or truncates an integer; bool is zero-extended.
func (l *Lowerer) intResize(h *ir.Value, to types.TypeID) *ir.Value {
	from := l.types.BitWidth(h.Type)
	want := l.types.BitWidth(to)
	switch {
	case from == want:
		return h
	case from > want:
		return l.b.Cast(ir.OpTrunc, h, to)
	case l.types.KindOf(h.Type) == types.KindBool:
		return l.b.Cast(ir.OpZExt, h, to)
	}
	return l.b.Cast(ir.OpSExt, h, to)
}

func (l *Lowerer) floatResize(h *ir.Value, to types.TypeID) *ir.Value {
	from := l.types.BitWidth(h.Type)
	want := l.types.BitWidth(to)
	switch {
	case from == want:
		return h
	case from > want:
		return l.b.Cast(ir.OpFPTrunc, h, to)
	}
	return l.b.Cast(ir.OpFPExt, h, to)
}

// toFloat converts an arithmetic value to the floating type to.
func (l *Lowerer) toFloat(h *ir.Value, to types.TypeID) *ir.Value {
	switch l.types.KindOf(h.Type) {
	case types.KindFloat:
		return l.floatResize(h, to)
	case types.KindBool:
		h = l.b.Cast(ir.OpZExt, h, l.builtins.Int)
	}
	return l.b.Cast(ir.OpSIToFP, h, to)
}

// toIndex widens an integer index to long for address computations.
func (l *Lowerer) toIndex(h *ir.Value) *ir.Value {
	return l.intResize(h, l.builtins.Long)
}
