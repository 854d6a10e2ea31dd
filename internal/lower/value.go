package lower

import (
	"minic/internal/ir"
	"minic/internal/types"
)

// Value is a lowered expression. When LValue is set Handle is the address of
// the expression's storage and the logical type is the pointee; otherwise
// Handle is the value itself.
type Value struct {
	Handle *ir.Value
	LValue bool
}

func rvalue(h *ir.Value) Value { return Value{Handle: h} }

func lvalue(addr *ir.Value) Value { return Value{Handle: addr, LValue: true} }

// typeOf returns the logical type of v.
func (l *Lowerer) typeOf(v Value) types.TypeID {
	if v.LValue {
		return l.types.Elem(v.Handle.Type)
	}
	return v.Handle.Type
}

// deref loads an lvalue, yielding a plain value of the pointee type. Arrays
// are not loaded: they decay to a pointer to their first element.
func (l *Lowerer) deref(v Value) Value {
	if !v.LValue {
		return v
	}
	t := l.typeOf(v)
	if tt, ok := l.types.Lookup(t); ok && tt.Kind == types.KindArray {
		return rvalue(l.decay(v.Handle, t))
	}
	return rvalue(l.b.Load(v.Handle, t))
}

// decay computes the address of the first element of the array at addr.
func (l *Lowerer) decay(addr *ir.Value, arr types.TypeID) *ir.Value {
	elem := l.types.Elem(arr)
	zero := l.b.ConstInt(l.builtins.Long, 0)
	return l.b.GEP(arr, addr, l.types.PointerTo(elem), zero, zero)
}
