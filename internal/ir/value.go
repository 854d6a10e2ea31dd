package ir

import "minic/internal/types"

// ValueKind distinguishes constants, symbols and instruction results.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueConstInt
	ValueConstFloat
	ValueConstNull
	ValueConstZero
	ValueConstGEP
	ValueGlobal
	ValueFunc
	ValueParam
	ValueInstr
)

// Value is an operand of an instruction. Values are immutable once created;
// retyping a pointer produces a new Value sharing the same definition.
type Value struct {
	Kind ValueKind
	Type types.TypeID

	Int   int64   // ValueConstInt, normalized to the type's width
	Float float64 // ValueConstFloat
	Name  string  // name hint for params and instruction results
	Index int     // parameter position

	Global *Global
	Func   *Func
	Instr  *Instr
	GEP    *ConstGEP
}

// ConstGEP is an address computation folded at compile time.
type ConstGEP struct {
	Elem    types.TypeID
	Base    *Value
	Indices []*Value
}

// IsConst reports values known at compile time, addresses of globals and
// functions included.
func (v *Value) IsConst() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ValueConstInt, ValueConstFloat, ValueConstNull, ValueConstZero,
		ValueConstGEP, ValueGlobal, ValueFunc:
		return true
	}
	return false
}

// ConstInt returns the integer payload of an integer constant.
func (v *Value) ConstInt() (int64, bool) {
	if v == nil || v.Kind != ValueConstInt {
		return 0, false
	}
	return v.Int, true
}

// retyped returns a copy of v with another type; used for no-op pointer casts.
func (v *Value) retyped(t types.TypeID) *Value {
	cp := *v
	cp.Type = t
	return &cp
}

// normalizeInt wraps v to the given width, sign-extending; bool is 0 or 1.
func normalizeInt(v int64, w types.Width) int64 {
	switch w {
	case types.Width1:
		return v & 1
	case types.Width8:
		return int64(int8(v))
	case types.Width16:
		return int64(int16(v))
	case types.Width32:
		return int64(int32(v))
	}
	return v
}

// unsignedInt reinterprets a normalized value as unsigned of the given width.
func unsignedInt(v int64, w types.Width) uint64 {
	if w >= types.Width64 || w == 0 {
		return uint64(v)
	}
	return uint64(v) & (uint64(1)<<w - 1)
}
