package types

// KindOf returns the kind of id, or KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// IsIntegral reports integers and bool; bool behaves as a 1-bit integer.
func (in *Interner) IsIntegral(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindInt || k == KindBool
}

func (in *Interner) IsFloat(id TypeID) bool {
	return in.KindOf(id) == KindFloat
}

// IsArithmetic reports integral or floating types.
func (in *Interner) IsArithmetic(id TypeID) bool {
	return in.IsIntegral(id) || in.IsFloat(id)
}

func (in *Interner) IsPointer(id TypeID) bool {
	return in.KindOf(id) == KindPointer
}

func (in *Interner) IsVoid(id TypeID) bool {
	return in.KindOf(id) == KindVoid
}

// Elem returns the pointee of a pointer or the element of an array.
func (in *Interner) Elem(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindPointer && tt.Kind != KindArray) {
		return NoTypeID
	}
	return tt.Elem
}

// BitWidth returns the width of integral and floating types, 0 otherwise.
func (in *Interner) BitWidth(id TypeID) Width {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch tt.Kind {
	case KindBool, KindInt, KindFloat:
		return tt.Width
	}
	return 0
}

// SizeOf returns the storage size of id in bytes; functions, void and
// custom types have no size.
func (in *Interner) SizeOf(id TypeID) uint64 {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch tt.Kind {
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return uint64(tt.Width) / 8
	case KindPointer:
		return PointerSize
	case KindArray:
		return uint64(tt.Count) * in.SizeOf(tt.Elem)
	default:
		return 0
	}
}
