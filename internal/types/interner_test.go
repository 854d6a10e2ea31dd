package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Bool == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	be.Equal(t, in.BitWidth(b.Bool), Width1)
	be.Equal(t, in.BitWidth(b.Char), Width8)
	be.Equal(t, in.BitWidth(b.Long), Width64)
	be.Equal(t, in.KindOf(b.Double), KindFloat)
	be.True(t, in.IsIntegral(b.Bool))
	be.True(t, !in.IsIntegral(b.Float))
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().Int
	arr1 := in.ArrayOf(elem, 20)
	arr2 := in.Intern(MakeArray(elem, 20))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	if in.ArrayOf(elem, 21) == arr1 {
		t.Fatalf("arrays of different length must differ")
	}
	if in.PointerTo(elem) != in.PointerTo(elem) {
		t.Fatalf("pointer types should be deduplicated")
	}
}

func TestRegisterFnDeduplicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	f1 := in.RegisterFn(FnInfo{Params: []TypeID{b.Int, b.Char}, Result: b.Int})
	f2 := in.RegisterFn(FnInfo{Params: []TypeID{b.Int, b.Char}, Refs: []bool{false, false}, Result: b.Int})
	be.Equal(t, f1, f2)

	ref := in.RegisterFn(FnInfo{Params: []TypeID{b.Int, b.Char}, Refs: []bool{true, false}, Result: b.Int})
	if ref == f1 {
		t.Fatalf("reference parameters must change the function type")
	}
	info, ok := in.FnInfo(ref)
	be.True(t, ok)
	be.Equal(t, len(info.Refs), 2)
	be.True(t, info.Refs[0])
}

func TestSizeOf(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	be.Equal(t, in.SizeOf(b.Int), uint64(4))
	be.Equal(t, in.SizeOf(in.PointerTo(b.Char)), uint64(PointerSize))
	be.Equal(t, in.SizeOf(in.ArrayOf(in.ArrayOf(b.Short, 3), 4)), uint64(24))
	be.Equal(t, in.SizeOf(b.Void), uint64(0))
}

func TestCustomTypes(t *testing.T) {
	in := NewInterner()
	a := in.RegisterCustom("Point")
	be.Equal(t, in.RegisterCustom("Point"), a)
	name, ok := in.CustomName(a)
	be.True(t, ok)
	be.Equal(t, name, "Point")
	be.Equal(t, in.KindOf(a), KindCustom)
}
