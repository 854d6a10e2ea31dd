package types

import "testing"

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn(FnInfo{
		Params: []TypeID{in.PointerTo(b.Char), b.Int},
		Refs:   []bool{false, true},
		Result: b.Double,
	})
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.Char, "char"},
		{in.PointerTo(in.PointerTo(b.Int)), "int**"},
		{in.ArrayOf(b.Long, 4), "long[4]"},
		{in.ArrayOf(in.ArrayOf(b.Int, 2), 3), "int[3][2]"},
		{fn, "double(char*, int&)"},
		{in.RegisterCustom("Point"), "Point"},
		{NoTypeID, "?"},
	}
	for _, tc := range cases {
		if got := Label(in, tc.id); got != tc.want {
			t.Errorf("Label(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
