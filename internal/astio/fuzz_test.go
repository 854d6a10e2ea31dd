package astio

import (
	"bytes"
	"testing"

	"minic/internal/ast"
)

// maxFuzzInput bounds a single fuzz input.
const maxFuzzInput = 64 << 10

// FuzzDecodeJSON checks that arbitrary bytes never panic the decoder and
// that a successful decode always yields a unit.
func FuzzDecodeJSON(f *testing.F) {
	f.Add([]byte(program))
	f.Add([]byte(`{"kind": "unit"}`))
	f.Add([]byte(`{"kind": "unit", "children": [{"kind": "var_decl", "type": "int"}]}`))
	f.Add([]byte(`{"kind": "unit", "children": [{"kind": "func_decl", "type": "int", "children": [{"kind": "func", "name": "f"}, {"kind": "block"}]}]}`))
	f.Add([]byte(`{"kind": "binary", "op": "ADD"}`))
	f.Add([]byte(`[]`))

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		unit, err := Decode(bytes.NewReader(input), FormatJSON)
		if err != nil {
			return
		}
		if unit == nil {
			t.Fatal("nil unit without error")
		}
		for _, d := range unit.Decls {
			switch d.(type) {
			case *ast.VarDeclaration, *ast.FuncDeclaration:
			default:
				t.Fatalf("unexpected declaration %T", d)
			}
		}
	})
}
