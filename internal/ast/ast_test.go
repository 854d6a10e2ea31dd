package ast

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestBiOpClasses(t *testing.T) {
	be.True(t, OpAssign.IsAssign())
	be.True(t, OpXorAssign.IsAssign())
	be.True(t, !OpLess.IsAssign())
	be.True(t, OpNotEqual.IsRelational())
	be.True(t, OpMod.IsIntegerOnly())
	be.True(t, !OpDiv.IsIntegerOnly())
	be.Equal(t, OpDivAssign.Underlying(), OpDiv)
	be.Equal(t, OpShlAssign.Underlying(), OpShl)
	be.Equal(t, OpAssign.Underlying(), OpAssign)
}

func TestOperatorNamesRoundTrip(t *testing.T) {
	for op := OpAssign; op <= OpXor; op++ {
		got, ok := ParseBiOp(op.String())
		if !ok || got != op {
			t.Fatalf("ParseBiOp(%q) = %v, %v", op.String(), got, ok)
		}
	}
	for op := OpPos; op <= OpNotBit; op++ {
		got, ok := ParseUnOp(op.String())
		if !ok || got != op {
			t.Fatalf("ParseUnOp(%q) = %v, %v", op.String(), got, ok)
		}
	}
	if _, ok := ParseBiOp("POW"); ok {
		t.Fatalf("unknown operator must not parse")
	}
}

func TestDeclaratorHelpers(t *testing.T) {
	d := Ptr(Ref(Name("p")))
	be.Equal(t, d.Name(), "p")
	be.True(t, IsReference(d))
	be.True(t, !IsReference(Ref(Ptr(Name("q")))))

	fn := Ptr(&FuncDeclarator{Ident: "f"})
	got, ok := FuncOf(fn)
	be.True(t, ok)
	be.Equal(t, got.Ident, "f")
	_, ok = FuncOf(Array(Name("a"), IntLit(3)))
	be.True(t, !ok)
}

func TestLiteralString(t *testing.T) {
	be.Equal(t, CharLit('a').Lit.String(), "'a'")
	be.Equal(t, BoolLit(true).Lit.String(), "true")
	be.Equal(t, DoubleLit(1.5).Lit.String(), "1.5")
	be.Equal(t, IntLit(-3).Lit.String(), "-3")
}
