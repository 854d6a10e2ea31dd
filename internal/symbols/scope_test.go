package symbols

import (
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/source"
)

func TestBindRejectsRedeclaration(t *testing.T) {
	unit := NewUnit()
	first := &Binding{Kind: SymbolVar, Name: "x", Decl: source.At(1, 5, 5)}
	second := &Binding{Kind: SymbolVar, Name: "x", Decl: source.At(2, 5, 5)}

	be.True(t, unit.TryReserve("x"))
	be.True(t, unit.Bind(first))
	be.True(t, !unit.TryReserve("x"))
	be.True(t, !unit.Bind(second))

	got, ok := unit.Lookup("x")
	be.True(t, ok)
	if got != first {
		t.Fatalf("first binding must stay resolvable, got %+v", got)
	}
	be.Equal(t, unit.Names(), []string{"x"})
}

func TestShadowingAcrossScopes(t *testing.T) {
	unit := NewUnit()
	outer := &Binding{Kind: SymbolVar, Name: "n"}
	unit.Bind(outer)

	fn := unit.AddChild(ScopeFunction)
	block := fn.AddChild(ScopeBlock)
	be.True(t, block.TryReserve("n"))

	inner := &Binding{Kind: SymbolVar, Name: "n"}
	be.True(t, block.Bind(inner))

	got, _ := block.Lookup("n")
	if got != inner {
		t.Fatalf("expected the innermost binding")
	}
	got, _ = fn.Lookup("n")
	if got != outer {
		t.Fatalf("expected the outer binding from the function scope")
	}
	_, ok := block.LookupLocal("missing")
	be.True(t, !ok)
	_, ok = block.Lookup("missing")
	be.True(t, !ok)
	be.Equal(t, block.Depth(), 2)
	be.Equal(t, len(unit.Children), 1)
}

func TestBindingFlags(t *testing.T) {
	b := &Binding{Kind: SymbolFunction, Name: "f", Flags: SymbolFlagDefined}
	be.True(t, b.Has(SymbolFlagDefined))
	be.True(t, !b.Has(SymbolFlagGlobal))
	be.True(t, !b.IsCallable())
	be.Equal(t, b.Kind.String(), "function")
}
