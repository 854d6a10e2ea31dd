package symbols

import (
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolParam
	SymbolFunction
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolFunction:
		return "function"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagGlobal SymbolFlags = 1 << iota
	SymbolFlagReference
	SymbolFlagDefined
)

// Binding is one scope entry. It is created once at declaration; variable
// contents change through IR stores, never by rebinding.
type Binding struct {
	Kind  SymbolKind
	Name  string
	Decl  source.Location
	Flags SymbolFlags

	// Type is the logical type: the object type of a variable or the
	// function type of a function.
	Type types.TypeID
	// Addr is the storage of a variable. When LValue is false Addr is the
	// value itself, as for arrays bound to their decayed pointer.
	Addr   *ir.Value
	LValue bool

	Func *ir.Func
}

func (b *Binding) Has(flag SymbolFlags) bool {
	return b != nil && b.Flags&flag != 0
}

// IsCallable reports whether the binding names a function.
func (b *Binding) IsCallable() bool {
	return b != nil && b.Kind == SymbolFunction && b.Func != nil
}
