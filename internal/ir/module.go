package ir

import (
	"fmt"

	"minic/internal/types"
)

// Global is a module-level variable with a constant initializer.
type Global struct {
	Name  string
	Elem  types.TypeID
	Init  *Value
	value *Value
}

// Value returns the address of the global as an operand.
func (g *Global) Value() *Value {
	return g.value
}

type Module struct {
	Name    string
	Types   *types.Interner
	Globals []*Global
	Funcs   []*Func

	symbols map[string]struct{}
	funcs   map[string]*Func
}

func NewModule(name string, typesIn *types.Interner) *Module {
	return &Module{
		Name:    name,
		Types:   typesIn,
		symbols: make(map[string]struct{}),
		funcs:   make(map[string]*Func),
	}
}

// uniqueSymbol returns name, or name.N when the symbol is already taken.
func (m *Module) uniqueSymbol(name string) string {
	unique := name
	for n := 1; ; n++ {
		if _, taken := m.symbols[unique]; !taken {
			break
		}
		unique = fmt.Sprintf("%s.%d", name, n)
	}
	m.symbols[unique] = struct{}{}
	return unique
}

// Reserve marks name as taken, so NewFunc and NewGlobal pick name.N
// instead, until Release gives it back.
func (m *Module) Reserve(name string) {
	m.symbols[name] = struct{}{}
}

// Release frees a symbol taken by Reserve. Symbols of existing functions
// and globals are never released.
func (m *Module) Release(name string) {
	if _, used := m.funcs[name]; used {
		return
	}
	for _, g := range m.Globals {
		if g.Name == name {
			return
		}
	}
	delete(m.symbols, name)
}

// NewFunc declares a function of the given function type. Reference
// parameters and results become pointers.
func (m *Module) NewFunc(name string, fnType types.TypeID) *Func {
	info, ok := m.Types.FnInfo(fnType)
	if !ok {
		panic(fmt.Sprintf("ir: %s: not a function type", name))
	}
	f := &Func{
		Name:   m.uniqueSymbol(name),
		Type:   fnType,
		Result: info.Result,
	}
	if info.ResultRef {
		f.Result = m.Types.PointerTo(info.Result)
	}
	f.voidResult = m.Types.IsVoid(f.Result)
	for i, p := range info.Params {
		pt := p
		if info.Refs[i] {
			pt = m.Types.PointerTo(p)
		}
		f.Params = append(f.Params, &Value{Kind: ValueParam, Type: pt, Index: i})
	}
	f.value = &Value{Kind: ValueFunc, Type: fnType, Func: f, Name: f.Name}
	m.Funcs = append(m.Funcs, f)
	m.funcs[f.Name] = f
	return f
}

// Func finds a function by its IR symbol.
func (m *Module) Func(name string) (*Func, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// NewGlobal adds a zero-initialized global of type elem.
func (m *Module) NewGlobal(name string, elem types.TypeID) *Global {
	g := &Global{
		Name: m.uniqueSymbol(name),
		Elem: elem,
	}
	g.Init = zeroValue(m.Types, elem)
	g.value = &Value{Kind: ValueGlobal, Type: m.Types.PointerTo(elem), Global: g, Name: g.Name}
	m.Globals = append(m.Globals, g)
	return g
}

func zeroValue(typesIn *types.Interner, t types.TypeID) *Value {
	switch typesIn.KindOf(t) {
	case types.KindBool, types.KindInt:
		return &Value{Kind: ValueConstInt, Type: t}
	case types.KindFloat:
		return &Value{Kind: ValueConstFloat, Type: t}
	case types.KindPointer:
		return &Value{Kind: ValueConstNull, Type: t}
	}
	return &Value{Kind: ValueConstZero, Type: t}
}
