package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the basic types of the language.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Char    TypeID
	Short   TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Two types are the same type exactly when their TypeIDs are equal.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
	customs  []string
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool, Width: Width1})
	in.builtins.Char = in.Intern(MakeInt(Width8))
	in.builtins.Short = in.Intern(MakeInt(Width16))
	in.builtins.Int = in.Intern(MakeInt(Width32))
	in.builtins.Long = in.Intern(MakeInt(Width64))
	in.builtins.Float = in.Intern(MakeFloat(Width32))
	in.builtins.Double = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// PointerTo interns a pointer to elem.
func (in *Interner) PointerTo(elem TypeID) TypeID {
	return in.Intern(MakePointer(elem))
}

// ArrayOf interns an array of count elements of elem.
func (in *Interner) ArrayOf(elem TypeID, count uint32) TypeID {
	return in.Intern(MakeArray(elem, count))
}

type typeKey Type
