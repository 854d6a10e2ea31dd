package types

import (
	"fmt"

	"fortio.org/safecast"
)

// RegisterCustom interns a named user type. Custom types can be named in
// declarations but have no representation, so lowering rejects them.
func (in *Interner) RegisterCustom(name string) TypeID {
	for i, have := range in.customs {
		if have != name {
			continue
		}
		slot, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("custom type overflow: %w", err))
		}
		return in.Intern(Type{Kind: KindCustom, Payload: slot})
	}
	in.customs = append(in.customs, name)
	slot, err := safecast.Conv[uint32](len(in.customs) - 1)
	if err != nil {
		panic(fmt.Errorf("custom type overflow: %w", err))
	}
	return in.Intern(Type{Kind: KindCustom, Payload: slot})
}

// CustomName returns the declared name of a custom type.
func (in *Interner) CustomName(id TypeID) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindCustom || int(tt.Payload) >= len(in.customs) {
		return "", false
	}
	return in.customs[tt.Payload], true
}
