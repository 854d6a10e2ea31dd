package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params    []TypeID // Parameter types (in order)
	Refs      []bool   // Refs[i] marks a reference parameter; same length as Params
	Result    TypeID   // Return type
	ResultRef bool     // function returns a reference
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(info FnInfo) TypeID {
	refs := normalizeRefs(info.Refs, len(info.Params))
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
			continue
		}
		have := in.fns[tt.Payload]
		if have.Result == info.Result && have.ResultRef == info.ResultRef &&
			slices.Equal(have.Params, info.Params) && slices.Equal(have.Refs, refs) {
			return id
		}
	}
	in.fns = append(in.fns, FnInfo{
		Params:    slices.Clone(info.Params),
		Refs:      refs,
		Result:    info.Result,
		ResultRef: info.ResultRef,
	})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

func normalizeRefs(refs []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, refs)
	return out
}
