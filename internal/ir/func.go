package ir

import (
	"strconv"

	"minic/internal/types"
)

// Func is a defined function or, without blocks, an external declaration.
type Func struct {
	Name   string
	Type   types.TypeID // function type
	Result types.TypeID // IR result type; a pointer for reference results
	Params []*Value
	Blocks []*Block

	value      *Value
	voidResult bool
	blockNames map[string]int
}

// ReturnsVoid reports a function without a result value.
func (f *Func) ReturnsVoid() bool {
	return f.voidResult
}

// IsDeclaration reports a function without a body.
func (f *Func) IsDeclaration() bool {
	return len(f.Blocks) == 0
}

// Entry returns the first block, or nil for a declaration.
func (f *Func) Entry() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// Value returns the function as an operand.
func (f *Func) Value() *Value {
	return f.value
}

// NewBlock appends a block. Names are made unique within the function by
// appending a counter, the way LLVM renames duplicate labels.
func (f *Func) NewBlock(name string) *Block {
	if f.blockNames == nil {
		f.blockNames = make(map[string]int)
	}
	unique := name
	if n, ok := f.blockNames[name]; ok {
		for {
			n++
			unique = name + strconv.Itoa(n)
			if _, taken := f.blockNames[unique]; !taken {
				break
			}
		}
		f.blockNames[name] = n
	}
	f.blockNames[unique] = 0
	bb := &Block{Name: unique, Func: f}
	f.Blocks = append(f.Blocks, bb)
	return bb
}
