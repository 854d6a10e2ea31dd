package ir

import (
	"math"

	"minic/internal/types"
)

// Builder appends instructions at an insertion point, folding operations
// on constants instead of emitting them.
type Builder struct {
	mod   *Module
	types *types.Interner
	block *Block
}

func NewBuilder(m *Module) *Builder {
	return &Builder{mod: m, types: m.Types}
}

func (b *Builder) Module() *Module { return b.mod }

// SetInsertPoint makes bb the block receiving new instructions.
func (b *Builder) SetInsertPoint(bb *Block) {
	b.block = bb
}

func (b *Builder) InsertBlock() *Block {
	return b.block
}

// Func returns the function owning the insertion block.
func (b *Builder) Func() *Func {
	if b.block == nil {
		return nil
	}
	return b.block.Func
}

// Constants ------------------------------------------------------------------

func (b *Builder) ConstInt(t types.TypeID, v int64) *Value {
	return &Value{Kind: ValueConstInt, Type: t, Int: normalizeInt(v, b.types.BitWidth(t))}
}

func (b *Builder) ConstBool(v bool) *Value {
	if v {
		return b.ConstInt(b.types.Builtins().Bool, 1)
	}
	return b.ConstInt(b.types.Builtins().Bool, 0)
}

// ConstFloat rounds v to the precision of t.
func (b *Builder) ConstFloat(t types.TypeID, v float64) *Value {
	if b.types.BitWidth(t) == types.Width32 {
		v = float64(float32(v))
	}
	return &Value{Kind: ValueConstFloat, Type: t, Float: v}
}

func (b *Builder) Null(t types.TypeID) *Value {
	return &Value{Kind: ValueConstNull, Type: t}
}

// Zero returns the zero value of t.
func (b *Builder) Zero(t types.TypeID) *Value {
	return zeroValue(b.types, t)
}

// AllOnes returns the integer constant with every bit set.
func (b *Builder) AllOnes(t types.TypeID) *Value {
	return b.ConstInt(t, -1)
}

// Memory ---------------------------------------------------------------------

// Alloca reserves a stack slot for elem. Slots always go to the top of the
// entry block, whatever the insertion point.
func (b *Builder) Alloca(elem types.TypeID, name string) *Value {
	fn := b.mustFunc()
	entry := fn.Entry()
	ins := &Instr{Op: OpAlloca, Elem: elem, Block: entry}
	ins.Result = &Value{Kind: ValueInstr, Type: b.types.PointerTo(elem), Instr: ins, Name: name}
	pos := 0
	for pos < len(entry.Instrs) && entry.Instrs[pos].Op == OpAlloca {
		pos++
	}
	entry.Instrs = append(entry.Instrs, nil)
	copy(entry.Instrs[pos+1:], entry.Instrs[pos:])
	entry.Instrs[pos] = ins
	return ins.Result
}

func (b *Builder) Load(ptr *Value, elem types.TypeID) *Value {
	return b.emit(&Instr{Op: OpLoad, Args: []*Value{ptr}, Elem: elem}, elem)
}

func (b *Builder) Store(val, ptr *Value) {
	b.emit(&Instr{Op: OpStore, Args: []*Value{val, ptr}}, types.NoTypeID)
}

// Arithmetic -----------------------------------------------------------------

// BinOp combines two operands of the same type.
func (b *Builder) BinOp(op Op, l, r *Value) *Value {
	if v, ok := b.foldBinary(op, l, r); ok {
		return v
	}
	return b.emit(&Instr{Op: op, Args: []*Value{l, r}}, l.Type)
}

// Neg negates an integer as 0 - x.
func (b *Builder) Neg(x *Value) *Value {
	return b.BinOp(OpSub, b.ConstInt(x.Type, 0), x)
}

func (b *Builder) FNeg(x *Value) *Value {
	if x.Kind == ValueConstFloat {
		return b.ConstFloat(x.Type, -x.Float)
	}
	return b.emit(&Instr{Op: OpFNeg, Args: []*Value{x}}, x.Type)
}

// Not computes the bitwise complement as x ^ -1.
func (b *Builder) Not(x *Value) *Value {
	return b.BinOp(OpXor, x, b.AllOnes(x.Type))
}

// ICmp compares integers or pointers and yields a bool.
func (b *Builder) ICmp(pred Pred, l, r *Value) *Value {
	if v, ok := b.foldICmp(pred, l, r); ok {
		return v
	}
	return b.emit(&Instr{Op: OpICmp, Pred: pred, Args: []*Value{l, r}}, b.types.Builtins().Bool)
}

// FCmp compares floats and yields a bool.
func (b *Builder) FCmp(pred Pred, l, r *Value) *Value {
	if v, ok := b.foldFCmp(pred, l, r); ok {
		return v
	}
	return b.emit(&Instr{Op: OpFCmp, Pred: pred, Args: []*Value{l, r}}, b.types.Builtins().Bool)
}

// Cast converts x to type to. Pointer to pointer casts are free: with opaque
// pointers both sides share one IR type, so only the value's type changes.
func (b *Builder) Cast(op Op, x *Value, to types.TypeID) *Value {
	if x.Type == to {
		return x
	}
	if op == OpBitCast && b.types.IsPointer(x.Type) && b.types.IsPointer(to) {
		return x.retyped(to)
	}
	if v, ok := b.foldCast(op, x, to); ok {
		return v
	}
	return b.emit(&Instr{Op: op, Args: []*Value{x}}, to)
}

// GEP computes the address of an element. elem is the type the first index
// steps over; result is the pointer type of the computed address.
func (b *Builder) GEP(elem types.TypeID, base *Value, result types.TypeID, indices ...*Value) *Value {
	if isConstAddress(base) && allConstInt(indices) {
		return &Value{
			Kind: ValueConstGEP,
			Type: result,
			GEP:  &ConstGEP{Elem: elem, Base: base, Indices: indices},
		}
	}
	args := make([]*Value, 0, len(indices)+1)
	args = append(args, base)
	args = append(args, indices...)
	return b.emit(&Instr{Op: OpGEP, Args: args, Elem: elem}, result)
}

// Call invokes fn. The result of a void call has the void type and is not
// usable as an operand.
func (b *Builder) Call(fn *Func, args ...*Value) *Value {
	return b.emit(&Instr{Op: OpCall, Callee: fn, Args: args}, fn.Result)
}

// Terminators ----------------------------------------------------------------

func (b *Builder) Ret(v *Value) {
	b.terminate(Terminator{Kind: TermRet, Value: v})
}

func (b *Builder) RetVoid() {
	b.terminate(Terminator{Kind: TermRet})
}

func (b *Builder) Br(target *Block) {
	b.terminate(Terminator{Kind: TermBr, Then: target})
}

func (b *Builder) CondBr(cond *Value, then, els *Block) {
	b.terminate(Terminator{Kind: TermCondBr, Cond: cond, Then: then, Else: els})
}

func (b *Builder) Unreachable() {
	b.terminate(Terminator{Kind: TermUnreachable})
}

// internals ------------------------------------------------------------------

func (b *Builder) mustFunc() *Func {
	if b.block == nil {
		panic("ir: builder has no insertion point")
	}
	return b.block.Func
}

func (b *Builder) emit(ins *Instr, result types.TypeID) *Value {
	b.mustFunc()
	ins.Block = b.block
	if result != types.NoTypeID {
		ins.Result = &Value{Kind: ValueInstr, Type: result, Instr: ins}
	}
	b.block.Instrs = append(b.block.Instrs, ins)
	return ins.Result
}

func (b *Builder) terminate(t Terminator) {
	b.mustFunc()
	if b.block.Terminated() {
		return
	}
	b.block.Term = t
}

func isConstAddress(v *Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case ValueGlobal, ValueConstGEP, ValueConstNull:
		return true
	}
	return false
}

func allConstInt(vs []*Value) bool {
	for _, v := range vs {
		if v == nil || v.Kind != ValueConstInt {
			return false
		}
	}
	return true
}

// floatBits is shared by folding and printing.
func floatBits(v float64, w types.Width) uint64 {
	if w == types.Width32 {
		return math.Float64bits(float64(float32(v)))
	}
	return math.Float64bits(v)
}
