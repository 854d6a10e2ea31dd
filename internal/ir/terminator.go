package ir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermRet
	TermBr
	TermCondBr
	TermUnreachable
)

// Terminator ends a block. Br uses Then only; Ret has a nil Value for void.
type Terminator struct {
	Kind  TermKind
	Value *Value
	Cond  *Value
	Then  *Block
	Else  *Block
}

// Successors lists the blocks control may reach from t.
func (t Terminator) Successors() []*Block {
	switch t.Kind {
	case TermBr:
		return []*Block{t.Then}
	case TermCondBr:
		return []*Block{t.Then, t.Else}
	}
	return nil
}
