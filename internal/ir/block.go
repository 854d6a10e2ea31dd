package ir

type Block struct {
	Name   string
	Instrs []*Instr
	Term   Terminator
	Func   *Func
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
