package ir

// Reachable returns the blocks reachable from the entry of f. A conditional
// branch on a constant only follows the taken edge.
func Reachable(f *Func) map[*Block]bool {
	seen := make(map[*Block]bool, len(f.Blocks))
	entry := f.Entry()
	if entry == nil {
		return seen
	}
	stack := []*Block{entry}
	seen[entry] = true
	for len(stack) > 0 {
		bb := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range liveSuccessors(bb.Term) {
			if succ != nil && !seen[succ] {
				seen[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return seen
}

func liveSuccessors(t Terminator) []*Block {
	if t.Kind == TermCondBr {
		if c, ok := t.Cond.ConstInt(); ok {
			if c != 0 {
				return []*Block{t.Then}
			}
			return []*Block{t.Else}
		}
	}
	return t.Successors()
}
