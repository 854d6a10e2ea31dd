package ir

import (
	"errors"
	"fmt"
)

// Validate checks module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil || f.IsDeclaration() {
			continue
		}
		if err := validateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func) error {
	var errs []error

	// 1. Check all blocks terminated
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}

	// 2. Check branch targets belong to the function
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}

	// 3. Check operands are defined in this function
	if err := validateOperands(f); err != nil {
		errs = append(errs, err)
	}

	// 4. Check return values match the result type
	if err := validateReturn(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for _, bb := range f.Blocks {
		if !bb.Terminated() {
			errs = append(errs, fmt.Errorf("%s: unterminated block", bb.Name))
		}
	}
	return errors.Join(errs...)
}

func validateBlockTargets(f *Func) error {
	var errs []error
	for _, bb := range f.Blocks {
		for _, succ := range bb.Term.Successors() {
			if succ == nil || succ.Func != f {
				errs = append(errs, fmt.Errorf("%s: branch target outside of function", bb.Name))
			}
		}
		if bb.Term.Kind == TermCondBr && bb.Term.Cond == nil {
			errs = append(errs, fmt.Errorf("%s: conditional branch without condition", bb.Name))
		}
	}
	return errors.Join(errs...)
}

func validateOperands(f *Func) error {
	var errs []error
	check := func(bb *Block, v *Value) {
		switch {
		case v == nil:
			errs = append(errs, fmt.Errorf("%s: missing operand", bb.Name))
		case v.Kind == ValueInstr && (v.Instr.Block == nil || v.Instr.Block.Func != f):
			errs = append(errs, fmt.Errorf("%s: operand defined outside of function", bb.Name))
		case v.Kind == ValueParam && v.Index >= len(f.Params):
			errs = append(errs, fmt.Errorf("%s: parameter %d does not exist", bb.Name, v.Index))
		}
	}
	for _, bb := range f.Blocks {
		for _, ins := range bb.Instrs {
			for _, a := range ins.Args {
				check(bb, a)
			}
			if ins.Op == OpCall && ins.Callee != nil && len(ins.Args) != len(ins.Callee.Params) {
				errs = append(errs, fmt.Errorf("%s: call to %s with %d arguments, want %d",
					bb.Name, ins.Callee.Name, len(ins.Args), len(ins.Callee.Params)))
			}
		}
		if bb.Term.Kind == TermCondBr && bb.Term.Cond != nil {
			check(bb, bb.Term.Cond)
		}
		if bb.Term.Kind == TermRet && bb.Term.Value != nil {
			check(bb, bb.Term.Value)
		}
	}
	return errors.Join(errs...)
}

func validateReturn(f *Func) error {
	var errs []error
	for _, bb := range f.Blocks {
		if bb.Term.Kind != TermRet {
			continue
		}
		v := bb.Term.Value
		switch {
		case v == nil && !f.ReturnsVoid():
			errs = append(errs, fmt.Errorf("%s: missing return value", bb.Name))
		case v != nil && f.ReturnsVoid():
			errs = append(errs, fmt.Errorf("%s: return value in void function", bb.Name))
		case v != nil && v.Type != f.Result:
			errs = append(errs, fmt.Errorf("%s: return type mismatch", bb.Name))
		}
	}
	return errors.Join(errs...)
}
