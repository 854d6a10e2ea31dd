package lower

import (
	"context"
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
)

type lowered struct {
	res Result
	bag *diag.Bag
	err error
}

func lowerWith(t *testing.T, opts Options, decls ...ast.Decl) lowered {
	t.Helper()
	bag := diag.NewBag(0)
	res, err := LowerUnit(context.Background(), "test", ast.Unit(decls...), diag.BagReporter{Bag: bag}, opts)
	return lowered{res: res, bag: bag, err: err}
}

func lowerDecls(t *testing.T, decls ...ast.Decl) lowered {
	t.Helper()
	return lowerWith(t, DefaultOptions(), decls...)
}

// mainFunc defines "int main()" with the given statements.
func mainFunc(stmts ...ast.Stmt) *ast.FuncDeclaration {
	return ast.Func(ast.TypeInt, "main", nil, ast.Body(stmts...))
}

func (r lowered) fn(t *testing.T, name string) *ir.Func {
	t.Helper()
	f, ok := r.res.Module.Func(name)
	if !ok {
		t.Fatalf("function %q not found", name)
	}
	return f
}

func (r lowered) entryFn(t *testing.T) *ir.Func {
	t.Helper()
	return r.fn(t, "__minic_main")
}

func (r lowered) codes() []diag.Code {
	return r.bag.Codes()
}

func ops(bb *ir.Block) []ir.Op {
	out := make([]ir.Op, 0, len(bb.Instrs))
	for _, ins := range bb.Instrs {
		out = append(out, ins.Op)
	}
	return out
}

func countOp(f *ir.Func, op ir.Op) int {
	n := 0
	for _, bb := range f.Blocks {
		for _, ins := range bb.Instrs {
			if ins.Op == op {
				n++
			}
		}
	}
	return n
}

func blockNames(f *ir.Func) []string {
	out := make([]string, 0, len(f.Blocks))
	for _, bb := range f.Blocks {
		out = append(out, bb.Name)
	}
	return out
}

func calls(f *ir.Func) []string {
	var out []string
	for _, bb := range f.Blocks {
		for _, ins := range bb.Instrs {
			if ins.Op == ir.OpCall {
				out = append(out, ins.Callee.Name)
			}
		}
	}
	return out
}
