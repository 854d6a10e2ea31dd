package lower

import (
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
)

func TestIfElse(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("x"), ast.IntLit(2)),
		&ast.IfStmt{
			Cond: ast.Bin(ast.OpGreater, ast.Ident("x"), ast.IntLit(1)),
			Then: ast.Return(ast.IntLit(1)),
			Else: ast.Eval(ast.Bin(ast.OpAssign, ast.Ident("x"), ast.IntLit(0))),
		},
		ast.Return(ast.Ident("x")),
	))
	be.Err(t, r.err, nil)
	f := r.entryFn(t)
	be.Equal(t, blockNames(f), []string{"entry", "if.then", "if.else", "if.merge", "return.after", "return.after1"})
	entry := f.Entry()
	be.Equal(t, entry.Term.Kind, ir.TermCondBr)
	be.Equal(t, entry.Term.Then.Name, "if.then")
	be.Equal(t, entry.Term.Else.Name, "if.else")
}

func TestIfWithoutElseAndPointerCondition(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeChar, ast.Ptr(ast.Name("p")), nil),
		&ast.IfStmt{Cond: ast.Ident("p"), Then: ast.Body()},
		ast.Return(ast.IntLit(0)),
	))
	be.Err(t, r.err, nil)
	f := r.entryFn(t)
	be.Equal(t, countOp(f, ir.OpICmp), 1)
	for _, bb := range f.Blocks[1:3] {
		be.Equal(t, bb.Term.Kind, ir.TermBr)
		be.Equal(t, bb.Term.Then.Name, "if.merge")
	}
}

func TestWhileLoop(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("i"), ast.IntLit(0)),
		&ast.WhileStmt{
			Cond: ast.Bin(ast.OpLess, ast.Ident("i"), ast.IntLit(10)),
			Body: ast.Eval(ast.Un(ast.OpIncPost, ast.Ident("i"))),
		},
		ast.Return(ast.Ident("i")),
	))
	be.Err(t, r.err, nil)
	f := r.entryFn(t)
	be.Equal(t, blockNames(f)[:4], []string{"entry", "while.cond", "while.body", "while.merge"})
	cond, body := f.Blocks[1], f.Blocks[2]
	be.Equal(t, f.Entry().Term.Then, cond)
	be.Equal(t, cond.Term.Kind, ir.TermCondBr)
	be.Equal(t, body.Term.Then, cond)
}

func TestForLoop(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("s"), ast.IntLit(0)),
		&ast.ForStmt{
			Init: ast.Var(ast.TypeInt, ast.Name("i"), ast.IntLit(0)),
			Cond: ast.Bin(ast.OpLess, ast.Ident("i"), ast.IntLit(4)),
			Step: ast.Un(ast.OpIncPre, ast.Ident("i")),
			Body: ast.Eval(ast.Bin(ast.OpAddAssign, ast.Ident("s"), ast.Ident("i"))),
		},
		// i is scoped to the loop
		ast.Return(ast.Ident("i")),
	))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaUndeclaredIdentifier})
	f := r.entryFn(t)
	be.Equal(t, blockNames(f)[:4], []string{"entry", "for.cond", "for.body", "for.merge"})
	body := f.Blocks[2]
	// s += i, then ++i
	be.Equal(t, ops(body), []ir.Op{
		ir.OpLoad, ir.OpLoad, ir.OpAdd, ir.OpStore,
		ir.OpLoad, ir.OpAdd, ir.OpStore,
	})
	be.Equal(t, body.Term.Then.Name, "for.cond")
}

func TestForWithoutCondition(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		&ast.ForStmt{Body: ast.Return(ast.IntLit(7))},
	))
	be.Err(t, r.err, nil)
	be.Equal(t, r.bag.Len(), 0)
	cond := r.entryFn(t).Blocks[1]
	be.Equal(t, cond.Term.Kind, ir.TermBr)
	be.Equal(t, cond.Term.Then.Name, "for.body")
}

func TestReturnTypeMismatch(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeVoid, "v", nil, ast.Body(ast.Return(ast.IntLit(1)))),
		ast.Func(ast.TypeInt, "i", nil, ast.Body(ast.Return(nil))),
		mainFunc(ast.Return(ast.IntLit(0))),
	)
	be.Equal(t, r.codes(), []diag.Code{diag.SemaReturnTypeMismatch, diag.SemaReturnTypeMismatch})
	be.Equal(t, r.bag.Items()[0].Message, "Return type should be void")
	be.Equal(t, r.bag.Items()[1].Message, "Return type should not be void")
}

func TestMissingReturnPolicy(t *testing.T) {
	fallsOff := func() *ast.FuncDeclaration {
		return ast.Func(ast.TypeInt, "f", []ast.Param{ast.P(ast.TypeInt, ast.Name("x"))}, ast.Body(
			&ast.IfStmt{Cond: ast.Ident("x"), Then: ast.Return(ast.IntLit(1))},
		))
	}
	returns := ast.Func(ast.TypeInt, "g", nil, ast.Body(
		&ast.IfStmt{Cond: ast.BoolLit(true), Then: ast.Return(ast.IntLit(1)), Else: ast.Return(ast.IntLit(2))},
	))
	tests := []struct {
		policy Policy
		want   []diag.Code
	}{
		{PolicyAllow, []diag.Code{}},
		{PolicyWarn, []diag.Code{diag.SemaMissingReturn}},
		{PolicyError, []diag.Code{diag.SemaMissingReturn}},
	}
	for _, tc := range tests {
		t.Run(tc.policy.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.MissingReturn = tc.policy
			r := lowerWith(t, opts, fallsOff(), returns, mainFunc(ast.Return(ast.IntLit(0))))
			be.Equal(t, r.codes(), tc.want)
			if tc.policy == PolicyError {
				be.True(t, r.err != nil)
				be.Equal(t, r.bag.Count(diag.SevError), 1)
			} else {
				be.Err(t, r.err, nil)
			}
			f := r.fn(t, "f")
			last := f.Blocks[len(f.Blocks)-1]
			be.Equal(t, last.Term.Kind, ir.TermRet)
			v, ok := last.Term.Value.ConstInt()
			be.True(t, ok)
			be.Equal(t, v, int64(0))
		})
	}
}

func TestVoidFunctionFallsOff(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeVoid, "noop", nil, ast.Body()),
		mainFunc(ast.Eval(ast.Call(ast.Ident("noop"))), ast.Return(ast.IntLit(0))),
	)
	be.Err(t, r.err, nil)
	be.Equal(t, r.bag.Len(), 0)
	be.Equal(t, r.fn(t, "noop").Entry().Term.Kind, ir.TermRet)
	be.True(t, r.fn(t, "noop").Entry().Term.Value == nil)
}

func TestBlockAggregatesFailures(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Eval(ast.Ident("a")),
		ast.Eval(ast.Ident("b")),
		ast.Var(ast.TypeInt, ast.Name("ok"), ast.IntLit(1)),
		ast.Return(ast.Ident("ok")),
	))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaUndeclaredIdentifier, diag.SemaUndeclaredIdentifier})
	be.Equal(t, countOp(r.entryFn(t), ir.OpStore), 1)
}

func TestIntegerConditionIsTruthTest(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeLong, ast.Name("n"), nil),
		&ast.WhileStmt{Cond: ast.Ident("n"), Body: ast.Eval(ast.Un(ast.OpDecPre, ast.Ident("n")))},
		ast.Return(ast.IntLit(0)),
	))
	be.Err(t, r.err, nil)
	be.Equal(t, r.bag.Len(), 0)
	f := r.entryFn(t)
	be.Equal(t, countOp(f, ir.OpICmp), 1)
	be.Equal(t, countOp(f, ir.OpTrunc), 0)
}
