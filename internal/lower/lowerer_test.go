package lower

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
)

func TestStoreLoadReturn(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("x"), nil),
		ast.Eval(ast.Bin(ast.OpAssign, ast.Ident("x"), ast.IntLit(5))),
		ast.Return(ast.Ident("x")),
	))
	be.Err(t, r.err, nil)
	be.Equal(t, r.bag.Len(), 0)

	entry := r.entryFn(t).Entry()
	be.Equal(t, ops(entry), []ir.Op{ir.OpAlloca, ir.OpStore, ir.OpLoad})
	stored, ok := entry.Instrs[1].Args[0].ConstInt()
	be.True(t, ok)
	be.Equal(t, stored, int64(5))
	be.Equal(t, entry.Term.Kind, ir.TermRet)
	be.Equal(t, entry.Term.Value, entry.Instrs[2].Result)
}

func TestReferenceWithoutInitializer(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Ref(ast.Name("r")), nil),
		ast.Return(ast.IntLit(0)),
	))
	var f *Failure
	be.True(t, errors.As(r.err, &f))
	be.Equal(t, f.Code, diag.SemaReferenceMustBeInitialized)
	be.Equal(t, r.bag.Count(diag.SevError), 1)
	be.Equal(t, r.bag.Count(diag.SevWarning), 0)
	be.Equal(t, countOp(r.entryFn(t), ir.OpAlloca), 0)
}

func TestIntToFloatAssignmentWarns(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeFloat, ast.Name("f"), nil),
		ast.Var(ast.TypeInt, ast.Name("i"), nil),
		ast.Eval(ast.Bin(ast.OpAssign, ast.Ident("f"), ast.Ident("i"))),
		ast.Return(ast.IntLit(0)),
	))
	be.Err(t, r.err, nil)
	be.Equal(t, r.bag.Count(diag.SevError), 0)
	be.Equal(t, r.bag.Count(diag.SevWarning), 1)
	be.Equal(t, r.bag.Items()[0].Message, "Implicit cast from integer to float point")
	be.Equal(t, r.codes(), []diag.Code{diag.SemaImplicitIntToFloat})
}

func TestCallArityCheckedBeforeArguments(t *testing.T) {
	callee := &ast.Variable{Ident: "foo", At: source.At(4, 3, 5)}
	proto := ast.Func(ast.TypeInt, "foo", []ast.Param{
		ast.P(ast.TypeInt, ast.Name("a")),
		ast.P(ast.TypeInt, ast.Name("b")),
	}, nil)
	proto.Decl.(*ast.FuncDeclarator).At = source.At(1, 5, 7)

	r := lowerDecls(t, proto, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("x"), nil),
		ast.Eval(ast.Call(callee, ast.Bin(ast.OpAssign, ast.Ident("x"), ast.IntLit(7)))),
		ast.Return(ast.IntLit(0)),
	))
	be.Equal(t, r.bag.Count(diag.SevError), 1)
	d := r.bag.Items()[0]
	be.Equal(t, d.Code, diag.SemaArgumentCountMismatch)
	be.Equal(t, d.Primary, source.At(4, 3, 5))
	be.Equal(t, len(d.Notes), 1)
	be.Equal(t, d.Notes[0].Loc, source.At(1, 5, 7))
	be.Equal(t, countOp(r.entryFn(t), ir.OpStore), 0)
}

func TestFailedLoopConditionKeepsBlocks(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		&ast.WhileStmt{Cond: ast.Ident("missing"), Body: ast.Body()},
		ast.Return(ast.IntLit(0)),
	))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaUndeclaredIdentifier})
	names := blockNames(r.entryFn(t))
	be.True(t, len(names) >= 4)
	be.Equal(t, names[:4], []string{"entry", "while.cond", "while.body", "while.merge"})
}

func TestStartupCallsEntry(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeInt, "main", []ast.Param{
			ast.P(ast.TypeInt, ast.Name("argc")),
			ast.P(ast.TypeChar, ast.Ptr(ast.Ptr(ast.Name("argv")))),
		}, ast.Body(ast.Return(ast.Ident("argc")))),
	)
	be.Err(t, r.err, nil)
	startup := r.fn(t, "main")
	be.Equal(t, calls(startup), []string{"__minic_main"})

	call := startup.Entry().Instrs[0]
	be.Equal(t, len(call.Args), 2)
	be.Equal(t, call.Args[0].Kind, ir.ValueConstInt)
	be.Equal(t, call.Args[1].Kind, ir.ValueConstNull)
	be.Equal(t, startup.Entry().Term.Value, call.Result)

	text, err := ir.EmitModule(r.res.Module)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(text, "define i32 @main()"))
	be.True(t, strings.Contains(text, "define i32 @__minic_main(i32 %argc, ptr %argv)"))
}

func TestMissingEntryFunction(t *testing.T) {
	r := lowerDecls(t, ast.Func(ast.TypeInt, "main", nil, nil))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaEntrypointNotFound})
	be.True(t, r.bag.Items()[0].Primary.IsZero())
	be.Equal(t, r.bag.Items()[0].Message, "Entry function 'main' not found")
	be.Equal(t, r.res.Errors, 1)
}

func TestCustomEntryName(t *testing.T) {
	opts := DefaultOptions()
	opts.EntryName = "start"
	opts.StartupName = "_start"
	r := lowerWith(t, opts, ast.Func(ast.TypeVoid, "start", nil, ast.Body()))
	be.Err(t, r.err, nil)
	be.Equal(t, calls(r.fn(t, "_start")), []string{"__minic_start"})
}

func TestUserFunctionNamedLikeEntryAlias(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeInt, "main", nil, ast.Body(ast.Return(ast.IntLit(1)))),
		ast.Func(ast.TypeInt, "__minic_main", nil, ast.Body(ast.Return(ast.IntLit(2)))),
	)
	be.Err(t, r.err, nil)
	be.Equal(t, len(r.codes()), 0)
	be.Equal(t, blockNames(r.entryFn(t)), []string{"entry", "return.after"})
	be.Equal(t, blockNames(r.fn(t, "__minic_main.1")), []string{"entry", "return.after"})
	be.Equal(t, calls(r.fn(t, "main")), []string{"__minic_main"})
}

func TestEntryAliasReservedBeforeEntry(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeInt, "__minic_main", nil, ast.Body(ast.Return(ast.IntLit(2)))),
		ast.Func(ast.TypeInt, "main", nil, ast.Body(ast.Return(ast.IntLit(1)))),
	)
	be.Err(t, r.err, nil)
	be.Equal(t, r.entryFn(t).Entry().Term.Value.Int, int64(1))
	be.Equal(t, calls(r.fn(t, "main")), []string{"__minic_main"})
	be.True(t, !r.fn(t, "__minic_main.1").IsDeclaration())
}

func TestUserFunctionNamedLikeStartup(t *testing.T) {
	opts := DefaultOptions()
	opts.EntryName = "start"
	r := lowerWith(t, opts,
		ast.Func(ast.TypeInt, "main", nil, ast.Body(ast.Return(ast.IntLit(7)))),
		ast.Func(ast.TypeInt, "start", nil, ast.Body(ast.Return(ast.Call(ast.Ident("main"))))),
	)
	be.Err(t, r.err, nil)
	be.Equal(t, len(r.codes()), 0)
	startup := r.fn(t, "main")
	be.Equal(t, blockNames(startup), []string{"entry"})
	be.Equal(t, calls(startup), []string{"__minic_start"})
	be.Equal(t, calls(r.fn(t, "__minic_start")), []string{"main.1"})
	be.Equal(t, len(calls(r.fn(t, "main.1"))), 0)
}

func TestDeclarationsContinuePastFailures(t *testing.T) {
	r := lowerDecls(t,
		ast.Var(ast.TypeInt, ast.Name("g"), nil),
		ast.Var(ast.TypeInt, ast.Name("g"), nil),
		ast.Var(ast.TypeVoid, ast.Name("v"), nil),
		mainFunc(
			ast.Eval(ast.Ident("nope")),
			ast.Eval(ast.Bin(ast.OpAssign, ast.IntLit(1), ast.IntLit(2))),
			ast.Return(ast.Ident("g")),
		),
	)
	be.Equal(t, r.codes(), []diag.Code{
		diag.SemaRedeclaration,
		diag.SemaVoidVariable,
		diag.SemaUndeclaredIdentifier,
		diag.SemaAssignToRValue,
	})
	var f *Failure
	be.True(t, errors.As(r.err, &f))
	be.Equal(t, f.Code, diag.SemaRedeclaration)
	be.Equal(t, r.res.Errors, 4)
}

func TestGlobalInitializers(t *testing.T) {
	r := lowerDecls(t,
		ast.Var(ast.TypeInt, ast.Name("k"), ast.Bin(ast.OpMul, ast.IntLit(6), ast.IntLit(7))),
		ast.Var(ast.TypeInt, ast.Name("n"), ast.Call(ast.Ident("seed"))),
		mainFunc(ast.Return(ast.Ident("n"))),
	)
	// seed is undeclared: the constant global is still complete.
	be.Equal(t, r.codes(), []diag.Code{diag.SemaUndeclaredIdentifier})
	globals := r.res.Module.Globals
	be.Equal(t, len(globals), 2)
	k, ok := globals[0].Init.ConstInt()
	be.True(t, ok)
	be.Equal(t, k, int64(42))
}

func TestGlobalInitializerRunsInStartup(t *testing.T) {
	r := lowerDecls(t,
		ast.Func(ast.TypeInt, "seed", nil, ast.Body(ast.Return(ast.IntLit(3)))),
		ast.Var(ast.TypeInt, ast.Name("n"), ast.Call(ast.Ident("seed"))),
		mainFunc(ast.Return(ast.Ident("n"))),
	)
	be.Err(t, r.err, nil)
	startup := r.fn(t, "main")
	be.Equal(t, calls(startup), []string{"seed", "__minic_main"})
	be.Equal(t, ops(startup.Entry()), []ir.Op{ir.OpCall, ir.OpStore, ir.OpCall})
}
