package lower

import (
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
)

func TestImplicitCastWarnings(t *testing.T) {
	tests := []struct {
		name   string
		target ast.BasicKind
		init   ast.Expr
		want   []diag.Code
		msg    string
	}{
		{"same type", ast.TypeInt, ast.IntLit(1), nil, ""},
		{"int to long", ast.TypeLong, ast.IntLit(1), []diag.Code{diag.SemaImplicitIntCast}, msgIntWidth},
		{"long to char", ast.TypeChar, ast.LongLit(300), []diag.Code{diag.SemaImplicitIntCast}, msgIntWidth},
		{"int to double", ast.TypeDouble, ast.IntLit(2), []diag.Code{diag.SemaImplicitIntToFloat}, msgIntToFloat},
		{"double to int", ast.TypeInt, ast.DoubleLit(2.5), []diag.Code{diag.SemaImplicitFloatToInt}, msgFloatToInt},
		{"double to float", ast.TypeFloat, ast.DoubleLit(0.5), []diag.Code{diag.SemaImplicitFloatCast}, msgFloatWidth},
		{"int to bool", ast.TypeBool, ast.IntLit(7), nil, ""},
		{"bool to int", ast.TypeInt, ast.BoolLit(true), nil, ""},
		{"bool to double", ast.TypeDouble, ast.BoolLit(true), nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := lowerDecls(t, mainFunc(
				ast.Var(tc.target, ast.Name("v"), tc.init),
				ast.Return(ast.IntLit(0)),
			))
			be.Err(t, r.err, nil)
			if tc.want == nil {
				be.Equal(t, r.bag.Len(), 0)
				return
			}
			be.Equal(t, r.codes(), tc.want)
			be.Equal(t, r.bag.Items()[0].Severity, diag.SevWarning)
			be.Equal(t, r.bag.Items()[0].Message, tc.msg)
		})
	}
}

func TestNarrowingConstantsFold(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeChar, ast.Name("c"), ast.LongLit(300)),
		ast.Return(ast.IntLit(0)),
	))
	be.Err(t, r.err, nil)
	store := r.entryFn(t).Entry().Instrs[1]
	be.Equal(t, store.Op, ir.OpStore)
	v, ok := store.Args[0].ConstInt()
	be.True(t, ok)
	be.Equal(t, v, int64(44))
}

func TestWideningRoundTrip(t *testing.T) {
	l := New(t.Context(), "t", nil, DefaultOptions())
	bi := l.builtins
	for _, n := range []int64{-128, -1, 0, 1, 127} {
		c := l.b.ConstInt(bi.Char, n)
		wide := l.intResize(c, bi.Long)
		back := l.intResize(wide, bi.Char)
		got, ok := back.ConstInt()
		be.True(t, ok)
		be.Equal(t, got, n)
	}
}

func TestPointerCastPolicy(t *testing.T) {
	body := func() *ast.FuncDeclaration {
		return mainFunc(
			ast.Var(ast.TypeInt, ast.Ptr(ast.Name("p")), nil),
			ast.Var(ast.TypeChar, ast.Ptr(ast.Name("q")), ast.Ident("p")),
			ast.Return(ast.IntLit(0)),
		)
	}

	r := lowerDecls(t, body())
	be.Err(t, r.err, nil)
	be.Equal(t, r.codes(), []diag.Code{diag.SemaImplicitPointerCast})

	opts := DefaultOptions()
	opts.PointerCasts = PolicyError
	r = lowerWith(t, opts, body())
	be.Equal(t, r.codes(), []diag.Code{diag.SemaInvalidCast})
}

func TestInvalidCasts(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Ptr(ast.Name("p")), nil),
		ast.Var(ast.TypeInt, ast.Name("i"), ast.Ident("p")),
		ast.Var(ast.TypeDouble, ast.Ptr(ast.Name("q")), ast.IntLit(0)),
		ast.Return(ast.IntLit(0)),
	))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaInvalidCast, diag.SemaInvalidCast})
	be.Equal(t, r.bag.Items()[0].Message, "Invalid cast from 'int*' to 'int'")
}

func TestReferenceBinding(t *testing.T) {
	r := lowerDecls(t, mainFunc(
		ast.Var(ast.TypeInt, ast.Name("x"), nil),
		ast.Var(ast.TypeInt, ast.Ref(ast.Name("r")), ast.Ident("x")),
		ast.Eval(ast.Bin(ast.OpAssign, ast.Ident("r"), ast.IntLit(9))),
		ast.Var(ast.TypeLong, ast.Ref(ast.Name("bad")), ast.Ident("x")),
		ast.Var(ast.TypeInt, ast.Ref(ast.Name("tmp")), ast.IntLit(1)),
		ast.Return(ast.IntLit(0)),
	))
	be.Equal(t, r.codes(), []diag.Code{diag.SemaReferenceTypeMismatch, diag.SemaRequiresLValue})
	be.Equal(t, r.bag.Items()[1].Message, "Initial value of reference must be an lvalue")

	entry := r.entryFn(t).Entry()
	// one slot for x; r aliases it
	be.Equal(t, countOp(r.entryFn(t), ir.OpAlloca), 1)
	store := entry.Instrs[1]
	be.Equal(t, store.Op, ir.OpStore)
	be.Equal(t, store.Args[1], entry.Instrs[0].Result)
}
