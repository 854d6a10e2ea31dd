package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/types"
)

// expr lowers e to a Value.
func (l *Lowerer) expr(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Constant:
		return l.constant(e), nil
	case *ast.Variable:
		return l.variable(e)
	case *ast.BiOpExpr:
		return l.binary(e)
	case *ast.UnOpExpr:
		return l.unary(e)
	case *ast.CallExpr:
		return l.call(e)
	case *ast.IndexExpr:
		return l.index(e)
	case nil:
		return Value{}, l.fail(diag.SemaError, source.Location{}, "missing expression")
	}
	return Value{}, l.internalError(e.Loc(), e)
}

func (l *Lowerer) constant(c *ast.Constant) Value {
	var t types.TypeID
	switch c.Lit.Kind {
	case ast.LitBool:
		t = l.builtins.Bool
	case ast.LitChar:
		t = l.builtins.Char
	case ast.LitLong:
		t = l.builtins.Long
	case ast.LitFloat:
		t = l.builtins.Float
	case ast.LitDouble:
		t = l.builtins.Double
	default:
		t = l.builtins.Int
	}
	if c.Lit.IsFloat() {
		return rvalue(l.b.ConstFloat(t, c.Lit.Float))
	}
	return rvalue(l.b.ConstInt(t, c.Lit.Int))
}

// variable resolves a name. Variables yield their storage; functions yield
// the function symbol as a plain value.
func (l *Lowerer) variable(v *ast.Variable) (Value, error) {
	b, ok := l.scope.Lookup(v.Ident)
	if !ok {
		return Value{}, l.fail(diag.SemaUndeclaredIdentifier, v.At, "Use of undeclared identifier '%s'", v.Ident)
	}
	if b.IsCallable() {
		return rvalue(b.Func.Value()), nil
	}
	return Value{Handle: b.Addr, LValue: b.LValue}, nil
}
