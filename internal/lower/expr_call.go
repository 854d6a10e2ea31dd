package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/types"
)

// call lowers a direct call. The argument count is checked before any
// argument is evaluated.
func (l *Lowerer) call(e *ast.CallExpr) (Value, error) {
	callee, err := l.expr(e.Callee)
	if err != nil {
		return Value{}, err
	}
	h := callee.Handle
	if callee.LValue || h.Kind != ir.ValueFunc || h.Func == nil {
		return Value{}, l.fail(diag.SemaNotCallable, e.At,
			"Called object type '%s' is not a function", l.label(l.typeOf(callee)))
	}
	fn := h.Func
	info, ok := l.types.FnInfo(fn.Type)
	if !ok {
		return Value{}, l.internalError(e.At, e)
	}
	if len(e.Args) != len(info.Params) {
		return Value{}, l.failNote(diag.SemaArgumentCountMismatch, e.Callee.Loc(), l.funcDecls[fn],
			"'"+fn.Name+"' declared here",
			"Function expects %d arguments, but %d were provided", len(info.Params), len(e.Args))
	}
	args := make([]*ir.Value, 0, len(e.Args))
	for i, a := range e.Args {
		v, err := l.expr(a)
		if err != nil {
			return Value{}, err
		}
		v, err = l.castTo(v, info.Params[i], info.Refs[i], a.Loc())
		if err != nil {
			return Value{}, err
		}
		args = append(args, v.Handle)
	}
	res := l.b.Call(fn, args...)
	if info.ResultRef {
		return lvalue(res), nil
	}
	return rvalue(res), nil
}

// index lowers base[idx] to the address of the selected element.
func (l *Lowerer) index(e *ast.IndexExpr) (Value, error) {
	base, err := l.expr(e.Base)
	if err != nil {
		return Value{}, err
	}
	idx, err := l.expr(e.Index)
	if err != nil {
		return Value{}, err
	}
	b := l.deref(base)
	bt := b.Handle.Type
	if !l.types.IsPointer(bt) {
		return Value{}, l.fail(diag.SemaInvalidIndexOperand, e.Base.Loc(),
			"Subscripted value of type '%s' is not a pointer or array", l.label(bt))
	}
	i := l.deref(idx)
	if !l.types.IsIntegral(i.Handle.Type) {
		return Value{}, l.fail(diag.SemaIndexNotInteger, e.Index.Loc(),
			"Array subscript of type '%s' is not an integer", l.label(i.Handle.Type))
	}
	elem := l.types.Elem(bt)
	if l.types.KindOf(elem) == types.KindVoid {
		return Value{}, l.fail(diag.SemaInvalidIndexOperand, e.Base.Loc(), "Subscript of pointer to void")
	}
	return lvalue(l.b.GEP(elem, b.Handle, bt, l.toIndex(i.Handle))), nil
}
