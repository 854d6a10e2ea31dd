package lower

import (
	"fortio.org/safecast"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/types"
)

// baseType resolves the type written before the declarators.
func (l *Lowerer) baseType(ts ast.TypeSpec) (types.TypeID, error) {
	switch ts.Kind {
	case ast.TypeVoid:
		return l.builtins.Void, nil
	case ast.TypeBool:
		return l.builtins.Bool, nil
	case ast.TypeChar:
		return l.builtins.Char, nil
	case ast.TypeShort:
		return l.builtins.Short, nil
	case ast.TypeInt:
		return l.builtins.Int, nil
	case ast.TypeLong:
		return l.builtins.Long, nil
	case ast.TypeFloat:
		return l.builtins.Float, nil
	case ast.TypeDouble:
		return l.builtins.Double, nil
	case ast.TypeCustom:
		l.types.RegisterCustom(ts.Name)
		return types.NoTypeID, l.fail(diag.SemaUnsupportedType, ts.At, "Type '%s' is not supported", ts.Name)
	}
	return types.NoTypeID, l.fail(diag.SemaUnsupportedType, ts.At, "Unknown type")
}

// bindDeclarator wraps base in the layers of d, outermost first, and returns
// the declared type together with whether the name is a reference. For
// function declarators the function type is returned. In parameter lists an
// array layer next to the name becomes a pointer to the element type.
func (l *Lowerer) bindDeclarator(d ast.Declarator, base types.TypeID, isRef, param bool) (types.TypeID, bool, error) {
	switch d := d.(type) {
	case nil:
		return base, isRef, nil
	case *ast.VarDeclarator:
		return base, isRef, nil
	case *ast.FuncDeclarator:
		fnType, err := l.bindFunc(d, base, isRef)
		return fnType, false, err
	case *ast.PointerDeclarator:
		if isRef {
			return types.NoTypeID, false, l.fail(diag.SemaPointerToReference, d.Loc(), "Pointer to reference is not allowed")
		}
		return l.bindDeclarator(d.Inner, l.types.PointerTo(base), false, param)
	case *ast.ReferenceDeclarator:
		if isRef {
			return types.NoTypeID, false, l.fail(diag.SemaReferenceOfReference, d.Loc(), "Reference to reference is not allowed")
		}
		return l.bindDeclarator(d.Inner, base, true, param)
	case *ast.ArrayDeclarator:
		if isRef {
			return types.NoTypeID, false, l.fail(diag.SemaArrayOfReference, d.Loc(), "Array of reference is not allowed")
		}
		if l.types.IsVoid(base) {
			return types.NoTypeID, false, l.fail(diag.SemaVoidVariable, d.Loc(), "Array of void is not allowed")
		}
		if _, ok := d.Inner.(*ast.VarDeclarator); (ok || d.Inner == nil) && param {
			return l.types.PointerTo(base), false, nil
		}
		count, err := l.arraySize(d)
		if err != nil {
			return types.NoTypeID, false, err
		}
		return l.bindDeclarator(d.Inner, l.types.ArrayOf(base, count), false, param)
	}
	return types.NoTypeID, false, l.internalError(d.Loc(), d)
}

// arraySize folds the size expression of d to a positive constant.
func (l *Lowerer) arraySize(d *ast.ArrayDeclarator) (uint32, error) {
	if d.Size == nil {
		return 0, l.fail(diag.SemaInvalidArraySize, d.Loc(), "Array size is required")
	}
	v, err := l.expr(d.Size)
	if err != nil {
		return 0, err
	}
	v = l.deref(v)
	n, ok := v.Handle.ConstInt()
	if !ok || l.types.KindOf(v.Handle.Type) != types.KindInt {
		return 0, l.fail(diag.SemaInvalidArraySize, d.Size.Loc(), "Array size must be an integer constant expression")
	}
	if n <= 0 {
		return 0, l.fail(diag.SemaInvalidArraySize, d.Size.Loc(), "Array size must be positive")
	}
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, l.fail(diag.SemaInvalidArraySize, d.Size.Loc(), "Array is too large")
	}
	return count, nil
}

// params returns the parameter list of d; "(void)" declares none.
func params(d *ast.FuncDeclarator) []ast.Param {
	if len(d.Params) == 1 && d.Params[0].Type.Kind == ast.TypeVoid {
		if p := d.Params[0].Decl; p == nil || (p.Name() == "" && isPlainName(p)) {
			return nil
		}
	}
	return d.Params
}

func isPlainName(d ast.Declarator) bool {
	_, ok := d.(*ast.VarDeclarator)
	return ok
}

// bindFunc builds the function type of d returning result.
func (l *Lowerer) bindFunc(d *ast.FuncDeclarator, result types.TypeID, resultRef bool) (types.TypeID, error) {
	switch l.types.KindOf(result) {
	case types.KindArray:
		return types.NoTypeID, l.fail(diag.SemaInvalidDeclarator, d.At, "Function cannot return an array")
	case types.KindFn:
		return types.NoTypeID, l.fail(diag.SemaInvalidDeclarator, d.At, "Function cannot return a function")
	}
	if resultRef && l.types.IsVoid(result) {
		return types.NoTypeID, l.fail(diag.SemaVoidVariable, d.At, "Reference to void is not allowed")
	}
	list := params(d)
	info := types.FnInfo{
		Params:    make([]types.TypeID, 0, len(list)),
		Refs:      make([]bool, 0, len(list)),
		Result:    result,
		ResultRef: resultRef,
	}
	var first error
	for _, p := range list {
		pt, ref, err := l.bindParam(p)
		if err != nil {
			first = firstErr(first, err)
			continue
		}
		info.Params = append(info.Params, pt)
		info.Refs = append(info.Refs, ref)
	}
	if first != nil {
		return types.NoTypeID, first
	}
	return l.types.RegisterFn(info), nil
}

func (l *Lowerer) bindParam(p ast.Param) (types.TypeID, bool, error) {
	base, err := l.baseType(p.Type)
	if err != nil {
		return types.NoTypeID, false, err
	}
	pt, ref, err := l.bindDeclarator(p.Decl, base, false, true)
	if err != nil {
		return types.NoTypeID, false, err
	}
	loc := p.Type.At
	if p.Decl != nil {
		loc = p.Decl.Loc()
	}
	switch l.types.KindOf(pt) {
	case types.KindVoid:
		return types.NoTypeID, false, l.fail(diag.SemaVoidVariable, loc, "Parameter cannot have void type")
	case types.KindFn:
		return types.NoTypeID, false, l.fail(diag.SemaInvalidDeclarator, loc, "Parameter cannot be a function")
	}
	return pt, ref, nil
}
