package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/types"
)

const notePrevious = "previous declaration is here"

// decl lowers one top-level declaration.
func (l *Lowerer) decl(d ast.Decl) error {
	switch d := d.(type) {
	case *ast.VarDeclaration:
		return l.varDecl(d)
	case *ast.FuncDeclaration:
		return l.funcDecl(d)
	case nil:
		return nil
	}
	return l.internalError(d.Loc(), d)
}

// varDecl lowers every declarator of d, continuing past failures.
func (l *Lowerer) varDecl(d *ast.VarDeclaration) error {
	base, err := l.baseType(d.Type)
	if err != nil {
		return err
	}
	var first error
	for _, id := range d.Decls {
		first = firstErr(first, l.initDecl(base, id))
	}
	return first
}

func (l *Lowerer) initDecl(base types.TypeID, id ast.InitDecl) error {
	if id.Decl == nil {
		return l.fail(diag.SemaInvalidDeclarator, source.Location{}, "Declaration does not declare anything")
	}
	if fd, ok := ast.FuncOf(id.Decl); ok {
		if id.Init != nil {
			return l.fail(diag.SemaInvalidDeclarator, fd.At, "Illegal initializer for function '%s'", fd.Ident)
		}
		return l.function(base, id.Decl, nil)
	}

	name, loc := id.Decl.Name(), id.Decl.Loc()
	if !l.scope.TryReserve(name) {
		prev, _ := l.scope.LookupLocal(name)
		return l.failNote(diag.SemaRedeclaration, loc, prev.Decl, notePrevious, "Redeclaration of '%s'", name)
	}
	t, isRef, err := l.bindDeclarator(id.Decl, base, false, false)
	if err != nil {
		return err
	}
	if isRef && id.Init == nil {
		return l.fail(diag.SemaReferenceMustBeInitialized, loc, "Reference requires an initializer")
	}
	if l.types.IsVoid(t) {
		return l.fail(diag.SemaVoidVariable, loc, "Void type is not allowed here")
	}

	global := l.fn == nil
	b := &symbols.Binding{Kind: symbols.SymbolVar, Name: name, Decl: loc, Type: t}
	if global {
		b.Flags |= symbols.SymbolFlagGlobal
	}
	if isRef {
		return l.bindReference(b, id.Init, global)
	}

	var slot *ir.Value
	var g *ir.Global
	if global {
		g = l.mod.NewGlobal(name, t)
		slot = g.Value()
	} else {
		slot = l.b.Alloca(t, name)
	}
	b.Addr, b.LValue = slot, true
	if l.types.KindOf(t) == types.KindArray {
		b.Addr, b.LValue = l.decay(slot, t), false
	}
	l.scope.Bind(b)
	if id.Init == nil {
		return nil
	}

	v, err := l.expr(id.Init)
	if err != nil {
		return err
	}
	if global {
		// Constant initializers become the global's static value; others
		// run in the startup function.
		cv, err := l.castTo(v, t, false, id.Init.Loc())
		if err != nil {
			return err
		}
		if cv.Handle.IsConst() {
			g.Init = cv.Handle
			return nil
		}
		l.b.Store(cv.Handle, slot)
		return nil
	}
	_, err = l.assign(lvalue(slot), v, id.Init.Loc())
	return err
}

// bindReference makes b alias the storage of init.
func (l *Lowerer) bindReference(b *symbols.Binding, init ast.Expr, global bool) error {
	v, err := l.expr(init)
	if err != nil {
		return err
	}
	v, err = l.castTo(v, b.Type, true, init.Loc())
	if err != nil {
		return err
	}
	if global && !v.Handle.IsConst() {
		return l.fail(diag.SemaRequiresLValue, init.Loc(), "Global reference must be bound to an object with static storage")
	}
	b.Flags |= symbols.SymbolFlagReference
	b.Addr, b.LValue = v.Handle, true
	l.scope.Bind(b)
	return nil
}

func (l *Lowerer) funcDecl(d *ast.FuncDeclaration) error {
	base, err := l.baseType(d.Return)
	if err != nil {
		return err
	}
	return l.function(base, d.Decl, d.Body)
}

// function declares the function named by decl and lowers body when present.
func (l *Lowerer) function(base types.TypeID, decl ast.Declarator, body *ast.Block) error {
	fd, ok := ast.FuncOf(decl)
	if !ok {
		loc := source.Location{}
		if decl != nil {
			loc = decl.Loc()
		}
		return l.fail(diag.SemaInvalidDeclarator, loc, "Function declaration requires a parameter list")
	}
	if body != nil && l.fn != nil {
		return l.fail(diag.SemaInvalidDeclarator, fd.At, "Function definition is not allowed here")
	}
	fnType, _, err := l.bindDeclarator(decl, base, false, false)
	if err != nil {
		return err
	}
	b, err := l.declareFunc(fd, fnType, body != nil)
	if err != nil || body == nil {
		return err
	}
	return l.funcBody(b, fd, body)
}

// declareFunc binds the function name in the current scope, reusing a
// compatible earlier declaration of the same source name. The entry
// function gets the reserved alias symbol so the startup function can take
// its place; other functions never share an IR function with either.
func (l *Lowerer) declareFunc(fd *ast.FuncDeclarator, fnType types.TypeID, define bool) (*symbols.Binding, error) {
	name := fd.Ident
	if prev, ok := l.scope.LookupLocal(name); ok {
		if !prev.IsCallable() || prev.Type != fnType {
			return nil, l.failNote(diag.SemaRedeclaration, fd.At, prev.Decl, notePrevious, "Redeclaration of '%s'", name)
		}
		if define && prev.Has(symbols.SymbolFlagDefined) {
			return nil, l.failNote(diag.SemaRedeclaration, fd.At, prev.Decl, "previous definition is here", "Redefinition of '%s'", name)
		}
		if define {
			prev.Flags |= symbols.SymbolFlagDefined
			prev.Decl = fd.At
			l.funcDecls[prev.Func] = fd.At
		}
		return prev, nil
	}

	f, ok := l.userFuncs[name]
	if !ok || f.Type != fnType {
		sym := name
		if name == l.opts.EntryName {
			l.mod.Release(l.opts.EntryAlias)
			sym = l.opts.EntryAlias
		}
		f = l.mod.NewFunc(sym, fnType)
		if !ok {
			l.userFuncs[name] = f
		}
	}
	if _, seen := l.funcDecls[f]; !seen || define {
		l.funcDecls[f] = fd.At
	}
	b := &symbols.Binding{
		Kind:  symbols.SymbolFunction,
		Name:  name,
		Decl:  fd.At,
		Flags: symbols.SymbolFlagGlobal,
		Type:  fnType,
		Func:  f,
	}
	if define {
		b.Flags |= symbols.SymbolFlagDefined
	}
	l.scope.Bind(b)
	return b, nil
}

// funcBody lowers the body of a function whose binding already exists.
func (l *Lowerer) funcBody(b *symbols.Binding, fd *ast.FuncDeclarator, body *ast.Block) error {
	f := b.Func
	info, ok := l.types.FnInfo(b.Type)
	if !ok {
		return l.internalError(fd.At, fd)
	}

	savedBB, savedFn := l.b.InsertBlock(), l.fn
	restore := l.enterScope(symbols.ScopeFunction)
	defer func() {
		restore()
		l.fn = savedFn
		l.b.SetInsertPoint(savedBB)
	}()
	l.fn = &funcState{name: fd.Ident, ir: f, result: info.Result, resultRef: info.ResultRef}
	l.b.SetInsertPoint(f.NewBlock("entry"))

	var first error
	for i, p := range params(fd) {
		if p.Decl == nil || p.Decl.Name() == "" {
			continue
		}
		name, loc := p.Decl.Name(), p.Decl.Loc()
		arg := f.Params[i]
		arg.Name = name
		if !l.scope.TryReserve(name) {
			prev, _ := l.scope.LookupLocal(name)
			first = firstErr(first, l.failNote(diag.SemaRedeclaration, loc, prev.Decl, notePrevious, "Redeclaration of '%s'", name))
			continue
		}
		pb := &symbols.Binding{Kind: symbols.SymbolParam, Name: name, Decl: loc, Type: info.Params[i], LValue: true}
		if info.Refs[i] {
			pb.Flags |= symbols.SymbolFlagReference
			pb.Addr = arg
		} else {
			pb.Addr = l.b.Alloca(info.Params[i], name)
			l.b.Store(arg, pb.Addr)
		}
		l.scope.Bind(pb)
	}

	first = firstErr(first, l.block(body, symbols.ScopeBlock))
	return firstErr(first, l.finishFunc(fd, first == nil))
}

// finishFunc terminates the last block of the current function. Non-void
// functions get a zero return; when that return is reachable in a body that
// lowered cleanly the missing-return policy applies.
func (l *Lowerer) finishFunc(fd *ast.FuncDeclarator, clean bool) error {
	f := l.fn.ir
	tail := l.b.InsertBlock()
	if tail == nil || tail.Terminated() {
		return nil
	}
	if f.ReturnsVoid() {
		l.b.RetVoid()
		return nil
	}
	var err error
	if clean && ir.Reachable(f)[tail] {
		msg := "Control may reach end of non-void function '" + fd.Ident + "'"
		switch l.opts.MissingReturn {
		case PolicyWarn:
			l.warn(diag.SemaMissingReturn, fd.At, msg)
		case PolicyError:
			err = l.fail(diag.SemaMissingReturn, fd.At, "%s", msg)
		}
	}
	l.b.Ret(l.b.Zero(f.Result))
	return err
}
