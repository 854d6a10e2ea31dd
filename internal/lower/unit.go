package lower

import (
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/types"
)

// Unit lowers every declaration of u, then completes the startup function
// that calls the entry function. Failures in one declaration do not stop
// the others; the first one is returned.
func (l *Lowerer) Unit(u *ast.DeclarationList) error {
	int32T := l.builtins.Int
	l.startup = l.mod.NewFunc(l.opts.StartupName, l.types.RegisterFn(types.FnInfo{Result: int32T}))
	l.mod.Reserve(l.opts.EntryAlias)
	l.b.SetInsertPoint(l.startup.NewBlock("entry"))

	var first error
	if u != nil {
		for _, d := range u.Decls {
			first = firstErr(first, l.traced(d))
		}
	}
	first = firstErr(first, l.callEntry())

	if first == nil {
		if err := ir.Validate(l.mod); err != nil {
			return fmt.Errorf("lower: invalid module: %w", err)
		}
	}
	return first
}

func (l *Lowerer) traced(d ast.Decl) error {
	errs, warns := l.errors, l.warnings
	span := l.beginSpan(declName(d))
	err := l.decl(d)
	span.End(countDetail(l.errors-errs, l.warnings-warns))
	return err
}

// callEntry finishes the startup function: the entry function is called
// with zero arguments and its integral result becomes the exit status.
func (l *Lowerer) callEntry() error {
	var err error
	status := l.b.ConstInt(l.builtins.Int, 0)
	b, ok := l.scope.LookupLocal(l.opts.EntryName)
	switch {
	case !ok || !b.IsCallable() || !b.Has(symbols.SymbolFlagDefined):
		err = l.fail(diag.SemaEntrypointNotFound, source.Location{}, "Entry function '%s' not found", l.opts.EntryName)
	default:
		info, _ := l.types.FnInfo(b.Type)
		args := make([]*ir.Value, len(info.Params))
		for i, p := range info.Params {
			if info.Refs[i] {
				args[i] = l.b.Null(l.types.PointerTo(p))
			} else {
				args[i] = l.b.Zero(p)
			}
		}
		res := l.b.Call(b.Func, args...)
		if !info.ResultRef && l.types.IsIntegral(info.Result) {
			status = l.intResize(res, l.builtins.Int)
		}
	}
	l.b.Ret(status)
	return err
}

func declName(d ast.Decl) string {
	switch d := d.(type) {
	case *ast.FuncDeclaration:
		if d.Decl != nil {
			return "func " + d.Decl.Name()
		}
	case *ast.VarDeclaration:
		if len(d.Decls) > 0 && d.Decls[0].Decl != nil {
			return "var " + d.Decls[0].Decl.Name()
		}
	}
	return "decl"
}
