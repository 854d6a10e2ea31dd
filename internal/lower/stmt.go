package lower

import (
	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/symbols"
)

// stmt lowers one statement at the current insertion point.
func (l *Lowerer) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExprStmt:
		if s.X == nil {
			return nil
		}
		_, err := l.expr(s.X)
		return err
	case *ast.IfStmt:
		return l.ifStmt(s)
	case *ast.WhileStmt:
		return l.whileStmt(s)
	case *ast.ForStmt:
		return l.forStmt(s)
	case *ast.ReturnStmt:
		return l.returnStmt(s)
	case *ast.Block:
		return l.block(s, symbols.ScopeBlock)
	case *ast.VarDeclaration:
		return l.varDecl(s)
	case nil:
		return nil
	}
	return l.internalError(s.Loc(), s)
}

// block lowers statements in a fresh scope. A failing statement does not
// stop the rest; the first failure is returned.
func (l *Lowerer) block(b *ast.Block, kind symbols.ScopeKind) error {
	restore := l.enterScope(kind)
	defer restore()
	return l.stmts(b.Stmts)
}

func (l *Lowerer) stmts(list []ast.Stmt) error {
	var first error
	for _, s := range list {
		first = firstErr(first, l.stmt(s))
	}
	return first
}

// branchTo ends the current block with a jump to target unless it already
// has a terminator.
func (l *Lowerer) branchTo(target *ir.Block) {
	if bb := l.b.InsertBlock(); bb != nil && !bb.Terminated() {
		l.b.Br(target)
	}
}

func (l *Lowerer) ifStmt(s *ast.IfStmt) error {
	fn := l.curFunc()
	thenBB := fn.NewBlock("if.then")
	elseBB := fn.NewBlock("if.else")
	mergeBB := fn.NewBlock("if.merge")

	v, err := l.expr(s.Cond)
	if err != nil {
		return err
	}
	cond, err := l.condition(v, s.Cond.Loc())
	if err != nil {
		return err
	}
	l.b.CondBr(cond, thenBB, elseBB)

	l.b.SetInsertPoint(thenBB)
	first := l.scoped(s.Then)
	l.branchTo(mergeBB)

	l.b.SetInsertPoint(elseBB)
	first = firstErr(first, l.scoped(s.Else))
	l.branchTo(mergeBB)

	l.b.SetInsertPoint(mergeBB)
	return first
}

func (l *Lowerer) whileStmt(s *ast.WhileStmt) error {
	fn := l.curFunc()
	condBB := fn.NewBlock("while.cond")
	bodyBB := fn.NewBlock("while.body")
	mergeBB := fn.NewBlock("while.merge")

	l.branchTo(condBB)
	l.b.SetInsertPoint(condBB)
	v, err := l.expr(s.Cond)
	if err != nil {
		return err
	}
	cond, err := l.condition(v, s.Cond.Loc())
	if err != nil {
		return err
	}
	l.b.CondBr(cond, bodyBB, mergeBB)

	l.b.SetInsertPoint(bodyBB)
	err = l.scoped(s.Body)
	l.branchTo(condBB)

	l.b.SetInsertPoint(mergeBB)
	return err
}

// forStmt lowers a for loop. The init clause gets its own scope enclosing
// the whole loop; a missing condition loops until a return.
func (l *Lowerer) forStmt(s *ast.ForStmt) error {
	restore := l.enterScope(symbols.ScopeBlock)
	defer restore()

	fn := l.curFunc()
	condBB := fn.NewBlock("for.cond")
	bodyBB := fn.NewBlock("for.body")
	mergeBB := fn.NewBlock("for.merge")

	if err := l.stmt(s.Init); err != nil {
		return err
	}
	l.branchTo(condBB)
	l.b.SetInsertPoint(condBB)
	if s.Cond != nil {
		v, err := l.expr(s.Cond)
		if err != nil {
			return err
		}
		cond, err := l.condition(v, s.Cond.Loc())
		if err != nil {
			return err
		}
		l.b.CondBr(cond, bodyBB, mergeBB)
	} else {
		l.b.Br(bodyBB)
	}

	l.b.SetInsertPoint(bodyBB)
	err := l.scoped(s.Body)
	if s.Step != nil && !l.b.InsertBlock().Terminated() {
		_, stepErr := l.expr(s.Step)
		err = firstErr(err, stepErr)
	}
	l.branchTo(condBB)

	l.b.SetInsertPoint(mergeBB)
	return err
}

// scoped lowers a branch or loop body. A bare declaration still gets its
// own scope so it cannot leak into the enclosing block.
func (l *Lowerer) scoped(s ast.Stmt) error {
	if b, ok := s.(*ast.Block); ok {
		return l.block(b, symbols.ScopeBlock)
	}
	restore := l.enterScope(symbols.ScopeBlock)
	defer restore()
	return l.stmt(s)
}

func (l *Lowerer) returnStmt(s *ast.ReturnStmt) error {
	fs := l.fn
	if fs == nil {
		return l.fail(diag.SemaError, s.At, "Return statement outside of a function")
	}
	void := l.types.IsVoid(fs.result)
	switch {
	case s.X == nil && !void:
		return l.fail(diag.SemaReturnTypeMismatch, s.At, "Return type should not be void")
	case s.X != nil && void:
		return l.fail(diag.SemaReturnTypeMismatch, s.At, "Return type should be void")
	}
	if s.X == nil {
		l.b.RetVoid()
	} else {
		v, err := l.expr(s.X)
		if err != nil {
			return err
		}
		v, err = l.castTo(v, fs.result, fs.resultRef, s.X.Loc())
		if err != nil {
			return err
		}
		l.b.Ret(v.Handle)
	}
	l.b.SetInsertPoint(fs.ir.NewBlock("return.after"))
	return nil
}
