package ast

import "minic/internal/source"

// ExprStmt evaluates X for its effects; X is nil for the empty statement.
type ExprStmt struct {
	X  Expr
	At source.Location
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
	At   source.Location
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
	At   source.Location
}

type ForStmt struct {
	Init Stmt // may be nil
	Cond Expr // may be nil (loops forever)
	Step Expr // may be nil
	Body Stmt
	At   source.Location
}

type ReturnStmt struct {
	X  Expr // may be nil
	At source.Location
}

type Block struct {
	Stmts []Stmt
	At    source.Location
}

func (s *ExprStmt) Loc() source.Location   { return s.At }
func (s *IfStmt) Loc() source.Location     { return s.At }
func (s *WhileStmt) Loc() source.Location  { return s.At }
func (s *ForStmt) Loc() source.Location    { return s.At }
func (s *ReturnStmt) Loc() source.Location { return s.At }
func (s *Block) Loc() source.Location      { return s.At }

func (*ExprStmt) isStmt()   {}
func (*IfStmt) isStmt()     {}
func (*WhileStmt) isStmt()  {}
func (*ForStmt) isStmt()    {}
func (*ReturnStmt) isStmt() {}
func (*Block) isStmt()      {}
