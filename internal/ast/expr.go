package ast

import "minic/internal/source"

type Constant struct {
	Lit Literal
	At  source.Location
}

type Variable struct {
	Ident string
	At    source.Location
}

type BiOpExpr struct {
	Op          BiOp
	Left, Right Expr
	At          source.Location
}

type UnOpExpr struct {
	Op      UnOp
	Operand Expr
	At      source.Location
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	At     source.Location
}

type IndexExpr struct {
	Base, Index Expr
	At          source.Location
}

func (e *Constant) Loc() source.Location  { return e.At }
func (e *Variable) Loc() source.Location  { return e.At }
func (e *BiOpExpr) Loc() source.Location  { return e.At }
func (e *UnOpExpr) Loc() source.Location  { return e.At }
func (e *CallExpr) Loc() source.Location  { return e.At }
func (e *IndexExpr) Loc() source.Location { return e.At }

func (*Constant) isExpr()  {}
func (*Variable) isExpr()  {}
func (*BiOpExpr) isExpr()  {}
func (*UnOpExpr) isExpr()  {}
func (*CallExpr) isExpr()  {}
func (*IndexExpr) isExpr() {}
