// Package ast defines the syntax tree consumed by the lowering core.
//
// Every syntactic category is a closed sum type: an interface with an
// unexported marker method, implemented only by the node structs of this
// package. Consumers switch over the concrete types exhaustively. The tree is
// strictly owned top-down; nodes are never shared between parents.
package ast

import "minic/internal/source"

// Node is implemented by every syntax node.
type Node interface {
	Loc() source.Location
}

// Expr is an expression node.
type Expr interface {
	Node
	isExpr()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	isStmt()
}

// Decl is a top-level declaration node.
type Decl interface {
	Node
	isDecl()
}

// Declarator wraps a base type with pointer, array, reference and function layers.
type Declarator interface {
	Node
	isDeclarator()
	// Name is the declared identifier carried by the innermost Var or Func.
	Name() string
}
