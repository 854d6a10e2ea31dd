package ast

// Constructors for hand-built trees. Nodes built here carry zero locations.

func IntLit(v int64) *Constant     { return &Constant{Lit: Literal{Kind: LitInt, Int: v}} }
func LongLit(v int64) *Constant    { return &Constant{Lit: Literal{Kind: LitLong, Int: v}} }
func CharLit(v rune) *Constant     { return &Constant{Lit: Literal{Kind: LitChar, Int: int64(v)}} }
func FloatLit(v float64) *Constant { return &Constant{Lit: Literal{Kind: LitFloat, Float: v}} }
func DoubleLit(v float64) *Constant {
	return &Constant{Lit: Literal{Kind: LitDouble, Float: v}}
}

func BoolLit(v bool) *Constant {
	c := &Constant{Lit: Literal{Kind: LitBool}}
	if v {
		c.Lit.Int = 1
	}
	return c
}

func Ident(name string) *Variable { return &Variable{Ident: name} }

func Bin(op BiOp, l, r Expr) *BiOpExpr { return &BiOpExpr{Op: op, Left: l, Right: r} }

func Un(op UnOp, x Expr) *UnOpExpr { return &UnOpExpr{Op: op, Operand: x} }

func Call(callee Expr, args ...Expr) *CallExpr { return &CallExpr{Callee: callee, Args: args} }

func Index(base, idx Expr) *IndexExpr { return &IndexExpr{Base: base, Index: idx} }

func Eval(x Expr) *ExprStmt { return &ExprStmt{X: x} }

func Return(x Expr) *ReturnStmt { return &ReturnStmt{X: x} }

func Body(stmts ...Stmt) *Block { return &Block{Stmts: stmts} }

func Basic(kind BasicKind) TypeSpec { return TypeSpec{Kind: kind} }

func Name(name string) *VarDeclarator { return &VarDeclarator{Ident: name} }

func Ptr(inner Declarator) *PointerDeclarator { return &PointerDeclarator{Inner: inner} }

func Ref(inner Declarator) *ReferenceDeclarator { return &ReferenceDeclarator{Inner: inner} }

func Array(inner Declarator, size Expr) *ArrayDeclarator {
	return &ArrayDeclarator{Inner: inner, Size: size}
}

// Var declares one variable of a basic type with an optional initializer.
func Var(kind BasicKind, d Declarator, init Expr) *VarDeclaration {
	return &VarDeclaration{Type: Basic(kind), Decls: []InitDecl{{Decl: d, Init: init}}}
}

// Func builds a function definition; a nil body builds a prototype.
func Func(ret BasicKind, name string, params []Param, body *Block) *FuncDeclaration {
	return &FuncDeclaration{
		Return: Basic(ret),
		Decl:   &FuncDeclarator{Ident: name, Params: params},
		Body:   body,
	}
}

func P(kind BasicKind, d Declarator) Param { return Param{Type: Basic(kind), Decl: d} }

func Unit(decls ...Decl) *DeclarationList { return &DeclarationList{Decls: decls} }
