package ast

import "minic/internal/source"

// BasicKind names the base type of a declaration.
type BasicKind uint8

const (
	TypeVoid BasicKind = iota
	TypeBool
	TypeChar
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeCustom
)

var basicKindNames = [...]string{
	TypeVoid:   "void",
	TypeBool:   "bool",
	TypeChar:   "char",
	TypeShort:  "short",
	TypeInt:    "int",
	TypeLong:   "long",
	TypeFloat:  "float",
	TypeDouble: "double",
	TypeCustom: "custom",
}

func (k BasicKind) String() string {
	if int(k) < len(basicKindNames) {
		return basicKindNames[k]
	}
	return "?"
}

// ParseBasicKind maps a base type name back to its BasicKind.
func ParseBasicKind(name string) (BasicKind, bool) {
	for i, n := range basicKindNames {
		if n == name {
			return BasicKind(i), true
		}
	}
	return 0, false
}

// TypeSpec is the base type written before the declarators.
// Name is set only for TypeCustom.
type TypeSpec struct {
	Kind BasicKind
	Name string
	At   source.Location
}

// InitDecl is one declarator of a VarDeclaration with its optional initializer.
type InitDecl struct {
	Decl Declarator
	Init Expr // may be nil
}

// VarDeclaration declares variables, or function prototypes when a
// declarator is a function declarator. It is both a Decl and a Stmt.
type VarDeclaration struct {
	Type  TypeSpec
	Decls []InitDecl
	At    source.Location
}

// FuncDeclaration declares a function. Body is nil for a prototype.
type FuncDeclaration struct {
	Return TypeSpec
	Decl   Declarator
	Body   *Block
	At     source.Location
}

// DeclarationList is a whole translation unit.
type DeclarationList struct {
	Decls []Decl
}

func (d *VarDeclaration) Loc() source.Location  { return d.At }
func (d *FuncDeclaration) Loc() source.Location { return d.At }

func (*VarDeclaration) isDecl()  {}
func (*VarDeclaration) isStmt()  {}
func (*FuncDeclaration) isDecl() {}
