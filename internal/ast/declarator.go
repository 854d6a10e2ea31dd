package ast

import "minic/internal/source"

type VarDeclarator struct {
	Ident string
	At    source.Location
}

// Param is one function parameter. Decl is nil for an unnamed parameter.
type Param struct {
	Type TypeSpec
	Decl Declarator
}

// FuncDeclarator is the innermost declarator of a function.
type FuncDeclarator struct {
	Ident  string
	Params []Param
	At     source.Location
}

// ArrayDeclarator wraps Inner in an array layer. Size is nil for "[]".
type ArrayDeclarator struct {
	Inner Declarator
	Size  Expr
}

type PointerDeclarator struct {
	Inner Declarator
}

type ReferenceDeclarator struct {
	Inner Declarator
}

func (d *VarDeclarator) Name() string       { return d.Ident }
func (d *FuncDeclarator) Name() string      { return d.Ident }
func (d *ArrayDeclarator) Name() string     { return innerName(d.Inner) }
func (d *PointerDeclarator) Name() string   { return innerName(d.Inner) }
func (d *ReferenceDeclarator) Name() string { return innerName(d.Inner) }

// Loc of a wrapping declarator is the location of the declared name.
func (d *VarDeclarator) Loc() source.Location       { return d.At }
func (d *FuncDeclarator) Loc() source.Location      { return d.At }
func (d *ArrayDeclarator) Loc() source.Location     { return innerLoc(d.Inner) }
func (d *PointerDeclarator) Loc() source.Location   { return innerLoc(d.Inner) }
func (d *ReferenceDeclarator) Loc() source.Location { return innerLoc(d.Inner) }

// Abstract declarators in prototypes, as in "int f(char*)", end in a nil Inner.
func innerName(d Declarator) string {
	if d == nil {
		return ""
	}
	return d.Name()
}

func innerLoc(d Declarator) source.Location {
	if d == nil {
		return source.Location{}
	}
	return d.Loc()
}

func (*VarDeclarator) isDeclarator()       {}
func (*FuncDeclarator) isDeclarator()      {}
func (*ArrayDeclarator) isDeclarator()     {}
func (*PointerDeclarator) isDeclarator()   {}
func (*ReferenceDeclarator) isDeclarator() {}

// FuncOf returns the function declarator inside d, if any.
func FuncOf(d Declarator) (*FuncDeclarator, bool) {
	for d != nil {
		switch n := d.(type) {
		case *FuncDeclarator:
			return n, true
		case *ArrayDeclarator:
			d = n.Inner
		case *PointerDeclarator:
			d = n.Inner
		case *ReferenceDeclarator:
			d = n.Inner
		default:
			return nil, false
		}
	}
	return nil, false
}

// IsReference reports whether the layer applied last, the one directly
// around the declared name, is a reference: "int *&p" declares a reference.
func IsReference(d Declarator) bool {
	last := false
	for d != nil {
		switch n := d.(type) {
		case *ArrayDeclarator:
			last = false
			d = n.Inner
		case *PointerDeclarator:
			last = false
			d = n.Inner
		case *ReferenceDeclarator:
			last = true
			d = n.Inner
		default:
			return last
		}
	}
	return last
}
