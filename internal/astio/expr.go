package astio

import "minic/internal/ast"

func (c *converter) expr(n *Node, i int) (ast.Expr, error) {
	if n == nil {
		return nil, c.errorf("expression %d is missing", i)
	}
	defer c.push(n, i)()
	at := loc(n)
	switch n.Kind {
	case "const":
		if err := c.arity(n, 0, 0); err != nil {
			return nil, err
		}
		if n.Lit == nil {
			return nil, c.errorf("const without lit")
		}
		kind, ok := ast.ParseLitKind(n.Lit.Kind)
		if !ok {
			return nil, c.errorf("unknown literal kind %q", n.Lit.Kind)
		}
		return &ast.Constant{Lit: ast.Literal{Kind: kind, Int: n.Lit.Int, Float: n.Lit.Float}, At: at}, nil

	case "var":
		if n.Name == "" {
			return nil, c.errorf("var without a name")
		}
		return &ast.Variable{Ident: ident(n.Name), At: at}, nil

	case "binary":
		op, ok := ast.ParseBiOp(n.Op)
		if !ok {
			return nil, c.errorf("unknown binary operator %q", n.Op)
		}
		kids, err := c.exprs(n, 2, 2)
		if err != nil {
			return nil, err
		}
		return &ast.BiOpExpr{Op: op, Left: kids[0], Right: kids[1], At: at}, nil

	case "unary":
		op, ok := ast.ParseUnOp(n.Op)
		if !ok {
			return nil, c.errorf("unknown unary operator %q", n.Op)
		}
		kids, err := c.exprs(n, 1, 1)
		if err != nil {
			return nil, err
		}
		return &ast.UnOpExpr{Op: op, Operand: kids[0], At: at}, nil

	case "call":
		kids, err := c.exprs(n, 1, -1)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Callee: kids[0], Args: kids[1:], At: at}, nil

	case "index":
		kids, err := c.exprs(n, 2, 2)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Base: kids[0], Index: kids[1], At: at}, nil
	}
	return nil, c.errorf("unknown expression kind %q", n.Kind)
}

// exprs converts all children of n as expressions; hi < 0 means unbounded.
func (c *converter) exprs(n *Node, lo, hi int) ([]ast.Expr, error) {
	if hi < 0 {
		hi = len(n.Children)
		if hi < lo {
			hi = lo
		}
	}
	if err := c.arity(n, lo, hi); err != nil {
		return nil, err
	}
	out := make([]ast.Expr, len(n.Children))
	for i, ch := range n.Children {
		e, err := c.expr(ch, i)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
