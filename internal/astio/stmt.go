package astio

import "minic/internal/ast"

func (c *converter) stmt(n *Node, i int) (ast.Stmt, error) {
	if n == nil {
		return nil, c.errorf("statement %d is missing", i)
	}
	switch n.Kind {
	case "var_decl":
		return c.varDecl(n, i)
	case "block":
		return c.block(n, i)
	}
	defer c.push(n, i)()
	at := loc(n)
	switch n.Kind {
	case "expr", "return":
		if err := c.arity(n, 0, 1); err != nil {
			return nil, err
		}
		var x ast.Expr
		if ch := c.child(n, 0); ch != nil {
			var err error
			if x, err = c.expr(ch, 0); err != nil {
				return nil, err
			}
		}
		if n.Kind == "return" {
			return &ast.ReturnStmt{X: x, At: at}, nil
		}
		return &ast.ExprStmt{X: x, At: at}, nil

	case "empty":
		return &ast.ExprStmt{At: at}, nil

	case "if":
		if err := c.arity(n, 2, 3); err != nil {
			return nil, err
		}
		cond, err := c.expr(n.Children[0], 0)
		if err != nil {
			return nil, err
		}
		then, err := c.stmt(n.Children[1], 1)
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Cond: cond, Then: then, At: at}
		if els := c.child(n, 2); els != nil {
			if s.Else, err = c.stmt(els, 2); err != nil {
				return nil, err
			}
		}
		return s, nil

	case "while":
		if err := c.arity(n, 2, 2); err != nil {
			return nil, err
		}
		cond, err := c.expr(n.Children[0], 0)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(n.Children[1], 1)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body, At: at}, nil

	case "for":
		return c.forStmt(n)
	}
	return nil, c.errorf("unknown statement kind %q", n.Kind)
}

func (c *converter) forStmt(n *Node) (*ast.ForStmt, error) {
	if err := c.arity(n, 4, 4); err != nil {
		return nil, err
	}
	s := &ast.ForStmt{At: loc(n)}
	var err error
	if init := c.child(n, 0); init != nil {
		if s.Init, err = c.stmt(init, 0); err != nil {
			return nil, err
		}
	}
	if cond := c.child(n, 1); cond != nil {
		if s.Cond, err = c.expr(cond, 1); err != nil {
			return nil, err
		}
	}
	if step := c.child(n, 2); step != nil {
		if s.Step, err = c.expr(step, 2); err != nil {
			return nil, err
		}
	}
	if s.Body, err = c.stmt(n.Children[3], 3); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *converter) block(n *Node, i int) (*ast.Block, error) {
	defer c.push(n, i)()
	b := &ast.Block{At: loc(n), Stmts: make([]ast.Stmt, 0, len(n.Children))}
	for j, ch := range n.Children {
		s, err := c.stmt(ch, j)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	return b, nil
}
