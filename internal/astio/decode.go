package astio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"

	"minic/internal/ast"
	"minic/internal/source"
)

// Decode reads one interchange tree from r and converts it.
func Decode(r io.Reader, format Format) (*ast.DeclarationList, error) {
	var root Node
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("astio: decode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&root); err != nil {
			return nil, fmt.Errorf("astio: decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("astio: unsupported format %s", format)
	}
	return Convert(&root)
}

// DecodeFile decodes the file at path, choosing the format by extension.
func DecodeFile(path string) (*ast.DeclarationList, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Convert turns a wire tree rooted at a unit node into an AST.
func Convert(root *Node) (*ast.DeclarationList, error) {
	c := &converter{}
	return c.unit(root)
}

// ShapeError reports a malformed node together with its path from the root.
type ShapeError struct {
	Path string
	Msg  string
}

func (e *ShapeError) Error() string {
	return "astio: " + e.Path + ": " + e.Msg
}

type converter struct {
	path []string
}

func (c *converter) push(n *Node, i int) func() {
	seg := n.Kind
	if i >= 0 {
		seg = fmt.Sprintf("%s[%d]", n.Kind, i)
	}
	c.path = append(c.path, seg)
	return func() { c.path = c.path[:len(c.path)-1] }
}

func (c *converter) errorf(format string, args ...any) error {
	path := strings.Join(c.path, "/")
	if path == "" {
		path = "<root>"
	}
	return &ShapeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// arity checks the child count of n against [lo, hi].
func (c *converter) arity(n *Node, lo, hi int) error {
	if got := len(n.Children); got < lo || got > hi {
		if lo == hi {
			return c.errorf("%s expects %d children, got %d", n.Kind, lo, got)
		}
		return c.errorf("%s expects %d to %d children, got %d", n.Kind, lo, hi, got)
	}
	return nil
}

func (c *converter) child(n *Node, i int) *Node {
	if i < len(n.Children) {
		if ch := n.Children[i]; ch != nil && ch.Kind != "empty" {
			return ch
		}
	}
	return nil
}

func loc(n *Node) source.Location {
	var l source.Location
	switch len(n.Loc) {
	case 3:
		l.ColEnd = n.Loc[2]
		fallthrough
	case 2:
		l.ColStart = n.Loc[1]
		fallthrough
	case 1:
		l.Row = n.Loc[0]
	}
	if len(n.Loc) == 2 {
		l.ColEnd = l.ColStart
	}
	return l
}

// ident normalises an identifier to NFC so canonically equivalent
// spellings resolve to the same binding.
func ident(s string) string {
	return norm.NFC.String(s)
}

func (c *converter) unit(n *Node) (*ast.DeclarationList, error) {
	if n == nil || n.Kind != "unit" {
		kind := "<nil>"
		if n != nil {
			kind = n.Kind
		}
		return nil, c.errorf("root must be a unit node, got %q", kind)
	}
	defer c.push(n, -1)()
	out := &ast.DeclarationList{Decls: make([]ast.Decl, 0, len(n.Children))}
	for i, ch := range n.Children {
		d, err := c.decl(ch, i)
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, d)
	}
	return out, nil
}

func (c *converter) decl(n *Node, i int) (ast.Decl, error) {
	if n == nil {
		return nil, c.errorf("declaration %d is missing", i)
	}
	switch n.Kind {
	case "var_decl":
		return c.varDecl(n, i)
	case "func_decl":
		return c.funcDecl(n, i)
	}
	return nil, c.errorf("unknown declaration kind %q", n.Kind)
}

func (c *converter) typeSpec(n *Node) (ast.TypeSpec, error) {
	if n.Type == "" {
		return ast.TypeSpec{}, c.errorf("%s requires a type", n.Kind)
	}
	ts := ast.TypeSpec{At: loc(n)}
	if k, ok := ast.ParseBasicKind(n.Type); ok && k != ast.TypeCustom {
		ts.Kind = k
		return ts, nil
	}
	ts.Kind = ast.TypeCustom
	ts.Name = ident(n.Type)
	return ts, nil
}

func (c *converter) varDecl(n *Node, i int) (*ast.VarDeclaration, error) {
	defer c.push(n, i)()
	ts, err := c.typeSpec(n)
	if err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, c.errorf("var_decl needs at least one init_decl")
	}
	out := &ast.VarDeclaration{Type: ts, At: loc(n)}
	for j, ch := range n.Children {
		if ch == nil || ch.Kind != "init_decl" {
			return nil, c.errorf("child %d must be an init_decl", j)
		}
		id, err := c.initDecl(ch, j)
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, id)
	}
	return out, nil
}

func (c *converter) initDecl(n *Node, i int) (ast.InitDecl, error) {
	defer c.push(n, i)()
	if err := c.arity(n, 1, 2); err != nil {
		return ast.InitDecl{}, err
	}
	d, err := c.declarator(n.Children[0], 0)
	if err != nil {
		return ast.InitDecl{}, err
	}
	out := ast.InitDecl{Decl: d}
	if init := c.child(n, 1); init != nil {
		if out.Init, err = c.expr(init, 1); err != nil {
			return ast.InitDecl{}, err
		}
	}
	return out, nil
}

func (c *converter) funcDecl(n *Node, i int) (*ast.FuncDeclaration, error) {
	defer c.push(n, i)()
	if err := c.arity(n, 1, 2); err != nil {
		return nil, err
	}
	ts, err := c.typeSpec(n)
	if err != nil {
		return nil, err
	}
	d, err := c.declarator(n.Children[0], 0)
	if err != nil {
		return nil, err
	}
	out := &ast.FuncDeclaration{Return: ts, Decl: d, At: loc(n)}
	if body := c.child(n, 1); body != nil {
		if body.Kind != "block" {
			return nil, c.errorf("function body must be a block, got %q", body.Kind)
		}
		if out.Body, err = c.block(body, 1); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *converter) declarator(n *Node, i int) (ast.Declarator, error) {
	if n == nil {
		return nil, c.errorf("declarator %d is missing", i)
	}
	defer c.push(n, i)()
	switch n.Kind {
	case "name":
		if n.Name == "" {
			return nil, c.errorf("name declarator without a name")
		}
		return &ast.VarDeclarator{Ident: ident(n.Name), At: loc(n)}, nil
	case "func":
		fd := &ast.FuncDeclarator{Ident: ident(n.Name), At: loc(n)}
		for j, ch := range n.Children {
			p, err := c.param(ch, j)
			if err != nil {
				return nil, err
			}
			fd.Params = append(fd.Params, p)
		}
		return fd, nil
	case "pointer", "reference":
		if err := c.arity(n, 1, 1); err != nil {
			return nil, err
		}
		inner, err := c.declarator(n.Children[0], 0)
		if err != nil {
			return nil, err
		}
		if n.Kind == "pointer" {
			return &ast.PointerDeclarator{Inner: inner}, nil
		}
		return &ast.ReferenceDeclarator{Inner: inner}, nil
	case "array":
		if err := c.arity(n, 1, 2); err != nil {
			return nil, err
		}
		inner, err := c.declarator(n.Children[0], 0)
		if err != nil {
			return nil, err
		}
		ad := &ast.ArrayDeclarator{Inner: inner}
		if size := c.child(n, 1); size != nil {
			if ad.Size, err = c.expr(size, 1); err != nil {
				return nil, err
			}
		}
		return ad, nil
	}
	return nil, c.errorf("unknown declarator kind %q", n.Kind)
}

func (c *converter) param(n *Node, i int) (ast.Param, error) {
	if n == nil || n.Kind != "param" {
		return ast.Param{}, c.errorf("child %d must be a param", i)
	}
	defer c.push(n, i)()
	if err := c.arity(n, 0, 1); err != nil {
		return ast.Param{}, err
	}
	ts, err := c.typeSpec(n)
	if err != nil {
		return ast.Param{}, err
	}
	p := ast.Param{Type: ts}
	if d := c.child(n, 0); d != nil {
		if p.Decl, err = c.declarator(d, 0); err != nil {
			return ast.Param{}, err
		}
	}
	return p, nil
}
