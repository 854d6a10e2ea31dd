package ir

import (
	"fmt"
	"strconv"
	"strings"

	"minic/internal/types"
)

// Emitter renders a module as LLVM textual IR with opaque pointers.
type Emitter struct {
	mod   *Module
	types *types.Interner
	buf   strings.Builder
}

type funcEmitter struct {
	emitter *Emitter
	f       *Func
	names   map[*Instr]string
	params  map[*Value]string
	blocks  map[*Block]string
	taken   map[string]struct{}
	tmpID   int
}

// EmitModule prints m. It fails on values whose type has no IR representation.
func EmitModule(m *Module) (string, error) {
	if m == nil {
		return "", nil
	}
	e := &Emitter{mod: m, types: m.Types}
	if m.Name != "" {
		fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n", m.Name)
	}
	if err := e.emitGlobals(); err != nil {
		return "", err
	}
	for _, f := range m.Funcs {
		if err := e.emitFunction(f); err != nil {
			return "", fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return e.buf.String(), nil
}

func (e *Emitter) emitGlobals() error {
	if len(e.mod.Globals) == 0 {
		return nil
	}
	e.buf.WriteString("\n")
	for _, g := range e.mod.Globals {
		ty, err := llvmType(e.types, g.Elem)
		if err != nil {
			return fmt.Errorf("global %s: %w", g.Name, err)
		}
		init, err := e.constOperand(g.Init)
		if err != nil {
			return fmt.Errorf("global %s: %w", g.Name, err)
		}
		fmt.Fprintf(&e.buf, "@%s = internal global %s %s\n", llvmIdent(g.Name), ty, init)
	}
	return nil
}

func (e *Emitter) emitFunction(f *Func) error {
	ret, err := llvmType(e.types, f.Result)
	if err != nil {
		return err
	}
	fe := &funcEmitter{
		emitter: e,
		f:       f,
		names:   make(map[*Instr]string),
		params:  make(map[*Value]string, len(f.Params)),
		blocks:  make(map[*Block]string, len(f.Blocks)),
		taken:   make(map[string]struct{}),
	}
	e.buf.WriteString("\n")
	if f.IsDeclaration() {
		params := make([]string, 0, len(f.Params))
		for _, p := range f.Params {
			ty, err := llvmType(e.types, p.Type)
			if err != nil {
				return err
			}
			params = append(params, ty)
		}
		fmt.Fprintf(&e.buf, "declare %s @%s(%s)\n", ret, llvmIdent(f.Name), strings.Join(params, ", "))
		return nil
	}
	fe.assignNames()
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		ty, err := llvmType(e.types, p.Type)
		if err != nil {
			return err
		}
		params = append(params, fmt.Sprintf("%s %%%s", ty, fe.params[p]))
	}
	fmt.Fprintf(&e.buf, "define %s @%s(%s) {\n", ret, llvmIdent(f.Name), strings.Join(params, ", "))
	for i, bb := range f.Blocks {
		if i > 0 {
			e.buf.WriteString("\n")
		}
		fmt.Fprintf(&e.buf, "%s:\n", fe.blocks[bb])
		for _, ins := range bb.Instrs {
			line, err := fe.instr(ins)
			if err != nil {
				return fmt.Errorf("block %s: %w", bb.Name, err)
			}
			fmt.Fprintf(&e.buf, "  %s\n", line)
		}
		line, err := fe.term(bb.Term)
		if err != nil {
			return fmt.Errorf("block %s: %w", bb.Name, err)
		}
		fmt.Fprintf(&e.buf, "  %s\n", line)
	}
	e.buf.WriteString("}\n")
	return nil
}

// assignNames gives every label, parameter and result a unique local name.
func (fe *funcEmitter) assignNames() {
	for _, bb := range fe.f.Blocks {
		fe.blocks[bb] = fe.unique(bb.Name)
	}
	for i, p := range fe.f.Params {
		hint := p.Name
		if hint == "" {
			hint = "arg" + strconv.Itoa(i)
		}
		fe.params[p] = fe.unique(hint)
	}
	for _, bb := range fe.f.Blocks {
		for _, ins := range bb.Instrs {
			if ins.Result == nil || fe.emitter.types.IsVoid(ins.Result.Type) {
				continue
			}
			hint := ins.Result.Name
			if hint == "" {
				hint = "t" + strconv.Itoa(fe.tmpID)
				fe.tmpID++
			}
			fe.names[ins] = fe.unique(hint)
		}
	}
}

func (fe *funcEmitter) unique(base string) string {
	name := llvmIdent(base)
	for n := 1; ; n++ {
		if _, ok := fe.taken[name]; !ok {
			break
		}
		name = llvmIdent(base + strconv.Itoa(n))
	}
	fe.taken[name] = struct{}{}
	return name
}

func (fe *funcEmitter) instr(ins *Instr) (string, error) {
	e := fe.emitter
	switch ins.Op {
	case OpAlloca:
		ty, err := llvmType(e.types, ins.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%%%s = alloca %s", fe.names[ins], ty), nil
	case OpLoad:
		ty, err := llvmType(e.types, ins.Elem)
		if err != nil {
			return "", err
		}
		ptr, err := fe.typedOperand(ins.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%%%s = load %s, %s", fe.names[ins], ty, ptr), nil
	case OpStore:
		val, err := fe.typedOperand(ins.Args[0])
		if err != nil {
			return "", err
		}
		ptr, err := fe.typedOperand(ins.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("store %s, %s", val, ptr), nil
	case OpFNeg:
		x, err := fe.typedOperand(ins.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%%%s = fneg %s", fe.names[ins], x), nil
	case OpICmp, OpFCmp:
		l, err := fe.typedOperand(ins.Args[0])
		if err != nil {
			return "", err
		}
		r, err := fe.operand(ins.Args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%%%s = %s %s %s, %s", fe.names[ins], ins.Op, ins.Pred, l, r), nil
	case OpGEP:
		ty, err := llvmType(e.types, ins.Elem)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(ins.Args))
		for _, a := range ins.Args {
			s, err := fe.typedOperand(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return fmt.Sprintf("%%%s = getelementptr inbounds %s, %s", fe.names[ins], ty, strings.Join(parts, ", ")), nil
	case OpCall:
		ret, err := llvmType(e.types, ins.Callee.Result)
		if err != nil {
			return "", err
		}
		args := make([]string, 0, len(ins.Args))
		for _, a := range ins.Args {
			s, err := fe.typedOperand(a)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
		call := fmt.Sprintf("call %s @%s(%s)", ret, llvmIdent(ins.Callee.Name), strings.Join(args, ", "))
		if name, ok := fe.names[ins]; ok {
			return fmt.Sprintf("%%%s = %s", name, call), nil
		}
		return call, nil
	}
	if ins.Op.IsCast() {
		x, err := fe.typedOperand(ins.Args[0])
		if err != nil {
			return "", err
		}
		to, err := llvmType(e.types, ins.Result.Type)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%%%s = %s %s to %s", fe.names[ins], ins.Op, x, to), nil
	}
	l, err := fe.typedOperand(ins.Args[0])
	if err != nil {
		return "", err
	}
	r, err := fe.operand(ins.Args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%%%s = %s %s, %s", fe.names[ins], ins.Op, l, r), nil
}

func (fe *funcEmitter) term(t Terminator) (string, error) {
	switch t.Kind {
	case TermRet:
		if t.Value == nil {
			return "ret void", nil
		}
		v, err := fe.typedOperand(t.Value)
		if err != nil {
			return "", err
		}
		return "ret " + v, nil
	case TermBr:
		return fmt.Sprintf("br label %%%s", fe.blocks[t.Then]), nil
	case TermCondBr:
		c, err := fe.typedOperand(t.Cond)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("br %s, label %%%s, label %%%s", c, fe.blocks[t.Then], fe.blocks[t.Else]), nil
	case TermUnreachable:
		return "unreachable", nil
	}
	return "", fmt.Errorf("unterminated block")
}

func (fe *funcEmitter) typedOperand(v *Value) (string, error) {
	ty, err := llvmType(fe.emitter.types, v.Type)
	if err != nil {
		return "", err
	}
	s, err := fe.operand(v)
	if err != nil {
		return "", err
	}
	return ty + " " + s, nil
}

func (fe *funcEmitter) operand(v *Value) (string, error) {
	switch v.Kind {
	case ValueParam:
		if name, ok := fe.params[fe.f.Params[v.Index]]; ok {
			return "%" + name, nil
		}
		return "", fmt.Errorf("parameter %d of another function", v.Index)
	case ValueInstr:
		if name, ok := fe.names[v.Instr]; ok {
			return "%" + name, nil
		}
		return "", fmt.Errorf("operand %s has no result", v.Instr.Op)
	}
	return fe.emitter.constOperand(v)
}

func (e *Emitter) constOperand(v *Value) (string, error) {
	if v == nil {
		return "", fmt.Errorf("missing operand")
	}
	switch v.Kind {
	case ValueConstInt:
		if e.types.KindOf(v.Type) == types.KindBool {
			return strconv.FormatBool(v.Int != 0), nil
		}
		return strconv.FormatInt(v.Int, 10), nil
	case ValueConstFloat:
		return fmt.Sprintf("0x%016X", floatBits(v.Float, e.types.BitWidth(v.Type))), nil
	case ValueConstNull:
		return "null", nil
	case ValueConstZero:
		return "zeroinitializer", nil
	case ValueGlobal, ValueFunc:
		return "@" + llvmIdent(v.Name), nil
	case ValueConstGEP:
		ty, err := llvmType(e.types, v.GEP.Elem)
		if err != nil {
			return "", err
		}
		parts := []string{ty}
		for _, a := range append([]*Value{v.GEP.Base}, v.GEP.Indices...) {
			aty, err := llvmType(e.types, a.Type)
			if err != nil {
				return "", err
			}
			s, err := e.constOperand(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, aty+" "+s)
		}
		return "getelementptr inbounds (" + strings.Join(parts, ", ") + ")", nil
	}
	return "", fmt.Errorf("non-constant operand")
}

func llvmType(typesIn *types.Interner, id types.TypeID) (string, error) {
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "void", fmt.Errorf("unknown type id %d", id)
	}
	switch tt.Kind {
	case types.KindVoid:
		return "void", nil
	case types.KindBool:
		return "i1", nil
	case types.KindInt:
		return "i" + strconv.Itoa(int(tt.Width)), nil
	case types.KindFloat:
		if tt.Width == types.Width32 {
			return "float", nil
		}
		return "double", nil
	case types.KindPointer, types.KindFn:
		return "ptr", nil
	case types.KindArray:
		elem, err := llvmType(typesIn, tt.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%d x %s]", tt.Count, elem), nil
	default:
		return "void", fmt.Errorf("unsupported type kind %s", tt.Kind)
	}
}

// llvmIdent quotes names that are not plain LLVM identifiers.
func llvmIdent(name string) string {
	plain := name != ""
	for i, r := range name {
		switch {
		case r == '_' || r == '.' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			plain = false
		}
	}
	if plain {
		return name
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c == '"' || c == '\\' || c >= 0x7f {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}
