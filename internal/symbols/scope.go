package symbols

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeUnit               // translation unit (global declarations)
	ScopeFunction           // function parameters and body
	ScopeBlock              // generic block scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUnit:
		return "unit"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Children are
// owned by their parent; the parent link is only followed for lookup.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope

	names map[string]*Binding
	order []string
}

// NewUnit creates the root scope of a translation unit.
func NewUnit() *Scope {
	return &Scope{Kind: ScopeUnit, names: make(map[string]*Binding)}
}

// AddChild creates and returns a new child whose parent is s.
func (s *Scope) AddChild(kind ScopeKind) *Scope {
	child := &Scope{Kind: kind, Parent: s, names: make(map[string]*Binding)}
	s.Children = append(s.Children, child)
	return child
}

// TryReserve reports whether name is free in s itself. Enclosing scopes are
// not consulted: shadowing is always legal.
func (s *Scope) TryReserve(name string) bool {
	_, taken := s.names[name]
	return !taken
}

// Bind inserts b under b.Name. It fails without mutation when the name is
// already bound in s.
func (s *Scope) Bind(b *Binding) bool {
	if b == nil {
		return false
	}
	if _, taken := s.names[b.Name]; taken {
		return false
	}
	s.names[b.Name] = b
	s.order = append(s.order, b.Name)
	return true
}

// Lookup returns the nearest binding of name, searching s then its ancestors.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.names[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupLocal searches s only.
func (s *Scope) LookupLocal(name string) (*Binding, bool) {
	b, ok := s.names[name]
	return b, ok
}

// Names lists the names bound in s in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Depth is 0 for the unit scope.
func (s *Scope) Depth() int {
	d := 0
	for sc := s.Parent; sc != nil; sc = sc.Parent {
		d++
	}
	return d
}
