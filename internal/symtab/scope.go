package symtab

import "fmt"

// ScopeKind distinguishes the bottom frame from pushed ones.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
)

func (sk ScopeKind) String() string {
	if sk == ScopeGlobal {
		return "global"
	}
	return "function"
}

// Scope is a named frame of the scope stack.
type Scope struct {
	Name   string
	Kind   ScopeKind
	Parent *Scope
	Depth  int

	symbols map[string]*Symbol
	order   []*Symbol
}

func newScope(name string, kind ScopeKind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Scope{
		Name:    name,
		Kind:    kind,
		Parent:  parent,
		Depth:   depth,
		symbols: make(map[string]*Symbol),
	}
}

// define adds sym to the frame unless the name is taken, in which case
// the existing entry is returned with false.
func (s *Scope) define(sym *Symbol) (*Symbol, bool) {
	if existing, ok := s.symbols[sym.Name]; ok {
		return existing, false
	}
	sym.Scope = s
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
	return sym, true
}

// Lookup searches this frame and then its parents.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches this frame only.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns the frame's entries in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// IsGlobal reports whether s is the bottom frame.
func (s *Scope) IsGlobal() bool {
	return s.Kind == ScopeGlobal
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s scope %s (depth %d, %d symbols)", s.Kind, s.Name, s.Depth, len(s.order))
}
