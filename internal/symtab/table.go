package symtab

import (
	"fmt"
	"io"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/semantic/types"
)

// Table is the scope stack of one compilation. It owns the offset counters
// of every storage class and the temporary counter, so separate Tables
// never share numbering.
//
// LAYOUT:
// Program variables and temporaries are laid out in two independent
// regions. Each declaration takes the next offset in its region and
// advances it by the size of its type:
//
//	x = 1      x   INTEGER  offset 0
//	y = 2.5    y   FLOAT    offset 4
//	z = x + y  t0  FLOAT    temp offset 0
//	           z   FLOAT    offset 12
//
// Functions take no storage. Scopes only control visibility; a variable in
// a function body still gets the next program offset.
type Table struct {
	global  *Scope
	current *Scope

	// scopes lists every frame ever entered, in entry order.
	scopes []*Scope
	temps  []*Symbol

	next [numStorageClasses]int
}

// New returns a table holding only the global scope.
func New() *Table {
	global := newScope("global", ScopeGlobal, nil)
	return &Table{
		global:  global,
		current: global,
		scopes:  []*Scope{global},
	}
}

// Global returns the bottom frame.
func (t *Table) Global() *Scope { return t.global }

// Current returns the innermost frame.
func (t *Table) Current() *Scope { return t.current }

// EnterScope pushes a new frame named name.
func (t *Table) EnterScope(name string) *Scope {
	t.current = newScope(name, ScopeFunction, t.current)
	t.scopes = append(t.scopes, t.current)
	return t.current
}

// ExitScope pops the innermost frame. Offsets handed out inside it stay
// allocated. Popping the global scope is a caller bug and panics.
func (t *Table) ExitScope() {
	if t.current.Parent == nil {
		panic("symtab: ExitScope without matching EnterScope")
	}
	t.current = t.current.Parent
}

// Declare inserts a variable into the current frame at the next program
// offset. If the name already exists in the current frame nothing changes
// and the existing symbol is returned with false.
func (t *Table) Declare(name string, typ types.Type, pos lexer.Position) (*Symbol, bool) {
	return t.declareSlot(name, SymbolVariable, typ, pos)
}

// DeclareParam is Declare for a function parameter, whose type is not
// known statically.
func (t *Table) DeclareParam(name string, pos lexer.Position) (*Symbol, bool) {
	return t.declareSlot(name, SymbolParameter, types.Any, pos)
}

func (t *Table) declareSlot(name string, kind SymbolKind, typ types.Type, pos lexer.Position) (*Symbol, bool) {
	if existing, ok := t.current.LookupLocal(name); ok {
		return existing, false
	}
	sym := &Symbol{
		Name:   name,
		Kind:   kind,
		Type:   typ,
		Size:   typ.Size(),
		Offset: t.next[StorageProgram],
		Class:  StorageProgram,
		Pos:    pos,
	}
	t.next[StorageProgram] += sym.Size
	return t.current.define(sym)
}

// DeclareFunction inserts a function into the current frame. Functions
// take no slot.
func (t *Table) DeclareFunction(name string, fn *types.FunctionType, pos lexer.Position) (*Symbol, bool) {
	return t.current.define(&Symbol{
		Name:  name,
		Kind:  SymbolFunction,
		Type:  fn,
		Class: StorageNone,
		Pos:   pos,
	})
}

// Lookup searches the scope stack from the innermost frame outwards.
// The caller decides how to report a miss; see UndefinedSymbolError.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	return t.current.Lookup(name)
}

// NewTemp allocates a fresh temporary t<N> at the next temp offset.
// Temporaries belong to no frame, so they can never be shadowed or
// redeclared.
func (t *Table) NewTemp(typ types.Type) *Symbol {
	sym := &Symbol{
		Name:   fmt.Sprintf("t%d", len(t.temps)),
		Kind:   SymbolTemp,
		Type:   typ,
		Size:   typ.Size(),
		Offset: t.next[StorageTemp],
		Class:  StorageTemp,
	}
	t.next[StorageTemp] += sym.Size
	t.temps = append(t.temps, sym)
	return sym
}

// Retype records a new type for sym and returns the old one. The slot
// keeps its original size and offset.
func (t *Table) Retype(sym *Symbol, typ types.Type) types.Type {
	old := sym.Type
	sym.Type = typ
	return old
}

// Size returns the total bytes allocated in a storage class.
func (t *Table) Size(class StorageClass) int {
	return t.next[class]
}

// Symbols returns every declared symbol, frame by frame in entry order.
// Temporaries are not included; see Temps.
func (t *Table) Symbols() []*Symbol {
	var out []*Symbol
	for _, s := range t.scopes {
		out = append(out, s.order...)
	}
	return out
}

// Temps returns the temporaries in allocation order.
func (t *Table) Temps() []*Symbol {
	return t.temps
}

// Dump writes one line per symbol and temporary:
//
//	global x : INTEGER size 4 offset 0 program
//	global f : FUNCTION/1 -> ANY
//	temp t0 : FLOAT size 8 offset 0 temp
func (t *Table) Dump(w io.Writer) error {
	for _, sym := range t.Symbols() {
		var err error
		if sym.HasStorage() {
			_, err = fmt.Fprintf(w, "%s %s : %s size %d offset %d %s\n",
				sym.Scope.Name, sym.Name, sym.Type, sym.Size, sym.Offset, sym.Class)
		} else {
			_, err = fmt.Fprintf(w, "%s %s : %s\n", sym.Scope.Name, sym.Name, sym.Type)
		}
		if err != nil {
			return err
		}
	}
	for _, sym := range t.temps {
		if _, err := fmt.Fprintf(w, "temp %s : %s size %d offset %d %s\n",
			sym.Name, sym.Type, sym.Size, sym.Offset, sym.Class); err != nil {
			return err
		}
	}
	return nil
}
