// Package symtab implements the scoped symbol table: a stack of named
// frames mapping names to typed storage slots, plus the allocator for
// compiler temporaries.
package symtab

import (
	"fmt"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/semantic/types"
)

// SymbolKind classifies what a name refers to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolTemp
	SymbolFunction
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolTemp:
		return "temporary"
	case SymbolFunction:
		return "function"
	default:
		return "unknown"
	}
}

// StorageClass is an independent offset space.
type StorageClass int

const (
	// StorageNone is used by symbols that occupy no slot (functions).
	StorageNone StorageClass = iota
	// StorageProgram holds user variables and parameters of every scope.
	StorageProgram
	// StorageTemp holds compiler temporaries.
	StorageTemp

	numStorageClasses
)

func (c StorageClass) String() string {
	switch c {
	case StorageProgram:
		return "program"
	case StorageTemp:
		return "temp"
	default:
		return "none"
	}
}

// Symbol is one symbol table entry.
//
// Size and Offset are fixed when the symbol is declared. Type may change
// later through Table.Retype; the slot never moves.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Type   types.Type
	Size   int
	Offset int
	Class  StorageClass
	Scope  *Scope
	Pos    lexer.Position
}

// String returns "name:TYPE offset N", the short form used in diagnostics.
func (s *Symbol) String() string {
	if s.Class == StorageNone {
		return s.Name + ":" + s.Type.String()
	}
	return fmt.Sprintf("%s:%s offset %d", s.Name, s.Type, s.Offset)
}

// IsGlobal reports whether the symbol lives in the global scope.
func (s *Symbol) IsGlobal() bool {
	return s.Scope != nil && s.Scope.IsGlobal()
}

// HasStorage reports whether the symbol occupies a slot.
func (s *Symbol) HasStorage() bool {
	return s.Class != StorageNone
}

// Function returns the function type of a function symbol, or nil.
func (s *Symbol) Function() *types.FunctionType {
	fn, _ := s.Type.(*types.FunctionType)
	return fn
}
