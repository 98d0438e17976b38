package symtab

import (
	"fmt"

	"github.com/hassan/tacc/internal/lexer"
)

// UndefinedSymbolError reports a name read before any declaration is
// visible. Node is the kind of the AST node that used the name.
type UndefinedSymbolError struct {
	Name string
	Node string
	Pos  lexer.Position
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%s: undefined symbol %s in %s", e.Pos, e.Name, e.Node)
}

// RedeclarationError reports a function or parameter whose name is already
// taken in the same scope.
type RedeclarationError struct {
	Name string
	Kind SymbolKind
	Pos  lexer.Position
	Prev *Symbol
}

func (e *RedeclarationError) Error() string {
	msg := fmt.Sprintf("%s: %s %s redeclared in %s scope", e.Pos, e.Kind, e.Name, e.Prev.Scope.Name)
	if e.Prev.Pos.IsValid() {
		msg += fmt.Sprintf(", previous %s declared at %s", e.Prev.Kind, e.Prev.Pos)
	}
	return msg
}
