package semantic

import (
	"fmt"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/semantic/types"
)

// TypeMismatchError reports operand types an operator cannot combine, or
// a call that does not fit its callee. Right is nil for unary operators.
type TypeMismatchError struct {
	Op     string
	Left   types.Type
	Right  types.Type
	Node   string
	Pos    lexer.Position
	Detail string
}

func (e *TypeMismatchError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: type mismatch in %s: %s", e.Pos, e.Node, e.Detail)
	case e.Right == nil:
		return fmt.Sprintf("%s: type mismatch in %s: %s %s", e.Pos, e.Node, e.Op, e.Left)
	}
	return fmt.Sprintf("%s: type mismatch in %s: %s %s %s", e.Pos, e.Node, e.Left, e.Op, e.Right)
}

// RetypeWarning reports an assignment that changed a variable's recorded
// type. The variable keeps its slot, of SlotSize bytes.
type RetypeWarning struct {
	Name     string
	From     types.Type
	To       types.Type
	SlotSize int
	Pos      lexer.Position
}

func (w *RetypeWarning) Error() string {
	msg := fmt.Sprintf("%s: %s retyped from %s to %s", w.Pos, w.Name, w.From, w.To)
	if w.To.Size() != w.SlotSize {
		msg += fmt.Sprintf(", slot stays %d bytes", w.SlotSize)
	}
	return msg
}
