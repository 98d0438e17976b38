package ir

import (
	"fmt"
	"io"
)

// Style selects how operands are printed.
type Style int

const (
	// Slots prints program variables as OOO(SP) and temporaries as
	// OOO(Rx).
	Slots Style = iota
	// Names prints operands by name, as Instruction.String does.
	Names
)

// Format renders instr in the given style.
func Format(instr Instruction, style Style) string {
	if style == Names {
		return instr.String()
	}
	return instr.render(Operand.Location)
}

// Write serializes res: the program and temporary byte totals on the
// first two lines, then one numbered line per instruction.
//
//	12
//	0
//	000:   000(SP) := 1
//	001:   004(SP) := 2.5
func Write(w io.Writer, res *Result, style Style) error {
	if _, err := fmt.Fprintf(w, "%d\n%d\n", res.ProgramBytes, res.TempBytes); err != nil {
		return err
	}
	for i, instr := range res.Instructions {
		if _, err := fmt.Fprintf(w, "%03d:   %s\n", i, Format(instr, style)); err != nil {
			return err
		}
	}
	return nil
}
