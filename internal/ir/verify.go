package ir

import (
	"errors"
	"fmt"
)

// Verify checks that code is well formed:
//   - every jump target is defined exactly once
//   - every label is the target of some jump
//   - func_begin and func_end nest and match by name
//   - every instruction that writes has a storage destination
//
// All problems are reported, joined into one error.
func Verify(code []Instruction) error {
	var errs []error
	defined := make(map[string]int)
	referenced := make(map[string]bool)
	var open []string

	for i, instr := range code {
		switch in := instr.(type) {
		case *Label:
			if prev, ok := defined[in.Name]; ok {
				errs = append(errs, fmt.Errorf("%03d: label %s already defined at %03d", i, in.Name, prev))
				continue
			}
			defined[in.Name] = i
		case *Goto:
			referenced[in.Target] = true
		case *IfFalseGoto:
			referenced[in.Target] = true
		case *FuncBegin:
			open = append(open, in.Name)
		case *FuncEnd:
			switch {
			case len(open) == 0:
				errs = append(errs, fmt.Errorf("%03d: func_end %s without func_begin", i, in.Name))
			case open[len(open)-1] != in.Name:
				errs = append(errs, fmt.Errorf("%03d: func_end %s closes func_begin %s", i, in.Name, open[len(open)-1]))
				open = open[:len(open)-1]
			default:
				open = open[:len(open)-1]
			}
		}
		if dest, ok := Dest(instr); ok && !dest.IsSlot() {
			errs = append(errs, fmt.Errorf("%03d: destination %q is not a storage location", i, dest.Text))
		}
	}

	for i, instr := range code {
		var target string
		switch in := instr.(type) {
		case *Goto:
			target = in.Target
		case *IfFalseGoto:
			target = in.Target
		default:
			continue
		}
		if _, ok := defined[target]; !ok {
			errs = append(errs, fmt.Errorf("%03d: jump to undefined label %s", i, target))
		}
	}
	for _, instr := range code {
		if l, ok := instr.(*Label); ok && !referenced[l.Name] {
			errs = append(errs, fmt.Errorf("%03d: label %s is never referenced", defined[l.Name], l.Name))
		}
	}
	for _, name := range open {
		errs = append(errs, fmt.Errorf("func_begin %s is never closed", name))
	}
	return errors.Join(errs...)
}
