package ir

import (
	"fmt"
	"strings"
)

// BasicBlock is a maximal straight-line run of instructions: control
// enters only at the first instruction and leaves only after the last.
//
// EXAMPLE:
// "x = 0 while x < 3 x = x + 1 end" splits into four blocks:
//
//	B0:
//	  x := 0                  -> L0
//	L0:
//	  t0 := x LT 3
//	  if_false t0 goto L1     -> B2, L1
//	B2:
//	  t1 := x ADD 1
//	  x := t1
//	  goto L0                 -> L0
//	L1:
//
// Successors and Predecessors always mirror each other; AddSuccessor is
// the only way to link blocks.
type BasicBlock struct {
	// Index is the block's position in the slice returned by SplitBlocks.
	Index int

	// Label is the name of the leading label, or "B<Index>" when the block
	// does not start with one.
	Label string

	// Start is the index of the block's first instruction in the program.
	Start        int
	Instructions []Instruction

	Successors   []*BasicBlock
	Predecessors []*BasicBlock
}

// AddSuccessor links bb to succ in both directions. Duplicate edges are
// ignored.
func (bb *BasicBlock) AddSuccessor(succ *BasicBlock) {
	for _, s := range bb.Successors {
		if s == succ {
			return
		}
	}
	bb.Successors = append(bb.Successors, succ)
	succ.Predecessors = append(succ.Predecessors, bb)
}

// Terminator returns the last instruction if it transfers control, or nil.
func (bb *BasicBlock) Terminator() Instruction {
	if len(bb.Instructions) == 0 {
		return nil
	}
	last := bb.Instructions[len(bb.Instructions)-1]
	switch last.(type) {
	case *Goto, *IfFalseGoto, *Return, *FuncEnd:
		return last
	}
	return nil
}

// String lists the block's predecessors and instructions.
func (bb *BasicBlock) String() string {
	var sb strings.Builder
	sb.WriteString(bb.Label)
	sb.WriteString(":\n")
	if len(bb.Predecessors) > 0 {
		sb.WriteString("  ; predecessors: ")
		for i, pred := range bb.Predecessors {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(pred.Label)
		}
		sb.WriteString("\n")
	}
	for _, instr := range bb.Instructions {
		sb.WriteString("  ")
		sb.WriteString(instr.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// SplitBlocks partitions code into basic blocks and links them.
//
// Leaders are the first instruction, every label, every func_begin, and
// every instruction that follows a jump, a return or a func_end. Function
// bodies are inline, so the block before a func_begin falls through to the
// block after the matching func_end. A return or func_end has no
// successors.
func SplitBlocks(code []Instruction) []*BasicBlock {
	if len(code) == 0 {
		return nil
	}

	leader := make([]bool, len(code))
	leader[0] = true
	for i, instr := range code {
		switch instr.(type) {
		case *Label, *FuncBegin:
			leader[i] = true
		case *Goto, *IfFalseGoto, *Return, *FuncEnd:
			if i+1 < len(code) {
				leader[i+1] = true
			}
		}
	}

	var blocks []*BasicBlock
	blockAt := make([]*BasicBlock, len(code))
	byLabel := make(map[string]*BasicBlock)
	for i, instr := range code {
		if leader[i] {
			bb := &BasicBlock{Index: len(blocks), Start: i, Label: fmt.Sprintf("B%d", len(blocks))}
			if l, ok := instr.(*Label); ok {
				bb.Label = l.Name
				byLabel[l.Name] = bb
			}
			blocks = append(blocks, bb)
		}
		bb := blocks[len(blocks)-1]
		bb.Instructions = append(bb.Instructions, instr)
		blockAt[i] = bb
	}

	after := skipFunctions(code)
	fallthroughOf := func(bb *BasicBlock) *BasicBlock {
		next := bb.Start + len(bb.Instructions)
		for next < len(code) {
			skip, ok := after[next]
			if !ok {
				return blockAt[next]
			}
			next = skip
		}
		return nil
	}

	for _, bb := range blocks {
		switch t := bb.Instructions[len(bb.Instructions)-1].(type) {
		case *Goto:
			if target, ok := byLabel[t.Target]; ok {
				bb.AddSuccessor(target)
			}
		case *IfFalseGoto:
			if next := fallthroughOf(bb); next != nil {
				bb.AddSuccessor(next)
			}
			if target, ok := byLabel[t.Target]; ok {
				bb.AddSuccessor(target)
			}
		case *Return, *FuncEnd:
		default:
			if next := fallthroughOf(bb); next != nil {
				bb.AddSuccessor(next)
			}
		}
	}
	return blocks
}

// skipFunctions maps the index of each func_begin to the index just past
// its matching func_end. Unmatched func_begins are left out.
func skipFunctions(code []Instruction) map[int]int {
	after := make(map[int]int)
	var open []int
	for i, instr := range code {
		switch instr.(type) {
		case *FuncBegin:
			open = append(open, i)
		case *FuncEnd:
			if len(open) > 0 {
				after[open[len(open)-1]] = i + 1
				open = open[:len(open)-1]
			}
		}
	}
	return after
}
