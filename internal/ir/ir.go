// Package ir defines three-address code (TAC) and lowers a syntax tree to
// it.
//
// A program is a flat []Instruction whose order is execution order.
// Control flow is expressed with Label, Goto and IfFalseGoto; function
// bodies sit inline between FuncBegin and FuncEnd.
package ir

import (
	"fmt"

	"github.com/hassan/tacc/internal/semantic/types"
	"github.com/hassan/tacc/internal/symtab"
)

// OperandKind tells storage locations from literal constants.
type OperandKind int

const (
	OperandSlot OperandKind = iota
	OperandConst
)

// Operand is a source or destination of an instruction.
//
// A slot operand refers to a program variable or temporary through its
// symbol. Type is the operand's type at the point of use, which can differ
// from the symbol's final type after retyping.
type Operand struct {
	Kind OperandKind
	Sym  *symtab.Symbol
	Text string // constant text, e.g. 2.5 or "hi"
	Type types.Type
}

// Slot returns a storage operand for sym.
func Slot(sym *symtab.Symbol) Operand {
	return Operand{Kind: OperandSlot, Sym: sym, Type: sym.Type}
}

// Const returns a literal operand.
func Const(text string, typ types.Type) Operand {
	return Operand{Kind: OperandConst, Text: text, Type: typ}
}

// IsSlot reports whether o is a storage location.
func (o Operand) IsSlot() bool {
	return o.Kind == OperandSlot && o.Sym != nil
}

// String returns the symbolic form: a name or a literal.
func (o Operand) String() string {
	if o.IsSlot() {
		return o.Sym.Name
	}
	return o.Text
}

// Location returns the slot form: OOO(SP) for program variables and
// OOO(Rx) for temporaries, with literals unchanged.
func (o Operand) Location() string {
	if !o.IsSlot() {
		return o.Text
	}
	if o.Sym.Class == symtab.StorageTemp {
		return fmt.Sprintf("%03d(Rx)", o.Sym.Offset)
	}
	return fmt.Sprintf("%03d(SP)", o.Sym.Offset)
}

// Instruction is one TAC instruction. The set of implementations is
// closed; switch on the concrete type.
type Instruction interface {
	// String renders the instruction with symbolic operands.
	String() string
	// render formats the instruction using operand to print operands.
	render(operand func(Operand) string) string
}

// BinaryOperator is the operation of a Binary instruction.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

var opNames = [...]string{
	OpAdd: "ADD",
	OpSub: "SUB",
	OpMul: "MUL",
	OpDiv: "DIV",
	OpMod: "MOD",
	OpEq:  "EQ",
	OpNe:  "NE",
	OpLt:  "LT",
	OpLe:  "LE",
	OpGt:  "GT",
	OpGe:  "GE",
	OpAnd: "AND",
	OpOr:  "OR",
}

func (op BinaryOperator) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "?"
	}
	return opNames[op]
}

var sourceOps = map[string]BinaryOperator{
	"+":  OpAdd,
	"-":  OpSub,
	"*":  OpMul,
	"/":  OpDiv,
	"%":  OpMod,
	"==": OpEq,
	"!=": OpNe,
	"<":  OpLt,
	"<=": OpLe,
	">":  OpGt,
	">=": OpGe,
	"&&": OpAnd,
	"||": OpOr,
}

// LookupOperator maps a source operator such as "<=" to its TAC operator.
func LookupOperator(op string) (BinaryOperator, bool) {
	bop, ok := sourceOps[op]
	return bop, ok
}

// Binary is DEST := SRC1 OP SRC2.
type Binary struct {
	Dest  Operand
	Op    BinaryOperator
	Left  Operand
	Right Operand
}

// Assign is DEST := SRC.
type Assign struct {
	Dest Operand
	Src  Operand
}

// Label marks a jump target.
type Label struct {
	Name string
}

// Goto jumps unconditionally.
type Goto struct {
	Target string
}

// IfFalseGoto jumps when Cond is false or zero and falls through otherwise.
type IfFalseGoto struct {
	Cond   Operand
	Target string
}

// FuncBegin opens the inline body of function Name.
type FuncBegin struct {
	Name string
}

// FuncEnd closes the body opened by the FuncBegin of the same name.
type FuncEnd struct {
	Name string
}

// PopParam binds the next incoming argument to a parameter slot.
type PopParam struct {
	Param Operand
}

// PushParam passes Src as the next argument of the following Call.
type PushParam struct {
	Src Operand
}

// Call invokes Func with the NArgs values pushed before it and stores the
// result in Dest.
type Call struct {
	Dest  Operand
	Func  string
	NArgs int
}

// Return leaves the current function. Value is nil for a bare return.
type Return struct {
	Value *Operand
}

func (i *Binary) render(op func(Operand) string) string {
	return fmt.Sprintf("%s := %s %s %s", op(i.Dest), op(i.Left), i.Op, op(i.Right))
}

func (i *Assign) render(op func(Operand) string) string {
	return fmt.Sprintf("%s := %s", op(i.Dest), op(i.Src))
}

func (i *Label) render(func(Operand) string) string { return i.Name + ":" }
func (i *Goto) render(func(Operand) string) string  { return "goto " + i.Target }

func (i *IfFalseGoto) render(op func(Operand) string) string {
	return fmt.Sprintf("if_false %s goto %s", op(i.Cond), i.Target)
}

func (i *FuncBegin) render(func(Operand) string) string { return "func_begin " + i.Name }
func (i *FuncEnd) render(func(Operand) string) string   { return "func_end " + i.Name }

func (i *PopParam) render(op func(Operand) string) string  { return "pop_param " + op(i.Param) }
func (i *PushParam) render(op func(Operand) string) string { return "push_param " + op(i.Src) }

func (i *Call) render(op func(Operand) string) string {
	return fmt.Sprintf("%s := call %s, %d", op(i.Dest), i.Func, i.NArgs)
}

func (i *Return) render(op func(Operand) string) string {
	if i.Value == nil {
		return "return"
	}
	return "return " + op(*i.Value)
}

func (i *Binary) String() string      { return i.render(Operand.String) }
func (i *Assign) String() string      { return i.render(Operand.String) }
func (i *Label) String() string       { return i.render(Operand.String) }
func (i *Goto) String() string        { return i.render(Operand.String) }
func (i *IfFalseGoto) String() string { return i.render(Operand.String) }
func (i *FuncBegin) String() string   { return i.render(Operand.String) }
func (i *FuncEnd) String() string     { return i.render(Operand.String) }
func (i *PopParam) String() string    { return i.render(Operand.String) }
func (i *PushParam) String() string   { return i.render(Operand.String) }
func (i *Call) String() string        { return i.render(Operand.String) }
func (i *Return) String() string      { return i.render(Operand.String) }

// Dest returns the destination operand of instr, if it writes one.
func Dest(instr Instruction) (Operand, bool) {
	switch i := instr.(type) {
	case *Binary:
		return i.Dest, true
	case *Assign:
		return i.Dest, true
	case *Call:
		return i.Dest, true
	case *PopParam:
		return i.Param, true
	}
	return Operand{}, false
}
