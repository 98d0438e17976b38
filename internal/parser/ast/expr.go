package ast

import (
	"strconv"

	"github.com/hassan/tacc/internal/lexer"
)

// BinaryOp applies an infix operator. Op is the operator's source text.
type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
}

// UnaryOp applies a prefix operator: "-" or "!".
type UnaryOp struct {
	Position lexer.Position
	Op       string
	Operand  Expr
}

// LiteralType is the lexical type of a literal.
type LiteralType int

const (
	LitInteger LiteralType = iota
	LitFloat
	LitString
	LitBool
)

func (t LiteralType) String() string {
	switch t {
	case LitInteger:
		return "INTEGER"
	case LitFloat:
		return "FLOAT"
	case LitString:
		return "STRING"
	case LitBool:
		return "BOOL"
	}
	return "UNKNOWN"
}

// Literal is a constant. Value holds an int64, float64, string or bool
// according to Type. String values are already unescaped.
type Literal struct {
	Position lexer.Position
	Type     LiteralType
	Value    any
}

// Text renders the literal value the way it appears in emitted code.
// Floats always carry a decimal point or exponent; strings are quoted.
func (l *Literal) Text() string {
	switch v := l.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return FormatFloat(v)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return "?"
}

// FormatFloat formats f so it still reads as a float: 3 becomes "3.0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'N' || c == 'I' {
			return s
		}
	}
	return s + ".0"
}

// Identifier is a name reference.
type Identifier struct {
	Position lexer.Position
	Name     string
}

// FunctionCall calls a named function. Args keep source order.
type FunctionCall struct {
	Position lexer.Position
	Name     string
	Args     []Expr
}

func (e *BinaryOp) Pos() lexer.Position     { return e.Left.Pos() }
func (e *UnaryOp) Pos() lexer.Position      { return e.Position }
func (e *Literal) Pos() lexer.Position      { return e.Position }
func (e *Identifier) Pos() lexer.Position   { return e.Position }
func (e *FunctionCall) Pos() lexer.Position { return e.Position }

func (*BinaryOp) Kind() string     { return "BinaryOp" }
func (*UnaryOp) Kind() string      { return "UnaryOp" }
func (*Literal) Kind() string      { return "Literal" }
func (*Identifier) Kind() string   { return "Identifier" }
func (*FunctionCall) Kind() string { return "FunctionCall" }

func (*BinaryOp) exprNode()     {}
func (*UnaryOp) exprNode()      {}
func (*Literal) exprNode()      {}
func (*Identifier) exprNode()   {}
func (*FunctionCall) exprNode() {}
