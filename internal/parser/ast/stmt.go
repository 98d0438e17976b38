package ast

import "github.com/hassan/tacc/internal/lexer"

// Assignment binds Value to Target. Op is one of = += -= *= /=.
//
// Assignment is also an expression: its value is the target after the
// store, which allows chains such as a = b = 0.
type Assignment struct {
	Target *Identifier
	Op     string
	Value  Expr
}

// IsCompound reports whether the assignment reads the target before
// storing into it.
func (a *Assignment) IsCompound() bool {
	return a.Op != "="
}

// ArithOp returns the binary operator a compound assignment applies,
// e.g. "+" for "+=". It returns "" for plain assignment.
func (a *Assignment) ArithOp() string {
	if !a.IsCompound() {
		return ""
	}
	return a.Op[:len(a.Op)-1]
}

// IfStatement is an if/elseif/else chain. ElseIfs keep source order and
// Else is nil when absent.
type IfStatement struct {
	Position lexer.Position
	Cond     Expr
	Then     *Block
	ElseIfs  []*ElseIf
	Else     *Block
}

// ElseIf is one elseif clause of an IfStatement.
type ElseIf struct {
	Position lexer.Position
	Cond     Expr
	Body     *Block
}

// WhileLoop is a pretest loop.
type WhileLoop struct {
	Position lexer.Position
	Cond     Expr
	Body     *Block
}

// ForLoop iterates Var from Start to End inclusive with step 1.
type ForLoop struct {
	Position lexer.Position
	Var      *Identifier
	Start    Expr
	End      Expr
	Body     *Block
}

// FunctionDef defines a function. Params may be empty.
type FunctionDef struct {
	Position lexer.Position
	Name     *Identifier
	Params   []*Identifier
	Body     *Block
}

// ReturnStatement returns from the enclosing function. Value is nil for a
// bare return.
type ReturnStatement struct {
	Position lexer.Position
	Value    Expr
}

// ExprStmt is an expression evaluated for its effect, such as a call.
type ExprStmt struct {
	X Expr
}

func (a *Assignment) Pos() lexer.Position      { return a.Target.Pos() }
func (s *IfStatement) Pos() lexer.Position     { return s.Position }
func (s *WhileLoop) Pos() lexer.Position       { return s.Position }
func (s *ForLoop) Pos() lexer.Position         { return s.Position }
func (s *FunctionDef) Pos() lexer.Position     { return s.Position }
func (s *ReturnStatement) Pos() lexer.Position { return s.Position }
func (s *ExprStmt) Pos() lexer.Position        { return s.X.Pos() }

func (*Assignment) Kind() string      { return "Assignment" }
func (*IfStatement) Kind() string     { return "IfStatement" }
func (*WhileLoop) Kind() string       { return "WhileLoop" }
func (*ForLoop) Kind() string         { return "ForLoop" }
func (*FunctionDef) Kind() string     { return "FunctionDef" }
func (*ReturnStatement) Kind() string { return "ReturnStatement" }
func (*ExprStmt) Kind() string        { return "ExprStmt" }

func (*Assignment) stmtNode()      {}
func (*IfStatement) stmtNode()     {}
func (*WhileLoop) stmtNode()       {}
func (*ForLoop) stmtNode()         {}
func (*FunctionDef) stmtNode()     {}
func (*ReturnStatement) stmtNode() {}
func (*ExprStmt) stmtNode()        {}

func (*Assignment) exprNode() {}
