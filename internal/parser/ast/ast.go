// Package ast defines the syntax tree produced by the parser.
//
// The node set is closed: Expr and Stmt carry unexported marker methods, so
// only this package can add variants, and consumers dispatch with a type
// switch over the concrete node types.
package ast

import (
	"github.com/hassan/tacc/internal/lexer"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position of the first token of the node.
	Pos() lexer.Position
	// Kind returns the stable node-kind name, e.g. "WhileLoop".
	Kind() string
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that can appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree.
type Program struct {
	Statements []Stmt
}

// Block is a statement list nested inside a structured statement.
type Block struct {
	Position   lexer.Position
	Statements []Stmt
}

// Pos returns the position of the first statement, or of the program
// start when empty.
func (p *Program) Pos() lexer.Position {
	if len(p.Statements) == 0 {
		return lexer.Position{Line: 1, Column: 1}
	}
	return p.Statements[0].Pos()
}

func (b *Block) Pos() lexer.Position { return b.Position }

func (*Program) Kind() string { return "Program" }
func (*Block) Kind() string   { return "Block" }
