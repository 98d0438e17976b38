package ast

import "strings"

// Sexpr renders n as a single-line S-expression, e.g.
//
//	(program (= x (+ 1 (* 2 3))))
//
// Operators head their lists, literals print as in source, and an
// expression statement prints as its expression.
func Sexpr(n Node) string {
	var b strings.Builder
	writeSexpr(&b, n)
	return b.String()
}

func writeSexpr(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		list(b, "program", stmts(n.Statements)...)
	case *Block:
		list(b, "block", stmts(n.Statements)...)
	case *Assignment:
		list(b, n.Op, n.Target, n.Value)
	case *IfStatement:
		b.WriteString("(if ")
		writeSexpr(b, n.Cond)
		b.WriteByte(' ')
		writeSexpr(b, n.Then)
		for _, clause := range n.ElseIfs {
			b.WriteByte(' ')
			list(b, "elseif", clause.Cond, clause.Body)
		}
		if n.Else != nil {
			b.WriteByte(' ')
			list(b, "else", n.Else)
		}
		b.WriteByte(')')
	case *WhileLoop:
		list(b, "while", n.Cond, n.Body)
	case *ForLoop:
		list(b, "for", n.Var, n.Start, n.End, n.Body)
	case *FunctionDef:
		b.WriteString("(function ")
		b.WriteString(n.Name.Name)
		b.WriteString(" (")
		for i, p := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Name)
		}
		b.WriteString(") ")
		writeSexpr(b, n.Body)
		b.WriteByte(')')
	case *ReturnStatement:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		list(b, "return", n.Value)
	case *ExprStmt:
		writeSexpr(b, n.X)
	case *BinaryOp:
		list(b, n.Op, n.Left, n.Right)
	case *UnaryOp:
		list(b, n.Op, n.Operand)
	case *FunctionCall:
		b.WriteString("(call ")
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeSexpr(b, a)
		}
		b.WriteByte(')')
	case *Literal:
		b.WriteString(n.Text())
	case *Identifier:
		b.WriteString(n.Name)
	}
}

func list(b *strings.Builder, head string, items ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, item := range items {
		b.WriteByte(' ')
		writeSexpr(b, item)
	}
	b.WriteByte(')')
}
