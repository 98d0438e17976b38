package ast

import "fmt"

// Children returns the direct children of n in source order. An
// IfStatement yields its condition and then-block, then each elseif
// condition and body, then the else block.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return stmts(n.Statements)
	case *Block:
		return stmts(n.Statements)
	case *Assignment:
		return []Node{n.Target, n.Value}
	case *IfStatement:
		out := []Node{n.Cond, n.Then}
		for _, clause := range n.ElseIfs {
			out = append(out, clause.Cond, clause.Body)
		}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *WhileLoop:
		return []Node{n.Cond, n.Body}
	case *ForLoop:
		return []Node{n.Var, n.Start, n.End, n.Body}
	case *FunctionDef:
		out := []Node{n.Name}
		for _, p := range n.Params {
			out = append(out, p)
		}
		return append(out, n.Body)
	case *ReturnStatement:
		if n.Value == nil {
			return nil
		}
		return []Node{n.Value}
	case *ExprStmt:
		return []Node{n.X}
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	case *UnaryOp:
		return []Node{n.Operand}
	case *FunctionCall:
		out := make([]Node, len(n.Args))
		for i, a := range n.Args {
			out[i] = a
		}
		return out
	case *Literal, *Identifier:
		return nil
	}
	panic(fmt.Sprintf("ast: unexpected node %T", n))
}

func stmts(list []Stmt) []Node {
	out := make([]Node, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}

// Label returns a one-line description of n: its kind plus the operator,
// name or value that distinguishes it from its siblings.
func Label(n Node) string {
	switch n := n.(type) {
	case *Assignment:
		return "Assignment " + n.Op
	case *BinaryOp:
		return "BinaryOp " + n.Op
	case *UnaryOp:
		return "UnaryOp " + n.Op
	case *Literal:
		return "Literal " + n.Type.String() + " " + n.Text()
	case *Identifier:
		return "Identifier " + n.Name
	case *FunctionCall:
		return "FunctionCall " + n.Name
	case *FunctionDef:
		return "FunctionDef " + n.Name.Name
	}
	return n.Kind()
}

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
