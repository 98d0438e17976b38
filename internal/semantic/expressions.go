package semantic

import (
	"github.com/hassan/tacc/internal/parser/ast"
	"github.com/hassan/tacc/internal/semantic/types"
)

// LiteralType maps a literal's lexical type to its static type.
func LiteralType(lit *ast.Literal) types.Type {
	switch lit.Type {
	case ast.LitInteger:
		return types.Int
	case ast.LitFloat:
		return types.Float
	case ast.LitString:
		return types.String
	case ast.LitBool:
		return types.Bool
	}
	return types.Invalid
}

// Binary checks e given its operand types and returns its result type.
func Binary(e *ast.BinaryOp, left, right types.Type) (types.Type, error) {
	result, ok := types.Binary(e.Op, left, right)
	if !ok {
		return types.Invalid, &TypeMismatchError{Op: e.Op, Left: left, Right: right, Node: e.Kind(), Pos: e.Pos()}
	}
	return result, nil
}

// Unary checks e given its operand type and returns its result type.
func Unary(e *ast.UnaryOp, operand types.Type) (types.Type, error) {
	result, ok := types.Unary(e.Op, operand)
	if !ok {
		return types.Invalid, &TypeMismatchError{Op: e.Op, Left: operand, Node: e.Kind(), Pos: e.Pos()}
	}
	return result, nil
}

// Compound returns the type a compound assignment stores, e.g. FLOAT for
// x += 1.5 when x is INTEGER.
func Compound(e *ast.Assignment, target, value types.Type) (types.Type, error) {
	result, ok := types.Binary(e.ArithOp(), target, value)
	if !ok {
		return types.Invalid, &TypeMismatchError{Op: e.Op, Left: target, Right: value, Node: e.Kind(), Pos: e.Pos()}
	}
	return result, nil
}

// RangeBound returns the induction type of a for loop from its bounds.
// Both bounds must be numeric.
func RangeBound(loop *ast.ForLoop, start, end types.Type) (types.Type, error) {
	if !types.IsNumeric(start) || !types.IsNumeric(end) {
		return types.Invalid, &TypeMismatchError{Op: ":", Left: start, Right: end, Node: loop.Kind(), Pos: loop.Pos()}
	}
	return types.Promote(start, end), nil
}
