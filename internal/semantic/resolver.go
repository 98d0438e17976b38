// Package semantic resolves the static type of expressions against a
// symbol table.
package semantic

import (
	"fmt"

	"github.com/hassan/tacc/internal/parser/ast"
	"github.com/hassan/tacc/internal/semantic/types"
	"github.com/hassan/tacc/internal/symtab"
)

// Resolver computes expression types. It reads the symbol table but never
// declares or retypes anything.
type Resolver struct {
	table *symtab.Table
}

// NewResolver returns a resolver over table.
func NewResolver(table *symtab.Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve returns the type of expr, resolving its operands first. Errors
// are *symtab.UndefinedSymbolError or *TypeMismatchError.
func (r *Resolver) Resolve(expr ast.Expr) (types.Type, error) {
	var operands []ast.Expr
	switch e := expr.(type) {
	case *ast.BinaryOp:
		operands = []ast.Expr{e.Left, e.Right}
	case *ast.UnaryOp:
		operands = []ast.Expr{e.Operand}
	case *ast.Assignment:
		operands = []ast.Expr{e.Value}
	case *ast.FunctionCall:
		if _, err := r.Function(e); err != nil {
			return types.Invalid, err
		}
		for _, arg := range e.Args {
			if _, err := r.Resolve(arg); err != nil {
				return types.Invalid, err
			}
		}
	}

	resolved := make([]types.Type, len(operands))
	for i, op := range operands {
		typ, err := r.Resolve(op)
		if err != nil {
			return types.Invalid, err
		}
		resolved[i] = typ
	}
	return r.Node(expr, resolved...)
}

// Node returns the type of expr alone, given the types of its operands:
// left and right of a BinaryOp, the operand of a UnaryOp, the value of an
// Assignment. Literals, identifiers and calls take none. The emitter types
// each node this way as it lowers it.
func (r *Resolver) Node(expr ast.Expr, operands ...types.Type) (types.Type, error) {
	want := 0
	switch expr.(type) {
	case *ast.BinaryOp:
		want = 2
	case *ast.UnaryOp, *ast.Assignment:
		want = 1
	}
	if len(operands) != want {
		panic(fmt.Sprintf("semantic: %T takes %d operand types, got %d", expr, want, len(operands)))
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return LiteralType(e), nil

	case *ast.Identifier:
		sym, err := r.Variable(e, e.Kind())
		if err != nil {
			return types.Invalid, err
		}
		return sym.Type, nil

	case *ast.BinaryOp:
		return Binary(e, operands[0], operands[1])

	case *ast.UnaryOp:
		return Unary(e, operands[0])

	case *ast.Assignment:
		if !e.IsCompound() {
			return operands[0], nil
		}
		target, err := r.Variable(e.Target, e.Kind())
		if err != nil {
			return types.Invalid, err
		}
		return Compound(e, target.Type, operands[0])

	case *ast.FunctionCall:
		fn, err := r.Function(e)
		if err != nil {
			return types.Invalid, err
		}
		return fn.Return, nil
	}
	panic(fmt.Sprintf("semantic: unexpected expression %T", expr))
}

// Variable looks up a name used as a value. node names the AST node kind
// for the error message.
func (r *Resolver) Variable(id *ast.Identifier, node string) (*symtab.Symbol, error) {
	sym, ok := r.table.Lookup(id.Name)
	if !ok {
		return nil, &symtab.UndefinedSymbolError{Name: id.Name, Node: node, Pos: id.Pos()}
	}
	if !sym.HasStorage() {
		return nil, &TypeMismatchError{
			Node:   node,
			Pos:    id.Pos(),
			Detail: fmt.Sprintf("function %s used as a value", id.Name),
		}
	}
	return sym, nil
}

// Function looks up the callee of call and checks the argument count.
func (r *Resolver) Function(call *ast.FunctionCall) (*types.FunctionType, error) {
	sym, ok := r.table.Lookup(call.Name)
	if !ok {
		return nil, &symtab.UndefinedSymbolError{Name: call.Name, Node: call.Kind(), Pos: call.Pos()}
	}
	fn := sym.Function()
	if fn == nil {
		return nil, &TypeMismatchError{
			Node:   call.Kind(),
			Pos:    call.Pos(),
			Detail: fmt.Sprintf("%s is a %s %s, not a function", call.Name, sym.Type, sym.Kind),
		}
	}
	if fn.Arity != len(call.Args) {
		return nil, &TypeMismatchError{
			Node:   call.Kind(),
			Pos:    call.Pos(),
			Detail: fmt.Sprintf("%s expects %d arguments, got %d", call.Name, fn.Arity, len(call.Args)),
		}
	}
	return fn, nil
}
