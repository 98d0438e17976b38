package semantic

import (
	"errors"
	"testing"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/parser"
	"github.com/hassan/tacc/internal/parser/ast"
	"github.com/hassan/tacc/internal/semantic/types"
	"github.com/hassan/tacc/internal/symtab"
	"github.com/nalgeon/be"
)

func expr(t *testing.T, source string) ast.Expr {
	t.Helper()
	prog, err := parser.ParseSource(source, "test.src")
	be.Err(t, err, nil)
	switch s := prog.Statements[0].(type) {
	case *ast.ExprStmt:
		return s.X
	case *ast.Assignment:
		return s
	}
	t.Fatalf("not an expression: %s", source)
	return nil
}

func table() *symtab.Table {
	tab := symtab.New()
	tab.Declare("i", types.Int, lexer.Position{})
	tab.Declare("f", types.Float, lexer.Position{})
	tab.Declare("s", types.String, lexer.Position{})
	tab.Declare("b", types.Bool, lexer.Position{})
	fn := types.NewFunction(1)
	fn.Return = types.Float
	tab.DeclareFunction("half", fn, lexer.Position{})
	tab.EnterScope("g")
	tab.DeclareParam("p", lexer.Position{})
	return tab
}

func TestResolve(t *testing.T) {
	tests := []struct {
		source string
		want   types.Type
	}{
		{"1 + 2", types.Int},
		{"1 + 2.5", types.Float},
		{"i * 2 - 1", types.Int},
		{"(i + 1) * 2 + f", types.Float},
		{"i + 1 + 2 * 3.0", types.Float},
		{"-f", types.Float},
		{"-i", types.Int},
		{"!b", types.Bool},
		{"i < f", types.Bool},
		{"s == \"x\"", types.Bool},
		{"i < 3 && b", types.Bool},
		{"s + s", types.String},
		{"p + 1", types.Any},
		{"p * 1.5", types.Float},
		{"half(i)", types.Float},
		{"half(i) + 1", types.Float},
		{"x = 1", types.Int},
		{"i += 0.5", types.Float},
		{"true", types.Bool},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := NewResolver(table()).Resolve(expr(t, tt.source))
			be.Err(t, err, nil)
			be.Equal(t, got.String(), tt.want.String())
		})
	}
}

func TestResolve_Mismatch(t *testing.T) {
	tests := []struct {
		source string
		msg    string
	}{
		{"s + i", "test.src:1:1: type mismatch in BinaryOp: STRING + INTEGER"},
		{"1 + (b * 2)", "test.src:1:6: type mismatch in BinaryOp: BOOL * INTEGER"},
		{"-s", "test.src:1:1: type mismatch in UnaryOp: - STRING"},
		{"f && b", "test.src:1:1: type mismatch in BinaryOp: FLOAT && BOOL"},
		{"s -= 1", "test.src:1:1: type mismatch in Assignment: STRING -= INTEGER"},
		{"half(1, 2)", "test.src:1:1: type mismatch in FunctionCall: half expects 1 arguments, got 2"},
		{"i(1)", "test.src:1:1: type mismatch in FunctionCall: i is a INTEGER variable, not a function"},
		{"half + 1", "test.src:1:1: type mismatch in Identifier: function half used as a value"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := NewResolver(table()).Resolve(expr(t, tt.source))
			var mismatch *TypeMismatchError
			be.True(t, errors.As(err, &mismatch))
			be.Equal(t, err.Error(), tt.msg)
		})
	}
}

func TestResolve_Undefined(t *testing.T) {
	tests := []struct {
		source string
		name   string
		node   string
	}{
		{"q + 1", "q", "Identifier"},
		{"nope(1)", "nope", "FunctionCall"},
		{"q += 1", "q", "Assignment"},
		{"half(q)", "q", "Identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := NewResolver(table()).Resolve(expr(t, tt.source))
			var undef *symtab.UndefinedSymbolError
			be.True(t, errors.As(err, &undef))
			be.Equal(t, undef.Name, tt.name)
			be.Equal(t, undef.Node, tt.node)
		})
	}
}

func TestResolver_Node(t *testing.T) {
	tests := []struct {
		source   string
		operands []types.Type
		want     types.Type
	}{
		{"1 + 2", []types.Type{types.Float, types.Int}, types.Float},
		{"1 < 2", []types.Type{types.Any, types.String}, types.Bool},
		{"-1", []types.Type{types.Float}, types.Float},
		{"x = 1", []types.Type{types.String}, types.String},
		{"i += 1", []types.Type{types.Float}, types.Float},
		{"f", nil, types.Float},
		{"2.5", nil, types.Float},
		{"half(1)", nil, types.Float},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := NewResolver(table()).Node(expr(t, tt.source), tt.operands...)
			be.Err(t, err, nil)
			be.Equal(t, got.String(), tt.want.String())
		})
	}
}

func TestResolver_NodeMatchesResolve(t *testing.T) {
	r := NewResolver(table())
	e := expr(t, "i * 2 + f").(*ast.BinaryOp)

	left, err := r.Resolve(e.Left)
	be.Err(t, err, nil)
	right, err := r.Resolve(e.Right)
	be.Err(t, err, nil)
	step, err := r.Node(e, left, right)
	be.Err(t, err, nil)

	whole, err := r.Resolve(e)
	be.Err(t, err, nil)
	be.Equal(t, step.String(), whole.String())

	_, err = r.Node(expr(t, "s + i"), types.String, types.Int)
	be.Err(t, err, "STRING + INTEGER")
}

func TestRetypeWarning(t *testing.T) {
	w := &RetypeWarning{Name: "x", From: types.Int, To: types.Float, SlotSize: 4, Pos: lexer.Position{Line: 3, Column: 1}}
	be.Equal(t, w.Error(), "3:1: x retyped from INTEGER to FLOAT, slot stays 4 bytes")

	w = &RetypeWarning{Name: "x", From: types.Float, To: types.String, SlotSize: 8, Pos: lexer.Position{Line: 3, Column: 1}}
	be.Equal(t, w.Error(), "3:1: x retyped from FLOAT to STRING")
}

func TestRangeBound(t *testing.T) {
	loop := &ast.ForLoop{}
	got, err := RangeBound(loop, types.Int, types.Float)
	be.Err(t, err, nil)
	be.Equal(t, got, types.Type(types.Float))

	_, err = RangeBound(loop, types.Int, types.String)
	be.Err(t, err, "type mismatch in ForLoop")
}
