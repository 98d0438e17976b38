package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestPrimitive_StringAndSize(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		size int
	}{
		{Int, "INTEGER", 4},
		{Float, "FLOAT", 8},
		{String, "STRING", 8},
		{Bool, "BOOL", 1},
		{Any, "ANY", 8},
		{Invalid, "INVALID", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.typ.String(), tt.name)
			be.Equal(t, tt.typ.Size(), tt.size)
		})
	}
}

func TestPrimitive_Equals(t *testing.T) {
	be.True(t, Int.Equals(Int))
	be.True(t, !Int.Equals(Float))
	be.True(t, !Bool.Equals(Int))
	be.True(t, !Invalid.Equals(Invalid))
	be.True(t, !Int.Equals(NewFunction(0)))
}

func TestFunctionType(t *testing.T) {
	f := NewFunction(2)
	be.Equal(t, f.String(), "FUNCTION/2 -> ANY")
	be.Equal(t, f.Size(), 0)
	be.True(t, f.Equals(NewFunction(2)))
	be.True(t, !f.Equals(NewFunction(1)))
	be.True(t, IsFunction(f))
}

func TestBinary(t *testing.T) {
	tests := []struct {
		name  string
		op    string
		left  Type
		right Type
		want  Type
		ok    bool
	}{
		{"int plus int", "+", Int, Int, Int, true},
		{"int plus float", "+", Int, Float, Float, true},
		{"float times int", "*", Float, Int, Float, true},
		{"int mod int", "%", Int, Int, Int, true},
		{"any minus int", "-", Any, Int, Any, true},
		{"any plus float", "+", Any, Float, Float, true},
		{"string concat", "+", String, String, String, true},
		{"string minus string", "-", String, String, Invalid, false},
		{"string plus int", "+", String, Int, Invalid, false},
		{"bool plus int", "+", Bool, Int, Invalid, false},
		{"int less float", "<", Int, Float, Bool, true},
		{"string less string", "<", String, String, Bool, true},
		{"string less int", "<", String, Int, Invalid, false},
		{"bool less bool", "<", Bool, Bool, Invalid, false},
		{"any greater string", ">", Any, String, Bool, true},
		{"int equals float", "==", Int, Float, Bool, true},
		{"bool equals bool", "==", Bool, Bool, Bool, true},
		{"string not equals any", "!=", String, Any, Bool, true},
		{"string equals int", "==", String, Int, Invalid, false},
		{"bool and int", "&&", Bool, Int, Bool, true},
		{"bool or any", "||", Bool, Any, Bool, true},
		{"float and bool", "&&", Float, Bool, Invalid, false},
		{"unknown operator", "**", Int, Int, Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Binary(tt.op, tt.left, tt.right)
			be.Equal(t, ok, tt.ok)
			be.Equal(t, got.String(), tt.want.String())
		})
	}
}

func TestPromote_IsTransitive(t *testing.T) {
	// ((1 + 2) * 3.0) - 4 stays FLOAT once contaminated.
	step := Promote(Int, Int)
	be.Equal(t, step, Type(Int))
	step = Promote(step, Float)
	be.Equal(t, step, Type(Float))
	step = Promote(step, Int)
	be.Equal(t, step, Type(Float))
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op      string
		operand Type
		want    Type
		ok      bool
	}{
		{"-", Int, Int, true},
		{"-", Float, Float, true},
		{"-", Any, Any, true},
		{"-", String, Invalid, false},
		{"!", Bool, Bool, true},
		{"!", Int, Bool, true},
		{"!", String, Invalid, false},
		{"~", Int, Invalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.op+tt.operand.String(), func(t *testing.T) {
			got, ok := Unary(tt.op, tt.operand)
			be.Equal(t, ok, tt.ok)
			be.Equal(t, got.String(), tt.want.String())
		})
	}
}
