// Package types defines the primitive types of the language and the rules
// that combine them in expressions.
package types

import "fmt"

// Type is a static type.
type Type interface {
	String() string
	Equals(other Type) bool
	// Size is the storage width in bytes of a value of this type.
	Size() int
	kind() Kind
}

// Kind enumerates the type variants.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindAny
	KindFunction
)

// Primitive is one of the built-in scalar types.
type Primitive struct {
	name  string
	size  int
	tkind Kind
}

func (p *Primitive) String() string { return p.name }
func (p *Primitive) Size() int      { return p.size }
func (p *Primitive) kind() Kind     { return p.tkind }

// Equals reports whether other is the same primitive. Invalid equals nothing.
func (p *Primitive) Equals(other Type) bool {
	return other != nil && p.tkind != KindInvalid && p.tkind == other.kind()
}

// The primitive types. Any is the type of values whose type is only known
// at run time: function parameters and results of calls to functions
// without a consistent return type.
var (
	Invalid = &Primitive{"INVALID", 0, KindInvalid}
	Int     = &Primitive{"INTEGER", 4, KindInt}
	Float   = &Primitive{"FLOAT", 8, KindFloat}
	String  = &Primitive{"STRING", 8, KindString}
	Bool    = &Primitive{"BOOL", 1, KindBool}
	Any     = &Primitive{"ANY", 8, KindAny}
)

// FunctionType describes a user function. Functions are not values, so a
// FunctionType occupies no storage.
type FunctionType struct {
	Arity  int
	Return Type
}

func (f *FunctionType) String() string {
	return fmt.Sprintf("FUNCTION/%d -> %s", f.Arity, f.Return)
}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	return ok && f.Arity == o.Arity && f.Return.Equals(o.Return)
}

func (f *FunctionType) Size() int  { return 0 }
func (f *FunctionType) kind() Kind { return KindFunction }

// NewFunction returns a function type with the given arity. The return type
// starts out unknown (Any) until a return statement is seen.
func NewFunction(arity int) *FunctionType {
	return &FunctionType{Arity: arity, Return: Any}
}

// IsNumeric reports whether t can be an arithmetic operand.
func IsNumeric(t Type) bool {
	switch t.kind() {
	case KindInt, KindFloat, KindAny:
		return true
	}
	return false
}

// IsTruthy reports whether t can be a logical operand.
func IsTruthy(t Type) bool {
	switch t.kind() {
	case KindBool, KindInt, KindAny:
		return true
	}
	return false
}

// IsAny reports whether t is the dynamic type.
func IsAny(t Type) bool {
	return t.kind() == KindAny
}

// IsFunction reports whether t is a function type.
func IsFunction(t Type) bool {
	return t.kind() == KindFunction
}

// Promote returns the arithmetic result type of two numeric operands:
// FLOAT if either is FLOAT, else ANY if either is ANY, else INTEGER.
func Promote(left, right Type) Type {
	switch {
	case left.kind() == KindFloat || right.kind() == KindFloat:
		return Float
	case IsAny(left) || IsAny(right):
		return Any
	}
	return Int
}

// Binary returns the result type of left op right. ok is false when the
// operand types are incompatible with the operator. Unknown operators are
// never ok.
func Binary(op string, left, right Type) (result Type, ok bool) {
	switch op {
	case "+", "-", "*", "/", "%":
		if op == "+" && left.kind() == KindString && right.kind() == KindString {
			return String, true
		}
		if IsNumeric(left) && IsNumeric(right) {
			return Promote(left, right), true
		}
	case "==", "!=":
		if left.Equals(right) || IsAny(left) || IsAny(right) ||
			(IsNumeric(left) && IsNumeric(right)) {
			return Bool, !IsFunction(left) && !IsFunction(right)
		}
	case "<", "<=", ">", ">=":
		if (IsNumeric(left) && IsNumeric(right)) ||
			(left.kind() == KindString && right.kind() == KindString) ||
			(IsAny(left) && right.kind() == KindString) ||
			(left.kind() == KindString && IsAny(right)) {
			return Bool, true
		}
	case "&&", "||":
		if IsTruthy(left) && IsTruthy(right) {
			return Bool, true
		}
	}
	return Invalid, false
}

// Unary returns the result type of a prefix operator applied to operand.
// Negation preserves the operand type.
func Unary(op string, operand Type) (result Type, ok bool) {
	switch op {
	case "-":
		if IsNumeric(operand) {
			return operand, true
		}
	case "!":
		if IsTruthy(operand) {
			return Bool, true
		}
	}
	return Invalid, false
}
