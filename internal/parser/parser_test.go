package parser

import (
	"errors"
	"testing"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/parser/ast"
	"github.com/nalgeon/be"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := ParseSource(source, "test.src")
	be.Err(t, err, nil)
	return prog
}

func TestParse_Expressions(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(program (+ 1 (* 2 3)))"},
		{"(1 + 2) * 3", "(program (* (+ 1 2) 3))"},
		{"a - b - c", "(program (- (- a b) c))"},
		{"a / b % c", "(program (% (/ a b) c))"},
		{"-a * b", "(program (* (- a) b))"},
		{"- -a", "(program (- (- a)))"},
		{"!a == b", "(program (== (! a) b))"},
		{"a < b == c >= d", "(program (== (< a b) (>= c d)))"},
		{"a == b != c", "(program (!= (== a b) c))"},
		{"a || b && c", "(program (|| a (&& b c)))"},
		{"a && b || c && d", "(program (|| (&& a b) (&& c d)))"},
		{"a < b && c > d", "(program (&& (< a b) (> c d)))"},
		{"x = 1 + 2", "(program (= x (+ 1 2)))"},
		{"a = b = 0", "(program (= a (= b 0)))"},
		{"x += y * 2", "(program (+= x (* y 2)))"},
		{"f()", "(program (call f))"},
		{"f(1, g(x), \"s\")", `(program (call f 1 (call g x) "s"))`},
		{"y = 2.5 z = true", "(program (= y 2.5) (= z true))"},
		{"x = 1; y = 2", "(program (= x 1) (= y 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			be.Equal(t, ast.Sexpr(parse(t, tt.source)), tt.want)
		})
	}
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "if only",
			source: "if a x = 1 end",
			want:   "(program (if a (block (= x 1))))",
		},
		{
			name:   "if elseif else",
			source: "if a x = 1 elseif b x = 2 elseif c x = 3 else x = 4 end",
			want:   "(program (if a (block (= x 1)) (elseif b (block (= x 2))) (elseif c (block (= x 3))) (else (block (= x 4)))))",
		},
		{
			name:   "empty blocks",
			source: "if a else end",
			want:   "(program (if a (block) (else (block))))",
		},
		{
			name:   "while",
			source: "while x < 10 x = x + 1 end",
			want:   "(program (while (< x 10) (block (= x (+ x 1)))))",
		},
		{
			name:   "for range",
			source: "for i in 1 : n s += i end",
			want:   "(program (for i 1 n (block (+= s i))))",
		},
		{
			name:   "function",
			source: "function add(a, b) return a + b end",
			want:   "(program (function add (a b) (block (return (+ a b)))))",
		},
		{
			name:   "function without params and bare return",
			source: "function f() return end",
			want:   "(program (function f () (block (return))))",
		},
		{
			name:   "nested",
			source: "function f(n)\n  while n > 0\n    if n % 2 == 0 print(n) end\n    n -= 1\n  end\nend",
			want:   "(program (function f (n) (block (while (> n 0) (block (if (== (% n 2) 0) (block (call print n))) (-= n 1))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, ast.Sexpr(parse(t, tt.source)), tt.want)
		})
	}
}

func TestParse_StringEscapes(t *testing.T) {
	prog := parse(t, `s = "a\tb\"c\\d\q"`)
	lit := prog.Statements[0].(*ast.Assignment).Value.(*ast.Literal)
	be.Equal(t, lit.Type, ast.LitString)
	be.Equal(t, lit.Value.(string), "a\tb\"c\\d\\q")
}

func TestParse_LiteralValues(t *testing.T) {
	prog := parse(t, "a = 42 b = 2.5e1 c = false")
	values := []any{int64(42), 25.0, false}
	for i, stmt := range prog.Statements {
		be.Equal(t, stmt.(*ast.Assignment).Value.(*ast.Literal).Value, values[i])
	}
}

func TestParse_Positions(t *testing.T) {
	prog := parse(t, "x = 1\nwhile x\n  y = x\nend")
	loop := prog.Statements[1].(*ast.WhileLoop)
	be.Equal(t, loop.Pos().Line, 2)
	inner := loop.Body.Statements[0].(*ast.Assignment)
	be.Equal(t, inner.Pos().Line, 3)
	be.Equal(t, inner.Pos().Column, 3)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
		line     int
		column   int
		eof      bool
	}{
		{"missing end", "while x y = 1", "'end' to close while", 1, 14, true},
		{"missing expression", "x = ", "expression", 1, 5, true},
		{"stray end", "x = 1 end", "expression", 1, 7, false},
		{"chained comparison", "a < b < c", "parentheses around chained comparison", 1, 7, false},
		{"bad assignment target", "1 = x", "identifier before =", 1, 3, false},
		{"binary assignment target", "a + b = 3", "identifier before =", 1, 7, false},
		{"missing in", "for i 1 : 2 end", "'in'", 1, 7, false},
		{"missing range colon", "for i in 1 2 end", "':' between range bounds", 1, 12, false},
		{"unclosed paren", "x = (1 + 2", "')' after expression", 1, 11, true},
		{"bad param", "function f(1) end", "parameter name", 1, 12, false},
		{"elseif after else", "if a else elseif b end", "expression", 1, 11, false},
		{"integer overflow", "x = 99999999999999999999", "integer literal that fits in 64 bits", 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.source, "test.src")
			var syntaxErr *SyntaxError
			be.True(t, errors.As(err, &syntaxErr))
			be.Equal(t, syntaxErr.Expected, tt.expected)
			be.Equal(t, syntaxErr.Line(), tt.line)
			be.Equal(t, syntaxErr.Column(), tt.column)
			be.Equal(t, syntaxErr.EOF, tt.eof)
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := ParseSource("if x\n  y = 1 )", "prog.src")
	be.Equal(t, err.Error(), "prog.src:2:9: syntax error: expected expression, found ')'")

	_, err = ParseSource("if x\n  y = 1", "prog.src")
	be.Equal(t, err.Error(), "prog.src:2:8: unexpected end of input, expected 'end' to close if")
}

func TestParse_TokensWithoutEOF(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.TokenIdentifier, Lexeme: "x", Position: lexer.Position{Line: 1, Column: 1}},
		{Type: lexer.TokenAssign, Lexeme: "=", Position: lexer.Position{Line: 1, Column: 3}},
		{Type: lexer.TokenInteger, Lexeme: "1", Position: lexer.Position{Line: 1, Column: 5}},
	}
	prog, err := New(tokens).Parse()
	be.Err(t, err, nil)
	be.Equal(t, ast.Sexpr(prog), "(program (= x 1))")
}

func TestParse_Empty(t *testing.T) {
	prog := parse(t, "  # nothing here\n")
	be.Equal(t, len(prog.Statements), 0)
}
