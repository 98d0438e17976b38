package lexer

// TokenType identifies the lexical class of a token.
type TokenType int

// Token types. Keywords and operators are kept in contiguous ranges so
// IsKeyword and IsOperator can use range checks.
const (
	TokenEOF TokenType = iota

	// Literals
	TokenInteger
	TokenFloat
	TokenString
	TokenTrue
	TokenFalse

	TokenIdentifier

	keywordStart
	TokenIf
	TokenElseIf
	TokenElse
	TokenWhile
	TokenFor
	TokenIn
	TokenFunction
	TokenEnd
	TokenReturn
	keywordEnd

	operatorStart
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenGreater      // >
	TokenGreaterEqual // >=

	TokenAnd // &&
	TokenOr  // ||
	TokenNot // !

	TokenAssign  // =
	TokenPlusEq  // +=
	TokenMinusEq // -=
	TokenStarEq  // *=
	TokenSlashEq // /=
	operatorEnd

	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
	TokenColon      // :
	TokenSemicolon  // ;
)

// Token is a single lexical token.
//
// Lexeme is the exact source text. For string literals it still carries the
// surrounding quotes and escape sequences; the parser unescapes it.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// String returns "TYPE(lexeme) at file:line:col", used in test failures.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// Describe returns the wording used for the token in syntax errors.
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier:
		return "identifier " + t.Lexeme
	case TokenInteger, TokenFloat, TokenString:
		return t.Type.String() + " " + t.Lexeme
	}
	return "'" + t.Lexeme + "'"
}

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenInteger:
		return "INTEGER"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenIdentifier:
		return "ID"
	case TokenIf:
		return "IF"
	case TokenElseIf:
		return "ELSEIF"
	case TokenElse:
		return "ELSE"
	case TokenWhile:
		return "WHILE"
	case TokenFor:
		return "FOR"
	case TokenIn:
		return "IN"
	case TokenFunction:
		return "FUNCTION"
	case TokenEnd:
		return "END"
	case TokenReturn:
		return "RETURN"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "TIMES"
	case TokenSlash:
		return "DIVIDE"
	case TokenPercent:
		return "MOD"
	case TokenEqual:
		return "EQ"
	case TokenNotEqual:
		return "NE"
	case TokenLess:
		return "LT"
	case TokenLessEqual:
		return "LE"
	case TokenGreater:
		return "GT"
	case TokenGreaterEqual:
		return "GE"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenAssign:
		return "ASSIGN"
	case TokenPlusEq:
		return "PLUS_ASSIGN"
	case TokenMinusEq:
		return "MINUS_ASSIGN"
	case TokenStarEq:
		return "TIMES_ASSIGN"
	case TokenSlashEq:
		return "DIVIDE_ASSIGN"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "RANGE"
	case TokenSemicolon:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}

// keywords maps reserved words to their token types. Lookup is case-sensitive.
var keywords = map[string]TokenType{
	"if":       TokenIf,
	"elseif":   TokenElseIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"in":       TokenIn,
	"function": TokenFunction,
	"end":      TokenEnd,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"false":    TokenFalse,
}

// LookupKeyword returns the keyword token type for ident, or TokenIdentifier.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether the type is a reserved word.
// true and false are literals, not keywords.
func (tt TokenType) IsKeyword() bool {
	return tt > keywordStart && tt < keywordEnd
}

// IsOperator reports whether the type is an operator.
func (tt TokenType) IsOperator() bool {
	return tt > operatorStart && tt < operatorEnd
}

// IsAssignment reports whether the type is = or a compound assignment.
func (tt TokenType) IsAssignment() bool {
	switch tt {
	case TokenAssign, TokenPlusEq, TokenMinusEq, TokenStarEq, TokenSlashEq:
		return true
	}
	return false
}

// IsLiteral reports whether the type is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenInteger && tt <= TokenFalse
}
