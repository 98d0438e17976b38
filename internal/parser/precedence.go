package parser

import (
	"github.com/hassan/tacc/internal/lexer"
)

// Precedence is the binding power of an infix operator. Higher binds
// tighter.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // = += -= *= /=
	PrecOr                    // ||
	PrecAnd                   // &&
	PrecEquality              // == !=
	PrecComparison            // < <= > >=
	PrecTerm                  // + -
	PrecFactor                // * / %
	PrecUnary                 // ! -
	PrecPrimary               // literals, identifiers, calls, grouping
)

// getPrecedence returns the infix precedence of tokenType, or PrecNone
// when the token cannot continue an expression.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenAssign,
		lexer.TokenPlusEq,
		lexer.TokenMinusEq,
		lexer.TokenStarEq,
		lexer.TokenSlashEq:
		return PrecAssignment
	case lexer.TokenOr:
		return PrecOr
	case lexer.TokenAnd:
		return PrecAnd
	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality
	case lexer.TokenLess,
		lexer.TokenLessEqual,
		lexer.TokenGreater,
		lexer.TokenGreaterEqual:
		return PrecComparison
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether a chain of tokenType groups to the
// right. Only assignment does; every binary operator groups left, except
// comparisons, which do not chain at all (see isNonAssociative).
func isRightAssociative(tokenType lexer.TokenType) bool {
	return tokenType.IsAssignment()
}

// isNonAssociative reports whether a < b < c must be rejected.
func isNonAssociative(tokenType lexer.TokenType) bool {
	return getPrecedence(tokenType) == PrecComparison
}
