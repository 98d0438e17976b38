package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// LexError reports a character or construct the lexer could not recognize.
// The lexer skips exactly one character after reporting it.
type LexError struct {
	Pos Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lexer converts source text into tokens.
//
// RESPONSIBILITIES:
//   - split the source into keywords, identifiers, literals and operators
//   - attach a Position to every token
//   - skip whitespace, "#" comments and "//" comments
//
// RECOVERY:
// A Lexer never stops on bad input. An illegal character is recorded as a
// LexError (see Errors) and scanning resumes at the next character, so
//
//	x = 1 @ + 2
//
// yields the same tokens as "x = 1 + 2" plus one error at 1:7.
type Lexer struct {
	// source is the whole input; lookahead indexes into it directly.
	source string

	// filename is copied into every Position.
	filename string

	// start is the byte offset of the token being scanned, current the
	// offset of the next unread byte.
	start   int
	current int

	line      int
	lineStart int // byte offset of the first byte of the current line

	errors []error
}

// New creates a Lexer for source. filename only appears in positions.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// Tokenize scans the whole of source and returns its tokens, always
// terminated by a single TokenEOF, together with any lexical errors.
func Tokenize(source, filename string) ([]Token, []error) {
	l := New(source, filename)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, l.Errors()
		}
	}
}

// Errors returns the lexical errors seen so far, in source order.
func (l *Lexer) Errors() []error {
	return l.errors
}

// NextToken returns the next token. After the end of input it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		l.start = l.current

		if l.isAtEnd() {
			return l.makeToken(TokenEOF, "")
		}
		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

// scanToken scans one token starting at l.start. It returns false after
// recording an error and skipping the offending character.
func (l *Lexer) scanToken() (Token, bool) {
	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), true
	}
	if isDigit(ch) {
		return l.scanNumber(), true
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), true
	case ')':
		return l.makeToken(TokenRightParen, ")"), true
	case ',':
		return l.makeToken(TokenComma, ","), true
	case ':':
		return l.makeToken(TokenColon, ":"), true
	case ';':
		return l.makeToken(TokenSemicolon, ";"), true
	case '%':
		return l.makeToken(TokenPercent, "%"), true

	case '+':
		return l.either('=', TokenPlusEq, TokenPlus), true
	case '-':
		return l.either('=', TokenMinusEq, TokenMinus), true
	case '*':
		return l.either('=', TokenStarEq, TokenStar), true
	case '/':
		return l.either('=', TokenSlashEq, TokenSlash), true
	case '=':
		return l.either('=', TokenEqual, TokenAssign), true
	case '<':
		return l.either('=', TokenLessEqual, TokenLess), true
	case '>':
		return l.either('=', TokenGreaterEqual, TokenGreater), true
	case '!':
		return l.either('=', TokenNotEqual, TokenNot), true

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd, "&&"), true
		}
	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr, "||"), true
		}

	case '"':
		return l.scanString()
	}

	l.errorf("illegal character %q", ch)
	return Token{}, false
}

// either consumes next if present and returns the two-character token,
// otherwise the single-character one.
func (l *Lexer) either(next rune, long, short TokenType) Token {
	if l.match(next) {
		return l.makeToken(long, l.source[l.start:l.current])
	}
	return l.makeToken(short, l.source[l.start:l.current])
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespace skips blanks, newlines and line comments (# or //).
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.line++
			l.lineStart = l.current
		case '#':
			l.skipLine()
		case '/':
			if l.peekNext() != '/' {
				return
			}
			l.skipLine()
		default:
			return
		}
	}
}

// skipLine stops before the newline so line accounting stays in one place.
func (l *Lexer) skipLine() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) scanIdentifier() Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	text := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber scans digits, an optional fraction and an optional exponent.
// A fraction or exponent makes the literal a FLOAT. A dangling "e" with no
// digits after it is not part of the number.
func (l *Lexer) scanNumber() Token {
	typ := TokenInteger
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		typ = TokenFloat
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		saved := l.current
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if isDigit(l.peek()) {
			typ = TokenFloat
			for isDigit(l.peek()) {
				l.advance()
			}
		} else {
			l.current = saved
		}
	}

	return l.makeToken(typ, l.source[l.start:l.current])
}

// scanString scans a double-quoted literal. Strings may not span lines.
// On failure only the opening quote is consumed.
func (l *Lexer) scanString() (Token, bool) {
	for !l.isAtEnd() {
		switch l.peek() {
		case '"':
			l.advance()
			return l.makeToken(TokenString, l.source[l.start:l.current]), true
		case '\n':
			return l.unterminated()
		case '\\':
			l.advance()
			if l.peek() == '\n' {
				return l.unterminated()
			}
			l.advance()
		default:
			l.advance()
		}
	}
	return l.unterminated()
}

func (l *Lexer) unterminated() (Token, bool) {
	l.current = l.start + 1
	l.errorf("unterminated string literal")
	return Token{}, false
}

func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.currentPosition(),
	}
}

func (l *Lexer) currentPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}
}

func (l *Lexer) errorf(format string, args ...any) {
	l.errors = append(l.errors, &LexError{
		Pos: l.currentPosition(),
		Msg: fmt.Sprintf(format, args...),
	})
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
