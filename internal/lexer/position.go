// Package lexer turns source text into a stream of positioned tokens.
package lexer

import "strconv"

// Position is a location in the source code.
//
// Line and Column are 1-based. Column counts bytes from the start of the
// line, so a tab or a multi-byte rune advances it by its encoded width.
// Offset is the 0-based byte offset from the start of the file.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// String formats the position as "file:line:col". The filename is omitted
// when empty, giving "line:col".
func (p Position) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Filename == "" {
		return s
	}
	return p.Filename + ":" + s
}

// IsValid reports whether the position points at a real line.
// The zero Position is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}
