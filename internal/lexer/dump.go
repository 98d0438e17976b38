package lexer

import (
	"fmt"
	"io"
)

// WriteTokens writes one "TYPE : value line L column C" row per token.
// The trailing EOF token is not written.
func WriteTokens(w io.Writer, tokens []Token) error {
	for _, tok := range tokens {
		if tok.Type == TokenEOF {
			break
		}
		_, err := fmt.Fprintf(w, "%s : %s line %d column %d\n",
			tok.Type, tok.Lexeme, tok.Position.Line, tok.Position.Column)
		if err != nil {
			return err
		}
	}
	return nil
}
