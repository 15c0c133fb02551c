package parser

import (
	"errors"
	"fmt"
)

// LexicalError reports an unrecognized character or unterminated literal.
// Tokenization stops at the first one.
type LexicalError struct {
	Message string
	Line    int
	Column  int
	Context string

	// Incomplete is true when the input ended mid-construct, so appending
	// more text could make it lex.
	Incomplete bool
}

func (e *LexicalError) Error() string {
	msg := fmt.Sprintf("lexical error: %s at line %d, column %d", e.Message, e.Line, e.Column)
	if e.Context != "" {
		msg += "\n" + e.Context
	}
	return msg
}

// SyntaxError reports a token stream that matches no grammar production.
// Parsing stops at the first one; no partial AST is returned.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
	Context string

	// Incomplete is true when the parser ran out of input instead of
	// meeting an unexpected token.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error: %s at line %d, column %d", e.Message, e.Line, e.Column)
	if e.Context != "" {
		msg += "\n" + e.Context
	}
	return msg
}

// IsIncomplete reports whether err failed only because the input ended too
// early. Interactive callers use it to prompt for a continuation line
// instead of reporting the error.
func IsIncomplete(err error) bool {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Incomplete
	}
	var lexErr *LexicalError
	if errors.As(err, &lexErr) {
		return lexErr.Incomplete
	}
	return false
}
