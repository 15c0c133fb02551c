// Package token defines the lexical tokens of the streamlang language.
package token

// Type identifies the kind of a token.
type Type string

// Token is a single lexical unit produced by the lexer. Tokens are
// immutable; Line and Column point at the first character of the literal.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	COMMENT = "COMMENT"

	// Identifiers + literals
	IDENT      = "IDENT"      // counter, title
	INT_LIT    = "INT_LIT"    // 42
	STRING_LIT = "STRING_LIT" // "a.mp4"

	// Operators and delimiters
	ASSIGN    = "="
	PLUS      = "+"
	MINUS     = "-"
	ASTERISK  = "*"
	SLASH     = "/"
	EQ        = "=="
	NOT_EQ    = "!="
	LT        = "<"
	GT        = ">"
	LTE       = "<="
	GTE       = ">="
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	SEMICOLON = ";"

	// Keywords
	IF    = "IF"
	ELSE  = "ELSE"
	WHILE = "WHILE"
	PRINT = "PRINT"

	// Media transport commands
	OPEN    = "OPEN"
	PLAY    = "PLAY"
	PAUSE   = "PAUSE"
	STOP    = "STOP"
	SEEK    = "SEEK"
	FORWARD = "FORWARD"
	REWIND  = "REWIND"
	WAIT    = "WAIT"

	// Media state queries
	POSITION   = "POSITION"
	DURATION   = "DURATION"
	ENDED      = "ENDED"
	IS_PLAYING = "IS_PLAYING"
)

var keywords = map[string]Type{
	"if":         IF,
	"else":       ELSE,
	"while":      WHILE,
	"print":      PRINT,
	"open":       OPEN,
	"play":       PLAY,
	"pause":      PAUSE,
	"stop":       STOP,
	"seek":       SEEK,
	"forward":    FORWARD,
	"rewind":     REWIND,
	"wait":       WAIT,
	"position":   POSITION,
	"duration":   DURATION,
	"ended":      ENDED,
	"is_playing": IS_PLAYING,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a
// keyword. Keyword matching is exact and case-sensitive.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// IsCommand reports whether t is a media transport command keyword.
func IsCommand(t Type) bool {
	switch t {
	case OPEN, PLAY, PAUSE, STOP, SEEK, FORWARD, REWIND, WAIT:
		return true
	}
	return false
}

// IsQuery reports whether t is a media state query keyword.
func IsQuery(t Type) bool {
	switch t {
	case POSITION, DURATION, ENDED, IS_PLAYING:
		return true
	}
	return false
}
