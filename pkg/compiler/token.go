package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	UNKNOWN // any character the lexer has no rule for

	// Literals
	IDENTIFIER // variable name
	NUMBER     // decimal integer literal

	// Keywords
	WITH // "with"

	// Punctuation
	COMMA // ,
	COLON // :

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// Paired delimiters
	LPAREN // (
	RPAREN // )
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	UNKNOWN:    "UNKNOWN",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	WITH:       "WITH",
	COMMA:      "COMMA",
	COLON:      "COLON",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer. Text is a slice of
// the source string, so it stays valid for as long as the source does. The
// EOF token has empty Text.
type Token struct {
	Type TokenType
	Text string // the exact source text that was matched
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %q", t.Type, t.Text)
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsOneOf reports whether the token has any of the given types.
func (t Token) IsOneOf(types ...TokenType) bool {
	for _, tt := range types {
		if t.Type == tt {
			return true
		}
	}
	return false
}
