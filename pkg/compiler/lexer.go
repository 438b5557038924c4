package compiler

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"with": WITH,
}

// Lexer holds all mutable state for a single scanning pass over src.
// It hands out tokens on demand; it never fails. Characters outside the
// language come back as UNKNOWN tokens for the parser to reject.
type Lexer struct {
	src string
	pos int // index of the next byte to consume
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// The language is ASCII only: identifiers are plain letters, numbers are
// plain digits. Anything else is a single-character token.

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// peek returns the byte at the current position without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// scanIdent collects a full identifier or keyword token.
// The first letter must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kw, ok := keywords[text]; ok {
		return Token{Type: kw, Text: text}
	}
	return Token{Type: IDENTIFIER, Text: text}
}

// scanNumber collects a decimal integer literal.
// The first digit must still be at l.peek().
func (l *Lexer) scanNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Type: NUMBER, Text: l.src[start:l.pos]}
}

// Next skips whitespace and returns the next token. Once the input is
// exhausted it returns EOF tokens forever.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Text: ""}
	}

	ch := l.peek()
	if isLetter(ch) {
		return l.scanIdent()
	}
	if isDigit(ch) {
		return l.scanNumber()
	}

	text := l.src[l.pos : l.pos+1]
	l.pos++
	switch ch {
	case ',':
		return Token{COMMA, text}
	case ':':
		return Token{COLON, text}
	case '+':
		return Token{PLUS, text}
	case '-':
		return Token{MINUS, text}
	case '*':
		return Token{STAR, text}
	case '/':
		return Token{SLASH, text}
	case '(':
		return Token{LPAREN, text}
	case ')':
		return Token{RPAREN, text}
	default:
		return Token{UNKNOWN, text}
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
func Lex(src string) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}
