package compiler

import "fmt"

// Parser builds an AST by pulling tokens from a Lexer with one token of
// lookahead.
//
// Grammar:
//
//	calc   = ("with" ident ("," ident)* ":")? expr EOF
//	expr   = term (("+" | "-") term)*
//	term   = factor (("*" | "/") factor)*
//	factor = IDENTIFIER | NUMBER | "(" expr ")"
//
// Both operator tiers fold strictly left, so a-b-c parses as (a-b)-c.
//
// Errors do not stop the parse. Each one is recorded and the parser moves
// to a token it can continue from: inside a factor it discards tokens until
// one of ) * + - / EOF, at the top level it discards everything through
// EOF. A recovered tree can have nil children, so any tree produced while
// HasError reports true is only good for inspection, never for lowering.
type Parser struct {
	lex  *Lexer
	tok  Token // one-token lookahead
	errs []error
}

func NewParser(lex *Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	return p
}

// Parse consumes the whole input and returns the syntax tree, or nil when
// the input had to be abandoned. Check HasError before trusting a non-nil
// result.
func (p *Parser) Parse() Node {
	return p.parseCalc()
}

// HasError reports whether any diagnostic was recorded.
func (p *Parser) HasError() bool {
	return len(p.errs) > 0
}

// Errors returns the recorded diagnostics in source order.
func (p *Parser) Errors() []error {
	return p.errs
}

// advance consumes the current token and pulls the next one.
func (p *Parser) advance() {
	p.tok = p.lex.Next()
}

// unexpected records a diagnostic for the current token. The driver prints
// the message verbatim, capitalisation included.
func (p *Parser) unexpected() {
	p.errs = append(p.errs, fmt.Errorf("Unexpected: %s", p.tok.Text))
}

// expect reports whether the current token has the wanted type; a mismatch
// records a diagnostic.
func (p *Parser) expect(tt TokenType) bool {
	if !p.tok.Is(tt) {
		p.unexpected()
		return false
	}
	return true
}

// consume is expect plus advancing over the matched token.
func (p *Parser) consume(tt TokenType) bool {
	if !p.expect(tt) {
		return false
	}
	p.advance()
	return true
}

// syncFactor discards tokens until one that can legitimately follow a
// factor, so the enclosing term or expression picks the parse back up.
func (p *Parser) syncFactor() {
	for !p.tok.IsOneOf(RPAREN, STAR, PLUS, MINUS, SLASH, EOF) {
		p.advance()
	}
}

// abandon gives up on the whole program: the rest of the input is discarded
// so the parser stops at EOF, and the nil result tells the caller that no
// usable tree exists.
func (p *Parser) abandon() Node {
	for !p.tok.Is(EOF) {
		p.advance()
	}
	return nil
}

// parseCalc parses the optional with declaration and the expression body.
// A malformed declaration or unconsumed trailing input abandons the parse.
func (p *Parser) parseCalc() Node {
	var names []string
	if p.tok.Is(WITH) {
		p.advance()
		if !p.expect(IDENTIFIER) {
			return p.abandon()
		}
		names = append(names, p.tok.Text)
		p.advance()
		for p.tok.Is(COMMA) {
			p.advance()
			if !p.expect(IDENTIFIER) {
				return p.abandon()
			}
			names = append(names, p.tok.Text)
			p.advance()
		}
		if !p.consume(COLON) {
			return p.abandon()
		}
	}

	expr := p.parseExpr()
	if !p.expect(EOF) {
		return p.abandon()
	}
	if len(names) == 0 {
		return expr
	}
	return &WithDecl{Names: names, Body: expr}
}

// parseExpr handles + and -
func (p *Parser) parseExpr() Expr {
	expr := p.parseTerm()
	for p.tok.IsOneOf(PLUS, MINUS) {
		op := p.tok.Type
		p.advance()
		right := p.parseTerm()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr
}

// parseTerm handles * and /
func (p *Parser) parseTerm() Expr {
	expr := p.parseFactor()
	for p.tok.IsOneOf(STAR, SLASH) {
		op := p.tok.Type
		p.advance()
		right := p.parseFactor()
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr
}

// parseFactor handles the leaves and parenthesised subexpressions. On a
// missing closing parenthesis the inner expression is kept, so the tree
// stays as complete as the input allows.
func (p *Parser) parseFactor() Expr {
	var res Expr
	switch p.tok.Type {
	case NUMBER:
		res = &Literal{Text: p.tok.Text}
		p.advance()
	case IDENTIFIER:
		res = &VarRef{Name: p.tok.Text}
		p.advance()
	case LPAREN:
		p.advance()
		res = p.parseExpr()
		if !p.consume(RPAREN) {
			p.syncFactor()
		}
	default:
		p.unexpected()
		p.syncFactor()
	}
	return res
}
