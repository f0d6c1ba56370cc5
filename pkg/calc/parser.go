// ABOUTME: Recursive-descent parser for infix arithmetic with right-associative power
// ABOUTME: Power binds tighter than a unary operator on its left, as in -2**2 == -4

package calc

import (
	"github.com/nilay320/MCP-Session-Code/pkg/internal/debug"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 200

// Grammar:
//
//	expr     = term { ("+" | "-") term }
//	term     = unary { ("*" | "/" | "//" | "%" | "mod") unary }
//	unary    = ("+" | "-") unary | power
//	power    = primary [ ("**" | "^") unary ]
//	primary  = number | ident [ "(" [ expr { "," expr } ] ")" ] | "(" expr ")"
type parser struct {
	tokens []Token
	pos    int
	depth  int
}

// Parse tokenizes and parses an expression into a tree.
func Parse(expression string) (Node, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().Type == tokEOF {
		return nil, failAt(SyntaxError, 0, "empty expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != tokEOF {
		return nil, p.unexpected(tok)
	}
	debug.Printf("calc", "parsed %q as %s", expression, n)
	return n, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(t TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, p.unexpected(tok)
	}
	return p.advance(), nil
}

func (p *parser) unexpected(tok Token) error {
	if tok.Type == tokEOF {
		return failAt(SyntaxError, tok.Pos, "unexpected end of input")
	}
	return failAt(SyntaxError, tok.Pos, "unexpected %s %q", tok.Type, tok.Literal)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return failAt(SyntaxError, p.peek().Pos, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) expr() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Type != tokPlus && tok.Type != tokMinus {
			return left, nil
		}
		p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Type {
		case tokStar, tokSlash, tokDoubleSlash, tokPercent:
		default:
			return left, nil
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Type, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *parser) unary() (Node, error) {
	tok := p.peek()
	if tok.Type == tokPlus || tok.Type == tokMinus {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Type, Operand: operand, Pos: tok.Pos}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Type != tokPower {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.advance()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: tokPower, Left: base, Right: exp, Pos: tok.Pos}, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.peek()
	switch tok.Type {
	case tokNumber:
		p.advance()
		return &NumberLit{Value: tok.Value, Text: tok.Literal, Pos: tok.Pos}, nil

	case tokIdent:
		p.advance()
		if p.peek().Type != tokLParen {
			return &Ident{Name: tok.Literal, Pos: tok.Pos}, nil
		}
		p.advance()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return &CallExpr{Name: tok.Literal, Args: args, Pos: tok.Pos}, nil

	case tokLParen:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected(tok)
}

// arguments parses a call's argument list after the opening parenthesis.
func (p *parser) arguments() ([]Node, error) {
	var args []Node
	if p.peek().Type == tokRParen {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok := p.advance()
		switch tok.Type {
		case tokRParen:
			return args, nil
		case tokComma:
			// trailing comma
			if p.peek().Type == tokRParen {
				p.advance()
				return args, nil
			}
		default:
			return nil, p.unexpected(tok)
		}
	}
}
