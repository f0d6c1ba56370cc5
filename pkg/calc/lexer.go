// ABOUTME: Tokenizer for arithmetic expressions with ^ and mod as first-class operators
// ABOUTME: Every input byte becomes part of exactly one token or a SyntaxError

package calc

import (
	"math/big"
	"strconv"
	"strings"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	tokEOF TokenType = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokDoubleSlash
	tokPercent
	tokPower
	tokLParen
	tokRParen
	tokComma
)

var tokenNames = [...]string{
	tokEOF:         "end of input",
	tokNumber:      "number",
	tokIdent:       "identifier",
	tokPlus:        "'+'",
	tokMinus:       "'-'",
	tokStar:        "'*'",
	tokSlash:       "'/'",
	tokDoubleSlash: "'//'",
	tokPercent:     "'%'",
	tokPower:       "'**'",
	tokLParen:      "'('",
	tokRParen:      "')'",
	tokComma:       "','",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// Token is a lexeme with its position in the source text.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	// Value is set for number tokens.
	Value Value
}

type lexer struct {
	src    string
	pos    int
	tokens []Token
}

// tokenize splits an expression into tokens terminated by tokEOF.
func tokenize(src string) ([]Token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, Token{Type: tokEOF, Pos: l.pos})
			return l.tokens, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && strings.IndexByte(" \t\r\n", l.src[l.pos]) >= 0 {
		l.pos++
	}
}

func (l *lexer) emit(t TokenType, start int) {
	l.tokens = append(l.tokens, Token{Type: t, Literal: l.src[start:l.pos], Pos: start})
}

func (l *lexer) next() error {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.number()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		if l.src[start:l.pos] == "mod" {
			l.emit(tokPercent, start)
		} else {
			l.emit(tokIdent, start)
		}
		return nil
	}

	l.pos++
	switch c {
	case '+':
		l.emit(tokPlus, start)
	case '-':
		l.emit(tokMinus, start)
	case '*':
		if l.peek('*') {
			l.pos++
			l.emit(tokPower, start)
		} else {
			l.emit(tokStar, start)
		}
	case '^':
		l.emit(tokPower, start)
	case '/':
		if l.peek('/') {
			l.pos++
			l.emit(tokDoubleSlash, start)
		} else {
			l.emit(tokSlash, start)
		}
	case '%':
		l.emit(tokPercent, start)
	case '(':
		l.emit(tokLParen, start)
	case ')':
		l.emit(tokRParen, start)
	case ',':
		l.emit(tokComma, start)
	default:
		return failAt(SyntaxError, start, "unexpected character %q", c)
	}
	return nil
}

func (l *lexer) peek(c byte) bool {
	return l.pos < len(l.src) && l.src[l.pos] == c
}

// number scans digits [. digits] [e [+-] digits] [j].
func (l *lexer) number() error {
	start := l.pos
	isFloat := false
	l.digits()
	if l.peek('.') {
		isFloat = true
		l.pos++
		l.digits()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.peek('+') || l.peek('-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			isFloat = true
			l.digits()
		} else {
			l.pos = save
		}
	}
	text := l.src[start:l.pos]

	imaginary := false
	if l.peek('j') || l.peek('J') {
		imaginary = true
		l.pos++
	}
	// mod glued to a literal is still the operator: 10mod3 is 10 % 3.
	glued := strings.HasPrefix(l.src[l.pos:], "mod")
	if !glued && l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		return failAt(SyntaxError, start, "invalid number literal %q", l.src[start:l.pos+1])
	}

	var v Value
	switch {
	case imaginary || isFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			// ParseFloat reports out-of-range literals as ±Inf, which is what
			// the literal means; anything else is malformed.
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return failAt(SyntaxError, start, "invalid number literal %q", text)
			}
		}
		if imaginary {
			v = Complex(complex(0, f))
		} else {
			v = Real(f)
		}
	default:
		if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
			return failAt(SyntaxError, start, "leading zeros in decimal integer literals are not permitted")
		}
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return failAt(SyntaxError, start, "invalid number literal %q", text)
		}
		v = Int(i)
	}

	l.tokens = append(l.tokens, Token{Type: tokNumber, Literal: l.src[start:l.pos], Pos: start, Value: v})
	if glued {
		op := l.pos
		l.pos += len("mod")
		l.emit(tokPercent, op)
	}
	return nil
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
