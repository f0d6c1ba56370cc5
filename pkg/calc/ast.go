// ABOUTME: Immutable expression tree produced by the parser
// ABOUTME: Literals, identifier references, unary and binary operations, function calls

package calc

import (
	"fmt"
	"strings"
)

// Node is an expression tree node.
type Node interface {
	fmt.Stringer
	// Position returns the byte offset of the node in the source text.
	Position() int
	node()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value Value
	Text  string
	Pos   int
}

// Ident is a reference to a namespace entry.
type Ident struct {
	Name string
	Pos  int
}

// UnaryExpr is a prefix + or -.
type UnaryExpr struct {
	Op      TokenType
	Operand Node
	Pos     int
}

// BinaryExpr is an infix arithmetic operation.
type BinaryExpr struct {
	Op          TokenType
	Left, Right Node
	Pos         int
}

// CallExpr is a function call by name.
type CallExpr struct {
	Name string
	Args []Node
	Pos  int
}

func (*NumberLit) node()  {}
func (*Ident) node()      {}
func (*UnaryExpr) node()  {}
func (*BinaryExpr) node() {}
func (*CallExpr) node()   {}

func (n *NumberLit) Position() int  { return n.Pos }
func (n *Ident) Position() int      { return n.Pos }
func (n *UnaryExpr) Position() int  { return n.Pos }
func (n *BinaryExpr) Position() int { return n.Pos }
func (n *CallExpr) Position() int   { return n.Pos }

func (n *NumberLit) String() string { return n.Text }
func (n *Ident) String() string     { return n.Name }

func (n *UnaryExpr) String() string {
	return "(" + opSymbol(n.Op) + n.Operand.String() + ")"
}

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + opSymbol(n.Op) + " " + n.Right.String() + ")"
}

func (n *CallExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func opSymbol(t TokenType) string {
	switch t {
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokDoubleSlash:
		return "//"
	case tokPercent:
		return "%"
	case tokPower:
		return "**"
	}
	return t.String()
}
