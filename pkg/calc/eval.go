// ABOUTME: Tree-walking evaluator that resolves identifiers against a Namespace
// ABOUTME: Pure and stateless; panics are recovered into Unspecified failures

package calc

import (
	"fmt"

	"github.com/nilay320/MCP-Session-Code/pkg/internal/debug"
)

// Evaluator evaluates expressions against a fixed namespace.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	ns *Namespace
}

// NewEvaluator returns an evaluator bound to ns.
func NewEvaluator(ns *Namespace) *Evaluator {
	return &Evaluator{ns: ns}
}

var defaultEvaluator = NewEvaluator(defaultNamespace)

// Evaluate evaluates an expression against the default namespace.
func Evaluate(expression string) (Value, error) {
	return defaultEvaluator.Evaluate(expression)
}

// Calculate evaluates and formats an expression. Failures are rendered as
// "Error: ..." text, so the result is always presentable.
func Calculate(expression string) string {
	return defaultEvaluator.Calculate(expression)
}

// Evaluate parses and evaluates an expression. Any returned error is a *Failure.
func (ev *Evaluator) Evaluate(expression string) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Value{}
			err = failf(Unspecified, "%v", r)
		}
	}()

	tree, err := Parse(expression)
	if err != nil {
		return Value{}, err
	}
	return ev.eval(tree)
}

// Calculate evaluates and formats an expression.
func (ev *Evaluator) Calculate(expression string) string {
	v, err := ev.Evaluate(expression)
	if err != nil {
		debug.Printf("calc", "evaluate %q: %v", expression, err)
		return Describe(err)
	}
	return Format(v)
}

func (ev *Evaluator) eval(n Node) (Value, error) {
	switch n := n.(type) {
	case *NumberLit:
		return n.Value, nil

	case *Ident:
		entry, ok := ev.ns.Lookup(n.Name)
		if !ok {
			return Value{}, failAt(UnknownIdentifier, n.Pos, "name '%s' is not defined", n.Name)
		}
		if entry.IsFunction() {
			return Value{}, failAt(InvalidType, n.Pos, "'%s' is a function and must be called with arguments", n.Name)
		}
		return entry.Value, nil

	case *UnaryExpr:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return unaryOp(n.Op, v)

	case *BinaryExpr:
		left, err := ev.eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := ev.eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		return binaryOp(n.Op, left, right)

	case *CallExpr:
		return ev.call(n)
	}
	return Value{}, failf(Unspecified, "unknown node %T", n)
}

func (ev *Evaluator) call(n *CallExpr) (Value, error) {
	entry, ok := ev.ns.Lookup(n.Name)
	if !ok {
		return Value{}, failAt(UnknownIdentifier, n.Pos, "name '%s' is not defined", n.Name)
	}
	if !entry.IsFunction() {
		return Value{}, failAt(InvalidType, n.Pos, "'%s' object is not callable", entry.Value.Kind())
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	fn := entry.Function
	if err := fn.checkArity(len(args)); err != nil {
		return Value{}, err
	}
	v, err := fn.Call(args)
	if err != nil {
		if _, ok := err.(*Failure); !ok {
			err = failf(Unspecified, "%s(): %v", fn.Name, err)
		}
		return Value{}, err
	}
	return v, nil
}

// String implements fmt.Stringer for debugging output.
func (ev *Evaluator) String() string {
	return fmt.Sprintf("Evaluator(%d names)", ev.ns.Len())
}
