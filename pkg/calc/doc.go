// ABOUTME: Sandboxed scientific expression evaluator over integer, real and complex values.
// ABOUTME: Lexer, recursive-descent parser, allow-listed namespace and deterministic formatter.

// Package calc evaluates textual math expressions without executing code.
//
// An expression is tokenized, parsed into an immutable tree and evaluated
// against a read-only Namespace of constants and functions. Values are
// exact integers (math/big), float64 reals or complex128 numbers, promoted
// in that order as the operands require. Every failure is a *Failure with
// one of a closed set of kinds.
//
// Calculate composes Evaluate and Format and never fails; failures are
// rendered as "Error: ..." text:
//
//	calc.Calculate("2 ^ 3 ^ 2")  // "512"
//	calc.Calculate("sqrt(-4)")   // "2j"
//	calc.Calculate("1/0")        // "Error: Division by zero"
package calc
