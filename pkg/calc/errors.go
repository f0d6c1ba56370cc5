// ABOUTME: Closed failure taxonomy for expression evaluation and its user-facing messages
// ABOUTME: Failures convert to the serializable BaseError with CALC_<KIND> codes

package calc

import (
	"fmt"
	"strings"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
)

// FailureKind classifies why an expression could not be evaluated.
type FailureKind int

const (
	// SyntaxError covers malformed input: bad characters, unbalanced
	// parentheses, unexpected tokens and empty expressions.
	SyntaxError FailureKind = iota + 1
	// UnknownIdentifier is a name absent from the namespace.
	UnknownIdentifier
	// InvalidType is an operand or argument of the wrong kind or count.
	InvalidType
	// InvalidOperation is a mathematical domain error.
	InvalidOperation
	// DivisionByZero is division, floor division or modulo by zero.
	DivisionByZero
	// Overflow is a result beyond the representable range.
	Overflow
	// Unspecified is anything else, including recovered panics.
	Unspecified
)

var kindNames = map[FailureKind]string{
	SyntaxError:       "SyntaxError",
	UnknownIdentifier: "UnknownIdentifier",
	InvalidType:       "InvalidType",
	InvalidOperation:  "InvalidOperation",
	DivisionByZero:    "DivisionByZero",
	Overflow:          "Overflow",
	Unspecified:       "Unspecified",
}

// String returns the kind name.
func (k FailureKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Code returns the error code used when the failure is serialized.
func (k FailureKind) Code() string {
	var b strings.Builder
	b.WriteString("CALC_")
	for i, r := range k.String() {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToUpper(string(r)))
	}
	return b.String()
}

// Failure is the error returned by Evaluate.
type Failure struct {
	Kind    FailureKind
	Message string
	// Pos is the byte offset in the expression, or -1 when unknown.
	Pos int
}

// Sentinels for errors.Is comparisons against a failure kind.
var (
	ErrSyntax            = &Failure{Kind: SyntaxError, Pos: -1}
	ErrUnknownIdentifier = &Failure{Kind: UnknownIdentifier, Pos: -1}
	ErrInvalidType       = &Failure{Kind: InvalidType, Pos: -1}
	ErrInvalidOperation  = &Failure{Kind: InvalidOperation, Pos: -1}
	ErrDivisionByZero    = &Failure{Kind: DivisionByZero, Pos: -1}
	ErrOverflow          = &Failure{Kind: Overflow, Pos: -1}
	ErrUnspecified       = &Failure{Kind: Unspecified, Pos: -1}
)

func failf(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: -1}
}

func failAt(kind FailureKind, pos int, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func errDivisionByZero(op string) *Failure {
	return failf(DivisionByZero, "%s by zero", op)
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Kind.String()
	}
	if f.Pos >= 0 {
		return fmt.Sprintf("%s: %s (at position %d)", f.Kind, f.Message, f.Pos)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Is matches any failure of the same kind when target carries no message.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Kind == f.Kind
	}
	return t.Kind == f.Kind && t.Message == f.Message
}

// UserMessage renders the failure the way tool callers see it.
func (f *Failure) UserMessage() string {
	switch f.Kind {
	case DivisionByZero:
		return "Error: Division by zero"
	case InvalidOperation:
		return "Error: Invalid mathematical operation - " + f.Message
	case Overflow:
		return "Error: Result too large to compute"
	case InvalidType:
		return "Error: Invalid expression type - " + f.Message
	case SyntaxError:
		return "Error: Invalid mathematical expression syntax"
	case UnknownIdentifier:
		return "Error: Unknown identifier - " + f.Message
	default:
		return "Error: " + f.Message
	}
}

// ToBaseError converts the failure to the serializable error type.
func (f *Failure) ToBaseError() *errors.BaseError {
	err := errors.NewErrorWithCode(f.Kind.Code(), f.Message).
		WithType(f.Kind.String())
	if f.Pos >= 0 {
		err = err.WithContext("position", f.Pos)
	}
	return err
}

// Describe renders any error from this package as user-facing text.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if f, ok := err.(*Failure); ok {
		return f.UserMessage()
	}
	return "Error: " + err.Error()
}
