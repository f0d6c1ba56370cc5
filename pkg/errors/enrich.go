package errors

// ABOUTME: Helpers that attach request and operation context to arbitrary errors
// ABOUTME: Plain errors are wrapped in a BaseError first

import (
	"fmt"
	"strings"
	"time"
)

// EnrichError adds context to any error. Returns nil if err is nil.
func EnrichError(err error, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	if be, ok := err.(*BaseError); ok {
		return be.WithContextMap(context)
	}
	return Wrap(err, "error").WithContextMap(context)
}

// EnrichErrorWithOperation records the operation that failed.
func EnrichErrorWithOperation(err error, operation string) error {
	return EnrichError(err, map[string]interface{}{
		"operation": operation,
		"timestamp": time.Now(),
	})
}

// EnrichErrorWithRequest records an outbound HTTP request.
func EnrichErrorWithRequest(err error, method, url string, statusCode int) error {
	return EnrichError(err, map[string]interface{}{
		"request_method": method,
		"request_url":    url,
		"status_code":    statusCode,
		"timestamp":      time.Now(),
	})
}

// ErrorList collects independent errors.
type ErrorList struct {
	errors []error
}

// NewErrorList creates a list from errs, dropping nils.
func NewErrorList(errs ...error) *ErrorList {
	l := &ErrorList{}
	for _, err := range errs {
		l.Add(err)
	}
	return l
}

// Add appends err unless it is nil.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// Addf appends a formatted error.
func (e *ErrorList) Addf(format string, args ...interface{}) {
	e.errors = append(e.errors, fmt.Errorf(format, args...))
}

// Errors returns the collected errors.
func (e *ErrorList) Errors() []error {
	return e.errors
}

// Error joins the messages.
func (e *ErrorList) Error() string {
	switch len(e.errors) {
	case 0:
		return "no errors"
	case 1:
		return e.errors[0].Error()
	}
	messages := make([]string, len(e.errors))
	for i, err := range e.errors {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("multiple errors: [%s]", strings.Join(messages, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.errors
}

// IsEmpty reports whether no errors were added.
func (e *ErrorList) IsEmpty() bool {
	return len(e.errors) == 0
}

// ErrorOrNil returns the list as an error, or nil when empty.
func (e *ErrorList) ErrorOrNil() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}
