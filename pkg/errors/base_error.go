package errors

// ABOUTME: BaseError implementation with JSON support, codes and context
// ABOUTME: Captures a trimmed stack trace at construction time

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// SerializableError is an error that can be rendered as JSON with context.
type SerializableError interface {
	error
	ToJSON() ([]byte, error)
	GetContext() map[string]interface{}
}

// StackFrame is a single frame in a captured stack trace.
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// BaseError is the standard implementation of SerializableError.
type BaseError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Cause     error                  `json:"-"`
	CauseText string                 `json:"cause,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Stack     []StackFrame           `json:"stack,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// NewError creates a new BaseError with a captured stack.
func NewError(message string) *BaseError {
	return &BaseError{
		Type:      "BaseError",
		Message:   message,
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
		Stack:     captureStackTrace(2),
	}
}

// NewErrorWithCode creates a new BaseError whose code doubles as its type.
func NewErrorWithCode(code, message string) *BaseError {
	err := NewError(message)
	err.Code = code
	err.Type = code
	return err
}

// Wrap wraps err, inheriting code, retryability and context when err is
// already a BaseError. Returns nil if err is nil.
func Wrap(err error, message string) *BaseError {
	if err == nil {
		return nil
	}

	baseErr := &BaseError{
		Type:      "WrappedError",
		Message:   message,
		Cause:     err,
		CauseText: err.Error(),
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
		Stack:     captureStackTrace(2),
	}

	var be *BaseError
	if stderrors.As(err, &be) {
		baseErr.Retryable = be.Retryable
		baseErr.Code = be.Code
		for k, v := range be.Context {
			baseErr.Context[k] = v
		}
	}
	return baseErr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// ToJSON serializes the error to indented JSON.
func (e *BaseError) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// GetContext returns the error context, initializing it if needed.
func (e *BaseError) GetContext() map[string]interface{} {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	return e.Context
}

// WithContext adds a context value.
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	e.GetContext()[key] = value
	return e
}

// WithContextMap adds multiple context values.
func (e *BaseError) WithContextMap(context map[string]interface{}) *BaseError {
	ctx := e.GetContext()
	for k, v := range context {
		ctx[k] = v
	}
	return e
}

// WithCode sets the error code.
func (e *BaseError) WithCode(code string) *BaseError {
	e.Code = code
	return e
}

// WithType sets the error type.
func (e *BaseError) WithType(errorType string) *BaseError {
	e.Type = errorType
	return e
}

// SetRetryable marks whether the failed operation may succeed if repeated.
func (e *BaseError) SetRetryable(retryable bool) *BaseError {
	e.Retryable = retryable
	return e
}

// Unwrap returns the wrapped error.
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Is matches by code, or by type and message.
func (e *BaseError) Is(target error) bool {
	te, ok := target.(*BaseError)
	if !ok {
		return false
	}
	if e.Code != "" && e.Code == te.Code {
		return true
	}
	return e.Type == te.Type && e.Message == te.Message
}

// MarshalJSON adds an RFC 3339 timestamp string.
func (e *BaseError) MarshalJSON() ([]byte, error) {
	type Alias BaseError
	return json.Marshal(&struct {
		*Alias
		TimestampStr string `json:"timestamp_str"`
	}{
		Alias:        (*Alias)(e),
		TimestampStr: e.Timestamp.Format(time.RFC3339),
	})
}

// UnmarshalJSON restores the timestamp and a textual cause.
func (e *BaseError) UnmarshalJSON(data []byte) error {
	type Alias BaseError
	aux := &struct {
		*Alias
		TimestampStr string `json:"timestamp_str"`
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TimestampStr != "" {
		if t, err := time.Parse(time.RFC3339, aux.TimestampStr); err == nil {
			e.Timestamp = t
		}
	}
	if e.CauseText != "" && e.Cause == nil {
		e.Cause = stderrors.New(e.CauseText)
	}
	return nil
}

// captureStackTrace captures up to 20 frames, skipping runtime frames.
func captureStackTrace(skip int) []StackFrame {
	var frames []StackFrame

	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return frames
	}

	callerFrames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := callerFrames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			frames = append(frames, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more || len(frames) >= 20 {
			break
		}
	}
	return frames
}

// ErrorFromJSON deserializes a BaseError.
func ErrorFromJSON(data []byte) (*BaseError, error) {
	var err BaseError
	if jsonErr := json.Unmarshal(data, &err); jsonErr != nil {
		return nil, jsonErr
	}
	return &err, nil
}

// IsRetryableError reports whether err, or a BaseError it wraps, is retryable.
func IsRetryableError(err error) bool {
	var be *BaseError
	return stderrors.As(err, &be) && be.Retryable
}

// CodeOf returns the code of the first BaseError in err's chain.
func CodeOf(err error) string {
	var be *BaseError
	if stderrors.As(err, &be) {
		return be.Code
	}
	return ""
}

// GetErrorContext extracts context from err's chain, or nil.
func GetErrorContext(err error) map[string]interface{} {
	var se SerializableError
	if stderrors.As(err, &se) {
		return se.GetContext()
	}
	return nil
}
