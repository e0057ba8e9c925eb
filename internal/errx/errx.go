// Package errx provides coded errors. Two errors are the same for
// errors.Is when their codes match, regardless of message or cause.
package errx

import (
	"errors"
	"fmt"
)

// Code is the stable identifier of an error category
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
)

var (
	ErrInvalidInput = New(CodeInvalidInput, "")
	ErrNotFound     = New(CodeNotFound, "")
)

// Error is a coded error with optional message, context data and cause
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
}

func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// InvalidInput returns an InvalidInput error with a formatted message
func InvalidInput(format string, args ...any) *Error {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound returns a NotFound error with a formatted message
func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.code)
	case e.msg == "":
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
}

// Unwrap exposes the cause chain to errors.Is / errors.As
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches on code only
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Data returns a copy of the attached context
func (e *Error) Data() map[string]any {
	if e == nil || e.data == nil {
		return nil
	}
	return cloneAnyMap(e.data)
}

// WithData returns a copy of e carrying key=value; e itself is left untouched
func (e *Error) WithData(key string, value any) *Error {
	next := &Error{code: e.code, msg: e.msg, data: cloneAnyMap(e.data), cause: e.cause}
	if next.data == nil {
		next.data = make(map[string]any, 1)
	}
	next.data[key] = value
	return next
}

// WithCause returns a copy of e wrapping cause
func (e *Error) WithCause(cause error) *Error {
	return &Error{code: e.code, msg: e.msg, data: cloneAnyMap(e.data), cause: cause}
}

// CodeOf walks the chain and returns the first code found
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.code, true
	}
	return "", false
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
