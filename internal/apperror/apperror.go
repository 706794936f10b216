// Package apperror is the single error taxonomy shared by use cases and handlers.
// Every failure that leaves a use case is an *Error with one of the kinds below.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindDependency   Kind = "dependency"
)

// FieldError describes one invalid or missing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code so sentinels still match after WithFields/Wrap copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithFields returns a copy of e carrying field details.
func (e *Error) WithFields(fields ...FieldError) *Error {
	cp := *e
	cp.Fields = append([]FieldError(nil), fields...)
	return &cp
}

// Wrap returns a copy of e with cause attached.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Validation(code, msg string) *Error   { return newError(KindValidation, code, msg) }
func Conflict(code, msg string) *Error     { return newError(KindConflict, code, msg) }
func NotFound(code, msg string) *Error     { return newError(KindNotFound, code, msg) }
func Forbidden(code, msg string) *Error    { return newError(KindForbidden, code, msg) }
func Unauthorized(code, msg string) *Error { return newError(KindUnauthorized, code, msg) }

const CodeDependencyFailure = "dependency_failure"

// Dependency wraps a store or clock failure.
func Dependency(msg string, cause error) *Error {
	return &Error{Kind: KindDependency, Code: CodeDependencyFailure, Message: msg, Err: cause}
}

// KindOf reports the kind of err. Anything that is not an *Error is a dependency failure.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindDependency
}

// From converts any error into an *Error, wrapping unknown ones as dependency failures.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Dependency("internal error", err)
}
