package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryResource Category = "resource"
	CategoryRender   Category = "render"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a source location. Line and Column are optional.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	switch {
	case l.Line > 0 && l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	case l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return l.File
	}
}

// ElsError is a structured error with a code, suggestions and documentation.
type ElsError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (resource, render, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the resource the error refers to, if any.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ElsError) Error() string {
	msg := e.Message
	if e.Location != nil {
		msg += " (" + e.Location.String() + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ElsError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *ElsError with the same non-empty code.
func (e *ElsError) Is(target error) bool {
	t, ok := target.(*ElsError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithFile records the resource path the error refers to.
func (e *ElsError) WithFile(file string) *ElsError {
	e.Location = &Location{File: file}
	return e
}

// WithLocation adds a full source location to the error.
func (e *ElsError) WithLocation(file string, line, column int) *ElsError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ElsError) WithSuggestion(s string) *ElsError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ElsError) WithDetail(d string) *ElsError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ElsError) Wrap(err error) *ElsError {
	e.Wrapped = err
	return e
}

// New creates an ElsError from a registered error code.
func New(code string) *ElsError {
	template, ok := registry[code]
	if !ok {
		return &ElsError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ElsError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ElsError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ElsError {
	return &ElsError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an ElsError.
func FromError(err error, code string) *ElsError {
	if err == nil {
		return nil
	}
	var ee *ElsError
	if stderrors.As(err, &ee) {
		return ee
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first ElsError in err's chain, or "".
func CodeOf(err error) string {
	var ee *ElsError
	if stderrors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
