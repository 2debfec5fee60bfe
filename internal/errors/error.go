package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRegistry Category = "registry"
	CategoryDispatch Category = "dispatch"
	CategorySelector Category = "selector"
	CategoryDocument Category = "document"
	CategorySource   Category = "source"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// DomError is a structured error with a code, explanation and suggestion.
type DomError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Subject names the thing the error is about: a selector, an event
	// name, a URI or a file path.
	Subject string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DomError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Subject != "" {
		msg += " (" + e.Subject + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DomError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DomError with the same code.
func (e *DomError) Is(target error) bool {
	t, ok := target.(*DomError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSubject records what the error is about.
func (e *DomError) WithSubject(s string) *DomError {
	e.Subject = s
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DomError) WithSuggestion(s string) *DomError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *DomError) WithDetail(d string) *DomError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DomError) Wrap(err error) *DomError {
	e.Wrapped = err
	return e
}

// New creates a DomError from a registered error code.
func New(code string) *DomError {
	template, ok := registry[code]
	if !ok {
		return &DomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DomError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new DomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DomError {
	return &DomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DomError.
func FromError(err error, code string) *DomError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DomError); ok {
		return de
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a DomError with
// the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if de, ok := err.(*DomError); ok && de.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
