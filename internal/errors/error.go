package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// Location represents a source location, typically in a config file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	switch {
	case l.Line <= 0:
		return l.File
	case l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	default:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
}

// VangoError is a structured error with a code, a fix suggestion and a
// documentation link.
type VangoError struct {
	// Code is a unique error identifier (e.g., "E120").
	Code string

	// Category is the error type (runtime, validation, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the error occurred, when it relates to a file.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VangoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VangoError) Unwrap() error {
	return e.Wrapped
}

// Is matches another VangoError carrying the same non-empty code, so
// errors.Is(err, errors.New("E120")) works across instances.
func (e *VangoError) Is(target error) bool {
	t, ok := target.(*VangoError)
	return ok && e.Code != "" && t.Code == e.Code
}

// WithLocation adds a file location to the error. A zero line points at
// the file as a whole.
func (e *VangoError) WithLocation(file string, line, column int) *VangoError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VangoError) WithSuggestion(s string) *VangoError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *VangoError) WithExample(ex string) *VangoError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VangoError) WithDetail(d string) *VangoError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VangoError) Wrap(err error) *VangoError {
	e.Wrapped = err
	return e
}

// New creates a VangoError from a registered error code.
func New(code string) *VangoError {
	template, ok := registry[code]
	if !ok {
		return &VangoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VangoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VangoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VangoError {
	return &VangoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VangoError. Errors that already
// carry a VangoError in their chain are returned as that VangoError.
func FromError(err error, code string) *VangoError {
	if err == nil {
		return nil
	}
	var ve *VangoError
	if stderrors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first VangoError in err's chain, or "".
func Code(err error) string {
	var ve *VangoError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
