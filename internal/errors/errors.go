// Package errors defines the coded error type used across the position
// sheet pipeline. Codes distinguish the failure classes the batch cares
// about: bad input up front, nothing loadable, and failures in the macro or
// formatting stages. Per-file load problems are not represented here; those
// are logged and skipped, never surfaced as errors.
package errors

import (
	"errors"
	"fmt"
)

// PipelineError is a coded error carrying the failure class and an
// optional wrapped cause.
type PipelineError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches two pipeline errors by code so sentinel comparisons with
// errors.Is work on wrapped instances.
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return e.Code == pe.Code
	}
	return false
}

// Error codes for the pipeline failure classes
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNoValidFiles = "NO_VALID_FILES"
	CodeWriteFailed  = "WRITE_FAILED"
	CodeMacroFailed  = "MACRO_FAILED"
	CodeFormatFailed = "FORMAT_FAILED"
)

// Predefined sentinels for errors.Is comparisons
var (
	ErrInvalidInput = &PipelineError{Code: CodeInvalidInput, Message: "invalid input"}
	ErrNoValidFiles = &PipelineError{Code: CodeNoValidFiles, Message: "no valid files were found to process"}
	ErrWriteFailed  = &PipelineError{Code: CodeWriteFailed, Message: "failed to write combined workbook"}
	ErrMacroFailed  = &PipelineError{Code: CodeMacroFailed, Message: "macro invocation failed"}
	ErrFormatFailed = &PipelineError{Code: CodeFormatFailed, Message: "formatting failed"}
)

// New creates a new PipelineError with the given code and message
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Newf creates a new PipelineError with a formatted message
func Newf(code, format string, args ...any) *PipelineError {
	return &PipelineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new PipelineError
func Wrap(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}
