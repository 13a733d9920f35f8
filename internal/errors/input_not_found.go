package errors

import (
	stdErrors "errors"
	"fmt"
)

// InputNotFoundError is returned when the input spreadsheet does not exist
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// NewInputNotFoundError creates a new InputNotFoundError for the given path
func NewInputNotFoundError(path string, err error) *InputNotFoundError {
	return &InputNotFoundError{Path: path, Err: err}
}

// IsInputNotFoundError checks if error is an InputNotFoundError
func IsInputNotFoundError(err error) bool {
	var notFound *InputNotFoundError
	return stdErrors.As(err, &notFound)
}
