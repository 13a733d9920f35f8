package errors

import (
	"errors"
	"fmt"
	"strings"
)

// RowIncompleteError describes a dataset row that lacks required columns.
// The enrichment loop skips such rows instead of failing the run.
type RowIncompleteError struct {
	Row     int
	Missing []string
}

func (e *RowIncompleteError) Error() string {
	return fmt.Sprintf("row %d is missing %s", e.Row, strings.Join(e.Missing, ", "))
}

// NewRowIncompleteError creates a RowIncompleteError for the given row index.
func NewRowIncompleteError(row int, missing ...string) *RowIncompleteError {
	return &RowIncompleteError{Row: row, Missing: missing}
}

// IsRowIncompleteError reports whether err is a RowIncompleteError (even when wrapped).
func IsRowIncompleteError(err error) bool {
	var rowErr *RowIncompleteError
	return errors.As(err, &rowErr)
}
