package model

import (
	"errors"
	"fmt"
)

// ErrNotAnIDList is the default cause of a MalformedInputError.
var ErrNotAnIDList = errors.New("value is not a list of item ids")

// MalformedInputError indicates a member-list value that cannot be
// interpreted as a list of item ids.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type MalformedInputError struct {
	// Row is the 0-based row of the offending value, or -1 if unknown.
	Row int
	// Column names the column the value came from.
	Column string
	// Value is the raw value.
	Value any
	cause error
}

// NewMalformedInputError creates a MalformedInputError.
// A nil cause defaults to ErrNotAnIDList.
func NewMalformedInputError(row int, column string, value any, cause error) *MalformedInputError {
	if cause == nil {
		cause = ErrNotAnIDList
	}
	return &MalformedInputError{Row: row, Column: column, Value: value, cause: cause}
}

func (e *MalformedInputError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed input in column %q: %v (%v)", e.Column, e.Value, e.cause)
	}
	return fmt.Sprintf("malformed input in column %q at row %d: %v (%v)", e.Column, e.Row, e.Value, e.cause)
}

func (e *MalformedInputError) Unwrap() error { return e.cause }
