package table

import (
	"errors"

	"github.com/hupe1980/catsim/model"
)

var (
	// ErrLiteral is returned for a malformed list literal.
	ErrLiteral = errors.New("table: malformed list literal")

	// ErrMissingColumn is returned when a required column is absent from a table.
	ErrMissingColumn = errors.New("table: missing column")

	// ErrUnsupportedFormat is returned for a table file with an unknown extension.
	ErrUnsupportedFormat = errors.New("table: unsupported format")

	// ErrNotFound is returned by MemorySource for an unknown path.
	ErrNotFound = errors.New("table: not found")
)

// MalformedInputError indicates a cell that cannot be interpreted as a list
// of item ids.
type MalformedInputError = model.MalformedInputError
