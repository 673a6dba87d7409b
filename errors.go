package catsim

import (
	"errors"
	"fmt"

	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/silhouette"
)

var (
	// ErrAmbiguousLevels is returned when both a level count and explicit
	// level paths are configured.
	ErrAmbiguousLevels = errors.New("both level count and level paths given")

	// ErrMissingLevels is returned when neither a level count nor level
	// paths are configured.
	ErrMissingLevels = errors.New("level count or level paths required")

	// ErrMissingColumns is returned when per-level column names are absent
	// or do not match the number of levels.
	ErrMissingColumns = errors.New("column names required for every level")

	// ErrWeightCount is returned when the number of weights differs from
	// the number of levels.
	ErrWeightCount = errors.New("one weight per level required")

	// ErrCapCount is returned when the number of caps differs from the
	// number of levels.
	ErrCapCount = errors.New("one cap per level required")

	// ErrNotAnIDList is the cause of a MalformedInputError whose value is not
	// a list of item ids.
	ErrNotAnIDList = model.ErrNotAnIDList

	// ErrInvalidLabeling is returned for labelings without a silhouette.
	ErrInvalidLabeling = silhouette.ErrInvalidLabeling
)

// ConfigError indicates an invalid pipeline configuration. It is returned
// before any table is loaded.
//
// The underlying sentinel can be accessed via errors.Unwrap.
type ConfigError struct {
	Field string
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("catsim: invalid %s: %v", e.Field, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

func configError(field string, cause error) *ConfigError {
	return &ConfigError{Field: field, cause: cause}
}

// MalformedInputError indicates a table cell that cannot be interpreted as
// a list of item ids.
type MalformedInputError = model.MalformedInputError

// InvalidLabelingError indicates a cluster labeling without a defined
// silhouette.
type InvalidLabelingError = silhouette.InvalidLabelingError
