package silhouette

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLabeling is wrapped by every InvalidLabelingError.
	ErrInvalidLabeling = errors.New("silhouette: invalid labeling")

	// ErrDimensionMismatch is returned when labels and distances disagree in size.
	ErrDimensionMismatch = errors.New("silhouette: dimension mismatch")
)

// InvalidLabelingError reports a labeling the silhouette is undefined for:
// fewer than two distinct labels, or a cluster with a single member.
type InvalidLabelingError struct {
	Reason string

	// Label is the offending label when Singleton is set.
	Label     int
	Singleton bool
}

// Error implements the error interface.
func (e *InvalidLabelingError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidLabeling, e.Reason)
}

// Unwrap returns ErrInvalidLabeling.
func (e *InvalidLabelingError) Unwrap() error { return ErrInvalidLabeling }
