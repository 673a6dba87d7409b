package jaccard

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/catsim/sparse"
)

// DefaultEpsilon keeps the denominator positive for items without any
// weighted category on either side.
const DefaultEpsilon = 1e-4

// ErrInvalidEpsilon is returned for a negative, NaN or infinite epsilon.
var ErrInvalidEpsilon = errors.New("jaccard: epsilon must be finite and non-negative")

// Normalize computes the similarity matrix of counts and degree in CSR form.
// degree must have counts.N() entries.
func Normalize(counts *sparse.Counts, degree []uint64, epsilon float64) (*sparse.Matrix, error) {
	if epsilon < 0 || math.IsNaN(epsilon) || math.IsInf(epsilon, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEpsilon, epsilon)
	}
	if len(degree) != counts.N() {
		return nil, fmt.Errorf("%w: degree has %d entries, counts %d", sparse.ErrDimensionMismatch, len(degree), counts.N())
	}

	return counts.ToMatrix(func(p sparse.Pair, m uint32) float64 {
		return Coefficient(float64(m), float64(degree[p.I]), float64(degree[p.J]), epsilon)
	}), nil
}

// Coefficient returns m / (di + dj - m + epsilon), or 0 when the
// denominator is not positive.
func Coefficient(m, di, dj, epsilon float64) float64 {
	den := di + dj - m + epsilon
	if den <= 0 {
		return 0
	}
	return m / den
}

// Distance converts a similarity into a Jaccard distance clamped to [0, 1].
func Distance(s float64) float64 {
	return min(1, max(0, 1-s))
}
