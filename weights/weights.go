package weights

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeWeight is returned for a negative, NaN or infinite weight.
	ErrNegativeWeight = errors.New("weights: weight must be a finite non-negative number")

	// ErrAllZero is returned when every supplied weight is zero.
	ErrAllZero = errors.New("weights: at least one weight must be non-zero")

	// ErrUnrepresentable is returned when no power-of-ten scale brings every
	// weight within tolerance before overflowing uint32.
	ErrUnrepresentable = errors.New("weights: weights cannot be rationalized to uint32")
)

// Tolerance is the relative rounding error accepted for every non-zero weight.
const Tolerance = 0.01

// Ones returns n unit weights.
func Ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// Rationalize divides w by its smallest non-zero entry and multiplies the
// vector by 10 until each non-zero entry rounds to an integer within
// Tolerance relative error, then rounds. Zero weights stay zero.
// An empty input returns nil.
func Rationalize(w []float64) ([]uint32, error) {
	if len(w) == 0 {
		return nil, nil
	}

	minNonZero := math.Inf(1)
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: weight[%d]=%v", ErrNegativeWeight, i, v)
		}
		if v > 0 && v < minNonZero {
			minNonZero = v
		}
	}
	if math.IsInf(minNonZero, 1) {
		return nil, ErrAllZero
	}

	scaled := make([]float64, len(w))
	for i, v := range w {
		scaled[i] = v / minNonZero
	}

	for !withinTolerance(scaled) {
		for i := range scaled {
			scaled[i] *= 10
		}
		if maxOf(scaled) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, w)
		}
	}
	if maxOf(scaled) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, w)
	}

	out := make([]uint32, len(scaled))
	for i, v := range scaled {
		out[i] = uint32(math.Round(v))
	}
	return out, nil
}

// MustRationalize is like Rationalize but panics on error.
func MustRationalize(w []float64) []uint32 {
	out, err := Rationalize(w)
	if err != nil {
		panic(err)
	}
	return out
}

func withinTolerance(xs []float64) bool {
	for _, x := range xs {
		if x == 0 {
			continue
		}
		if math.Abs(math.Round(x)-x) > Tolerance*x {
			return false
		}
	}
	return true
}

func maxOf(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		m = max(m, x)
	}
	return m
}
