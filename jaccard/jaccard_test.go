package jaccard

import (
	"math"
	"testing"

	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workedExample(t *testing.T) (*sparse.Counts, []uint64) {
	t.Helper()

	c := sparse.NewCounts(3)
	require.NoError(t, c.Add(sparse.Pair{I: 0, J: 1}, 1))
	require.NoError(t, c.Add(sparse.Pair{I: 0, J: 2}, 1))
	require.NoError(t, c.Add(sparse.Pair{I: 1, J: 2}, 2))
	return c, []uint64{1, 2, 2}
}

func TestNormalize(t *testing.T) {
	counts, degree := workedExample(t)

	s, err := Normalize(counts, degree, DefaultEpsilon)
	require.NoError(t, err)

	assert.InDelta(t, 2/(2+DefaultEpsilon), s.At(1, 2), 1e-12)
	assert.InDelta(t, 1.0, s.At(1, 2), 1e-4)
	assert.InDelta(t, 0.5, s.At(0, 1), 1e-4)
	assert.InDelta(t, 0.5, s.At(0, 2), 1e-4)
	assert.Equal(t, 6, s.NNZ())
	assert.True(t, s.IsSymmetric(0))

	for i := range model.ItemIndex(3) {
		assert.Zero(t, s.At(i, i))
	}
	s.ForEach(func(_, _ model.ItemIndex, v float64) bool {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		return true
	})
}

func TestNormalizeScaleInvariant(t *testing.T) {
	counts, degree := workedExample(t)
	base, err := Normalize(counts, degree, 0)
	require.NoError(t, err)

	scaled := sparse.NewCounts(3)
	require.NoError(t, scaled.AddScaled(counts, 7))
	scaledDegree := make([]uint64, len(degree))
	for i, d := range degree {
		scaledDegree[i] = 7 * d
	}

	got, err := Normalize(scaled, scaledDegree, 0)
	require.NoError(t, err)
	base.ForEach(func(i, j model.ItemIndex, v float64) bool {
		assert.InDelta(t, v, got.At(i, j), 1e-12)
		return true
	})
}

func TestNormalizeErrors(t *testing.T) {
	counts, degree := workedExample(t)

	_, err := Normalize(counts, degree[:2], DefaultEpsilon)
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	_, err = Normalize(counts, degree, -1)
	assert.ErrorIs(t, err, ErrInvalidEpsilon)

	_, err = Normalize(counts, degree, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidEpsilon)
}

func TestCoefficient(t *testing.T) {
	assert.Zero(t, Coefficient(0, 0, 0, 0))
	assert.InDelta(t, 1.0, Coefficient(3, 3, 3, 0), 1e-12)
	assert.InDelta(t, 1.0/3, Coefficient(1, 2, 2, 0), 1e-12)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 1.0, Distance(0))
	assert.Equal(t, 0.0, Distance(1))
	assert.Equal(t, 0.0, Distance(1.5))
	assert.InDelta(t, 0.25, Distance(0.75), 1e-12)
}
