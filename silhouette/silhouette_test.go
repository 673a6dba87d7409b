package silhouette

import (
	"errors"
	"testing"

	"github.com/hupe1980/catsim/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// twoBlocks returns four items forming two tight pairs {0,1} and {2,3}.
func twoBlocks(t *testing.T) *sparse.Matrix {
	t.Helper()

	s, err := sparse.NewMatrix(4, []sparse.Entry{
		{Row: 0, Col: 1, Value: 0.9}, {Row: 1, Col: 0, Value: 0.9},
		{Row: 2, Col: 3, Value: 0.8}, {Row: 3, Col: 2, Value: 0.8},
		{Row: 0, Col: 2, Value: 0.1}, {Row: 2, Col: 0, Value: 0.1},
	})
	require.NoError(t, err)
	return s
}

func TestDistanceMatrix(t *testing.T) {
	d := DistanceMatrix(twoBlocks(t))

	require.Equal(t, 4, d.SymmetricDim())
	for i := range 4 {
		assert.Zero(t, d.At(i, i))
	}
	assert.InDelta(t, 0.1, d.At(0, 1), 1e-12)
	assert.InDelta(t, 0.1, d.At(1, 0), 1e-12)
	assert.InDelta(t, 0.2, d.At(3, 2), 1e-12)
	assert.InDelta(t, 0.9, d.At(0, 2), 1e-12)
	assert.Equal(t, 1.0, d.At(1, 3))
}

func TestDistanceMatrixClampsPathologicalSimilarity(t *testing.T) {
	s, err := sparse.NewMatrix(2, []sparse.Entry{{Row: 0, Col: 1, Value: 3}, {Row: 1, Col: 0, Value: 3}})
	require.NoError(t, err)

	d := DistanceMatrix(s)
	assert.Equal(t, 0.0, d.At(0, 1))
}

func TestScore(t *testing.T) {
	s := twoBlocks(t)

	good, err := ScoreSimilarity(s, []int{0, 0, 1, 1})
	require.NoError(t, err)
	bad, err := ScoreSimilarity(s, []int{0, 1, 0, 1})
	require.NoError(t, err)

	assert.Greater(t, good, 0.5)
	assert.Less(t, bad, 0.0)
	assert.GreaterOrEqual(t, bad, -1.0)
	assert.LessOrEqual(t, good, 1.0)
}

func TestScoreByHand(t *testing.T) {
	d := mat.NewSymDense(4, []float64{
		0, 1, 4, 5,
		1, 0, 3, 4,
		4, 3, 0, 2,
		5, 4, 2, 0,
	})

	samples, err := Samples(d, []int{7, 7, 3, 3})
	require.NoError(t, err)

	// a(0)=1, b(0)=4.5 → 3.5/4.5
	assert.InDelta(t, 3.5/4.5, samples[0], 1e-12)
	// a(1)=1, b(1)=3.5 → 2.5/3.5
	assert.InDelta(t, 2.5/3.5, samples[1], 1e-12)
	// a(2)=2, b(2)=3.5 → 1.5/3.5
	assert.InDelta(t, 1.5/3.5, samples[2], 1e-12)
	// a(3)=2, b(3)=4.5 → 2.5/4.5
	assert.InDelta(t, 2.5/4.5, samples[3], 1e-12)

	score, err := Score(d, []int{7, 7, 3, 3})
	require.NoError(t, err)
	assert.InDelta(t, (3.5/4.5+2.5/3.5+1.5/3.5+2.5/4.5)/4, score, 1e-12)

	assert.Equal(t, 0.0, d.At(0, 0), "input must not be modified")
}

func TestInvalidLabeling(t *testing.T) {
	s := twoBlocks(t)

	tests := []struct {
		name   string
		labels []int
		label  int
	}{
		{name: "SingleLabel", labels: []int{1, 1, 1, 1}},
		{name: "Singleton", labels: []int{0, 0, 0, 5}, label: 5},
		{name: "AllSingletons", labels: []int{0, 1, 2, 3}, label: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScoreSimilarity(s, tt.labels)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLabeling))

			var ile *InvalidLabelingError
			require.ErrorAs(t, err, &ile)
			assert.Equal(t, tt.label, ile.Label)
			assert.Equal(t, tt.name != "SingleLabel", ile.Singleton)
		})
	}

	_, err := Score(&mat.SymDense{}, nil)
	assert.ErrorIs(t, err, ErrInvalidLabeling)
}

func TestDimensionMismatch(t *testing.T) {
	_, err := ScoreSimilarity(twoBlocks(t), []int{0, 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
