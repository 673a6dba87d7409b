package weights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRationalize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []uint32
	}{
		{name: "Empty", in: nil, want: nil},
		{name: "Ones", in: []float64{1, 1, 1}, want: []uint32{1, 1, 1}},
		{name: "IntegerRatios", in: []float64{2, 4, 6}, want: []uint32{1, 2, 3}},
		{name: "Halves", in: []float64{1, 0.5}, want: []uint32{2, 1}},
		{name: "OneAndAHalf", in: []float64{1.5, 1}, want: []uint32{15, 10}},
		{name: "ZeroIsKept", in: []float64{0, 0.5, 1}, want: []uint32{0, 1, 2}},
		{name: "CloseEnough", in: []float64{1, 1.004}, want: []uint32{1, 1}},
		{name: "Thirds", in: []float64{1, 1.0 / 3}, want: []uint32{3, 1}},
		{name: "TwoThirds", in: []float64{1, 2.0 / 3}, want: []uint32{15, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rationalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRationalizePreservesRatios(t *testing.T) {
	in := []float64{0.7, 0.35, 1.05, 0.2}
	got, err := Rationalize(in)
	require.NoError(t, err)

	for i := range in {
		for j := range in {
			want := in[i] / in[j]
			ratio := float64(got[i]) / float64(got[j])
			assert.InDelta(t, want, ratio, 0.03*want, "ratio %d/%d", i, j)
		}
	}
}

func TestRationalizeScaleInvariant(t *testing.T) {
	a, err := Rationalize([]float64{1, 0.5, 0.25})
	require.NoError(t, err)
	b, err := Rationalize([]float64{8, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRationalizeErrors(t *testing.T) {
	_, err := Rationalize([]float64{1, -1})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = Rationalize([]float64{math.NaN()})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = Rationalize([]float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = Rationalize([]float64{0, 0})
	assert.ErrorIs(t, err, ErrAllZero)

	_, err = Rationalize([]float64{1, 1e12})
	assert.ErrorIs(t, err, ErrUnrepresentable)

	assert.Panics(t, func() { MustRationalize([]float64{-2}) })
}

func TestOnes(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, Ones(3))
	assert.Empty(t, Ones(0))
}
