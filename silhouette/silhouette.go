package silhouette

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/catsim/jaccard"
	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/sparse"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix returns 1 - s as a dense symmetric matrix with a zero
// diagonal. Distances are clamped to [0, 1].
func DistanceMatrix(s *sparse.Matrix) *mat.SymDense {
	n := s.N()
	if n == 0 {
		return &mat.SymDense{}
	}
	d := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, 1)
		}
	}
	s.ForEach(func(i, j model.ItemIndex, v float64) bool {
		if i < j {
			d.SetSym(int(i), int(j), jaccard.Distance(v))
		}
		return true
	})
	return d
}

// Score returns the mean silhouette coefficient of labels over the
// precomputed distances d. Neither input is modified.
func Score(d mat.Symmetric, labels []int) (float64, error) {
	samples, err := Samples(d, labels)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, s := range samples {
		total += s
	}
	return total / float64(len(samples)), nil
}

// ScoreSimilarity is Score over the distance matrix of s.
func ScoreSimilarity(s *sparse.Matrix, labels []int) (float64, error) {
	if s.N() != len(labels) {
		return 0, fmt.Errorf("%w: %d labels for %d items", ErrDimensionMismatch, len(labels), s.N())
	}
	return Score(DistanceMatrix(s), labels)
}

// Samples returns the silhouette coefficient of every item.
func Samples(d mat.Symmetric, labels []int) ([]float64, error) {
	n := d.SymmetricDim()
	if n != len(labels) {
		return nil, fmt.Errorf("%w: %d labels for %d items", ErrDimensionMismatch, len(labels), n)
	}

	clusters, sizes, err := index(labels)
	if err != nil {
		return nil, err
	}

	k := len(sizes)
	sums := make([]float64, k)
	out := make([]float64, n)
	for i := range n {
		clear(sums)
		for j := range n {
			if j != i {
				sums[clusters[j]] += d.At(i, j)
			}
		}

		own := clusters[i]
		a := sums[own] / float64(sizes[own]-1)
		b := math.Inf(1)
		for c := range k {
			if c != own {
				b = min(b, sums[c]/float64(sizes[c]))
			}
		}

		if m := max(a, b); m > 0 {
			out[i] = (b - a) / m
		}
	}
	return out, nil
}

// index maps labels to dense cluster ids and validates the labeling.
func index(labels []int) (clusters []int, sizes []int, err error) {
	ids := make(map[int]int)
	clusters = make([]int, len(labels))
	for i, l := range labels {
		c, ok := ids[l]
		if !ok {
			c = len(sizes)
			ids[l] = c
			sizes = append(sizes, 0)
		}
		clusters[i] = c
		sizes[c]++
	}

	if len(sizes) < 2 {
		return nil, nil, &InvalidLabelingError{
			Reason: fmt.Sprintf("%d distinct labels, need at least 2", len(sizes)),
		}
	}

	singletons := make([]int, 0)
	for l, c := range ids {
		if sizes[c] == 1 {
			singletons = append(singletons, l)
		}
	}
	if len(singletons) > 0 {
		slices.Sort(singletons)
		return nil, nil, &InvalidLabelingError{
			Reason:    fmt.Sprintf("cluster %d has a single member", singletons[0]),
			Label:     singletons[0],
			Singleton: true,
		}
	}
	return clusters, sizes, nil
}
