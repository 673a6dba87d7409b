package sparse

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/hupe1980/catsim/model"
)

// Entry is a single (row, col, value) triplet.
type Entry struct {
	Row   model.ItemIndex
	Col   model.ItemIndex
	Value float64
}

// Matrix is an immutable n×n matrix in compressed sparse row form.
//
// Row i occupies indices[indptr[i]:indptr[i+1]], with column indices in
// ascending order.
type Matrix struct {
	n       int
	indptr  []int
	indices []model.ItemIndex
	data    []float64
}

// NewMatrix builds a matrix from triplets in any order.
// Duplicate coordinates are summed and zero results are dropped.
func NewMatrix(n int, entries []Entry) (*Matrix, error) {
	for _, e := range entries {
		if int(e.Row) >= n || int(e.Col) >= n {
			return nil, fmt.Errorf("entry (%d,%d) in %d×%d matrix: %w", e.Row, e.Col, n, n, ErrIndexOutOfRange)
		}
	}
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return comparePairs(Pair{I: a.Row, J: a.Col}, Pair{I: b.Row, J: b.Col})
	})

	merged := sorted[:0]
	for _, e := range sorted {
		if k := len(merged) - 1; k >= 0 && merged[k].Row == e.Row && merged[k].Col == e.Col {
			merged[k].Value += e.Value
			continue
		}
		merged = append(merged, e)
	}
	merged = slices.DeleteFunc(merged, func(e Entry) bool { return e.Value == 0 })

	return buildCSR(n, merged), nil
}

// buildCSR assumes entries are in range and free of duplicates.
func buildCSR(n int, entries []Entry) *Matrix {
	m := &Matrix{
		n:       n,
		indptr:  make([]int, n+1),
		indices: make([]model.ItemIndex, len(entries)),
		data:    make([]float64, len(entries)),
	}
	for _, e := range entries {
		m.indptr[e.Row+1]++
	}
	for i := 0; i < n; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	next := slices.Clone(m.indptr[:n])
	for _, e := range entries {
		k := next[e.Row]
		m.indices[k] = e.Col
		m.data[k] = e.Value
		next[e.Row]++
	}

	for i := 0; i < n; i++ {
		lo, hi := m.indptr[i], m.indptr[i+1]
		sort.Sort(rowSorter{cols: m.indices[lo:hi], vals: m.data[lo:hi]})
	}
	return m
}

type rowSorter struct {
	cols []model.ItemIndex
	vals []float64
}

func (r rowSorter) Len() int           { return len(r.cols) }
func (r rowSorter) Less(i, j int) bool { return r.cols[i] < r.cols[j] }
func (r rowSorter) Swap(i, j int) {
	r.cols[i], r.cols[j] = r.cols[j], r.cols[i]
	r.vals[i], r.vals[j] = r.vals[j], r.vals[i]
}

// N returns the matrix dimension.
func (m *Matrix) N() int { return m.n }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.data) }

// At returns the value at (i, j), or 0 if the entry is not stored.
func (m *Matrix) At(i, j model.ItemIndex) float64 {
	if int(i) >= m.n || int(j) >= m.n {
		return 0
	}
	cols, vals := m.Row(i)
	k, found := slices.BinarySearch(cols, j)
	if !found {
		return 0
	}
	return vals[k]
}

// Row returns the column indices and values of row i.
// The returned slices alias the matrix and must not be modified.
func (m *Matrix) Row(i model.ItemIndex) ([]model.ItemIndex, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// ForEach calls fn for every stored entry in row-major order until fn returns false.
func (m *Matrix) ForEach(fn func(i, j model.ItemIndex, v float64) bool) {
	for i := 0; i < m.n; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			if !fn(model.ItemIndex(i), m.indices[k], m.data[k]) {
				return
			}
		}
	}
}

// Without returns a copy of m with the rows and columns in excluded deleted.
// Remaining items keep their relative order and are renumbered densely.
func (m *Matrix) Without(excluded *model.ItemSet) *Matrix {
	if excluded.IsEmpty() {
		return m.clone()
	}

	remap := make([]int, m.n)
	kept := 0
	for i := 0; i < m.n; i++ {
		if excluded.Contains(model.ItemIndex(i)) {
			remap[i] = -1
			continue
		}
		remap[i] = kept
		kept++
	}

	out := &Matrix{n: kept, indptr: make([]int, 1, kept+1)}
	for i := 0; i < m.n; i++ {
		if remap[i] < 0 {
			continue
		}
		cols, vals := m.Row(model.ItemIndex(i))
		for k, c := range cols {
			if nc := remap[c]; nc >= 0 {
				out.indices = append(out.indices, model.ItemIndex(nc))
				out.data = append(out.data, vals[k])
			}
		}
		out.indptr = append(out.indptr, len(out.data))
	}
	return out
}

func (m *Matrix) clone() *Matrix {
	return &Matrix{
		n:       m.n,
		indptr:  slices.Clone(m.indptr),
		indices: slices.Clone(m.indices),
		data:    slices.Clone(m.data),
	}
}

// IsSymmetric reports whether |M[i,j] - M[j,i]| <= tol for every stored entry.
func (m *Matrix) IsSymmetric(tol float64) bool {
	ok := true
	m.ForEach(func(i, j model.ItemIndex, v float64) bool {
		if math.Abs(v-m.At(j, i)) > tol {
			ok = false
		}
		return ok
	})
	return ok
}

// Diagonal returns the stored diagonal values.
func (m *Matrix) Diagonal() []float64 {
	out := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = m.At(model.ItemIndex(i), model.ItemIndex(i))
	}
	return out
}

// Dense expands the matrix into row-major dense form. Intended for small
// matrices and tests.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = make([]float64, m.n)
	}
	m.ForEach(func(i, j model.ItemIndex, v float64) bool {
		out[i][j] = v
		return true
	})
	return out
}
