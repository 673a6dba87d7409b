package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives a heavy tail. Category sizes in
// real hierarchies follow such a power law.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Hierarchy is a category hierarchy over Items level-0 items.
type Hierarchy struct {
	Items int
	// Labels holds the level-0 categories of every item.
	Labels [][]string
	// Parents holds, for level l ≥ 1 at index l-1, the parents of every
	// level l-1 category.
	Parents []map[string][]string
}

// Levels returns the number of levels.
func (h *Hierarchy) Levels() int { return len(h.Parents) + 1 }

// Hierarchy generates a random hierarchy. Every item gets 1..fanout level-0
// categories out of perLevel, drawn with Zipf skew so that some categories
// are large; every category gets 1..fanout parents at the next level.
func (r *RNG) Hierarchy(items, levels, perLevel, fanout int) *Hierarchy {
	r.mu.Lock()
	defer r.mu.Unlock()

	pick := func(level int) []string {
		k := 1 + r.rand.Intn(fanout)
		out := make([]string, 0, k)
		for range k {
			l := fmt.Sprintf("L%d-%d", level, r.zipfLocked(perLevel, 1.1))
			if !slices.Contains(out, l) {
				out = append(out, l)
			}
		}
		return out
	}

	h := &Hierarchy{Items: items, Labels: make([][]string, items)}
	for i := range h.Labels {
		h.Labels[i] = pick(0)
	}
	for l := 1; l < levels; l++ {
		parents := make(map[string][]string)
		for _, c := range h.categories(l - 1) {
			parents[c] = pick(l)
		}
		h.Parents = append(h.Parents, parents)
	}
	return h
}

// categories returns the sorted labels present at level l.
func (h *Hierarchy) categories(level int) []string {
	seen := make(map[string]struct{})
	if level == 0 {
		for _, ls := range h.Labels {
			for _, l := range ls {
				seen[l] = struct{}{}
			}
		}
	} else {
		for _, ps := range h.Parents[level-1] {
			for _, p := range ps {
				seen[p] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// Memberships returns, per item, the categories it belongs to at every
// level. A category at level l holds the items of its surviving children;
// keep decides survival and may be nil.
func (h *Hierarchy) Memberships(keep func(string) bool) [][]map[string]bool {
	if keep == nil {
		keep = func(string) bool { return true }
	}
	out := make([][]map[string]bool, h.Levels())
	out[0] = make([]map[string]bool, h.Items)
	for i, ls := range h.Labels {
		out[0][i] = make(map[string]bool)
		for _, l := range ls {
			if keep(l) {
				out[0][i][l] = true
			}
		}
	}
	for l := 1; l < h.Levels(); l++ {
		out[l] = make([]map[string]bool, h.Items)
		for i := range h.Items {
			out[l][i] = make(map[string]bool)
			for c := range out[l-1][i] {
				for _, p := range h.Parents[l-1][c] {
					if keep(p) {
						out[l][i][p] = true
					}
				}
			}
		}
	}
	return out
}

// ReferenceSimilarity computes the dense weighted Jaccard similarity of h
// by brute force. caps may be nil; a zero cap disables capping.
func ReferenceSimilarity(h *Hierarchy, weights []float64, caps []uint32, keep func(string) bool, epsilon float64) [][]float64 {
	member := h.Memberships(keep)
	n := h.Items

	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	d := make([]float64, n)

	for l, w := range weights {
		for i := range n {
			d[i] += w * float64(len(member[l][i]))
			for j := i + 1; j < n; j++ {
				shared := 0
				for c := range member[l][i] {
					if member[l][j][c] {
						shared++
					}
				}
				if caps != nil && caps[l] > 0 {
					shared = min(shared, int(caps[l]))
				}
				m[i][j] += w * float64(shared)
				m[j][i] = m[i][j]
			}
		}
	}

	s := make([][]float64, n)
	for i := range s {
		s[i] = make([]float64, n)
		for j := range n {
			if i == j || m[i][j] == 0 {
				continue
			}
			s[i][j] = m[i][j] / (d[i] + d[j] - m[i][j] + epsilon)
		}
	}
	return s
}
